package domain

type DocumentType string

const (
	DocPassport       DocumentType = "passport"
	DocDriverLicense  DocumentType = "driver_license"
	DocUtilityBill    DocumentType = "utility_bill"
	DocBankStatement  DocumentType = "bank_statement"
	DocIDCard         DocumentType = "id_card"
	DocTaxDocument    DocumentType = "tax_document"
	DocProofOfIncome  DocumentType = "proof_of_income"
	DocProofOfAddress DocumentType = "proof_of_address"
	DocUnknown        DocumentType = "unknown"
	DocError          DocumentType = "error"
)

// Classifiable reports whether the type may own keywords and appear in a requirement set.
func (t DocumentType) Classifiable() bool {
	switch t {
	case DocPassport, DocDriverLicense, DocUtilityBill, DocBankStatement,
		DocIDCard, DocTaxDocument, DocProofOfIncome, DocProofOfAddress:
		return true
	default:
		return false
	}
}

// IsIdentity covers the photo-ID family that shares DOB/number/expiry checks.
func (t DocumentType) IsIdentity() bool {
	return t == DocPassport || t == DocDriverLicense || t == DocIDCard
}

func (t DocumentType) CarriesAddress() bool {
	return t == DocUtilityBill || t == DocProofOfAddress
}

type ResultStatus string

const (
	StatusPass    ResultStatus = "pass"
	StatusWarning ResultStatus = "warning"
	StatusFail    ResultStatus = "fail"
)

type ChecklistStatus string

const (
	ChecklistCompliant   ChecklistStatus = "compliant"
	ChecklistNeedsReview ChecklistStatus = "needs_review"
	ChecklistMissing     ChecklistStatus = "missing"
)

// SourceDocument is the handle given to the text extraction collaborator.
type SourceDocument struct {
	Filename   string `json:"filename" validate:"required"`
	StorageKey string `json:"storage_key" validate:"required"`
}

type Extraction struct {
	Text      string `json:"text"`
	PageCount int    `json:"page_count"`
	FileSize  int64  `json:"file_size"`
}

type DocumentResult struct {
	ClientID        string            `json:"client_id"`
	Filename        string            `json:"filename"`
	DocType         DocumentType      `json:"doc_type"`
	ConfidenceScore float64           `json:"confidence_score"`
	Status          ResultStatus      `json:"status"`
	Issues          []string          `json:"issues"`
	ExtractedData   map[string]string `json:"extracted_data"`
	FileSize        int64             `json:"file_size"`
	PageCount       int               `json:"page_count"`
}

// Outcome pairs a result with the failure that produced it, if any.
// Result is always populated so failures can be reported like any other row.
type Outcome struct {
	Result  DocumentResult
	Failure error
}

type ChecklistEntry struct {
	ClientID        string          `json:"client_id"`
	RequiredSet     string          `json:"required_set"`
	DocType         DocumentType    `json:"doc_type"`
	Present         bool            `json:"present"`
	Status          ChecklistStatus `json:"status"`
	ComplianceScore float64         `json:"compliance_score"`
	Notes           string          `json:"notes"`
}

type BatchSummary struct {
	TotalDocuments        int     `json:"total_documents"`
	ProcessedSuccessfully int     `json:"processed_successfully"`
	ComplianceRate        float64 `json:"compliance_rate"`
	AvgConfidence         float64 `json:"avg_confidence"`
	IssuesFound           int     `json:"issues_found"`
	Timestamp             string  `json:"timestamp"`
}

type BatchReport struct {
	BatchID     string           `json:"batch_id"`
	RequiredSet string           `json:"required_set"`
	Strict      bool             `json:"strict"`
	Results     []DocumentResult `json:"results"`
	Checklist   []ChecklistEntry `json:"checklist"`
	Summary     BatchSummary     `json:"summary"`
}

// ShortID is the first eight characters of the batch id, used in export file names.
func (r *BatchReport) ShortID() string {
	if len(r.BatchID) <= 8 {
		return r.BatchID
	}
	return r.BatchID[:8]
}
