package usecase

import (
	"regexp"
	"strings"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
)

const (
	FieldName           = "name"
	FieldDateOfBirth    = "date_of_birth"
	FieldDocumentNumber = "document_number"
	FieldExpiryDate     = "expiry_date"
	FieldAccountNumber  = "account_number"
	FieldAddress        = "address"

	balanceKeyword = "balance"
)

// Labels match case-insensitively; the captured name must be capitalized words on one line.
var (
	namePattern       = regexp.MustCompile(`(?i:full name|name)[:\s]+([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)+)`)
	dobPattern        = regexp.MustCompile(`(?i)(?:date of birth|dob|born)[:\s]*(\d{1,2}[/-]\d{1,2}[/-]\d{4})`)
	idNumberPattern   = regexp.MustCompile(`(?i)(?:passport|id|license)\s*(?:no|number)[:\s]*([A-Z0-9]{6,})`)
	expiryPattern     = regexp.MustCompile(`(?i)(?:expiry|expires|exp)[:\s]*(\d{1,2}[/-]\d{1,2}[/-]\d{4})`)
	addressPattern    = regexp.MustCompile(`(?i)(?:address|residence)[:\s]*([A-Za-z0-9][A-Za-z0-9 \t,]*(?:\d{5})?)`)
	accountPattern    = regexp.MustCompile(`(?i)(?:account|acc)\s*(?:no|number)[:\s]*(\d{8,})`)
	recentYearPattern = regexp.MustCompile(`\b202[3-5]\b`)
)

// FieldExtractor pulls labelled values out of flat text. Absent fields are
// simply missing from the returned map.
type FieldExtractor struct{}

func NewFieldExtractor() *FieldExtractor {
	return &FieldExtractor{}
}

func (e *FieldExtractor) Extract(text string, docType domain.DocumentType) map[string]string {
	data := make(map[string]string)

	setFirstGroup(data, FieldName, namePattern, text)

	switch {
	case docType.IsIdentity():
		setFirstGroup(data, FieldDateOfBirth, dobPattern, text)
		setFirstGroup(data, FieldDocumentNumber, idNumberPattern, text)
		setFirstGroup(data, FieldExpiryDate, expiryPattern, text)
	case docType == domain.DocBankStatement:
		setFirstGroup(data, FieldAccountNumber, accountPattern, text)
	}

	if docType.CarriesAddress() {
		setFirstGroup(data, FieldAddress, addressPattern, text)
	}
	return data
}

func setFirstGroup(data map[string]string, key string, pattern *regexp.Regexp, text string) {
	match := pattern.FindStringSubmatch(text)
	if len(match) < 2 {
		return
	}
	value := strings.TrimSpace(match[1])
	if value == "" {
		return
	}
	data[key] = value
}
