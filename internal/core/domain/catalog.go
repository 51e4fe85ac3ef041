package domain

import (
	"fmt"
	"slices"
)

// TypeKeywords is one row of the classifier keyword table.
type TypeKeywords struct {
	Type     DocumentType
	Keywords []string
}

type RequirementSet struct {
	ID        string         `json:"id"`
	Documents []DocumentType `json:"documents"`
}

// Catalog holds the keyword table and requirement sets. It is built once and
// never mutated; every accessor hands out copies.
type Catalog struct {
	keywords []TypeKeywords
	sets     []RequirementSet
	setIndex map[string]int
}

func NewCatalog(keywords []TypeKeywords, sets []RequirementSet) (*Catalog, error) {
	if len(keywords) == 0 {
		return nil, WrapError(ErrInvalidCatalog, "build catalog", fmt.Errorf("keyword table is empty"))
	}

	seenTypes := make(map[DocumentType]struct{}, len(keywords))
	ownKeywords := make([]TypeKeywords, 0, len(keywords))
	for _, row := range keywords {
		if !row.Type.Classifiable() {
			return nil, WrapError(ErrInvalidCatalog, "build catalog", fmt.Errorf("type %q cannot own keywords", row.Type))
		}
		if _, dup := seenTypes[row.Type]; dup {
			return nil, WrapError(ErrInvalidCatalog, "build catalog", fmt.Errorf("type %q declared twice", row.Type))
		}
		if len(row.Keywords) == 0 {
			return nil, WrapError(ErrInvalidCatalog, "build catalog", fmt.Errorf("type %q has no keywords", row.Type))
		}
		seenTypes[row.Type] = struct{}{}
		ownKeywords = append(ownKeywords, TypeKeywords{Type: row.Type, Keywords: slices.Clone(row.Keywords)})
	}

	ownSets := make([]RequirementSet, 0, len(sets))
	setIndex := make(map[string]int, len(sets))
	for _, set := range sets {
		if set.ID == "" {
			return nil, WrapError(ErrInvalidCatalog, "build catalog", fmt.Errorf("requirement set without id"))
		}
		if _, dup := setIndex[set.ID]; dup {
			return nil, WrapError(ErrInvalidCatalog, "build catalog", fmt.Errorf("requirement set %q declared twice", set.ID))
		}
		seen := make(map[DocumentType]struct{}, len(set.Documents))
		for _, docType := range set.Documents {
			if !docType.Classifiable() {
				return nil, WrapError(ErrInvalidCatalog, "build catalog", fmt.Errorf("requirement set %q lists unsupported type %q", set.ID, docType))
			}
			if _, dup := seen[docType]; dup {
				return nil, WrapError(ErrInvalidCatalog, "build catalog", fmt.Errorf("requirement set %q lists %q twice", set.ID, docType))
			}
			seen[docType] = struct{}{}
		}
		setIndex[set.ID] = len(ownSets)
		ownSets = append(ownSets, RequirementSet{ID: set.ID, Documents: slices.Clone(set.Documents)})
	}

	return &Catalog{keywords: ownKeywords, sets: ownSets, setIndex: setIndex}, nil
}

// Keywords returns the keyword table in declaration order.
func (c *Catalog) Keywords() []TypeKeywords {
	out := make([]TypeKeywords, len(c.keywords))
	for i, row := range c.keywords {
		out[i] = TypeKeywords{Type: row.Type, Keywords: slices.Clone(row.Keywords)}
	}
	return out
}

// RequiredDocuments returns the ordered types of a set; ok is false for an unknown id.
func (c *Catalog) RequiredDocuments(setID string) ([]DocumentType, bool) {
	idx, ok := c.setIndex[setID]
	if !ok {
		return nil, false
	}
	return slices.Clone(c.sets[idx].Documents), true
}

func (c *Catalog) RequirementSets() []RequirementSet {
	out := make([]RequirementSet, len(c.sets))
	for i, set := range c.sets {
		out[i] = RequirementSet{ID: set.ID, Documents: slices.Clone(set.Documents)}
	}
	return out
}

func DefaultKeywords() []TypeKeywords {
	return []TypeKeywords{
		{Type: DocPassport, Keywords: []string{"passport", "passport no", "republic of", "immigration"}},
		{Type: DocDriverLicense, Keywords: []string{"driver license", "driving license", "dmv", "motor vehicle"}},
		{Type: DocUtilityBill, Keywords: []string{"utility bill", "electricity", "water bill", "gas bill", "internet bill", "phone bill"}},
		{Type: DocBankStatement, Keywords: []string{"bank statement", "account statement", "balance", "transaction", "deposit"}},
		{Type: DocIDCard, Keywords: []string{"identity card", "national id", "citizen card", "identification"}},
		{Type: DocTaxDocument, Keywords: []string{"tax return", "tax certificate", "irs", "revenue service", "w-2", "1099"}},
		{Type: DocProofOfIncome, Keywords: []string{"salary", "payslip", "employment letter", "income statement"}},
		{Type: DocProofOfAddress, Keywords: []string{"utility bill", "lease agreement", "rental agreement", "mortgage statement"}},
	}
}

func DefaultRequirementSets() []RequirementSet {
	return []RequirementSet{
		{ID: "individual_basic", Documents: []DocumentType{DocPassport, DocUtilityBill}},
		{ID: "individual_full", Documents: []DocumentType{DocPassport, DocDriverLicense, DocBankStatement, DocTaxDocument}},
		{ID: "business", Documents: []DocumentType{DocPassport, DocUtilityBill, DocBankStatement, DocTaxDocument, DocProofOfIncome}},
		{ID: "high_net_worth", Documents: []DocumentType{DocPassport, DocUtilityBill, DocBankStatement, DocTaxDocument, DocProofOfIncome, DocProofOfAddress}},
	}
}

// DefaultCatalog panics only if the built-in tables are inconsistent.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(DefaultKeywords(), DefaultRequirementSets())
	if err != nil {
		panic(err)
	}
	return catalog
}
