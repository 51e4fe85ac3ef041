package usecase

import (
	"strings"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
)

// KeywordClassifier scores text against the catalog keyword table.
//
// Types are evaluated in catalog declaration order and a later type replaces the
// current best only with a strictly higher confidence, so the first-declared
// type wins ties. Text matching no keyword at all is unknown with confidence 0.
type KeywordClassifier struct {
	table []domain.TypeKeywords
}

func NewKeywordClassifier(catalog *domain.Catalog) *KeywordClassifier {
	table := catalog.Keywords()
	for i := range table {
		for j, kw := range table[i].Keywords {
			table[i].Keywords[j] = strings.ToLower(kw)
		}
	}
	return &KeywordClassifier{table: table}
}

func (c *KeywordClassifier) Classify(text string) (domain.DocumentType, float64) {
	lowered := strings.ToLower(text)

	best := domain.DocUnknown
	bestScore := 0.0
	for _, row := range c.table {
		score := keywordConfidence(lowered, row.Keywords)
		if score > bestScore {
			best = row.Type
			bestScore = score
		}
	}
	return best, clampScore(bestScore)
}

func keywordConfidence(lowered string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			matched++
		}
	}
	return clampScore(100 * float64(matched) / float64(len(keywords)))
}

func clampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
