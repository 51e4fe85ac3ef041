package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
)

// catalogFile is the on-disk shape of a keyword/requirement catalog:
//
//	document_types:
//	  - type: passport
//	    keywords: [passport, passport no]
//	requirement_sets:
//	  - id: individual_basic
//	    documents: [passport, utility_bill]
type catalogFile struct {
	DocumentTypes []struct {
		Type     string   `yaml:"type"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"document_types"`
	RequirementSets []struct {
		ID        string   `yaml:"id"`
		Documents []string `yaml:"documents"`
	} `yaml:"requirement_sets"`
}

// LoadCatalog returns the built-in catalog when path is empty. A file that
// omits one of the two sections keeps the built-in table for that section.
func LoadCatalog(path string) (*domain.Catalog, error) {
	if path == "" {
		return domain.NewCatalog(domain.DefaultKeywords(), domain.DefaultRequirementSets())
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (*domain.Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, domain.WrapError(domain.ErrInvalidCatalog, "parse catalog", err)
	}

	keywords := domain.DefaultKeywords()
	if len(file.DocumentTypes) > 0 {
		keywords = make([]domain.TypeKeywords, 0, len(file.DocumentTypes))
		for _, row := range file.DocumentTypes {
			keywords = append(keywords, domain.TypeKeywords{
				Type:     domain.DocumentType(row.Type),
				Keywords: row.Keywords,
			})
		}
	}

	sets := domain.DefaultRequirementSets()
	if len(file.RequirementSets) > 0 {
		sets = make([]domain.RequirementSet, 0, len(file.RequirementSets))
		for _, set := range file.RequirementSets {
			docs := make([]domain.DocumentType, 0, len(set.Documents))
			for _, d := range set.Documents {
				docs = append(docs, domain.DocumentType(d))
			}
			sets = append(sets, domain.RequirementSet{ID: set.ID, Documents: docs})
		}
	}

	return domain.NewCatalog(keywords, sets)
}
