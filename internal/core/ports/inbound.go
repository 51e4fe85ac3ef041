package ports

import (
	"context"
	"io"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
)

// ValidationRequest is one aggregation run over a collection of documents.
type ValidationRequest struct {
	Documents   []domain.SourceDocument `validate:"required,min=1,dive"`
	RequiredSet string
	Strict      bool
}

// BatchValidator is the inbound contract for a full batch run.
type BatchValidator interface {
	Validate(ctx context.Context, req ValidationRequest) (*domain.BatchReport, error)
}

// DocumentStager places uploaded bytes where the text extractors can read them.
type DocumentStager interface {
	Stage(ctx context.Context, filename string, body io.Reader) (domain.SourceDocument, error)
	Release(ctx context.Context, docs []domain.SourceDocument)
}

// RequirementCatalog is the read model over the configured requirement sets.
type RequirementCatalog interface {
	RequirementSets() []domain.RequirementSet
}
