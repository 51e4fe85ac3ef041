package ports

import (
	"context"
	"io"
	"time"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
)

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]string, error)
}

// TextExtractor turns a stored document into flat text. A non-nil error is the
// extraction failure signal; its message ends up in the document's issues.
type TextExtractor interface {
	Extract(ctx context.Context, doc domain.SourceDocument) (domain.Extraction, error)
}

// ReportExporter hands a finished batch to a presentation or export sink.
type ReportExporter interface {
	Export(ctx context.Context, report *domain.BatchReport) error
}

// BatchObserver receives per-document and per-batch measurements.
type BatchObserver interface {
	ObserveDocument(outcome domain.Outcome, duration time.Duration)
	ObserveBatch(report *domain.BatchReport)
}
