package plaintext

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
	"github.com/kirillkom/kyc-document-validator/internal/core/ports"
)

// Extractor serves UTF-8 text files as single-page documents.
type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) Extract(ctx context.Context, doc domain.SourceDocument) (domain.Extraction, error) {
	reader, err := e.storage.Open(ctx, doc.StorageKey)
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("open source document: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrTemporary, "read source document", err)
	}

	if !utf8.Valid(raw) {
		return domain.Extraction{}, fmt.Errorf("binary content in text document: %s", doc.Filename)
	}

	return domain.Extraction{
		Text:      strings.TrimSpace(string(raw)),
		PageCount: 1,
		FileSize:  int64(len(raw)),
	}, nil
}
