package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
	"github.com/kirillkom/kyc-document-validator/internal/core/ports"
)

// Extractor reads the text layer of a PDF page by page. Scanned pages without
// a text layer contribute nothing; OCR is out of scope.
type Extractor struct {
	storage  ports.ObjectStorage
	maxPages int
}

// NewExtractor reads at most maxPages pages; zero or less reads them all.
func NewExtractor(storage ports.ObjectStorage, maxPages int) *Extractor {
	return &Extractor{storage: storage, maxPages: maxPages}
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
	if err := ctx.Err(); err != nil {
		return domain.Extraction{}, err
	}

	text, pages, err := e.plainText(raw)
	if err != nil {
		return domain.Extraction{}, err
	}
	return domain.Extraction{
		Text:      text,
		PageCount: pages,
		FileSize:  int64(len(raw)),
	}, nil
}

// plainText converts library panics on malformed input into errors.
func (e *Extractor) plainText(raw []byte) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, pages, err = "", 0, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	doc, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", 0, fmt.Errorf("parse pdf: %w", err)
	}

	pages = doc.NumPage()
	limit := pages
	if e.maxPages > 0 && limit > e.maxPages {
		limit = e.maxPages
	}

	var sb strings.Builder
	for i := 1; i <= limit; i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", 0, fmt.Errorf("read page %d: %w", i, err)
		}
		sb.WriteString(pageText)
		sb.WriteByte('\n')
	}
	return sb.String(), pages, nil
}
