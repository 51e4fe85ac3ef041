// Package extractor dispatches text extraction by file extension.
package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
	"github.com/kirillkom/kyc-document-validator/internal/core/ports"
	"github.com/kirillkom/kyc-document-validator/internal/infrastructure/resilience"
)

// Router picks the extractor registered for a document's extension and runs it
// through the resilience executor, one breaker per format.
type Router struct {
	byExt    map[string]ports.TextExtractor
	executor *resilience.Executor
}

func NewRouter(executor *resilience.Executor) *Router {
	return &Router{
		byExt:    make(map[string]ports.TextExtractor),
		executor: executor,
	}
}

// Register binds an extension such as ".pdf" to an extractor. Registration
// happens during wiring, before the router is shared.
func (r *Router) Register(ext string, extractor ports.TextExtractor) *Router {
	r.byExt[normalizeExt(ext)] = extractor
	return r
}

func (r *Router) Supports(filename string) bool {
	_, ok := r.byExt[normalizeExt(filepath.Ext(filename))]
	return ok
}

// Extensions lists registered extensions, sorted.
func (r *Router) Extensions() []string {
	out := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		out = append(out, ext)
	}
	slices.Sort(out)
	return out
}

func (r *Router) Extract(ctx context.Context, doc domain.SourceDocument) (domain.Extraction, error) {
	ext := normalizeExt(filepath.Ext(doc.Filename))
	extractor, ok := r.byExt[ext]
	if !ok {
		return domain.Extraction{}, fmt.Errorf("%w %q", domain.ErrUnsupportedFormat, ext)
	}

	return resilience.Call(ctx, r.executor, "extract"+ext, func(ctx context.Context) (domain.Extraction, error) {
		return extractor.Extract(ctx, doc)
	}, resilience.ClassifyTemporary)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
