package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
	"github.com/kirillkom/kyc-document-validator/internal/core/ports"
)

// StageDocumentsUseCase stores uploads under unique keys for the length of one run.
type StageDocumentsUseCase struct {
	storage ports.ObjectStorage
	logger  *slog.Logger
}

func NewStageDocumentsUseCase(storage ports.ObjectStorage, logger *slog.Logger) *StageDocumentsUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &StageDocumentsUseCase{
		storage: storage,
		logger:  logger,
	}
}

func (uc *StageDocumentsUseCase) Stage(ctx context.Context, filename string, body io.Reader) (domain.SourceDocument, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == "/" {
		return domain.SourceDocument{}, domain.WrapError(domain.ErrInvalidInput, "stage document", fmt.Errorf("filename is required"))
	}

	storageKey := fmt.Sprintf("%s_%s", uuid.NewString(), sanitizeFilename(name))
	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return domain.SourceDocument{}, fmt.Errorf("save to object storage: %w", err)
	}

	return domain.SourceDocument{
		Filename:   name,
		StorageKey: storageKey,
	}, nil
}

// Release is best effort; a leftover staged file never affects a later run.
func (uc *StageDocumentsUseCase) Release(ctx context.Context, docs []domain.SourceDocument) {
	for _, doc := range docs {
		if err := uc.storage.Delete(ctx, doc.StorageKey); err != nil {
			uc.logger.Warn("staged_document_release_failed", "storage_key", doc.StorageKey, "error", err)
		}
	}
}

// ListStored exposes everything already present in storage as source documents,
// keyed by their own names. Used when storage points at an input directory.
func ListStored(ctx context.Context, storage ports.ObjectStorage) ([]domain.SourceDocument, error) {
	keys, err := storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stored documents: %w", err)
	}
	docs := make([]domain.SourceDocument, 0, len(keys))
	for _, key := range keys {
		docs = append(docs, domain.SourceDocument{Filename: key, StorageKey: key})
	}
	return docs, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
