package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrExtractionFailed  = errors.New("extraction failed")
	ErrProcessingFailed  = errors.New("processing failed")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrInvalidCatalog    = errors.New("invalid catalog")
	ErrTemporary         = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
