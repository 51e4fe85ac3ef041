package plaintext

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
)

type storageFake struct {
	body string
	err  error
}

func (f *storageFake) Save(context.Context, string, io.Reader) error { return nil }

func (f *storageFake) Open(context.Context, string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func (f *storageFake) Delete(context.Context, string) error { return nil }

func (f *storageFake) List(context.Context) ([]string, error) { return nil, nil }

func TestExtractText(t *testing.T) {
	body := "  Bank Statement\nAccount Number: 12345678\n"
	ex := NewExtractor(&storageFake{body: body})

	got, err := ex.Extract(context.Background(), domain.SourceDocument{Filename: "ACME_bank.txt", StorageKey: "k"})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got.Text != "Bank Statement\nAccount Number: 12345678" {
		t.Fatalf("unexpected text %q", got.Text)
	}
	if got.PageCount != 1 || got.FileSize != int64(len(body)) {
		t.Fatalf("unexpected metadata %+v", got)
	}
}

func TestExtractRejectsBinary(t *testing.T) {
	ex := NewExtractor(&storageFake{body: string([]byte{0xff, 0xfe, 0x00})})

	if _, err := ex.Extract(context.Background(), domain.SourceDocument{Filename: "blob.txt", StorageKey: "k"}); err == nil {
		t.Fatalf("expected error for binary content")
	}
}

func TestExtractOpenError(t *testing.T) {
	ex := NewExtractor(&storageFake{err: domain.WrapError(domain.ErrTemporary, "open file", errors.New("EMFILE"))})

	_, err := ex.Extract(context.Background(), domain.SourceDocument{Filename: "a.txt", StorageKey: "k"})
	if !errors.Is(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error, got %v", err)
	}
}
