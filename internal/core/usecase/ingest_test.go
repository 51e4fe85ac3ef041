package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
)

type stageStorageFake struct {
	saved     map[string]string
	deleted   []string
	keys      []string
	saveErr   error
	deleteErr error
	listErr   error
}

func (f *stageStorageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	if f.saved == nil {
		f.saved = make(map[string]string)
	}
	f.saved[key] = string(raw)
	return nil
}

func (f *stageStorageFake) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (f *stageStorageFake) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.deleteErr
}

func (f *stageStorageFake) List(context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.keys, nil
}

func TestStageSuccess(t *testing.T) {
	storage := &stageStorageFake{}
	uc := NewStageDocumentsUseCase(storage, nil)

	doc, err := uc.Stage(context.Background(), "CLIENT001 passport scan.pdf", bytes.NewBufferString("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if doc.Filename != "CLIENT001 passport scan.pdf" {
		t.Fatalf("expected original filename, got %s", doc.Filename)
	}
	if !strings.HasSuffix(doc.StorageKey, "_CLIENT001_passport_scan.pdf") {
		t.Fatalf("expected sanitized key suffix, got %s", doc.StorageKey)
	}
	if storage.saved[doc.StorageKey] != "%PDF-1.4" {
		t.Fatalf("expected saved body, got %q", storage.saved[doc.StorageKey])
	}
}

func TestStageStripsDirectories(t *testing.T) {
	uc := NewStageDocumentsUseCase(&stageStorageFake{}, nil)

	doc, err := uc.Stage(context.Background(), "../../etc/ACME_bill.txt", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if doc.Filename != "ACME_bill.txt" {
		t.Fatalf("expected base name, got %s", doc.Filename)
	}
	if strings.Contains(doc.StorageKey, "/") {
		t.Fatalf("storage key must not contain separators: %s", doc.StorageKey)
	}
}

func TestStageRejectsEmptyFilename(t *testing.T) {
	uc := NewStageDocumentsUseCase(&stageStorageFake{}, nil)

	_, err := uc.Stage(context.Background(), "  ", strings.NewReader("x"))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestStageStorageError(t *testing.T) {
	uc := NewStageDocumentsUseCase(&stageStorageFake{saveErr: errors.New("disk full")}, nil)

	_, err := uc.Stage(context.Background(), "ACME_bill.txt", strings.NewReader("x"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "save to object storage") {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestReleaseDeletesEveryKeyEvenOnError(t *testing.T) {
	storage := &stageStorageFake{deleteErr: errors.New("busy")}
	uc := NewStageDocumentsUseCase(storage, nil)

	uc.Release(context.Background(), []domain.SourceDocument{
		{Filename: "a.pdf", StorageKey: "k1"},
		{Filename: "b.pdf", StorageKey: "k2"},
	})
	if len(storage.deleted) != 2 || storage.deleted[0] != "k1" || storage.deleted[1] != "k2" {
		t.Fatalf("expected both keys deleted, got %v", storage.deleted)
	}
}

func TestListStored(t *testing.T) {
	docs, err := ListStored(context.Background(), &stageStorageFake{keys: []string{"ACME_bill.txt", "ACME_passport.pdf"}})
	if err != nil {
		t.Fatalf("ListStored() error = %v", err)
	}
	if len(docs) != 2 || docs[1].Filename != "ACME_passport.pdf" || docs[1].StorageKey != "ACME_passport.pdf" {
		t.Fatalf("unexpected docs %+v", docs)
	}

	if _, err := ListStored(context.Background(), &stageStorageFake{listErr: errors.New("denied")}); err == nil {
		t.Fatalf("expected list error")
	}
}
