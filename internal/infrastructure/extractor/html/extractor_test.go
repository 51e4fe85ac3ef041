package html

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

const statementPage = `<!DOCTYPE html>
<html>
<head><title>Online banking</title><style>p { color: red }</style></head>
<body>
  <h1>Bank Statement</h1>
  <script>var balance = 0;</script>
  <p><b>Name:</b> Jane   Doe</p>
  <table>
    <tr><td>Account Number:</td><td>12345678</td></tr>
    <tr><td>Closing balance</td><td>&euro;1,204.00</td></tr>
  </table>
</body>
</html>`

func TestExtractVisibleText(t *testing.T) {
	ex := NewExtractor(&storageFake{body: statementPage})

	got, err := ex.Extract(context.Background(), domain.SourceDocument{Filename: "ACME_statement.html", StorageKey: "k"})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := "Bank Statement\nName: Jane Doe\nAccount Number: 12345678\nClosing balance €1,204.00"
	if got.Text != want {
		t.Fatalf("unexpected text:\n%q\nwant\n%q", got.Text, want)
	}
	if got.PageCount != 1 || got.FileSize != int64(len(statementPage)) {
		t.Fatalf("unexpected metadata %+v", got)
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	ex := NewExtractor(&storageFake{body: "<html><head><title>x</title></head><body></body></html>"})

	got, err := ex.Extract(context.Background(), domain.SourceDocument{Filename: "a.html", StorageKey: "k"})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got.Text != "" {
		t.Fatalf("expected no visible text, got %q", got.Text)
	}
}

func TestExtractOpenError(t *testing.T) {
	ex := NewExtractor(&storageFake{err: domain.WrapError(domain.ErrTemporary, "open file", errors.New("EMFILE"))})

	_, err := ex.Extract(context.Background(), domain.SourceDocument{Filename: "a.html", StorageKey: "k"})
	if !errors.Is(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error, got %v", err)
	}
}
