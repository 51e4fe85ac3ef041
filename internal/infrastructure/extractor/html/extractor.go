// Package html extracts the visible text of saved web pages and e-statements.
package html

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
	"github.com/kirillkom/kyc-document-validator/internal/core/ports"
)

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

	text, err := visibleText(raw)
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("parse html: %w", err)
	}
	return domain.Extraction{
		Text:      text,
		PageCount: 1,
		FileSize:  int64(len(raw)),
	}, nil
}

// visibleText keeps one line per block element and drops script, style and
// head content. Inline runs on the same line are joined with single spaces.
func visibleText(raw []byte) (string, error) {
	z := html.NewTokenizer(bytes.NewReader(raw))

	var (
		lines   []string
		current []string
		hidden  int
	)
	flush := func() {
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = current[:0]
		}
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", err
			}
			flush()
			return strings.Join(lines, "\n"), nil
		case html.TextToken:
			if hidden > 0 {
				continue
			}
			if words := strings.Fields(string(z.Text())); len(words) > 0 {
				current = append(current, strings.Join(words, " "))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := atom.Lookup(name)
			if isHidden(tag) {
				hidden++
			}
			if isBlock(tag) {
				flush()
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := atom.Lookup(name)
			if isHidden(tag) && hidden > 0 {
				hidden--
			}
			if isBlock(tag) {
				flush()
			}
		}
	}
}

func isHidden(tag atom.Atom) bool {
	switch tag {
	case atom.Script, atom.Style, atom.Head, atom.Noscript, atom.Template:
		return true
	default:
		return false
	}
}

func isBlock(tag atom.Atom) bool {
	switch tag {
	case atom.P, atom.Div, atom.Br, atom.Tr, atom.Li, atom.Table, atom.Section, atom.Article,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Header, atom.Footer,
		atom.Ul, atom.Ol, atom.Dt, atom.Dd, atom.Hr, atom.Title, atom.Body, atom.Pre, atom.Address:
		return true
	default:
		return false
	}
}
