// Package export renders a finished batch as flat tables and fans it out to
// the configured report sinks.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
	"github.com/kirillkom/kyc-document-validator/internal/core/ports"
)

var (
	DocumentHeader = []string{
		"client_id", "filename", "doc_type", "confidence_score", "status",
		"issues", "extracted_data", "file_size", "page_count",
	}
	ChecklistHeader = []string{
		"client_id", "required_set", "doc_type", "present", "status",
		"compliance_score", "notes",
	}
)

const issueSeparator = "; "

func DocumentRow(r domain.DocumentResult) []string {
	return []string{
		r.ClientID,
		r.Filename,
		string(r.DocType),
		FormatScore(r.ConfidenceScore),
		string(r.Status),
		strings.Join(r.Issues, issueSeparator),
		fieldsJSON(r.ExtractedData),
		strconv.FormatInt(r.FileSize, 10),
		strconv.Itoa(r.PageCount),
	}
}

func ChecklistRow(e domain.ChecklistEntry) []string {
	return []string{
		e.ClientID,
		e.RequiredSet,
		string(e.DocType),
		strconv.FormatBool(e.Present),
		string(e.Status),
		FormatScore(e.ComplianceScore),
		e.Notes,
	}
}

// FormatScore keeps one decimal, like the console summary.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// fieldsJSON encodes with sorted keys so exports are reproducible.
func fieldsJSON(fields map[string]string) string {
	if len(fields) == 0 {
		return "{}"
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

// Multi runs every exporter even if an earlier one fails.
type Multi []ports.ReportExporter

func (m Multi) Export(ctx context.Context, report *domain.BatchReport) error {
	var errs []error
	for _, exporter := range m {
		if err := exporter.Export(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
