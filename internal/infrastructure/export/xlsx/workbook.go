package xlsx

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
	"github.com/kirillkom/kyc-document-validator/internal/infrastructure/export"
)

const (
	SheetDocuments = "Documents"
	SheetChecklist = "Checklist"
	SheetSummary   = "Summary"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Workbook renders the batch as an XLSX file with one sheet per table.
func Workbook(report *domain.BatchReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with Sheet1; rename it rather than leaving an empty sheet.
	if err := f.SetSheetName(f.GetSheetName(0), SheetDocuments); err != nil {
		return nil, fmt.Errorf("xlsx rename sheet: %w", err)
	}
	for _, name := range []string{SheetChecklist, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsx new sheet %s: %w", name, err)
		}
	}

	docRows := make([][]any, 0, len(report.Results))
	for _, r := range report.Results {
		row := toCells(export.DocumentRow(r))
		row[3] = r.ConfidenceScore
		row[7] = r.FileSize
		row[8] = r.PageCount
		docRows = append(docRows, row)
	}
	if err := writeSheet(f, SheetDocuments, export.DocumentHeader, docRows); err != nil {
		return nil, err
	}

	checklistRows := make([][]any, 0, len(report.Checklist))
	for _, e := range report.Checklist {
		row := toCells(export.ChecklistRow(e))
		row[3] = e.Present
		row[5] = e.ComplianceScore
		checklistRows = append(checklistRows, row)
	}
	if err := writeSheet(f, SheetChecklist, export.ChecklistHeader, checklistRows); err != nil {
		return nil, err
	}

	s := report.Summary
	summaryRows := [][]any{
		{"batch_id", report.BatchID},
		{"required_set", report.RequiredSet},
		{"strict", report.Strict},
		{"total_documents", s.TotalDocuments},
		{"processed_successfully", s.ProcessedSuccessfully},
		{"compliance_rate", s.ComplianceRate},
		{"avg_confidence", s.AvgConfidence},
		{"issues_found", s.IssuesFound},
		{"timestamp", s.Timestamp},
	}
	if err := writeSheet(f, SheetSummary, []string{"metric", "value"}, summaryRows); err != nil {
		return nil, err
	}

	_ = f.SetColWidth(SheetDocuments, "A", "B", 24)
	_ = f.SetColWidth(SheetDocuments, "F", "G", 60)
	_ = f.SetColWidth(SheetChecklist, "A", "C", 20)
	_ = f.SetColWidth(SheetChecklist, "G", "G", 44)
	_ = f.SetColWidth(SheetSummary, "A", "B", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func FileName(report *domain.BatchReport) string {
	return fmt.Sprintf("kyc_report_%s.xlsx", report.ShortID())
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// Exporter writes the workbook next to the CSV tables.
type Exporter struct {
	dir    string
	logger *slog.Logger
}

func NewExporter(dir string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{dir: dir, logger: logger}
}

func (e *Exporter) Export(_ context.Context, report *domain.BatchReport) error {
	start := time.Now()

	raw, err := Workbook(report)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(e.dir, FileName(report))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	e.logger.Info("report_exported",
		"format", "xlsx",
		"batch_id", report.BatchID,
		"path", path,
		"rows", len(report.Results)+len(report.Checklist),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
