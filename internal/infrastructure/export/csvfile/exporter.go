package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
	"github.com/kirillkom/kyc-document-validator/internal/infrastructure/export"
)

// Exporter writes doc_results_<id8>.csv and checklist_<id8>.csv into dir.
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
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	docRows := make([][]string, 0, len(report.Results))
	for _, result := range report.Results {
		docRows = append(docRows, export.DocumentRow(result))
	}
	docPath := filepath.Join(e.dir, DocumentsFileName(report))
	if err := writeTable(docPath, export.DocumentHeader, docRows); err != nil {
		return err
	}

	checklistRows := make([][]string, 0, len(report.Checklist))
	for _, entry := range report.Checklist {
		checklistRows = append(checklistRows, export.ChecklistRow(entry))
	}
	checklistPath := filepath.Join(e.dir, ChecklistFileName(report))
	if err := writeTable(checklistPath, export.ChecklistHeader, checklistRows); err != nil {
		return err
	}

	e.logger.Info("report_exported",
		"format", "csv",
		"batch_id", report.BatchID,
		"documents_path", docPath,
		"checklist_path", checklistPath,
	)
	return nil
}

func DocumentsFileName(report *domain.BatchReport) string {
	return fmt.Sprintf("doc_results_%s.csv", report.ShortID())
}

func ChecklistFileName(report *domain.BatchReport) string {
	return fmt.Sprintf("checklist_%s.csv", report.ShortID())
}

func writeTable(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", filepath.Base(path), err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s rows: %w", filepath.Base(path), err)
	}
	return f.Close()
}
