package xlsx

import (
	"bytes"
	"context"
	"path/filepath"
	"slices"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
)

func sampleReport() *domain.BatchReport {
	return &domain.BatchReport{
		BatchID:     "feedbeef-0000-1111-2222-333344445555",
		RequiredSet: "individual_basic",
		Strict:      true,
		Results: []domain.DocumentResult{
			{ClientID: "CLIENT001", Filename: "CLIENT001_passport.pdf", DocType: domain.DocPassport, ConfidenceScore: 75, Status: domain.StatusPass, FileSize: 745, PageCount: 1},
		},
		Checklist: []domain.ChecklistEntry{
			{ClientID: "CLIENT001", RequiredSet: "individual_basic", DocType: domain.DocPassport, Present: true, Status: domain.ChecklistCompliant, ComplianceScore: 75, Notes: "Document found with 75.0% confidence"},
			{ClientID: "CLIENT001", RequiredSet: "individual_basic", DocType: domain.DocUtilityBill, Status: domain.ChecklistMissing, Notes: "Required document not provided"},
		},
		Summary: domain.BatchSummary{TotalDocuments: 1, ProcessedSuccessfully: 1, ComplianceRate: 50, AvgConfidence: 75, Timestamp: "2025-03-01T12:00:00Z"},
	}
}

func TestWorkbookSheets(t *testing.T) {
	raw, err := Workbook(sampleReport())
	if err != nil {
		t.Fatalf("Workbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); !slices.Equal(sheets, []string{SheetDocuments, SheetChecklist, SheetSummary}) {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	docs, err := f.GetRows(SheetDocuments)
	if err != nil {
		t.Fatalf("GetRows(Documents) error = %v", err)
	}
	if len(docs) != 2 || docs[0][0] != "client_id" || docs[1][1] != "CLIENT001_passport.pdf" {
		t.Fatalf("unexpected documents sheet %v", docs)
	}

	checklist, err := f.GetRows(SheetChecklist)
	if err != nil {
		t.Fatalf("GetRows(Checklist) error = %v", err)
	}
	if len(checklist) != 3 || checklist[2][4] != "missing" {
		t.Fatalf("unexpected checklist sheet %v", checklist)
	}

	batchID, err := f.GetCellValue(SheetSummary, "B2")
	if err != nil || batchID != "feedbeef-0000-1111-2222-333344445555" {
		t.Fatalf("unexpected summary batch id %q (%v)", batchID, err)
	}
}

func TestExporterWritesFile(t *testing.T) {
	dir := t.TempDir()
	report := sampleReport()

	if err := NewExporter(dir, nil).Export(context.Background(), report); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	f, err := excelize.OpenFile(filepath.Join(dir, "kyc_report_feedbeef.xlsx"))
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	f.Close()
}
