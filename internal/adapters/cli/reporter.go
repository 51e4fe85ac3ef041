package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
)

type TableConfig struct {
	ClientWidth int
	TypeWidth   int
	StatusWidth int
	ScoreWidth  int
	NotesWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		ClientWidth: 16,
		TypeWidth:   18,
		StatusWidth: 12,
		ScoreWidth:  7,
		NotesWidth:  44,
	}
}

// Reporter prints the batch summary and per-client checklist as plain text.
type Reporter struct {
	writer io.Writer
	config TableConfig
	tmpl   *template.Template
}

const reportTemplate = `
Validation Summary ({{.BatchID}})
- Requirement Set: {{.RequiredSet}}{{if .Strict}} (strict){{end}}
- Total Documents: {{.Summary.TotalDocuments}}
- Successfully Processed: {{.Summary.ProcessedSuccessfully}}
- Compliance Rate: {{printf "%.1f" .Summary.ComplianceRate}}%
- Average Confidence: {{printf "%.1f" .Summary.AvgConfidence}}%
- Issues Found: {{.Summary.IssuesFound}}
- Processed at: {{.Summary.Timestamp}}

{{separator}}
{{header}}
{{separator}}
{{range .Checklist}}{{formatRow .}}
{{end}}{{separator}}
{{range .Results}}{{if .Issues}}
{{.Filename}} [{{.Status}}]{{range .Issues}}
  - {{.}}{{end}}
{{end}}{{end}}`

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	r := &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
	r.tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
		"separator": r.separator,
		"header":    r.header,
		"formatRow": r.formatRow,
	}).Parse(reportTemplate))
	return r
}

func (r *Reporter) Handle(report *domain.BatchReport) error {
	if err := r.tmpl.Execute(r.writer, report); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func (r *Reporter) separator() string {
	c := r.config
	return fmt.Sprintf("+%s+%s+%s+%s+%s+",
		strings.Repeat("-", c.ClientWidth+2),
		strings.Repeat("-", c.TypeWidth+2),
		strings.Repeat("-", c.StatusWidth+2),
		strings.Repeat("-", c.ScoreWidth+2),
		strings.Repeat("-", c.NotesWidth+2))
}

func (r *Reporter) header() string {
	return r.row("Client", "Document", "Status", "Score", "Notes")
}

func (r *Reporter) formatRow(e domain.ChecklistEntry) string {
	return r.row(e.ClientID, string(e.DocType), string(e.Status), fmt.Sprintf("%.1f", e.ComplianceScore), e.Notes)
}

func (r *Reporter) row(client, docType, status, score, notes string) string {
	c := r.config
	return fmt.Sprintf("| %-*s | %-*s | %-*s | %*s | %-*s |",
		c.ClientWidth, client,
		c.TypeWidth, docType,
		c.StatusWidth, status,
		c.ScoreWidth, score,
		c.NotesWidth, notes)
}
