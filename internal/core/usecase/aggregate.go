package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
	"github.com/kirillkom/kyc-document-validator/internal/core/ports"
)

const compliantThreshold = 70.0

type ValidateBatchUseCase struct {
	analyzer *DocumentAnalyzer
	catalog  *domain.Catalog
	observer ports.BatchObserver
	validate *validator.Validate
	workers  int
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

func NewValidateBatchUseCase(
	analyzer *DocumentAnalyzer,
	catalog *domain.Catalog,
	observer ports.BatchObserver,
	workers int,
	logger *slog.Logger,
) *ValidateBatchUseCase {
	if workers <= 0 {
		workers = 1
	}
	if observer == nil {
		observer = noopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ValidateBatchUseCase{
		analyzer: analyzer,
		catalog:  catalog,
		observer: observer,
		validate: validator.New(),
		workers:  workers,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (uc *ValidateBatchUseCase) Validate(ctx context.Context, req ports.ValidationRequest) (*domain.BatchReport, error) {
	if err := uc.checkRequest(req); err != nil {
		return nil, err
	}

	outcomes := uc.analyzeAll(ctx, req.Documents, req.Strict)
	results, tally := foldOutcomes(outcomes)

	required, ok := uc.catalog.RequiredDocuments(req.RequiredSet)
	if !ok {
		uc.logger.Warn("requirement_set_unknown", "required_set", req.RequiredSet)
	}
	checklist := BuildChecklist(results, req.RequiredSet, required)

	report := &domain.BatchReport{
		BatchID:     uc.newID(),
		RequiredSet: req.RequiredSet,
		Strict:      req.Strict,
		Results:     results,
		Checklist:   checklist,
		Summary:     summarize(len(req.Documents), tally, checklist, uc.now()),
	}
	uc.observer.ObserveBatch(report)

	uc.logger.Info("batch_completed",
		"batch_id", report.BatchID,
		"required_set", report.RequiredSet,
		"documents", report.Summary.TotalDocuments,
		"processed", report.Summary.ProcessedSuccessfully,
		"checklist_rows", len(report.Checklist),
		"compliance_rate", report.Summary.ComplianceRate,
		"issues", report.Summary.IssuesFound,
	)
	return report, nil
}

func (uc *ValidateBatchUseCase) checkRequest(req ports.ValidationRequest) error {
	if len(req.Documents) == 0 {
		return domain.WrapError(domain.ErrInvalidInput, "validate batch", errors.New("no documents supplied"))
	}
	if err := uc.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return domain.WrapError(domain.ErrInvalidInput, "validate batch",
				fmt.Errorf("field %s failed %q", first.Namespace(), first.Tag()))
		}
		return domain.WrapError(domain.ErrInvalidInput, "validate batch", err)
	}
	return nil
}

// analyzeAll keeps outcomes in input order regardless of the worker count.
func (uc *ValidateBatchUseCase) analyzeAll(ctx context.Context, docs []domain.SourceDocument, strict bool) []domain.Outcome {
	outcomes := make([]domain.Outcome, len(docs))

	var group errgroup.Group
	group.SetLimit(uc.workers)
	for i, doc := range docs {
		i, doc := i, doc
		group.Go(func() error {
			start := time.Now()
			outcomes[i] = uc.analyzer.Analyze(ctx, doc, strict)
			uc.observer.ObserveDocument(outcomes[i], time.Since(start))
			return nil
		})
	}
	_ = group.Wait()

	return outcomes
}

type batchTally struct {
	processed       int
	confidenceTotal float64
	issues          int
}

func foldOutcomes(outcomes []domain.Outcome) ([]domain.DocumentResult, batchTally) {
	results := make([]domain.DocumentResult, 0, len(outcomes))
	var tally batchTally
	for _, outcome := range outcomes {
		results = append(results, outcome.Result)
		tally.issues += len(outcome.Result.Issues)
		if outcome.Failure != nil || outcome.Result.DocType == domain.DocError {
			continue
		}
		tally.processed++
		tally.confidenceTotal += outcome.Result.ConfidenceScore
	}
	return results, tally
}

// BuildChecklist emits one row per (client, required type), clients in order of
// first appearance. A type counts as present only through non-fail documents;
// the compliance score then averages every document of that type the client sent.
func BuildChecklist(results []domain.DocumentResult, setID string, required []domain.DocumentType) []domain.ChecklistEntry {
	if len(required) == 0 {
		return []domain.ChecklistEntry{}
	}

	clientOrder := make([]string, 0)
	byClient := make(map[string][]domain.DocumentResult)
	for _, result := range results {
		if _, seen := byClient[result.ClientID]; !seen {
			clientOrder = append(clientOrder, result.ClientID)
		}
		byClient[result.ClientID] = append(byClient[result.ClientID], result)
	}

	checklist := make([]domain.ChecklistEntry, 0, len(clientOrder)*len(required))
	for _, clientID := range clientOrder {
		docs := byClient[clientID]
		present := presentTypes(docs)
		for _, docType := range required {
			checklist = append(checklist, checklistEntry(clientID, setID, docType, docs, present[docType]))
		}
	}
	return checklist
}

func presentTypes(docs []domain.DocumentResult) map[domain.DocumentType]bool {
	present := make(map[domain.DocumentType]bool, len(docs))
	for _, doc := range docs {
		if doc.Status != domain.StatusFail {
			present[doc.DocType] = true
		}
	}
	return present
}

func checklistEntry(
	clientID, setID string,
	docType domain.DocumentType,
	docs []domain.DocumentResult,
	present bool,
) domain.ChecklistEntry {
	entry := domain.ChecklistEntry{
		ClientID:    clientID,
		RequiredSet: setID,
		DocType:     docType,
		Present:     present,
	}
	if !present {
		entry.Status = domain.ChecklistMissing
		entry.ComplianceScore = 0
		entry.Notes = "Required document not provided"
		return entry
	}

	total, count := 0.0, 0
	for _, doc := range docs {
		if doc.DocType == docType {
			total += doc.ConfidenceScore
			count++
		}
	}
	avg := clampScore(total / float64(count))

	entry.ComplianceScore = avg
	entry.Status = domain.ChecklistNeedsReview
	if avg >= compliantThreshold {
		entry.Status = domain.ChecklistCompliant
	}
	entry.Notes = fmt.Sprintf("Document found with %.1f%% confidence", avg)
	return entry
}

func summarize(total int, tally batchTally, checklist []domain.ChecklistEntry, now time.Time) domain.BatchSummary {
	summary := domain.BatchSummary{
		TotalDocuments:        total,
		ProcessedSuccessfully: tally.processed,
		IssuesFound:           tally.issues,
		Timestamp:             now.UTC().Format(time.RFC3339),
	}
	if tally.processed > 0 {
		summary.AvgConfidence = tally.confidenceTotal / float64(tally.processed)
	}
	if len(checklist) > 0 {
		compliant := 0
		for _, entry := range checklist {
			if entry.Status == domain.ChecklistCompliant {
				compliant++
			}
		}
		summary.ComplianceRate = 100 * float64(compliant) / float64(len(checklist))
	}
	return summary
}

type noopObserver struct{}

func (noopObserver) ObserveDocument(domain.Outcome, time.Duration) {}
func (noopObserver) ObserveBatch(*domain.BatchReport)              {}
