package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
	"github.com/kirillkom/kyc-document-validator/internal/core/ports"
)

const extractionIssuePrefix = "Error extracting text: "

// DocumentAnalyzer turns one source document into a DocumentResult. It never
// returns an error: failures become error-typed results carried in the Outcome.
type DocumentAnalyzer struct {
	extractor  ports.TextExtractor
	classifier *KeywordClassifier
	fields     *FieldExtractor
	quality    *QualityValidator
	clientID   func(filename string) string
	logger     *slog.Logger
}

func NewDocumentAnalyzer(
	extractor ports.TextExtractor,
	classifier *KeywordClassifier,
	fields *FieldExtractor,
	quality *QualityValidator,
	logger *slog.Logger,
) *DocumentAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentAnalyzer{
		extractor:  extractor,
		classifier: classifier,
		fields:     fields,
		quality:    quality,
		clientID:   ResolveClientID,
		logger:     logger,
	}
}

func (a *DocumentAnalyzer) Analyze(ctx context.Context, doc domain.SourceDocument, strict bool) domain.Outcome {
	filename := filepath.Base(filepath.ToSlash(doc.Filename))
	clientID := a.clientID(doc.Filename)

	extraction, err := a.extractor.Extract(ctx, doc)
	if err != nil {
		a.logger.Warn("document_extraction_failed", "filename", filename, "client_id", clientID, "error", err)
		return domain.Outcome{
			Result:  errorResult(clientID, filename, extractionIssuePrefix+err.Error()),
			Failure: domain.WrapError(domain.ErrExtractionFailed, "extract text", err),
		}
	}

	result, err := a.analyzeText(clientID, filename, extraction, strict)
	if err != nil {
		a.logger.Error("document_processing_failed", "filename", filename, "error", err)
		return domain.Outcome{
			Result:  errorResult(ErrorClientID, filename, fmt.Sprintf("Processing error: %v", err)),
			Failure: domain.WrapError(domain.ErrProcessingFailed, "analyze document", err),
		}
	}

	a.logger.Debug("document_analyzed",
		"filename", filename,
		"client_id", clientID,
		"doc_type", result.DocType,
		"confidence", result.ConfidenceScore,
		"status", result.Status,
		"issues", len(result.Issues),
	)
	return domain.Outcome{Result: result}
}

// analyzeText recovers from any panic in the classify/validate/extract chain.
func (a *DocumentAnalyzer) analyzeText(
	clientID, filename string,
	extraction domain.Extraction,
	strict bool,
) (result domain.DocumentResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	docType, confidence := a.classifier.Classify(extraction.Text)
	report := a.quality.Validate(extraction.Text, docType, strict)
	data := a.fields.Extract(extraction.Text, docType)

	return domain.DocumentResult{
		ClientID:        clientID,
		Filename:        filename,
		DocType:         docType,
		ConfidenceScore: confidence,
		Status:          report.Status,
		Issues:          report.Issues,
		ExtractedData:   data,
		FileSize:        extraction.FileSize,
		PageCount:       extraction.PageCount,
	}, nil
}

func errorResult(clientID, filename, issue string) domain.DocumentResult {
	return domain.DocumentResult{
		ClientID:        clientID,
		Filename:        filename,
		DocType:         domain.DocError,
		ConfidenceScore: 0,
		Status:          domain.StatusFail,
		Issues:          []string{issue},
		ExtractedData:   map[string]string{},
	}
}
