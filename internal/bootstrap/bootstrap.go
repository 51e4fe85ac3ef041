package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kirillkom/kyc-document-validator/internal/config"
	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
	"github.com/kirillkom/kyc-document-validator/internal/core/ports"
	"github.com/kirillkom/kyc-document-validator/internal/core/usecase"
	"github.com/kirillkom/kyc-document-validator/internal/infrastructure/export"
	"github.com/kirillkom/kyc-document-validator/internal/infrastructure/export/csvfile"
	"github.com/kirillkom/kyc-document-validator/internal/infrastructure/export/xlsx"
	"github.com/kirillkom/kyc-document-validator/internal/infrastructure/extractor"
	htmlextractor "github.com/kirillkom/kyc-document-validator/internal/infrastructure/extractor/html"
	"github.com/kirillkom/kyc-document-validator/internal/infrastructure/extractor/pdf"
	"github.com/kirillkom/kyc-document-validator/internal/infrastructure/extractor/plaintext"
	"github.com/kirillkom/kyc-document-validator/internal/infrastructure/queue/nats"
	"github.com/kirillkom/kyc-document-validator/internal/infrastructure/resilience"
	"github.com/kirillkom/kyc-document-validator/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/kyc-document-validator/internal/observability/metrics"
)

// Options selects where source documents live. An empty SourceDir stages
// uploads under Config.StoragePath; otherwise the directory is read in place.
type Options struct {
	SourceDir string
}

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Catalog *domain.Catalog

	Registry   *prometheus.Registry
	Storage    ports.ObjectStorage
	Extractors *extractor.Router
	Validator  *usecase.ValidateBatchUseCase
	Stager     *usecase.StageDocumentsUseCase

	// Publisher is nil when NATS_URL is empty.
	Publisher ports.ReportExporter

	closeFn func()
}

func New(cfg config.Config, logger *slog.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var storage *localfs.Storage
	if opts.SourceDir != "" {
		storage, err = localfs.Open(opts.SourceDir)
	} else {
		storage, err = localfs.New(cfg.StoragePath)
	}
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(
		resilience.DefaultConfig().WithLimits(cfg.ResilienceRetryMaxAttempts, cfg.ResilienceBreakerEnabled),
		logger,
	)

	extractors := extractor.NewRouter(executor).
		Register(".pdf", pdf.NewExtractor(storage, cfg.PDFMaxPages)).
		Register(".txt", plaintext.NewExtractor(storage)).
		Register(".html", htmlextractor.NewExtractor(storage)).
		Register(".htm", htmlextractor.NewExtractor(storage))

	registry := metrics.NewRegistry()
	batchMetrics := metrics.NewBatchMetrics(registry)

	analyzer := usecase.NewDocumentAnalyzer(
		extractors,
		usecase.NewKeywordClassifier(catalog),
		usecase.NewFieldExtractor(),
		usecase.NewQualityValidator(),
		logger,
	)
	validator := usecase.NewValidateBatchUseCase(analyzer, catalog, batchMetrics, cfg.BatchWorkers, logger)
	stager := usecase.NewStageDocumentsUseCase(storage, logger)

	app := &App{
		Config:     cfg,
		Logger:     logger,
		Catalog:    catalog,
		Registry:   registry,
		Storage:    storage,
		Extractors: extractors,
		Validator:  validator,
		Stager:     stager,
	}

	if strings.TrimSpace(cfg.NATSURL) != "" {
		publisher, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
			ResilienceExecutor: executor,
			Logger:             logger,
		})
		if err != nil {
			return nil, fmt.Errorf("init batch publisher: %w", err)
		}
		app.Publisher = publisher
		app.closeFn = publisher.Close
	}

	return app, nil
}

// SourceDocuments lists stored files that have a registered extractor.
func (a *App) SourceDocuments(ctx context.Context) ([]domain.SourceDocument, error) {
	stored, err := usecase.ListStored(ctx, a.Storage)
	if err != nil {
		return nil, err
	}
	docs := make([]domain.SourceDocument, 0, len(stored))
	for _, doc := range stored {
		if a.Extractors.Supports(doc.Filename) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// ReportExporters builds the file exporters named in formats, writing into dir.
func ReportExporters(dir string, formats []string, logger *slog.Logger) (export.Multi, error) {
	exporters := make(export.Multi, 0, len(formats))
	for _, format := range formats {
		switch strings.ToLower(strings.TrimSpace(format)) {
		case "csv":
			exporters = append(exporters, csvfile.NewExporter(dir, logger))
		case "xlsx":
			exporters = append(exporters, xlsx.NewExporter(dir, logger))
		case "":
		default:
			return nil, domain.WrapError(domain.ErrInvalidInput, "build exporters", fmt.Errorf("unknown report format %q", format))
		}
	}
	return exporters, nil
}
