package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kirillkom/kyc-document-validator/internal/adapters/cli"
	"github.com/kirillkom/kyc-document-validator/internal/bootstrap"
	"github.com/kirillkom/kyc-document-validator/internal/config"
	"github.com/kirillkom/kyc-document-validator/internal/core/ports"
	"github.com/kirillkom/kyc-document-validator/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	// stdout carries the report
	logger := logging.New(os.Stderr, "kycvalidate", cfg.LogLevel)
	slog.SetDefault(logger)

	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewCLI(cli.Options{
		Catalog: catalog,
		Defaults: cli.Defaults{
			RequiredSet: cfg.DefaultRequiredSet,
			Strict:      cfg.StrictMode,
			OutDir:      cfg.ReportDir,
			Formats:     cfg.ReportFormats,
		},
		OpenDir: func(ctx context.Context, dir string) (*cli.Workspace, error) {
			return openWorkspace(ctx, cfg, logger, dir)
		},
		Exporters: func(dir string, formats []string) (ports.ReportExporter, error) {
			return bootstrap.ReportExporters(dir, formats, logger)
		},
		Logger: logger,
	})

	if err := app.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func openWorkspace(ctx context.Context, cfg config.Config, logger *slog.Logger, dir string) (*cli.Workspace, error) {
	app, err := bootstrap.New(cfg, logger, bootstrap.Options{SourceDir: dir})
	if err != nil {
		return nil, err
	}
	docs, err := app.SourceDocuments(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	return &cli.Workspace{
		Validator: app.Validator,
		Documents: docs,
		Publisher: app.Publisher,
		Close:     app.Close,
	}, nil
}
