package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
	"github.com/kirillkom/kyc-document-validator/internal/core/ports"
)

var errNoFiles = errors.New("no files uploaded")

type validateCmd struct {
	cli *CLI

	dir         string
	requiredSet string
	strict      bool
	outDir      string
	formats     []string
}

func (cli *CLI) newValidateCmd() *cobra.Command {
	vc := &validateCmd{cli: cli}
	defaults := cli.opts.Defaults

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate every supported document in a directory",
		Args:  cobra.NoArgs,
		RunE:  vc.run,
	}

	cmd.Flags().StringVar(&vc.dir, "dir", "", "Directory with the documents to validate")
	cmd.Flags().StringVar(&vc.requiredSet, "set", defaults.RequiredSet, "Requirement set to check clients against")
	cmd.Flags().BoolVar(&vc.strict, "strict", defaults.Strict, "Enable strict validation")
	cmd.Flags().StringVar(&vc.outDir, "out", defaults.OutDir, "Directory for exported reports")
	cmd.Flags().StringSliceVar(&vc.formats, "format", defaults.Formats, "Export formats (csv, xlsx); empty disables export")

	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

func (vc *validateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	opts := vc.cli.opts

	ws, err := opts.OpenDir(ctx, vc.dir)
	if err != nil {
		return fmt.Errorf("open %s: %w", vc.dir, err)
	}
	if ws.Close != nil {
		defer ws.Close()
	}
	if len(ws.Documents) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No files uploaded: %s has no supported documents\n", vc.dir)
		return domain.WrapError(domain.ErrInvalidInput, "validate", errNoFiles)
	}

	report, err := ws.Validator.Validate(ctx, ports.ValidationRequest{
		Documents:   ws.Documents,
		RequiredSet: vc.requiredSet,
		Strict:      vc.strict,
	})
	if err != nil {
		return fmt.Errorf("validate batch: %w", err)
	}

	if err := vc.cli.reporter.Handle(report); err != nil {
		return err
	}

	if ws.Publisher != nil {
		if err := ws.Publisher.Export(ctx, report); err != nil {
			opts.Logger.Warn("batch_event_publish_failed", "batch_id", report.BatchID, "error", err)
		}
	}

	if len(vc.formats) == 0 || opts.Exporters == nil {
		return nil
	}
	exporter, err := opts.Exporters(vc.outDir, vc.formats)
	if err != nil {
		return err
	}
	if err := exporter.Export(ctx, report); err != nil {
		return fmt.Errorf("export report: %w", err)
	}
	return nil
}
