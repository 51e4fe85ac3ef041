// Package cli is the command-line surface of the validator.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
	"github.com/kirillkom/kyc-document-validator/internal/core/ports"
)

// Workspace is a validation pipeline bound to one input directory.
type Workspace struct {
	Validator ports.BatchValidator
	Documents []domain.SourceDocument
	// Publisher may be nil.
	Publisher ports.ReportExporter
	Close     func()
}

// Defaults seed the validate command's flags.
type Defaults struct {
	RequiredSet string
	Strict      bool
	OutDir      string
	Formats     []string
}

type Options struct {
	Catalog   ports.RequirementCatalog
	Defaults  Defaults
	OpenDir   func(ctx context.Context, dir string) (*Workspace, error)
	Exporters func(dir string, formats []string) (ports.ReportExporter, error)
	Output    io.Writer
	Logger    *slog.Logger
}

type CLI struct {
	opts     Options
	reporter *Reporter
	rootCmd  *cobra.Command
}

func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	cli := &CLI{
		opts:     opts,
		reporter: NewReporter(opts.Output),
	}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kycvalidate",
		Short:         "Validate KYC document batches",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.opts.Output)

	cmd.AddCommand(cli.newValidateCmd())
	cmd.AddCommand(cli.newSetsCmd())
	return cmd
}
