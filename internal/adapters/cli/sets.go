package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (cli *CLI) newSetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "List requirement sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, set := range cli.opts.Catalog.RequirementSets() {
				names := make([]string, 0, len(set.Documents))
				for _, docType := range set.Documents {
					names = append(names, string(docType))
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", set.ID, strings.Join(names, ", ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
