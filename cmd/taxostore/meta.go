package main

import (
	"errors"
	"fmt"

	"github.com/arthur-debert/taxostore/types"
	"github.com/spf13/cobra"
)

// errDangling makes `check --fail-on-dangling` exit non-zero.
var errDangling = errors.New("dangling references found")

func (cli *CLI) newGenerateIDCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "generate-id <literature|taxonomy|sample>",
		Short:     "Print a fresh identifier for a record kind",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(types.KindLiterature), string(types.KindTaxonomy), string(types.KindSample)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := cli.openCatalog()
			if err != nil {
				return err
			}
			id, err := cat.GenerateID(args[0])
			if err != nil {
				return WrapError("generate id", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
}

func (cli *CLI) newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count the records in each collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := cli.openCatalog()
			if err != nil {
				return err
			}
			return cli.render(cmd, cat.Stats())
		},
	}
}

func (cli *CLI) newCheckCommand() *cobra.Command {
	var failOnDangling bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "List references that point at missing records",
		Long: `List taxa whose lit_id or parent_tax_id, and samples whose tax_id, name a
record that does not exist. Deletes never cascade, so these accumulate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := cli.openCatalog()
			if err != nil {
				return err
			}
			refs := cat.Graph().Dangling()
			cli.logger.Info("reference check", "dangling", len(refs))

			if len(refs) == 0 && cli.tableOutput() {
				fmt.Fprintln(cmd.OutOrStdout(), "No dangling references")
			} else if err := cli.render(cmd, refs); err != nil {
				return err
			}
			if failOnDangling && len(refs) > 0 {
				return &CLIError{
					Operation:  "check references",
					Cause:      fmt.Sprintf("%d dangling references", len(refs)),
					Underlying: errDangling,
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&failOnDangling, "fail-on-dangling", false, "Exit with an error when any reference dangles")
	return cmd
}
