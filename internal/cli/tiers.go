package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/kuriftu/essence/internal/loyalty"
	"github.com/spf13/cobra"
)

func newTiersCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tiers",
		Short: "Inspect and manage the tier table",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print the active tier table",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				calc, err := opts.calculator()
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tTHRESHOLD\tBENEFITS")
				for _, t := range calc.Tiers() {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", t.ID, t.Name, t.Threshold, strings.Join(t.Benefits, ", "))
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "validate [FILE]",
			Short: "Check a tiers file without loading it into the server",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path := opts.tiersFile
				if len(args) == 1 {
					path = args[0]
				}
				tiers, err := loyalty.LoadTiers(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tiers OK\n", path, len(tiers))
				return nil
			},
		},
		&cobra.Command{
			Use:   "init [FILE]",
			Short: "Write the default tier table",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path := opts.tiersFile
				if len(args) == 1 {
					path = args[0]
				}
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists", path)
				}
				if err := loyalty.CreateDefaultTiers(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d default tiers to %s\n", len(loyalty.DefaultTiers), path)
				return nil
			},
		},
	)
	return cmd
}
