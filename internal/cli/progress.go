package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/kuriftu/essence/internal/loyalty"
	"github.com/spf13/cobra"
)

func newProgressCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "progress POINTS",
		Short: "Show the tier and progress for a points total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("points must be an integer: %q", args[0])
			}

			calc, err := opts.calculator()
			if err != nil {
				return err
			}
			p, err := calc.Progress(total)
			if err != nil {
				return err
			}
			printProgress(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func printProgress(w io.Writer, p loyalty.Progress) {
	fmt.Fprintf(w, "Points:   %d\n", p.Total)
	fmt.Fprintf(w, "Tier:     %s (%s)\n", p.Tier.Name, p.Tier.ID)
	if p.AtMaxTier() {
		fmt.Fprintln(w, "Progress: 100% (highest tier)")
		return
	}
	fmt.Fprintf(w, "Progress: %d%% to %s, %d points to go\n", p.ProgressPct, p.NextTier.Name, p.PointsToNext)
}
