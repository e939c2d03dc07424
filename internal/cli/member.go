package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/models"
	"github.com/spf13/cobra"
)

func newMemberCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Inspect member accounts",
	}

	var page, pageSize int
	ledgerCmd := &cobra.Command{
		Use:   "ledger MEMBER_ID",
		Short: "Print a page of the member's ledger, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, db, err := opts.service()
			if err != nil {
				return err
			}
			defer db.Close()

			entries, total, err := svc.Ledger(args[0], models.Pagination{Page: page, PageSize: pageSize})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND\tDELTA\tBALANCE\tREFERENCE\tNOTE\tCREATED")
			for _, e := range entries {
				fmt.Fprintf(tw, "%d\t%s\t%+d\t%d\t%s\t%s\t%s\n",
					e.ID, e.Kind, e.Delta, e.BalanceAfter, e.Reference, e.Note, e.CreatedAt)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d, %d of %d entries\n", page, len(entries), total)
			return nil
		},
	}
	ledgerCmd.Flags().IntVar(&page, "page", 1, "page number")
	ledgerCmd.Flags().IntVar(&pageSize, "page-size", config.DefaultPageSize, "entries per page")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show MEMBER_ID",
			Short: "Print the member's balance and tier progress",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, db, err := opts.service()
				if err != nil {
					return err
				}
				defer db.Close()

				sum, err := svc.Account(args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Member:   %s\n", sum.Account.MemberID)
				fmt.Fprintf(out, "Earned:   %d\n", sum.Account.TotalEarned)
				fmt.Fprintf(out, "Redeemed: %d\n", sum.Account.TotalRedeemed)
				fmt.Fprintf(out, "Stamps:   %d\n", sum.StampCount)
				printProgress(out, sum.Progress)
				return nil
			},
		},
		ledgerCmd,
		&cobra.Command{
			Use:   "seed-demo [MEMBER_ID]",
			Short: "Open a member with the demo visit history",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				memberID := config.DemoMemberID
				if len(args) == 1 {
					memberID = args[0]
				}

				svc, db, err := opts.service()
				if err != nil {
					return err
				}
				defer db.Close()

				seeded, err := svc.SeedDemo(memberID)
				if err != nil {
					return err
				}
				if !seeded {
					fmt.Fprintf(cmd.OutOrStdout(), "%s already exists, nothing to do\n", memberID)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %s\n", memberID)
				return nil
			},
		},
	)
	return cmd
}

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "database %s is up to date\n", opts.dbPath)
			return nil
		},
	}
}
