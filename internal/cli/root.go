// Package cli implements essencectl, the offline admin tool for the essence
// database and tier table.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kuriftu/essence/internal/catalog"
	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/ledger"
	"github.com/kuriftu/essence/internal/loyalty"
	"github.com/kuriftu/essence/internal/store"
	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every command.
type options struct {
	dbPath    string
	tiersFile string
	verbose   bool
}

// NewRootCmd builds the essencectl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "essencectl",
		Short: "Administer the essence loyalty database",
		Long: `essencectl inspects and maintains the essence loyalty service offline:
tier tables, member accounts and the SQLite ledger. Paths default to the
same ESSENCE_* settings the server uses.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	defaults := loadDefaults()
	root.PersistentFlags().StringVar(&opts.dbPath, "db", defaults.DBPath, "path to the SQLite database")
	root.PersistentFlags().StringVar(&opts.tiersFile, "tiers", defaults.TiersFile, "path to the tiers JSON file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newProgressCmd(opts),
		newTiersCmd(opts),
		newMemberCmd(opts),
		newMigrateCmd(opts),
	)
	return root
}

// Execute runs essencectl and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		return 1
	}
	return 0
}

// loadDefaults reads the server configuration for flag defaults. An invalid
// environment falls back to the built-in defaults.
func loadDefaults() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{DBPath: "./data/essence.sqlite", TiersFile: "./tiers.json"}
	}
	return *cfg
}

func (o *options) openDB() (*store.DB, error) {
	db, err := store.New(o.dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", o.dbPath, err)
	}
	return db, nil
}

// calculator loads the tier table, falling back to the defaults when the
// file does not exist yet.
func (o *options) calculator() (*loyalty.Calculator, error) {
	if _, err := os.Stat(o.tiersFile); os.IsNotExist(err) {
		return loyalty.NewCalculator(loyalty.DefaultTiers), nil
	}
	tiers, err := loyalty.LoadTiers(o.tiersFile)
	if err != nil {
		return nil, err
	}
	return loyalty.NewCalculator(tiers), nil
}

// service opens the database and builds a ledger service over it. The
// caller closes the returned DB.
func (o *options) service() (*ledger.Service, *store.DB, error) {
	calc, err := o.calculator()
	if err != nil {
		return nil, nil, err
	}
	db, err := o.openDB()
	if err != nil {
		return nil, nil, err
	}
	return ledger.NewService(db, calc, catalog.Default(), 0), db, nil
}
