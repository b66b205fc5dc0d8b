// Package cli defines the cobra command tree for wander.
package cli

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/evcraddock/wander/internal/config"
	"github.com/evcraddock/wander/internal/db"
)

var (
	flagFormat string
	flagDB     string
	flagConfig string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wander",
		Short:         "Plan holidays and run the wander travel site",
		Long:          "Wander serves a travel agency site with a trip customization wizard, and lets you browse the catalog, plan trips and review inquiries from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.config/wander/wander.db)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ~/.config/wander/config.yaml)")

	root.AddCommand(
		newServeCmd(),
		newDestinationsCmd(),
		newTripsCmd(),
		newPlanCmd(),
		newInquiriesCmd(),
		newPlansCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// loadConfig reads the configuration with the command's flags applied.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(flagConfig, cmd.Flags())
}

// openDB opens the SQLite database at the configured or default path.
func openDB(cfg *config.Config) (*sqlx.DB, error) {
	path := cfg.DBPath
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sqlx.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
