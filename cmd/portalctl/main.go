// Package main provides portalctl, the operator CLI of the Business Control portal.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/businesscontrol/portal/internal/database"
	"github.com/businesscontrol/portal/libs/config"
	"github.com/businesscontrol/portal/libs/logger"
	"github.com/spf13/cobra"
)

// Global flags
var (
	migrationsDir string
	dbWait        time.Duration
)

// cfg is loaded once before any subcommand runs
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "portalctl",
	Short: "Operate the Business Control portal database",
	Long: `portalctl runs maintenance tasks against the portal database.

Examples:
  portalctl migrate up                 # Apply pending migrations
  portalctl migrate down --steps 1     # Revert the last migration
  portalctl migrate version            # Show the applied schema version
  portalctl seed                       # Create the demo cohort and accounts
  portalctl create-admin --email a@b.c --name "Dana" --password secret1`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return logger.Init(cfg.Logging.Level)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "migrations", os.Getenv("MIGRATIONS_PATH"), "Path to the migrations folder (auto-detected if not set)")
	rootCmd.PersistentFlags().DurationVar(&dbWait, "db-wait", 30*time.Second, "How long to wait for the database to accept connections")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(createAdminCmd)
}

// openDB connects to the configured database
func openDB(ctx context.Context) (*sql.DB, error) {
	return database.Connect(ctx, cfg.DSN(), dbWait, logger.Logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}
