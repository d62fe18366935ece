package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oksasatya/alc-backend/config"
	pginfra "github.com/oksasatya/alc-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/alc-backend/pkg/helpers"
)

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations (postgres only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if cfg.DBDriver != "postgres" {
			return fmt.Errorf("migrations apply to postgres; DB_DRIVER is %q", cfg.DBDriver)
		}
		logger := helpers.NewLogger(cfg.AppName+"-admin", cfg.Env, cfg.LogLevel)
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			return fmt.Errorf("migrate up failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
}
