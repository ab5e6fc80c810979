package main

import (
	"github.com/spf13/cobra"

	"crm/internal/db"
	"crm/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		if err := db.MigrateUp(cfg.Database); err != nil {
			return err
		}
		l := logger.Get()
		l.Info().Str("driver", cfg.Database.Driver).Msg("migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := cmd.Flags().GetInt("steps")
		if err != nil {
			return err
		}
		cfg, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		if err := db.MigrateDown(cfg.Database, steps); err != nil {
			return err
		}
		l := logger.Get()
		l.Info().Str("driver", cfg.Database.Driver).Int("steps", steps).Msg("migrations rolled back")
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateDownCmd.Flags().Int("steps", 1, "number of migrations to roll back, 0 rolls back everything")
}
