package main

import (
	"fmt"

	"tokoadmin/internal/config"
	"tokoadmin/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.DBDriver == config.DriverMemory {
				return fmt.Errorf("nothing to migrate with DB_DRIVER=%s", cfg.DBDriver)
			}

			db, err := database.Open(cfg.DBDriver, cfg.DBDSN, false)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			log.WithField("driver", cfg.DBDriver).Info("schema migrated")
			fmt.Fprintln(cmd.OutOrStdout(), "Database schema is up to date")
			return nil
		},
	}
}
