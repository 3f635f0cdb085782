package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oksasatya/go-ddd-user-service/config"
	pginfra "github.com/oksasatya/go-ddd-user-service/internal/infrastructure/postgres"
)

// migrateCommand applies the embedded migrations. --steps moves a fixed
// number of versions, negative values roll back.
func migrateCommand(cfg *config.Config, logger *logrus.Logger) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates database to the latest version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pginfra.Migrate(cfg.PostgresDSN(), steps, logger); err != nil {
				logger.WithError(err).Error("migration failed")
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "number of migrations to apply (negative rolls back, 0 = all pending)")
	return cmd
}
