package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oksasatya/go-ddd-user-service/config"
	"github.com/oksasatya/go-ddd-user-service/internal/application"
	pginfra "github.com/oksasatya/go-ddd-user-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-user-service/pkg/apperror"
)

func strptr(s string) *string { return &s }

var seedUsers = []application.CreateUserInput{
	{Username: "demo_admin", Email: "admin@example.com", FullName: strptr("Demo Admin")},
	{Username: "jane-doe", Email: "jane.doe@example.com", FullName: strptr("Jane Doe")},
	{Username: "john_smith", Email: "john.smith@example.com"},
}

// seedCommand inserts a few demo users through the service so every
// domain rule applies. Existing users are skipped.
func seedCommand(cfg *config.Config, logger *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Inserts demo users",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pool, closePool := getPostgres(ctx, cfg, logger)
			defer closePool()

			svc := application.NewService(pginfra.NewUserRepository(pool), nil, logger)
			for _, in := range seedUsers {
				u, err := svc.CreateUser(ctx, in)
				switch {
				case apperror.IsAlreadyExists(err):
					logger.WithField("username", in.Username).Info("seed user exists, skipping")
				case err != nil:
					return err
				default:
					logger.WithFields(logrus.Fields{"id": u.ID(), "username": u.Username().String()}).Info("seeded user")
				}
			}
			return nil
		},
	}
}
