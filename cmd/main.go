// Package main is the CLI entrypoint for the user service. It loads
// configuration and logging once, then dispatches to serve, migrate or seed.
package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oksasatya/go-ddd-user-service/config"
	pginfra "github.com/oksasatya/go-ddd-user-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-user-service/pkg/helpers"
)

// getPostgres opens the pgx pool and returns it with a cleanup func.
func getPostgres(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*pgxpool.Pool, func()) {
	pool, err := pginfra.NewPool(ctx, pginfra.PoolOptions{
		DSN:             cfg.PostgresDSN(),
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	return pool, func() {
		logger.Info("closing postgres pool...")
		pool.Close()
	}
}

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)

	defer func() {
		if p := recover(); p != nil {
			logger.WithField("panic", p).Error("captured panic, exiting...")
			panic(p)
		}
	}()

	rootCmd := &cobra.Command{
		Use:          "user-service",
		Short:        "User management REST service",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		serveCommand(cfg, logger),
		migrateCommand(cfg, logger),
		seedCommand(cfg, logger),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
