package router

import (
	"context"
	"errors"
	"time"

	appuser "github.com/oksasatya/go-ddd-user-service/internal/application"
	"github.com/oksasatya/go-ddd-user-service/internal/container"
	repouser "github.com/oksasatya/go-ddd-user-service/internal/domain/repository"
	pginfra "github.com/oksasatya/go-ddd-user-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-user-service/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-ddd-user-service/internal/interface/http"
	"github.com/oksasatya/go-ddd-user-service/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-user-service/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repouser.UserRepository
	Index   repouser.UserSearchIndex
	Service *appuser.Service
	Handler *handlers.UserHandler
}

func buildUserDeps() UserModuleDeps {
	repo := pginfra.NewUserRepository(container.GetPGPool())

	// keep Index a nil interface when search is off so the service skips it
	var index repouser.UserSearchIndex
	if es := container.GetES(); es != nil {
		index = search.NewUserIndex(es, container.GetConfig().ESUsersIndex)
	}

	service := appuser.NewService(repo, index, container.GetLogger())
	handler := handlers.NewUserHandler(service, container.GetLogger(), container.GetMetrics())

	return UserModuleDeps{Repo: repo, Index: index, Service: service, Handler: handler}
}

func buildHealthHandler() *handlers.HealthHandler {
	h := handlers.NewHealthHandler()
	if pool := container.GetPGPool(); pool != nil {
		h.Critical("postgres", func(ctx context.Context) error { return pginfra.Ping(ctx, pool) })
	}
	if rdb := container.GetRedis(); rdb != nil {
		h.Optional("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}
	if es := container.GetES(); es != nil {
		h.Optional("elasticsearch", func(ctx context.Context) error {
			res, err := es.Ping(es.Ping.WithContext(ctx))
			if err != nil {
				return err
			}
			defer func() { _ = res.Body.Close() }()
			if res.IsError() {
				return errors.New(res.Status())
			}
			return nil
		})
	}
	return h
}

// InitModules wires every module from the container singletons. Call once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	r.Use(middleware.RateLimit(middleware.RateLimitOptions{
		Redis:   container.GetRedis(),
		Max:     cfg.RateLimitPerMinute,
		Window:  time.Minute,
		Key:     middleware.KeyByIP(),
		Allow:   middleware.AllowPrivateIP(),
		Metrics: container.GetMetrics(),
		Logger:  container.GetLogger(),
	}))

	writeLimiter := middleware.RateLimit(middleware.RateLimitOptions{
		Redis:   container.GetRedis(),
		Max:     cfg.RateLimitWritesPerMinute,
		Window:  time.Minute,
		Key:     middleware.KeyByIPAndRoute(),
		Allow:   middleware.AllowPrivateIP(),
		Metrics: container.GetMetrics(),
		Logger:  container.GetLogger(),
	})

	userDeps := buildUserDeps()
	r.Add(modules.NewUserModule(userDeps.Handler, writeLimiter))

	r.AddRoot(modules.NewHealthModule(buildHealthHandler()))
	if cfg.MetricsEnabled {
		r.AddRoot(modules.NewDebugModule(container.GetMetrics()))
	}
}
