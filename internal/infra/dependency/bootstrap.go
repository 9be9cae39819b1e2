package dependency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/infra/cache"
	"github.com/expense-tracker/backend/internal/infra/db"
)

// App is a migrated ledger store with every dependency wired on top of it.
type App struct {
	*Injector
	database *db.Database
}

// Bootstrap connects the store, migrates the schema, seeds the default
// categories and wires the injector. Redis is optional: a connection failure
// is logged and rate limiting falls back to process memory.
func Bootstrap(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(); err != nil {
		_ = database.Close()
		return nil, err
	}
	slog.Debug("Database migrations completed successfully")

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
			redisClient = nil
		}
	}

	injector := NewInjector(cfg, database.DB(), redisClient, opts...)

	if _, err := injector.UseCases.SeedDefaultCategories.Execute(ctx); err != nil {
		app := &App{Injector: injector, database: database}
		return nil, errors.Join(fmt.Errorf("failed to seed default categories: %w", err), app.Close())
	}

	return &App{
		Injector: injector,
		database: database,
	}, nil
}

// HealthCheck reports whether the ledger store answers.
func (a *App) HealthCheck() bool {
	return a.database.HealthCheck()
}

// Close releases the store and Redis connections.
func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis connection: %w", err))
		}
	}
	if err := a.database.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
