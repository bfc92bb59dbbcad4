package fx

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"

	"github.com/sp3dr4/folio/config"
	"github.com/sp3dr4/folio/internal/application"
	"github.com/sp3dr4/folio/internal/domain"
	cacheImpl "github.com/sp3dr4/folio/internal/infrastructure/cache"
	memoryStore "github.com/sp3dr4/folio/internal/infrastructure/memory"
	postgresStore "github.com/sp3dr4/folio/internal/infrastructure/postgres"
	redisCache "github.com/sp3dr4/folio/internal/infrastructure/redis"
	"github.com/sp3dr4/folio/internal/infrastructure/schema"
	sqliteStore "github.com/sp3dr4/folio/internal/infrastructure/sqlite"
	"github.com/sp3dr4/folio/internal/pkg/logging"
	"github.com/sp3dr4/folio/internal/pkg/metrics"
	"github.com/sp3dr4/folio/internal/server"
)

// ProvideLogger creates the JSON application logger at the configured level
func ProvideLogger(cfg *config.Config) *slog.Logger {
	logger := logging.New(os.Stdout, cfg.Logging.Level)
	slog.SetDefault(logger)
	return logger
}

// ProvideStore opens the configured data store and applies pending migrations
func ProvideStore(cfg *config.Config, logger *slog.Logger) (domain.Store, error) {
	switch cfg.Database.Type {
	case "memory":
		logger.Info("Using in-memory store")
		return memoryStore.NewStore(), nil

	case "sqlite":
		path := cfg.GetDatabaseURL()
		logger.Info("Using SQLite store", "path", path)

		if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}

		db, err := sqlx.Connect("sqlite3", path)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
		}
		// sqlite has a single writer
		db.SetMaxOpenConns(1)

		if err := schema.Migrate(db, "sqlite", cfg.Database.Migrations); err != nil {
			_ = db.Close()
			return nil, err
		}

		return sqliteStore.NewStore(db), nil

	case "postgres":
		logger.Info("Using PostgreSQL store")

		db, err := sqlx.Connect("postgres", cfg.GetDatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}

		if err := schema.Migrate(db, "postgres", cfg.Database.Migrations); err != nil {
			_ = db.Close()
			return nil, err
		}

		return postgresStore.NewStore(db), nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}
}

// ProvideRedisClient returns a client only when the redis cache backend is selected
func ProvideRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if !cfg.Cache.Enabled || cfg.Cache.Backend != "redis" {
		return nil
	}

	logger.Info("Using Redis post cache", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// ProvideCache selects the backend of the read-through post cache
func ProvideCache(cfg *config.Config, client *redis.Client, logger *slog.Logger) (domain.Cache, error) {
	if !cfg.Cache.Enabled {
		logger.Info("Post cache disabled")
		return cacheImpl.NewNoOpCache(), nil
	}

	switch cfg.Cache.Backend {
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("redis cache selected without a redis client")
		}
		return redisCache.NewCache(client, logger), nil
	case "memory", "":
		logger.Info("Using in-memory post cache", "max_entries", cfg.Cache.MaxEntries)
		return cacheImpl.NewMemoryCache(cfg.Cache.MaxEntries)
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Cache.Backend)
	}
}

// ProvideMetricsRegistry creates a Prometheus registry, or a no-op one when metrics are disabled
func ProvideMetricsRegistry(cfg *config.Config) (metrics.Registry, error) {
	if !cfg.Metrics.Enabled {
		return metrics.NewNoOpRegistry(), nil
	}
	return metrics.NewPrometheusRegistry(cfg.Metrics)
}

func ProvidePostReader(cfg *config.Config, store domain.Store, cache domain.Cache, logger *slog.Logger, registry metrics.Registry) *application.PostReader {
	return application.NewPostReader(store, cache, cfg.Cache.TTL, logger, registry)
}

func ProvideViewCounter(store domain.Store, logger *slog.Logger, registry metrics.Registry) *application.ViewCounter {
	return application.NewViewCounter(store, logger, registry)
}

// ProvideDrainer exposes the background work that must finish before shutdown
func ProvideDrainer(views *application.ViewCounter) server.Drainer {
	return views
}
