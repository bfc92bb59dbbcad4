package fx

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/sp3dr4/folio/internal/domain"
)

// StoreParams holds the parameters needed for store lifecycle management
type StoreParams struct {
	fx.In

	Store  domain.Store
	Logger *slog.Logger
}

// RegisterStoreHooks closes the data store on shutdown
func RegisterStoreHooks(lc fx.Lifecycle, params StoreParams) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := params.Store.Close(); err != nil {
				params.Logger.Error("Failed to close store", "error", err)
				return err
			}
			params.Logger.Info("Store closed successfully")
			return nil
		},
	})
}

// CacheParams holds the parameters needed for cache lifecycle management
type CacheParams struct {
	fx.In

	Cache  domain.Cache
	Client *redis.Client
	Logger *slog.Logger
}

// RegisterCacheHooks checks the cache on start and closes the redis client on stop.
// An unreachable cache only degrades reads to the store, so start does not fail.
func RegisterCacheHooks(lc fx.Lifecycle, params CacheParams) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := params.Cache.Ping(ctx); err != nil {
				params.Logger.Warn("Post cache unavailable at startup", "error", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if params.Client == nil {
				return nil
			}
			if err := params.Client.Close(); err != nil {
				params.Logger.Error("Failed to close redis client", "error", err)
				return err
			}
			return nil
		},
	})
}
