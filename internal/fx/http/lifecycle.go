package http

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/sp3dr4/folio/config"
	"github.com/sp3dr4/folio/internal/server"
)

// ServerParams holds the parameters needed for HTTP server lifecycle management
type ServerParams struct {
	fx.In

	Server  server.Server
	Drainer server.Drainer
	Config  *config.Config
	Logger  *slog.Logger
}

// RegisterHTTPServerHooks registers HTTP server lifecycle hooks with FX.
// Pending view increments are drained after the server stops accepting requests.
func RegisterHTTPServerHooks(lc fx.Lifecycle, params ServerParams) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			params.Logger.Info("Starting HTTP server",
				"addr", params.Server.Addr(),
				"database", params.Config.Database.Type,
				"cache", params.Config.Cache.Backend,
				"cache_enabled", params.Config.Cache.Enabled,
				"admin_enabled", params.Config.AdminEnabled(),
				"base_url", params.Config.App.BaseURL,
			)
			return params.Server.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Shutting down HTTP server...")
			if err := params.Server.Stop(ctx); err != nil {
				params.Logger.Error("Failed to shutdown HTTP server", "error", err)
				return err
			}
			if err := params.Drainer.Drain(ctx); err != nil {
				params.Logger.Warn("Pending view increments abandoned", "error", err)
			}
			params.Logger.Info("HTTP server shutdown completed")
			return nil
		},
	})
}
