package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sp3dr4/folio/config"
	httpAdapter "github.com/sp3dr4/folio/internal/adapters/http"
	"github.com/sp3dr4/folio/internal/application"
	"github.com/sp3dr4/folio/internal/server"
)

// HTTPServer implements the generic Server interface for HTTP
type HTTPServer struct {
	server *http.Server
	logger *slog.Logger
}

// Start binds the listener synchronously so port conflicts fail startup, then serves in the background
func (s *HTTPServer) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server stopped unexpectedly", "error", err)
		}
	}()
	return nil
}

// Stop stops the HTTP server gracefully
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Addr returns the server address
func (s *HTTPServer) Addr() string {
	return s.server.Addr
}

// ProvideHTTPServer creates an HTTP server that implements the Server interface
func ProvideHTTPServer(cfg *config.Config, router chi.Router, logger *slog.Logger) server.Server {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 30 * time.Second,
	}

	if timeout, err := time.ParseDuration(cfg.Server.ReadTimeout); err == nil {
		srv.ReadTimeout = timeout
	}
	if timeout, err := time.ParseDuration(cfg.Server.WriteTimeout); err == nil {
		srv.WriteTimeout = timeout
	}
	if timeout, err := time.ParseDuration(cfg.Server.IdleTimeout); err == nil {
		srv.IdleTimeout = timeout
	}

	return &HTTPServer{server: srv, logger: logger}
}

func ProvideSite(cfg *config.Config) httpAdapter.Site {
	return httpAdapter.NewSite(cfg.App)
}

// ProvideAdminHandlers returns nil when no admin password is configured, which keeps /admin unmounted
func ProvideAdminHandlers(cfg *config.Config, admin *application.AdminService, pages *httpAdapter.Pages) *httpAdapter.AdminHandlers {
	if !cfg.AdminEnabled() {
		return nil
	}
	return httpAdapter.NewAdminHandlers(admin, pages)
}
