package http

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpswagger "github.com/swaggo/http-swagger"

	"github.com/sp3dr4/folio/config"
	"github.com/sp3dr4/folio/internal/pkg/logging"
	"github.com/sp3dr4/folio/internal/pkg/metrics"
)

// adminUser is the fixed basic auth user name; only the password is checked.
const adminUser = "admin"

func NewRouter(handlers *Handlers, admin *AdminHandlers, logger *slog.Logger, cfg *config.Config, metricsRegistry metrics.Registry) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(logger))
	r.Use(metrics.PrometheusMiddleware(metricsRegistry, cfg.Metrics.Path))
	r.Use(middleware.Recoverer)

	r.NotFound(handlers.HandleNotFound)

	r.Get("/health", handlers.HandleHealth)
	r.Get("/ready", handlers.HandleReady)

	if cfg.Metrics.Enabled {
		if h := metricsRegistry.GetHandler(); h != nil {
			r.Handle(cfg.Metrics.Path, h)
		}
	}

	r.Get("/", handlers.HandleHome)
	r.Get("/blog", handlers.HandleBlog)
	r.Get("/blog/{slug}", handlers.HandlePost)
	r.Get("/portfolio", handlers.HandlePortfolio)
	r.Get("/research", handlers.HandleResearch)
	r.Get("/about", handlers.HandleAbout)
	r.Get("/rss.xml", handlers.HandleFeed)

	r.Get("/swagger/*", httpswagger.Handler(
		httpswagger.URL("/swagger/doc.json"),
	))
	r.Get("/redoc", handleRedoc(cfg.App.SiteName))

	if cfg.AdminEnabled() && admin != nil {
		r.Route("/admin", func(r chi.Router) {
			r.Use(RateLimitMiddleware(cfg.App.AdminRateLimit, cfg.App.AdminRateBurst))
			r.Use(middleware.BasicAuth(cfg.App.SiteName+" admin", map[string]string{
				adminUser: cfg.App.AdminPassword,
			}))
			r.Use(middleware.NoCache)

			r.Get("/", admin.HandleDashboard)

			r.Route("/api", func(r chi.Router) {
				r.Get("/posts", admin.HandleListPosts)
				r.Post("/posts", admin.HandleCreatePost)
				r.Put("/posts/{id}", admin.HandleUpdatePost)
				r.Delete("/posts/{id}", admin.HandleDeletePost)

				r.Get("/projects", admin.HandleListProjects)
				r.Post("/projects", admin.HandleCreateProject)
				r.Put("/projects/{id}", admin.HandleUpdateProject)
				r.Delete("/projects/{id}", admin.HandleDeleteProject)

				r.Get("/researches", admin.HandleListResearches)
				r.Post("/researches", admin.HandleCreateResearch)
				r.Put("/researches/{id}", admin.HandleUpdateResearch)
				r.Delete("/researches/{id}", admin.HandleDeleteResearch)

				r.Post("/cache/clear", admin.HandleClearCache)
			})
		})
	}

	return r
}

var redocPage = template.Must(template.New("redoc").Parse(`<!DOCTYPE html>
<html>
  <head>
    <title>{{.}} admin API - Redoc</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>body { margin: 0; padding: 0; }</style>
  </head>
  <body>
    <redoc spec-url='/swagger/doc.json'></redoc>
    <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
  </body>
</html>`))

func handleRedoc(siteName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := redocPage.Execute(w, siteName); err != nil {
			logging.FromContext(r.Context()).Error("Failed to render redoc page", "error", err)
		}
	}
}
