package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sp3dr4/folio/internal/application"
	"github.com/sp3dr4/folio/internal/domain"
	"github.com/sp3dr4/folio/internal/pkg/logging"
)

// Handlers serves the public pages, the feed and the health endpoints.
type Handlers struct {
	content *application.ContentService
	views   *application.ViewCounter
	pages   *Pages
	site    Site
}

func NewHandlers(content *application.ContentService, views *application.ViewCounter, pages *Pages, site Site) *Handlers {
	return &Handlers{
		content: content,
		views:   views,
		pages:   pages,
		site:    site,
	}
}

// HandleHealth handles the health check endpoint.
//
//	@Summary		Health check endpoint
//	@Description	Check if the service is running
//	@Tags			health
//	@Produce		plain
//	@Success		200	{string}	string	"OK"
//	@Router			/health [get]
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// HandleReady handles the readiness check endpoint.
//
//	@Summary		Readiness check endpoint
//	@Description	Check the data store and the post cache
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	object{status=string,timestamp=string}	"Service is ready"
//	@Failure		503	{object}	ErrorResponse							"Service is not ready"
//	@Router			/ready [get]
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.content.Ready(ctx); err != nil {
		logging.FromContext(r.Context()).Error("Readiness check failed", "error", err)
		respondWithError(w, http.StatusServiceUnavailable, "Service not ready")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":    "ready",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handlers) HandleHome(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	home, err := h.content.Home(r.Context())
	if err != nil {
		logger.Error("Failed to load home page content", "error", err)
	}

	h.pages.render(w, logger, http.StatusOK, "home", h.pages.newData("", "", home))
}

// HandleBlog lists every published post. A failed read renders an empty list.
func (h *Handlers) HandleBlog(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	posts, err := h.content.Posts(r.Context())
	if err != nil {
		logger.Error("Failed to load posts", "error", err)
		posts = []domain.Post{}
	}

	h.pages.render(w, logger, http.StatusOK, "blog", h.pages.newData("Blog", "", posts))
}

// HandlePost renders one post and records the view in the background.
func (h *Handlers) HandlePost(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	post, err := h.content.Post(r.Context(), slug)
	if err != nil {
		logger.Error("Failed to load post", "slug", slug, "error", err)
	}
	if post == nil {
		h.HandleNotFound(w, r)
		return
	}

	h.views.Record(post.Slug)
	h.pages.render(w, logger, http.StatusOK, "post", h.pages.postData(post))
}

func (h *Handlers) HandlePortfolio(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	projects, err := h.content.Projects(r.Context())
	if err != nil {
		logger.Error("Failed to load projects", "error", err)
		projects = []domain.Project{}
	}

	h.pages.render(w, logger, http.StatusOK, "portfolio", h.pages.newData("Portfolio", "", projects))
}

func (h *Handlers) HandleResearch(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	researches, err := h.content.Researches(r.Context())
	if err != nil {
		logger.Error("Failed to load research entries", "error", err)
		researches = []domain.Research{}
	}

	h.pages.render(w, logger, http.StatusOK, "research", h.pages.newData("Research", "", researches))
}

func (h *Handlers) HandleAbout(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, logging.FromContext(r.Context()), http.StatusOK, "about", h.pages.newData("About", "", nil))
}

func (h *Handlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, logging.FromContext(r.Context()), http.StatusNotFound, "notfound", h.pages.newData("Not Found", "", nil))
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     map[string]string `json:"error"`
	Timestamp string            `json:"timestamp" example:"2026-01-31T12:00:00Z"`
}

// ValidationErrorResponse represents a validation error response.
type ValidationErrorResponse struct {
	Details map[string]string `json:"details"`
	Error   string            `json:"error" example:"Validation failed"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{
		Error:     map[string]string{"message": message},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
