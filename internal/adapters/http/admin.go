package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sp3dr4/folio/internal/application"
	"github.com/sp3dr4/folio/internal/domain"
	"github.com/sp3dr4/folio/internal/pkg/logging"
)

// AdminHandlers serves the password-gated dashboard and JSON API.
type AdminHandlers struct {
	admin *application.AdminService
	pages *Pages
}

func NewAdminHandlers(admin *application.AdminService, pages *Pages) *AdminHandlers {
	return &AdminHandlers{admin: admin, pages: pages}
}

func (h *AdminHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	dashboard, err := h.admin.Dashboard(r.Context())
	if err != nil {
		logger.Error("Failed to load admin dashboard", "error", err)
		dashboard = &application.Dashboard{}
	}

	h.pages.render(w, logger, http.StatusOK, "admin", h.pages.newData("Admin", "", dashboard))
}

// HandleListPosts lists every post, drafts included.
//
//	@Summary	List posts
//	@Tags		admin
//	@Produce	json
//	@Security	BasicAuth
//	@Success	200	{array}		domain.Post
//	@Failure	500	{object}	ErrorResponse
//	@Router		/admin/api/posts [get]
func (h *AdminHandlers) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	respondList(w, r, "posts", h.admin.ListPosts)
}

// HandleCreatePost creates a post. An empty slug is generated.
//
//	@Summary	Create a post
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BasicAuth
//	@Param		request	body		application.PostInput	true	"Post"
//	@Success	201		{object}	domain.Post
//	@Failure	400		{object}	ValidationErrorResponse
//	@Failure	409		{object}	ErrorResponse	"Slug already exists"
//	@Router		/admin/api/posts [post]
func (h *AdminHandlers) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	handleCreate(w, r, "post", h.admin.CreatePost)
}

// HandleUpdatePost replaces a post's editable fields.
//
//	@Summary	Update a post
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BasicAuth
//	@Param		id		path		string					true	"Post ID"
//	@Param		request	body		application.PostInput	true	"Post"
//	@Success	200		{object}	domain.Post
//	@Failure	400		{object}	ValidationErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/admin/api/posts/{id} [put]
func (h *AdminHandlers) HandleUpdatePost(w http.ResponseWriter, r *http.Request) {
	handleUpdate(w, r, "post", h.admin.UpdatePost)
}

// HandleDeletePost deletes a post.
//
//	@Summary	Delete a post
//	@Tags		admin
//	@Security	BasicAuth
//	@Param		id	path	string	true	"Post ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/admin/api/posts/{id} [delete]
func (h *AdminHandlers) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, "post", h.admin.DeletePost)
}

// HandleListProjects lists every project.
//
//	@Summary	List projects
//	@Tags		admin
//	@Produce	json
//	@Security	BasicAuth
//	@Success	200	{array}	domain.Project
//	@Router		/admin/api/projects [get]
func (h *AdminHandlers) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	respondList(w, r, "projects", h.admin.ListProjects)
}

// HandleCreateProject creates a project.
//
//	@Summary	Create a project
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BasicAuth
//	@Param		request	body		application.ProjectInput	true	"Project"
//	@Success	201		{object}	domain.Project
//	@Failure	400		{object}	ValidationErrorResponse
//	@Router		/admin/api/projects [post]
func (h *AdminHandlers) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	handleCreate(w, r, "project", h.admin.CreateProject)
}

// HandleUpdateProject replaces a project.
//
//	@Summary	Update a project
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BasicAuth
//	@Param		id		path		string						true	"Project ID"
//	@Param		request	body		application.ProjectInput	true	"Project"
//	@Success	200		{object}	domain.Project
//	@Failure	400		{object}	ValidationErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/admin/api/projects/{id} [put]
func (h *AdminHandlers) HandleUpdateProject(w http.ResponseWriter, r *http.Request) {
	handleUpdate(w, r, "project", h.admin.UpdateProject)
}

// HandleDeleteProject deletes a project.
//
//	@Summary	Delete a project
//	@Tags		admin
//	@Security	BasicAuth
//	@Param		id	path	string	true	"Project ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/admin/api/projects/{id} [delete]
func (h *AdminHandlers) HandleDeleteProject(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, "project", h.admin.DeleteProject)
}

// HandleListResearches lists every research entry.
//
//	@Summary	List research entries
//	@Tags		admin
//	@Produce	json
//	@Security	BasicAuth
//	@Success	200	{array}	domain.Research
//	@Router		/admin/api/researches [get]
func (h *AdminHandlers) HandleListResearches(w http.ResponseWriter, r *http.Request) {
	respondList(w, r, "researches", h.admin.ListResearches)
}

// HandleCreateResearch creates a research entry.
//
//	@Summary	Create a research entry
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BasicAuth
//	@Param		request	body		application.ResearchInput	true	"Research entry"
//	@Success	201		{object}	domain.Research
//	@Failure	400		{object}	ValidationErrorResponse
//	@Router		/admin/api/researches [post]
func (h *AdminHandlers) HandleCreateResearch(w http.ResponseWriter, r *http.Request) {
	handleCreate(w, r, "research", h.admin.CreateResearch)
}

// HandleUpdateResearch replaces a research entry.
//
//	@Summary	Update a research entry
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BasicAuth
//	@Param		id		path		string						true	"Research ID"
//	@Param		request	body		application.ResearchInput	true	"Research entry"
//	@Success	200		{object}	domain.Research
//	@Failure	400		{object}	ValidationErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/admin/api/researches/{id} [put]
func (h *AdminHandlers) HandleUpdateResearch(w http.ResponseWriter, r *http.Request) {
	handleUpdate(w, r, "research", h.admin.UpdateResearch)
}

// HandleDeleteResearch deletes a research entry.
//
//	@Summary	Delete a research entry
//	@Tags		admin
//	@Security	BasicAuth
//	@Param		id	path	string	true	"Research ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/admin/api/researches/{id} [delete]
func (h *AdminHandlers) HandleDeleteResearch(w http.ResponseWriter, r *http.Request) {
	handleDelete(w, r, "research", h.admin.DeleteResearch)
}

// HandleClearCache empties the read-through post cache.
//
//	@Summary	Clear the post cache
//	@Tags		admin
//	@Produce	json
//	@Security	BasicAuth
//	@Success	200	{object}	object{status=string}
//	@Failure	500	{object}	ErrorResponse
//	@Router		/admin/api/cache/clear [post]
func (h *AdminHandlers) HandleClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.ClearCache(r.Context()); err != nil {
		logging.FromContext(r.Context()).Error("Failed to clear post cache", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to clear cache")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func respondList[T any](w http.ResponseWriter, r *http.Request, name string, list func(context.Context) ([]T, error)) {
	items, err := list(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("Failed to list "+name, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to list "+name)
		return
	}
	if items == nil {
		items = []T{}
	}
	respondWithJSON(w, http.StatusOK, items)
}

func handleCreate[In, Out any](w http.ResponseWriter, r *http.Request, entity string, create func(context.Context, In) (Out, error)) {
	var in In
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		logging.FromContext(r.Context()).Warn("Failed to decode request", "entity", entity, "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	out, err := create(r.Context(), in)
	if err != nil {
		respondWriteError(w, r, entity, "create", err)
		return
	}

	logging.FromContext(r.Context()).Info("Admin created "+entity, "entity", entity)
	respondWithJSON(w, http.StatusCreated, out)
}

func handleUpdate[In, Out any](w http.ResponseWriter, r *http.Request, entity string, update func(context.Context, string, In) (Out, error)) {
	id := chi.URLParam(r, "id")

	var in In
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		logging.FromContext(r.Context()).Warn("Failed to decode request", "entity", entity, "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	out, err := update(r.Context(), id, in)
	if err != nil {
		respondWriteError(w, r, entity, "update", err)
		return
	}

	logging.FromContext(r.Context()).Info("Admin updated "+entity, "entity", entity, "id", id)
	respondWithJSON(w, http.StatusOK, out)
}

func handleDelete(w http.ResponseWriter, r *http.Request, entity string, del func(context.Context, string) error) {
	id := chi.URLParam(r, "id")

	if err := del(r.Context(), id); err != nil {
		respondWriteError(w, r, entity, "delete", err)
		return
	}

	logging.FromContext(r.Context()).Info("Admin deleted "+entity, "entity", entity, "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// respondWriteError maps store and validation failures of an admin write to a status.
func respondWriteError(w http.ResponseWriter, r *http.Request, entity, operation string, err error) {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		handleValidationError(w, validationErrors)
	case errors.Is(err, domain.ErrSlugExists):
		respondWithError(w, http.StatusConflict, "Slug already exists")
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, fmt.Sprintf("%s not found", entity))
	case errors.Is(err, domain.ErrInvalidSlug), errors.Is(err, domain.ErrValidation):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		logging.FromContext(r.Context()).Error("Admin write failed", "entity", entity, "operation", operation, "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to %s %s", operation, entity))
	}
}

func handleValidationError(w http.ResponseWriter, validationErrors validator.ValidationErrors) {
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		field := getJSONFieldName(e)
		switch e.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required", field)
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s characters long", field, e.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s is invalid", field)
		}
	}

	respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Error:   "Validation failed",
		Details: errorMessages,
	})
}

// getJSONFieldName extracts the JSON tag name from a validation error
func getJSONFieldName(e validator.FieldError) string {
	structType := getStructTypeFromError(e)
	if structType == nil {
		return e.Field()
	}

	field, found := structType.FieldByName(e.StructField())
	if !found {
		return e.Field()
	}

	jsonTag := field.Tag.Get("json")
	if jsonTag == "" {
		return e.Field()
	}

	if commaIndex := strings.Index(jsonTag, ","); commaIndex != -1 {
		jsonTag = jsonTag[:commaIndex]
	}

	return jsonTag
}

// getStructTypeFromError resolves the request struct from a namespace like "PostInput.Title"
func getStructTypeFromError(e validator.FieldError) reflect.Type {
	parts := strings.Split(e.StructNamespace(), ".")
	if len(parts) < 2 {
		return nil
	}

	return getTypeFromStructName(parts[0])
}

// getTypeFromStructName is the registry of admin request types
func getTypeFromStructName(structName string) reflect.Type {
	switch structName {
	case "PostInput":
		return reflect.TypeOf(application.PostInput{})
	case "ProjectInput":
		return reflect.TypeOf(application.ProjectInput{})
	case "ResearchInput":
		return reflect.TypeOf(application.ResearchInput{})
	default:
		return nil
	}
}
