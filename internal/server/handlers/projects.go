package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/capsort/capsort/internal/models"
	"github.com/capsort/capsort/internal/server/middleware"
	"github.com/capsort/capsort/internal/server/storage"
	"github.com/capsort/capsort/internal/validation"
	"github.com/capsort/capsort/pkg/api"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ProjectHandler обрабатывает запросы к архиву проектов
type ProjectHandler struct {
	projects  storage.ProjectStorage
	validator *validation.Validator
	responder
}

// NewProjectHandler создает handler для проектов
func NewProjectHandler(logger *slog.Logger, projects storage.ProjectStorage) *ProjectHandler {
	return &ProjectHandler{
		responder: responder{logger: logger},
		projects:  projects,
		validator: validation.New(),
	}
}

// List обрабатывает GET /api/v1/projects
// Поддерживает фильтры field, year, search и пагинацию page/limit
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	filter := models.ProjectFilter{
		Field:  strings.TrimSpace(query.Get("field")),
		Search: strings.TrimSpace(query.Get("search")),
		Page:   queryInt(query.Get("page"), 1),
		Limit:  queryInt(query.Get("limit"), defaultPageLimit),
	}
	filter.Page = max(1, min(filter.Page, models.MaxPage))
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	if raw := strings.TrimSpace(query.Get("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			h.sendError(w, "year must be a number", http.StatusBadRequest)
			return
		}
		filter.Year = year
	}

	projects, total, err := h.projects.ListProjects(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list projects", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, api.ProjectListResponse{
		Projects:   toAPIProjects(projects),
		Pagination: paginate(filter.Page, filter.Limit, total),
	}, http.StatusOK)
}

// Get обрабатывает GET /api/v1/projects/{id}
// Каждый просмотр увеличивает счетчик views
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		h.sendError(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	if err := h.projects.IncrementViews(ctx, id); err != nil {
		h.sendStorageError(r, w, err, "failed to increment views")
		return
	}

	project, err := h.projects.GetProject(ctx, id)
	if err != nil {
		h.sendStorageError(r, w, err, "failed to get project")
		return
	}

	h.sendJSON(w, api.ProjectResponse{Project: toAPIProject(project)}, http.StatusOK)
}

// Create обрабатывает POST /api/v1/projects (admin)
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		h.sendError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	req, ok := h.decodeProject(w, r)
	if !ok {
		return
	}

	project := &models.Project{
		Title:      req.Title,
		Author:     req.Author,
		Year:       req.Year,
		Field:      req.Field,
		FileURL:    req.FileURL,
		UploadedBy: identity.ID,
	}

	if err := h.projects.CreateProject(ctx, project); err != nil {
		h.logger.ErrorContext(ctx, "failed to create project", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "project created",
		slog.Int64("project_id", project.ID),
		slog.Int64("uploaded_by", identity.ID))

	h.respondWithProject(w, r, project.ID, "Project created successfully", http.StatusCreated)
}

// Update обрабатывает PUT /api/v1/projects/{id} (admin)
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		h.sendError(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	req, ok := h.decodeProject(w, r)
	if !ok {
		return
	}

	project := &models.Project{
		ID:      id,
		Title:   req.Title,
		Author:  req.Author,
		Year:    req.Year,
		Field:   req.Field,
		FileURL: req.FileURL,
	}

	if err := h.projects.UpdateProject(ctx, project); err != nil {
		h.sendStorageError(r, w, err, "failed to update project")
		return
	}

	h.logger.InfoContext(ctx, "project updated", slog.Int64("project_id", id))

	h.respondWithProject(w, r, id, "Project updated successfully", http.StatusOK)
}

// Delete обрабатывает DELETE /api/v1/projects/{id} (admin, soft delete)
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		h.sendError(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	if err := h.projects.DeleteProject(ctx, id); err != nil {
		h.sendStorageError(r, w, err, "failed to delete project")
		return
	}

	h.logger.InfoContext(ctx, "project deleted", slog.Int64("project_id", id))

	h.sendJSON(w, api.MessageResponse{Message: "Project deleted successfully"}, http.StatusOK)
}

func (h *ProjectHandler) decodeProject(w http.ResponseWriter, r *http.Request) (api.ProjectRequest, bool) {
	var req api.ProjectRequest
	if !h.decode(w, r, &req) {
		return req, false
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	req.Field = strings.TrimSpace(req.Field)
	req.FileURL = strings.TrimSpace(req.FileURL)

	if err := h.validator.Struct(req); err != nil {
		h.sendAppError(r, w, err)
		return req, false
	}

	return req, true
}

// respondWithProject перечитывает проект вместе с uploader и отправляет его
func (h *ProjectHandler) respondWithProject(w http.ResponseWriter, r *http.Request, id int64, message string, status int) {
	project, err := h.projects.GetProject(r.Context(), id)
	if err != nil {
		h.sendStorageError(r, w, err, "failed to reload project")
		return
	}

	h.sendJSON(w, api.ProjectResponse{Project: toAPIProject(project), Message: message}, status)
}

func (h *ProjectHandler) sendStorageError(r *http.Request, w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, storage.ErrProjectNotFound) {
		h.sendError(w, "Project not found", http.StatusNotFound)
		return
	}
	h.logger.ErrorContext(r.Context(), logMsg, slog.Any("error", err))
	h.sendError(w, "internal server error", http.StatusInternalServerError)
}

// queryInt parses a positive query value, falling back to def.
func queryInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func paginate(page, limit int, total int64) api.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return api.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		Limit:       limit,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
