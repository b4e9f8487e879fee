package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/capsort/capsort/internal/server/middleware"
	"github.com/capsort/capsort/internal/server/storage"
	"github.com/capsort/capsort/pkg/api"
)

// SavedHandler обрабатывает список сохраненных проектов студента
type SavedHandler struct {
	saved storage.SavedProjectStorage
	responder
}

// NewSavedHandler создает handler для сохраненных проектов
func NewSavedHandler(logger *slog.Logger, saved storage.SavedProjectStorage) *SavedHandler {
	return &SavedHandler{
		responder: responder{logger: logger},
		saved:     saved,
	}
}

// List обрабатывает GET /api/v1/saved-projects
func (h *SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		h.sendError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	items, err := h.saved.ListSavedProjects(ctx, identity.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list saved projects", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.SavedProjectsResponse{SavedProjects: make([]api.SavedProject, 0, len(items))}
	for _, item := range items {
		resp.SavedProjects = append(resp.SavedProjects, api.SavedProject{
			SavedAt: item.SavedAt,
			Project: toAPIProject(&item.Project),
		})
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Save обрабатывает POST /api/v1/saved-projects/{projectId}
func (h *SavedHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		h.sendError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	projectID, err := pathID(r, "projectId")
	if err != nil {
		h.sendError(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	if err := h.saved.SaveProject(ctx, identity.ID, projectID); err != nil {
		switch {
		case errors.Is(err, storage.ErrProjectNotFound):
			h.sendError(w, "Project not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrAlreadySaved):
			h.sendError(w, "Project already saved", http.StatusConflict)
		default:
			h.logger.ErrorContext(ctx, "failed to save project", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.sendJSON(w, api.MessageResponse{Message: "Project saved successfully"}, http.StatusCreated)
}

// Unsave обрабатывает DELETE /api/v1/saved-projects/{projectId}
func (h *SavedHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		h.sendError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	projectID, err := pathID(r, "projectId")
	if err != nil {
		h.sendError(w, "Invalid project ID", http.StatusBadRequest)
		return
	}

	if err := h.saved.UnsaveProject(ctx, identity.ID, projectID); err != nil {
		if errors.Is(err, storage.ErrNotSaved) {
			h.sendError(w, "Saved project not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to unsave project", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, api.MessageResponse{Message: "Project removed from saved list"}, http.StatusOK)
}
