package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/capsort/capsort/internal/models"
	"github.com/capsort/capsort/internal/server/middleware"
	"github.com/capsort/capsort/internal/server/storage"
	"github.com/capsort/capsort/internal/validation"
	"github.com/capsort/capsort/pkg/api"
)

// AboutHandler обрабатывает редактируемый блок "About"
type AboutHandler struct {
	about     storage.AboutStorage
	validator *validation.Validator
	responder
}

// NewAboutHandler создает handler для блока About
func NewAboutHandler(logger *slog.Logger, about storage.AboutStorage) *AboutHandler {
	return &AboutHandler{
		responder: responder{logger: logger},
		about:     about,
		validator: validation.New(),
	}
}

// Get обрабатывает GET /api/v1/about
// Пока администратор не сохранил блок, отдаются значения по умолчанию
func (h *AboutHandler) Get(w http.ResponseWriter, r *http.Request) {
	content, err := h.about.GetAbout(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get about content", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if content == nil {
		defaults := models.DefaultAboutContent()
		content = &defaults
	}

	h.sendJSON(w, toAPIAbout(*content), http.StatusOK)
}

// Update обрабатывает PUT /api/v1/about (admin)
func (h *AboutHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		h.sendError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req api.About
	if !h.decode(w, r, &req) {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Subtitle = strings.TrimSpace(req.Subtitle)
	req.Mission = strings.TrimSpace(req.Mission)
	req.ContactEmail = strings.TrimSpace(req.ContactEmail)

	if err := h.validator.Struct(req); err != nil {
		h.sendAppError(r, w, err)
		return
	}

	content := &models.AboutContent{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Mission:      req.Mission,
		ContactEmail: req.ContactEmail,
		UpdatedBy:    identity.ID,
	}

	if err := h.about.SaveAbout(ctx, content); err != nil {
		h.logger.ErrorContext(ctx, "failed to save about content", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "about content updated", slog.Int64("updated_by", identity.ID))

	h.sendJSON(w, toAPIAbout(*content), http.StatusOK)
}
