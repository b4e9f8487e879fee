package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/capsort/capsort/internal/server/storage"
	"github.com/capsort/capsort/pkg/api"
)

// pingTimeout ограничивает проверку базы данных в system health
const pingTimeout = 2 * time.Second

// AdminHandler обрабатывает системные запросы администратора
type AdminHandler struct {
	analytics storage.AnalyticsStorage
	responder
}

// NewAdminHandler создает handler для админских системных запросов
func NewAdminHandler(logger *slog.Logger, analytics storage.AnalyticsStorage) *AdminHandler {
	return &AdminHandler{
		responder: responder{logger: logger},
		analytics: analytics,
	}
}

// DatabaseStats обрабатывает GET /api/v1/admin/database-stats
func (h *AdminHandler) DatabaseStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.DatabaseStats(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get database stats", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, api.DatabaseStats{
		Users:               stats.Users,
		Projects:            stats.Projects,
		SavedProjects:       stats.SavedProjects,
		AboutContent:        stats.AboutContent,
		SoftDeletedProjects: stats.SoftDeletedProjects,
	}, http.StatusOK)
}

// SystemHealth обрабатывает GET /api/v1/admin/system/health
// Недоступная база данных дает 503
func (h *AdminHandler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	start := time.Now()
	err := h.analytics.Ping(ctx)
	latency := time.Since(start)

	resp := api.SystemHealth{
		Status:    "healthy",
		Database:  "connected",
		LatencyMS: latency.Milliseconds(),
	}
	status := http.StatusOK

	if err != nil {
		h.logger.ErrorContext(r.Context(), "database ping failed", slog.Any("error", err))
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		resp.Error = "database is unreachable"
		status = http.StatusServiceUnavailable
	}

	h.sendJSON(w, resp, status)
}
