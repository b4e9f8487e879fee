package handlers

import (
	"log/slog"
	"net/http"

	"github.com/capsort/capsort/pkg/api"
)

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	version string
	responder
}

// NewHealthHandler создает новый handler для health check
// version задается при сборке через -ldflags
func NewHealthHandler(logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		responder: responder{logger: logger},
		version:   version,
	}
}

// Health обрабатывает GET /api/v1/health
// Liveness проверка: база данных здесь не опрашивается, для этого есть /admin/system/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, api.HealthResponse{
		Status:  "ok",
		Version: h.version,
	}, http.StatusOK)
}
