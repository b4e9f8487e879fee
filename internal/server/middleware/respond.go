package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/capsort/capsort/internal/apperr"
	"github.com/capsort/capsort/pkg/api"
)

// writeError отправляет JSON ответ с ошибкой в формате api.ErrorResponse
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Kind:    apperr.CodeForStatus(statusCode),
		Message: message,
	})
}
