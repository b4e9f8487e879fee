package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/capsort/capsort/internal/apperr"
	"github.com/capsort/capsort/pkg/api"
)

// maxBodyBytes ограничивает размер JSON тела запроса
const maxBodyBytes = 1 << 20

var errInvalidID = errors.New("invalid id")

// responder общие методы отправки ответов для всех handlers
type responder struct {
	logger *slog.Logger
}

// sendJSON отправляет JSON ответ
func (h responder) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h responder) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Kind:    apperr.CodeForStatus(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}

// sendAppError переводит ошибку сервиса в HTTP ответ.
// Неклассифицированные ошибки отдаются как 500 без деталей.
func (h responder) sendAppError(r *http.Request, w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		h.logger.ErrorContext(r.Context(), "unexpected error", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	status := statusFor(appErr.Kind)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "internal error", slog.Any("error", appErr))
		h.sendError(w, "internal server error", status)
		return
	}

	resp := api.ErrorResponse{
		Error:   http.StatusText(status),
		Kind:    appErr.Kind.String(),
		Message: appErr.Message,
	}
	for _, f := range appErr.Fields {
		resp.Details = append(resp.Details, api.FieldError{Field: f.Field, Message: f.Message})
	}
	h.sendJSON(w, resp, status)
}

// decode читает JSON тело запроса в dst
// При ошибке отправляет 400 и возвращает false
func (h responder) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		msg := "invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		h.logger.WarnContext(r.Context(), "failed to decode request", slog.Any("error", err))
		h.sendError(w, msg, http.StatusBadRequest)
		return false
	}
	return true
}

// statusFor returns the HTTP status for an error kind.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindInvalidToken:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// pathID извлекает положительный int64 из path параметра chi
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// FallbackHandler отвечает JSON на неизвестные маршруты и методы
type FallbackHandler struct {
	responder
}

// NewFallbackHandler создает handler для 404 и 405
func NewFallbackHandler(logger *slog.Logger) *FallbackHandler {
	return &FallbackHandler{responder: responder{logger: logger}}
}

// NotFound отвечает 404 для неизвестного пути
func (h *FallbackHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.sendError(w, "Route not found", http.StatusNotFound)
}

// MethodNotAllowed отвечает 405 для известного пути с неверным методом
func (h *FallbackHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
}
