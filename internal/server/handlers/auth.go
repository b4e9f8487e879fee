package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/capsort/capsort/internal/models"
	"github.com/capsort/capsort/internal/server/auth"
	"github.com/capsort/capsort/internal/server/middleware"
	"github.com/capsort/capsort/pkg/api"
)

// AuthService операции аутентификации, которые использует AuthHandler
type AuthService interface {
	Register(ctx context.Context, req api.RegisterRequest) (*models.Identity, error)
	Login(ctx context.Context, req api.LoginRequest) (*auth.Session, error)
	AdminLogin(ctx context.Context, req api.LoginRequest) (*auth.Session, error)
	CurrentUser(identity models.Identity) models.Identity
	UpdateProfile(ctx context.Context, userID int64, req api.UpdateProfileRequest) (*models.Identity, error)
	ForgotPassword(ctx context.Context, req api.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req api.ResetPasswordRequest) error
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	service AuthService
	responder
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, service AuthService) *AuthHandler {
	return &AuthHandler{
		responder: responder{logger: logger},
		service:   service,
	}
}

// Register обрабатывает POST /api/v1/auth/register
// Регистрация нового студента
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	identity, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.sendAppError(r, w, err)
		return
	}

	h.sendJSON(w, api.UserResponse{
		Message: "Student account registered successfully",
		User:    toAPIUser(*identity),
	}, http.StatusCreated)
}

// Login обрабатывает POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.service.Login, "Student login successful")
}

// AdminLogin обрабатывает POST /api/v1/auth/admin/login
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.service.AdminLogin, "Admin login successful")
}

type loginFunc func(ctx context.Context, req api.LoginRequest) (*auth.Session, error)

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, fn loginFunc, message string) {
	var req api.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := fn(r.Context(), req)
	if err != nil {
		h.sendAppError(r, w, err)
		return
	}

	h.sendJSON(w, api.LoginResponse{
		Message:   message,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      toAPIUser(session.Identity),
	}, http.StatusOK)
}

// Me обрабатывает GET /api/v1/auth/me и GET /api/v1/admin/profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.sendError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	h.sendJSON(w, api.UserResponse{User: toAPIUser(h.service.CurrentUser(identity))}, http.StatusOK)
}

// UpdateProfile обрабатывает PUT /api/v1/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.sendError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req api.UpdateProfileRequest
	if !h.decode(w, r, &req) {
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), identity.ID, req)
	if err != nil {
		h.sendAppError(r, w, err)
		return
	}

	h.sendJSON(w, api.UserResponse{
		Message: "Profile updated successfully",
		User:    toAPIUser(*updated),
	}, http.StatusOK)
}

// ForgotPassword обрабатывает POST /api/v1/auth/forgot-password
// Ответ не зависит от существования аккаунта
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req api.ForgotPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req); err != nil {
		h.sendAppError(r, w, err)
		return
	}

	h.sendJSON(w, api.MessageResponse{Message: auth.ForgotPasswordMessage}, http.StatusOK)
}

// ResetPassword обрабатывает POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req api.ResetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.ResetPassword(r.Context(), req); err != nil {
		h.sendAppError(r, w, err)
		return
	}

	h.sendJSON(w, api.MessageResponse{Message: "Password has been reset successfully"}, http.StatusOK)
}
