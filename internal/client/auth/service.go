package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/capsort/capsort/internal/apperr"
	"github.com/capsort/capsort/internal/client/api"
	"github.com/capsort/capsort/internal/client/storage"
	"github.com/capsort/capsort/internal/validation"
	pkgapi "github.com/capsort/capsort/pkg/api"
)

var (
	// ErrNotLoggedIn нет сохраненной сессии
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrSessionExpired сохраненный токен истек
	ErrSessionExpired = errors.New("session expired")

	// ErrSessionRejected сервер больше не принимает токен
	ErrSessionRejected = errors.New("session rejected by server")
)

// APIClient методы сервера, нужные клиентской авторизации
type APIClient interface {
	BaseURL() string
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.UserResponse, error)
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error)
	AdminLogin(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error)
	Me(ctx context.Context, token string) (*pkgapi.UserResponse, error)
	ForgotPassword(ctx context.Context, req pkgapi.ForgotPasswordRequest) (*pkgapi.MessageResponse, error)
	ResetPassword(ctx context.Context, req pkgapi.ResetPasswordRequest) (*pkgapi.MessageResponse, error)
}

// SessionService реализует Service поверх API клиента и локального хранилища
type SessionService struct {
	apiClient APIClient
	store     storage.SessionStorage
	validate  *validation.Validator
	now       func() time.Time
}

var _ Service = (*SessionService)(nil)

// NewService создает новый сервис авторизации
func NewService(apiClient APIClient, store storage.SessionStorage) *SessionService {
	return &SessionService{
		apiClient: apiClient,
		store:     store,
		validate:  validation.New(),
		now:       time.Now,
	}
}

// Register проверяет данные локально и регистрирует студента
func (s *SessionService) Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.User, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.ContactNumber = strings.TrimSpace(req.ContactNumber)
	req.Email = validation.NormalizeEmail(req.Email)

	if err := s.check(&req); err != nil {
		return nil, err
	}

	resp, err := s.apiClient.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return &resp.User, nil
}

// Login аутентифицирует пользователя и сохраняет сессию
func (s *SessionService) Login(ctx context.Context, portal storage.Portal, email, password string) (*storage.Session, error) {
	req := pkgapi.LoginRequest{
		Email:    validation.NormalizeEmail(email),
		Password: password,
	}
	if err := s.check(&req); err != nil {
		return nil, err
	}

	var (
		resp *pkgapi.LoginResponse
		err  error
	)
	switch portal {
	case storage.PortalStudent:
		resp, err = s.apiClient.Login(ctx, req)
	case storage.PortalAdmin:
		resp, err = s.apiClient.AdminLogin(ctx, req)
	default:
		return nil, fmt.Errorf("unknown portal %q", portal)
	}
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	session := &storage.Session{
		Server:    s.apiClient.BaseURL(),
		Token:     resp.Token,
		Portal:    portal,
		User:      resp.User,
		ExpiresAt: resp.ExpiresAt,
		SavedAt:   s.now(),
	}

	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// Current returns the stored session if it is still valid for this server
func (s *SessionService) Current(ctx context.Context) (*storage.Session, error) {
	session, err := s.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	if session.Server != s.apiClient.BaseURL() {
		return nil, fmt.Errorf("%w: session belongs to %s", ErrNotLoggedIn, session.Server)
	}

	if session.Expired(s.now()) {
		return session, ErrSessionExpired
	}

	return session, nil
}

// WhoAmI проверяет токен на сервере и обновляет сохраненные данные пользователя
func (s *SessionService) WhoAmI(ctx context.Context) (*pkgapi.User, error) {
	session, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.apiClient.Me(ctx, session.Token)
	if err != nil {
		if api.IsUnauthorized(err) {
			// Пользователь удален или токен больше не валиден
			if delErr := s.store.DeleteSession(ctx); delErr != nil && !errors.Is(delErr, storage.ErrSessionNotFound) {
				return nil, fmt.Errorf("failed to drop rejected session: %w", delErr)
			}
			return nil, ErrSessionRejected
		}
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	// Профиль мог измениться с момента входа
	if resp.User != session.User {
		session.User = resp.User
		if err := s.store.SaveSession(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
	}

	return &resp.User, nil
}

// Logout удаляет локальную сессию
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.DeleteSession(ctx); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return ErrNotLoggedIn
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ForgotPassword запрашивает ссылку для сброса пароля
func (s *SessionService) ForgotPassword(ctx context.Context, email string) (string, error) {
	req := pkgapi.ForgotPasswordRequest{Email: validation.NormalizeEmail(email)}
	if err := s.check(&req); err != nil {
		return "", err
	}

	resp, err := s.apiClient.ForgotPassword(ctx, req)
	if err != nil {
		return "", fmt.Errorf("forgot password failed: %w", err)
	}
	return resp.Message, nil
}

// ResetPassword устанавливает новый пароль
func (s *SessionService) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	req := pkgapi.ResetPasswordRequest{
		Token:       strings.TrimSpace(token),
		NewPassword: newPassword,
	}
	if err := s.check(&req); err != nil {
		return "", err
	}

	resp, err := s.apiClient.ResetPassword(ctx, req)
	if err != nil {
		return "", fmt.Errorf("reset password failed: %w", err)
	}
	return resp.Message, nil
}

// check применяет серверные правила валидации до отправки запроса
func (s *SessionService) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	if !errors.As(err, &appErr) || len(appErr.Fields) == 0 {
		return err
	}

	parts := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return fmt.Errorf("invalid input: %s", strings.Join(parts, "; "))
}
