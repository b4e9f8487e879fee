package auth

import (
	"context"

	"github.com/capsort/capsort/internal/client/storage"
	pkgapi "github.com/capsort/capsort/pkg/api"
)

//go:generate moq -out service_mock.go . Service

// Service defines the client side of authentication.
// It talks to the server and keeps the resulting session in local storage.
type Service interface {
	// Register создает аккаунт студента; сессия не сохраняется
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.User, error)

	// Login входит через указанный портал и сохраняет сессию
	Login(ctx context.Context, portal storage.Portal, email, password string) (*storage.Session, error)

	// Current возвращает сохраненную сессию без обращения к серверу.
	// ErrNotLoggedIn если сессии нет, ErrSessionExpired если токен истек.
	Current(ctx context.Context) (*storage.Session, error)

	// WhoAmI запрашивает текущего пользователя у сервера.
	// Если сервер отклонил токен, локальная сессия удаляется.
	WhoAmI(ctx context.Context) (*pkgapi.User, error)

	// Logout удаляет локальную сессию; сервер не уведомляется
	Logout(ctx context.Context) error

	// ForgotPassword запрашивает письмо со ссылкой для сброса пароля
	ForgotPassword(ctx context.Context, email string) (string, error)

	// ResetPassword устанавливает новый пароль по токену из письма
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
}
