package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/capsort/capsort/internal/models"
	"github.com/capsort/capsort/internal/server/storage"
	"github.com/capsort/capsort/internal/server/token"
)

type contextKey string

const identityKey contextKey = "identity"

// SessionVerifier проверяет session токен
type SessionVerifier interface {
	VerifySession(tokenString string) (*token.SessionClaims, error)
}

// UserLookup загружает пользователя по ID
type UserLookup interface {
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
}

// WithIdentity attaches the resolved identity to ctx
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom returns the identity attached by Authenticate
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}

// Authenticate создает middleware, проверяющий bearer токен.
// Пользователь загружается из хранилища на каждый запрос: роль берется
// из хранилища, а не из токена.
func Authenticate(logger *slog.Logger, verifier SessionVerifier, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, ok := bearerToken(r)
			if !ok {
				logger.WarnContext(ctx, "missing or malformed Authorization header")
				writeError(w, http.StatusUnauthorized, "Access token required")
				return
			}

			claims, err := verifier.VerifySession(tokenString)
			if err != nil {
				logger.WarnContext(ctx, "invalid access token", slog.Any("error", err))
				if errors.Is(err, token.ErrTokenExpired) {
					writeError(w, http.StatusUnauthorized, "Token expired")
					return
				}
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			user, err := users.GetUserByID(ctx, claims.UserID)
			if err != nil {
				if errors.Is(err, storage.ErrUserNotFound) {
					logger.WarnContext(ctx, "token for unknown user", slog.Int64("user_id", claims.UserID))
					writeError(w, http.StatusUnauthorized, "Invalid token")
					return
				}
				logger.ErrorContext(ctx, "failed to load user", slog.Any("error", err))
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			logger.DebugContext(ctx, "user authenticated",
				slog.Int64("user_id", user.ID),
				slog.String("role", string(user.Role)))

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, user.Identity())))
		})
	}
}

// RequireRole пропускает только пользователей с одной из ролей.
// Должен стоять после Authenticate.
func RequireRole(logger *slog.Logger, roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			if !slices.Contains(roles, identity.Role) {
				logger.WarnContext(r.Context(), "insufficient role",
					slog.Int64("user_id", identity.ID),
					slog.String("role", string(identity.Role)))
				writeError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken извлекает токен из заголовка "Authorization: Bearer <token>"
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	tokenString := strings.TrimSpace(parts[1])
	return tokenString, tokenString != ""
}
