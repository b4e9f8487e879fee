// Package token issues and verifies the signed bearer tokens used by Capsort:
// session tokens for API access and single-purpose password-reset tokens.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/capsort/capsort/internal/models"
)

// Token type discriminators carried in the "type" claim.
const (
	TypeSession       = "session"
	TypePasswordReset = "password-reset"
)

var (
	// ErrTokenExpired indicates a well-signed token past its expiry
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid indicates a malformed token or a bad signature
	ErrTokenInvalid = errors.New("invalid token")
	// ErrWrongTokenType indicates a valid token of a different purpose
	ErrWrongTokenType = errors.New("wrong token type")
)

// SessionClaims представляет claims session токена
type SessionClaims struct {
	Role   models.Role `json:"role"`
	Type   string      `json:"type"`
	UserID int64       `json:"user_id"`
	jwt.RegisteredClaims
}

// ResetClaims представляет claims токена сброса пароля
type ResetClaims struct {
	Email  string `json:"email"`
	Type   string `json:"type"`
	UserID int64  `json:"user_id"`
	jwt.RegisteredClaims
}

// Config содержит конфигурацию для подписи токенов
type Config struct {
	Secret     []byte
	Issuer     string
	SessionTTL time.Duration
	ResetTTL   time.Duration
}

// Service подписывает и проверяет HS256 токены
// Секрет передается один раз при создании и больше нигде не хранится
type Service struct {
	now    func() time.Time
	secret []byte
	issuer string
	cfg    Config
}

// NewService creates a token service. The secret slice is copied.
func NewService(cfg Config) *Service {
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	cfg.Secret = nil

	return &Service{
		secret: secret,
		issuer: cfg.Issuer,
		cfg:    cfg,
		now:    time.Now,
	}
}

// SessionTTL returns the configured session token lifetime.
func (s *Service) SessionTTL() time.Duration {
	return s.cfg.SessionTTL
}

// IssueSession создает session токен для пользователя
// Возвращает токен и момент его истечения
func (s *Service) IssueSession(userID int64, role models.Role) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.SessionTTL)

	claims := SessionClaims{
		UserID: userID,
		Role:   role,
		Type:   TypeSession,
		RegisteredClaims: s.registered(userID, now, expiresAt, ""),
	}

	signed, err := s.sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create session token: %w", err)
	}

	return signed, expiresAt, nil
}

// IssueReset создает одноразовый токен сброса пароля
// jti (uuid) позволяет учитывать использование токена во внешнем ledger
func (s *Service) IssueReset(userID int64, email string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.ResetTTL)

	claims := ResetClaims{
		UserID: userID,
		Email:  email,
		Type:   TypePasswordReset,
		RegisteredClaims: s.registered(userID, now, expiresAt, uuid.NewString()),
	}

	signed, err := s.sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create reset token: %w", err)
	}

	return signed, expiresAt, nil
}

// VerifySession проверяет подпись, срок действия и тип session токена
func (s *Service) VerifySession(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}

	if claims.Type != TypeSession {
		return nil, ErrWrongTokenType
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("%w: missing user id", ErrTokenInvalid)
	}

	return claims, nil
}

// VerifyReset проверяет токен сброса пароля
// Токен без discriminator'а или с другим типом отклоняется, даже если подпись верна
func (s *Service) VerifyReset(tokenString string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}

	if claims.Type != TypePasswordReset {
		return nil, ErrWrongTokenType
	}
	if claims.UserID <= 0 || claims.Email == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}

	return claims, nil
}

func (s *Service) registered(userID int64, now, expiresAt time.Time, id string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        id,
		Subject:   strconv.FormatInt(userID, 10),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
}

func (s *Service) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) parse(tokenString string, claims jwt.Claims) error {
	if tokenString == "" {
		return fmt.Errorf("%w: empty token", ErrTokenInvalid)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		// Просроченный токен с верной подписью отличаем от поддельного
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return ErrTokenInvalid
	}

	return nil
}
