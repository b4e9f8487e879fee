// Package auth implements registration, login, password reset and profile
// operations on top of the credential store.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/capsort/capsort/internal/apperr"
	"github.com/capsort/capsort/internal/crypto"
	"github.com/capsort/capsort/internal/models"
	"github.com/capsort/capsort/internal/server/mailer"
	"github.com/capsort/capsort/internal/server/storage"
	"github.com/capsort/capsort/internal/server/token"
	"github.com/capsort/capsort/internal/validation"
	"github.com/capsort/capsort/pkg/api"
)

// Сообщения об ошибках, видимые клиенту
const (
	msgInvalidCredentials      = "Invalid credentials"
	msgInvalidAdminCredentials = "Invalid admin credentials"
	msgAdminPortal             = "Admin accounts must use the admin login portal"
	msgAdminRegistration       = "Admin accounts cannot be created through registration"
	msgEmailTaken              = "User with this email already exists"
	msgInvalidResetToken       = "Invalid or expired reset token"
)

// ResetLedger помечает токены сброса пароля как использованные
// Consume returns false if jti was already consumed.
// Release undoes Consume when the password could not be stored.
type ResetLedger interface {
	Consume(ctx context.Context, jti string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, jti string) error
}

// Observer получает исходы операций аутентификации для метрик
type Observer interface {
	ObserveAuth(operation, outcome string)
}

// Config настройки сервиса
type Config struct {
	FrontendURL string
	MailTimeout time.Duration
}

// Service реализует операции аутентификации
type Service struct {
	logger    *slog.Logger
	users     storage.UserStorage
	hasher    *crypto.PasswordHasher
	tokens    *token.Service
	validator *validation.Validator
	mailer    mailer.Sender
	ledger    ResetLedger
	observer  Observer
	wg        sync.WaitGroup
	cfg       Config
}

// Option настраивает необязательные зависимости
type Option func(*Service)

// WithResetLedger makes reset tokens single-use
func WithResetLedger(ledger ResetLedger) Option {
	return func(s *Service) {
		s.ledger = ledger
	}
}

// WithObserver reports operation outcomes
func WithObserver(observer Observer) Option {
	return func(s *Service) {
		s.observer = observer
	}
}

// NewService создает сервис аутентификации
func NewService(
	logger *slog.Logger,
	users storage.UserStorage,
	hasher *crypto.PasswordHasher,
	tokens *token.Service,
	sender mailer.Sender,
	cfg Config,
	opts ...Option,
) *Service {
	if cfg.MailTimeout == 0 {
		cfg.MailTimeout = 30 * time.Second
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")

	s := &Service{
		logger:    logger,
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		validator: validation.New(),
		mailer:    sender,
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Session is the result of a successful login
type Session struct {
	ExpiresAt time.Time
	Token     string
	Identity  models.Identity
}

// Register создает учетную запись студента
func (s *Service) Register(ctx context.Context, req api.RegisterRequest) (*models.Identity, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.ContactNumber = strings.TrimSpace(req.ContactNumber)
	req.Email = strings.TrimSpace(req.Email)

	if err := s.validator.Struct(req); err != nil {
		s.observe("register", "invalid")
		return nil, err
	}

	// Публичная регистрация никогда не создает администратора
	if strings.EqualFold(strings.TrimSpace(req.Role), string(models.RoleAdmin)) {
		s.logger.WarnContext(ctx, "admin self-registration rejected")
		s.observe("register", "forbidden")
		return nil, apperr.New(apperr.KindForbidden, msgAdminRegistration)
	}

	email := validation.NormalizeEmail(req.Email)

	// Предварительная проверка - только оптимизация, арбитр - уникальный индекс
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		s.observe("register", "conflict")
		return nil, apperr.New(apperr.KindConflict, msgEmailTaken)
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, s.internal(ctx, "register", "failed to look up user", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, s.internal(ctx, "register", "failed to hash password", err)
	}

	user := &models.User{
		FullName:      req.FullName,
		ContactNumber: req.ContactNumber,
		Email:         email,
		PasswordHash:  hash,
		Role:          models.RoleStudent,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			s.observe("register", "conflict")
			return nil, apperr.New(apperr.KindConflict, msgEmailTaken)
		}
		return nil, s.internal(ctx, "register", "failed to create user", err)
	}

	s.logger.InfoContext(ctx, "user registered successfully", slog.Int64("user_id", user.ID))
	s.observe("register", "success")

	identity := user.Identity()
	return &identity, nil
}

// Login аутентифицирует студента
// Учетные записи администраторов отклоняются, даже с верным паролем
func (s *Service) Login(ctx context.Context, req api.LoginRequest) (*Session, error) {
	user, err := s.authenticate(ctx, "login", req, msgInvalidCredentials)
	if err != nil {
		return nil, err
	}

	if user.Role == models.RoleAdmin {
		s.logger.WarnContext(ctx, "admin attempted student login", slog.Int64("user_id", user.ID))
		s.observe("login", "wrong_portal")
		return nil, apperr.New(apperr.KindUnauthorized, msgAdminPortal)
	}

	return s.issueSession(ctx, "login", user)
}

// AdminLogin аутентифицирует администратора
func (s *Service) AdminLogin(ctx context.Context, req api.LoginRequest) (*Session, error) {
	user, err := s.authenticate(ctx, "admin_login", req, msgInvalidAdminCredentials)
	if err != nil {
		return nil, err
	}

	if user.Role != models.RoleAdmin {
		s.logger.WarnContext(ctx, "non-admin attempted admin login", slog.Int64("user_id", user.ID))
		s.observe("admin_login", "invalid_credentials")
		return nil, apperr.New(apperr.KindUnauthorized, msgInvalidAdminCredentials)
	}

	return s.issueSession(ctx, "admin_login", user)
}

// CurrentUser возвращает identity, уже разрешенную Access Gate
func (s *Service) CurrentUser(identity models.Identity) models.Identity {
	return identity
}

// authenticate проверяет email и пароль
// Для несуществующего пользователя выполняется фиктивная проверка bcrypt,
// чтобы время ответа не выдавало наличие учетной записи
func (s *Service) authenticate(ctx context.Context, op string, req api.LoginRequest, failMsg string) (*models.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		s.observe(op, "invalid")
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, validation.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			_ = s.hasher.VerifyDummy(req.Password)
			s.logger.WarnContext(ctx, op+" failed: unknown email")
			s.observe(op, "invalid_credentials")
			return nil, apperr.New(apperr.KindUnauthorized, failMsg)
		}
		return nil, s.internal(ctx, op, "failed to get user", err)
	}

	if err := s.hasher.Verify(req.Password, user.PasswordHash); err != nil {
		if !errors.Is(err, crypto.ErrMismatch) {
			return nil, s.internal(ctx, op, "failed to verify password", err)
		}
		s.logger.WarnContext(ctx, op+" failed: wrong password", slog.Int64("user_id", user.ID))
		s.observe(op, "invalid_credentials")
		return nil, apperr.New(apperr.KindUnauthorized, failMsg)
	}

	return user, nil
}

func (s *Service) issueSession(ctx context.Context, op string, user *models.User) (*Session, error) {
	signed, expiresAt, err := s.tokens.IssueSession(user.ID, user.Role)
	if err != nil {
		return nil, s.internal(ctx, op, "failed to issue session token", err)
	}

	s.logger.InfoContext(ctx, "user logged in successfully",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)))
	s.observe(op, "success")

	return &Session{
		Token:     signed,
		ExpiresAt: expiresAt,
		Identity:  user.Identity(),
	}, nil
}

// Wait blocks until background reset emails have been handled
func (s *Service) Wait() {
	s.wg.Wait()
}

// internal логирует причину и возвращает generic InternalError
func (s *Service) internal(ctx context.Context, op, msg string, err error) error {
	s.logger.ErrorContext(ctx, msg, slog.String("operation", op), slog.Any("error", err))
	s.observe(op, "error")
	return apperr.Internal(err)
}

func (s *Service) observe(op, outcome string) {
	if s.observer != nil {
		s.observer.ObserveAuth(op, outcome)
	}
}
