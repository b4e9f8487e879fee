package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/capsort/capsort/internal/models"
	"github.com/capsort/capsort/internal/server/storage"
	"github.com/capsort/capsort/internal/validation"
)

// AdminSeed учетные данные администратора для bootstrap при старте
type AdminSeed struct {
	Email         string
	Password      string
	FullName      string
	ContactNumber string
}

// ProvisionAdmin creates the admin account if no user with that email exists.
// It is the only path that creates admins and is never exposed over HTTP.
// Returns true if a new account was created.
func (s *Service) ProvisionAdmin(ctx context.Context, seed AdminSeed) (bool, error) {
	email := validation.NormalizeEmail(seed.Email)
	if email == "" {
		return false, errors.New("admin email is required")
	}
	if err := validation.ValidatePassword(seed.Password); err != nil {
		return false, fmt.Errorf("admin password: %w", err)
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != models.RoleAdmin {
			return false, fmt.Errorf("user %s exists and is not an admin", email)
		}
		return false, nil
	case !errors.Is(err, storage.ErrUserNotFound):
		return false, fmt.Errorf("look up admin: %w", err)
	}

	hash, err := s.hasher.Hash(seed.Password)
	if err != nil {
		return false, err
	}

	name := strings.TrimSpace(seed.FullName)
	if name == "" {
		name = "Administrator"
	}

	user := &models.User{
		FullName:      name,
		ContactNumber: seed.ContactNumber,
		Email:         email,
		PasswordHash:  hash,
		Role:          models.RoleAdmin,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		// Другой экземпляр мог создать администратора одновременно
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("create admin: %w", err)
	}

	s.logger.InfoContext(ctx, "admin account provisioned", slog.Int64("user_id", user.ID))

	return true, nil
}
