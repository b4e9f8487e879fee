package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/capsort/capsort/internal/apperr"
	"github.com/capsort/capsort/internal/models"
	"github.com/capsort/capsort/internal/server/storage"
	"github.com/capsort/capsort/internal/validation"
	"github.com/capsort/capsort/pkg/api"
)

// UpdateProfile изменяет имя, email и телефон пользователя.
// Роль и пароль здесь не меняются.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req api.UpdateProfileRequest) (*models.Identity, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.ContactNumber = strings.TrimSpace(req.ContactNumber)
	req.Email = strings.TrimSpace(req.Email)

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "User not found")
		}
		return nil, s.internal(ctx, "update_profile", "failed to get user", err)
	}

	user.FullName = req.FullName
	user.ContactNumber = req.ContactNumber
	user.Email = validation.NormalizeEmail(req.Email)

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		switch {
		case errors.Is(err, storage.ErrUserAlreadyExists):
			return nil, apperr.New(apperr.KindConflict, "Email is already in use by another account")
		case errors.Is(err, storage.ErrUserNotFound):
			return nil, apperr.New(apperr.KindNotFound, "User not found")
		}
		return nil, s.internal(ctx, "update_profile", "failed to update profile", err)
	}

	s.logger.InfoContext(ctx, "profile updated", slog.Int64("user_id", user.ID))

	identity := user.Identity()
	return &identity, nil
}
