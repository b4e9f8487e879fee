package storage

import (
	"context"

	"github.com/capsort/capsort/internal/models"
)

// UserStorage defines interface for user credential persistence.
// Emails passed in are expected to be normalized (trimmed, lower-case).
type UserStorage interface {
	// CreateUser inserts a new user and sets user.ID
	// Returns ErrUserAlreadyExists if email is taken (enforced by a unique index)
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves user by email
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)

	// UpdateProfile updates full name, contact number and email
	// Returns ErrUserNotFound or ErrUserAlreadyExists
	UpdateProfile(ctx context.Context, user *models.User) error

	// UpdatePassword overwrites the password hash only
	// Returns ErrUserNotFound if user doesn't exist
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}
