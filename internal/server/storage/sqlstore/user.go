package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/capsort/capsort/internal/models"
	"github.com/capsort/capsort/internal/server/storage"
)

const userColumns = `id, full_name, contact_number, email, password_hash, role, created_at, updated_at`

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (full_name, contact_number, email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	now := s.now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	err := s.db.QueryRowContext(ctx, s.q(query),
		user.FullName,
		user.ContactNumber,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		user.CreatedAt.UTC(),
		user.UpdatedAt.UTC(),
	).Scan(&user.ID)

	if err != nil {
		// Уникальный индекс по email - окончательный арбитр при гонке регистраций
		if isUniqueViolation(err) {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves user by email
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return s.scanUser(s.db.QueryRowContext(ctx, s.q(query), email))
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return s.scanUser(s.db.QueryRowContext(ctx, s.q(query), userID))
}

// UpdateProfile updates user profile fields
func (s *Storage) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET full_name = ?, contact_number = ?, email = ?, updated_at = ?
		WHERE id = ?
	`

	user.UpdatedAt = s.now()

	result, err := s.db.ExecContext(ctx, s.q(query),
		user.FullName,
		user.ContactNumber,
		user.Email,
		user.UpdatedAt,
		user.ID,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return expectAffected(result, storage.ErrUserNotFound)
}

// UpdatePassword overwrites the stored password hash
func (s *Storage) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, s.q(query), passwordHash, s.now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return expectAffected(result, storage.ErrUserNotFound)
}

func (s *Storage) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var role string

	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.ContactNumber,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Role = models.Role(role)

	return user, nil
}

// expectAffected возвращает notFound, если запрос не затронул ни одной строки
func expectAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return notFound
	}

	return nil
}
