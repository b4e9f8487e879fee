package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/capsort/capsort/internal/models"
)

// GetAbout returns the About block, or nil if it was never saved
func (s *Storage) GetAbout(ctx context.Context) (*models.AboutContent, error) {
	query := `
		SELECT title, subtitle, mission, contact_email, updated_by, updated_at
		FROM about_content
		WHERE id = 1
	`

	content := &models.AboutContent{}
	err := s.db.QueryRowContext(ctx, query).Scan(
		&content.Title,
		&content.Subtitle,
		&content.Mission,
		&content.ContactEmail,
		&content.UpdatedBy,
		&content.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get about content: %w", err)
	}

	return content, nil
}

// SaveAbout upserts the single About row
func (s *Storage) SaveAbout(ctx context.Context, content *models.AboutContent) error {
	query := `
		INSERT INTO about_content (id, title, subtitle, mission, contact_email, updated_by, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			subtitle = excluded.subtitle,
			mission = excluded.mission,
			contact_email = excluded.contact_email,
			updated_by = excluded.updated_by,
			updated_at = excluded.updated_at
	`

	content.UpdatedAt = s.now()

	_, err := s.db.ExecContext(ctx, s.q(query),
		content.Title,
		content.Subtitle,
		content.Mission,
		content.ContactEmail,
		content.UpdatedBy,
		content.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save about content: %w", err)
	}

	return nil
}
