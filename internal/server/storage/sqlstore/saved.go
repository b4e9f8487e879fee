package sqlstore

import (
	"context"
	"fmt"

	"github.com/capsort/capsort/internal/models"
	"github.com/capsort/capsort/internal/server/storage"
)

// SaveProject adds a project to the user's saved list
func (s *Storage) SaveProject(ctx context.Context, userID, projectID int64) error {
	// Проект должен существовать и не быть удаленным
	var exists int
	err := s.db.QueryRowContext(ctx,
		s.q(`SELECT COUNT(*) FROM projects WHERE id = ? AND is_deleted = FALSE`),
		projectID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check project: %w", err)
	}
	if exists == 0 {
		return storage.ErrProjectNotFound
	}

	query := `INSERT INTO saved_projects (user_id, project_id, created_at) VALUES (?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, s.q(query), userID, projectID, s.now()); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadySaved
		}
		return fmt.Errorf("failed to save project: %w", err)
	}

	return nil
}

// UnsaveProject removes a project from the user's saved list
func (s *Storage) UnsaveProject(ctx context.Context, userID, projectID int64) error {
	query := `DELETE FROM saved_projects WHERE user_id = ? AND project_id = ?`

	result, err := s.db.ExecContext(ctx, s.q(query), userID, projectID)
	if err != nil {
		return fmt.Errorf("failed to unsave project: %w", err)
	}

	return expectAffected(result, storage.ErrNotSaved)
}

// ListSavedProjects returns the user's saved projects
func (s *Storage) ListSavedProjects(ctx context.Context, userID int64) ([]*models.SavedProject, error) {
	query := `
		SELECT p.id, p.title, p.author, p.year, p.field, p.file_url, p.uploaded_by,
		       p.views, p.is_deleted, p.created_at, p.updated_at,
		       u.id, u.full_name, u.email, u.role,
		       sp.created_at
		FROM saved_projects sp
		JOIN projects p ON p.id = sp.project_id
		JOIN users u ON u.id = p.uploaded_by
		WHERE sp.user_id = ? AND p.is_deleted = FALSE
		ORDER BY sp.created_at DESC, p.id DESC
	`

	rows, err := s.db.QueryContext(ctx, s.q(query), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved projects: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	saved := make([]*models.SavedProject, 0)
	for rows.Next() {
		item := &models.SavedProject{UserID: userID}
		scanner := savedRow{rows: rows, savedAt: &item.SavedAt}

		project, err := scanProject(scanner)
		if err != nil {
			return nil, err
		}
		item.Project = *project
		saved = append(saved, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return saved, nil
}

// savedRow добавляет колонку sp.created_at к колонкам проекта
type savedRow struct {
	rows    rowScanner
	savedAt any
}

func (r savedRow) Scan(dest ...any) error {
	return r.rows.Scan(append(dest, r.savedAt)...)
}
