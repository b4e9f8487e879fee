package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/capsort/capsort/internal/models"
	"github.com/capsort/capsort/internal/server/storage"
)

const projectSelect = `
	SELECT p.id, p.title, p.author, p.year, p.field, p.file_url, p.uploaded_by,
	       p.views, p.is_deleted, p.created_at, p.updated_at,
	       u.id, u.full_name, u.email, u.role
	FROM projects p
	JOIN users u ON u.id = p.uploaded_by
`

type rowScanner interface {
	Scan(dest ...any) error
}

// ListProjects returns a filtered page of projects, newest first
func (s *Storage) ListProjects(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, int64, error) {
	where, args := projectWhere(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM projects p WHERE ` + where
	if err := s.db.QueryRowContext(ctx, s.q(countQuery), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	query := projectSelect + ` WHERE ` + where + ` ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?`
	pageArgs := append(args, filter.Limit, filter.Offset())

	rows, err := s.db.QueryContext(ctx, s.q(query), pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query projects: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	projects := make([]*models.Project, 0, filter.Limit)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return projects, total, nil
}

// projectWhere строит WHERE для фильтра; аргументы в порядке плейсхолдеров
func projectWhere(filter models.ProjectFilter) (string, []any) {
	clauses := []string{"p.is_deleted = FALSE"}
	var args []any

	if filter.Field != "" {
		clauses = append(clauses, `LOWER(p.field) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(filter.Field))
	}

	if filter.Year != 0 {
		clauses = append(clauses, "p.year = ?")
		args = append(args, filter.Year)
	}

	if filter.Search != "" {
		clauses = append(clauses, `(LOWER(p.title) LIKE ? ESCAPE '\' OR LOWER(p.author) LIKE ? ESCAPE '\')`)
		pattern := likePattern(filter.Search)
		args = append(args, pattern, pattern)
	}

	return strings.Join(clauses, " AND "), args
}

// GetProject retrieves a non-deleted project by ID
func (s *Storage) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	query := projectSelect + ` WHERE p.id = ? AND p.is_deleted = FALSE`

	project, err := scanProject(s.db.QueryRowContext(ctx, s.q(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrProjectNotFound
		}
		return nil, err
	}

	return project, nil
}

// IncrementViews bumps the view counter
func (s *Storage) IncrementViews(ctx context.Context, id int64) error {
	query := `UPDATE projects SET views = views + 1 WHERE id = ? AND is_deleted = FALSE`

	result, err := s.db.ExecContext(ctx, s.q(query), id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	return expectAffected(result, storage.ErrProjectNotFound)
}

// CreateProject inserts a new project
func (s *Storage) CreateProject(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (title, author, year, field, file_url, uploaded_by, views, is_deleted, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, FALSE, ?, ?)
		RETURNING id
	`

	now := s.now()
	project.CreatedAt = now
	project.UpdatedAt = now

	err := s.db.QueryRowContext(ctx, s.q(query),
		project.Title,
		project.Author,
		project.Year,
		project.Field,
		project.FileURL,
		project.UploadedBy,
		now,
		now,
	).Scan(&project.ID)

	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	return nil
}

// UpdateProject updates editable project fields
func (s *Storage) UpdateProject(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects
		SET title = ?, author = ?, year = ?, field = ?, file_url = ?, updated_at = ?
		WHERE id = ? AND is_deleted = FALSE
	`

	project.UpdatedAt = s.now()

	result, err := s.db.ExecContext(ctx, s.q(query),
		project.Title,
		project.Author,
		project.Year,
		project.Field,
		project.FileURL,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	return expectAffected(result, storage.ErrProjectNotFound)
}

// DeleteProject marks project as deleted (soft delete)
func (s *Storage) DeleteProject(ctx context.Context, id int64) error {
	query := `UPDATE projects SET is_deleted = TRUE, updated_at = ? WHERE id = ? AND is_deleted = FALSE`

	result, err := s.db.ExecContext(ctx, s.q(query), s.now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return expectAffected(result, storage.ErrProjectNotFound)
}

func scanProject(row rowScanner) (*models.Project, error) {
	project := &models.Project{Uploader: &models.Uploader{}}
	var role string

	err := row.Scan(
		&project.ID,
		&project.Title,
		&project.Author,
		&project.Year,
		&project.Field,
		&project.FileURL,
		&project.UploadedBy,
		&project.Views,
		&project.IsDeleted,
		&project.CreatedAt,
		&project.UpdatedAt,
		&project.Uploader.ID,
		&project.Uploader.FullName,
		&project.Uploader.Email,
		&role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}

	project.Uploader.Role = models.Role(role)

	return project, nil
}
