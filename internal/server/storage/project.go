package storage

import (
	"context"

	"github.com/capsort/capsort/internal/models"
)

// ProjectStorage defines interface for capstone project persistence
type ProjectStorage interface {
	// ListProjects returns a page of non-deleted projects matching the filter,
	// newest first, and the total number of matches
	ListProjects(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, int64, error)

	// GetProject retrieves a non-deleted project with its uploader
	// Returns ErrProjectNotFound if project doesn't exist
	GetProject(ctx context.Context, id int64) (*models.Project, error)

	// IncrementViews bumps the view counter of a non-deleted project
	IncrementViews(ctx context.Context, id int64) error

	// CreateProject inserts a project and sets its ID
	CreateProject(ctx context.Context, project *models.Project) error

	// UpdateProject updates title, author, year, field and file URL
	// Returns ErrProjectNotFound if project doesn't exist
	UpdateProject(ctx context.Context, project *models.Project) error

	// DeleteProject soft-deletes a project
	// Returns ErrProjectNotFound if project doesn't exist
	DeleteProject(ctx context.Context, id int64) error
}

// SavedProjectStorage defines interface for a student's saved projects
type SavedProjectStorage interface {
	// SaveProject adds a project to the user's list
	// Returns ErrProjectNotFound or ErrAlreadySaved
	SaveProject(ctx context.Context, userID, projectID int64) error

	// UnsaveProject removes a project from the user's list
	// Returns ErrNotSaved if it was not saved
	UnsaveProject(ctx context.Context, userID, projectID int64) error

	// ListSavedProjects returns the user's saved non-deleted projects, newest save first
	ListSavedProjects(ctx context.Context, userID int64) ([]*models.SavedProject, error)
}

// AboutStorage defines interface for the editable About block
type AboutStorage interface {
	// GetAbout returns the stored content, or (nil, nil) if never edited
	GetAbout(ctx context.Context) (*models.AboutContent, error)

	// SaveAbout upserts the content
	SaveAbout(ctx context.Context, content *models.AboutContent) error
}

// AnalyticsStorage defines read-only aggregate queries
type AnalyticsStorage interface {
	Dashboard(ctx context.Context) (*models.DashboardSummary, error)
	ProjectsByYear(ctx context.Context) ([]models.YearBucket, error)
	FieldDistribution(ctx context.Context) ([]models.FieldShare, error)
	TopSaved(ctx context.Context, limit int) ([]models.SavedCount, error)
	UserActivity(ctx context.Context) (*models.UserActivity, error)
	DatabaseStats(ctx context.Context) (*models.DatabaseStats, error)
	Ping(ctx context.Context) error
}
