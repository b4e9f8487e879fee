package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/capsort/capsort/internal/models"
)

// Dashboard returns summary counters for the analytics page
func (s *Storage) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	summary := &models.DashboardSummary{}

	counters := []struct {
		dest  *int64
		query string
	}{
		{&summary.TotalProjects, `SELECT COUNT(*) FROM projects WHERE is_deleted = FALSE`},
		{&summary.TotalUsers, `SELECT COUNT(*) FROM users`},
		{&summary.TotalSaves, `SELECT COUNT(*) FROM saved_projects`},
		{&summary.ActiveStudents, activeStudentsQuery},
	}

	for _, c := range counters {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	query := projectSelect + ` WHERE p.is_deleted = FALSE AND p.views > 0 ORDER BY p.views DESC, p.id ASC LIMIT 1`
	project, err := scanProject(s.db.QueryRowContext(ctx, query))
	switch {
	case err == nil:
		summary.MostViewedProject = project
	case errors.Is(err, sql.ErrNoRows):
		// Ни один проект еще не просматривался
	default:
		return nil, err
	}

	return summary, nil
}

const activeStudentsQuery = `
	SELECT COUNT(DISTINCT sp.user_id)
	FROM saved_projects sp
	JOIN users u ON u.id = sp.user_id
	WHERE u.role = 'student'
`

// ProjectsByYear returns per-year totals with a per-field breakdown, oldest year first
func (s *Storage) ProjectsByYear(ctx context.Context) ([]models.YearBucket, error) {
	query := `
		SELECT year, field, COUNT(*)
		FROM projects
		WHERE is_deleted = FALSE
		GROUP BY year, field
		ORDER BY year ASC, field ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects by year: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	buckets := make([]models.YearBucket, 0)
	for rows.Next() {
		var (
			year  int
			field string
			count int64
		)
		if err := rows.Scan(&year, &field, &count); err != nil {
			return nil, fmt.Errorf("failed to scan year bucket: %w", err)
		}

		// Строки отсортированы по году, поэтому достаточно смотреть на последний bucket
		if len(buckets) == 0 || buckets[len(buckets)-1].Year != year {
			buckets = append(buckets, models.YearBucket{Year: year, ByField: map[string]int64{}})
		}
		last := &buckets[len(buckets)-1]
		last.ByField[field] += count
		last.Total += count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return buckets, nil
}

// FieldDistribution returns project counts per field with percentages
func (s *Storage) FieldDistribution(ctx context.Context) ([]models.FieldShare, error) {
	query := `
		SELECT field, COUNT(*)
		FROM projects
		WHERE is_deleted = FALSE
		GROUP BY field
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query field distribution: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	shares := make([]models.FieldShare, 0)
	var total int64
	for rows.Next() {
		var share models.FieldShare
		if err := rows.Scan(&share.Name, &share.Value); err != nil {
			return nil, fmt.Errorf("failed to scan field share: %w", err)
		}
		total += share.Value
		shares = append(shares, share)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	for i := range shares {
		if total > 0 {
			pct := float64(shares[i].Value) * 100 / float64(total)
			shares[i].Percentage = math.Round(pct*10) / 10
		}
	}

	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].Value != shares[j].Value {
			return shares[i].Value > shares[j].Value
		}
		return shares[i].Name < shares[j].Name
	})

	return shares, nil
}

// TopSaved returns the most saved projects
func (s *Storage) TopSaved(ctx context.Context, limit int) ([]models.SavedCount, error) {
	query := `
		SELECT p.id, p.title, p.author, p.year, p.field, COUNT(sp.user_id) AS saves
		FROM projects p
		JOIN saved_projects sp ON sp.project_id = p.id
		WHERE p.is_deleted = FALSE
		GROUP BY p.id, p.title, p.author, p.year, p.field
		ORDER BY saves DESC, p.id ASC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, s.q(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top saved: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	top := make([]models.SavedCount, 0, limit)
	for rows.Next() {
		var item models.SavedCount
		if err := rows.Scan(
			&item.Project.ID,
			&item.Project.Title,
			&item.Project.Author,
			&item.Project.Year,
			&item.Project.Field,
			&item.Saves,
		); err != nil {
			return nil, fmt.Errorf("failed to scan top saved: %w", err)
		}
		top = append(top, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return top, nil
}

// UserActivity returns user counters
func (s *Storage) UserActivity(ctx context.Context) (*models.UserActivity, error) {
	activity := &models.UserActivity{}
	since := s.now().Add(-30 * 24 * time.Hour)

	counters := []struct {
		dest  *int64
		query string
		args  []any
	}{
		{dest: &activity.TotalStudents, query: `SELECT COUNT(*) FROM users WHERE role = 'student'`},
		{dest: &activity.TotalAdmins, query: `SELECT COUNT(*) FROM users WHERE role = 'admin'`},
		{dest: &activity.NewUsersLast30Days, query: `SELECT COUNT(*) FROM users WHERE created_at >= ?`, args: []any{since}},
		{dest: &activity.ActiveStudents, query: activeStudentsQuery},
	}

	for _, c := range counters {
		if err := s.db.QueryRowContext(ctx, s.q(c.query), c.args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count users: %w", err)
		}
	}

	return activity, nil
}

// DatabaseStats returns row counts per table
func (s *Storage) DatabaseStats(ctx context.Context) (*models.DatabaseStats, error) {
	stats := &models.DatabaseStats{}

	counters := []struct {
		dest  *int64
		query string
	}{
		{&stats.Users, `SELECT COUNT(*) FROM users`},
		{&stats.Projects, `SELECT COUNT(*) FROM projects`},
		{&stats.SavedProjects, `SELECT COUNT(*) FROM saved_projects`},
		{&stats.AboutContent, `SELECT COUNT(*) FROM about_content`},
		{&stats.SoftDeletedProjects, `SELECT COUNT(*) FROM projects WHERE is_deleted = TRUE`},
	}

	for _, c := range counters {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	return stats, nil
}
