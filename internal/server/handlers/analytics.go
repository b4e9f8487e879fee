package handlers

import (
	"log/slog"
	"net/http"

	"github.com/capsort/capsort/internal/server/storage"
	"github.com/capsort/capsort/pkg/api"
)

const (
	defaultTopSaved = 5
	maxTopSaved     = 50
)

// AnalyticsHandler отдает агрегаты для админской панели
type AnalyticsHandler struct {
	analytics storage.AnalyticsStorage
	responder
}

// NewAnalyticsHandler создает handler аналитики
func NewAnalyticsHandler(logger *slog.Logger, analytics storage.AnalyticsStorage) *AnalyticsHandler {
	return &AnalyticsHandler{
		responder: responder{logger: logger},
		analytics: analytics,
	}
}

// Dashboard обрабатывает GET /api/v1/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analytics.Dashboard(r.Context())
	if err != nil {
		h.failed(w, r, "dashboard", err)
		return
	}

	resp := api.Dashboard{
		TotalProjects:  summary.TotalProjects,
		TotalUsers:     summary.TotalUsers,
		TotalSaves:     summary.TotalSaves,
		ActiveStudents: summary.ActiveStudents,
	}
	if summary.MostViewedProject != nil {
		project := toAPIProject(summary.MostViewedProject)
		resp.MostViewedProject = &project
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// ProjectsByYear обрабатывает GET /api/v1/analytics/projects-by-year
func (h *AnalyticsHandler) ProjectsByYear(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.analytics.ProjectsByYear(r.Context())
	if err != nil {
		h.failed(w, r, "projects by year", err)
		return
	}

	resp := make([]api.YearCount, 0, len(buckets))
	for _, b := range buckets {
		resp = append(resp, api.YearCount{Year: b.Year, Total: b.Total, ByField: b.ByField})
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// FieldDistribution обрабатывает GET /api/v1/analytics/field-distribution
func (h *AnalyticsHandler) FieldDistribution(w http.ResponseWriter, r *http.Request) {
	shares, err := h.analytics.FieldDistribution(r.Context())
	if err != nil {
		h.failed(w, r, "field distribution", err)
		return
	}

	resp := make([]api.FieldShare, 0, len(shares))
	for _, s := range shares {
		resp = append(resp, api.FieldShare{Name: s.Name, Value: s.Value, Percentage: s.Percentage})
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// TopSaved обрабатывает GET /api/v1/analytics/top-saved?limit=5
func (h *AnalyticsHandler) TopSaved(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r.URL.Query().Get("limit"), defaultTopSaved)
	if limit < 1 {
		limit = defaultTopSaved
	}
	if limit > maxTopSaved {
		limit = maxTopSaved
	}

	top, err := h.analytics.TopSaved(r.Context(), limit)
	if err != nil {
		h.failed(w, r, "top saved", err)
		return
	}

	resp := make([]api.TopSavedProject, 0, len(top))
	for _, item := range top {
		resp = append(resp, api.TopSavedProject{
			ID:     item.Project.ID,
			Title:  item.Project.Title,
			Author: item.Project.Author,
			Year:   item.Project.Year,
			Field:  item.Project.Field,
			Saves:  item.Saves,
		})
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// UserActivity обрабатывает GET /api/v1/analytics/user-activity
func (h *AnalyticsHandler) UserActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.analytics.UserActivity(r.Context())
	if err != nil {
		h.failed(w, r, "user activity", err)
		return
	}

	h.sendJSON(w, api.UserActivity{
		TotalStudents:      activity.TotalStudents,
		TotalAdmins:        activity.TotalAdmins,
		NewUsersLast30Days: activity.NewUsersLast30Days,
		ActiveStudents:     activity.ActiveStudents,
	}, http.StatusOK)
}

func (h *AnalyticsHandler) failed(w http.ResponseWriter, r *http.Request, what string, err error) {
	h.logger.ErrorContext(r.Context(), "analytics query failed",
		slog.String("query", what),
		slog.Any("error", err))
	h.sendError(w, "internal server error", http.StatusInternalServerError)
}
