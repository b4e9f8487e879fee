// Package server wires HTTP handlers and middleware into a chi router.
package server

import (
	"log/slog"
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/capsort/capsort/internal/models"
	"github.com/capsort/capsort/internal/server/handlers"
	"github.com/capsort/capsort/internal/server/middleware"
	"github.com/capsort/capsort/internal/server/storage"
)

// Store объединяет хранилища, которые нужны HTTP слою
type Store interface {
	storage.UserStorage
	storage.ProjectStorage
	storage.SavedProjectStorage
	storage.AboutStorage
	storage.AnalyticsStorage
}

// Deps зависимости роутера
type Deps struct {
	Logger      *slog.Logger
	Auth        handlers.AuthService
	Tokens      middleware.SessionVerifier
	Store       Store
	Metrics     *middleware.Metrics // nil отключает сбор HTTP метрик
	Gatherer    prometheus.Gatherer // источник для /metrics; nil отключает endpoint
	RateLimiter *middleware.RateLimiter
	Version     string
	CORSOrigins []string
	// TrustedProxies адреса прокси, чьим X-Forwarded-For и X-Real-IP можно верить
	TrustedProxies []netip.Prefix
}

// NewRouter builds the HTTP handler for the Capsort API.
func NewRouter(d Deps) http.Handler {
	logger := d.Logger

	authHandler := handlers.NewAuthHandler(logger, d.Auth)
	projectHandler := handlers.NewProjectHandler(logger, d.Store)
	savedHandler := handlers.NewSavedHandler(logger, d.Store)
	aboutHandler := handlers.NewAboutHandler(logger, d.Store)
	analyticsHandler := handlers.NewAnalyticsHandler(logger, d.Store)
	adminHandler := handlers.NewAdminHandler(logger, d.Store)
	healthHandler := handlers.NewHealthHandler(logger, d.Version)
	fallback := handlers.NewFallbackHandler(logger)

	authenticate := middleware.Authenticate(logger, d.Tokens, d.Store)
	adminOnly := middleware.RequireRole(logger, models.RoleAdmin)
	studentOnly := middleware.RequireRole(logger, models.RoleStudent)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.TrustedRealIP(d.TrustedProxies))
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.LoggingWithSkip(logger, []string{"/api/v1/health", "/metrics"}))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Retry-After", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(fallback.NotFound)
	r.MethodNotAllowed(fallback.MethodNotAllowed)

	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if d.RateLimiter != nil {
					r.Use(d.RateLimiter.Middleware)
				}
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
				r.Post("/admin/login", authHandler.AdminLogin)
				r.Post("/forgot-password", authHandler.ForgotPassword)
				r.Post("/reset-password", authHandler.ResetPassword)
			})

			r.With(authenticate).Get("/me", authHandler.Me)
			r.With(authenticate).Put("/profile", authHandler.UpdateProfile)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.List)
			r.Get("/{id}", projectHandler.Get)
			r.With(authenticate, adminOnly).Post("/", projectHandler.Create)
			r.With(authenticate, adminOnly).Put("/{id}", projectHandler.Update)
			r.With(authenticate, adminOnly).Delete("/{id}", projectHandler.Delete)
		})

		r.Route("/saved-projects", func(r chi.Router) {
			r.Use(authenticate, studentOnly)
			r.Get("/", savedHandler.List)
			r.Post("/{projectId}", savedHandler.Save)
			r.Delete("/{projectId}", savedHandler.Unsave)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Use(authenticate, adminOnly)
			r.Get("/dashboard", analyticsHandler.Dashboard)
			r.Get("/projects-by-year", analyticsHandler.ProjectsByYear)
			r.Get("/field-distribution", analyticsHandler.FieldDistribution)
			r.Get("/top-saved", analyticsHandler.TopSaved)
			r.Get("/user-activity", analyticsHandler.UserActivity)
		})

		r.Get("/about", aboutHandler.Get)
		r.With(authenticate, adminOnly).Put("/about", aboutHandler.Update)

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticate, adminOnly)
			r.Get("/profile", authHandler.Me)
			r.Get("/database-stats", adminHandler.DatabaseStats)
			r.Get("/system/health", adminHandler.SystemHealth)
		})
	})

	return r
}
