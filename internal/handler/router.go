// Package handler exposes the time-tracking services as a JSON HTTP API.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"timesheet/internal/config"
	"timesheet/internal/metrics"
	"timesheet/internal/middleware"
	"timesheet/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps holds all dependencies needed to build the router.
type RouterDeps struct {
	Services    *services.ServiceContainer
	Config      *config.Config
	Logger      *slog.Logger
	Metrics     metrics.Recorder
	Gatherer    prometheus.Gatherer
	RateLimiter *middleware.RateLimiter
	Pinger      Pinger
	Now         func() time.Time
}

// NewRouter creates a chi router with all routes configured.
func NewRouter(deps RouterDeps) http.Handler {
	if deps.Config == nil {
		deps.Config = config.NewConfig()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}

	auth := NewAuthHandler(deps.Services.UserService, deps.Config.Session, deps.Metrics)
	reports := NewReportHandler(deps.Services.ReportingService, deps.Services.ProjectService, deps.Now)
	projects := NewProjectHandler(deps.Services.ProjectService)
	sessions := NewSessionHandler(deps.Services.SessionService, deps.Metrics)

	r := chi.NewRouter()
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.Metrics))
	r.Use(middleware.NewSecurityHeadersMiddleware())

	r.Get("/health", healthHandler(deps.Pinger))
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	r.Post("/signup", auth.SignUp)
	r.Post("/login", auth.Login)
	r.Post("/logout", auth.Logout)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.Services.UserService, deps.Config.Session.CookieName, writeUnauthorized))
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		r.Get("/today", reports.Today)
		r.Get("/days/{date}", reports.Day)
		r.Get("/months/{year}/{month}", reports.Month)

		r.Get("/projects", projects.List)
		r.Post("/projects", projects.Create)
		r.Get("/projects/recent", projects.Recent)
		r.Patch("/projects/{id}", projects.Rename)
		r.Delete("/projects/{id}", projects.Delete)
		r.Get("/projects/{id}/sessions", reports.ProjectSessions)

		r.Get("/sessions", reports.All)
		r.Post("/sessions", sessions.Create)
		r.Post("/sessions/preview", sessions.Preview)
		r.Get("/sessions/{id}", sessions.Get)
		r.Put("/sessions/{id}", sessions.Update)
		r.Delete("/sessions/{id}", sessions.Delete)

		r.Put("/settings", auth.UpdateSettings)
	})

	return r
}

func healthHandler(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
