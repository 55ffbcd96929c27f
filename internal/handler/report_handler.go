package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/middleware"
	"timesheet/internal/services"
)

// ReportHandler serves the grouped day, month and history views.
type ReportHandler struct {
	reports  services.ReportingService
	projects services.ProjectService
	now      func() time.Time
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(reports services.ReportingService, projects services.ProjectService, now func() time.Time) *ReportHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportHandler{reports: reports, projects: projects, now: now}
}

type todayResponse struct {
	Date           domain.Date       `json:"date"`
	Minutes        int               `json:"minutes"`
	Total          string            `json:"total"`
	FirstMonth     *domain.Month     `json:"first_active_month"`
	RecentProjects []projectResponse `json:"recent_projects"`
}

// Today returns the minutes worked today and the recently touched projects.
// GET /api/today
func (h *ReportHandler) Today(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w, r, err)
		return
	}

	minutes, err := h.reports.MinutesWorkedToday(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	first, err := h.reports.FirstActiveMonth(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	recent, err := h.projects.RecentProjects(r.Context(), user.ID, services.DefaultRecentProjectsLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todayResponse{
		Date:           domain.DateOf(h.now().In(user.Location())),
		Minutes:        minutes,
		Total:          domain.FormatDuration(minutes),
		FirstMonth:     first,
		RecentProjects: toProjectResponses(recent),
	})
}

// Day returns one day's sessions.
// GET /api/days/{date}
func (h *ReportHandler) Day(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w, r, err)
		return
	}

	raw := chi.URLParam(r, "date")
	date, err := domain.ParseDate(raw)
	if err != nil {
		writeError(w, r, errors.NewInvalidInputError("date", raw, "expected YYYY-MM-DD"))
		return
	}

	bucket, err := h.reports.SessionsForDay(r.Context(), userID, date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDayResponse(*bucket))
}

// Month returns a zero-filled month.
// GET /api/months/{year}/{month}
func (h *ReportHandler) Month(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w, r, err)
		return
	}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, r, errors.NewInvalidInputError("year", chi.URLParam(r, "year"), "must be a number"))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, r, errors.NewInvalidInputError("month", chi.URLParam(r, "month"), "must be a number"))
		return
	}

	report, err := h.reports.SessionsForMonth(r.Context(), userID, year, time.Month(month))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthResponse(report))
}

// All returns the user's full history, most recent day first.
// GET /api/sessions
func (h *ReportHandler) All(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w, r, err)
		return
	}

	buckets, err := h.reports.SessionsAll(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDayResponses(buckets))
}

// ProjectSessions returns one project's history.
// GET /api/projects/{id}/sessions
func (h *ReportHandler) ProjectSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w, r, err)
		return
	}

	projectID, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	report, err := h.reports.SessionsForProject(r.Context(), userID, projectID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectReportResponse{
		ID:           report.Project.ID,
		Name:         report.Project.Name,
		Days:         toDayResponses(report.Days),
		Minutes:      report.Minutes,
		Total:        report.Total,
		SessionCount: report.SessionCount,
	})
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("id", raw, "must be a positive integer")
	}
	return id, nil
}
