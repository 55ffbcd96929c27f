package handler

import (
	"net/http"
	"strconv"

	"timesheet/internal/errors"
	"timesheet/internal/middleware"
	"timesheet/internal/services"
)

// ProjectHandler handles project CRUD and listings.
type ProjectHandler struct {
	projects services.ProjectService
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(projects services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type projectRequest struct {
	Name string `json:"name"`
}

// List returns the user's projects in their preferred order.
// GET /api/projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w, r, err)
		return
	}

	stats, err := h.projects.ListOrderedProjects(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponses(stats))
}

// Recent returns the most recently used projects.
// GET /api/projects/recent?limit=N
func (h *ProjectHandler) Recent(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w, r, err)
		return
	}

	limit := services.DefaultRecentProjectsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			writeError(w, r, errors.NewInvalidInputError("limit", raw, "must be a positive integer"))
			return
		}
	}

	stats, err := h.projects.RecentProjects(r.Context(), userID, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponses(stats))
}

// Create adds a project.
// POST /api/projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w, r, err)
		return
	}

	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.projects.CreateProject(r.Context(), userID, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectRefResponse(project))
}

// Rename changes a project's name.
// PATCH /api/projects/{id}
func (h *ProjectHandler) Rename(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w, r, err)
		return
	}

	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.projects.RenameProject(r.Context(), userID, id, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectRefResponse(project))
}

// Delete removes a project and its sessions.
// DELETE /api/projects/{id}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w, r, err)
		return
	}

	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.projects.DeleteProject(r.Context(), userID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
