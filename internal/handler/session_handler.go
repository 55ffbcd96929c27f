package handler

import (
	"net/http"

	"timesheet/internal/errors"
	"timesheet/internal/metrics"
	"timesheet/internal/middleware"
	"timesheet/internal/services"
	"timesheet/internal/validation"
)

// SessionHandler handles session entry, editing and deletion.
type SessionHandler struct {
	sessions services.SessionService
	metrics  metrics.Recorder
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessions services.SessionService, rec metrics.Recorder) *SessionHandler {
	return &SessionHandler{sessions: sessions, metrics: rec}
}

// Create records a new session.
// POST /api/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w, r, err)
		return
	}

	var in services.SessionInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.sessions.CreateSession(r.Context(), userID, in)
	if err != nil {
		h.recordRejection(err)
		writeError(w, r, err)
		return
	}
	h.metrics.RecordSessionSaved()
	writeJSON(w, http.StatusCreated, toSessionResponse(*session))
}

// Preview resolves input without saving it.
// POST /api/sessions/preview
func (h *SessionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w, r, err)
		return
	}

	var in services.SessionInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	preview, err := h.sessions.Preview(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// Get returns one session.
// GET /api/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	session, err := h.sessions.GetSession(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(*session))
}

// Update replaces a session with new input.
// PUT /api/sessions/{id}
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var in services.SessionInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.sessions.UpdateSession(r.Context(), userID, id, in)
	if err != nil {
		h.recordRejection(err)
		writeError(w, r, err)
		return
	}
	h.metrics.RecordSessionSaved()
	writeJSON(w, http.StatusOK, toSessionResponse(*session))
}

// Delete removes a session.
// DELETE /api/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.sessions.DeleteSession(r.Context(), userID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recordRejection counts saves refused because of the submitted data.
func (h *SessionHandler) recordRejection(err error) {
	if validation.IsValidationError(err) {
		h.metrics.RecordSessionRejected("validation")
		return
	}
	if appErr, ok := errors.AsAppError(err); ok && statusFor(appErr.Type) == http.StatusBadRequest {
		h.metrics.RecordSessionRejected(appErr.Code)
	}
}
