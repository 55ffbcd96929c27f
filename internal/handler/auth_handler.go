package handler

import (
	"net/http"
	"time"

	"timesheet/internal/config"
	"timesheet/internal/metrics"
	"timesheet/internal/middleware"
	"timesheet/internal/services"
	"timesheet/internal/validation"
)

// AuthHandler handles sign-up, login, logout and settings.
type AuthHandler struct {
	users   services.UserService
	session config.SessionConfig
	metrics metrics.Recorder
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(users services.UserService, session config.SessionConfig, rec metrics.Recorder) *AuthHandler {
	return &AuthHandler{users: users, session: session, metrics: rec}
}

type signUpRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	TimeZone        string `json:"time_zone"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type settingsRequest struct {
	TimeZone     string `json:"time_zone"`
	ProjectOrder string `json:"project_order"`
}

// SignUp creates an account.
// POST /signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.SignUp(r.Context(), validation.SignUpFields{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		TimeZone:        req.TimeZone,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// Login opens a login session and sets its cookie.
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	login, err := h.users.Login(r.Context(), req.Username, req.Password)
	h.metrics.RecordLogin(err == nil)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    login.Token,
		Path:     "/",
		Expires:  login.ExpiresAt,
		HttpOnly: true,
		Secure:   h.session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	user, err := h.users.GetUser(r.Context(), login.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Logout ends the login session and clears its cookie.
// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.session.CookieName); err == nil && cookie.Value != "" {
		if err := h.users.Logout(r.Context(), cookie.Value); err != nil {
			writeError(w, r, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// UpdateSettings changes the user's time zone and project order.
// PUT /api/settings
func (h *AuthHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w, r, err)
		return
	}

	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.UpdateSettings(r.Context(), userID, req.TimeZone, req.ProjectOrder)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}
