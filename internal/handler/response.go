package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"timesheet/internal/errors"
	"timesheet/internal/validation"
)

// errorResponse is the body of every error response.
type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Field   string            `json:"field,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// statusFor maps an error type to its HTTP status.
func statusFor(errorType errors.ErrorType) int {
	switch errorType {
	case errors.ErrorTypeValidation, errors.ErrorTypeInvalidInput,
		errors.ErrorTypeInvalidTimeSpan, errors.ErrorTypeEmptyProjectName:
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeConflict:
		return http.StatusConflict
	case errors.ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError converts service errors into JSON error responses.
// Internal failures are logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := validation.AsValidationError(err); ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_FAILED",
			Message: ve.GetUserFriendlyMessage(),
			Fields:  ve.Fields(),
		})
		return
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.WrapError(err, errors.ErrorTypeDatabase, "unexpected error")
	}

	status := statusFor(appErr.Type)
	if status == http.StatusInternalServerError {
		if errors.ShouldLogError(appErr) {
			slog.Error("request failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("error", appErr.Error()),
			)
		}
		writeJSON(w, status, errorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		})
		return
	}

	writeJSON(w, status, errorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Field:   appErr.Field(),
	})
}

// writeUnauthorized is the session middleware's response for missing logins.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.IsErrorType(err, errors.ErrorTypeUnauthorized) {
		err = errors.NewUnauthorizedError("login required")
	}
	writeError(w, r, err)
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewInvalidInputError("body", nil, "request body must be valid JSON")
	}
	return nil
}
