package cli

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"timesheet/internal/errors"
	"timesheet/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "create session",
			err:       errors.NewValidationError("invalid input", nil),
			expected:  "failed to create session: invalid input",
		},
		{
			name:      "Not found error",
			operation: "build report",
			err:       errors.NewNotFoundError("user", "ada"),
			expected:  "failed to build report: user not found: ada",
		},
		{
			name:      "Database error",
			operation: "open database",
			err:       errors.NewDatabaseError("ping", stderrors.New("timeout")),
			expected:  "failed to open database: A database error occurred. Please try again.",
		},
		{
			name:      "Field validation error",
			operation: "sign up",
			err: &validation.ValidationError{
				Errors: []validation.FieldError{{Field: "username", Message: "username is required"}},
			},
			expected: "failed to sign up: username is required",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       stderrors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			assert.EqualError(t, result, tt.expected)
			assert.ErrorIs(t, result, tt.err)
		})
	}
}

func TestErrorHandler_HandleNilError(t *testing.T) {
	eh := NewErrorHandler()

	assert.NoError(t, eh.Handle("test operation", nil))
	assert.NoError(t, eh.HandleSimple(nil))
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Invalid time span",
			err:      errors.NewInvalidTimeSpanError("breaks", "breaks must not cancel out the session"),
			expected: "breaks must not cancel out the session",
		},
		{
			name:     "Database error",
			err:      errors.NewDatabaseError("insert", stderrors.New("timeout")),
			expected: "A database error occurred. Please try again.",
		},
		{
			name:     "Regular error",
			err:      stderrors.New("regular error"),
			expected: "regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, eh.HandleSimple(tt.err), tt.expected)
		})
	}
}

func TestErrorHandler_ExitCode(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: ExitOK},
		{name: "invalid input", err: errors.NewInvalidInputError("month", "13", "bad month"), expected: ExitBadInput},
		{name: "unknown user", err: errors.NewNotFoundError("user", "zed"), expected: ExitBadInput},
		{name: "wrapped by Handle", err: eh.Handle("build report", errors.NewEmptyProjectNameError()), expected: ExitBadInput},
		{name: "field validation", err: &validation.ValidationError{Errors: []validation.FieldError{{Field: "x"}}}, expected: ExitBadInput},
		{name: "database", err: errors.NewDatabaseError("query", nil), expected: ExitFailure},
		{name: "regular", err: stderrors.New("boom"), expected: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, eh.ExitCode(tt.err))
		})
	}
}
