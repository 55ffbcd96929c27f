package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("field is required")
	err := NewValidationError("validation failed", cause)

	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "validation failed", err.Message)
	assert.Equal(t, "VALIDATION_FAILED", err.Code)
	assert.Equal(t, cause, err.Cause)
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("project", "42")

	assert.Equal(t, ErrorTypeNotFound, err.Type)
	assert.Equal(t, "project not found: 42", err.Message)
	assert.Equal(t, "NOT_FOUND", err.Code)

	resource, ok := err.GetContext("resource")
	require.True(t, ok)
	assert.Equal(t, "project", resource)
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := NewDatabaseError("create session", cause)

	assert.Equal(t, ErrorTypeDatabase, err.Type)
	assert.Equal(t, "database operation failed: create session", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestNewInvalidTimeSpanError(t *testing.T) {
	err := NewInvalidTimeSpanError("breaks", "breaks must not cancel out the session")

	assert.Equal(t, ErrorTypeInvalidTimeSpan, err.Type)
	assert.Equal(t, "INVALID_TIME_SPAN", err.Code)
	assert.Equal(t, "breaks", err.Field())
	assert.Equal(t, "invalid_time_span: breaks must not cancel out the session", err.Error())
}

func TestNewEmptyProjectNameError(t *testing.T) {
	err := NewEmptyProjectNameError()

	assert.Equal(t, ErrorTypeEmptyProjectName, err.Type)
	assert.Equal(t, "project", err.Field())
}

func TestNewConflictError(t *testing.T) {
	err := NewConflictError("project", "name", "Writing")

	assert.Equal(t, ErrorTypeConflict, err.Type)
	assert.Equal(t, `project with name "Writing" already exists`, err.Message)
	assert.Equal(t, "name", err.Field())
}

func TestIsErrorType(t *testing.T) {
	wrapped := fmt.Errorf("report: %w", NewNotFoundError("project", "7"))

	assert.True(t, IsErrorType(wrapped, ErrorTypeNotFound))
	assert.False(t, IsErrorType(wrapped, ErrorTypeDatabase))
	assert.False(t, IsErrorType(errors.New("plain"), ErrorTypeNotFound))
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(fmt.Errorf("wrap: %w", NewUnauthorizedError("invalid credentials")))
	require.True(t, ok)
	assert.Equal(t, ErrorTypeUnauthorized, appErr.Type)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "time span errors expose their message",
			err:      NewInvalidTimeSpanError("end", "end must be after start"),
			expected: "end must be after start",
		},
		{
			name:     "database errors are masked",
			err:      NewDatabaseError("query", errors.New("syntax error near SELECT")),
			expected: "A database error occurred. Please try again.",
		},
		{
			name:     "plain errors pass through",
			err:      errors.New("boom"),
			expected: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetUserMessage(tt.err))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, "EMPTY_PROJECT_NAME", GetErrorCode(NewEmptyProjectNameError()))
	assert.Equal(t, "UNKNOWN_ERROR", GetErrorCode(errors.New("plain")))
}

func TestShouldLogError(t *testing.T) {
	assert.False(t, ShouldLogError(NewNotFoundError("session", "1")))
	assert.False(t, ShouldLogError(NewInvalidTimeSpanError("start", "gap")))
	assert.True(t, ShouldLogError(NewDatabaseError("insert", errors.New("locked"))))
	assert.True(t, ShouldLogError(errors.New("plain")))
}
