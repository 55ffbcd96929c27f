package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error.
// The message is the same whether the record is missing or owned by another
// user, so callers cannot probe for foreign ids.
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewInvalidTimeSpanError creates an error for a start/end/breaks combination
// that does not describe a positive span of work.
func NewInvalidTimeSpanError(field string, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidTimeSpan,
		Message: message,
		Code:    "INVALID_TIME_SPAN",
		Context: map[string]interface{}{
			"field": field,
		},
	}
}

// NewEmptyProjectNameError creates an error for a blank project name
func NewEmptyProjectNameError() *AppError {
	return &AppError{
		Type:    ErrorTypeEmptyProjectName,
		Message: "project name must not be empty",
		Code:    "EMPTY_PROJECT_NAME",
		Context: map[string]interface{}{
			"field": "project",
		},
	}
}

// NewConflictError creates an error for a uniqueness violation
func NewConflictError(resource string, field string, value string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: fmt.Sprintf("%s with %s %q already exists", resource, field, value),
		Code:    "CONFLICT",
		Context: map[string]interface{}{
			"resource": resource,
			"field":    field,
		},
	}
}

// NewUnauthorizedError creates an error for missing or wrong credentials
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		Message: message,
		Code:    "UNAUTHORIZED",
		Context: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation,
			ErrorTypeNotFound,
			ErrorTypeInvalidInput,
			ErrorTypeInvalidTimeSpan,
			ErrorTypeEmptyProjectName,
			ErrorTypeConflict,
			ErrorTypeUnauthorized:
			return appErr.Message
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation,
			ErrorTypeNotFound,
			ErrorTypeInvalidInput,
			ErrorTypeInvalidTimeSpan,
			ErrorTypeEmptyProjectName,
			ErrorTypeConflict,
			ErrorTypeUnauthorized:
			return false // user errors
		default:
			return true
		}
	}
	return true
}
