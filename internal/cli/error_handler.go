package cli

import (
	"fmt"

	"timesheet/internal/errors"
	"timesheet/internal/validation"
)

// Exit codes returned by the timesheet binary.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitBadInput = 2
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors.
// A nil error stays nil.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}

	if validationErr, ok := validation.AsValidationError(err); ok {
		return &commandError{operation: operation, message: validationErr.GetUserFriendlyMessage(), err: err}
	}

	if _, ok := errors.AsAppError(err); ok {
		return &commandError{operation: operation, message: errors.GetUserMessage(err), err: err}
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}

	if validationErr, ok := validation.AsValidationError(err); ok {
		return fmt.Errorf("%s", validationErr.GetUserFriendlyMessage())
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("%s", errors.GetUserMessage(err))
	}

	return err
}

// ExitCode maps an error to the process exit status.
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case eh.IsBadInput(err):
		return ExitBadInput
	default:
		return ExitFailure
	}
}

// IsBadInput reports whether err was caused by what the user typed.
func (eh *ErrorHandler) IsBadInput(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return false
	}
	switch appErr.Type {
	case errors.ErrorTypeValidation, errors.ErrorTypeInvalidInput,
		errors.ErrorTypeInvalidTimeSpan, errors.ErrorTypeEmptyProjectName,
		errors.ErrorTypeNotFound:
		return true
	default:
		return false
	}
}

// commandError shows the user-facing message while keeping the cause
// reachable for ExitCode.
type commandError struct {
	operation string
	message   string
	err       error
}

func (e *commandError) Error() string {
	return fmt.Sprintf("failed to %s: %s", e.operation, e.message)
}

func (e *commandError) Unwrap() error {
	return e.err
}
