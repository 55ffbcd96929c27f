package validation

import (
	apperrors "timesheet/internal/errors"
)

// ProjectValidator provides validation for project names
type ProjectValidator struct {
	validator *Validator
}

// NewProjectValidator creates a new project validator
func NewProjectValidator(v *Validator) *ProjectValidator {
	if v == nil {
		v = NewValidator()
	}
	return &ProjectValidator{validator: v}
}

// ValidateProjectName validates a project name for creation, rename or implicit creation.
// A blank name is reported as an EmptyProjectName app error; other problems as field errors.
func (pv *ProjectValidator) ValidateProjectName(name string) error {
	trimmed := pv.validator.TrimAndValidateString(name)
	if !pv.validator.IsNonEmptyString(trimmed) {
		return apperrors.NewEmptyProjectNameError()
	}

	validationError := NewValidationError()

	if !pv.validator.IsValidProjectNameLength(trimmed) {
		validationError.AddInvalidLengthError("project", trimmed, 1, pv.validator.getProjectNameMaxLength())
	}

	if pv.validator.HasControlCharacters(trimmed) {
		validationError.AddInvalidCharacterError("project", trimmed)
	}

	return validationError.ErrOrNil()
}

// GetValidProjectName returns a cleaned project name if valid
func (pv *ProjectValidator) GetValidProjectName(name string) (string, error) {
	if err := pv.ValidateProjectName(name); err != nil {
		return "", err
	}
	return pv.validator.TrimAndValidateString(name), nil
}

// ValidateProjectID validates a project ID
func (pv *ProjectValidator) ValidateProjectID(id int64) error {
	if !pv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("project_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}
