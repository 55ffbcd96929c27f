package validation

import (
	"fmt"
	"time"

	"timesheet/internal/domain"
	apperrors "timesheet/internal/errors"
)

// SessionFields is the raw session form: local dates and wall-clock times as typed.
// EndDate may be empty, meaning the start date or, for an end clock before the
// start clock, the day after.
type SessionFields struct {
	ProjectName string
	Date        string
	StartTime   string
	EndDate     string
	EndTime     string
	Breaks      int
}

// ParsedSession holds SessionFields after format checks.
type ParsedSession struct {
	ProjectName string
	StartDate   domain.Date
	StartClock  domain.Clock
	EndDate     domain.Date
	EndClock    domain.Clock
	Breaks      int
}

// SessionValidator provides validation for session entry and edit forms
type SessionValidator struct {
	validator        *Validator
	projectValidator *ProjectValidator
}

// NewSessionValidator creates a new session validator
func NewSessionValidator(v *Validator) *SessionValidator {
	if v == nil {
		v = NewValidator()
	}
	return &SessionValidator{
		validator:        v,
		projectValidator: NewProjectValidator(v),
	}
}

// ParseSessionFields checks and parses the form fields.
// Errors come back in this order: EmptyProjectName, field format errors,
// then InvalidTimeSpan for negative breaks.
func (sv *SessionValidator) ParseSessionFields(f SessionFields) (*ParsedSession, error) {
	name, err := sv.projectValidator.GetValidProjectName(f.ProjectName)
	if err != nil {
		return nil, err
	}

	validationError := NewValidationError()
	parsed := &ParsedSession{ProjectName: name, Breaks: f.Breaks}

	if f.Date == "" {
		validationError.AddRequiredError("date")
	} else if parsed.StartDate, err = domain.ParseDate(f.Date); err != nil {
		validationError.AddInvalidFormatError("date", f.Date, "YYYY-MM-DD")
	}

	if f.StartTime == "" {
		validationError.AddRequiredError("start")
	} else if parsed.StartClock, err = domain.ParseClock(f.StartTime); err != nil {
		validationError.AddInvalidFormatError("start", f.StartTime, "HH:MM")
	}

	if f.EndTime == "" {
		validationError.AddRequiredError("end")
	} else if parsed.EndClock, err = domain.ParseClock(f.EndTime); err != nil {
		validationError.AddInvalidFormatError("end", f.EndTime, "HH:MM")
	}

	var endDate *domain.Date
	if f.EndDate != "" {
		d, err := domain.ParseDate(f.EndDate)
		if err != nil {
			validationError.AddInvalidFormatError("end_date", f.EndDate, "YYYY-MM-DD")
		} else {
			endDate = &d
		}
	}

	if validationError.HasErrors() {
		return nil, validationError
	}

	if f.Breaks < 0 {
		return nil, apperrors.NewInvalidTimeSpanError("breaks", "breaks must not be negative")
	}

	switch {
	case endDate != nil:
		parsed.EndDate = *endDate
	case parsed.EndClock.Minutes() < parsed.StartClock.Minutes():
		parsed.EndDate = parsed.StartDate.AddDays(1)
	default:
		parsed.EndDate = parsed.StartDate
	}

	return parsed, nil
}

// ValidateSpan checks resolved instants: both inside the supported years,
// end after start, within the maximum length, and breaks leaving a strictly
// positive net duration.
func (sv *SessionValidator) ValidateSpan(start, end time.Time, breaks int) error {
	if breaks < 0 {
		return apperrors.NewInvalidTimeSpanError("breaks", "breaks must not be negative")
	}
	if !inSupportedRange(start) {
		return apperrors.NewInvalidTimeSpanError("start", fmt.Sprintf("start must fall in years %04d-%04d", domain.MinYear, domain.MaxYear))
	}
	if !inSupportedRange(end) {
		return apperrors.NewInvalidTimeSpanError("end", fmt.Sprintf("end must fall in years %04d-%04d", domain.MinYear, domain.MaxYear))
	}
	if !end.After(start) {
		return apperrors.NewInvalidTimeSpanError("end", "end must be after start")
	}
	if !sv.validator.IsValidSessionDuration(end.Sub(start)) {
		limit := domain.FormatDuration(int(sv.validator.getMaxSessionDuration() / time.Minute))
		return apperrors.NewInvalidTimeSpanError("end", fmt.Sprintf("session must not be longer than %s", limit))
	}

	session := domain.Session{Start: start, End: end, Breaks: breaks}
	if session.Minutes() <= 0 {
		return apperrors.NewInvalidTimeSpanError("breaks", "breaks must not cancel out the session")
	}
	return nil
}

// inSupportedRange reports whether t's UTC year is one the store can hold.
func inSupportedRange(t time.Time) bool {
	y := t.UTC().Year()
	return y >= domain.MinYear && y <= domain.MaxYear
}

// ValidateSessionID validates a session ID
func (sv *SessionValidator) ValidateSessionID(id int64) error {
	if !sv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("session_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}
