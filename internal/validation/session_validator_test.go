package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timesheet/internal/domain"
	apperrors "timesheet/internal/errors"
)

func validFields() SessionFields {
	return SessionFields{
		ProjectName: "Engine",
		Date:        "2024-01-08",
		StartTime:   "09:00",
		EndTime:     "10:30",
	}
}

func TestSessionValidator_ParseSessionFields(t *testing.T) {
	sv := NewSessionValidator(nil)

	tests := []struct {
		name           string
		mutate         func(*SessionFields)
		expected       *ParsedSession
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:   "same-day session",
			mutate: func(f *SessionFields) {},
			expected: &ParsedSession{
				ProjectName: "Engine",
				StartDate:   domain.Date{Year: 2024, Month: time.January, Day: 8},
				StartClock:  domain.Clock{Hour: 9},
				EndDate:     domain.Date{Year: 2024, Month: time.January, Day: 8},
				EndClock:    domain.Clock{Hour: 10, Minute: 30},
			},
		},
		{
			name: "end clock before start rolls to the next day",
			mutate: func(f *SessionFields) {
				f.StartTime, f.EndTime = "23:45", "00:30"
			},
			expected: &ParsedSession{
				ProjectName: "Engine",
				StartDate:   domain.Date{Year: 2024, Month: time.January, Day: 8},
				StartClock:  domain.Clock{Hour: 23, Minute: 45},
				EndDate:     domain.Date{Year: 2024, Month: time.January, Day: 9},
				EndClock:    domain.Clock{Minute: 30},
			},
		},
		{
			name: "explicit end date",
			mutate: func(f *SessionFields) {
				f.EndDate = "2024-01-10"
			},
			expected: &ParsedSession{
				ProjectName: "Engine",
				StartDate:   domain.Date{Year: 2024, Month: time.January, Day: 8},
				StartClock:  domain.Clock{Hour: 9},
				EndDate:     domain.Date{Year: 2024, Month: time.January, Day: 10},
				EndClock:    domain.Clock{Hour: 10, Minute: 30},
			},
		},
		{
			name: "blank project",
			mutate: func(f *SessionFields) {
				f.ProjectName = "  "
				f.Date = ""
			},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeEmptyProjectName))
			},
		},
		{
			name: "format errors are collected",
			mutate: func(f *SessionFields) {
				f.Date = "08/01/2024"
				f.StartTime = ""
				f.EndTime = "half past ten"
			},
			errorAssertion: func(t *testing.T, err error) {
				ve, ok := AsValidationError(err)
				require.True(t, ok)
				assert.Len(t, ve.Errors, 3)
				assert.Contains(t, ve.Fields(), "date")
				assert.Contains(t, ve.Fields(), "start")
				assert.Contains(t, ve.Fields(), "end")
			},
		},
		{
			name: "negative breaks",
			mutate: func(f *SessionFields) {
				f.Breaks = -1
			},
			errorAssertion: func(t *testing.T, err error) {
				appErr, ok := apperrors.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, apperrors.ErrorTypeInvalidTimeSpan, appErr.Type)
				assert.Equal(t, "breaks", appErr.Field())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			tt.mutate(&fields)

			parsed, err := sv.ParseSessionFields(fields)
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, parsed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, parsed)
		})
	}
}

func TestSessionValidator_ValidateSpan(t *testing.T) {
	sv := NewSessionValidator(nil)
	at := func(h, m int) time.Time { return time.Date(2024, 1, 8, h, m, 0, 0, time.UTC) }

	tests := []struct {
		name       string
		start, end time.Time
		breaks     int
		field      string
		message    string
	}{
		{name: "valid", start: at(9, 0), end: at(10, 0), breaks: 59},
		{name: "end before start", start: at(10, 0), end: at(9, 0), field: "end", message: "end must be after start"},
		{name: "empty span", start: at(9, 0), end: at(9, 0), field: "end", message: "end must be after start"},
		{name: "breaks cancel the session", start: at(6, 5), end: at(7, 5), breaks: 70, field: "breaks", message: "breaks must not cancel out the session"},
		{name: "zero net duration is rejected", start: at(6, 5), end: at(7, 5), breaks: 60, field: "breaks", message: "breaks must not cancel out the session"},
		{name: "end past the last supported year", start: time.Date(9999, 12, 31, 23, 0, 0, 0, time.UTC), end: time.Date(10000, 1, 1, 1, 0, 0, 0, time.UTC), field: "end", message: "end must fall in years 0001-9999"},
		{name: "start before the first supported year", start: time.Date(0, 12, 31, 15, 30, 0, 0, time.UTC), end: time.Date(1, 1, 1, 0, 30, 0, 0, time.UTC), field: "start", message: "start must fall in years 0001-9999"},
		{name: "longer than a day", start: at(0, 0), end: at(0, 0).Add(25 * time.Hour), field: "end", message: "session must not be longer than 24 hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sv.ValidateSpan(tt.start, tt.end, tt.breaks)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrorTypeInvalidTimeSpan, appErr.Type)
			assert.Equal(t, tt.field, appErr.Field())
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}
