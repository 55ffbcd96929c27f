package validation

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"timesheet/internal/config"
	"timesheet/internal/domain"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.\-]+$`)

const (
	usernameMinLength = 3
	usernameMaxLength = 32
	passwordMinLength = 8
	// bcrypt ignores everything past 72 bytes.
	passwordMaxBytes = 72
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string's rune count is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidProjectNameLength checks if a project name length is within configured limits
func (v *Validator) IsValidProjectNameLength(name string) bool {
	return v.IsValidStringLength(name, 1, v.getProjectNameMaxLength())
}

// HasControlCharacters reports whether s contains newlines, tabs or other control characters
func (v *Validator) HasControlCharacters(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// IsValidUsername checks length and allowed characters of a username
func (v *Validator) IsValidUsername(username string) bool {
	return v.IsValidStringLength(username, usernameMinLength, usernameMaxLength) && usernamePattern.MatchString(username)
}

// IsValidEmail checks that s is a bare RFC 5322 address
func (v *Validator) IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// IsValidTimeZone checks that name is a loadable IANA zone
func (v *Validator) IsValidTimeZone(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	_, err := domain.LoadZone(name)
	return err == nil
}

// IsValidProjectOrder checks that s names a supported project order
func (v *Validator) IsValidProjectOrder(s string) bool {
	return domain.ProjectOrder(s).IsValid()
}

// IsValidID checks if an ID is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidSessionDuration checks that a span does not exceed the configured maximum
func (v *Validator) IsValidSessionDuration(d time.Duration) bool {
	return d <= v.getMaxSessionDuration()
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// getProjectNameMaxLength returns configured maximum project name length or default
func (v *Validator) getProjectNameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.ProjectNameMaxLength
	}
	return 100 // Default maximum
}

// getMaxSessionDuration returns configured maximum session duration or default
func (v *Validator) getMaxSessionDuration() time.Duration {
	if v.config != nil {
		return v.config.Validation.MaxSessionDuration
	}
	return 24 * time.Hour // Default maximum
}
