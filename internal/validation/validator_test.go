package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"timesheet/internal/config"
)

func TestValidator_Strings(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsNonEmptyString(" a "))
	assert.False(t, v.IsNonEmptyString(" \t\n"))
	assert.True(t, v.IsValidStringLength("ünïcödé", 7, 7))
	assert.True(t, v.HasControlCharacters("line\nbreak"))
	assert.False(t, v.HasControlCharacters("Client: Acme (2024)"))
}

func TestValidator_ProjectNameLengthFromConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.ProjectNameMaxLength = 5

	v := NewValidatorWithConfig(cfg)
	assert.True(t, v.IsValidProjectNameLength("Notes"))
	assert.False(t, v.IsValidProjectNameLength("Engine"))

	assert.True(t, NewValidator().IsValidProjectNameLength(strings.Repeat("x", 100)))
	assert.False(t, NewValidator().IsValidProjectNameLength(strings.Repeat("x", 101)))
}

func TestValidator_Account(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		check    func() bool
		expected bool
	}{
		{"plain username", func() bool { return v.IsValidUsername("ada.lovelace") }, true},
		{"short username", func() bool { return v.IsValidUsername("ad") }, false},
		{"username with space", func() bool { return v.IsValidUsername("ada lovelace") }, false},
		{"plain email", func() bool { return v.IsValidEmail("ada@example.com") }, true},
		{"display-name email", func() bool { return v.IsValidEmail("Ada <ada@example.com>") }, false},
		{"missing domain", func() bool { return v.IsValidEmail("ada@") }, false},
		{"known zone", func() bool { return v.IsValidTimeZone("Australia/Adelaide") }, true},
		{"unknown zone", func() bool { return v.IsValidTimeZone("Europe/Atlantis") }, false},
		{"empty zone", func() bool { return v.IsValidTimeZone("") }, false},
		{"known order", func() bool { return v.IsValidProjectOrder("recent_activity") }, true},
		{"unknown order", func() bool { return v.IsValidProjectOrder("random") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.check())
		})
	}
}

func TestValidator_SessionDuration(t *testing.T) {
	v := NewValidator()
	assert.True(t, v.IsValidSessionDuration(24*time.Hour))
	assert.False(t, v.IsValidSessionDuration(24*time.Hour+time.Minute))
}
