package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserValidator_ValidateSignUp(t *testing.T) {
	uv := NewUserValidator(nil)

	valid := SignUpFields{
		Username:        "ada",
		Email:           "ada@example.com",
		Password:        "correct horse",
		PasswordConfirm: "correct horse",
		TimeZone:        "Europe/London",
	}
	require.NoError(t, uv.ValidateSignUp(valid))

	t.Run("every problem is reported", func(t *testing.T) {
		err := uv.ValidateSignUp(SignUpFields{
			Username:        "a",
			Email:           "not-an-email",
			Password:        "short",
			PasswordConfirm: "different",
			TimeZone:        "Nowhere/Special",
		})

		ve, ok := AsValidationError(err)
		require.True(t, ok)
		fields := ve.Fields()
		assert.Contains(t, fields, "username")
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "password")
		assert.Contains(t, fields, "password_confirm")
		assert.Contains(t, fields, "time_zone")
	})

	t.Run("password values never reach the error", func(t *testing.T) {
		fields := valid
		fields.Password = strings.Repeat("p", 73)
		fields.PasswordConfirm = fields.Password

		ve, ok := AsValidationError(uv.ValidateSignUp(fields))
		require.True(t, ok)
		require.Len(t, ve.Errors, 1)
		assert.Nil(t, ve.Errors[0].Value)
		assert.Equal(t, "password must be at most 72 bytes long", ve.Errors[0].Message)
	})

	t.Run("empty zone falls back to the default later", func(t *testing.T) {
		fields := valid
		fields.TimeZone = ""
		assert.NoError(t, uv.ValidateSignUp(fields))
	})
}

func TestUserValidator_ValidateSettings(t *testing.T) {
	uv := NewUserValidator(nil)

	assert.NoError(t, uv.ValidateSettings("America/New_York", "total_time"))

	ve, ok := AsValidationError(uv.ValidateSettings("UTC+1", "largest"))
	require.True(t, ok)
	assert.Len(t, ve.Errors, 2)
}
