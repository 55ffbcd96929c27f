package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_DefaultsAreValid(t *testing.T) {
	cfg := NewConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.IsSQLite())
	assert.Equal(t, "UTC", cfg.Application.DefaultTimeZone)
	assert.Equal(t, 10*time.Second, cfg.GetQueryTimeout())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TIMESHEET_DB_DRIVER", "postgres")
	t.Setenv("TIMESHEET_DB_DSN", "postgres://localhost/timesheet")
	t.Setenv("TIMESHEET_ADDR", ":9000")
	t.Setenv("TIMESHEET_SESSION_MAX_AGE", "48h")
	t.Setenv("TIMESHEET_BCRYPT_COST", "4")
	t.Setenv("TIMESHEET_DEBUG", "true")
	t.Setenv("TIMESHEET_RATE_LIMIT_RPM", "not-a-number")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.False(t, cfg.IsSQLite())
	assert.Equal(t, "postgres://localhost/timesheet", cfg.Database.DSN)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 48*time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, 4, cfg.Security.BcryptCost)
	assert.True(t, cfg.Application.Debug)
	assert.Equal(t, 120, cfg.RateLimit.RequestsPerMinute, "unparseable values keep the default")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"empty dsn", func(c *Config) { c.Database.DSN = "" }, "database.dsn"},
		{"zero query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }, "database.query_timeout"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"short session", func(c *Config) { c.Session.MaxAge = time.Second }, "session.max_age"},
		{"bcrypt cost too low", func(c *Config) { c.Security.BcryptCost = 2 }, "security.bcrypt_cost"},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }, "rate_limit.burst"},
		{"zero project name length", func(c *Config) { c.Validation.ProjectNameMaxLength = 0 }, "validation.project_name_max_length"},
		{"unknown time zone", func(c *Config) { c.Application.DefaultTimeZone = "Atlantis/Central" }, "application.default_time_zone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
