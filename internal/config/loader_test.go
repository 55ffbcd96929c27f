package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timesheet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoader_FileThenEnvironment(t *testing.T) {
	path := writeConfigFile(t, `
database:
  dsn: /var/lib/timesheet/data.db
server:
  addr: ":7000"
  shutdown_timeout: 30s
application:
  default_time_zone: Europe/Berlin
`)
	t.Setenv("TIMESHEET_ADDR", ":7100")

	cfg, err := NewLoader().WithFile(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/timesheet/data.db", cfg.Database.DSN)
	assert.Equal(t, ":7100", cfg.Server.Addr, "environment wins over the file")
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "Europe/Berlin", cfg.Application.DefaultTimeZone)
	assert.Equal(t, "sqlite", cfg.Database.Driver, "keys missing from the file keep defaults")
}

func TestLoader_FileFromEnvironmentVariable(t *testing.T) {
	path := writeConfigFile(t, "security:\n  bcrypt_cost: 5\n")
	t.Setenv(ConfigFileEnv, path)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Security.BcryptCost)
}

func TestLoader_MissingFileIsIgnored(t *testing.T) {
	cfg, err := NewLoader().WithFile(filepath.Join(t.TempDir(), "absent.yaml")).Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoader_InvalidFile(t *testing.T) {
	path := writeConfigFile(t, "server: [not, a, map")

	_, err := NewLoader().WithFile(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	driver := "sqlite"
	dsn := ":memory:"
	debug := true
	zone := "Asia/Tokyo"

	cfg, err := NewLoader().WithFile("").LoadWithOverrides(&ConfigOverrides{
		DBDriver:        &driver,
		DBDSN:           &dsn,
		Debug:           &debug,
		DefaultTimeZone: &zone,
	})
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.Database.DSN)
	assert.True(t, cfg.Application.Debug)
	assert.Equal(t, "Asia/Tokyo", cfg.Application.DefaultTimeZone)
}

func TestLoader_OverridesAreValidated(t *testing.T) {
	cost := 1
	_, err := NewLoader().WithFile("").LoadWithOverrides(&ConfigOverrides{BcryptCost: &cost})
	assert.Error(t, err)
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseDurationWithFallback("5s", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("five", time.Second))
	assert.Equal(t, 7, ParseIntWithFallback("7", 1))
	assert.Equal(t, 1, ParseIntWithFallback("x", 1))
	assert.True(t, ParseBoolWithFallback("true", false))
	assert.False(t, ParseBoolWithFallback("maybe", false))
}
