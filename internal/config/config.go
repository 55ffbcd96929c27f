package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"timesheet/internal/domain"
)

// Config holds all configuration options for the timesheet server
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Server      ServerConfig      `yaml:"server"`
	Session     SessionConfig     `yaml:"session"`
	Security    SecurityConfig    `yaml:"security"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Validation  ValidationConfig  `yaml:"validation"`
	Application ApplicationConfig `yaml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver       string        `yaml:"driver" env:"TIMESHEET_DB_DRIVER"`
	DSN          string        `yaml:"dsn" env:"TIMESHEET_DB_DSN"`
	QueryTimeout time.Duration `yaml:"query_timeout" env:"TIMESHEET_DB_QUERY_TIMEOUT"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"TIMESHEET_ADDR"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"TIMESHEET_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"TIMESHEET_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"TIMESHEET_SHUTDOWN_TIMEOUT"`
}

// SessionConfig holds login cookie configuration
type SessionConfig struct {
	CookieName   string        `yaml:"cookie_name" env:"TIMESHEET_COOKIE_NAME"`
	MaxAge       time.Duration `yaml:"max_age" env:"TIMESHEET_SESSION_MAX_AGE"`
	CookieSecure bool          `yaml:"cookie_secure" env:"TIMESHEET_COOKIE_SECURE"`
}

// SecurityConfig holds password hashing configuration
type SecurityConfig struct {
	BcryptCost int `yaml:"bcrypt_cost" env:"TIMESHEET_BCRYPT_COST"`
}

// RateLimitConfig holds per-user request rate limits
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" env:"TIMESHEET_RATE_LIMIT_RPM"`
	Burst             int `yaml:"burst" env:"TIMESHEET_RATE_LIMIT_BURST"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	ProjectNameMaxLength int           `yaml:"project_name_max_length" env:"TIMESHEET_VALIDATION_PROJECT_NAME_MAX"`
	MaxSessionDuration   time.Duration `yaml:"max_session_duration" env:"TIMESHEET_VALIDATION_MAX_SESSION_DURATION"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	DefaultTimeZone string `yaml:"default_time_zone" env:"TIMESHEET_DEFAULT_TIME_ZONE"`
	Debug           bool   `yaml:"debug" env:"TIMESHEET_DEBUG"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Driver:       "sqlite",
			DSN:          filepath.Join(homeDir, ".timesheet", "timesheet.db"),
			QueryTimeout: 10 * time.Second,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Session: SessionConfig{
			CookieName:   "timesheet_session",
			MaxAge:       30 * 24 * time.Hour,
			CookieSecure: false,
		},
		Security: SecurityConfig{
			BcryptCost: 12,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 120,
			Burst:             20,
		},
		Validation: ValidationConfig{
			ProjectNameMaxLength: 100,
			MaxSessionDuration:   24 * time.Hour,
		},
		Application: ApplicationConfig{
			DefaultTimeZone: "UTC",
			Debug:           false,
		},
	}
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// IsSQLite reports whether the configured driver is SQLite
func (c *Config) IsSQLite() bool {
	driver := strings.ToLower(c.Database.Driver)
	return driver == "sqlite" || driver == "sqlite3"
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values keep the current setting.
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if driver := os.Getenv("TIMESHEET_DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("TIMESHEET_DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if timeout := os.Getenv("TIMESHEET_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}

	// Server configuration
	if addr := os.Getenv("TIMESHEET_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if timeout := os.Getenv("TIMESHEET_READ_TIMEOUT"); timeout != "" {
		c.Server.ReadTimeout = ParseDurationWithFallback(timeout, c.Server.ReadTimeout)
	}
	if timeout := os.Getenv("TIMESHEET_WRITE_TIMEOUT"); timeout != "" {
		c.Server.WriteTimeout = ParseDurationWithFallback(timeout, c.Server.WriteTimeout)
	}
	if timeout := os.Getenv("TIMESHEET_SHUTDOWN_TIMEOUT"); timeout != "" {
		c.Server.ShutdownTimeout = ParseDurationWithFallback(timeout, c.Server.ShutdownTimeout)
	}

	// Session configuration
	if name := os.Getenv("TIMESHEET_COOKIE_NAME"); name != "" {
		c.Session.CookieName = name
	}
	if maxAge := os.Getenv("TIMESHEET_SESSION_MAX_AGE"); maxAge != "" {
		c.Session.MaxAge = ParseDurationWithFallback(maxAge, c.Session.MaxAge)
	}
	if secure := os.Getenv("TIMESHEET_COOKIE_SECURE"); secure != "" {
		c.Session.CookieSecure = ParseBoolWithFallback(secure, c.Session.CookieSecure)
	}

	// Security configuration
	if cost := os.Getenv("TIMESHEET_BCRYPT_COST"); cost != "" {
		c.Security.BcryptCost = ParseIntWithFallback(cost, c.Security.BcryptCost)
	}

	// Rate limit configuration
	if rpm := os.Getenv("TIMESHEET_RATE_LIMIT_RPM"); rpm != "" {
		c.RateLimit.RequestsPerMinute = ParseIntWithFallback(rpm, c.RateLimit.RequestsPerMinute)
	}
	if burst := os.Getenv("TIMESHEET_RATE_LIMIT_BURST"); burst != "" {
		c.RateLimit.Burst = ParseIntWithFallback(burst, c.RateLimit.Burst)
	}

	// Validation configuration
	if maxLen := os.Getenv("TIMESHEET_VALIDATION_PROJECT_NAME_MAX"); maxLen != "" {
		c.Validation.ProjectNameMaxLength = ParseIntWithFallback(maxLen, c.Validation.ProjectNameMaxLength)
	}
	if maxDur := os.Getenv("TIMESHEET_VALIDATION_MAX_SESSION_DURATION"); maxDur != "" {
		c.Validation.MaxSessionDuration = ParseDurationWithFallback(maxDur, c.Validation.MaxSessionDuration)
	}

	// Application configuration
	if zone := os.Getenv("TIMESHEET_DEFAULT_TIME_ZONE"); zone != "" {
		c.Application.DefaultTimeZone = zone
	}
	if debug := os.Getenv("TIMESHEET_DEBUG"); debug != "" {
		c.Application.Debug = ParseBoolWithFallback(debug, c.Application.Debug)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Driver != "sqlite" && c.Database.Driver != "sqlite3" && c.Database.Driver != "postgres" {
		return &ConfigError{Field: "database.driver", Message: "driver must be sqlite or postgres"}
	}
	if c.Database.DSN == "" {
		return &ConfigError{Field: "database.dsn", Message: "database DSN cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return &ConfigError{Field: "server.timeouts", Message: "read and write timeouts must be positive"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	// Validate session configuration
	if c.Session.CookieName == "" {
		return &ConfigError{Field: "session.cookie_name", Message: "cookie name cannot be empty"}
	}
	if c.Session.MaxAge < time.Minute {
		return &ConfigError{Field: "session.max_age", Message: "session max age must be at least one minute"}
	}

	// Validate security configuration
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return &ConfigError{Field: "security.bcrypt_cost", Message: "bcrypt cost must be between 4 and 31"}
	}

	// Validate rate limit configuration
	if c.RateLimit.RequestsPerMinute <= 0 {
		return &ConfigError{Field: "rate_limit.requests_per_minute", Message: "requests per minute must be positive"}
	}
	if c.RateLimit.Burst < 1 {
		return &ConfigError{Field: "rate_limit.burst", Message: "burst must be at least 1"}
	}

	// Validate validation configuration
	if c.Validation.ProjectNameMaxLength < 1 {
		return &ConfigError{Field: "validation.project_name_max_length", Message: "project name maximum length must be at least 1"}
	}
	if c.Validation.MaxSessionDuration <= 0 {
		return &ConfigError{Field: "validation.max_session_duration", Message: "max session duration must be positive"}
	}

	// Validate application configuration
	if _, err := domain.LoadZone(c.Application.DefaultTimeZone); err != nil {
		return &ConfigError{Field: "application.default_time_zone", Message: err.Error()}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
