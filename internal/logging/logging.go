package logging

import (
	"io"
	"log/slog"
	"os"
)

// DebugEnv switches on debug-level logging when set to any non-empty value
const DebugEnv = "TIMESHEET_DEBUG"

// DebugEnabled returns true if debug mode is enabled via TIMESHEET_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// Level returns the log level for the debug flag
func Level(debug bool) slog.Level {
	if debug || DebugEnabled() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Setup returns a JSON slog.Logger writing to w at level
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// SetupDefault installs a JSON logger as the process default.
// A nil writer means stderr.
func SetupDefault(w io.Writer, debug bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := Setup(w, Level(debug))
	slog.SetDefault(logger)
	return logger
}
