package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultLevel is used when no level or an unknown level is configured.
const DefaultLevel = slog.LevelWarn

func levelFromString(s string) (l slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return slog.LevelDebug, true
	case "info", "inf":
		return slog.LevelInfo, true
	case "warn", "wrn", "":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	default:
		return DefaultLevel, false
	}
}

// InitLogger makes the default slog logger append to the file at path.
// The prompt must render even when logging is broken, so on failure the
// default logger discards records and the error is returned for the caller
// to report.
func InitLogger(path, level string) (func() error, error) {
	loglevel, ok := levelFromString(level)

	logDir := filepath.Dir(path)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return func() error { return nil }, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return func() error { return nil }, fmt.Errorf("failed to open log file: %w", err)
	}

	// slog defaults to logging in the order of time, level, msg, and other attributes.
	handler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: loglevel})
	slog.SetDefault(slog.New(handler))

	if !ok {
		slog.Warn("Unknown log level, using default", "level", level, "default", DefaultLevel)
	}
	return logFile.Close, nil
}
