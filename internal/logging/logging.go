// Package logging configures structured slog loggers for crackle.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level represents a logging level.
type Level = slog.Level

// Log levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Format represents the output format for logs.
type Format int

const (
	// FormatText outputs human-readable text logs.
	FormatText Format = iota
	// FormatJSON outputs JSON-structured logs.
	FormatJSON
)

const redacted = "[REDACTED]"

// Config holds the logging configuration.
type Config struct {
	Level  Level
	Format Format
	// Output defaults to os.Stderr.
	Output io.Writer
	// Component is attached to every record when set.
	Component string
	// Redact masks attributes whose key names a secret.
	Redact bool
}

// DefaultConfig returns text logs at info level on stderr.
func DefaultConfig() Config {
	return Config{
		Level:     LevelInfo,
		Format:    FormatText,
		Output:    os.Stderr,
		Component: "crackle",
	}
}

// New builds a logger from cfg.
func New(cfg Config) *slog.Logger {
	w := cfg.Output
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Redact {
		opts.ReplaceAttr = redactAttr
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	if cfg.Component != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("component", cfg.Component)})
	}
	return slog.New(handler)
}

// ParseLevel parses a level name.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %q", s)
	}
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("invalid log format: %q", s)
	}
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if shouldRedact(a.Key) {
		return slog.String(a.Key, redacted)
	}
	return a
}

func shouldRedact(key string) bool {
	sensitiveKeys := []string{"password", "secret", "token", "credential", "plaintext"}
	keyLower := strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(keyLower, sensitive) {
			return true
		}
	}
	return false
}
