// Package logging builds the zerolog loggers used across the application.
//
// The terminal belongs to the TUI, so logs always go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// ServiceName is stamped on every log line
const ServiceName = "chores-tui"

// Config holds logger settings
type Config struct {
	Path  string // log file, created if missing and appended to
	Level string // debug, info, warn or error
}

// Logger is a zerolog logger plus the file it writes to
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New opens the log file and returns a logger writing JSON lines to it
func New(cfg Config) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", cfg.Path, err)
	}

	return &Logger{
		Logger: newLogger(file, level),
		file:   file,
	}, nil
}

// NewWriter returns a logger writing to w, mostly useful in tests
func NewWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return newLogger(w, level)
}

// Nop returns a logger that discards everything
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).With().
		Timestamp().
		Str("service", ServiceName).
		Logger().
		Level(level)
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// ParseLevel maps a configuration level name to a zerolog level.
// An empty name means info.
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

// Component returns a child logger tagged with the component name
func Component(parent zerolog.Logger, name string) zerolog.Logger {
	return parent.With().Str("component", name).Logger()
}
