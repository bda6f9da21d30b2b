// ABOUTME: Structured logging configuration using log/slog.
// ABOUTME: Init targets a writer (stderr for the CLI); InitFile targets debug.log for the TUI.

package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the log file written by InitFile
const FileName = "debug.log"

// Init configures the default slog logger.
// level: debug, info, warn, error (default: info)
// format: text, json (default: text)
func Init(w io.Writer, level, format string) {
	slog.SetDefault(New(w, level, format))
}

// New builds a logger without installing it as the default
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// InitFile sends the default logger to dir/debug.log so log lines do not
// interfere with the terminal display. An empty dir discards all output.
// The returned func closes the file.
func InitFile(dir, level, format string) (func() error, error) {
	if dir == "" {
		Init(io.Discard, level, format)
		return func() error { return nil }, nil
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		Init(io.Discard, level, format)
		return func() error { return nil }, err
	}

	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		Init(io.Discard, level, format)
		return func() error { return nil }, err
	}

	Init(f, level, format)
	return f.Close, nil
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
