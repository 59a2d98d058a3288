// Package logger holds the process-wide slog logger of hobctl.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// L is the global logger. It discards everything until Init is called.
var L *slog.Logger = slog.New(slog.DiscardHandler)

// Options configures Init.
type Options struct {
	Enabled bool      // If false, all logging is discarded
	Level   string    // debug, info, warn or error. Default: info
	Format  string    // text or json. Default: text
	Writer  io.Writer // Default: os.Stderr
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.Newf("logger: unknown level %q", s)
	}
}

// Init configures L. Call before any log calls.
func Init(opts Options) error {
	if !opts.Enabled {
		L = slog.New(slog.DiscardHandler)
		return nil
	}
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	ho := &slog.HandlerOptions{Level: level}
	switch opts.Format {
	case "", "text":
		L = slog.New(slog.NewTextHandler(w, ho))
	case "json":
		L = slog.New(slog.NewJSONHandler(w, ho))
	default:
		return errors.Newf("logger: unknown format %q", opts.Format)
	}
	return nil
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
