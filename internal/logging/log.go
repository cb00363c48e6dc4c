// Package logging wraps charmbracelet/log behind a small set of
// package-level functions so callers never import the underlying
// library directly.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

var base = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	ReportCaller:    false,
	Level:           log.InfoLevel,
})

// SetLevel parses a level name ("debug", "info", "warn", "error") and
// applies it to the package logger. Unknown names fall back to info.
func SetLevel(level string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	base.SetLevel(parsed)
}

func Debug(format string, args ...any) {
	base.Debugf(format, args...)
}

func Info(format string, args ...any) {
	base.Infof(format, args...)
}

func Warn(format string, args ...any) {
	base.Warnf(format, args...)
}

func Error(format string, args ...any) {
	base.Errorf(format, args...)
}

func Fatal(format string, args ...any) {
	base.Fatalf(format, args...)
}

// With returns a sub-logger carrying the given key/value pairs on every
// line, e.g. logging.With("room", roomID).Info("round started").
func With(keyvals ...any) *log.Logger {
	return base.With(keyvals...)
}
