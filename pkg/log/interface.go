// Package log provides the structured logger used by gbloss objectives and metrics.
//
// The interface mirrors log/slog and is backed by zerolog. Objectives and
// metrics log once at construction and, at debug level, on every host
// callback invocation.
//
//	logger := log.GetLoggerWithName(log.ComponentObjective).With(
//	    log.ObjectiveNameKey, "Focal",
//	)
//	logger.Debug("gradient computed", log.SamplesKey, 1000)
package log

import (
	"context"
)

// Logger is a slog-style structured logger. Fields are alternating
// key/value pairs; Error additionally accepts a leading error value whose
// message and stack trace are attached to the record.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)

	// With returns a child logger that prepends fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether a record at level would be emitted. Callers
	// use it to skip building expensive debug fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level uses the same numeric values as slog.Level.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider hands out loggers. The package-level functions delegate to
// the installed provider so tests can swap in a TestLoggerProvider.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
	SetLevel(level Level)
}
