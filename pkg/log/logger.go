// Package log provides the level-filtered stdout/stderr logger used by
// the report-augmenter CLI. Diagnostics that the augmentation contract
// requires on stdout (summary echoes, mismatch warnings) go through
// Warning/Info; errors go to stderr.
package log

import (
	"fmt"
	"io"
	"os"
)

// Level represents logging verbosity
type Level int

const (
	ErrorLevel Level = iota
	InfoLevel
	DebugLevel
)

// Logger filters messages by verbosity
type Logger struct {
	level  Level
	stdout io.Writer
	stderr io.Writer
}

// New creates a logger at the given verbosity
func New(level Level) *Logger {
	return &Logger{
		level:  level,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Error logs an error message to stderr
func (l *Logger) Error(format string, args ...interface{}) {
	fmt.Fprintf(l.stderr, "❌ %s\n", fmt.Sprintf(format, args...))
}

// Warning logs a warning to stdout (always shown)
func (l *Logger) Warning(format string, args ...interface{}) {
	fmt.Fprintf(l.stdout, "⚠️  %s\n", fmt.Sprintf(format, args...))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level < InfoLevel {
		return
	}
	fmt.Fprintf(l.stdout, "%s\n", fmt.Sprintf(format, args...))
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level < DebugLevel {
		return
	}
	fmt.Fprintf(l.stdout, "%s\n", fmt.Sprintf(format, args...))
}

// Success logs a success message (always shown)
func (l *Logger) Success(format string, args ...interface{}) {
	fmt.Fprintf(l.stdout, "✅ %s\n", fmt.Sprintf(format, args...))
}

// ParseLevel parses a string into a log level
func ParseLevel(s string) (Level, error) {
	switch s {
	case "error":
		return ErrorLevel, nil
	case "info":
		return InfoLevel, nil
	case "debug":
		return DebugLevel, nil
	default:
		return InfoLevel, fmt.Errorf("invalid log level: %s (valid: error, info, debug)", s)
	}
}
