// =============================================================================
// EDI Remit Analyzer - Progress Logger
// =============================================================================
//
// Progress output goes to stderr so the JSON payload on stdout stays clean
// for piping. The Logger interface keeps the analyzer decoupled from any
// particular sink; tests swap in a silent logger.
//
// =============================================================================

package analyzer

import (
	"fmt"
	"os"
)

// Level gates how much progress output is emitted.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config log_level string to a Level. Unknown strings fall
// back to info.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger receives batch progress messages.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// stderrLogger prints level-prefixed lines to stderr.
type stderrLogger struct {
	level Level
}

// NewStderrLogger returns a Logger writing to stderr at the given level.
func NewStderrLogger(level Level) Logger {
	return &stderrLogger{level: level}
}

func (l *stderrLogger) Debug(msg string, args ...interface{}) { l.log(LevelDebug, "DEBUG", msg, args...) }
func (l *stderrLogger) Info(msg string, args ...interface{})  { l.log(LevelInfo, "INFO", msg, args...) }
func (l *stderrLogger) Warn(msg string, args ...interface{})  { l.log(LevelWarn, "WARN", msg, args...) }
func (l *stderrLogger) Error(msg string, args ...interface{}) { l.log(LevelError, "ERROR", msg, args...) }

func (l *stderrLogger) log(level Level, tag, msg string, args ...interface{}) {
	if level < l.level {
		return
	}
	fmt.Fprintf(os.Stderr, "["+tag+"] "+msg+"\n", args...)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
