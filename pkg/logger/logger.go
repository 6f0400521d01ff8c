package logger

import (
	charm "github.com/charmbracelet/log"
)

// Logger wraps the charm logger with an additional trace level.
type Logger struct {
	*charm.Logger
}

// NewLogger wraps an existing charm logger.
func NewLogger(l *charm.Logger) *Logger {
	return &Logger{Logger: l}
}

// Trace logs a message at trace level with optional key-value pairs.
func (l *Logger) Trace(msg interface{}, keyvals ...interface{}) {
	l.Logger.Log(TraceLevel, msg, keyvals...)
}

// Tracef logs a formatted message at trace level.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.Logger.Logf(TraceLevel, format, args...)
}

// GetLevelString returns the current level name, including the custom trace level.
func (l *Logger) GetLevelString() string {
	if l.GetLevel() == TraceLevel {
		return "trace"
	}
	return l.GetLevel().String()
}
