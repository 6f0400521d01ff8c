package logger

// Package-level logging functions delegating to the default logger.

// Trace logs a message at trace level.
func Trace(msg interface{}, keyvals ...interface{}) {
	Default().Trace(msg, keyvals...)
}

// Tracef logs a formatted message at trace level.
func Tracef(format string, args ...interface{}) {
	Default().Tracef(format, args...)
}

// Debug logs a message at debug level.
func Debug(msg interface{}, keyvals ...interface{}) {
	Default().Debug(msg, keyvals...)
}

// Info logs a message at info level.
func Info(msg interface{}, keyvals ...interface{}) {
	Default().Info(msg, keyvals...)
}

// Warn logs a message at warn level.
func Warn(msg interface{}, keyvals ...interface{}) {
	Default().Warn(msg, keyvals...)
}

// Error logs a message at error level.
func Error(msg interface{}, keyvals ...interface{}) {
	Default().Error(msg, keyvals...)
}

// Fatal logs a message at fatal level and exits.
func Fatal(msg interface{}, keyvals ...interface{}) {
	Default().Fatal(msg, keyvals...)
}

// GetLevel returns the default logger's level.
func GetLevel() Level {
	return Default().GetLevel()
}

// SetLevel sets the default logger's level.
func SetLevel(level Level) {
	Default().SetLevel(level)
}
