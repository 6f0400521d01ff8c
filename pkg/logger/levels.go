package logger

import (
	"errors"
	"fmt"
	"strings"

	charm "github.com/charmbracelet/log"
)

// TraceLevel is a custom level below debug for very detailed diagnostics.
const TraceLevel = charm.DebugLevel - 1

// Charm levels re-exported so callers only need this package.
const (
	DebugLevel = charm.DebugLevel
	InfoLevel  = charm.InfoLevel
	WarnLevel  = charm.WarnLevel
	ErrorLevel = charm.ErrorLevel
	FatalLevel = charm.FatalLevel
)

// Level is the numeric log level used by the underlying charm logger.
type Level = charm.Level

// LogLevel is a log level name as accepted in configuration.
type LogLevel string

const (
	LogLevelOff     LogLevel = "Off"
	LogLevelTrace   LogLevel = "Trace"
	LogLevelDebug   LogLevel = "Debug"
	LogLevelInfo    LogLevel = "Info"
	LogLevelWarning LogLevel = "Warning"
	LogLevelError   LogLevel = "Error"
)

// ErrInvalidLogLevel is returned when a log level name cannot be parsed.
var ErrInvalidLogLevel = errors.New("invalid log level")

// ParseLogLevel parses a log level name case-insensitively.
// An empty string defaults to Info.
func ParseLogLevel(logLevel string) (LogLevel, error) {
	if logLevel == "" {
		return LogLevelInfo, nil
	}

	switch strings.ToLower(logLevel) {
	case "off":
		return LogLevelOff, nil
	case "trace":
		return LogLevelTrace, nil
	case "debug":
		return LogLevelDebug, nil
	case "info":
		return LogLevelInfo, nil
	case "warning", "warn":
		return LogLevelWarning, nil
	case "error":
		return LogLevelError, nil
	default:
		return "", fmt.Errorf("%w: '%s'. Supported log levels are Trace, Debug, Info, Warning, Error, Off", ErrInvalidLogLevel, logLevel)
	}
}

// Level converts the configuration level to a charm log level.
// Off maps above Fatal so that nothing is emitted.
func (l LogLevel) Level() Level {
	switch l {
	case LogLevelTrace:
		return TraceLevel
	case LogLevelDebug:
		return DebugLevel
	case LogLevelWarning:
		return WarnLevel
	case LogLevelError:
		return ErrorLevel
	case LogLevelOff:
		return FatalLevel + 1
	default:
		return InfoLevel
	}
}
