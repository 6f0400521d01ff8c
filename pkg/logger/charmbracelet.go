package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	charm "github.com/charmbracelet/log"
)

const (
	colorTrace  = "#767676"
	colorDebug  = "#5F5FFF"
	colorInfo   = "#00AF87"
	colorWarn   = "#D7AF00"
	colorError  = "#D70000"
	colorFatal  = "#FF005F"
	colorKey    = "#8A8A8A"
	colorErrVal = "#FF5F5F"
)

// GetCharmLogger returns a styled charm logger writing to stderr.
func GetCharmLogger() *charm.Logger {
	return GetCharmLoggerWithOutput(os.Stderr)
}

// GetCharmLoggerWithOutput returns a styled charm logger writing to the given writer.
func GetCharmLoggerWithOutput(w io.Writer) *charm.Logger {
	logger := charm.New(w)
	logger.SetStyles(getLogStyles())
	logger.SetReportTimestamp(false)
	return logger
}

// getLogStyles returns the log styles, including a label for the custom trace level.
func getLogStyles() *charm.Styles {
	styles := charm.DefaultStyles()

	styles.Levels[TraceLevel] = lipgloss.NewStyle().
		SetString("TRCE").
		Foreground(lipgloss.Color(colorTrace)).
		Bold(true)
	styles.Levels[charm.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBG").
		Foreground(lipgloss.Color(colorDebug)).
		Bold(true)
	styles.Levels[charm.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color(colorInfo)).
		Bold(true)
	styles.Levels[charm.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color(colorWarn)).
		Bold(true)
	styles.Levels[charm.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERRO").
		Foreground(lipgloss.Color(colorError)).
		Bold(true)
	styles.Levels[charm.FatalLevel] = lipgloss.NewStyle().
		SetString("FATA").
		Foreground(lipgloss.Color(colorFatal)).
		Bold(true)

	styles.Key = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorKey)).
		Bold(true)

	// Highlight error values so failures stand out in key-value output.
	styles.Keys["err"] = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorError)).
		Bold(true)
	styles.Values["err"] = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorErrVal))
	styles.Keys["error"] = styles.Keys["err"]
	styles.Values["error"] = styles.Values["err"]

	return styles
}
