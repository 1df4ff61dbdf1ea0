package log

import (
	"strings"

	"github.com/fatih/color"
)

type LogLevel int

const (
	Debug LogLevel = iota
	Info
	Warn
	Error
	Fatal
)

func (l LogLevel) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	}
	return "UNKNOWN"
}

// Parse maps a configured level name to a LogLevel, falling back to Info.
func Parse(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG", "TRACE":
		return Debug
	case "INFO", "":
		return Info
	case "WARN", "WARNING":
		return Warn
	case "ERROR":
		return Error
	case "FATAL":
		return Fatal
	}
	return Info
}

// Color returns the terminal colour used for a level.
func Color(l LogLevel) *color.Color {
	var c *color.Color
	switch l {
	case Debug:
		c = color.New(color.FgCyan)
	case Info:
		c = color.New(color.FgGreen)
	case Warn:
		c = color.New(color.FgYellow)
	case Error:
		c = color.New(color.FgRed)
	case Fatal:
		c = color.New(color.FgHiRed, color.Bold)
	default:
		c = color.New(color.Reset)
	}
	// Output goes to stderr or a file, so stdout detection does not apply.
	c.EnableColor()
	return c
}
