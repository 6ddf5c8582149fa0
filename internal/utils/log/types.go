package log

import (
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type (
	Level  = charmlog.Level
	Styles = charmlog.Styles
)

const (
	DebugLevel     = charmlog.DebugLevel
	InfoLevel      = charmlog.InfoLevel
	WarnLevel      = charmlog.WarnLevel
	ErrorLevel     = charmlog.ErrorLevel
	FatalLevel     = charmlog.FatalLevel
	ImportantLevel = WarnLevel + 1
)

// LogLevelString returns the string representation of the level
func LogLevelString(l Level) string {
	switch l {
	case ImportantLevel:
		return " IMPORTANT "
	default:
		return charmlog.Level(l).String()
	}
}

// ParseLevel maps a config level name to a Level, falling back to info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}
