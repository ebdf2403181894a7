package log

import (
	"fmt"
	"strings"
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
	default:
		return "UNKNOWN"
	}
}

// Parse converts a level name into a LogLevel. Names are case-insensitive.
func Parse(level string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return Debug, nil
	case "INFO", "":
		return Info, nil
	case "WARN", "WARNING":
		return Warn, nil
	case "ERROR":
		return Error, nil
	case "FATAL":
		return Fatal, nil
	default:
		return Info, fmt.Errorf("log: invalid level %q", level)
	}
}

// Letter returns the single-letter tag used on terminal output (I, W, E...).
func (l LogLevel) Letter() string {
	return l.String()[:1]
}
