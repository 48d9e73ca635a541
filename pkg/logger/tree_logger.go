package logger

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Type is the severity of a diagnostic record.
type Type int

const (
	ERROR Type = iota
	WARN
	INFO
	TRACE
	DEBUG
	SPAM
	ALL
)

var typeNames = [...]string{"ERROR", "WARN", "INFO", "TRACE", "DEBUG", "SPAM", "ALL"}

func (t Type) String() string {
	if t < ERROR || t > ALL {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType parses a level name, case-insensitively.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if strings.EqualFold(n, name) {
			return Type(i), nil
		}
	}
	return ALL, fmt.Errorf("unknown log type %q (want one of %s)", name, strings.Join(typeNames[:], ", "))
}

// TreeLogger receives diagnostic records.  Implementations must not block
// the caller on delivery.
type TreeLogger interface {
	Log(level Type, msg string)
}

// Discard is a TreeLogger that drops all records.
var Discard TreeLogger = discard{}

type discard struct{}

func (discard) Log(Type, string) {}

// ZerologTreeLogger forwards records to a zerolog.Logger.
type ZerologTreeLogger struct {
	logger zerolog.Logger
}

// NewZerologTreeLogger wraps the given logger.
func NewZerologTreeLogger(logger zerolog.Logger) *ZerologTreeLogger {
	return &ZerologTreeLogger{logger: logger}
}

// Log implements TreeLogger.
func (l *ZerologTreeLogger) Log(level Type, msg string) {
	l.logger.WithLevel(zerologLevel(level)).Str("type", level.String()).Msg(msg)
}

func zerologLevel(level Type) zerolog.Level {
	switch level {
	case ERROR:
		return zerolog.ErrorLevel
	case WARN:
		return zerolog.WarnLevel
	case INFO:
		return zerolog.InfoLevel
	case TRACE, DEBUG:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// ZerologLevel is the zerolog threshold that keeps records at or above the
// given level.
func ZerologLevel(level Type) zerolog.Level {
	return zerologLevel(level)
}
