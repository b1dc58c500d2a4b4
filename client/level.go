package client

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Level is a syslog-style severity name
type Level string

const (
	LevelEmergency Level = "emergency"
	LevelAlert     Level = "alert"
	LevelCritical  Level = "critical"
	LevelError     Level = "error"
	LevelWarning   Level = "warning"
	LevelNotice    Level = "notice"
	LevelInfo      Level = "info"
	LevelDebug     Level = "debug"
)

// ErrInvalidLevel is returned for unknown severity names
var ErrInvalidLevel = errors.New("invalid log level")

// Levels lists every valid severity, most severe first
func Levels() []Level {
	return []Level{
		LevelEmergency,
		LevelAlert,
		LevelCritical,
		LevelError,
		LevelWarning,
		LevelNotice,
		LevelInfo,
		LevelDebug,
	}
}

// ParseLevel validates a severity name
func ParseLevel(s string) (Level, error) {
	level := Level(s)
	if !level.Valid() {
		names := make([]string, 0, 8)
		for _, l := range Levels() {
			names = append(names, string(l))
		}
		return "", fmt.Errorf("%w: '%s' is not a valid log level, use one of: %s",
			ErrInvalidLevel, s, strings.Join(names, ", "))
	}
	return level, nil
}

// Valid reports whether l is a known severity
func (l Level) Valid() bool {
	for _, known := range Levels() {
		if l == known {
			return true
		}
	}
	return false
}

// ZapLevel maps the severity onto zap's coarser level set
func (l Level) ZapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo, LevelNotice:
		return zapcore.InfoLevel
	case LevelWarning:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
