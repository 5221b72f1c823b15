// Package severity maps upstream level spellings onto a closed set of levels.
package severity

import (
	"strings"

	"github.com/ccollicutt/prettylog/pkg/record"
)

// Level is a ranked severity category.
type Level int

const (
	Unknown Level = iota
	Trace
	Debug
	Info
	Warn
	Error
	Fatal
)

// Width is the display width of the longest level name.
const Width = len("UNKNOWN")

var names = map[Level]string{
	Unknown: "UNKNOWN",
	Trace:   "TRACE",
	Debug:   "DEBUG",
	Info:    "INFO",
	Warn:    "WARN",
	Error:   "ERROR",
	Fatal:   "FATAL",
}

// String returns the upper-case display name.
func (l Level) String() string {
	if name, ok := names[l]; ok {
		return name
	}
	return names[Unknown]
}

// All returns every level from least to most severe, Unknown first.
func All() []Level {
	return []Level{Unknown, Trace, Debug, Info, Warn, Error, Fatal}
}

var spellings = map[string]Level{
	"trace":       Trace,
	"debug":       Debug,
	"dbg":         Debug,
	"info":        Info,
	"information": Info,
	"notice":      Info,
	"warn":        Warn,
	"warning":     Warn,
	"error":       Error,
	"err":         Error,
	"fatal":       Fatal,
	"critical":    Fatal,
	"crit":        Fatal,
	"panic":       Fatal,
	"emergency":   Fatal,
	"alert":       Fatal,
}

// bunyan and pino numeric levels.
var numeric = map[int64]Level{
	10: Trace,
	20: Debug,
	30: Info,
	40: Warn,
	50: Error,
	60: Fatal,
}

// ParseString matches s case-insensitively against the known spellings.
func ParseString(s string) Level {
	if level, ok := spellings[strings.ToLower(strings.TrimSpace(s))]; ok {
		return level
	}
	return Unknown
}

// Parse converts a resolved severity value. Strings are matched by name,
// integral numbers by their bunyan rank; anything else is Unknown.
func Parse(v record.Value) Level {
	switch v.Kind() {
	case record.KindString:
		s, _ := v.AsString()
		return ParseString(s)
	case record.KindNumber:
		n, _ := v.AsNumber()
		i, err := n.Int64()
		if err != nil {
			return Unknown
		}
		if level, ok := numeric[i]; ok {
			return level
		}
		return Unknown
	default:
		return Unknown
	}
}
