package model

import (
	"fmt"
	"strings"
)

// Level is the severity of a message.
type Level uint8

const (
	Debug Level = iota
	Info
	Warn
	Error
	Success
)

// Levels lists every level in declaration order.
var Levels = []Level{Debug, Info, Warn, Error, Success}

var levelNames = [...]string{"debug", "info", "warn", "error", "success"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("level(%d)", l)
}

// Valid reports whether l is one of the five known levels.
func (l Level) Valid() bool { return int(l) < len(levelNames) }

// ParseLevel converts a level name ("debug", "info", "warn"/"warning",
// "error", "success"/"ok") to a Level. Matching is case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	case "success", "ok":
		return Success, nil
	}
	return 0, fmt.Errorf("unknown level %q", s)
}

// ParseLevels parses a comma-separated level list. "all" selects every
// level and "none" (or an empty string) selects none.
func ParseLevels(s string) ([]Level, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none":
		return []Level{}, nil
	case "all":
		return append([]Level(nil), Levels...), nil
	}
	var out []Level
	for _, part := range strings.Split(s, ",") {
		l, err := ParseLevel(part)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
