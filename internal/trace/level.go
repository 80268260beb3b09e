package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff     Level = iota // no tracing
	LevelError                // only failed spans
	LevelCommand              // CLI command boundaries
	LevelFile                 // per-file work
	LevelDebug                // everything including LSP messages
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelCommand:
		return "command"
	case LevelFile:
		return "file"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "command":
		return LevelCommand, nil
	case "file":
		return LevelFile, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|command|file|debug)", s)
	}
}

// ShouldEmit reports whether events of the given scope pass this level.
// LevelError lets through only events marked as failures (see Event.Failed).
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelCommand:
		return scope <= ScopeCommand
	case LevelFile:
		return scope <= ScopeFile
	case LevelDebug:
		return true
	}
	return false
}

func (l Level) allows(ev *Event) bool {
	if l == LevelOff {
		return false
	}
	if ev.Failed {
		return true
	}
	return l.ShouldEmit(ev.Scope)
}
