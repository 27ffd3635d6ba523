package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // only dumped when a command fails
	LevelPhase               // driver + pass boundaries
	LevelDetail              // per-file events
	LevelDebug               // everything including token decisions
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// finest scope each level lets through
var levelScopes = [...]Scope{
	LevelError:  ScopePass, // ring-only level: keep coarse events for the failure dump
	LevelPhase:  ScopePass,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeToken,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level, case-insensitively.
func ParseLevel(s string) (Level, error) {
	want := strings.ToLower(s)
	for i, name := range levelNames {
		if name == want {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if l == LevelOff || int(l) >= len(levelScopes) {
		return false
	}
	return scope <= levelScopes[l]
}
