package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // start of a logical operation
	KindSpanEnd                   // end of a logical operation
	KindPoint                     // instant event
	KindHeartbeat                 // periodic liveness signal
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string { return lookupName(kindNames[:], int(k)) }

// Scope indicates the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // top-level command
	ScopePass                    // a tokenize or check pass
	ScopeFile                    // one input file
	ScopeToken                   // single token decisions
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeFile:   "file",
	ScopeToken:  "token",
}

func (s Scope) String() string { return lookupName(scopeNames[:], int(s)) }

func lookupName(names []string, i int) string {
	if i <= 0 || i >= len(names) || names[i] == "" {
		return "unknown"
	}
	return names[i]
}

// Event is one trace record. Seq is stamped by the tracer that stores it.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // 0 for points and heartbeats
	ParentID uint64 // 0 for roots
	GID      uint64
	Name     string // "tokenize", "check", "block_string"...
	Detail   string
	Extra    map[string]string
}
