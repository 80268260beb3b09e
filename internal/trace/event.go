package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of the event.
// Lower values are coarser.
type Scope uint8

const (
	ScopeCommand Scope = iota + 1 // one CLI command
	ScopeFile                     // one source file or buffer
	ScopeMessage                  // one LSP message
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeCommand:
		return "command"
	case ScopeFile:
		return "file"
	case ScopeMessage:
		return "message"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number, assigned on emit
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // unique span identifier (0 for points)
	ParentID uint64            // parent span (0 if root)
	Name     string            // e.g. "fmt", "file:src/a.cpp", "textDocument/completion"
	Detail   string            // optional detail message
	Elapsed  time.Duration     // span duration, set on KindSpanEnd
	Failed   bool              // the operation ended with an error
	Extra    map[string]string // extensible key-value pairs
}
