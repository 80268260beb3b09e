package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	globalSeq   atomic.Uint64
	globalSpans atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return globalSeq.Add(1)
}

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 {
	return globalSpans.Add(1)
}

// Span tracks one logical operation between Begin and End.
// A zero or nil Span is inert.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	scope    Scope
	name     string
	started  time.Time
	extra    map[string]string
	ended    atomic.Bool
}

// Begin starts a new span and emits a KindSpanBegin event.
// parent is the parent span ID (0 if root).
//
// A span whose scope is filtered out by the level is still tracked, so a
// failing End can be reported at LevelError.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() {
		return &Span{tracer: Nop}
	}

	s := &Span{
		tracer:   t,
		id:       NextSpanID(),
		parentID: parent,
		scope:    scope,
		name:     name,
		started:  time.Now(),
	}
	t.Emit(&Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent,
		Name:     name,
	})
	return s
}

// Start begins a span using the tracer and parent carried by ctx and returns
// a context that parents further spans under it.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	s := Begin(FromContext(ctx), scope, name, ParentID(ctx))
	if s.id == 0 {
		return ctx, s
	}
	return WithSpan(ctx, s), s
}

// End emits a KindSpanEnd event and returns the duration.
func (s *Span) End(detail string) time.Duration {
	return s.finish(detail, false)
}

// Fail ends the span and marks it failed with err's message.
// Only the first End or Fail on a span is emitted.
func (s *Span) Fail(err error) time.Duration {
	if err == nil {
		return s.End("")
	}
	return s.finish(err.Error(), true)
}

func (s *Span) finish(detail string, failed bool) time.Duration {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return 0
	}
	if !s.ended.CompareAndSwap(false, true) {
		return 0
	}

	dur := time.Since(s.started)
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		Name:     s.name,
		Detail:   detail,
		Elapsed:  dur,
		Failed:   failed,
		Extra:    s.extra,
	})
	return dur
}

// WithExtra adds a key-value pair to the end event.
// Returns the span for method chaining.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return s
	}

	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event.
func Point(t Tracer, scope Scope, name, detail string) {
	if t == nil || !t.Enabled() {
		return
	}
	t.Emit(&Event{
		Time:   time.Now(),
		Kind:   KindPoint,
		Scope:  scope,
		Name:   name,
		Detail: detail,
	})
}
