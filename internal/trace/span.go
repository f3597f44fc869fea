package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span id, never 0.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// Span pairs a begin event with its end event. A span filtered out by the
// level still counts towards Progress but emits nothing.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	scope    Scope
	name     string
	started  time.Time
	counted  bool
	ended    atomic.Bool
	member   *MemberInfo
	extra    map[string]string
}

// Begin opens a span. With tracing off the span is inert.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() {
		return &Span{tracer: Nop}
	}
	progress.begin(scope)
	s := &Span{tracer: t, scope: scope, name: name, parentID: parent, counted: true}
	if !wants(t, scope) {
		return s
	}
	s.id = NextSpanID()
	s.started = time.Now()
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

// End emits the end event and returns the span's duration. Only the first
// call has an effect.
func (s *Span) End(detail string) time.Duration {
	if s == nil || !s.ended.CompareAndSwap(false, true) {
		return 0
	}
	if s.counted {
		progress.end(s.scope)
	}
	if s.id == 0 {
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
		Member:   s.member,
		Extra:    s.extra,
	})
	return dur
}

// WithExtra adds a key/value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.id == 0 {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// Describe attaches the synthesized member to the end event.
func (s *Span) Describe(m MemberInfo) *Span {
	if s == nil || s.id == 0 {
		return s
	}
	s.member = &m
	return s
}

// ID returns the span id, 0 for spans that emit nothing.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
