package trace

import (
	"fmt"
	"io"
	"sync"
)

// RingTracer keeps the last N events in memory for a dump after a failed
// run. At LevelError it records every scope, since nothing is streamed.
type RingTracer struct {
	mu      sync.Mutex
	events  []Event
	written uint64 // total events ever stored
	level   Level
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if t.level != LevelError && !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	t.events[t.written%uint64(len(t.events))] = stored
	t.written++
	t.mu.Unlock()
}

// Snapshot returns the stored events oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	size := uint64(len(t.events))
	n := min(t.written, size)
	out := make([]Event, 0, n)
	for i := t.written - n; i < t.written; i++ {
		out = append(out, t.events[i%size])
	}
	return out
}

// InFlight returns the begin events in the snapshot whose end is not in
// it: after a panic these are the file, interface and member that were
// being worked on.
func (t *RingTracer) InFlight() []Event {
	snap := t.Snapshot()
	ended := make(map[uint64]bool)
	for _, ev := range snap {
		if ev.Kind == KindSpanEnd {
			ended[ev.SpanID] = true
		}
	}
	var out []Event
	for _, ev := range snap {
		if ev.Kind == KindSpanBegin && !ended[ev.SpanID] {
			out = append(out, ev)
		}
	}
	return out
}

// Dump writes the snapshot to w, followed by the spans still in flight.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	if format != FormatText {
		return nil
	}
	for _, ev := range t.InFlight() {
		if _, err := fmt.Fprintf(w, "in flight: [%s] %s\n", ev.Scope, ev.Name); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
