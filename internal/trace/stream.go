package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer writes events through a buffer. File-level boundaries,
// heartbeats and Flush push the buffer out, so member spans of a file
// appear together once the file is done.
type StreamTracer struct {
	mu     sync.Mutex
	out    io.Writer
	buf    *bufio.Writer
	level  Level
	format Format
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{out: w, buf: bufio.NewWriter(w), level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}
	ev.Seq = NextSeq()
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	// trace output must never fail a run
	_, _ = t.buf.Write(data) //nolint:errcheck
	if flushesStream(ev) {
		_ = t.buf.Flush() //nolint:errcheck
	}
}

// flushesStream: driver and pass events, and heartbeats.
func flushesStream(ev *Event) bool {
	return ev.Kind == KindHeartbeat || (ev.Kind != KindSpanBegin && ev.Scope <= ScopePass)
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.buf.Flush(); err != nil {
		return err
	}
	if flusher, ok := t.out.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if closer, ok := t.out.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
