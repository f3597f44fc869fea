package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits periodic liveness events carrying how many files,
// interfaces and members are open and done. A count that stops moving
// points at a stuck generation.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	base     Progress
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
}

// StartHeartbeat starts the heartbeat goroutine; it returns nil when tracing
// is off or interval is not positive.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		base:     ReadProgress(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer close(h.done)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for n := 1; ; n++ {
		select {
		case <-ticker.C:
			h.beat(n)
		case <-h.stop:
			return
		}
	}
}

func (h *Heartbeat) beat(n int) {
	p := ReadProgress().Since(h.base)
	h.tracer.Emit(&Event{
		Time:   time.Now(),
		Kind:   KindHeartbeat,
		Scope:  ScopeDriver,
		Name:   "heartbeat #" + strconv.Itoa(n),
		Detail: p.String(),
		Extra:  p.Extra(),
	})
}

// Stop halts the goroutine and waits for it. Safe on nil and repeated calls.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		close(h.stop)
		<-h.done
	})
}
