package mockrt

import "sync"

var (
	staticMu  sync.Mutex
	staticAll []interface{ Reset() }
)

// Static is a process-wide recorder for a member shared across instances of
// a double. The primitive is created on first use; Reset drops it so the next
// use starts from a fresh one.
type Static[T any] struct {
	mu    sync.Mutex
	build func() T
	v     T
	ok    bool
}

// NewStatic registers the holder with ResetAll.
func NewStatic[T any](build func() T) *Static[T] {
	s := &Static[T]{build: build}
	staticMu.Lock()
	staticAll = append(staticAll, s)
	staticMu.Unlock()
	return s
}

func (s *Static[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ok {
		s.v, s.ok = s.build(), true
	}
	return s.v
}

func (s *Static[T]) Reset() {
	s.mu.Lock()
	var zero T
	s.v, s.ok = zero, false
	s.mu.Unlock()
}

// ResetAll resets every Static created so far. Tests call it in teardown.
func ResetAll() {
	staticMu.Lock()
	all := make([]interface{ Reset() }, len(staticAll))
	copy(all, staticAll)
	staticMu.Unlock()
	for _, s := range all {
		s.Reset()
	}
}
