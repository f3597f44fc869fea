package pipeline

import (
	"sync"
	"testing"
	"time"
)

func TestTimings(t *testing.T) {
	var tm Timings
	tm.Add(StageLoad, time.Millisecond)
	tm.Add(StageLoad, 2*time.Millisecond)
	tm.Add(StageRender, time.Millisecond)
	if !tm.Has(StageLoad) || tm.Has(StageWrite) {
		t.Errorf("Has")
	}
	if tm.Duration(StageLoad) != 3*time.Millisecond {
		t.Errorf("load = %v", tm.Duration(StageLoad))
	}
	if tm.Sum(Stages...) != 4*time.Millisecond {
		t.Errorf("sum = %v", tm.Sum(Stages...))
	}
	var nilTimings *Timings
	nilTimings.Add(StageLoad, time.Second)
}

func TestRecorderConcurrent(t *testing.T) {
	var r Recorder
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Emit(&r, Event{File: "a", Stage: StageLoad, Status: StatusDone})
		}()
	}
	wg.Wait()
	if len(r.Events()) != 8 {
		t.Errorf("events = %d", len(r.Events()))
	}
	Emit(nil, Event{})
}

func TestTerminal(t *testing.T) {
	for _, s := range []Status{StatusDone, StatusCached, StatusError} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	if StatusWorking.Terminal() || StatusQueued.Terminal() {
		t.Errorf("working/queued are not terminal")
	}
}
