package observ

import (
	"errors"
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("load")
	tm.End(idx, "2 files")
	if err := tm.Track("synthesize", func() error { return errors.New("boom") }); err == nil {
		t.Fatalf("Track must return fn's error")
	}
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d", len(r.Phases))
	}
	if r.Phases[0].Note != "2 files" || r.Phases[1].Note != "failed" {
		t.Errorf("notes = %q, %q", r.Phases[0].Note, r.Phases[1].Note)
	}
	sum := tm.Summary()
	for _, want := range []string{"timings:", "load", "synthesize", "// failed", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestEmptyReport(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Errorf("empty report = %+v", r)
	}
}
