package ui

import (
	"strings"
	"testing"

	"mocksmith/internal/pipeline"
)

func TestApplyEventProgress(t *testing.T) {
	m := NewProgressModel("generating", []string{"a.yaml", "b.yaml"}, nil).(*progressModel)

	m.applyEvent(pipeline.Event{File: "a.yaml", Stage: pipeline.StageSynthesize, Status: pipeline.StatusWorking})
	if m.items[0].label != "synthesizing" {
		t.Errorf("label = %q", m.items[0].label)
	}
	if got := m.percent(); got != 0.2 {
		t.Errorf("percent = %v", got)
	}

	m.applyEvent(pipeline.Event{File: "a.yaml", Stage: pipeline.StageWrite, Status: pipeline.StatusDone})
	m.applyEvent(pipeline.Event{File: "b.yaml", Stage: pipeline.StageLoad, Status: pipeline.StatusCached})
	if got := m.percent(); got != 1.0 {
		t.Errorf("percent = %v", got)
	}

	// late events after a terminal state are dropped
	m.applyEvent(pipeline.Event{File: "b.yaml", Stage: pipeline.StageRender, Status: pipeline.StatusWorking})
	if m.items[1].label != "cached" {
		t.Errorf("label = %q", m.items[1].label)
	}
	m.applyEvent(pipeline.Event{File: "unknown.yaml", Status: pipeline.StatusError})

	view := m.View()
	if !strings.Contains(view, "a.yaml") || !strings.Contains(view, "cached") {
		t.Errorf("view:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"definitions/store.mock.yaml", 10, "definit..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
