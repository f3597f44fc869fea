// Package pipeline describes the stages of a generation run and the progress
// events emitted while files move through them.
package pipeline

import "time"

// Stage is a step a definition file goes through.
type Stage string

const (
	StageLoad       Stage = "load"
	StageSynthesize Stage = "synthesize"
	StageRender     Stage = "render"
	StageWrite      Stage = "write"
)

// Stages lists the stages in execution order.
var Stages = []Stage{StageLoad, StageSynthesize, StageRender, StageWrite}

// Status is the state of a file within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusCached marks a file whose output came from the disk cache.
	StatusCached Status = "cached"
	StatusError  Status = "error"
)

// Terminal reports whether no further events follow for the file.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusCached || s == StatusError
}

// Event reports progress for File, or for the whole run when File is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Timings holds accumulated stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

// Add accumulates dur for stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] += dur
}

// Has reports whether stage was recorded.
func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum totals the given stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
