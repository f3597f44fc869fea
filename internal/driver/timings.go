package driver

import (
	"encoding/json"

	"mocksmith/internal/observ"
	"mocksmith/internal/pipeline"
)

// TimingPayload is the JSON shape printed by --timings=json.
type TimingPayload struct {
	Kind    string               `json:"kind"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
	Files   []FileTiming         `json:"files,omitempty"`
}

// FileTiming holds per-stage milliseconds for one input.
type FileTiming struct {
	Path   string             `json:"path"`
	Cached bool               `json:"cached,omitempty"`
	Stages map[string]float64 `json:"stages"`
}

// Timings gathers the run timer and per-file stage durations.
func Timings(kind string, timer *observ.Timer, results []FileResult) TimingPayload {
	payload := TimingPayload{Kind: kind}
	if timer != nil {
		report := timer.Report()
		payload.TotalMS, payload.Phases = report.TotalMS, report.Phases
	}
	for i := range results {
		ft := FileTiming{Path: results[i].Path, Cached: results[i].Cached, Stages: make(map[string]float64)}
		for _, s := range pipeline.Stages {
			if results[i].Timings.Has(s) {
				ft.Stages[string(s)] = float64(results[i].Timings.Duration(s).Microseconds()) / 1000
			}
		}
		payload.Files = append(payload.Files, ft)
	}
	return payload
}

// JSON renders the payload indented.
func (p TimingPayload) JSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
