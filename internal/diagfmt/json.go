package diagfmt

import (
	"encoding/json"
	"io"

	"mocksmith/internal/diag"
)

// SpanJSON is a byte range inside the snippet.
type SpanJSON struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

// DiagnosticJSON is one diagnostic in machine-readable form.
type DiagnosticJSON struct {
	Severity string    `json:"severity"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	File     string    `json:"file,omitempty"`
	Owner    string    `json:"owner,omitempty"`
	Member   string    `json:"member,omitempty"`
	Snippet  string    `json:"snippet,omitempty"`
	Span     *SpanJSON `json:"span,omitempty"`
	Notes    []string  `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of the JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// BuildDiagnosticsOutput converts the bag without serialising it.
func BuildDiagnosticsOutput(bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	if bag == nil {
		return out
	}
	items := bag.Items()
	for i := range limit(len(items), opts.Max) {
		d := &items[i]
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			File:     formatPath(d.File, opts.PathMode, opts.BaseDir),
			Owner:    d.Owner,
			Member:   d.Member,
			Snippet:  d.Snippet,
		}
		if d.Snippet != "" {
			dj.Span = &SpanJSON{Start: d.Primary.Start, End: d.Primary.End}
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, n.Msg)
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(items)
	return out
}

// JSON writes the bag as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, opts))
}
