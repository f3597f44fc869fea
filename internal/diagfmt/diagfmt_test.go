package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"mocksmith/internal/diag"
)

func sampleBag() *diag.Bag {
	b := diag.NewBag(0)
	b.Add(diag.NewError(diag.SynUnexpectedToken, `unexpected token ":"`).
		InFile("defs/store.mock.yaml").
		At("fetch(p: V) -> V", diag.Span{Start: 7, End: 8}).
		WithNote("labels are written as `label name: Type`"))
	d := diag.New(diag.SevWarning, diag.DefUnknownEffect, "unknown effect \"sync\"").InFile("defs/store.mock.yaml")
	d.Owner, d.Member = "Store", "load"
	b.Add(d)
	return b
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleBag(), PrettyOpts{ShowNotes: true, PathMode: PathModeBasename})
	want := strings.Join([]string{
		`store.mock.yaml: error SYN1001: unexpected token ":"`,
		`    fetch(p: V) -> V`,
		`           ^`,
		"    = note: labels are written as `label name: Type`",
		`store.mock.yaml: Store.load: warning DEF2005: unknown effect "sync"`,
		``,
	}, "\n")
	if buf.String() != want {
		t.Fatalf("Pretty output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyMax(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleBag(), PrettyOpts{Max: 1})
	out := buf.String()
	if strings.Contains(out, "DEF2005") {
		t.Fatalf("Max not honoured:\n%s", out)
	}
	if !strings.HasSuffix(out, "... and 1 more\n") {
		t.Fatalf("missing truncation line:\n%s", out)
	}
	if strings.Contains(out, "note:") {
		t.Fatal("notes printed without ShowNotes")
	}
}

func TestCaretLine(t *testing.T) {
	tests := []struct {
		snippet string
		span    diag.Span
		want    string
	}{
		{"Int", diag.Span{Start: 0, End: 3}, "^^^"},
		{"a -> b", diag.Span{Start: 2, End: 2}, "  ^"},
		// два широких символа занимают по две колонки
		{"Ключ: 値値 x", diag.Span{Start: 17, End: 18}, "           ^"},
		{"short", diag.Span{Start: 40, End: 50}, "     ^"},
	}
	for _, tt := range tests {
		if got := caretLine(tt.snippet, tt.span); got != tt.want {
			t.Errorf("caretLine(%q, %v) = %q, want %q", tt.snippet, tt.span, got, tt.want)
		}
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count=%d len=%d", out.Count, len(out.Diagnostics))
	}
	first := out.Diagnostics[0]
	if first.Code != "SYN1001" || first.Severity != "ERROR" || first.Span == nil || first.Span.Start != 7 {
		t.Fatalf("first = %+v", first)
	}
	if len(first.Notes) != 1 {
		t.Fatalf("notes = %v", first.Notes)
	}
	if second := out.Diagnostics[1]; second.Span != nil || second.Owner != "Store" {
		t.Fatalf("second = %+v", second)
	}
}

func TestJSONEmptyBag(t *testing.T) {
	out := BuildDiagnosticsOutput(nil, JSONOpts{})
	raw, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"diagnostics":[],"count":0}` {
		t.Fatalf("got %s", raw)
	}
}

func TestSarif(t *testing.T) {
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "mocksmith", ToolVersion: "0.1.0", InvocationArgs: []string{"check"}}
	if err := Sarif(&buf, sampleBag(), meta); err != nil {
		t.Fatal(err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("log = %+v", log)
	}
	run := log.Runs[0]
	if len(run.Results) != 2 || len(run.Tool.Driver.Rules) != 2 {
		t.Fatalf("results=%d rules=%d", len(run.Results), len(run.Tool.Driver.Rules))
	}
	if run.Tool.Driver.Rules[0].ID != "SYN1001" {
		t.Fatalf("rules not sorted: %+v", run.Tool.Driver.Rules)
	}
	if run.Results[1].Level != "warning" {
		t.Fatalf("level = %q", run.Results[1].Level)
	}
	if got := run.Results[1].Locations[0].LogicalLocations[0].FullyQualifiedName; got != "Store.load" {
		t.Fatalf("logical location = %q", got)
	}
	if run.Invocations[0].ExecutionSuccessful {
		t.Fatal("run with errors reported as successful")
	}
}
