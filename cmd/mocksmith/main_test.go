package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mocksmith/internal/defs"
	"mocksmith/internal/diag"
	"mocksmith/internal/driver"
	"mocksmith/internal/pipeline"
	"mocksmith/internal/project"
)

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if !shouldUseTUI(uiModeOn, true, 1) {
		t.Error("--ui=on must win over quiet")
	}
	if shouldUseTUI(uiModeAuto, true, 10) {
		t.Error("quiet run got a TUI")
	}
}

func TestReadTimingsMode(t *testing.T) {
	for _, ok := range []string{"", "text", "json"} {
		if _, err := readTimingsMode(ok); err != nil {
			t.Errorf("readTimingsMode(%q): %v", ok, err)
		}
	}
	if _, err := readTimingsMode("yaml"); err == nil {
		t.Error("expected error for yaml")
	}
}

func TestInitProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")

	created, err := initProject(dir)
	if err != nil {
		t.Fatalf("initProject: %v", err)
	}
	if len(created) != 2 || created[0] != project.ManifestName || created[1] != "defs/example.mock.yaml" {
		t.Fatalf("created = %v", created)
	}

	m, ok, err := project.LoadManifest(dir)
	if err != nil || !ok {
		t.Fatalf("LoadManifest: ok=%v err=%v", ok, err)
	}
	inputs, err := m.Inputs()
	if err != nil {
		t.Fatalf("Inputs: %v", err)
	}
	if len(inputs) != 1 || filepath.Base(inputs[0]) != exampleDefsName {
		t.Fatalf("inputs = %v", inputs)
	}

	bag := diag.NewBag(0)
	decls := defs.Load(inputs[0], bag)
	if bag.Len() != 0 || len(decls) != 1 {
		t.Fatalf("example definitions: %d decls, diagnostics %+v", len(decls), bag.Items())
	}

	if _, err := initProject(dir); err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Fatalf("second init: %v", err)
	}
}

func TestInitProjectKeepsExistingDefs(t *testing.T) {
	dir := t.TempDir()
	defsPath := filepath.Join(dir, "defs", exampleDefsName)
	if err := os.MkdirAll(filepath.Dir(defsPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(defsPath, []byte("interfaces: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	created, err := initProject(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(created) != 1 {
		t.Fatalf("created = %v", created)
	}
	data, _ := os.ReadFile(defsPath)
	if string(data) != "interfaces: []\n" {
		t.Fatal("existing definitions overwritten")
	}
}

func TestExampleGenerates(t *testing.T) {
	dir := t.TempDir()
	if _, err := initProject(dir); err != nil {
		t.Fatal(err)
	}
	results, err := driver.Generate(t.Context(), driver.Request{
		Files:  []string{filepath.Join(dir, "defs", exampleDefsName)},
		DryRun: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Failed() {
		t.Fatalf("diagnostics: %+v", results[0].Bag.Items())
	}
	if !bytes.Contains(results[0].Content, []byte("class RepositoryMock")) {
		t.Fatalf("unexpected output:\n%s", results[0].Content)
	}
}

func TestRunErase(t *testing.T) {
	var out bytes.Buffer
	eraseCmd.SetOut(&out)
	t.Cleanup(func() { eraseCmd.SetOut(nil) })
	for _, kv := range [][2]string{{"scope", "K: Hashable"}, {"scope", "V"}, {"json", "true"}} {
		if err := eraseCmd.Flags().Set(kv[0], kv[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := runErase(eraseCmd, []string{"[K: V]"}); err != nil {
		t.Fatalf("runErase: %v", err)
	}
	var got erasePayload
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("bad JSON %q: %v", out.String(), err)
	}
	if got.Output != "[AnyHashable: Any]" || !got.Erased {
		t.Fatalf("got %+v", got)
	}
}

func TestWriteEraseUnchanged(t *testing.T) {
	var out bytes.Buffer
	if err := writeErase(&out, erasePayload{Input: "Int", Output: "Int"}, false); err != nil {
		t.Fatal(err)
	}
	if out.String() != "Int (unchanged)\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestPrintSummary(t *testing.T) {
	rec := &pipeline.Recorder{}
	rec.OnEvent(pipeline.Event{File: "a.yaml", Stage: pipeline.StageWrite, Status: pipeline.StatusCached})
	okBag, badBag := diag.NewBag(0), diag.NewBag(0)
	badBag.Add(diag.NewError(diag.DefMissingName, "missing name"))
	results := []driver.FileResult{
		{Path: "a.yaml", Doubles: []string{"StoreMock", "CacheMock"}, Bag: okBag},
		{Path: "b.yaml", Bag: badBag},
	}
	var out bytes.Buffer
	printSummary(&out, results, rec, true)
	if want := "checked 2 doubles from 1 files (1 cached), 1 files failed\n"; out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}
