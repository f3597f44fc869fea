package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mocksmith/internal/diag"
	"mocksmith/internal/observ"
	"mocksmith/internal/pipeline"
	"mocksmith/internal/project"
	"mocksmith/internal/version"
)

const brokenYAML = `
interfaces:
  - name: Broken
    members:
      - method: "go(x Int)"
`

func writeDefs(t *testing.T, dir string, files map[string]string) []string {
	t.Helper()
	var paths []string
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	return paths
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	store := writeDefs(t, dir, map[string]string{"store.mock.yaml": storeYAML})[0]
	broken := writeDefs(t, dir, map[string]string{"broken.yaml": brokenYAML})[0]
	out := filepath.Join(dir, "mocks")
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}

	var events pipeline.Recorder
	req := Request{
		Files:          []string{store, broken},
		OutputDir:      out,
		Jobs:           2,
		MaxDiagnostics: 20,
		Cache:          cache,
		Sink:           &events,
		Timer:          observ.NewTimer(),
	}
	results, err := Generate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0].Path != store || results[1].Path != broken {
		t.Fatalf("results out of order: %+v", results)
	}

	ok := results[0]
	if ok.Failed() || ok.Cached {
		t.Fatalf("store: failed=%v cached=%v diags=%+v", ok.Failed(), ok.Cached, ok.Bag.Items())
	}
	if ok.Output != filepath.Join(out, "store.swift") || len(ok.Doubles) != 1 || ok.Doubles[0] != "StoreMock" {
		t.Errorf("store result = %+v", ok)
	}
	written, err := os.ReadFile(ok.Output)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(written, ok.Content) || !strings.HasPrefix(string(written), "// "+GeneratedHeader+"\n\n@MainActor\n") {
		t.Errorf("written output:\n%s", written)
	}
	for _, stage := range pipeline.Stages {
		if !ok.Timings.Has(stage) {
			t.Errorf("no timing for %s", stage)
		}
	}

	bad := results[1]
	if !bad.Failed() || bad.Output != "" {
		t.Errorf("broken: failed=%v output=%q", bad.Failed(), bad.Output)
	}
	if d := bad.Bag.Items()[0]; d.Code != diag.SynUnexpectedToken {
		t.Errorf("broken diagnostic = %+v", d)
	}
	if _, err := os.Stat(filepath.Join(out, "broken.swift")); !os.IsNotExist(err) {
		t.Errorf("broken output should not exist: %v", err)
	}

	var done, failed int
	for _, ev := range events.Events() {
		switch {
		case ev.File == store && ev.Status == pipeline.StatusDone:
			done++
		case ev.File == broken && ev.Status == pipeline.StatusError:
			failed++
		}
	}
	if done != 1 || failed != 1 {
		t.Errorf("events: done=%d failed=%d", done, failed)
	}

	// second run is served from the cache
	if err := os.Remove(ok.Output); err != nil {
		t.Fatal(err)
	}
	again, err := Generate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !again[0].Cached || !bytes.Equal(again[0].Content, ok.Content) {
		t.Errorf("expected cache hit with identical content")
	}
	if _, err := os.Stat(ok.Output); err != nil {
		t.Errorf("cached output not rewritten: %v", err)
	}
	if hits, _ := cache.Stats(); hits != 1 {
		t.Errorf("hits = %d", hits)
	}

	payload := Timings("generate", req.Timer, again)
	if len(payload.Files) != 2 || !payload.Files[0].Cached || len(payload.Phases) != 2 {
		t.Errorf("timings = %+v", payload)
	}
}

func TestGenerateDryRun(t *testing.T) {
	dir := t.TempDir()
	files := writeDefs(t, dir, map[string]string{"store.mock.yaml": storeYAML})
	results, err := Generate(context.Background(), Request{Files: files, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Failed() || results[0].Output != "" || len(results[0].Content) == 0 {
		t.Errorf("dry run result = %+v", results[0])
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("dry run wrote files: %v", entries)
	}
}

func TestGenerateRejectsCollidingOutputs(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"a", "b"} {
		if err := os.Mkdir(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	files := []string{
		writeDefs(t, filepath.Join(dir, "a"), map[string]string{"x.mock.yaml": storeYAML})[0],
		writeDefs(t, filepath.Join(dir, "b"), map[string]string{"x.yaml": storeYAML})[0],
	}
	_, err := Generate(context.Background(), Request{Files: files, OutputDir: filepath.Join(dir, "out")})
	if diag.CodeOf(err) != diag.IOWriteFailure {
		t.Errorf("err = %v", err)
	}
}

func TestGenerateMissingFile(t *testing.T) {
	dir := t.TempDir()
	results, err := Generate(context.Background(), Request{Files: []string{filepath.Join(dir, "nope.yaml")}, OutputDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Bag.Items()[0].Code != diag.IOReadFailure {
		t.Errorf("diagnostics = %+v", results[0].Bag.Items())
	}
}

func TestGenerateCancelled(t *testing.T) {
	dir := t.TempDir()
	files := writeDefs(t, dir, map[string]string{"store.mock.yaml": storeYAML})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Generate(ctx, Request{Files: files, DryRun: true}); err == nil {
		t.Errorf("expected cancellation error")
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"defs/store.mock.yaml", "store.swift"},
		{"store.yml", "store.swift"},
		{"store.mock.yml", "store.swift"},
		{".yaml", ".yaml.swift"},
		{"plain", "plain.swift"},
	}
	for _, tt := range tests {
		if got := OutputName(tt.in, ".swift"); got != tt.want {
			t.Errorf("OutputName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	key := project.Sum([]byte("input"))

	c, err := OpenDiskCacheAt(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Put(key, &CachePayload{Source: "a.yaml", Doubles: []string{"AMock"}, Content: []byte("x")}); err != nil {
		t.Fatal(err)
	}

	// a fresh instance reads from disk
	fresh, err := OpenDiskCacheAt(dir)
	if err != nil {
		t.Fatal(err)
	}
	got, ok, err := fresh.Get(key)
	if err != nil || !ok || string(got.Content) != "x" || got.Doubles[0] != "AMock" {
		t.Fatalf("Get = %+v %v %v", got, ok, err)
	}

	orig := version.Version
	version.Version = "9.9.9"
	defer func() { version.Version = orig }()
	other, err := OpenDiskCacheAt(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := other.Get(key); ok {
		t.Errorf("entry from another version must miss")
	}
	if _, misses := other.Stats(); misses != 1 {
		t.Errorf("misses = %d", misses)
	}

	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
	version.Version = orig
	if _, ok, _ := c.Get(key); ok {
		t.Errorf("DropAll left entries")
	}
}

func TestGenerateTestdata(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "testdata", "defs", "*.mock.yaml"))
	if err != nil || len(files) == 0 {
		t.Fatalf("testdata: %v (%d files)", err, len(files))
	}
	results, err := Generate(context.Background(), Request{Files: files, DryRun: true, Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	for i := range results {
		if results[i].Failed() {
			t.Errorf("%s: %+v", filepath.Base(results[i].Path), results[i].Bag.Items())
			continue
		}
		for _, name := range results[i].Doubles {
			if !bytes.Contains(results[i].Content, []byte("class "+name)) {
				t.Errorf("%s: %s missing from output", filepath.Base(results[i].Path), name)
			}
		}
	}
}
