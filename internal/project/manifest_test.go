package project

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"mocksmith/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifestFromNestedDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[generate]
inputs = ["defs/*.mock.yaml", "defs/store.mock.yaml"]
jobs = 2

[double]
isolation_attribute = "GlobalActor"
`)
	writeFile(t, filepath.Join(root, "defs", "store.mock.yaml"), "interfaces: []\n")
	writeFile(t, filepath.Join(root, "defs", "cache.mock.yaml"), "interfaces: []\n")
	nested := filepath.Join(root, "defs", "deeper")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := LoadManifest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadManifest: ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Errorf("root = %s, want %s", m.Root, root)
	}
	cfg := m.Config
	if cfg.Generate.Jobs != 2 || cfg.Double.IsolationAttribute != "GlobalActor" {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.Generate.Suffix != DefaultSuffix || cfg.Generate.Extension != DefaultExtension || cfg.Double.StdModule != DefaultStdModule {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if m.OutputDir() != filepath.Join(root, DefaultOutput) {
		t.Errorf("output dir = %s", m.OutputDir())
	}

	files, err := m.Inputs()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(root, "defs", "cache.mock.yaml"),
		filepath.Join(root, "defs", "store.mock.yaml"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("inputs = %v, want %v", files, want)
	}
}

func TestNoManifest(t *testing.T) {
	_, ok, err := LoadManifest(t.TempDir())
	if err != nil || ok {
		t.Errorf("expected no manifest, got ok=%v err=%v", ok, err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[generate\n"},
		{"unknown key", "[generate]\ninputs = [\"a\"]\ncolour = true\n"},
		{"missing generate", "[double]\nstd_module = \"Swift\"\n"},
		{"negative jobs", "[generate]\njobs = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := LoadConfig(path)
			if diag.CodeOf(err) != diag.ProjBadManifest {
				t.Errorf("err = %v", err)
			}
		})
	}
}

func TestInputsErrors(t *testing.T) {
	root := t.TempDir()
	m := &Manifest{Path: filepath.Join(root, ManifestName), Root: root}
	if _, err := m.Inputs(); diag.CodeOf(err) != diag.ProjNoInputs {
		t.Errorf("empty inputs: %v", err)
	}
	m.Config.Generate.Inputs = []string{"defs/*.yaml"}
	if _, err := m.Inputs(); diag.CodeOf(err) != diag.ProjNoInputs {
		t.Errorf("no matches: %v", err)
	}
	m.Config.Generate.Inputs = []string{"defs/[.yaml"}
	if _, err := m.Inputs(); diag.CodeOf(err) != diag.ProjBadGlobPattern {
		t.Errorf("bad pattern: %v", err)
	}
}

func TestDefaultConfigEncodes(t *testing.T) {
	data, err := Encode(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, string(data))
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig of encoded defaults: %v\n%s", err, data)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("got %+v", cfg)
	}
}

func TestDigest(t *testing.T) {
	a := Sum([]byte("a"))
	if a.IsZero() || !(Digest{}).IsZero() {
		t.Errorf("IsZero")
	}
	if Combine(a) == Combine(a, a) {
		t.Errorf("Combine should depend on parts")
	}
	if len(a.String()) != 64 {
		t.Errorf("hex length = %d", len(a.String()))
	}
}
