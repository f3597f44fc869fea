package project

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"mocksmith/internal/diag"
)

// Manifest is a loaded mocksmith.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the sections of mocksmith.toml.
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Double   DoubleConfig   `toml:"double"`
}

type GenerateConfig struct {
	// Inputs are glob patterns relative to the project root.
	Inputs    []string `toml:"inputs"`
	Output    string   `toml:"output"`
	Suffix    string   `toml:"suffix"`
	Extension string   `toml:"extension"`
	Jobs      int      `toml:"jobs,omitempty"`
}

type DoubleConfig struct {
	IsolationAttribute string `toml:"isolation_attribute"`
	StdModule          string `toml:"std_module"`
}

// Defaults used for keys the manifest leaves out.
const (
	DefaultOutput             = "mocks"
	DefaultSuffix             = "Mock"
	DefaultExtension          = ".swift"
	DefaultIsolationAttribute = "MainActor"
	DefaultStdModule          = "Swift"
)

// DefaultConfig is what `mocksmith init` writes.
func DefaultConfig() Config {
	return Config{
		Generate: GenerateConfig{
			Inputs:    []string{"defs/*.mock.yaml"},
			Output:    DefaultOutput,
			Suffix:    DefaultSuffix,
			Extension: DefaultExtension,
		},
		Double: DoubleConfig{
			IsolationAttribute: DefaultIsolationAttribute,
			StdModule:          DefaultStdModule,
		},
	}
}

func (c *Config) applyDefaults() {
	if c.Generate.Output == "" {
		c.Generate.Output = DefaultOutput
	}
	if c.Generate.Suffix == "" {
		c.Generate.Suffix = DefaultSuffix
	}
	if c.Generate.Extension == "" {
		c.Generate.Extension = DefaultExtension
	}
	if !strings.HasPrefix(c.Generate.Extension, ".") {
		c.Generate.Extension = "." + c.Generate.Extension
	}
	if c.Double.IsolationAttribute == "" {
		c.Double.IsolationAttribute = DefaultIsolationAttribute
	}
	if c.Double.StdModule == "" {
		c.Double.StdModule = DefaultStdModule
	}
}

// LoadManifest finds mocksmith.toml above startDir and decodes it.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig decodes a manifest file. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, diag.Errorf(diag.ProjBadManifest, "%s: failed to parse TOML: %v", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, diag.Errorf(diag.ProjBadManifest, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("generate") {
		return Config{}, diag.Errorf(diag.ProjBadManifest, "%s: missing [generate]", path)
	}
	if cfg.Generate.Jobs < 0 {
		return Config{}, diag.Errorf(diag.ProjBadManifest, "%s: [generate].jobs must not be negative", path)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Inputs expands the input patterns against the project root. The result is
// sorted and free of duplicates.
func (m *Manifest) Inputs() ([]string, error) {
	if len(m.Config.Generate.Inputs) == 0 {
		return nil, diag.Errorf(diag.ProjNoInputs, "%s: [generate].inputs is empty", m.Path)
	}
	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range m.Config.Generate.Inputs {
		matches, err := filepath.Glob(filepath.Join(m.Root, filepath.FromSlash(pattern)))
		if err != nil {
			return nil, diag.Errorf(diag.ProjBadGlobPattern, "%s: %q: %v", m.Path, pattern, err)
		}
		for _, f := range matches {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return nil, diag.Errorf(diag.ProjNoInputs, "%s: no files match %s", m.Path, strings.Join(m.Config.Generate.Inputs, ", "))
	}
	sort.Strings(files)
	return files, nil
}

// OutputDir is the absolute output directory.
func (m *Manifest) OutputDir() string {
	out := filepath.FromSlash(m.Config.Generate.Output)
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(m.Root, out)
}
