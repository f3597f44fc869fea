package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mocksmith/internal/diag"
	"mocksmith/internal/project"
	"mocksmith/internal/version"
)

// definition file suffixes stripped when naming outputs, longest first
var defSuffixes = []string{".mock.yaml", ".mock.yml", ".yaml", ".yml"}

// OutputName maps a definition file to its generated file name:
// store.mock.yaml -> store.swift.
func OutputName(path, ext string) string {
	base := filepath.Base(path)
	for _, suf := range defSuffixes {
		if strings.HasSuffix(base, suf) && len(base) > len(suf) {
			base = strings.TrimSuffix(base, suf)
			break
		}
	}
	return base + ext
}

// outputPaths resolves one output per input and rejects two inputs that
// would overwrite each other.
func outputPaths(req Request) ([]string, error) {
	out := make([]string, len(req.Files))
	if req.DryRun {
		return out, nil
	}
	if req.OutputDir == "" {
		return nil, diag.Errorf(diag.IOWriteFailure, "no output directory")
	}
	owner := make(map[string]string, len(req.Files))
	for i, f := range req.Files {
		out[i] = filepath.Join(req.OutputDir, OutputName(f, req.Extension))
		if prev, dup := owner[out[i]]; dup {
			return nil, diag.Errorf(diag.IOWriteFailure, "%s and %s both generate %s", prev, f, out[i])
		}
		owner[out[i]] = f
	}
	return out, nil
}

// writeOutput replaces path atomically.
func writeOutput(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, ".mocksmith-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmp := f.Name()
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// optionsDigest covers everything besides the input bytes that changes the
// output.
func optionsDigest(req Request) project.Digest {
	parts := []string{
		version.Version,
		req.Double.Suffix,
		req.Double.IsolationAttribute,
		req.Double.StdModule,
		strconv.Itoa(req.Format.IndentWidth),
		strconv.FormatBool(req.Format.UseTabs),
		strings.Join(req.Format.Header, "\n"),
	}
	return project.Sum([]byte(strings.Join(parts, "\x00")))
}
