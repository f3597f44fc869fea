package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mocksmith/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a mocksmith project",
	Long: `Initialize a project by creating a manifest (mocksmith.toml) and an example
definition file (defs/example.mock.yaml). If [path] is omitted, initializes
the current directory. A missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const exampleDefsName = "example.mock.yaml"

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	created, err := initProject(target)
	if err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet {
		return nil
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized mocksmith project in %s\n", relPath(target))
	for _, f := range created {
		fmt.Fprintf(out, "  - %s\n", f)
	}
	return nil
}

// initProject writes the manifest and, unless one exists, the example
// definitions. It refuses to overwrite an existing manifest and returns the
// created paths relative to dir.
func initProject(dir string) ([]string, error) {
	if st, err := os.Stat(dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	} else if !st.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", dir)
	}

	manifestPath := filepath.Join(dir, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return nil, fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	manifest, err := project.Encode(project.DefaultConfig())
	if err != nil {
		return nil, err
	}
	manifest = append([]byte("# mocksmith project manifest\n"), manifest...)
	if err := os.WriteFile(manifestPath, manifest, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	created := []string{project.ManifestName}

	defsPath := filepath.Join(dir, "defs", exampleDefsName)
	if _, err := os.Stat(defsPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(defsPath), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(defsPath, []byte(exampleDefs), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", exampleDefsName, err)
		}
		created = append(created, filepath.ToSlash(filepath.Join("defs", exampleDefsName)))
	}
	return created, nil
}

const exampleDefs = `# Each interface gets a <Name>Mock double.
interfaces:
  - name: Repository
    access: public
    associated:
      - name: Entity
        inherits: Identifiable
    members:
      - property: "count: Int"
        get: [async]
      - method: "find(id: String) async throws -> Entity?"
      - method: "save(_ entity: Entity) throws"
      - method: "decode<T: Decodable>(_ data: Data, as type: T.Type) throws -> T"
`
