package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mocksmith/internal/diag"
	"mocksmith/internal/diagfmt"
	"mocksmith/internal/version"
)

type reportOptions struct {
	format    string // pretty|json|sarif
	color     bool
	withNotes bool
	fullPath  bool
	max       int
}

func readReportOptions(cmd *cobra.Command) (reportOptions, error) {
	var opts reportOptions
	var err error
	if opts.format, err = cmd.Flags().GetString("format"); err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch opts.format {
	case "pretty", "json", "sarif":
	default:
		return opts, fmt.Errorf("unknown format: %s (expected pretty|json|sarif)", opts.format)
	}
	if opts.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return opts, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if opts.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return opts, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if opts.max, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.color, err = useColor(cmd, os.Stderr); err != nil {
		return opts, err
	}
	return opts, nil
}

// reportDiagnostics prints bag. Pretty output goes to stderr, machine
// formats to stdout so they can be piped.
func reportDiagnostics(stdout, stderr io.Writer, bag *diag.Bag, opts reportOptions, args []string) error {
	mode := diagfmt.PathModeRelative
	if opts.fullPath {
		mode = diagfmt.PathModeAbsolute
	}
	base, _ := os.Getwd()
	bag.Sort()
	switch opts.format {
	case "json":
		return diagfmt.JSON(stdout, bag, diagfmt.JSONOpts{PathMode: mode, BaseDir: base, Max: opts.max, IncludeNotes: opts.withNotes})
	case "sarif":
		return diagfmt.Sarif(stdout, bag, diagfmt.SarifRunMeta{
			ToolName:       "mocksmith",
			ToolVersion:    version.Version,
			InvocationArgs: args,
		})
	}
	diagfmt.Pretty(stderr, bag, diagfmt.PrettyOpts{
		Color:     opts.color,
		PathMode:  mode,
		BaseDir:   base,
		ShowNotes: opts.withNotes,
		Max:       opts.max,
	})
	return nil
}
