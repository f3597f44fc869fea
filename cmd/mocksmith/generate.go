package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mocksmith/internal/diag"
	"mocksmith/internal/driver"
	"mocksmith/internal/observ"
	"mocksmith/internal/pipeline"
	"mocksmith/internal/project"
)

var generateCmd = &cobra.Command{
	Use:   "generate [files...]",
	Short: "Generate test doubles from definition files",
	Long: `Generate test doubles for every interface in the given definition files.
Without arguments the inputs, output directory and options come from the
nearest mocksmith.toml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args, false)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Validate definition files without writing output",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args, true)
	},
}

func init() {
	for _, c := range []*cobra.Command{generateCmd, checkCmd} {
		c.Flags().String("format", "pretty", "diagnostics format (pretty|json|sarif)")
		c.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
		c.Flags().Bool("with-notes", false, "include diagnostic notes in output")
		c.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	}
	generateCmd.Flags().StringP("output", "o", "", "output directory (overrides the manifest)")
	generateCmd.Flags().Bool("no-cache", false, "disable the persistent disk cache")
	generateCmd.Flags().Bool("print", false, "print generated code instead of writing files")
}

// runConfig is what a run needs after manifest and flags are merged.
type runConfig struct {
	files  []string
	output string
	cfg    project.Config
}

// resolveRun merges the manifest (if any) with positional files and flags.
func resolveRun(cmd *cobra.Command, args []string) (runConfig, error) {
	wd, err := os.Getwd()
	if err != nil {
		return runConfig{}, err
	}
	manifest, found, err := project.LoadManifest(wd)
	if err != nil {
		return runConfig{}, err
	}

	rc := runConfig{cfg: project.DefaultConfig()}
	if found {
		rc.cfg = manifest.Config
		rc.output = manifest.OutputDir()
	} else {
		rc.output = filepath.Join(wd, rc.cfg.Generate.Output)
	}

	switch {
	case len(args) > 0:
		rc.files = args
	case found:
		if rc.files, err = manifest.Inputs(); err != nil {
			return runConfig{}, err
		}
	default:
		return runConfig{}, fmt.Errorf("no input files and no %s found (run `mocksmith init`)", project.ManifestName)
	}

	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		rc.output = f.Value.String()
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return runConfig{}, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs > 0 {
		rc.cfg.Generate.Jobs = jobs
	}
	return rc, nil
}

// runGenerate drives generate and check; dryRun skips writing and caching.
func runGenerate(cmd *cobra.Command, args []string, dryRun bool) error {
	defer dumpTraceOnPanic()

	flags := cmd.Root().PersistentFlags()
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timingsFlag, err := flags.GetString("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	timingsMode, err := readTimingsMode(timingsFlag)
	if err != nil {
		return err
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	report, err := readReportOptions(cmd)
	if err != nil {
		return err
	}

	printOnly := false
	noCache := true
	if !dryRun {
		if printOnly, err = cmd.Flags().GetBool("print"); err != nil {
			return fmt.Errorf("failed to get print flag: %w", err)
		}
		if noCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
			return fmt.Errorf("failed to get no-cache flag: %w", err)
		}
	}

	rc, err := resolveRun(cmd, args)
	if err != nil {
		if diag.CodeOf(err) == diag.UnknownCode {
			return err
		}
		bag := diag.NewBag(report.max)
		bag.AddError("", err)
		if rerr := reportDiagnostics(cmd.OutOrStdout(), cmd.ErrOrStderr(), bag, report, os.Args[1:]); rerr != nil {
			return rerr
		}
		return errFailed
	}

	timer := observ.NewTimer()
	req := driver.Request{
		Files:          rc.files,
		OutputDir:      rc.output,
		Extension:      rc.cfg.Generate.Extension,
		DryRun:         dryRun || printOnly,
		Jobs:           rc.cfg.Generate.Jobs,
		MaxDiagnostics: report.max,
		Double: driver.Options{
			Suffix:             rc.cfg.Generate.Suffix,
			IsolationAttribute: rc.cfg.Double.IsolationAttribute,
			StdModule:          rc.cfg.Double.StdModule,
		},
		Timer: timer,
	}
	if !noCache && !req.DryRun {
		cache, cerr := driver.OpenDiskCache("mocksmith")
		if cerr != nil && !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: disk cache disabled: %v\n", cerr)
		}
		req.Cache = cache
	}

	var results []driver.FileResult
	recorder := &pipeline.Recorder{}
	if shouldUseTUI(mode, quiet, len(rc.files)) {
		title := "generating"
		if req.DryRun {
			title = "checking"
		}
		results, err = runGenerateWithUI(cmd.Context(), title, req)
	} else {
		req.Sink = recorder
		results, err = driver.Generate(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	bag := diag.NewBag(report.max)
	for i := range results {
		bag.Merge(results[i].Bag)
	}
	bag.Dedup()
	if bag.Len() > 0 {
		if err := reportDiagnostics(cmd.OutOrStdout(), cmd.ErrOrStderr(), bag, report, os.Args[1:]); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if printOnly {
		for i := range results {
			if !results[i].Failed() {
				_, _ = out.Write(results[i].Content)
			}
		}
	}
	if !quiet && !printOnly && report.format == "pretty" {
		printSummary(out, results, recorder, dryRun)
	}
	if err := printTimings(cmd.ErrOrStderr(), timingsMode, cmd.Name(), timer, results); err != nil {
		return err
	}
	if bag.HasErrors() {
		return errFailed
	}
	return nil
}

func printSummary(out io.Writer, results []driver.FileResult, recorder *pipeline.Recorder, dryRun bool) {
	var doubles, failed, cached int
	for i := range results {
		if results[i].Failed() {
			failed++
			continue
		}
		doubles += len(results[i].Doubles)
		if !dryRun && results[i].Output != "" {
			fmt.Fprintf(out, "  %s -> %s\n", relPath(results[i].Path), relPath(results[i].Output))
		}
	}
	// событий нет, когда работал TUI
	for _, ev := range recorder.Events() {
		if ev.Status == pipeline.StatusCached {
			cached++
		}
	}
	verb := "generated"
	if dryRun {
		verb = "checked"
	}
	fmt.Fprintf(out, "%s %d doubles from %d files", verb, doubles, len(results)-failed)
	if cached > 0 {
		fmt.Fprintf(out, " (%d cached)", cached)
	}
	if failed > 0 {
		fmt.Fprintf(out, ", %d files failed", failed)
	}
	fmt.Fprintln(out)
}

func relPath(p string) string {
	wd, err := os.Getwd()
	if err != nil {
		return p
	}
	if r, err := filepath.Rel(wd, p); err == nil {
		return r
	}
	return p
}
