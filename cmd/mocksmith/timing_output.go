package main

import (
	"fmt"
	"io"
	"time"

	"mocksmith/internal/driver"
	"mocksmith/internal/observ"
	"mocksmith/internal/pipeline"
)

func readTimingsMode(value string) (string, error) {
	switch value {
	case "", "text", "json":
		return value, nil
	}
	return "", fmt.Errorf("invalid --timings value %q (expected text|json)", value)
}

// printTimings writes the run timer and stage totals in the requested mode.
func printTimings(out io.Writer, mode, kind string, timer *observ.Timer, results []driver.FileResult) error {
	switch mode {
	case "":
		return nil
	case "json":
		raw, err := driver.Timings(kind, timer, results).JSON()
		if err != nil {
			return fmt.Errorf("encode timings: %w", err)
		}
		_, err = fmt.Fprintf(out, "%s\n", raw)
		return err
	}
	if _, err := io.WriteString(out, timer.Summary()); err != nil {
		return err
	}
	return printStageTimings(out, results)
}

// printStageTimings sums each stage over all files.
func printStageTimings(out io.Writer, results []driver.FileResult) error {
	var total pipeline.Timings
	for i := range results {
		for _, s := range pipeline.Stages {
			if results[i].Timings.Has(s) {
				total.Add(s, results[i].Timings.Duration(s))
			}
		}
	}
	for _, s := range pipeline.Stages {
		if !total.Has(s) {
			continue
		}
		if _, err := fmt.Fprintf(out, "  %-20s %7.2f ms  // all files\n", s, toMillis(total.Duration(s))); err != nil {
			return err
		}
	}
	return nil
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
