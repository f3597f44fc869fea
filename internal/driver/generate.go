package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"mocksmith/internal/decl"
	"mocksmith/internal/defs"
	"mocksmith/internal/diag"
	"mocksmith/internal/format"
	"mocksmith/internal/observ"
	"mocksmith/internal/pipeline"
	"mocksmith/internal/project"
	"mocksmith/internal/trace"
)

// GeneratedHeader opens every generated file.
const GeneratedHeader = "Code generated by mocksmith. DO NOT EDIT."

// Request describes one generation run.
type Request struct {
	Files []string
	// OutputDir receives one file per input. Empty with DryRun.
	OutputDir string
	Extension string
	// DryRun synthesizes and renders without writing or touching the cache.
	DryRun         bool
	Jobs           int
	MaxDiagnostics int

	Double Options
	Format format.Options

	Cache *DiskCache
	Sink  pipeline.ProgressSink
	Timer *observ.Timer
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path    string
	Output  string // written path, empty on failure or DryRun
	Doubles []string
	Content []byte
	Cached  bool
	Bag     *diag.Bag
	Timings pipeline.Timings
}

// Failed reports whether the file produced errors.
func (r *FileResult) Failed() bool { return r.Bag != nil && r.Bag.HasErrors() }

// Generate runs every file through load, synthesize, render and write.
// Files run in parallel; results keep the order of req.Files. The returned
// error covers cancellation and setup problems only: per-file problems are
// in each FileResult's Bag.
func Generate(ctx context.Context, req Request) ([]FileResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "generate")
	defer span.End("")

	if req.Extension == "" {
		req.Extension = project.DefaultExtension
	}
	req.Double = req.Double.withDefaults()
	req.Format.Header = []string{GeneratedHeader}

	outputs, err := outputPaths(req)
	if err != nil {
		return nil, err
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]FileResult, len(req.Files))
	if len(req.Files) == 0 {
		return results, nil
	}

	for _, f := range req.Files {
		pipeline.Emit(req.Sink, pipeline.Event{File: f, Status: pipeline.StatusQueued})
	}

	var phase int
	if req.Timer != nil {
		phase = req.Timer.Begin("generate")
	}
	builder := NewBuilder(req.Double)
	fingerprint := optionsDigest(req)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Files)))
	for i, path := range req.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// индекс уникален для горутины, мьютекс не нужен
			results[i] = generateFile(gctx, builder, req, path, outputs[i], fingerprint)
			return nil
		})
	}
	err = g.Wait()
	if req.Timer != nil {
		req.Timer.End(phase, fmt.Sprintf("%d files", len(req.Files)))
	}
	if err != nil {
		return results, err
	}

	failed := 0
	for i := range results {
		if results[i].Failed() {
			failed++
		}
	}
	span.WithExtra("files", fmt.Sprint(len(results))).WithExtra("failed", fmt.Sprint(failed))
	return results, nil
}

func generateFile(ctx context.Context, b *Builder, req Request, path, output string, fingerprint project.Digest) FileResult {
	ctx, span := trace.Start(ctx, trace.ScopePass, "file:"+filepath.Base(path))
	defer span.End("")

	res := FileResult{Path: path, Bag: diag.NewBag(req.MaxDiagnostics)}
	stage := func(s pipeline.Stage, fn func() bool) bool {
		pipeline.Emit(req.Sink, pipeline.Event{File: path, Stage: s, Status: pipeline.StatusWorking})
		start := time.Now()
		ok := fn()
		elapsed := time.Since(start)
		res.Timings.Add(s, elapsed)
		if !ok {
			pipeline.Emit(req.Sink, pipeline.Event{File: path, Stage: s, Status: pipeline.StatusError, Elapsed: elapsed})
		}
		return ok
	}

	var data []byte
	if !stage(pipeline.StageLoad, func() bool {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			res.Bag.Add(diag.NewError(diag.IOReadFailure, fmt.Sprintf("read definitions: %v", err)).InFile(path))
			return false
		}
		return true
	}) {
		return res
	}

	key := project.Combine(project.Sum(data), fingerprint)
	if !req.DryRun {
		if payload, ok, err := req.Cache.Get(key); err == nil && ok {
			if werr := writeOutput(output, payload.Content); werr == nil {
				res.Output, res.Content, res.Doubles, res.Cached = output, payload.Content, payload.Doubles, true
				span.WithExtra("cache", "hit")
				pipeline.Emit(req.Sink, pipeline.Event{File: path, Stage: pipeline.StageWrite, Status: pipeline.StatusCached})
				return res
			}
		} else if err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopePass, "cache", err.Error(), span.ID())
		}
	}

	var doubles []decl.Decl
	if !stage(pipeline.StageSynthesize, func() bool {
		for _, d := range defs.Parse(path, data, res.Bag) {
			dbl, err := b.Build(ctx, d)
			if err != nil {
				res.Bag.AddError(path, err)
				continue
			}
			doubles = append(doubles, dbl.Class)
			res.Doubles = append(res.Doubles, dbl.Class.Name)
		}
		// all-or-nothing: a file with any failing interface yields no output
		return !res.Bag.HasErrors()
	}) {
		return res
	}

	stage(pipeline.StageRender, func() bool {
		res.Content = format.File(doubles, req.Format)
		return true
	})

	if req.DryRun {
		pipeline.Emit(req.Sink, pipeline.Event{File: path, Stage: pipeline.StageRender, Status: pipeline.StatusDone})
		return res
	}
	if !stage(pipeline.StageWrite, func() bool {
		if err := writeOutput(output, res.Content); err != nil {
			res.Bag.Add(diag.NewError(diag.IOWriteFailure, err.Error()).InFile(path))
			return false
		}
		return true
	}) {
		return res
	}
	res.Output = output
	if err := req.Cache.Put(key, &CachePayload{Source: path, Doubles: res.Doubles, Content: res.Content}); err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopePass, "cache", err.Error(), span.ID())
	}
	pipeline.Emit(req.Sink, pipeline.Event{File: path, Stage: pipeline.StageWrite, Status: pipeline.StatusDone})
	return res
}
