// Package trace provides structured tracing for mocksmith runs.
//
// Tracing is the logging layer of the generator: every run, pass, interface
// and member can open a span, and spans are written as text or NDJSON.
//
//	mocksmith generate --trace=- --trace-level=detail defs/*.mock.yaml
//
// Tracers travel through the pipeline in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "synthesize")
//	defer span.End("")
//
// Levels:
//
//   - off: nothing
//   - error: kept in the ring buffer, dumped only when a run fails
//   - phase: driver and pass boundaries
//   - detail: one span per interface
//   - debug: one span per member; its end event carries MemberInfo
//     (recorder shape, whether erasure touched the signature)
//
// Heartbeats report how many files, interfaces and members are open and
// done, counted even for spans the level filters out.
package trace
