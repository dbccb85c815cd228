// Package trace is the event log of the lread pipeline.
//
// Every command can emit span and point events describing which files were
// read, how long each one took and where the cache hit. Events go to a
// stream (stderr or a file), to an in-memory ring kept for crash dumps, or
// to both.
//
// # Usage
//
//	lread parse --trace=- --trace-level=detail src/
//
// # Levels
//
//   - LevelOff: nothing is recorded
//   - LevelError: only the crash dump path
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything, including per-form events
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "read", parentID)
//	defer span.End("")
package trace
