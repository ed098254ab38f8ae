// Package trace records what the toolchain is doing while it runs.
//
// Enable tracing via command-line flags:
//
//	blc check --trace=- --trace-level=phase ./src
//
// A Tracer receives span begin/end events and instant points. Verbosity is
// controlled by Level, granularity by Scope:
//
//   - ScopeDriver: a whole CLI command
//   - ScopePass: tokenize, parse, cache lookups
//   - ScopeFile: one source file
//   - ScopeNode: parser productions (LevelDebug only)
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
