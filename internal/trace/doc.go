// Package trace provides the structured event log of jsonnetlex.
//
// Events are emitted by the driver, by each lexing pass and, at debug level,
// by the lexer itself (for example when a text block fails to scan).
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	jsonnetlex check --trace=- --trace-level=detail ./lib
//
// # Architecture
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to a file or stderr
//   - RingTracer: circular buffer, dumped when a command fails
//   - MultiTracer: fan-out to several tracers
//
// # Scopes
//
//   - ScopeDriver: top-level CLI operations
//   - ScopePass: one tokenize pass
//   - ScopeFile: per-file processing inside a check
//   - ScopeToken: individual token decisions (debug only)
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "check")
//	defer span.End("")
//
// StartSpan parents the new span under trace.CurrentSpan(ctx); use Begin
// directly when the parent ID is already at hand.
package trace
