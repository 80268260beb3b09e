// Package trace records what cppedit is doing: command boundaries, per-file
// formatting and LSP traffic.
//
// # Usage
//
//	cppedit fmt --trace=- --trace-level=file src/
//	cppedit lsp --trace=/tmp/lsp.ndjson --trace-level=debug
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only spans that ended with an error
//   - LevelCommand: CLI command boundaries
//   - LevelFile: per-file and per-buffer work
//   - LevelDebug: everything including single LSP messages
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+path)
//	defer span.End("")
package trace
