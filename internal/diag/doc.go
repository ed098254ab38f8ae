// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string
//     form: LEXxxxx for the tokenizer, SYNxxxx for the statement grammar,
//     IOxxxx for file loading, PRJxxxx for the bl.toml manifest.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span pointing at the offending token.
//   - Notes – optional secondary spans/messages.
//   - Fixes – optional text edits that would repair the input.
//
// The parser itself never writes diagnostics: it fails fast with a typed
// error, and the driver turns that error into exactly one Diagnostic.
// The tokenizer reports through a Reporter, usually a BagReporter.
//
// Package diag does not format or print anything; rendering lives in
// internal/diagfmt.
package diag
