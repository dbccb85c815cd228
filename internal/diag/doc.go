// Package diag defines the diagnostic model shared by the reader front ends.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string
//     form: LEX for lexeme classification, SYN for list structure, IO for
//     loading and caching, OBS for timings.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span pointing at the offending lexeme, or at
//     the opening '(' for an unclosed list.
//   - Notes – optional secondary spans/messages.
//   - Fixes – optional textual edits, e.g. "insert ')'".
//
// # Emitting diagnostics
//
// Producers report through a Reporter so emission is decoupled from storage.
// ReportBuilder (NewReportBuilder, ReportError, ReportWarning) chains
// WithNote / WithFix before Emit. BagReporter collects into a Bag, which
// supports a limit, sorting and deduplication.
//
// Package diag does no formatting beyond the one-line short form; rendering
// lives in internal/diagfmt.
package diag
