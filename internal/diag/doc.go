// Package diag defines the diagnostic model shared by the parser, the
// definition loader, the synthesizer and the CLI.
//
// Diagnostic is the central record: severity, a numeric Code with a stable
// string form (SYN/DEF/GEN/IO/PRJ prefixes), a short message, and the
// location (file, owning interface, member). When a diagnostic comes from
// parsing a type or signature, Snippet holds the parsed fragment and Primary
// the offending byte range inside it.
//
// Producers return *Error (which wraps a Diagnostic) so callers can switch on
// the code with CodeOf or errors.Is. The CLI collects them into a Bag and
// renders through internal/diagfmt.
package diag
