// Package diag defines the diagnostic model shared by the lexer and the driver.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form (LEX1001, IO4001, ...), a short Message, the Primary span
// and optional Notes.
//
// Producers emit through a Reporter so that emission is decoupled from
// storage. BagReporter aggregates into a Bag, which is bounded, sortable and
// deduplicable. Rendering lives in internal/diagfmt; this package performs no
// formatting beyond the single-line digest used by tests and the CLI short
// output.
package diag
