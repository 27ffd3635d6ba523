package lexer

// Input is the lookahead surface a host tokenizer hands to the block-string
// scanner. It mirrors what incremental parser runtimes expose to external
// scanners: one codepoint of lookahead and a destructive advance.
type Input interface {
	// Lookahead returns the current codepoint, or 0 at end of input.
	Lookahead() rune
	// EOF reports whether the input is exhausted (or cancelled).
	EOF() bool
	// Advance consumes the current codepoint. skip marks it as not part of
	// the token text for hosts that track that distinction.
	Advance(skip bool)
	// Column is the 0-based byte column of the lookahead. Diagnostic only.
	Column() uint32
}
