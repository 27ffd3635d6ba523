// Package token defines lexical token kinds and trivia for Jsonnet sources.
// Invariants:
//   - Token.Text is exactly the source text covered by Token.Span.
//   - A BlockString token spans from the opening "|||" through the closing "|||".
//   - Comments and whitespace never appear in the main token stream; they are
//     attached to the next significant token as Leading trivia.
//   - Set is the acceptance signal: the kinds a caller is currently willing to
//     accept at the cursor. Only context-sensitive scanners consult it.
package token
