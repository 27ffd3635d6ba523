package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"jsonnetlex/internal/lexer"
	"jsonnetlex/internal/source"
	"jsonnetlex/internal/token"
)

// CheckTokenInvariants runs the token stream invariants on a fully lexed file:
// 1) the stream ends with exactly one EOF, placed at the end of content
// 2) every span belongs to sf, is in bounds and Text equals the covered source
// 3) tokens and their leading trivia are contiguous and strictly ordered
// 4) every BlockString token re-scans on its own with opts
func CheckTokenInvariants(tokens []token.Token, sf *source.File, opts lexer.BlockOptions) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	// 1) EOF
	last := tokens[len(tokens)-1]
	if last.Kind != token.EOF {
		return fmt.Errorf("stream ends with %v, want EOF", last.Kind)
	}
	if last.Span.Start != last.Span.End || last.Span.End != lenContent {
		return fmt.Errorf("EOF span %v, want empty at %d", last.Span, lenContent)
	}

	var pos uint32
	for i, tok := range tokens[:len(tokens)-1] {
		if tok.Kind == token.EOF {
			return fmt.Errorf("token %d: EOF before end of stream", i)
		}

		// 3) leading trivia fills the gap from the previous token
		for j, tr := range tok.Leading {
			if err := checkSpan(tr.Span, tr.Text, sf, lenContent); err != nil {
				return fmt.Errorf("token %d trivia %d: %w", i, j, err)
			}
			if tr.Span.Start != pos {
				return fmt.Errorf("token %d trivia %d starts at %d, want %d", i, j, tr.Span.Start, pos)
			}
			pos = tr.Span.End
		}

		// 2) span
		if err := checkSpan(tok.Span, tok.Text, sf, lenContent); err != nil {
			return fmt.Errorf("token %d (%v): %w", i, tok.Kind, err)
		}
		if tok.Span.Empty() {
			return fmt.Errorf("token %d (%v): empty span %v", i, tok.Kind, tok.Span)
		}
		if tok.Span.Start != pos {
			return fmt.Errorf("token %d (%v) starts at %d, want %d", i, tok.Kind, tok.Span.Start, pos)
		}
		pos = tok.Span.End

		// 4) text block
		if tok.Kind == token.BlockString {
			if _, err := lexer.Inspect(tok.Text, opts); err != nil {
				return fmt.Errorf("token %d: block string %v does not re-scan: %w", i, tok.Span, err)
			}
		}
	}
	return nil
}

func checkSpan(sp source.Span, text string, sf *source.File, lenContent uint32) error {
	if sp.File != sf.ID {
		return fmt.Errorf("span file mismatch: got=%d want=%d", sp.File, sf.ID)
	}
	if sp.Start > sp.End || sp.End > lenContent {
		return fmt.Errorf("span %v out of bounds (len %d)", sp, lenContent)
	}
	if got := string(sf.Content[sp.Start:sp.End]); got != text {
		return fmt.Errorf("span %v text %q, source %q", sp, text, got)
	}
	return nil
}
