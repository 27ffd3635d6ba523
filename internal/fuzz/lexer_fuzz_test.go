package fuzztests

import (
	"strings"
	"testing"

	"jsonnetlex/internal/diag"
	"jsonnetlex/internal/lexer"
	"jsonnetlex/internal/source"
	"jsonnetlex/internal/testkit"
	"jsonnetlex/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.jsonnet", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		var toks []token.Token
		for {
			tok := lx.Next()
			toks = append(toks, tok)
			if tok.Kind.IsEOF() {
				break
			}
		}
		if err := testkit.CheckTokenInvariants(toks, file, lexer.BlockOptions{}); err != nil {
			t.Fatalf("invariants: %v", err)
		}
	})
}

// FuzzBlockString runs the scanner on "|||\n" + input and checks that a
// match is reproducible through Inspect and that a mismatch leaves the
// cursor untouched.
func FuzzBlockString(f *testing.F) {
	f.Add([]byte("  a\n  |||"))
	f.Add([]byte("\n\n\tx\n\ty\n |||"))
	f.Add([]byte("  a\n b\n"))
	f.Add([]byte("x\n|||"))
	f.Add([]byte("  a\n  ||||"))
	f.Add([]byte(" a\n|||"))
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		src := append([]byte("|||\n"), input...)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("block.jsonnet", src))
		cur := lexer.NewCursor(file)
		before := cur

		blk, ok := lexer.ScanBlockString(&cur, token.NewSet(token.BlockString), lexer.BlockOptions{Opener: lexer.OpenerIncluded})
		if !ok {
			if cur != before {
				t.Fatalf("cursor moved on mismatch: %d -> %d", before.Off, cur.Off)
			}
			return
		}
		if blk.Span.Start != 0 || blk.Span.End != cur.Off {
			t.Fatalf("span %v, cursor at %d", blk.Span, cur.Off)
		}
		if blk.Indent == "" {
			t.Fatalf("match with empty indentation")
		}
		raw := string(src[blk.Span.Start:blk.Span.End])
		if !strings.HasSuffix(raw, "|||") {
			t.Fatalf("match does not end with closer: %q", raw)
		}
		again, err := lexer.Inspect(raw, lexer.BlockOptions{})
		if err != nil {
			t.Fatalf("Inspect(%q): %v", raw, err)
		}
		if again.Body != blk.Body || again.Indent != blk.Indent {
			t.Fatalf("Inspect mismatch: %q/%q vs %q/%q", again.Indent, again.Body, blk.Indent, blk.Body)
		}
	})
}
