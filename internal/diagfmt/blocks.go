package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"jsonnetlex/internal/lexer"
	"jsonnetlex/internal/source"
	"jsonnetlex/internal/token"
)

// BlockInfo describes one text block found in a token stream.
type BlockInfo struct {
	Start  source.LineCol
	End    source.LineCol
	Indent string
	Value  string
}

// CollectBlocks re-inspects every BlockString token.
func CollectBlocks(tokens []token.Token, fs *source.FileSet, opts lexer.BlockOptions) []BlockInfo {
	var out []BlockInfo
	for _, tok := range tokens {
		if tok.Kind != token.BlockString {
			continue
		}
		b, err := lexer.Inspect(tok.Text, opts)
		if err != nil {
			continue
		}
		start, end := fs.Resolve(tok.Span)
		out = append(out, BlockInfo{Start: start, End: end, Indent: b.Indent, Value: b.Body})
	}
	return out
}

// FormatBlocks печатает text blocks: позиция, шаблон отступа, значение.
//
//	path:3:9-6:4 indent="  "
//	  | first line
//	  | second line
func FormatBlocks(w io.Writer, path string, blocks []BlockInfo) error {
	for _, b := range blocks {
		if _, err := fmt.Fprintf(w, "%s:%d:%d-%d:%d indent=%s\n",
			path, b.Start.Line, b.Start.Col, b.End.Line, b.End.Col, strconv.Quote(b.Indent)); err != nil {
			return err
		}
		for _, line := range strings.SplitAfter(b.Value, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintf(w, "  | %s\n", strings.TrimSuffix(line, "\n"))
		}
	}
	return nil
}
