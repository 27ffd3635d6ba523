package lexer

import (
	"errors"

	"jsonnetlex/internal/source"
	"jsonnetlex/internal/token"
)

// ErrNotBlockString is returned by Unquote when raw is not exactly one text block.
var ErrNotBlockString = errors.New("not a block string")

// Unquote returns the value of a raw text block, opener and closer included,
// as produced by the lexer for a token.BlockString. opts.Opener is ignored.
func Unquote(raw string, opts BlockOptions) (string, error) {
	b, err := Inspect(raw, opts)
	if err != nil {
		return "", err
	}
	return b.Body, nil
}

// Inspect scans raw in isolation, opener included, and requires the match
// to cover all of it. The returned Span is relative to raw.
func Inspect(raw string, opts BlockOptions) (Block, error) {
	f := &source.File{Path: "<block>", Content: []byte(raw), Flags: source.FileVirtual}
	cur := NewCursor(f)
	opts.Opener = OpenerIncluded
	b, ok := ScanBlockString(&cur, token.NewSet(token.BlockString), opts)
	if !ok || !cur.EOF() {
		return Block{}, ErrNotBlockString
	}
	return b, nil
}
