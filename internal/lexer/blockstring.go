package lexer

import (
	"strings"
	"unicode"

	"jsonnetlex/internal/source"
	"jsonnetlex/internal/token"
)

// DefaultMaxIndent bounds the indentation template, in codepoints.
const DefaultMaxIndent = 4096

// OpenerMode selects who consumes the leading "|||".
type OpenerMode uint8

const (
	// OpenerConsumed: the caller already consumed "|||"; scanning starts right after it.
	OpenerConsumed OpenerMode = iota
	// OpenerIncluded: the scanner consumes exactly three '|' itself.
	OpenerIncluded
)

func (m OpenerMode) String() string {
	switch m {
	case OpenerConsumed:
		return "consumed"
	case OpenerIncluded:
		return "included"
	default:
		return "unknown"
	}
}

// BlockOptions tunes a single block-string scan. The zero value is the
// host-lexer configuration: opener consumed, DefaultMaxIndent.
type BlockOptions struct {
	Opener OpenerMode
	// MaxIndent is the longest template accepted; <= 0 means DefaultMaxIndent.
	MaxIndent int
}

func (o BlockOptions) maxIndent() int {
	if o.MaxIndent <= 0 {
		return DefaultMaxIndent
	}
	return o.MaxIndent
}

// Block is a matched text block.
type Block struct {
	// Span covers everything consumed by the scan: from the cursor position
	// at the call through the closing bars.
	Span source.Span
	// Indent is the captured indentation template.
	Indent string
	// Body is the dedented value: every content line without the template,
	// newline kept, blank lines as "\n".
	Body string
}

// blockFailure is the internal reason of a no-match. It is only traced.
type blockFailure uint8

const (
	blockOK blockFailure = iota
	failOpener
	failIndentEmpty
	failIndentLimit
	failEOF
	failCloser
)

func (f blockFailure) String() string {
	switch f {
	case blockOK:
		return "ok"
	case failOpener:
		return "bad opener"
	case failIndentEmpty:
		return "empty indentation"
	case failIndentLimit:
		return "indentation too long"
	case failEOF:
		return "unexpected end of input"
	case failCloser:
		return "bad closer"
	default:
		return "unknown"
	}
}

// isHWS reports horizontal whitespace: any space codepoint except newline.
func isHWS(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}

// ScanBlockString scans a text block at cur. It runs on a copy of the cursor
// and commits the advance only on a match; on no-match cur is unchanged.
// The scan is skipped entirely when valid lacks token.BlockString.
func ScanBlockString(cur *Cursor, valid token.Set, opts BlockOptions) (Block, bool) {
	b, fail := scanBlockString(cur, valid, opts)
	return b, fail == blockOK
}

func scanBlockString(cur *Cursor, valid token.Set, opts BlockOptions) (Block, blockFailure) {
	if !valid.Has(token.BlockString) {
		return Block{}, failOpener
	}
	work := *cur
	start := work.Mark()

	var body strings.Builder
	indent, fail := scanBlock(&work, opts, &body)
	if fail != blockOK {
		return Block{}, fail
	}
	*cur = work
	return Block{
		Span:   work.SpanFrom(start),
		Indent: string(indent),
		Body:   body.String(),
	}, blockOK
}

// ScanExternal runs the scanner over a host-owned destructive input.
// The input is advanced even when the scan fails.
func ScanExternal(in Input, valid token.Set, opts BlockOptions) bool {
	if !valid.Has(token.BlockString) {
		return false
	}
	_, fail := scanBlock(in, opts, nil)
	return fail == blockOK
}

// External adapts the scanner to hosts with an external-scanner lifecycle.
// It carries no state, so the serialization hooks are no-ops.
type External struct {
	Options BlockOptions
}

// Serialize writes nothing and returns 0.
func (External) Serialize([]byte) int { return 0 }

// Deserialize ignores its input.
func (External) Deserialize([]byte) {}

// Scan is ScanExternal with the adapter's options.
func (e External) Scan(in Input, valid token.Set) bool {
	return ScanExternal(in, valid, e.Options)
}

// scanBlock is the scanner core. It returns the template on success.
// When body is non-nil the dedented value is written to it.
func scanBlock(in Input, opts BlockOptions, body *strings.Builder) ([]rune, blockFailure) {
	if opts.Opener == OpenerIncluded {
		for range 3 {
			if in.EOF() || in.Lookahead() != '|' {
				return nil, failOpener
			}
			in.Advance(false)
		}
	}

	// rest of the opener line may only hold whitespace
	for !in.EOF() && isHWS(in.Lookahead()) {
		in.Advance(true)
	}
	if in.EOF() {
		return nil, failEOF
	}
	if in.Lookahead() != '\n' {
		return nil, failOpener
	}
	in.Advance(false)

	if !skipBlankLines(in, body) {
		return nil, failEOF
	}

	limit := opts.maxIndent()
	indent := make([]rune, 0, min(limit, 16))
	for !in.EOF() && isHWS(in.Lookahead()) {
		if len(indent) >= limit {
			return nil, failIndentLimit
		}
		indent = append(indent, in.Lookahead())
		in.Advance(false)
	}
	if in.EOF() {
		return nil, failEOF
	}
	if len(indent) == 0 {
		return nil, failIndentEmpty
	}
	if !copyLine(in, body) {
		return nil, failEOF
	}

	for {
		if in.EOF() {
			return nil, failEOF
		}
		if in.Lookahead() == '\n' {
			in.Advance(false)
			if body != nil {
				body.WriteByte('\n')
			}
			continue
		}

		matched := 0
		for matched < len(indent) && !in.EOF() && in.Lookahead() == indent[matched] {
			in.Advance(false)
			matched++
		}
		if matched == len(indent) {
			if !copyLine(in, body) {
				return nil, failEOF
			}
			continue
		}

		// dedented line: only a closer is acceptable
		for !in.EOF() && isHWS(in.Lookahead()) {
			in.Advance(false)
		}
		if in.EOF() {
			return nil, failEOF
		}
		bars := 0
		for !in.EOF() && in.Lookahead() == '|' && bars < 4 {
			in.Advance(false)
			bars++
		}
		if bars != 3 {
			return nil, failCloser
		}
		return indent, blockOK
	}
}

// skipBlankLines consumes lines that are exactly "\n". It reports false at EOF.
func skipBlankLines(in Input, body *strings.Builder) bool {
	for !in.EOF() && in.Lookahead() == '\n' {
		in.Advance(false)
		if body != nil {
			body.WriteByte('\n')
		}
	}
	return !in.EOF()
}

// copyLine consumes the rest of a content line including its newline.
// It reports false when the input ends before the newline.
func copyLine(in Input, body *strings.Builder) bool {
	for !in.EOF() {
		r := in.Lookahead()
		in.Advance(false)
		if body != nil {
			body.WriteRune(r)
		}
		if r == '\n' {
			return true
		}
	}
	return false
}
