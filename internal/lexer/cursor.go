package lexer

import (
	"context"
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"jsonnetlex/internal/source"
)

// Cursor представляет собой позицию в файле.
// Cursor is a value type: copying it is how callers snapshot a position.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32

	done <-chan struct{}
}

var _ Input = (*Cursor)(nil)

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Off:   0,
		Limit: limit,
	}
}

// WithContext returns a copy of the cursor that reports EOF once ctx is done.
func (c Cursor) WithContext(ctx context.Context) Cursor {
	if ctx != nil {
		c.done = ctx.Done()
	}
	return c
}

func (c *Cursor) limit() uint32 {
	if c.Limit != 0 {
		return c.Limit
	}
	lenFileContent, err := safecast.Conv[uint32](len(c.File.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return lenFileContent
}

// EOF проверяет, достигнут ли конец файла (или отменён контекст).
func (c *Cursor) EOF() bool {
	if c.Off >= c.limit() {
		return true
	}
	if c.done != nil {
		select {
		case <-c.done:
			return true
		default:
		}
	}
	return false
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.EOF() || c.Off+1 >= c.limit() {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// Peek3 читает три байта вперёд, если есть, иначе возвращает 0, 0, 0, false
func (c *Cursor) Peek3() (b0, b1, b2 byte, ok bool) {
	if c.EOF() || c.Off+2 >= c.limit() {
		return 0, 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], c.File.Content[c.Off+2], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// PeekRune decodes the codepoint at the cursor. Invalid UTF-8 decodes as
// utf8.RuneError of width 1; size is 0 only at EOF.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	b := c.File.Content[c.Off]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.limit()])
}

// BumpRune advances past one codepoint.
func (c *Cursor) BumpRune() {
	_, sz := c.PeekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	c.Off += usz
}

// Lookahead implements Input.
func (c *Cursor) Lookahead() rune {
	r, sz := c.PeekRune()
	if sz == 0 {
		return 0
	}
	return r
}

// Advance implements Input. The cursor has no notion of skipped text:
// token spans are always taken from a Mark.
func (c *Cursor) Advance(bool) {
	c.BumpRune()
}

// Column implements Input.
func (c *Cursor) Column() uint32 {
	i := c.Off
	for i > 0 && c.File.Content[i-1] != '\n' {
		i--
	}
	return c.Off - i
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}
