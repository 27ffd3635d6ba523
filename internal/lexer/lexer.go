package lexer

import (
	"jsonnetlex/internal/diag"
	"jsonnetlex/internal/source"
	"jsonnetlex/internal/token"
	"jsonnetlex/internal/trace"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// NewWithCursor starts lexing at an existing cursor, which may carry a context.
func NewWithCursor(cur Cursor, opts Options) *Lexer {
	return &Lexer{
		file:   cur.File,
		cursor: cur,
		opts:   opts,
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// Все виды токенов допустимы. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	return lx.NextIn(token.All)
}

// NextIn is Next restricted by the set of kinds the caller accepts here.
// Only token.BlockString is gated: without it "|||" lexes as "||" "|".
func (lx *Lexer) NextIn(valid token.Set) token.Token {
	// 1) Если есть look - вернуть его и очистить
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	// 2) collectLeadingTrivia() - набить lx.hold
	lx.collectLeadingTrivia()

	// 3) Если EOF → вернуть EOF (Leading из hold не приклеиваем к EOF)
	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
		}
	}

	// 4) Посмотреть текущий байт и выбрать сканер
	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	case ch == '|' && lx.atTripleBar() && lx.blockStringsOn(valid):
		tok = lx.scanTextBlock()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	// 5) В полученный token.Token положить Leading: lx.hold, обнулить hold
	if len(lx.hold) > 0 {
		tok.Leading = append([]token.Trivia(nil), lx.hold...)
	}
	lx.hold = lx.hold[:0]

	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) blockStringsOn(valid token.Set) bool {
	return !lx.opts.DisableBlockStrings && valid.Has(token.BlockString)
}

// scanTextBlock consumes the opener itself and hands the rest to the
// block-string scanner. On no-match only the opener is consumed.
func (lx *Lexer) scanTextBlock() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	lx.cursor.Bump()

	opts := lx.opts.Block
	opts.Opener = OpenerConsumed
	_, fail := scanBlockString(&lx.cursor, token.NewSet(token.BlockString), opts)
	sp := lx.cursor.SpanFrom(start)
	if fail != blockOK {
		trace.Point(lx.tracer(), trace.ScopeToken, "block_string", fail.String(), 0, map[string]string{
			"file": lx.file.Path,
			"span": sp.String(),
		})
		lx.errLex(diag.LexBadBlockString, sp, "malformed block string")
		return token.Token{Kind: token.Invalid, Span: sp, Text: "|||"}
	}
	return token.Token{Kind: token.BlockString, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
