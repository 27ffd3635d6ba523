package lexer

import (
	"jsonnetlex/internal/diag"
	"jsonnetlex/internal/token"
)

// "..." с escape \" \\ \/ \b \f \n \r \t \uXXXX. Ошибки escape репортим,
// но литерал дочитываем до закрывающей кавычки.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		case '\\':
			lx.scanEscape()
			continue
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.BumpRune()
	}
	// EOF без закрывающей кавычки
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) scanEscape() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	if lx.cursor.EOF() {
		return
	}
	switch lx.cursor.Peek() {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		lx.cursor.Bump()
	case 'u':
		lx.cursor.Bump()
		for range 4 {
			if !isHex(lx.cursor.Peek()) {
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "\\u escape needs 4 hex digits")
				return
			}
			lx.cursor.Bump()
		}
	case '\n':
		// перевод строки оставляем для scanString
		lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "invalid escape sequence")
	default:
		lx.cursor.BumpRune()
		lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "invalid escape sequence")
	}
}
