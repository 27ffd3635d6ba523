package lexer

import (
	"jsonnetlex/internal/diag"
	"jsonnetlex/internal/token"
)

// multi-byte operators, longest first
var compoundOps = []struct {
	seq  string
	kind token.Kind
}{
	{":::", token.Colon3},
	{"::", token.ColonColon},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"<<", token.Shl},
	{">>", token.Shr},
}

var singleOps = [128]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash,
	'%': token.Percent, '=': token.Assign, '!': token.Bang, '~': token.Tilde,
	'<': token.Lt, '>': token.Gt, '&': token.Amp, '|': token.Pipe,
	'^': token.Caret, ':': token.Colon, ';': token.Semicolon, ',': token.Comma,
	'.': token.Dot, '$': token.Dollar,
	'(': token.LParen, ')': token.RParen,
	'{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
}

// scanOperatorOrPunct takes the longest operator at the cursor.
// "|||" only gets here when text blocks are not allowed: it lexes as "||" "|".
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	kind := token.Invalid
	for _, op := range compoundOps {
		if lx.eat(op.seq) {
			kind = op.kind
			break
		}
	}
	if kind == token.Invalid {
		if b := lx.cursor.Peek(); b < 128 && singleOps[b] != token.Invalid {
			lx.cursor.Bump()
			kind = singleOps[b]
		}
	}

	if kind == token.Invalid {
		// неизвестный символ: для не-ASCII съедаем руну целиком
		lx.cursor.BumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	tok := token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	if kind == token.Invalid {
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	}
	return tok
}
