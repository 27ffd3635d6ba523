package token

import (
	"jsonnetlex/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a number, string, or keyword literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, BlockString, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsString reports whether the token is any kind of string literal.
func (t Token) IsString() bool {
	return t.Kind == StringLit || t.Kind == BlockString
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind < kindCount
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAssert && t.Kind <= KwTrue
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
