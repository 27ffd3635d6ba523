package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	KwAssert     // assert
	KwElse       // else
	KwError      // error
	KwFalse      // false
	KwFor        // for
	KwFunction   // function
	KwIf         // if
	KwImport     // import
	KwImportbin  // importbin
	KwImportstr  // importstr
	KwIn         // in
	KwLocal      // local
	KwNull       // null
	KwSelf       // self
	KwSuper      // super
	KwTailstrict // tailstrict
	KwThen       // then
	KwTrue       // true

	// NumberLit represents a number literal such as 0, 1.5 or 2e10.
	NumberLit
	// StringLit represents a double-quoted string literal.
	StringLit
	// BlockString represents a ||| ... ||| text block.
	BlockString

	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Assign     // =
	EqEq       // ==
	Bang       // !
	BangEq     // !=
	Tilde      // ~
	Lt         // <
	LtEq       // <=
	Gt         // >
	GtEq       // >=
	Shl        // <<
	Shr        // >>
	Amp        // &
	Pipe       // |
	Caret      // ^
	AndAnd     // &&
	OrOr       // ||
	Colon      // :
	ColonColon // ::
	Colon3     // :::
	Semicolon  // ;
	Comma      // ,
	Dot        // .
	Dollar     // $
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]

	kindCount
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Ident:        "Ident",
	KwAssert:     "KwAssert",
	KwElse:       "KwElse",
	KwError:      "KwError",
	KwFalse:      "KwFalse",
	KwFor:        "KwFor",
	KwFunction:   "KwFunction",
	KwIf:         "KwIf",
	KwImport:     "KwImport",
	KwImportbin:  "KwImportbin",
	KwImportstr:  "KwImportstr",
	KwIn:         "KwIn",
	KwLocal:      "KwLocal",
	KwNull:       "KwNull",
	KwSelf:       "KwSelf",
	KwSuper:      "KwSuper",
	KwTailstrict: "KwTailstrict",
	KwThen:       "KwThen",
	KwTrue:       "KwTrue",
	NumberLit:    "NumberLit",
	StringLit:    "StringLit",
	BlockString:  "BlockString",
	Plus:         "Plus",
	Minus:        "Minus",
	Star:         "Star",
	Slash:        "Slash",
	Percent:      "Percent",
	Assign:       "Assign",
	EqEq:         "EqEq",
	Bang:         "Bang",
	BangEq:       "BangEq",
	Tilde:        "Tilde",
	Lt:           "Lt",
	LtEq:         "LtEq",
	Gt:           "Gt",
	GtEq:         "GtEq",
	Shl:          "Shl",
	Shr:          "Shr",
	Amp:          "Amp",
	Pipe:         "Pipe",
	Caret:        "Caret",
	AndAnd:       "AndAnd",
	OrOr:         "OrOr",
	Colon:        "Colon",
	ColonColon:   "ColonColon",
	Colon3:       "Colon3",
	Semicolon:    "Semicolon",
	Comma:        "Comma",
	Dot:          "Dot",
	Dollar:       "Dollar",
	LParen:       "LParen",
	RParen:       "RParen",
	LBrace:       "LBrace",
	RBrace:       "RBrace",
	LBracket:     "LBracket",
	RBracket:     "RBracket",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsEOF reports whether k marks the end of input.
func (k Kind) IsEOF() bool { return k == EOF }
