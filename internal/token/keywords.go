package token

var keywords = map[string]Kind{
	"assert":     KwAssert,
	"else":       KwElse,
	"error":      KwError,
	"false":      KwFalse,
	"for":        KwFor,
	"function":   KwFunction,
	"if":         KwIf,
	"import":     KwImport,
	"importbin":  KwImportbin,
	"importstr":  KwImportstr,
	"in":         KwIn,
	"local":      KwLocal,
	"null":       KwNull,
	"self":       KwSelf,
	"super":      KwSuper,
	"tailstrict": KwTailstrict,
	"then":       KwThen,
	"true":       KwTrue,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
