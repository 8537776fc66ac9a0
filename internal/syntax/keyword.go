package syntax

// Reserved words. They lex as Ident and are told apart by text.
const (
	KeywordStruct = "struct"
	KeywordUse    = "use"
)

// IsKeyword reports whether text is a reserved word.
func IsKeyword(text string) bool {
	return text == KeywordStruct || text == KeywordUse
}
