package syntax

import (
	"iter"
	"unicode"
)

// Token is one lexed token with its absolute byte range.
type Token struct {
	Kind  TokenKind
	Range TextRange
	Text  string
}

var punctuation = map[rune]TokenKind{
	'{': CurlyOpen,
	'}': CurlyClose,
	'[': SquareOpen,
	']': SquareClose,
	'<': AngleOpen,
	'>': AngleClose,
	'(': ParenOpen,
	')': ParenClose,
	',': Comma,
	'.': Dot,
	'#': Hash,
	'?': Question,
	'=': Eq,
	':': Colon,
	';': Semicolon,
}

// Lexer splits a Source into tokens. It is total: every byte of input ends
// up in exactly one token.
type Lexer struct {
	src Source
}

// NewLexer returns a lexer reading from src.
func NewLexer(src Source) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next token, or false at the end of input.
func (l *Lexer) Next() (Token, bool) {
	start := l.src.Offset()
	r, _ := l.src.Next()
	if r == EOF {
		return Token{}, false
	}

	kind, ok := punctuation[r]
	if !ok {
		kind = l.scan(r)
	}

	end := l.src.Offset()
	return Token{
		Kind:  kind,
		Range: TextRange{Start: start, End: end},
		Text:  l.src.Slice(start, end),
	}, true
}

// All returns the remaining tokens as a sequence.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// scan consumes the rest of a multi-rune token whose first rune is r.
func (l *Lexer) scan(r rune) TokenKind {
	switch {
	case r == '"' || r == '\'':
		for {
			next, _ := l.src.Next()
			if next == EOF || next == r {
				return String
			}
		}
	case r == '/':
		if next, _ := l.src.Peek(); next != '/' {
			return Unknown
		}
		l.skipWhile(func(c rune) bool { return c != '\n' })
		return Comment
	case r == '\n':
		return NewLine
	case isSpace(r):
		l.skipWhile(isSpace)
		return Space
	case unicode.IsNumber(r):
		l.skipWhile(unicode.IsNumber)
		return Number
	case isIdentStart(r):
		l.skipWhile(isIdentContinue)
		return Ident
	}
	return Unknown
}

func (l *Lexer) skipWhile(pred func(rune) bool) {
	for {
		next, _ := l.src.Peek()
		if next == EOF || !pred(next) {
			return
		}
		l.src.Next()
	}
}

func isSpace(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.In(r, unicode.Nl, unicode.Other_ID_Start)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.In(r, unicode.Nd, unicode.Mn, unicode.Mc, unicode.Pc, unicode.Other_ID_Continue)
}

// Lex tokenizes text in one go.
func Lex(text string) []Token {
	var tokens []Token
	for tok := range NewLexer(NewStringSource(text)).All() {
		tokens = append(tokens, tok)
	}
	return tokens
}
