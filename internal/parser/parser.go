// Package parser turns KIDL source into a lossless green tree plus a list
// of syntax errors. It never fails: garbage input still yields a Root node
// whose tokens reproduce the input exactly.
package parser

import (
	"fmt"
	"strconv"

	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

// Parsed is the result of one parse.
type Parsed struct {
	Root   *syntax.GreenNode
	Errors []syntax.SyntaxError
}

// Syntax returns a cursor over the parsed tree.
func (p *Parsed) Syntax() *syntax.SyntaxNode {
	return syntax.NewRoot(p.Root)
}

// Parse lexes src and builds its tree through cache. A nil cache parses
// with a private one. The cache lock is held only while the tree is built.
func Parse(src syntax.Source, cache *syntax.NodeCache) *Parsed {
	if cache == nil {
		cache = syntax.NewNodeCache()
	}

	p := &parser{offset: src.Offset(), lastUnexpected: -1}
	for tok := range syntax.NewLexer(src).All() {
		p.tokens = append(p.tokens, tok)
	}

	var parsed *Parsed
	cache.With(func(in *syntax.Interner) {
		p.b = syntax.NewBuilder(in)
		parsed = p.parseSchema()
	})
	return parsed
}

// ParseString parses text.
func ParseString(text string, cache *syntax.NodeCache) *Parsed {
	return Parse(syntax.NewStringSource(text), cache)
}

type parser struct {
	b      *syntax.Builder
	tokens []syntax.Token
	pos    int
	errors []syntax.SyntaxError
	offset int

	// lastUnexpected indexes the error covering the current run of
	// unexpected tokens, or -1.
	lastUnexpected int
}

func (p *parser) peek() (syntax.Token, bool) {
	if p.pos >= len(p.tokens) {
		return syntax.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) at(kind syntax.TokenKind) bool {
	tok, ok := p.peek()
	return ok && tok.Kind == kind
}

// atName reports whether the next token is a non-keyword identifier.
func (p *parser) atName() bool {
	tok, ok := p.peek()
	return ok && name.matches(tok)
}

func (p *parser) atKeyword(keyword string) bool {
	tok, ok := p.peek()
	return ok && tok.Kind == syntax.Ident && tok.Text == keyword
}

// bump moves the next token into the tree.
func (p *parser) bump() {
	tok := p.tokens[p.pos]
	p.pos++
	p.offset = tok.Range.End
	p.b.Token(tok.Kind, tok.Text)
	if !tok.Kind.IsTrivia() {
		p.lastUnexpected = -1
	}
}

// maybe consumes the next token if it has the given kind.
func (p *parser) maybe(kind syntax.TokenKind) bool {
	if !p.at(kind) {
		return false
	}
	p.bump()
	return true
}

// trivia consumes spaces, comments and newlines.
func (p *parser) trivia() {
	for {
		tok, ok := p.peek()
		if !ok || !tok.Kind.IsTrivia() {
			return
		}
		p.bump()
	}
}

// triviaUntilNewline consumes spaces and comments, leaving newlines for the
// enclosing node.
func (p *parser) triviaUntilNewline() {
	for {
		tok, ok := p.peek()
		if !ok || (tok.Kind != syntax.Space && tok.Kind != syntax.Comment) {
			return
		}
		p.bump()
	}
}

// unexpected wraps the next token in an Error node. A run of unexpected
// tokens separated only by trivia shares one error.
func (p *parser) unexpected() {
	tok := p.tokens[p.pos]
	if p.lastUnexpected >= 0 {
		p.errors[p.lastUnexpected].Range.End = tok.Range.End
	} else {
		p.errors = append(p.errors, syntax.SyntaxError{
			Message: "Unexpected " + describe(tok),
			Range:   tok.Range,
		})
	}

	p.b.StartNode(syntax.Error)
	p.bump()
	p.b.FinishNode()
	p.lastUnexpected = len(p.errors) - 1
}

// describeNext names the next token, or the end of file.
func (p *parser) describeNext() string {
	if tok, ok := p.peek(); ok {
		return describe(tok)
	}
	return "end of file"
}

func (p *parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, syntax.NewErrorAt(fmt.Sprintf(format, args...), p.offset))
}

// expectation describes the token an expect call is looking for.
type expectation struct {
	name    string
	matches func(syntax.Token) bool
}

func kind(k syntax.TokenKind) expectation {
	return expectation{
		name:    kindNames[k],
		matches: func(tok syntax.Token) bool { return tok.Kind == k },
	}
}

// name matches an identifier that is not a keyword.
var name = expectation{
	name: "identifier",
	matches: func(tok syntax.Token) bool {
		return tok.Kind == syntax.Ident && !syntax.IsKeyword(tok.Text)
	},
}

// triviaKinds may appear anywhere and is skipped by expect.
var triviaKinds = []syntax.TokenKind{syntax.Space, syntax.Comment, syntax.NewLine}

// stopSet builds a stop predicate from token kinds. Keywords always stop,
// since they start the next declaration.
func stopSet(kinds ...syntax.TokenKind) func(syntax.Token) bool {
	return func(tok syntax.Token) bool {
		if tok.Kind == syntax.Ident && syntax.IsKeyword(tok.Text) {
			return true
		}
		for _, k := range kinds {
			if tok.Kind == k {
				return true
			}
		}
		return false
	}
}

// expect consumes the token described by want. Tokens of a kind in skip are
// consumed silently. Any other mismatch is wrapped in an Error node, and the
// whole run of mismatches yields a single error. When stopIf holds for the
// next token, expect gives up without consuming it, reporting an error only
// if none was reported yet.
func (p *parser) expect(want expectation, skip []syntax.TokenKind, stopIf func(syntax.Token) bool) bool {
	fired := false
	for {
		tok, ok := p.peek()
		if !ok {
			if !fired {
				p.errorf("Expected %s, found end of file", want.name)
			}
			return false
		}

		if want.matches(tok) {
			p.bump()
			return true
		}

		if containsKind(skip, tok.Kind) {
			p.bump()
			continue
		}

		if !fired {
			p.errorf("Expected %s, found %s", want.name, describe(tok))
		}
		if stopIf(tok) {
			return false
		}

		fired = true
		p.b.StartNode(syntax.Error)
		p.bump()
		p.b.FinishNode()
	}
}

func containsKind(kinds []syntax.TokenKind, k syntax.TokenKind) bool {
	for _, c := range kinds {
		if c == k {
			return true
		}
	}
	return false
}

var kindNames = map[syntax.TokenKind]string{
	syntax.CurlyOpen:   "'{'",
	syntax.CurlyClose:  "'}'",
	syntax.SquareOpen:  "'['",
	syntax.SquareClose: "']'",
	syntax.AngleOpen:   "'<'",
	syntax.AngleClose:  "'>'",
	syntax.ParenOpen:   "'('",
	syntax.ParenClose:  "')'",
	syntax.Comment:     "comment",
	syntax.Comma:       "','",
	syntax.Dot:         "'.'",
	syntax.Hash:        "'#'",
	syntax.Question:    "'?'",
	syntax.Eq:          "'='",
	syntax.Colon:       "':'",
	syntax.Semicolon:   "';'",
	syntax.Space:       "whitespace",
	syntax.NewLine:     "newline",
	syntax.Ident:       "identifier",
	syntax.String:      "string",
	syntax.Number:      "number",
	syntax.Unknown:     "character",
}

// describe names a token for error messages.
func describe(tok syntax.Token) string {
	switch tok.Kind {
	case syntax.Ident:
		if syntax.IsKeyword(tok.Text) {
			return "keyword " + strconv.Quote(tok.Text)
		}
		return "identifier " + strconv.Quote(tok.Text)
	case syntax.Number, syntax.Unknown:
		return kindNames[tok.Kind] + " " + strconv.Quote(tok.Text)
	}
	return kindNames[tok.Kind]
}
