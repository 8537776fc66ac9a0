package parser

import "github.com/CWBudde/go-kidl-lsp/internal/syntax"

// parseStruct parses `struct Name { field, ... }`, opening the Struct node
// at checkpoint so leading trivia belongs to it.
func (p *parser) parseStruct(checkpoint syntax.Checkpoint) {
	p.b.StartNodeAt(checkpoint, syntax.Struct)
	p.bump()
	p.trivia()
	p.expect(name, triviaKinds, stopSet(syntax.CurlyOpen, syntax.CurlyClose))
	p.trivia()
	p.expect(kind(syntax.CurlyOpen), triviaKinds, stopSet(syntax.Ident, syntax.CurlyClose))
	p.parseFields()
	p.triviaUntilNewline()
	p.b.FinishNode()
}

// parseFields parses struct members up to and including the closing brace.
func (p *parser) parseFields() {
	for {
		tok, ok := p.peek()
		switch {
		case !ok:
			p.errorf("Expected %s, found end of file", kindNames[syntax.CurlyClose])
			return
		case tok.Kind.IsTrivia():
			p.bump()
		case tok.Kind == syntax.CurlyClose:
			p.bump()
			return
		case tok.Kind == syntax.Ident && syntax.IsKeyword(tok.Text):
			// The brace is missing and the next declaration starts here.
			p.errorf("Expected %s, found %s", kindNames[syntax.CurlyClose], describe(tok))
			return
		case p.atName():
			p.parseStructField(syntax.Comma)
		default:
			p.unexpected()
		}
	}
}

// parseStructField parses `name?: Type` followed by an optional separator.
func (p *parser) parseStructField(separator syntax.TokenKind) {
	p.b.StartNode(syntax.StructField)
	p.bump()
	p.trivia()
	p.maybe(syntax.Question)
	p.trivia()
	p.expect(kind(syntax.Colon), triviaKinds, stopSet(syntax.Ident, separator, syntax.CurlyClose))
	p.trivia()
	if p.atName() {
		p.parseType()
	} else {
		p.expectedType()
	}
	p.trivia()
	p.maybe(separator)
	p.b.FinishNode()
}

func (p *parser) expectedType() {
	p.errorf("Expected type, found %s", p.describeNext())
}
