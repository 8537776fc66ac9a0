package parser

import "github.com/CWBudde/go-kidl-lsp/internal/syntax"

// parseType parses `Name` or `Name<Type, ...>`. The argument list is wrapped
// into TypeArguments only once `<` has been seen.
func (p *parser) parseType() {
	p.b.StartNode(syntax.Type)
	p.bump()

	checkpoint := p.b.Checkpoint()
	if p.maybe(syntax.AngleOpen) {
		p.b.StartNodeAt(checkpoint, syntax.TypeArguments)
		p.trivia()
		if p.atName() {
			p.parseType()
			p.trivia()
		}
		for p.maybe(syntax.Comma) {
			p.trivia()
			if p.atName() {
				p.parseType()
			} else {
				p.expectedType()
			}
			p.trivia()
		}
		p.expect(kind(syntax.AngleClose), triviaKinds, stopSet(syntax.Ident, syntax.CurlyClose, syntax.Comma, syntax.Semicolon))
		p.b.FinishNode()
	}

	p.b.FinishNode()
}
