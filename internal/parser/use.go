package parser

import "github.com/CWBudde/go-kidl-lsp/internal/syntax"

// parseUse parses `use path;`, opening the Use node at checkpoint.
func (p *parser) parseUse(checkpoint syntax.Checkpoint) {
	p.b.StartNodeAt(checkpoint, syntax.Use)
	p.bump()
	p.trivia()

	if !p.parsePath() {
		p.errorf("Expected valid path, found %s", p.describeNext())
	}

	p.maybe(syntax.Semicolon)
	p.triviaUntilNewline()
	p.b.FinishNode()
}

// parsePath parses segments joined by `::` or `.`. A segment is a
// non-keyword identifier or a quoted string. The Path node is only created
// if at least one segment was consumed.
func (p *parser) parsePath() bool {
	checkpoint := p.b.Checkpoint()

	consumed := false
	for {
		tok, ok := p.peek()
		if !ok || !isPathSegment(tok) {
			break
		}
		p.bump()
		p.triviaUntilNewline()
		consumed = true

		if p.maybe(syntax.Dot) {
			p.triviaUntilNewline()
			continue
		}
		if p.maybe(syntax.Colon) {
			if p.maybe(syntax.Colon) {
				p.triviaUntilNewline()
				continue
			}
			p.errorf("Expected %s, found %s", kindNames[syntax.Colon], p.describeNext())
		}
		break
	}

	if consumed {
		p.b.StartNodeAt(checkpoint, syntax.Path)
		p.b.FinishNode()
	}
	return consumed
}

func isPathSegment(tok syntax.Token) bool {
	return tok.Kind == syntax.String || (tok.Kind == syntax.Ident && !syntax.IsKeyword(tok.Text))
}
