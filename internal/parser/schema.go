package parser

import "github.com/CWBudde/go-kidl-lsp/internal/syntax"

// parseSchema parses a whole document. Trivia in front of a declaration is
// adopted by that declaration; trivia after the last one stays in Root.
func (p *parser) parseSchema() *Parsed {
	p.b.StartNode(syntax.Root)

	checkpoint := p.b.Checkpoint()
	for {
		tok, ok := p.peek()
		if !ok {
			break
		}

		switch {
		case tok.Kind.IsTrivia():
			p.bump()
			continue
		case p.atKeyword(syntax.KeywordUse):
			p.parseUse(checkpoint)
		case p.atKeyword(syntax.KeywordStruct):
			p.parseStruct(checkpoint)
		default:
			p.unexpected()
		}
		checkpoint = p.b.Checkpoint()
	}

	p.b.FinishNode()
	return &Parsed{Root: p.b.Finish(), Errors: p.errors}
}
