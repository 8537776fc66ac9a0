package ast

import (
	"iter"
	"strconv"
	"strings"

	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

// Schema is a whole document.
type Schema struct {
	node *syntax.SyntaxNode
}

// CastSchema wraps n if it is a Root node.
func CastSchema(n *syntax.SyntaxNode) (Schema, bool) {
	return cast(n, syntax.Root, func(n *syntax.SyntaxNode) Schema { return Schema{n} })
}

func (s Schema) Syntax() *syntax.SyntaxNode { return s.node }

// Declarations yields the struct declarations in source order.
func (s Schema) Declarations() iter.Seq[Struct] {
	return children(s.node, CastStruct)
}

// Uses yields the use declarations in source order.
func (s Schema) Uses() iter.Seq[Use] {
	return children(s.node, CastUse)
}

// Use is a `use path;` declaration.
type Use struct {
	node *syntax.SyntaxNode
}

// CastUse wraps n if it is a Use node.
func CastUse(n *syntax.SyntaxNode) (Use, bool) {
	return cast(n, syntax.Use, func(n *syntax.SyntaxNode) Use { return Use{n} })
}

func (u Use) Syntax() *syntax.SyntaxNode { return u.node }

// Keyword returns the `use` token.
func (u Use) Keyword() (*syntax.SyntaxToken, bool) {
	return keywordOf(u.node, syntax.KeywordUse)
}

// Path returns the imported path.
func (u Use) Path() (Path, bool) {
	return first(u.node, CastPath)
}

// Path is a sequence of segments joined by `::` or `.`.
type Path struct {
	node *syntax.SyntaxNode
}

// CastPath wraps n if it is a Path node.
func CastPath(n *syntax.SyntaxNode) (Path, bool) {
	return cast(n, syntax.Path, func(n *syntax.SyntaxNode) Path { return Path{n} })
}

func (p Path) Syntax() *syntax.SyntaxNode { return p.node }

// Segments yields the identifier and string tokens of the path.
func (p Path) Segments() iter.Seq[*syntax.SyntaxToken] {
	return func(yield func(*syntax.SyntaxToken) bool) {
		for tok := range p.node.Tokens() {
			k := tok.TokenKind()
			if (k == syntax.Ident || k == syntax.String) && !yield(tok) {
				return
			}
		}
	}
}

// String returns the segments joined by "::", with quotes removed from
// string segments.
func (p Path) String() string {
	var parts []string
	for tok := range p.Segments() {
		parts = append(parts, segmentText(tok))
	}
	return strings.Join(parts, "::")
}

func segmentText(tok *syntax.SyntaxToken) string {
	text := tok.Text()
	if tok.TokenKind() != syntax.String {
		return text
	}
	if unquoted, err := strconv.Unquote(text); err == nil {
		return unquoted
	}
	// Single quotes or an unterminated string.
	text = text[1:]
	if n := len(text); n > 0 && (text[n-1] == '"' || text[n-1] == '\'') {
		text = text[:n-1]
	}
	return text
}
