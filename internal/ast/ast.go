// Package ast provides typed, zero-copy views over the syntax tree.
//
// Each view wraps a single cursor and accepts exactly one node kind. The
// Cast functions check the kind and report false on a mismatch, so callers
// can walk arbitrary children and keep only the ones they understand.
package ast

import (
	"iter"

	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

// Node is implemented by every node view.
type Node interface {
	Syntax() *syntax.SyntaxNode
}

// Named is implemented by declarations that carry a name.
type Named interface {
	Node
	Name() (Ident, bool)
}

func cast[T any](n *syntax.SyntaxNode, kind syntax.NodeKind, wrap func(*syntax.SyntaxNode) T) (T, bool) {
	if n == nil || n.NodeKind() != kind {
		var zero T
		return zero, false
	}
	return wrap(n), true
}

// children yields the direct children of n that cast to T.
func children[T any](n *syntax.SyntaxNode, castFn func(*syntax.SyntaxNode) (T, bool)) iter.Seq[T] {
	return func(yield func(T) bool) {
		for child := range n.Children() {
			if v, ok := castFn(child); ok && !yield(v) {
				return
			}
		}
	}
}

// first returns the first direct child of n that casts to T.
func first[T any](n *syntax.SyntaxNode, castFn func(*syntax.SyntaxNode) (T, bool)) (T, bool) {
	for v := range children(n, castFn) {
		return v, true
	}
	var zero T
	return zero, false
}

// nameOf returns the first identifier token of n that is not a keyword.
func nameOf(n *syntax.SyntaxNode) (Ident, bool) {
	for tok := range n.Tokens() {
		if tok.TokenKind() == syntax.Ident && !syntax.IsKeyword(tok.Text()) {
			return Ident{tok}, true
		}
	}
	return Ident{}, false
}

// tokenOf returns the first direct child token of n with the given kind.
func tokenOf(n *syntax.SyntaxNode, kind syntax.TokenKind) (*syntax.SyntaxToken, bool) {
	for tok := range n.Tokens() {
		if tok.TokenKind() == kind {
			return tok, true
		}
	}
	return nil, false
}

// keywordOf returns the keyword token that introduces n.
func keywordOf(n *syntax.SyntaxNode, keyword string) (*syntax.SyntaxToken, bool) {
	for tok := range n.Tokens() {
		if tok.TokenKind() == syntax.Ident && tok.Text() == keyword {
			return tok, true
		}
	}
	return nil, false
}

// Ident is an identifier token.
type Ident struct {
	tok *syntax.SyntaxToken
}

// CastIdent wraps tok if it is an identifier.
func CastIdent(tok *syntax.SyntaxToken) (Ident, bool) {
	if tok == nil || tok.TokenKind() != syntax.Ident {
		return Ident{}, false
	}
	return Ident{tok}, true
}

// Token returns the underlying token.
func (i Ident) Token() *syntax.SyntaxToken { return i.tok }

// Text returns the identifier.
func (i Ident) Text() string { return i.tok.Text() }

// TextRange returns the identifier's byte range.
func (i Ident) TextRange() syntax.TextRange { return i.tok.TextRange() }
