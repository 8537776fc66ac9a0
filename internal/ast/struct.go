package ast

import (
	"iter"

	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

// Struct is a struct declaration.
type Struct struct {
	node *syntax.SyntaxNode
}

// CastStruct wraps n if it is a Struct node.
func CastStruct(n *syntax.SyntaxNode) (Struct, bool) {
	return cast(n, syntax.Struct, func(n *syntax.SyntaxNode) Struct { return Struct{n} })
}

func (s Struct) Syntax() *syntax.SyntaxNode { return s.node }

// Keyword returns the `struct` token.
func (s Struct) Keyword() (*syntax.SyntaxToken, bool) {
	return keywordOf(s.node, syntax.KeywordStruct)
}

// Name returns the struct's name, if it was written.
func (s Struct) Name() (Ident, bool) { return nameOf(s.node) }

// Fields yields the struct's fields in source order.
func (s Struct) Fields() iter.Seq[StructField] {
	return children(s.node, CastStructField)
}

// StructField is a `name?: Type` member.
type StructField struct {
	node *syntax.SyntaxNode
}

// CastStructField wraps n if it is a StructField node.
func CastStructField(n *syntax.SyntaxNode) (StructField, bool) {
	return cast(n, syntax.StructField, func(n *syntax.SyntaxNode) StructField { return StructField{n} })
}

func (f StructField) Syntax() *syntax.SyntaxNode { return f.node }

// Name returns the field's name.
func (f StructField) Name() (Ident, bool) { return nameOf(f.node) }

// Type returns the field's declared type.
func (f StructField) Type() (Type, bool) {
	return first(f.node, CastType)
}

// IsOptional reports whether the field carries the `?` marker.
func (f StructField) IsOptional() bool {
	_, ok := tokenOf(f.node, syntax.Question)
	return ok
}

// Question returns the `?` token of an optional field.
func (f StructField) Question() (*syntax.SyntaxToken, bool) {
	return tokenOf(f.node, syntax.Question)
}
