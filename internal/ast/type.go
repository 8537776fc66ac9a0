package ast

import (
	"iter"
	"strings"

	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

// Type is a type reference, possibly with generic arguments.
type Type struct {
	node *syntax.SyntaxNode
}

// CastType wraps n if it is a Type node.
func CastType(n *syntax.SyntaxNode) (Type, bool) {
	return cast(n, syntax.Type, func(n *syntax.SyntaxNode) Type { return Type{n} })
}

func (t Type) Syntax() *syntax.SyntaxNode { return t.node }

// Name returns the type's name.
func (t Type) Name() (Ident, bool) { return nameOf(t.node) }

// TypeArguments returns the `<...>` list, if present.
func (t Type) TypeArguments() (TypeArguments, bool) {
	return first(t.node, CastTypeArguments)
}

// Arguments yields the generic arguments. It is empty for plain types.
func (t Type) Arguments() iter.Seq[Type] {
	return func(yield func(Type) bool) {
		args, ok := t.TypeArguments()
		if !ok {
			return
		}
		for arg := range args.Types() {
			if !yield(arg) {
				return
			}
		}
	}
}

// String renders the type without trivia, e.g. "Map<String, Int>".
func (t Type) String() string {
	var sb strings.Builder
	t.writeTo(&sb)
	return sb.String()
}

func (t Type) writeTo(sb *strings.Builder) {
	if name, ok := t.Name(); ok {
		sb.WriteString(name.Text())
	}
	args, ok := t.TypeArguments()
	if !ok {
		return
	}
	sb.WriteByte('<')
	i := 0
	for arg := range args.Types() {
		if i > 0 {
			sb.WriteString(", ")
		}
		arg.writeTo(sb)
		i++
	}
	sb.WriteByte('>')
}

// TypeArguments is the `<...>` list of a generic type.
type TypeArguments struct {
	node *syntax.SyntaxNode
}

// CastTypeArguments wraps n if it is a TypeArguments node.
func CastTypeArguments(n *syntax.SyntaxNode) (TypeArguments, bool) {
	return cast(n, syntax.TypeArguments, func(n *syntax.SyntaxNode) TypeArguments { return TypeArguments{n} })
}

func (a TypeArguments) Syntax() *syntax.SyntaxNode { return a.node }

// Types yields the arguments in order.
func (a TypeArguments) Types() iter.Seq[Type] {
	return children(a.node, CastType)
}
