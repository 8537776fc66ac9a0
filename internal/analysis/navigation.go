package analysis

import (
	"strings"

	"github.com/CWBudde/go-kidl-lsp/internal/ast"
	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

// SymbolKind classifies the identifier under a cursor.
type SymbolKind int

const (
	// SymbolStruct is the name of a struct declaration.
	SymbolStruct SymbolKind = iota
	// SymbolField is the name of a struct field.
	SymbolField
	// SymbolTypeRef is a type name used in a field type.
	SymbolTypeRef
)

// Symbol is an identifier found at a position.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Range syntax.TextRange

	// Struct is the declaration named by a SymbolStruct, or the struct
	// containing a SymbolField.
	Struct ast.Struct
	// Field is set for SymbolField.
	Field ast.StructField
}

// SymbolAt returns the identifier at offset. A cursor just past the end of
// an identifier still selects it.
func SymbolAt(schema ast.Schema, offset int) (Symbol, bool) {
	root := schema.Syntax()
	if root == nil {
		return Symbol{}, false
	}

	tok := root.TokenAtOffset(offset)
	if (tok == nil || tok.TokenKind() != syntax.Ident) && offset > 0 {
		tok = root.TokenAtOffset(offset - 1)
	}
	if tok == nil || tok.TokenKind() != syntax.Ident || tok.Parent() == nil {
		return Symbol{}, false
	}

	sym := Symbol{Name: tok.Text(), Range: tok.TextRange()}
	parent := tok.Parent()

	switch parent.NodeKind() {
	case syntax.Struct:
		s, _ := ast.CastStruct(parent)
		if name, ok := s.Name(); !ok || name.Token().TextRange() != tok.TextRange() {
			return Symbol{}, false
		}
		sym.Kind = SymbolStruct
		sym.Struct = s
	case syntax.StructField:
		f, _ := ast.CastStructField(parent)
		if name, ok := f.Name(); !ok || name.Token().TextRange() != tok.TextRange() {
			return Symbol{}, false
		}
		sym.Kind = SymbolField
		sym.Field = f
		if p := parent.Parent(); p != nil {
			sym.Struct, _ = ast.CastStruct(p)
		}
	case syntax.Type:
		sym.Kind = SymbolTypeRef
	default:
		return Symbol{}, false
	}
	return sym, true
}

// FindStruct returns the first struct in schema declared as name.
func FindStruct(schema ast.Schema, name string) (ast.Struct, bool) {
	if schema.Syntax() == nil {
		return ast.Struct{}, false
	}
	for s := range schema.Declarations() {
		if ident, ok := s.Name(); ok && ident.Text() == name {
			return s, true
		}
	}
	return ast.Struct{}, false
}

// TypeReferences returns the ranges of every type name in schema that
// refers to name, including type arguments, in document order.
func TypeReferences(schema ast.Schema, name string) []syntax.TextRange {
	root := schema.Syntax()
	if root == nil {
		return nil
	}

	var refs []syntax.TextRange
	for node := range root.Descendants() {
		if node.NodeKind() != syntax.Type {
			continue
		}
		t, _ := ast.CastType(node)
		if ident, ok := t.Name(); ok && ident.Text() == name {
			refs = append(refs, ident.TextRange())
		}
	}
	return refs
}

// StructSignature renders s with one field per line, the way hover shows
// it.
func StructSignature(s ast.Struct) string {
	var sb strings.Builder
	sb.WriteString("struct")
	if name, ok := s.Name(); ok {
		sb.WriteString(" ")
		sb.WriteString(name.Text())
	}

	var fields []string
	for f := range s.Fields() {
		fields = append(fields, FieldSignature(f))
	}
	if len(fields) == 0 {
		sb.WriteString(" {}")
		return sb.String()
	}

	sb.WriteString(" {\n")
	for i, f := range fields {
		sb.WriteString("  ")
		sb.WriteString(f)
		if i < len(fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// FieldSignature renders f as `name?: Type`.
func FieldSignature(f ast.StructField) string {
	var sb strings.Builder
	if name, ok := f.Name(); ok {
		sb.WriteString(name.Text())
	}
	if f.IsOptional() {
		sb.WriteString("?")
	}
	if ty, ok := f.Type(); ok {
		sb.WriteString(": ")
		sb.WriteString(ty.String())
	}
	return sb.String()
}
