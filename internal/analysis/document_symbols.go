package analysis

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/ast"
	"github.com/CWBudde/go-kidl-lsp/internal/document"
	"github.com/CWBudde/go-kidl-lsp/internal/rope"
	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

// DocumentSymbols returns the outline of schema: each use as a module and
// each named struct with its named fields as children.
func DocumentSymbols(schema ast.Schema, text rope.Rope) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	if schema.Syntax() == nil {
		return symbols
	}

	for child := range schema.Syntax().Children() {
		switch child.NodeKind() {
		case syntax.Struct:
			s, _ := ast.CastStruct(child)
			if sym, ok := structSymbol(s, text); ok {
				symbols = append(symbols, sym)
			}
		case syntax.Use:
			u, _ := ast.CastUse(child)
			if sym, ok := useSymbol(u, text); ok {
				symbols = append(symbols, sym)
			}
		}
	}

	return symbols
}

func structSymbol(s ast.Struct, text rope.Rope) (protocol.DocumentSymbol, bool) {
	name, ok := s.Name()
	if !ok {
		return protocol.DocumentSymbol{}, false
	}

	sym, ok := newSymbol(text, name.Text(), protocol.SymbolKindStruct, s.Syntax().TextRange(), name.TextRange())
	if !ok {
		return sym, false
	}

	sym.Children = []protocol.DocumentSymbol{}
	for field := range s.Fields() {
		if child, ok := fieldSymbol(field, text); ok {
			sym.Children = append(sym.Children, child)
		}
	}
	return sym, true
}

func fieldSymbol(f ast.StructField, text rope.Rope) (protocol.DocumentSymbol, bool) {
	name, ok := f.Name()
	if !ok {
		return protocol.DocumentSymbol{}, false
	}

	sym, ok := newSymbol(text, name.Text(), protocol.SymbolKindField, f.Syntax().TextRange(), name.TextRange())
	if !ok {
		return sym, false
	}

	detail := ""
	if ty, ok := f.Type(); ok {
		detail = ty.String()
	}
	if f.IsOptional() {
		detail += "?"
	}
	if detail != "" {
		sym.Detail = &detail
	}
	return sym, true
}

func useSymbol(u ast.Use, text rope.Rope) (protocol.DocumentSymbol, bool) {
	path, ok := u.Path()
	if !ok || path.String() == "" {
		return protocol.DocumentSymbol{}, false
	}
	return newSymbol(text, path.String(), protocol.SymbolKindModule, u.Syntax().TextRange(), path.Syntax().TextRange())
}

func newSymbol(text rope.Rope, name string, kind protocol.SymbolKind, full, selection syntax.TextRange) (protocol.DocumentSymbol, bool) {
	fullRange, err := rangeOf(text, full)
	if err != nil {
		log.Errorf("symbol %s: %s", name, err)
		return protocol.DocumentSymbol{}, false
	}
	selectionRange, err := rangeOf(text, selection)
	if err != nil {
		log.Errorf("symbol %s: %s", name, err)
		return protocol.DocumentSymbol{}, false
	}

	return protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          fullRange,
		SelectionRange: selectionRange,
	}, true
}

// rangeOf converts a byte range of text to an LSP range.
func rangeOf(text rope.Rope, r syntax.TextRange) (protocol.Range, error) {
	return document.ByteRange(text, r.Start, r.End)
}
