package workspace

import (
	"cmp"
	"slices"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/analysis"
	"github.com/CWBudde/go-kidl-lsp/internal/ast"
	"github.com/CWBudde/go-kidl-lsp/internal/database"
	"github.com/CWBudde/go-kidl-lsp/internal/document"
	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

// StructDefinition is a struct declaration found in the workspace.
type StructDefinition struct {
	File   *database.SchemaFile
	Struct ast.Struct
}

// Location returns the range of the struct's name.
func (d StructDefinition) Location() (protocol.Location, bool) {
	name, ok := d.Struct.Name()
	if !ok {
		return protocol.Location{}, false
	}
	return location(d.File, name.TextRange())
}

// FindStructs returns every struct declared as name. Declarations in
// preferPath come first, the rest follow in path order.
func FindStructs(snap *database.Snapshot, name, preferPath string) []StructDefinition {
	var preferred, others []StructDefinition
	for file := range snap.Files() {
		schema := snap.Parse(file).Schema()
		for s := range schema.Declarations() {
			ident, ok := s.Name()
			if !ok || ident.Text() != name {
				continue
			}
			def := StructDefinition{File: file, Struct: s}
			if file.Path == preferPath {
				preferred = append(preferred, def)
			} else {
				others = append(others, def)
			}
		}
	}
	return append(preferred, others...)
}

// FindReferences returns every type reference to name across the
// workspace, plus the declarations when includeDeclaration is set. Results
// are sorted by file, then position.
func FindReferences(snap *database.Snapshot, name string, includeDeclaration bool) []protocol.Location {
	var locations []protocol.Location
	for file := range snap.Files() {
		schema := snap.Parse(file).Schema()

		ranges := analysis.TypeReferences(schema, name)
		if includeDeclaration {
			for s := range schema.Declarations() {
				if ident, ok := s.Name(); ok && ident.Text() == name {
					ranges = append(ranges, ident.TextRange())
				}
			}
		}

		for _, r := range ranges {
			if loc, ok := location(file, r); ok {
				locations = append(locations, loc)
			}
		}
	}

	sortLocations(locations)
	return locations
}

func location(file *database.SchemaFile, r syntax.TextRange) (protocol.Location, bool) {
	rng, err := document.ByteRange(file.Text, r.Start, r.End)
	if err != nil {
		log.Errorf("%s: %s", file.Path, err)
		return protocol.Location{}, false
	}
	return protocol.Location{URI: PathToURI(file.Path), Range: rng}, true
}

// sortLocations orders locations by URI, then start position.
func sortLocations(locations []protocol.Location) {
	slices.SortFunc(locations, func(a, b protocol.Location) int {
		return cmp.Or(
			cmp.Compare(a.URI, b.URI),
			cmp.Compare(a.Range.Start.Line, b.Range.Start.Line),
			cmp.Compare(a.Range.Start.Character, b.Range.Start.Character),
		)
	})
}
