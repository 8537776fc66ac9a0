package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/analysis"
	"github.com/CWBudde/go-kidl-lsp/internal/workspace"
)

// Definition handles the textDocument/definition request. A struct name or
// type reference resolves to every struct declared under that name,
// declarations in the same document first.
func Definition(context *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	req, ok := symbolAtPosition("Definition", params.TextDocument.URI, params.Position)
	if !ok || req.symbol.Kind == analysis.SymbolField {
		return nil, nil
	}

	defs := workspace.FindStructs(req.srv.Workspace().Snapshot(), req.symbol.Name, req.file.Path)

	locations := make([]protocol.Location, 0, len(defs))
	for _, def := range defs {
		if loc, ok := def.Location(); ok {
			locations = append(locations, loc)
		}
	}
	log.Debugf("found %d definition(s) of %s", len(locations), req.symbol.Name)

	switch len(locations) {
	case 0:
		return nil, nil
	case 1:
		return locations[0], nil
	default:
		return locations, nil
	}
}
