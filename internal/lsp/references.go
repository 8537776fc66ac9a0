package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/analysis"
	"github.com/CWBudde/go-kidl-lsp/internal/workspace"
)

// References handles the textDocument/references request. It returns every
// field type across the workspace that names the struct under the cursor.
func References(context *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	req, ok := symbolAtPosition("References", params.TextDocument.URI, params.Position)
	if !ok || req.symbol.Kind == analysis.SymbolField {
		return []protocol.Location{}, nil
	}

	locations := workspace.FindReferences(req.srv.Workspace().Snapshot(), req.symbol.Name, params.Context.IncludeDeclaration)
	log.Debugf("found %d reference(s) to %s", len(locations), req.symbol.Name)
	if locations == nil {
		locations = []protocol.Location{}
	}
	return locations, nil
}
