package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/workspace"
)

// maxWorkspaceSymbols caps the results to avoid overwhelming the client.
const maxWorkspaceSymbols = 500

// WorkspaceSymbol handles the workspace/symbol request.
// It returns symbols across every known schema file that match the query string.
func WorkspaceSymbol(context *glsp.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	srv, ok := currentServer("WorkspaceSymbol")
	if !ok {
		return nil, nil
	}

	locations := workspace.Search(srv.Workspace().Snapshot(), params.Query, maxWorkspaceSymbols)
	log.Debugf("found %d workspace symbols matching %q", len(locations), params.Query)

	symbols := make([]protocol.SymbolInformation, 0, len(locations))
	for _, loc := range locations {
		info := protocol.SymbolInformation{
			Name:     loc.Name,
			Kind:     loc.Kind,
			Location: loc.Location,
		}
		if loc.ContainerName != "" {
			container := loc.ContainerName
			info.ContainerName = &container
		}
		symbols = append(symbols, info)
	}
	return symbols, nil
}
