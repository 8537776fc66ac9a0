package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/analysis"
)

// DocumentSymbol handles the textDocument/documentSymbol request.
// It returns structs with their fields, and uses, for the outline view.
func DocumentSymbol(context *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	srv, ok := currentServer("DocumentSymbol")
	if !ok {
		return nil, nil
	}

	uri := params.TextDocument.URI
	path, err := uriToPath(uri)
	if err != nil {
		log.Errorf("invalid document URI %s: %s", uri, err)
		return nil, nil
	}

	ws := srv.Workspace()
	file, ok := ws.SchemaFile(path)
	if !ok {
		log.Warningf("document not found for document symbols: %s", uri)
		return nil, nil
	}

	symbols := analysis.DocumentSymbols(ws.Parse(file).Schema(), file.Text)
	log.Debugf("found %d top-level symbols in %s", len(symbols), uri)
	return symbols, nil
}
