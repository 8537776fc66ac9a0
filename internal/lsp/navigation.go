package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/analysis"
	"github.com/CWBudde/go-kidl-lsp/internal/database"
	"github.com/CWBudde/go-kidl-lsp/internal/document"
	"github.com/CWBudde/go-kidl-lsp/internal/server"
)

// symbolRequest is the resolved target of a position-based request.
type symbolRequest struct {
	srv    *server.Server
	file   *database.SchemaFile
	symbol analysis.Symbol
}

// symbolAtPosition resolves the identifier under pos in the document at
// uri.
func symbolAtPosition(handler string, uri protocol.DocumentUri, pos protocol.Position) (symbolRequest, bool) {
	srv, ok := currentServer(handler)
	if !ok {
		return symbolRequest{}, false
	}

	path, err := uriToPath(uri)
	if err != nil {
		log.Errorf("invalid document URI %s: %s", uri, err)
		return symbolRequest{}, false
	}

	ws := srv.Workspace()
	file, ok := ws.SchemaFile(path)
	if !ok {
		log.Warningf("document not found for %s: %s", handler, uri)
		return symbolRequest{}, false
	}

	offset, err := document.PositionToByte(file.Text, pos)
	if err != nil {
		log.Debugf("%s at %s %d:%d: %s", handler, uri, pos.Line, pos.Character, err)
		return symbolRequest{}, false
	}

	symbol, ok := analysis.SymbolAt(ws.Parse(file).Schema(), offset)
	if !ok {
		return symbolRequest{}, false
	}
	return symbolRequest{srv: srv, file: file, symbol: symbol}, true
}
