package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/analysis"
	"github.com/CWBudde/go-kidl-lsp/internal/database"
	"github.com/CWBudde/go-kidl-lsp/internal/server"
)

// SemanticTokensFull handles textDocument/semanticTokens/full requests.
// It returns semantic highlighting information for the entire document.
func SemanticTokensFull(context *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	srv, file, ok := semanticTokensTarget("SemanticTokensFull", params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	uri := params.TextDocument.URI
	tokens := collectTokens(srv, file)
	resultID := server.GenerateResultID(uri, file.Version)
	srv.SemanticTokensCache().Store(uri, file.Version, resultID, tokens)

	log.Debugf("collected %d semantic tokens for %s", len(tokens), uri)
	return &protocol.SemanticTokens{
		ResultID: &resultID,
		Data:     analysis.EncodeSemanticTokens(tokens),
	}, nil
}

// SemanticTokensFullDelta handles textDocument/semanticTokens/full/delta
// requests. It answers with edits against the previous result when that
// result is still cached and with the full token set otherwise.
func SemanticTokensFullDelta(context *glsp.Context, params *protocol.SemanticTokensDeltaParams) (any, error) {
	srv, file, ok := semanticTokensTarget("SemanticTokensFullDelta", params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	uri := params.TextDocument.URI
	tokens := collectTokens(srv, file)
	resultID := server.GenerateResultID(uri, file.Version)

	var previous []server.SemanticToken
	if cached, found := srv.SemanticTokensCache().Retrieve(uri, params.PreviousResultID); found {
		previous = cached.Tokens
	} else {
		log.Debugf("previous result %q for %s not cached, returning full tokens", params.PreviousResultID, uri)
	}

	srv.SemanticTokensCache().Store(uri, file.Version, resultID, tokens)

	result := analysis.ComputeSemanticTokensDelta(previous, tokens, resultID)
	if result.IsDelta {
		return result.Delta, nil
	}
	return result.Full, nil
}

// semanticTokensTarget resolves the server and current file for a semantic
// tokens request.
func semanticTokensTarget(handler string, uri protocol.DocumentUri) (*server.Server, *database.SchemaFile, bool) {
	srv, ok := currentServer(handler)
	if !ok {
		return nil, nil, false
	}
	if !srv.Config().SemanticTokens {
		return nil, nil, false
	}

	path, err := uriToPath(uri)
	if err != nil {
		log.Errorf("invalid document URI %s: %s", uri, err)
		return nil, nil, false
	}

	file, ok := srv.Workspace().SchemaFile(path)
	if !ok {
		log.Warningf("document not found: %s", uri)
		return nil, nil, false
	}
	return srv, file, true
}

func collectTokens(srv *server.Server, file *database.SchemaFile) []server.SemanticToken {
	parsed := srv.Workspace().Parse(file)
	return analysis.CollectSemanticTokens(parsed.Schema(), file.Text, srv.SemanticTokensLegend())
}
