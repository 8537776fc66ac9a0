package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidOpen handles the textDocument/didOpen notification.
func DidOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	srv, ok := currentServer("DidOpen")
	if !ok {
		return nil
	}

	uri := params.TextDocument.URI
	path, err := uriToPath(uri)
	if err != nil {
		log.Errorf("invalid document URI %s: %s", uri, err)
		return nil
	}

	log.Infof("document opened: %s (version %d, %d bytes)", uri, params.TextDocument.Version, len(params.TextDocument.Text))

	ws := srv.Workspace()
	file := ws.Open(path, params.TextDocument.Text)
	srv.SemanticTokensCache().InvalidateDocument(uri)

	PublishDiagnostics(context, uri, ws.Parse(file), srv.Config().MaxProblems)
	return nil
}

// DidChange handles the textDocument/didChange notification. The changes of
// one notification apply together or not at all.
func DidChange(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	srv, ok := currentServer("DidChange")
	if !ok {
		return nil
	}

	uri := params.TextDocument.URI
	path, err := uriToPath(uri)
	if err != nil {
		log.Errorf("invalid document URI %s: %s", uri, err)
		return nil
	}

	ws := srv.Workspace()
	file, err := ws.Edit(path, params.ContentChanges)
	if err != nil {
		log.Errorf("dropping %d change(s) to %s (version %d): %s", len(params.ContentChanges), uri, params.TextDocument.Version, err)
		return nil
	}

	log.Debugf("document changed: %s (version %d, %d change(s))", uri, params.TextDocument.Version, len(params.ContentChanges))

	PublishDiagnostics(context, uri, ws.Parse(file), srv.Config().MaxProblems)
	return nil
}

// DidClose handles the textDocument/didClose notification.
func DidClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	srv, ok := currentServer("DidClose")
	if !ok {
		return nil
	}

	uri := params.TextDocument.URI
	path, err := uriToPath(uri)
	if err != nil {
		log.Errorf("invalid document URI %s: %s", uri, err)
		return nil
	}

	srv.Workspace().Close(path)
	srv.SemanticTokensCache().InvalidateDocument(uri)
	log.Infof("document closed: %s", uri)

	clearDiagnostics(context, uri)
	return nil
}
