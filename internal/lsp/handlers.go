// Package lsp implements LSP protocol handlers.
package lsp

import (
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/server"
)

var log = commonlog.GetLogger("kidl.lsp")

// serverInstance holds the global server instance.
// This is set by SetServer and accessed by handlers.
var serverInstance *server.Server

// SetServer sets the global server instance for handlers to access.
func SetServer(srv *server.Server) {
	serverInstance = srv
}

// currentServer returns the server instance, logging when it is missing.
// Once shutdown has been requested every handler is refused.
func currentServer(handler string) (*server.Server, bool) {
	if serverInstance == nil {
		log.Warningf("server instance not available in %s", handler)
		return nil, false
	}
	if serverInstance.IsShuttingDown() {
		log.Warningf("%s received after shutdown, ignoring", handler)
		return nil, false
	}
	return serverInstance, true
}

// NewHandler returns the protocol handler wiring every supported request
// and notification.
func NewHandler() protocol.Handler {
	return protocol.Handler{
		Initialize:  Initialize,
		Initialized: Initialized,
		Shutdown:    Shutdown,
		Exit:        Exit,
		SetTrace:    SetTrace,

		TextDocumentDidOpen:   DidOpen,
		TextDocumentDidChange: DidChange,
		TextDocumentDidClose:  DidClose,

		TextDocumentHover:                   Hover,
		TextDocumentDefinition:              Definition,
		TextDocumentReferences:              References,
		TextDocumentDocumentSymbol:          DocumentSymbol,
		TextDocumentSemanticTokensFull:      SemanticTokensFull,
		TextDocumentSemanticTokensFullDelta: SemanticTokensFullDelta,

		WorkspaceSymbol:                    WorkspaceSymbol,
		WorkspaceDidChangeConfiguration:    DidChangeConfiguration,
		WorkspaceDidChangeWorkspaceFolders: DidChangeWorkspaceFolders,
	}
}

// notify sends a notification if the context can deliver it.
func notify(context *glsp.Context, method string, params any) {
	if context == nil || context.Notify == nil {
		log.Debugf("dropping %s notification: no client connection", method)
		return
	}
	context.Notify(method, params)
}
