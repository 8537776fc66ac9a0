package lsp

import (
	stdcontext "context"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/server"
	"github.com/CWBudde/go-kidl-lsp/internal/workspace"
)

const (
	serverName    = "kidl-lsp"
	serverVersion = "0.1.0"
)

// Initialize handles the LSP initialize request.
// This is the first request sent by the client and establishes the server capabilities.
func Initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	srv, ok := currentServer("Initialize")
	if ok {
		srv.SetClientCapabilities(&params.Capabilities)

		var folders []string
		for _, folder := range params.WorkspaceFolders {
			if path, err := uriToPath(folder.URI); err == nil {
				folders = append(folders, path)
			}
		}
		if len(folders) == 0 && params.RootURI != nil {
			if path, err := uriToPath(*params.RootURI); err == nil {
				folders = append(folders, path)
			}
		}
		srv.SetWorkspaceFolders(folders)

		if params.Trace != nil {
			trace := string(*params.Trace)
			srv.UpdateConfig(func(c *server.Config) { c.Trace = trace })
		}
	}

	changeKind := protocol.TextDocumentSyncKindIncremental
	trueVal := true
	falseVal := false

	capabilities := protocol.ServerCapabilities{
		// Text document synchronization
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: &trueVal,
			Change:    &changeKind,
			WillSave:  &falseVal,
		},

		// Navigation
		HoverProvider:      &trueVal,
		DefinitionProvider: &trueVal,
		ReferencesProvider: &trueVal,

		// Document symbols (outline view)
		DocumentSymbolProvider: &trueVal,

		// Workspace symbols (global search)
		WorkspaceSymbolProvider: &trueVal,
	}

	if !ok || srv.Config().SemanticTokens {
		legend := server.NewSemanticTokensLegend()
		if ok {
			legend = srv.SemanticTokensLegend()
		}
		capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
			Legend: legend.ToProtocolLegend(),
			Full:   map[string]bool{"delta": true},
		}
	}

	version := serverVersion
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

// Initialized handles the initialized notification from the client. It
// starts loading the schema files of the workspace folders in the
// background.
func Initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("client initialized")

	if srv, ok := currentServer("Initialized"); ok {
		go indexFolders(srv, srv.GetWorkspaceFolders())
	}
	return nil
}

// indexFolders tracks every schema file under folders.
func indexFolders(srv *server.Server, folders []string) {
	if _, err := workspace.NewIndexer(srv.Workspace()).Index(stdcontext.Background(), folders); err != nil {
		log.Errorf("workspace indexing failed: %s", err)
	}
}

// Shutdown handles the shutdown request.
func Shutdown(context *glsp.Context) error {
	if srv, ok := currentServer("Shutdown"); ok {
		srv.SetShuttingDown()
		srv.SemanticTokensCache().Clear()
	}
	log.Info("shutting down")
	return nil
}

// Exit handles the exit notification.
func Exit(context *glsp.Context) error {
	log.Info("exit")
	return nil
}

// SetTrace handles the $/setTrace notification.
func SetTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	srv, ok := currentServer("SetTrace")
	if !ok {
		return nil
	}

	trace := string(params.Value)
	srv.UpdateConfig(func(c *server.Config) { c.Trace = trace })
	log.Debugf("trace set to %s", trace)
	return nil
}
