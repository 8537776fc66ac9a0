package lsp

import (
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/database"
	"github.com/CWBudde/go-kidl-lsp/internal/document"
	"github.com/CWBudde/go-kidl-lsp/internal/server"
	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

// notification is one message the server sent to the client.
type notification struct {
	method string
	params any
}

// recorder captures notifications sent through a glsp.Context.
type recorder struct {
	mu    sync.Mutex
	notes []notification
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.notes = append(r.notes, notification{method: method, params: params})
		},
	}
}

// diagnostics returns the last diagnostics published for uri.
func (r *recorder) diagnostics(t *testing.T, uri string) []protocol.Diagnostic {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.notes) - 1; i >= 0; i-- {
		n := r.notes[i]
		if n.method != protocol.ServerTextDocumentPublishDiagnostics {
			continue
		}
		params, ok := n.params.(*protocol.PublishDiagnosticsParams)
		require.True(t, ok, "unexpected params type %T", n.params)
		if params.URI == uri {
			return params.Diagnostics
		}
	}
	t.Fatalf("no diagnostics published for %s", uri)
	return nil
}

// setupTestServer installs a fresh server backed by an in-memory
// filesystem holding files.
func setupTestServer(t *testing.T, files map[string]string) (*server.Server, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, text := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(text), 0o644))
	}

	ws := document.NewWorkspace(database.New(syntax.NewNodeCache()), fs)
	srv := server.New(ws, server.DefaultConfig())
	SetServer(srv)
	t.Cleanup(func() { SetServer(nil) })
	return srv, fs
}

// openDocument sends didOpen for uri with text.
func openDocument(t *testing.T, ctx *glsp.Context, uri, text string) {
	t.Helper()
	err := DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: "kidl",
			Version:    1,
			Text:       text,
		},
	})
	require.NoError(t, err)
}

func rangeChange(startLine, startChar, endLine, endChar uint32, text string) protocol.TextDocumentContentChangeEvent {
	return protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{
			Start: protocol.Position{Line: startLine, Character: startChar},
			End:   protocol.Position{Line: endLine, Character: endChar},
		},
		Text: text,
	}
}
