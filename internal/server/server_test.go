package server

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/CWBudde/go-kidl-lsp/internal/database"
	"github.com/CWBudde/go-kidl-lsp/internal/document"
	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

func newTestServer() *Server {
	ws := document.NewWorkspace(database.New(syntax.NewNodeCache()), afero.NewMemMapFs())
	return New(ws, DefaultConfig())
}

func TestServer_Defaults(t *testing.T) {
	srv := newTestServer()

	cfg := srv.Config()
	assert.Equal(t, 100, cfg.MaxProblems)
	assert.Equal(t, "off", cfg.Trace)
	assert.True(t, cfg.SemanticTokens)
	assert.False(t, srv.IsShuttingDown())
	assert.NotNil(t, srv.Workspace())
}

func TestServer_UpdateConfig(t *testing.T) {
	srv := newTestServer()

	before := srv.Config()
	srv.UpdateConfig(func(c *Config) { c.Trace = "verbose" })

	assert.Equal(t, "verbose", srv.Config().Trace)
	assert.Equal(t, "off", before.Trace)
}

func TestServer_ShuttingDown(t *testing.T) {
	srv := newTestServer()
	srv.SetShuttingDown()
	assert.True(t, srv.IsShuttingDown())
}

func TestServer_WorkspaceFolders(t *testing.T) {
	srv := newTestServer()
	srv.SetWorkspaceFolders([]string{"/a", "/b"})
	assert.Equal(t, []string{"/a", "/b"}, srv.GetWorkspaceFolders())
}
