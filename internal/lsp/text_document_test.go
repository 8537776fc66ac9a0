package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/server"
)

const testDocumentURI = "file:///test/document.kidl"

func TestDidOpen(t *testing.T) {
	srv, _ := setupTestServer(t, nil)
	rec := &recorder{}

	openDocument(t, rec.context(), testDocumentURI, "struct A {\n  x: Int\n}")

	file, ok := srv.Workspace().SchemaFile("/test/document.kidl")
	require.True(t, ok)
	assert.Equal(t, "struct A {\n  x: Int\n}", file.Text.String())
	assert.True(t, srv.Workspace().IsOpen("/test/document.kidl"))

	assert.Empty(t, rec.diagnostics(t, testDocumentURI))
}

func TestDidOpen_PublishesSyntaxErrors(t *testing.T) {
	setupTestServer(t, nil)
	rec := &recorder{}

	openDocument(t, rec.context(), testDocumentURI, "struct A {\n  x Int\n}")

	diags := rec.diagnostics(t, testDocumentURI)
	require.NotEmpty(t, diags)
	for _, d := range diags {
		require.NotNil(t, d.Severity)
		assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
		require.NotNil(t, d.Source)
		assert.Equal(t, "kidl", *d.Source)
	}
}

func TestDidOpen_MaxProblems(t *testing.T) {
	srv, _ := setupTestServer(t, nil)
	srv.UpdateConfig(func(c *server.Config) { c.MaxProblems = 1 })
	rec := &recorder{}

	openDocument(t, rec.context(), testDocumentURI, "struct A {}\nstruct A {}\nstruct A {}")

	assert.Len(t, rec.diagnostics(t, testDocumentURI), 1)
}

func TestDidChange(t *testing.T) {
	srv, _ := setupTestServer(t, nil)
	rec := &recorder{}
	ctx := rec.context()

	openDocument(t, ctx, testDocumentURI, "struct A {\n  x: Int\n}")
	srv.SemanticTokensCache().Store(testDocumentURI, 1, "before", nil)

	err := DidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testDocumentURI},
			Version:                2,
		},
		ContentChanges: []any{
			rangeChange(1, 8, 1, 8, ",\n  y?: String"),
			rangeChange(0, 7, 0, 8, "Point"),
		},
	})
	require.NoError(t, err)

	file, ok := srv.Workspace().SchemaFile("/test/document.kidl")
	require.True(t, ok)
	assert.Equal(t, "struct Point {\n  x: Int,\n  y?: String\n}", file.Text.String())
	assert.Empty(t, rec.diagnostics(t, testDocumentURI))
}

func TestDidChange_WholeDocument(t *testing.T) {
	srv, _ := setupTestServer(t, nil)
	rec := &recorder{}
	ctx := rec.context()

	openDocument(t, ctx, testDocumentURI, "struct A {}")

	err := DidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testDocumentURI},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "struct B {"}},
	})
	require.NoError(t, err)

	file, _ := srv.Workspace().SchemaFile("/test/document.kidl")
	assert.Equal(t, "struct B {", file.Text.String())
	assert.NotEmpty(t, rec.diagnostics(t, testDocumentURI))
}

func TestDidChange_InvalidEditKeepsText(t *testing.T) {
	srv, _ := setupTestServer(t, nil)
	ctx := (&recorder{}).context()

	openDocument(t, ctx, testDocumentURI, "struct A {}")

	err := DidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testDocumentURI},
			Version:                2,
		},
		ContentChanges: []any{
			rangeChange(0, 0, 0, 0, "// ok\n"),
			rangeChange(9, 0, 9, 0, "out of range"),
		},
	})
	require.NoError(t, err)

	file, _ := srv.Workspace().SchemaFile("/test/document.kidl")
	assert.Equal(t, "struct A {}", file.Text.String())
}

func TestDidChange_UnopenedDocument(t *testing.T) {
	srv, _ := setupTestServer(t, nil)
	ctx := (&recorder{}).context()

	err := DidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testDocumentURI},
			Version:                1,
		},
		ContentChanges: []any{rangeChange(0, 0, 0, 0, "struct A {}")},
	})
	require.NoError(t, err)

	_, ok := srv.Workspace().SchemaFile("/test/document.kidl")
	assert.False(t, ok)
}

func TestDidClose(t *testing.T) {
	srv, _ := setupTestServer(t, nil)
	rec := &recorder{}
	ctx := rec.context()

	openDocument(t, ctx, testDocumentURI, "struct A {")
	require.NotEmpty(t, rec.diagnostics(t, testDocumentURI))
	srv.SemanticTokensCache().Store(testDocumentURI, 1, "id", nil)

	err := DidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testDocumentURI},
	})
	require.NoError(t, err)

	_, ok := srv.Workspace().SchemaFile("/test/document.kidl")
	assert.False(t, ok)
	assert.Zero(t, srv.SemanticTokensCache().Size())

	diags := rec.diagnostics(t, testDocumentURI)
	assert.NotNil(t, diags)
	assert.Empty(t, diags)
}

func TestDidClose_TrackedFileRevertsToDisk(t *testing.T) {
	srv, _ := setupTestServer(t, map[string]string{"/ws/a.kidl": "struct A {}"})
	ctx := (&recorder{}).context()

	indexFolders(srv, []string{"/ws"})
	openDocument(t, ctx, "file:///ws/a.kidl", "struct Unsaved {}")

	require.NoError(t, DidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///ws/a.kidl"},
	}))

	file, ok := srv.Workspace().SchemaFile("/ws/a.kidl")
	require.True(t, ok)
	assert.Equal(t, "struct A {}", file.Text.String())
}

func TestHandlersWithoutServer(t *testing.T) {
	SetServer(nil)
	ctx := (&recorder{}).context()

	assert.NoError(t, DidOpen(ctx, &protocol.DidOpenTextDocumentParams{}))
	assert.NoError(t, DidChange(ctx, &protocol.DidChangeTextDocumentParams{}))
	assert.NoError(t, DidClose(ctx, &protocol.DidCloseTextDocumentParams{}))
}

func TestNotifyWithoutConnection(t *testing.T) {
	setupTestServer(t, nil)

	assert.NotPanics(t, func() {
		openDocument(t, nil, testDocumentURI, "struct A {}")
	})
}
