package workspace

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CWBudde/go-kidl-lsp/internal/database"
	"github.com/CWBudde/go-kidl-lsp/internal/document"
	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for path, text := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(text), 0o644))
	}
}

func TestDiscover(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/ws/a.kidl":                  "struct A {}",
		"/ws/nested/b.KIDL":           "struct B {}",
		"/ws/readme.md":               "# schemas",
		"/ws/.git/c.kidl":             "struct C {}",
		"/ws/node_modules/d.kidl":     "struct D {}",
		"/ws/deep/1/2/e.kidl":         "struct E {}",
		"/ws/nested/.hidden.kidl":     "struct H {}",
		"/ws/target/generated.kidl":   "struct G {}",
		"/ws/nested/more/f.kidl":      "struct F {}",
		"/ws/nested/more/notes.kidl~": "",
	})

	tests := []struct {
		name     string
		root     string
		maxDepth int
		maxFiles int
		want     []string
	}{
		{
			name:     "whole tree",
			root:     "/ws",
			maxDepth: 10,
			maxFiles: 100,
			want:     []string{"/ws/a.kidl", "/ws/deep/1/2/e.kidl", "/ws/nested/b.KIDL", "/ws/nested/more/f.kidl"},
		},
		{
			name:     "depth limit",
			root:     "/ws",
			maxDepth: 1,
			maxFiles: 100,
			want:     []string{"/ws/a.kidl", "/ws/nested/b.KIDL"},
		},
		{
			name:     "file limit",
			root:     "/ws",
			maxDepth: 10,
			maxFiles: 2,
			want:     []string{"/ws/a.kidl", "/ws/deep/1/2/e.kidl"},
		},
		{
			name:     "single file root",
			root:     "/ws/a.kidl",
			maxDepth: 10,
			maxFiles: 100,
			want:     []string{"/ws/a.kidl"},
		},
		{
			name:     "non-schema file root",
			root:     "/ws/readme.md",
			maxDepth: 10,
			maxFiles: 100,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Discover(context.Background(), fs, tt.root, tt.maxDepth, tt.maxFiles)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(context.Background(), afero.NewMemMapFs(), "/nope", 10, 10)
	assert.Error(t, err)
}

func TestDiscover_Cancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/ws/a.kidl": "struct A {}"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Discover(ctx, fs, "/ws", 10, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIndexer_Index(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/one/a.kidl": "struct A {}",
		"/two/b.kidl": "struct B { x: Int }",
	})

	ws := document.NewWorkspace(database.New(syntax.NewNodeCache()), fs)
	ws.Open("/one/a.kidl", "struct Edited {}")

	n, err := NewIndexer(ws).Index(context.Background(), []string{"/one", "/two"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	a, ok := ws.SchemaFile("/one/a.kidl")
	require.True(t, ok)
	assert.Equal(t, "struct Edited {}", a.Text.String(), "editor content wins over disk")

	b, ok := ws.SchemaFile("/two/b.kidl")
	require.True(t, ok)
	assert.Equal(t, "struct B { x: Int }", b.Text.String())
	assert.False(t, ws.IsOpen("/two/b.kidl"))
}

func TestIndexer_NoFolders(t *testing.T) {
	ws := document.NewWorkspace(database.New(syntax.NewNodeCache()), afero.NewMemMapFs())
	n, err := NewIndexer(ws).Index(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPathToURI(t *testing.T) {
	assert.Equal(t, "file:///home/user/a.kidl", PathToURI("/home/user/a.kidl"))
	assert.Equal(t, "file:///C:/schemas/a.kidl", PathToURI("C:/schemas/a.kidl"))
	assert.Equal(t, "untitled:Untitled-1", PathToURI("untitled:Untitled-1"))
}
