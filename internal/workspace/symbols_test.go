package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/database"
	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

func newSnapshot(files map[string]string) *database.Snapshot {
	db := database.New(syntax.NewNodeCache())
	db.PushFiles(files)
	return db.Snapshot()
}

func names(locs []SymbolLocation) []string {
	out := make([]string, 0, len(locs))
	for _, loc := range locs {
		out = append(out, loc.Name)
	}
	return out
}

func TestSearch(t *testing.T) {
	snap := newSnapshot(map[string]string{
		"/ws/a.kidl": "struct User { name: String, userId?: Int }",
		"/ws/b.kidl": "use base::types;\nstruct Order { user: User }",
	})

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"empty query", "", 0, []string{"User", "name", "userId", "base::types", "Order", "user"}},
		{"case insensitive", "USER", 0, []string{"User", "userId", "user"}},
		{"limit", "", 2, []string{"User", "name"}},
		{"no match", "missing", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(snap, tt.query, tt.limit)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestSearch_Locations(t *testing.T) {
	snap := newSnapshot(map[string]string{
		"/ws/a.kidl": "struct User {\n  id?: Int\n}",
	})

	got := Search(snap, "id", 0)
	require.Len(t, got, 1)

	loc := got[0]
	assert.Equal(t, protocol.SymbolKindField, loc.Kind)
	assert.Equal(t, "User", loc.ContainerName)
	assert.Equal(t, "Int?", loc.Detail)
	assert.Equal(t, "file:///ws/a.kidl", loc.Location.URI)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 1, Character: 2},
		End:   protocol.Position{Line: 1, Character: 4},
	}, loc.Location.Range)
}
