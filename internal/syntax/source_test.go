package syntax

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CWBudde/go-kidl-lsp/internal/rope"
)

func TestRopeSourceMatchesStringSource(t *testing.T) {
	text := strings.Repeat("struct Größe { 😀: List<String> } // note\n", 40)
	r := rope.FromString(text)

	want := Lex(text)
	var got []Token
	for tok := range NewLexer(NewRopeSource(r, 0, r.Len())).All() {
		got = append(got, tok)
	}
	assert.Equal(t, want, got)
}

func TestRopeSourceRunesAcrossChunks(t *testing.T) {
	// Splitting the rope mid-sequence forces a rune to straddle chunks.
	left := rope.FromString(strings.Repeat("a", 300) + "\xf0\x9f")
	right := rope.FromString("\x98\x80b")
	r := left.Concat(right)

	src := NewRopeSource(r, 0, r.Len())
	for i := 0; i < 300; i++ {
		c, w := src.Next()
		require.Equal(t, 'a', c)
		require.Equal(t, 1, w)
	}
	c, w := src.Next()
	assert.Equal(t, '😀', c)
	assert.Equal(t, 4, w)
	assert.Equal(t, 304, src.Offset())
	c, _ = src.Next()
	assert.Equal(t, 'b', c)
	c, w = src.Next()
	assert.Equal(t, EOF, c)
	assert.Equal(t, 0, w)
}

func TestRopeSourceRange(t *testing.T) {
	r := rope.FromString("xx struct yy")
	src := NewRopeSource(r, 3, 9)
	tok, ok := NewLexer(src).Next()
	require.True(t, ok)
	assert.Equal(t, Token{Kind: Ident, Range: TextRange{3, 9}, Text: "struct"}, tok)

	_, ok = NewLexer(src).Next()
	assert.False(t, ok)
}
