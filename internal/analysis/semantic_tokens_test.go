package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CWBudde/go-kidl-lsp/internal/database"
	"github.com/CWBudde/go-kidl-lsp/internal/server"
	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

// parseTestSchema parses code through a fresh database.
func parseTestSchema(t *testing.T, code string) *database.Parsed {
	t.Helper()

	db := database.New(syntax.NewNodeCache())
	file := db.PushFile("test.kidl", code)
	return db.Parse(file)
}

func collect(t *testing.T, code string) []server.SemanticToken {
	t.Helper()

	parsed := parseTestSchema(t, code)
	return CollectSemanticTokens(parsed.Schema(), parsed.File.Text, server.NewSemanticTokensLegend())
}

// tok builds an expected token using legend names.
func tok(line, start, length uint32, tokenType string, modifiers ...string) server.SemanticToken {
	legend := server.NewSemanticTokensLegend()
	return server.SemanticToken{
		Line:      line,
		StartChar: start,
		Length:    length,
		TokenType: uint32(legend.GetTokenTypeIndex(tokenType)),
		Modifiers: legend.GetModifierMask(modifiers...),
	}
}

func TestCollectSemanticTokens_Schema(t *testing.T) {
	code := "// users\n" +
		"struct User {\n" +
		"  id: Id,\n" +
		"  tags?: List<Tag>, // note\n" +
		"}\n" +
		"use std::core\n"

	tokens := collect(t, code)

	want := []server.SemanticToken{
		tok(0, 0, 8, server.TokenTypeComment),
		tok(1, 0, 6, server.TokenTypeKeyword),
		tok(1, 7, 4, server.TokenTypeStruct, server.TokenModifierDeclaration, server.TokenModifierDefinition),
		tok(2, 2, 2, server.TokenTypeParameter, server.TokenModifierDeclaration),
		tok(2, 6, 2, server.TokenTypeType),
		tok(3, 2, 4, server.TokenTypeParameter, server.TokenModifierDeclaration),
		tok(3, 9, 4, server.TokenTypeType),
		tok(3, 14, 3, server.TokenTypeType),
		tok(3, 20, 7, server.TokenTypeComment),
		tok(5, 0, 3, server.TokenTypeKeyword),
		tok(5, 4, 3, server.TokenTypeNamespace),
		tok(5, 9, 4, server.TokenTypeNamespace),
	}
	assert.Equal(t, want, tokens)
}

func TestCollectSemanticTokens_NestedGenerics(t *testing.T) {
	tokens := collect(t, "struct A { m: Map<K, List<V>> }")

	var types []uint32
	for _, token := range tokens {
		if token.TokenType == 1 {
			types = append(types, token.StartChar)
		}
	}
	// Map, K, List, V
	assert.Equal(t, []uint32{14, 18, 21, 26}, types)
}

func TestCollectSemanticTokens_UTF16Columns(t *testing.T) {
	tokens := collect(t, "struct 𝔸 { 𝕓: 𝕋 }")

	want := []server.SemanticToken{
		tok(0, 0, 6, server.TokenTypeKeyword),
		tok(0, 7, 2, server.TokenTypeStruct, server.TokenModifierDeclaration, server.TokenModifierDefinition),
		tok(0, 12, 2, server.TokenTypeParameter, server.TokenModifierDeclaration),
		tok(0, 16, 2, server.TokenTypeType),
	}
	assert.Equal(t, want, tokens)
}

func TestCollectSemanticTokens_MultiLineTokenClipped(t *testing.T) {
	tokens := collect(t, "use \"a\nb\"::C")

	require.Len(t, tokens, 3)
	assert.Equal(t, tok(0, 4, 2, server.TokenTypeNamespace), tokens[1])
	assert.Equal(t, tok(1, 4, 1, server.TokenTypeNamespace), tokens[2])
}

func TestCollectSemanticTokens_MalformedInput(t *testing.T) {
	tokens := collect(t, "struct { : }\n// still here")

	require.NotEmpty(t, tokens)
	assert.Equal(t, tok(0, 0, 6, server.TokenTypeKeyword), tokens[0])
	assert.Equal(t, tok(1, 0, 13, server.TokenTypeComment), tokens[len(tokens)-1])
}

func TestCollectSemanticTokens_EmptySchema(t *testing.T) {
	tokens := collect(t, "")
	assert.Empty(t, tokens)
}

func TestCollectSemanticTokens_NilLegend(t *testing.T) {
	parsed := parseTestSchema(t, "struct A {}")
	assert.Nil(t, CollectSemanticTokens(parsed.Schema(), parsed.File.Text, nil))
}

func TestCollectSemanticTokens_TokensSorted(t *testing.T) {
	tokens := collect(t, "use a::b\n// one\nstruct A { x: Y } // two\nuse c")

	for i := 1; i < len(tokens); i++ {
		prev, cur := tokens[i-1], tokens[i]
		before := prev.Line < cur.Line || (prev.Line == cur.Line && prev.StartChar < cur.StartChar)
		assert.True(t, before, "token %d at %d:%d not after %d:%d", i, cur.Line, cur.StartChar, prev.Line, prev.StartChar)
	}
}

func TestEncodeSemanticTokens_Empty(t *testing.T) {
	encoded := EncodeSemanticTokens(nil)
	assert.NotNil(t, encoded)
	assert.Empty(t, encoded)
}
