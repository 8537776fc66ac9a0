// Package analysis derives editor features from parsed schemas: semantic
// tokens, diagnostics and document symbols.
package analysis

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/tliron/commonlog"

	"github.com/CWBudde/go-kidl-lsp/internal/ast"
	"github.com/CWBudde/go-kidl-lsp/internal/document"
	"github.com/CWBudde/go-kidl-lsp/internal/rope"
	"github.com/CWBudde/go-kidl-lsp/internal/server"
	"github.com/CWBudde/go-kidl-lsp/internal/syntax"
)

var log = commonlog.GetLogger("kidl.analysis")

// CollectSemanticTokens walks schema and classifies its tokens. text must be
// the text schema was parsed from. Tokens are returned in document order.
func CollectSemanticTokens(schema ast.Schema, text rope.Rope, legend *server.SemanticTokensLegend) []server.SemanticToken {
	if schema.Syntax() == nil || legend == nil {
		return nil
	}

	collector := &tokenCollector{
		legend: legend,
		text:   text,
		tokens: make([]server.SemanticToken, 0),
	}

	for s := range schema.Declarations() {
		collector.visitStruct(s)
	}
	for u := range schema.Uses() {
		collector.visitUse(u)
	}
	for tok := range schema.Syntax().DescendantTokens() {
		if tok.TokenKind() == syntax.Comment {
			collector.add(tok, server.TokenTypeComment)
		}
	}

	slices.SortFunc(collector.tokens, func(a, b server.SemanticToken) int {
		if a.Line != b.Line {
			return int(a.Line) - int(b.Line)
		}
		return int(a.StartChar) - int(b.StartChar)
	})

	return collector.tokens
}

// tokenCollector holds state during the walk.
type tokenCollector struct {
	legend *server.SemanticTokensLegend
	text   rope.Rope
	tokens []server.SemanticToken
}

func (tc *tokenCollector) visitStruct(s ast.Struct) {
	if kw, ok := s.Keyword(); ok {
		tc.add(kw, server.TokenTypeKeyword)
	}
	if name, ok := s.Name(); ok {
		tc.add(name.Token(), server.TokenTypeStruct,
			server.TokenModifierDeclaration, server.TokenModifierDefinition)
	}
	for field := range s.Fields() {
		if name, ok := field.Name(); ok {
			tc.add(name.Token(), server.TokenTypeParameter, server.TokenModifierDeclaration)
		}
		if ty, ok := field.Type(); ok {
			tc.visitType(ty)
		}
	}
}

func (tc *tokenCollector) visitType(ty ast.Type) {
	if name, ok := ty.Name(); ok {
		tc.add(name.Token(), server.TokenTypeType)
	}
	for arg := range ty.Arguments() {
		tc.visitType(arg)
	}
}

func (tc *tokenCollector) visitUse(u ast.Use) {
	if kw, ok := u.Keyword(); ok {
		tc.add(kw, server.TokenTypeKeyword)
	}
	if path, ok := u.Path(); ok {
		for seg := range path.Segments() {
			tc.add(seg, server.TokenTypeNamespace)
		}
	}
}

// add records tok. A token spanning several lines is clipped to its first
// line since LSP tokens cannot cross line breaks.
func (tc *tokenCollector) add(tok *syntax.SyntaxToken, tokenType string, modifiers ...string) {
	text := tok.Text()
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	length := utf16Length(text)
	if length == 0 {
		return
	}

	pos, err := document.ByteToPosition(tc.text, tok.TextRange().Start)
	if err != nil {
		log.Warningf("token %s outside document text: %s", tok.TextRange(), err)
		return
	}

	typeIndex := tc.legend.GetTokenTypeIndex(tokenType)
	if typeIndex < 0 {
		log.Warningf("unknown token type: %s", tokenType)
		return
	}

	tc.tokens = append(tc.tokens, server.SemanticToken{
		Line:      pos.Line,
		StartChar: pos.Character,
		Length:    uint32(length),
		TokenType: uint32(typeIndex),
		Modifiers: tc.legend.GetModifierMask(modifiers...),
	})
}

// EncodeSemanticTokens encodes tokens in LSP delta format.
// The LSP protocol uses a delta encoding where each token is represented as:
// [deltaLine, deltaStartChar, length, tokenType, tokenModifiers]
func EncodeSemanticTokens(tokens []server.SemanticToken) []uint32 {
	if len(tokens) == 0 {
		return []uint32{}
	}

	encoded := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevChar uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaChar := token.StartChar
		if deltaLine == 0 {
			deltaChar = token.StartChar - prevChar
		}

		encoded = append(encoded,
			deltaLine,
			deltaChar,
			token.Length,
			token.TokenType,
			token.Modifiers,
		)

		prevLine = token.Line
		prevChar = token.StartChar
	}

	return encoded
}

// utf16Length returns the length of s in UTF-16 code units.
func utf16Length(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 && r <= utf8.MaxRune {
			n += 2
		} else {
			n++
		}
	}
	return n
}
