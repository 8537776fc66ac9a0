package server

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SemanticToken represents a raw semantic token with position and classification.
type SemanticToken struct {
	Line      uint32 // 0-based line number
	StartChar uint32 // 0-based start column in UTF-16 units
	Length    uint32 // Token length in UTF-16 units
	TokenType uint32 // Index into legend.TokenTypes
	Modifiers uint32 // Bit flags for modifiers
}

// SemanticTokensLegend defines the token types and modifiers used by the server.
// The legend is sent once at initialization and must stay the same for the
// whole session.
type SemanticTokensLegend struct {
	// TokenTypes is an ordered array of token type strings.
	// The index in this array is used to encode token types in the semantic tokens response.
	TokenTypes []string

	// TokenModifiers is an ordered array of token modifier strings.
	// Modifiers are encoded as bit flags where each index represents a bit position.
	TokenModifiers []string
}

// NewSemanticTokensLegend creates the legend used for KIDL schemas. KIDL only
// emits a handful of these classes; the rest keep the indices stable for
// clients that cache the legend.
func NewSemanticTokensLegend() *SemanticTokensLegend {
	return &SemanticTokensLegend{
		TokenTypes: []string{
			TokenTypeNamespace,
			TokenTypeType,
			TokenTypeClass,
			TokenTypeEnum,
			TokenTypeInterface,
			TokenTypeStruct,
			TokenTypeTypeParameter,
			TokenTypeParameter,
			TokenTypeVariable,
			TokenTypeProperty,
			TokenTypeEnumMember,
			TokenTypeEvent,
			TokenTypeFunction,
			TokenTypeMethod,
			TokenTypeMacro,
			TokenTypeKeyword,
			TokenTypeModifier,
			TokenTypeComment,
			TokenTypeString,
			TokenTypeNumber,
			TokenTypeRegexp,
			TokenTypeOperator,
		},
		TokenModifiers: []string{
			TokenModifierDeclaration,
			TokenModifierDefinition,
			TokenModifierReadonly,
			TokenModifierStatic,
			TokenModifierDeprecated,
			TokenModifierAbstract,
			TokenModifierAsync,
			TokenModifierModification,
			TokenModifierDocumentation,
			TokenModifierDefaultLibrary,
		},
	}
}

// ToProtocolLegend converts the legend to the LSP protocol format.
func (l *SemanticTokensLegend) ToProtocolLegend() protocol.SemanticTokensLegend {
	return protocol.SemanticTokensLegend{
		TokenTypes:     l.TokenTypes,
		TokenModifiers: l.TokenModifiers,
	}
}

// GetTokenTypeIndex returns the index of a token type in the legend.
// Returns -1 if the token type is not found.
func (l *SemanticTokensLegend) GetTokenTypeIndex(tokenType string) int {
	for i, t := range l.TokenTypes {
		if t == tokenType {
			return i
		}
	}
	return -1
}

// GetModifierMask returns the bit mask for the given modifiers.
// Multiple modifiers can be combined using bitwise OR.
func (l *SemanticTokensLegend) GetModifierMask(modifiers ...string) uint32 {
	var mask uint32
	for _, modifier := range modifiers {
		for i, m := range l.TokenModifiers {
			if m == modifier {
				mask |= 1 << uint32(i)
				break
			}
		}
	}
	return mask
}

// Token type names, in legend order.
const (
	TokenTypeNamespace     = "namespace"
	TokenTypeType          = "type"
	TokenTypeClass         = "class"
	TokenTypeEnum          = "enum"
	TokenTypeInterface     = "interface"
	TokenTypeStruct        = "struct"
	TokenTypeTypeParameter = "typeParameter"
	TokenTypeParameter     = "parameter"
	TokenTypeVariable      = "variable"
	TokenTypeProperty      = "property"
	TokenTypeEnumMember    = "enumMember"
	TokenTypeEvent         = "event"
	TokenTypeFunction      = "function"
	TokenTypeMethod        = "method"
	TokenTypeMacro         = "macro"
	TokenTypeKeyword       = "keyword"
	TokenTypeModifier      = "modifier"
	TokenTypeComment       = "comment"
	TokenTypeString        = "string"
	TokenTypeNumber        = "number"
	TokenTypeRegexp        = "regexp"
	TokenTypeOperator      = "operator"
)

// Token modifier names, in bit order.
const (
	TokenModifierDeclaration    = "declaration"
	TokenModifierDefinition     = "definition"
	TokenModifierReadonly       = "readonly"
	TokenModifierStatic         = "static"
	TokenModifierDeprecated     = "deprecated"
	TokenModifierAbstract       = "abstract"
	TokenModifierAsync          = "async"
	TokenModifierModification   = "modification"
	TokenModifierDocumentation  = "documentation"
	TokenModifierDefaultLibrary = "defaultLibrary"
)
