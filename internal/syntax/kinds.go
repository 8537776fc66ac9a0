package syntax

// TokenKind classifies a lexed token.
type TokenKind uint16

const (
	CurlyOpen TokenKind = iota
	CurlyClose
	SquareOpen
	SquareClose
	AngleOpen
	AngleClose
	ParenOpen
	ParenClose
	Comment
	Comma
	Dot
	Hash
	Question
	Eq
	Colon
	Semicolon
	Space
	NewLine
	Ident
	String
	Number
	// Unknown holds a single rune that no other rule accepts.
	Unknown
)

var tokenKindNames = [...]string{
	CurlyOpen:   "CurlyOpen",
	CurlyClose:  "CurlyClose",
	SquareOpen:  "SquareOpen",
	SquareClose: "SquareClose",
	AngleOpen:   "AngleOpen",
	AngleClose:  "AngleClose",
	ParenOpen:   "ParenOpen",
	ParenClose:  "ParenClose",
	Comment:     "Comment",
	Comma:       "Comma",
	Dot:         "Dot",
	Hash:        "Hash",
	Question:    "Question",
	Eq:          "Eq",
	Colon:       "Colon",
	Semicolon:   "Semicolon",
	Space:       "Space",
	NewLine:     "NewLine",
	Ident:       "Ident",
	String:      "String",
	Number:      "Number",
	Unknown:     "Unknown",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(?)"
}

// IsTrivia reports whether tokens of this kind carry no syntax.
func (k TokenKind) IsTrivia() bool {
	return k == Space || k == Comment || k == NewLine
}

// Syntax lifts k into the combined kind space.
func (k TokenKind) Syntax() SyntaxKind {
	return SyntaxKind{kind: uint16(k)}
}

// NodeKind classifies an interior tree node.
type NodeKind uint16

const (
	Root NodeKind = iota
	Error
	Struct
	StructField
	Type
	TypeArguments
	Use
	Path
)

var nodeKindNames = [...]string{
	Root:          "Root",
	Error:         "Error",
	Struct:        "Struct",
	StructField:   "StructField",
	Type:          "Type",
	TypeArguments: "TypeArguments",
	Use:           "Use",
	Path:          "Path",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}

// Syntax lifts k into the combined kind space.
func (k NodeKind) Syntax() SyntaxKind {
	return SyntaxKind{node: true, kind: uint16(k)}
}

// SyntaxKind is either a TokenKind or a NodeKind. The zero value is the
// CurlyOpen token kind. Values are comparable with ==.
type SyntaxKind struct {
	node bool
	kind uint16
}

// IsToken reports whether the kind names a token.
func (k SyntaxKind) IsToken() bool { return !k.node }

// IsNode reports whether the kind names a node.
func (k SyntaxKind) IsNode() bool { return k.node }

// Token returns the token kind and true, or false if k is a node kind.
func (k SyntaxKind) Token() (TokenKind, bool) {
	return TokenKind(k.kind), !k.node
}

// Node returns the node kind and true, or false if k is a token kind.
func (k SyntaxKind) Node() (NodeKind, bool) {
	return NodeKind(k.kind), k.node
}

func (k SyntaxKind) String() string {
	if k.node {
		return NodeKind(k.kind).String()
	}
	return TokenKind(k.kind).String()
}
