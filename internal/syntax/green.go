package syntax

import (
	"iter"
	"strings"
)

// GreenElement is an immutable, position-independent tree element. Equal
// elements built through the same NodeCache share storage.
type GreenElement interface {
	Kind() SyntaxKind
	TextLen() int
	writeText(sb *strings.Builder)
	id() uint64
}

// GreenToken is an interned leaf.
type GreenToken struct {
	kind TokenKind
	text string
	uid  uint64
}

func (t *GreenToken) Kind() SyntaxKind { return t.kind.Syntax() }

// TokenKind returns the token's kind.
func (t *GreenToken) TokenKind() TokenKind { return t.kind }

// Text returns the token's text.
func (t *GreenToken) Text() string { return t.text }

func (t *GreenToken) TextLen() int { return len(t.text) }

func (t *GreenToken) writeText(sb *strings.Builder) { sb.WriteString(t.text) }

func (t *GreenToken) id() uint64 { return t.uid }

// GreenNode is an interned interior node. Its length is the sum of its
// children's lengths.
type GreenNode struct {
	kind     NodeKind
	children []GreenElement
	textLen  int
	uid      uint64
}

func (n *GreenNode) Kind() SyntaxKind { return n.kind.Syntax() }

// NodeKind returns the node's kind.
func (n *GreenNode) NodeKind() NodeKind { return n.kind }

func (n *GreenNode) TextLen() int { return n.textLen }

// NumChildren returns the number of direct children.
func (n *GreenNode) NumChildren() int { return len(n.children) }

// Child returns the i-th direct child.
func (n *GreenNode) Child(i int) GreenElement { return n.children[i] }

// Children returns the direct children in source order.
func (n *GreenNode) Children() iter.Seq[GreenElement] {
	return func(yield func(GreenElement) bool) {
		for _, c := range n.children {
			if !yield(c) {
				return
			}
		}
	}
}

// Text concatenates the text of every token below n.
func (n *GreenNode) Text() string {
	var sb strings.Builder
	sb.Grow(n.textLen)
	n.writeText(&sb)
	return sb.String()
}

func (n *GreenNode) writeText(sb *strings.Builder) {
	for _, c := range n.children {
		c.writeText(sb)
	}
}

func (n *GreenNode) id() uint64 { return n.uid }
