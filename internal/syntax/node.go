package syntax

import "iter"

// Element is a cursor onto either a node or a token.
type Element interface {
	Kind() SyntaxKind
	TextRange() TextRange
	Parent() *SyntaxNode
	// Index is the element's position among its parent's children.
	Index() int
}

// SyntaxNode is a cursor over a green node that knows its parent and
// absolute offset. Cursors are cheap to create and are never cached.
type SyntaxNode struct {
	green  *GreenNode
	parent *SyntaxNode
	offset int
	index  int
}

// NewRoot returns the cursor for a tree's root.
func NewRoot(green *GreenNode) *SyntaxNode {
	return &SyntaxNode{green: green}
}

func (n *SyntaxNode) Kind() SyntaxKind { return n.green.Kind() }

// NodeKind returns the node's kind.
func (n *SyntaxNode) NodeKind() NodeKind { return n.green.kind }

func (n *SyntaxNode) TextRange() TextRange {
	return TextRange{Start: n.offset, End: n.offset + n.green.textLen}
}

// Text returns the node's source text.
func (n *SyntaxNode) Text() string { return n.green.Text() }

// Green returns the underlying shared node.
func (n *SyntaxNode) Green() *GreenNode { return n.green }

func (n *SyntaxNode) Parent() *SyntaxNode { return n.parent }

func (n *SyntaxNode) Index() int { return n.index }

// ChildrenWithTokens returns cursors for every direct child.
func (n *SyntaxNode) ChildrenWithTokens() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		offset := n.offset
		for i, c := range n.green.children {
			if !yield(n.cursor(c, i, offset)) {
				return
			}
			offset += c.TextLen()
		}
	}
}

// Children returns cursors for the direct child nodes.
func (n *SyntaxNode) Children() iter.Seq[*SyntaxNode] {
	return func(yield func(*SyntaxNode) bool) {
		for el := range n.ChildrenWithTokens() {
			if child, ok := el.(*SyntaxNode); ok && !yield(child) {
				return
			}
		}
	}
}

// Tokens returns cursors for the direct child tokens.
func (n *SyntaxNode) Tokens() iter.Seq[*SyntaxToken] {
	return func(yield func(*SyntaxToken) bool) {
		for el := range n.ChildrenWithTokens() {
			if tok, ok := el.(*SyntaxToken); ok && !yield(tok) {
				return
			}
		}
	}
}

// Descendants returns n and every node below it in pre-order.
func (n *SyntaxNode) Descendants() iter.Seq[*SyntaxNode] {
	return func(yield func(*SyntaxNode) bool) {
		n.walkNodes(yield)
	}
}

func (n *SyntaxNode) walkNodes(yield func(*SyntaxNode) bool) bool {
	if !yield(n) {
		return false
	}
	for child := range n.Children() {
		if !child.walkNodes(yield) {
			return false
		}
	}
	return true
}

// DescendantTokens returns every token below n in source order.
func (n *SyntaxNode) DescendantTokens() iter.Seq[*SyntaxToken] {
	return func(yield func(*SyntaxToken) bool) {
		n.walkTokens(yield)
	}
}

func (n *SyntaxNode) walkTokens(yield func(*SyntaxToken) bool) bool {
	for el := range n.ChildrenWithTokens() {
		switch el := el.(type) {
		case *SyntaxToken:
			if !yield(el) {
				return false
			}
		case *SyntaxNode:
			if !el.walkTokens(yield) {
				return false
			}
		}
	}
	return true
}

// FirstToken returns the first token below n, or nil for an empty node.
func (n *SyntaxNode) FirstToken() *SyntaxToken {
	for tok := range n.DescendantTokens() {
		return tok
	}
	return nil
}

// NextSibling returns the next node among the parent's children.
func (n *SyntaxNode) NextSibling() *SyntaxNode {
	if n.parent == nil {
		return nil
	}
	offset := n.offset + n.green.textLen
	for i := n.index + 1; i < len(n.parent.green.children); i++ {
		c := n.parent.green.children[i]
		if g, ok := c.(*GreenNode); ok {
			return &SyntaxNode{green: g, parent: n.parent, offset: offset, index: i}
		}
		offset += c.TextLen()
	}
	return nil
}

// TokenAtOffset returns the token whose range contains offset. An offset
// at the very end of the tree resolves to the last token.
func (n *SyntaxNode) TokenAtOffset(offset int) *SyntaxToken {
	var last *SyntaxToken
	for el := range n.ChildrenWithTokens() {
		r := el.TextRange()
		if r.Start > offset {
			break
		}
		switch el := el.(type) {
		case *SyntaxToken:
			if r.Contains(offset) {
				return el
			}
			last = el
		case *SyntaxNode:
			if r.Contains(offset) {
				return el.TokenAtOffset(offset)
			}
			if tok := el.lastToken(); tok != nil {
				last = tok
			}
		}
	}
	if offset == n.TextRange().End {
		return last
	}
	return nil
}

func (n *SyntaxNode) lastToken() *SyntaxToken {
	var last *SyntaxToken
	for tok := range n.DescendantTokens() {
		last = tok
	}
	return last
}

func (n *SyntaxNode) cursor(c GreenElement, index, offset int) Element {
	switch g := c.(type) {
	case *GreenNode:
		return &SyntaxNode{green: g, parent: n, offset: offset, index: index}
	case *GreenToken:
		return &SyntaxToken{green: g, parent: n, offset: offset, index: index}
	}
	panic("syntax: unknown green element")
}

// SyntaxToken is a cursor over a green token.
type SyntaxToken struct {
	green  *GreenToken
	parent *SyntaxNode
	offset int
	index  int
}

func (t *SyntaxToken) Kind() SyntaxKind { return t.green.Kind() }

// TokenKind returns the token's kind.
func (t *SyntaxToken) TokenKind() TokenKind { return t.green.kind }

// Text returns the token's text.
func (t *SyntaxToken) Text() string { return t.green.text }

func (t *SyntaxToken) TextRange() TextRange {
	return TextRange{Start: t.offset, End: t.offset + len(t.green.text)}
}

// Green returns the underlying shared token.
func (t *SyntaxToken) Green() *GreenToken { return t.green }

func (t *SyntaxToken) Parent() *SyntaxNode { return t.parent }

func (t *SyntaxToken) Index() int { return t.index }
