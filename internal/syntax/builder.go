package syntax

import "fmt"

// Checkpoint marks a position in the builder's list of emitted children.
// StartNodeAt wraps everything emitted since the checkpoint into a new node.
type Checkpoint int

type openNode struct {
	kind  NodeKind
	first int
}

// Builder assembles a green tree bottom-up. Misuse, such as finishing a node
// that was never started, is a programming error and panics.
type Builder struct {
	in       *Interner
	parents  []openNode
	children []GreenElement
}

// NewBuilder returns a builder that interns through in. A nil interner
// gives the builder a private one.
func NewBuilder(in *Interner) *Builder {
	if in == nil {
		fresh := newInterner()
		in = &fresh
	}
	return &Builder{in: in}
}

// StartNode opens a new node of the given kind.
func (b *Builder) StartNode(kind NodeKind) {
	b.parents = append(b.parents, openNode{kind: kind, first: len(b.children)})
}

// Token appends a leaf to the innermost open node.
func (b *Builder) Token(kind TokenKind, text string) {
	b.children = append(b.children, b.in.Token(kind, text))
}

// FinishNode closes the innermost open node.
func (b *Builder) FinishNode() {
	if len(b.parents) == 0 {
		panic("syntax: FinishNode without a matching StartNode")
	}
	top := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]

	node := b.in.Node(top.kind, b.children[top.first:])
	b.children = append(b.children[:top.first], node)
}

// Checkpoint returns a marker at the current position.
func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint(len(b.children))
}

// StartNodeAt opens a node that retroactively adopts every child emitted
// since cp. No node opened after cp may still be open.
func (b *Builder) StartNodeAt(cp Checkpoint, kind NodeKind) {
	if int(cp) > len(b.children) {
		panic(fmt.Sprintf("syntax: checkpoint %d past end of %d children", cp, len(b.children)))
	}
	if len(b.parents) > 0 && b.parents[len(b.parents)-1].first > int(cp) {
		panic("syntax: checkpoint no longer valid, a node opened after it is still open")
	}
	b.parents = append(b.parents, openNode{kind: kind, first: int(cp)})
}

// Finish returns the completed tree. Exactly one root node must have been
// built and closed.
func (b *Builder) Finish() *GreenNode {
	if len(b.parents) != 0 {
		panic(fmt.Sprintf("syntax: Finish with %d unclosed nodes", len(b.parents)))
	}
	if len(b.children) != 1 {
		panic(fmt.Sprintf("syntax: Finish with %d root elements, want 1", len(b.children)))
	}
	root, ok := b.children[0].(*GreenNode)
	if !ok {
		panic("syntax: root element is a token")
	}
	return root
}
