package rope

import "strings"

// Tree shape constants.
const (
	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// node is a node in the rope B+ tree. Leaves (height == 0) hold chunks,
// internal nodes hold children. Nodes are never mutated once shared.
type node struct {
	height  uint8
	summary TextSummary

	children []*node
	chunks   []chunk
}

func newLeaf(chunks []chunk) *node {
	n := &node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func newInternal(children []*node) *node {
	if len(children) == 0 {
		return newLeaf(nil)
	}

	n := &node{height: children[0].height + 1, children: children}
	for _, child := range children {
		n.summary = n.summary.Add(child.summary)
	}
	return n
}

func (n *node) isLeaf() bool { return n.height == 0 }

func (n *node) len() int { return n.summary.Bytes }

// appendRange appends text in the byte range [start, end) to sb.
func (n *node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}

	offset := 0
	if n.isLeaf() {
		for _, c := range n.chunks {
			chunkEnd := offset + c.len()
			if chunkEnd > start && offset < end {
				sb.WriteString(c.data[max(start-offset, 0):min(end, chunkEnd)-offset])
			}
			if chunkEnd >= end {
				return
			}
			offset = chunkEnd
		}
		return
	}

	for _, child := range n.children {
		childEnd := offset + child.len()
		if childEnd > start && offset < end {
			child.appendRange(sb, max(start-offset, 0), min(end, childEnd)-offset)
		}
		if childEnd >= end {
			return
		}
		offset = childEnd
	}
}

// split splits the node at the given byte offset into [0, offset) and
// [offset, len).
func (n *node) split(offset int) (*node, *node) {
	if offset <= 0 {
		return newLeaf(nil), n
	}
	if offset >= n.len() {
		return n, newLeaf(nil)
	}

	if n.isLeaf() {
		var left, right []chunk
		current := 0
		for _, c := range n.chunks {
			switch {
			case current+c.len() <= offset:
				left = append(left, c)
			case current >= offset:
				right = append(right, c)
			default:
				l, r := c.split(offset - current)
				left = append(left, l)
				right = append(right, r)
			}
			current += c.len()
		}
		return newLeaf(left), newLeaf(right)
	}

	var left, right []*node
	current := 0
	for _, child := range n.children {
		switch {
		case current+child.len() <= offset:
			left = append(left, child)
		case current >= offset:
			right = append(right, child)
		default:
			l, r := child.split(offset - current)
			if l.len() > 0 {
				left = append(left, l)
			}
			if r.len() > 0 {
				right = append(right, r)
			}
		}
		current += child.len()
	}
	return buildFromChildren(left), buildFromChildren(right)
}

// buildFromChildren creates a balanced tree over nodes of equal height.
func buildFromChildren(children []*node) *node {
	switch {
	case len(children) == 0:
		return newLeaf(nil)
	case len(children) == 1:
		return children[0]
	case len(children) <= MaxChildren:
		return newInternal(children)
	}

	parents := make([]*node, 0, len(children)/MaxChildren+1)
	for i := 0; i < len(children); i += MaxChildren {
		end := min(i+MaxChildren, len(children))
		parents = append(parents, newInternal(children[i:end:end]))
	}
	return buildFromChildren(parents)
}

// concat concatenates two nodes, sharing both.
func concat(left, right *node) *node {
	if left == nil || left.len() == 0 {
		if right == nil {
			return newLeaf(nil)
		}
		return right
	}
	if right == nil || right.len() == 0 {
		return left
	}

	for left.height < right.height {
		left = newInternal([]*node{left})
	}
	for right.height < left.height {
		right = newInternal([]*node{right})
	}

	if left.isLeaf() {
		if len(left.chunks)+len(right.chunks) <= MaxChunksPerLeaf {
			chunks := make([]chunk, 0, len(left.chunks)+len(right.chunks))
			chunks = append(chunks, left.chunks...)
			chunks = append(chunks, right.chunks...)
			return newLeaf(chunks)
		}
		return newInternal([]*node{left, right})
	}

	children := make([]*node, 0, len(left.children)+len(right.children))
	children = append(children, left.children...)
	children = append(children, right.children...)
	return buildFromChildren(children)
}

// seek descends to the chunk holding unit index target of the given metric.
// It returns that chunk and the summary of all text before it. A target at
// or past the end resolves to the last chunk.
func (n *node) seek(m metric, target int) (string, TextSummary) {
	var before TextSummary
	for !n.isLeaf() {
		next := n.children[len(n.children)-1]
		for _, child := range n.children[:len(n.children)-1] {
			if m(before)+m(child.summary) > target {
				next = child
				break
			}
			before = before.Add(child.summary)
		}
		n = next
	}

	if len(n.chunks) == 0 {
		return "", before
	}
	for _, c := range n.chunks[:len(n.chunks)-1] {
		if m(before)+m(c.summary) > target {
			return c.data, before
		}
		before = before.Add(c.summary)
	}
	return n.chunks[len(n.chunks)-1].data, before
}
