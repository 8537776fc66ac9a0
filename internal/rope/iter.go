package rope

import "iter"

// Chunks returns an iterator over the rope's chunks in order.
func (r Rope) Chunks() iter.Seq[string] {
	return r.ChunksInRange(0, r.Len())
}

// ChunksInRange returns an iterator over the text in the byte range
// [start, end), yielded chunk by chunk without copying.
func (r Rope) ChunksInRange(start, end int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if r.root == nil || start >= end {
			return
		}
		walkChunks(r.root, 0, max(start, 0), min(end, r.Len()), yield)
	}
}

// walkChunks yields the parts of n's chunks within [start, end). offset is
// n's absolute position. It returns false once yield asked to stop.
func walkChunks(n *node, offset, start, end int, yield func(string) bool) bool {
	if n.isLeaf() {
		for _, c := range n.chunks {
			chunkEnd := offset + c.len()
			if chunkEnd > start && offset < end {
				if !yield(c.data[max(start-offset, 0) : min(end, chunkEnd)-offset]) {
					return false
				}
			}
			if chunkEnd >= end {
				return true
			}
			offset = chunkEnd
		}
		return true
	}

	for _, child := range n.children {
		childEnd := offset + child.len()
		if childEnd > start && offset < end {
			if !walkChunks(child, offset, start, end, yield) {
				return false
			}
		}
		if childEnd >= end {
			return true
		}
		offset = childEnd
	}
	return true
}
