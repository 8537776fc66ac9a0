package syntax

import (
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// nextID hands out process-wide element identities used as cache keys.
var nextID atomic.Uint64

// CacheStats reports de-duplication counters.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Nodes  int
	Tokens int
}

// NodeCache hash-conses green nodes and tokens so identical subtrees share
// storage across parses. It is safe for concurrent use; every parse holds
// the lock once, for the duration of tree construction.
type NodeCache struct {
	mu sync.Mutex
	in Interner
}

// NewNodeCache returns an empty cache.
func NewNodeCache() *NodeCache {
	return &NodeCache{in: newInterner()}
}

// With runs fn with exclusive access to the cache's interner. The interner
// must not be retained after fn returns.
func (c *NodeCache) With(fn func(in *Interner)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.in)
}

// Stats returns a snapshot of the cache counters.
func (c *NodeCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Hits:   c.in.hits,
		Misses: c.in.misses,
		Nodes:  c.in.nodeCount,
		Tokens: c.in.tokenCount,
	}
}

// Interner is the unsynchronized core of a NodeCache.
type Interner struct {
	nodes  map[uint64][]*GreenNode
	tokens map[uint64][]*GreenToken

	hits, misses          uint64
	nodeCount, tokenCount int
}

func newInterner() Interner {
	return Interner{
		nodes:  make(map[uint64][]*GreenNode),
		tokens: make(map[uint64][]*GreenToken),
	}
}

// Token returns the shared token for (kind, text).
func (in *Interner) Token(kind TokenKind, text string) *GreenToken {
	d := xxhash.New()
	writeKind(d, uint16(kind))
	_, _ = d.WriteString(text)
	key := d.Sum64()

	for _, t := range in.tokens[key] {
		if t.kind == kind && t.text == text {
			in.hits++
			return t
		}
	}

	in.misses++
	in.tokenCount++
	t := &GreenToken{kind: kind, text: text, uid: nextID.Add(1)}
	in.tokens[key] = append(in.tokens[key], t)
	return t
}

// Node returns the shared node for (kind, children). Children are compared
// by identity since they come from the same interner.
func (in *Interner) Node(kind NodeKind, children []GreenElement) *GreenNode {
	d := xxhash.New()
	writeKind(d, uint16(kind))
	var buf [8]byte
	for _, c := range children {
		binary.LittleEndian.PutUint64(buf[:], c.id())
		_, _ = d.Write(buf[:])
	}
	key := d.Sum64()

	for _, n := range in.nodes[key] {
		if n.kind == kind && sameChildren(n.children, children) {
			in.hits++
			return n
		}
	}

	in.misses++
	in.nodeCount++
	owned := make([]GreenElement, len(children))
	copy(owned, children)
	n := &GreenNode{kind: kind, children: owned, uid: nextID.Add(1)}
	for _, c := range owned {
		n.textLen += c.TextLen()
	}
	in.nodes[key] = append(in.nodes[key], n)
	return n
}

func sameChildren(a, b []GreenElement) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func writeKind(d *xxhash.Digest, kind uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], kind)
	_, _ = d.Write(buf[:])
}
