package server

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// CachedTokens is the last token set sent for a document.
type CachedTokens struct {
	ResultID string          // Identifier the client echoes in delta requests
	Version  uint64          // Document version the tokens were computed from
	Tokens   []SemanticToken // Raw tokens (not encoded)
}

// SemanticTokensCache remembers the last token set per document so that
// semanticTokens/full/delta can be answered with edits. Delta requests
// always refer to the previous result, so older results are dropped.
type SemanticTokensCache struct {
	mu      sync.RWMutex
	entries map[protocol.DocumentUri]*CachedTokens
}

// NewSemanticTokensCache creates a new semantic tokens cache.
func NewSemanticTokensCache() *SemanticTokensCache {
	return &SemanticTokensCache{
		entries: make(map[protocol.DocumentUri]*CachedTokens),
	}
}

var resultSeq atomic.Uint64

// GenerateResultID returns a result identifier for a token set computed
// from version of uri. Identifiers are unique within the process.
func GenerateResultID(uri protocol.DocumentUri, version uint64) string {
	h := xxhash.Sum64String(uri)
	return strconv.FormatUint(h, 36) + "-" +
		strconv.FormatUint(version, 36) + "-" +
		strconv.FormatUint(resultSeq.Add(1), 36)
}

// Store records tokens as the latest result for uri.
func (c *SemanticTokensCache) Store(uri protocol.DocumentUri, version uint64, resultID string, tokens []SemanticToken) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[uri] = &CachedTokens{
		ResultID: resultID,
		Version:  version,
		Tokens:   tokens,
	}
}

// Retrieve returns the cached tokens for uri if resultID is still the latest
// result.
func (c *SemanticTokensCache) Retrieve(uri protocol.DocumentUri, resultID string) (*CachedTokens, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cached, found := c.entries[uri]
	if !found || cached.ResultID != resultID {
		return nil, false
	}
	return cached, true
}

// Latest returns the latest cached result for uri.
func (c *SemanticTokensCache) Latest(uri protocol.DocumentUri) (*CachedTokens, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cached, found := c.entries[uri]
	return cached, found
}

// InvalidateDocument drops the cached tokens for uri.
func (c *SemanticTokensCache) InvalidateDocument(uri protocol.DocumentUri) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, uri)
}

// Clear removes all cached tokens from the cache.
func (c *SemanticTokensCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[protocol.DocumentUri]*CachedTokens)
}

// Size returns the number of cached documents.
func (c *SemanticTokensCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
