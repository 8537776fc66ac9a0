package analysis

import (
	"slices"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/server"
)

// DeltaThreshold defines the threshold for using delta vs full response.
// If the delta size is more than this fraction of the full size, the full
// token set is returned instead.
const DeltaThreshold = 0.7

// SemanticTokensDeltaResult wraps either a delta or full response.
type SemanticTokensDeltaResult struct {
	IsDelta bool                           // true if delta, false if full
	Delta   *protocol.SemanticTokensDelta // set if IsDelta == true
	Full    *protocol.SemanticTokens      // set if IsDelta == false
}

// ComputeSemanticTokensDelta computes the edits turning oldTokens into
// newTokens. It falls back to a full response when there is nothing to diff
// against or when the edits would not be smaller than the full set.
func ComputeSemanticTokensDelta(oldTokens, newTokens []server.SemanticToken, newResultID string) *SemanticTokensDeltaResult {
	newEncoded := EncodeSemanticTokens(newTokens)

	if len(oldTokens) == 0 {
		log.Debug("no previous tokens, returning full semantic tokens")
		return fullResult(newResultID, newEncoded)
	}

	edits := computeEdits(EncodeSemanticTokens(oldTokens), newEncoded)

	deltaSize := calculateDeltaSize(edits)
	fullSize := len(newEncoded)

	// An empty new set is always cheapest as a single delete-all edit.
	if fullSize > 0 && float64(deltaSize) > float64(fullSize)*DeltaThreshold {
		log.Debugf("delta too large (%d vs %d), returning full semantic tokens", deltaSize, fullSize)
		return fullResult(newResultID, newEncoded)
	}

	log.Debugf("returning delta with %d edits (delta size: %d, full size: %d)", len(edits), deltaSize, fullSize)
	return &SemanticTokensDeltaResult{
		IsDelta: true,
		Delta: &protocol.SemanticTokensDelta{
			ResultId: &newResultID,
			Edits:    edits,
		},
	}
}

func fullResult(resultID string, data []uint32) *SemanticTokensDeltaResult {
	return &SemanticTokensDeltaResult{
		Full: &protocol.SemanticTokens{
			ResultID: &resultID,
			Data:     data,
		},
	}
}

// computeEdits returns a single edit replacing the region between the common
// prefix and suffix of the two encodings, or no edits if they are equal.
func computeEdits(oldEncoded, newEncoded []uint32) []protocol.SemanticTokensEdit {
	edits := []protocol.SemanticTokensEdit{}

	prefix := 0
	maxPrefix := min(len(oldEncoded), len(newEncoded))
	for prefix < maxPrefix && oldEncoded[prefix] == newEncoded[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(oldEncoded)-prefix &&
		suffix < len(newEncoded)-prefix &&
		oldEncoded[len(oldEncoded)-1-suffix] == newEncoded[len(newEncoded)-1-suffix] {
		suffix++
	}

	if prefix+suffix >= max(len(oldEncoded), len(newEncoded)) {
		return edits
	}

	insert := newEncoded[prefix : len(newEncoded)-suffix]
	return append(edits, protocol.SemanticTokensEdit{
		Start:       uint32(prefix),
		DeleteCount: uint32(len(oldEncoded) - suffix - prefix),
		Data:        slices.Clone(insert),
	})
}

// calculateDeltaSize estimates the size of the delta response in uint32 values.
func calculateDeltaSize(edits []protocol.SemanticTokensEdit) int {
	size := 0
	for _, edit := range edits {
		size += 2 + len(edit.Data)
	}
	return size
}
