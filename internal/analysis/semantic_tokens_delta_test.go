package analysis

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const deltaBaseSchema = "struct User {\n" +
	"  id: Id,\n" +
	"  name: String\n" +
	"}\n" +
	"struct Order {\n" +
	"  user: User\n" +
	"}\n"

// applyEdits replays semantic token edits against an encoded token array the
// way a client does.
func applyEdits(data []uint32, edits []protocol.SemanticTokensEdit) []uint32 {
	out := slices.Clone(data)
	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b protocol.SemanticTokensEdit) int {
		return int(b.Start) - int(a.Start)
	})
	for _, edit := range sorted {
		out = slices.Replace(out, int(edit.Start), int(edit.Start+edit.DeleteCount), edit.Data...)
	}
	return out
}

func TestComputeSemanticTokensDelta_Edits(t *testing.T) {
	tests := []struct {
		name            string
		after           string
		wantStart       uint32
		wantDeleteCount uint32
		wantDataLen     int
	}{
		{
			// Only the field length and the next token's column move.
			name:            "rename field",
			after:           "struct User {\n  id: Id,\n  title: String\n}\nstruct Order {\n  user: User\n}\n",
			wantStart:       22,
			wantDeleteCount: 5,
			wantDataLen:     5,
		},
		{
			name:            "add struct at end",
			after:           deltaBaseSchema + "struct Tag {}\n",
			wantStart:       50,
			wantDeleteCount: 0,
			wantDataLen:     10,
		},
		{
			name:            "insert optional field",
			after:           "struct User {\n  id: Id,\n  email?: Email,\n  name: String\n}\nstruct Order {\n  user: User\n}\n",
			wantStart:       22,
			wantDeleteCount: 0,
			wantDataLen:     10,
		},
		{
			name:            "change field type",
			after:           "struct User {\n  id: Id,\n  name: String\n}\nstruct Order {\n  user: Id\n}\n",
			wantStart:       47,
			wantDeleteCount: 1,
			wantDataLen:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldTokens := collect(t, deltaBaseSchema)
			newTokens := collect(t, tt.after)
			require.Len(t, oldTokens, 10)

			result := ComputeSemanticTokensDelta(oldTokens, newTokens, "v2")
			require.True(t, result.IsDelta)
			require.NotNil(t, result.Delta)
			assert.Nil(t, result.Full)
			require.NotNil(t, result.Delta.ResultId)
			assert.Equal(t, "v2", *result.Delta.ResultId)

			require.Len(t, result.Delta.Edits, 1)
			edit := result.Delta.Edits[0]
			assert.Equal(t, tt.wantStart, edit.Start)
			assert.Equal(t, tt.wantDeleteCount, edit.DeleteCount)
			assert.Len(t, edit.Data, tt.wantDataLen)

			newEncoded := EncodeSemanticTokens(newTokens)
			assert.Equal(t, newEncoded[edit.Start:int(edit.Start)+len(edit.Data)], edit.Data)
			assert.Equal(t, newEncoded, applyEdits(EncodeSemanticTokens(oldTokens), result.Delta.Edits))
		})
	}
}

func TestComputeSemanticTokensDelta_WhitespaceOnlyEdit(t *testing.T) {
	// Trailing blank lines and spaces after the last token do not move any
	// token.
	oldTokens := collect(t, deltaBaseSchema)
	newTokens := collect(t, deltaBaseSchema+"\n\n   ")

	result := ComputeSemanticTokensDelta(oldTokens, newTokens, "v2")
	require.True(t, result.IsDelta)
	assert.NotNil(t, result.Delta.Edits)
	assert.Empty(t, result.Delta.Edits)
}

func TestComputeSemanticTokensDelta_RewriteFallsBackToFull(t *testing.T) {
	oldTokens := collect(t, deltaBaseSchema)
	newTokens := collect(t, "use a::b\n")

	result := ComputeSemanticTokensDelta(oldTokens, newTokens, "v2")
	assert.False(t, result.IsDelta)
	assert.Nil(t, result.Delta)
	require.NotNil(t, result.Full)
	require.NotNil(t, result.Full.ResultID)
	assert.Equal(t, "v2", *result.Full.ResultID)
	assert.Equal(t, EncodeSemanticTokens(newTokens), result.Full.Data)
}

func TestComputeSemanticTokensDelta_DocumentCleared(t *testing.T) {
	oldTokens := collect(t, deltaBaseSchema)
	newTokens := collect(t, "")
	require.Empty(t, newTokens)

	result := ComputeSemanticTokensDelta(oldTokens, newTokens, "v2")
	require.True(t, result.IsDelta)
	require.Len(t, result.Delta.Edits, 1)
	assert.Equal(t, uint32(0), result.Delta.Edits[0].Start)
	assert.Equal(t, uint32(50), result.Delta.Edits[0].DeleteCount)
	assert.Empty(t, result.Delta.Edits[0].Data)
}

func TestComputeSemanticTokensDelta_NoPreviousTokens(t *testing.T) {
	tests := []struct {
		name  string
		after string
	}{
		{"first request", deltaBaseSchema},
		{"empty document", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newTokens := collect(t, tt.after)

			result := ComputeSemanticTokensDelta(nil, newTokens, "v1")
			assert.False(t, result.IsDelta)
			require.NotNil(t, result.Full)
			assert.NotNil(t, result.Full.Data)
			assert.Equal(t, EncodeSemanticTokens(newTokens), result.Full.Data)
		})
	}
}
