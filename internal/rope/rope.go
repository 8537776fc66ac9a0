package rope

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrOutOfRange is returned when an offset, line or position lies outside
// the rope.
var ErrOutOfRange = errors.New("offset out of range")

// Rope is an immutable text buffer. Operations return new Rope values; the
// original is never modified, which makes concurrent reads safe.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeaf(nil)}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	return buildFromChunks(splitIntoChunks(s))
}

// FromReader creates a rope from an io.Reader.
func FromReader(r io.Reader) (Rope, error) {
	b := NewBuilder()
	if _, err := io.Copy(b, r); err != nil {
		return Rope{}, fmt.Errorf("failed to read text: %w", err)
	}
	return b.Build(), nil
}

func buildFromChunks(chunks []chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	nodes := make([]*node, 0, len(chunks)/MaxChunksPerLeaf+1)
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		nodes = append(nodes, newLeaf(chunks[i:end:end]))
	}
	return Rope{root: buildFromChildren(nodes)}
}

// Len returns the total byte length.
func (r Rope) Len() int {
	return r.Summary().Bytes
}

// LenChars returns the number of chars.
func (r Rope) LenChars() int {
	return r.Summary().Chars
}

// LenUTF16 returns the number of UTF-16 code units.
func (r Rope) LenUTF16() int {
	return r.Summary().UTF16Units
}

// LenLines returns the number of lines (newlines + 1).
func (r Rope) LenLines() int {
	return r.Summary().Lines + 1
}

// IsEmpty reports whether the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{}
	}
	return r.root.summary
}

// String returns the full text.
func (r Rope) String() string {
	return r.Slice(0, r.Len())
}

// Slice returns the text in the byte range [start, end), clamped to the
// rope.
func (r Rope) Slice(start, end int) string {
	start = max(start, 0)
	end = min(end, r.Len())
	if r.root == nil || start >= end {
		return ""
	}

	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// Split splits the rope at a byte offset into [0, offset) and [offset, len).
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}

	left, right := r.root.split(offset)
	return Rope{root: left}, Rope{root: right}
}

// Concat concatenates two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// Insert inserts text at the given byte offset.
func (r Rope) Insert(offset int, text string) Rope {
	return r.Replace(offset, offset, text)
}

// Delete removes the byte range [start, end).
func (r Rope) Delete(start, end int) Rope {
	return r.Replace(start, end, "")
}

// Replace replaces the byte range [start, end) with text. The range is
// clamped to the rope. Offsets should fall on char boundaries; a cut through
// a UTF-8 sequence leaves the metrics counting each half separately.
func (r Rope) Replace(start, end int, text string) Rope {
	start = min(max(start, 0), r.Len())
	end = min(max(end, start), r.Len())
	if start == end && text == "" {
		return r
	}

	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(FromString(text)).Concat(right)
}

// ReplaceChars replaces the char range [start, end) with text.
func (r Rope) ReplaceChars(start, end int, text string) (Rope, error) {
	if start > end {
		return r, fmt.Errorf("char range %d..%d: %w", start, end, ErrOutOfRange)
	}
	startByte, err := r.CharToByte(start)
	if err != nil {
		return r, err
	}
	endByte, err := r.CharToByte(end)
	if err != nil {
		return r, err
	}
	return r.Replace(startByte, endByte, text), nil
}

// Equals reports whether two ropes contain the same text.
func (r Rope) Equals(other Rope) bool {
	if r.Summary() != other.Summary() {
		return false
	}
	return r.String() == other.String()
}
