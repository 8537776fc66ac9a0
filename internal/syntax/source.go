package syntax

import (
	"slices"
	"unicode/utf8"

	"github.com/CWBudde/go-kidl-lsp/internal/rope"
)

// EOF is returned by Source.Next and Source.Peek at the end of input.
const EOF rune = -1

// Source is a character stream the lexer reads from. Offsets are absolute
// byte offsets. An invalid UTF-8 byte is reported as utf8.RuneError with a
// width of one, so no byte is ever skipped.
type Source interface {
	// Next consumes and returns the next rune and its byte width.
	Next() (rune, int)
	// Peek returns the next rune without consuming it.
	Peek() (rune, int)
	// Offset returns the byte offset of the next rune.
	Offset() int
	// Slice returns the text in [start, end).
	Slice(start, end int) string
}

// StringSource reads from an immutable string.
type StringSource struct {
	text string
	pos  int
}

// NewStringSource returns a Source over text.
func NewStringSource(text string) *StringSource {
	return &StringSource{text: text}
}

func (s *StringSource) Next() (rune, int) {
	r, w := s.Peek()
	s.pos += w
	return r, w
}

func (s *StringSource) Peek() (rune, int) {
	if s.pos >= len(s.text) {
		return EOF, 0
	}
	return utf8.DecodeRuneInString(s.text[s.pos:])
}

func (s *StringSource) Offset() int { return s.pos }

func (s *StringSource) Slice(start, end int) string { return s.text[start:end] }

// RopeSource reads a byte range of a rope chunk by chunk without
// materializing the whole text.
type RopeSource struct {
	text   rope.Rope
	chunks []string
	idx    int
	pos    int
	offset int
}

// NewRopeSource returns a Source over the byte range [start, end) of text.
func NewRopeSource(text rope.Rope, start, end int) *RopeSource {
	chunks := slices.Collect(text.ChunksInRange(start, end))
	return &RopeSource{text: text, chunks: chunks, offset: max(start, 0)}
}

func (s *RopeSource) Next() (rune, int) {
	r, w := s.Peek()
	s.offset += w
	for n := w; n > 0 && s.idx < len(s.chunks); {
		rem := len(s.chunks[s.idx]) - s.pos
		if n < rem {
			s.pos += n
			break
		}
		n -= rem
		s.idx++
		s.pos = 0
	}
	return r, w
}

func (s *RopeSource) Peek() (rune, int) {
	if s.idx >= len(s.chunks) {
		return EOF, 0
	}

	rest := s.chunks[s.idx][s.pos:]
	if utf8.FullRuneInString(rest) || s.idx == len(s.chunks)-1 {
		return utf8.DecodeRuneInString(rest)
	}

	// The rune straddles a chunk boundary.
	var buf [utf8.UTFMax]byte
	n := copy(buf[:], rest)
	for j := s.idx + 1; j < len(s.chunks) && n < len(buf); j++ {
		n += copy(buf[n:], s.chunks[j])
	}
	return utf8.DecodeRune(buf[:n])
}

func (s *RopeSource) Offset() int { return s.offset }

func (s *RopeSource) Slice(start, end int) string { return s.text.Slice(start, end) }
