package rope

import "strings"

// Builder provides efficient incremental construction of a rope.
// It buffers writes and builds the rope structure when Build is called.
type Builder struct {
	chunks []chunk
	buffer strings.Builder
}

// NewBuilder creates a new rope builder.
func NewBuilder() *Builder {
	return &Builder{chunks: make([]chunk, 0, 64)}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) (int, error) {
	b.buffer.WriteString(s)
	if b.buffer.Len() >= MaxChunkSize*2 {
		b.flush()
	}
	return len(s), nil
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	return b.WriteString(string(p))
}

// flush moves buffered text into chunks. A trailing partial UTF-8 sequence
// stays buffered so a chunk never ends inside a rune.
func (b *Builder) flush() {
	s := b.buffer.String()
	cut := len(s)
	for i := len(s) - 1; i >= 0 && i >= len(s)-3; i-- {
		if isUTF8Start(s[i]) {
			if s[i] >= 0xC0 {
				cut = i
			}
			break
		}
	}

	b.chunks = append(b.chunks, splitIntoChunks(s[:cut])...)
	b.buffer.Reset()
	b.buffer.WriteString(s[cut:])
}

// Build returns the rope built from everything written so far.
func (b *Builder) Build() Rope {
	b.chunks = append(b.chunks, splitIntoChunks(b.buffer.String())...)
	b.buffer.Reset()
	return buildFromChunks(b.chunks)
}
