package rope

import (
	"errors"
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharConversions(t *testing.T) {
	// "a😀b" : 'a' 1 byte, '😀' 4 bytes / 2 utf-16 units, 'b' 1 byte
	r := FromString("a😀b")

	tests := []struct {
		char, byteOff, utf16 int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{2, 5, 3},
		{3, 6, 4},
	}

	for _, tt := range tests {
		b, err := r.CharToByte(tt.char)
		require.NoError(t, err)
		assert.Equal(t, tt.byteOff, b, "CharToByte(%d)", tt.char)

		u, err := r.CharToUTF16(tt.char)
		require.NoError(t, err)
		assert.Equal(t, tt.utf16, u, "CharToUTF16(%d)", tt.char)

		c, err := r.ByteToChar(tt.byteOff)
		require.NoError(t, err)
		assert.Equal(t, tt.char, c, "ByteToChar(%d)", tt.byteOff)

		c, err = r.UTF16ToChar(tt.utf16)
		require.NoError(t, err)
		assert.Equal(t, tt.char, c, "UTF16ToChar(%d)", tt.utf16)
	}
}

func TestRoundingInsideSequences(t *testing.T) {
	r := FromString("a😀b")

	c, err := r.UTF16ToChar(2)
	require.NoError(t, err)
	assert.Equal(t, 1, c, "middle of a surrogate pair rounds down")

	c, err = r.ByteToChar(3)
	require.NoError(t, err)
	assert.Equal(t, 1, c, "middle of a UTF-8 sequence rounds down")
}

func TestOutOfRange(t *testing.T) {
	r := FromString("abc\ndef")

	_, err := r.CharToByte(8)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = r.ByteToChar(-1)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = r.UTF16ToChar(100)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = r.LineToByte(2)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = r.ReplaceChars(3, 1, "")
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestLines(t *testing.T) {
	text := "struct A {}\n\nstruct B {\n  x: Int\n}"
	r := FromString(text)

	lineStarts := []int{0, 12, 13, 24, 33}
	for line, want := range lineStarts {
		got, err := r.LineToByte(line)
		require.NoError(t, err)
		assert.Equal(t, want, got, "LineToByte(%d)", line)

		l, err := r.ByteToLine(want)
		require.NoError(t, err)
		assert.Equal(t, line, l, "ByteToLine(%d)", want)
	}

	end, err := r.LineEndByte(0)
	require.NoError(t, err)
	assert.Equal(t, 11, end)

	end, err = r.LineEndByte(4)
	require.NoError(t, err)
	assert.Equal(t, len(text), end)

	l, err := r.ByteToLine(11)
	require.NoError(t, err)
	assert.Equal(t, 0, l, "newline byte belongs to the line it ends")
}

func TestLinesAcrossChunks(t *testing.T) {
	line := strings.Repeat("é", 50) + "\n"
	text := strings.Repeat(line, 100)
	r := FromString(text)

	for i := 0; i < 100; i++ {
		b, err := r.LineToByte(i)
		require.NoError(t, err)
		assert.Equal(t, i*len(line), b)

		c, err := r.LineToChar(i)
		require.NoError(t, err)
		assert.Equal(t, i*51, c)
	}
}

func TestReplaceChars(t *testing.T) {
	r := FromString("x: 😀Int")
	got, err := r.ReplaceChars(4, 7, "Long")
	require.NoError(t, err)
	assert.Equal(t, "x: 😀Long", got.String())
}

func TestByteCharRoundTripProperty(t *testing.T) {
	f := func(s string) bool {
		r := FromString(strings.Repeat(s, 20))
		text := r.String()
		for i := 0; i <= len(text); {
			c, err := r.ByteToChar(i)
			if err != nil {
				return false
			}
			b, err := r.CharToByte(c)
			if err != nil || b != i {
				return false
			}
			if i == len(text) {
				break
			}
			_, w := utf8.DecodeRuneInString(text[i:])
			i += w
		}
		return true
	}
	require.NoError(t, quick.Check(f, nil))
}
