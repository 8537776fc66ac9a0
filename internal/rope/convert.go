package rope

import (
	"fmt"
	"unicode/utf8"
)

// ByteToChar returns the char index of the char containing byte offset b.
// An offset inside a multi-byte sequence rounds down to its char.
func (r Rope) ByteToChar(b int) (int, error) {
	if b < 0 || b > r.Len() {
		return 0, fmt.Errorf("byte offset %d (0-%d): %w", b, r.Len(), ErrOutOfRange)
	}
	if r.root == nil {
		return 0, nil
	}

	text, before := r.root.seek(byBytes, b)
	chars := before.Chars
	for i := 0; i < len(text); {
		_, w := utf8.DecodeRuneInString(text[i:])
		if before.Bytes+i+w > b {
			break
		}
		chars++
		i += w
	}
	return chars, nil
}

// CharToByte returns the byte offset at which char c starts.
func (r Rope) CharToByte(c int) (int, error) {
	if c < 0 || c > r.LenChars() {
		return 0, fmt.Errorf("char offset %d (0-%d): %w", c, r.LenChars(), ErrOutOfRange)
	}
	if r.root == nil {
		return 0, nil
	}

	text, before := r.root.seek(byChars, c)
	offset := before.Bytes
	for i, chars := 0, before.Chars; i < len(text) && chars < c; chars++ {
		_, w := utf8.DecodeRuneInString(text[i:])
		i += w
		offset += w
	}
	return offset, nil
}

// CharToUTF16 returns the UTF-16 code unit offset at which char c starts.
func (r Rope) CharToUTF16(c int) (int, error) {
	if c < 0 || c > r.LenChars() {
		return 0, fmt.Errorf("char offset %d (0-%d): %w", c, r.LenChars(), ErrOutOfRange)
	}
	if r.root == nil {
		return 0, nil
	}

	text, before := r.root.seek(byChars, c)
	units := before.UTF16Units
	for i, chars := 0, before.Chars; i < len(text) && chars < c; chars++ {
		ch, w := utf8.DecodeRuneInString(text[i:])
		i += w
		units += utf16Len(ch)
	}
	return units, nil
}

// UTF16ToChar returns the char index containing UTF-16 offset u. An offset
// that falls between the two halves of a surrogate pair rounds down to the
// start of that char.
func (r Rope) UTF16ToChar(u int) (int, error) {
	if u < 0 || u > r.LenUTF16() {
		return 0, fmt.Errorf("utf-16 offset %d (0-%d): %w", u, r.LenUTF16(), ErrOutOfRange)
	}
	if r.root == nil {
		return 0, nil
	}

	text, before := r.root.seek(byUTF16, u)
	chars, units := before.Chars, before.UTF16Units
	for i := 0; i < len(text); {
		ch, w := utf8.DecodeRuneInString(text[i:])
		if units+utf16Len(ch) > u {
			break
		}
		units += utf16Len(ch)
		chars++
		i += w
	}
	return chars, nil
}

// LineToByte returns the byte offset at which line starts. Lines are
// 0-indexed and separated by '\n'.
func (r Rope) LineToByte(line int) (int, error) {
	lines := r.Summary().Lines
	if line < 0 || line > lines {
		return 0, fmt.Errorf("line %d (0-%d): %w", line, lines, ErrOutOfRange)
	}
	if line == 0 {
		return 0, nil
	}

	// Line n starts right after newline number n-1.
	text, before := r.root.seek(byLines, line-1)
	newlines := before.Lines
	for i := 0; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		newlines++
		if newlines == line {
			return before.Bytes + i + 1, nil
		}
	}
	return r.Len(), nil
}

// LineToChar returns the char index at which line starts.
func (r Rope) LineToChar(line int) (int, error) {
	b, err := r.LineToByte(line)
	if err != nil {
		return 0, err
	}
	return r.ByteToChar(b)
}

// ByteToLine returns the line containing byte offset b.
func (r Rope) ByteToLine(b int) (int, error) {
	if b < 0 || b > r.Len() {
		return 0, fmt.Errorf("byte offset %d (0-%d): %w", b, r.Len(), ErrOutOfRange)
	}
	if r.root == nil {
		return 0, nil
	}

	text, before := r.root.seek(byBytes, b)
	line := before.Lines
	for i := 0; i < len(text) && before.Bytes+i < b; i++ {
		if text[i] == '\n' {
			line++
		}
	}
	return line, nil
}

// CharToLine returns the line containing char c.
func (r Rope) CharToLine(c int) (int, error) {
	b, err := r.CharToByte(c)
	if err != nil {
		return 0, err
	}
	return r.ByteToLine(b)
}

// LineEndByte returns the byte offset of the end of line, excluding its
// newline.
func (r Rope) LineEndByte(line int) (int, error) {
	if line == r.Summary().Lines {
		return r.Len(), nil
	}
	next, err := r.LineToByte(line + 1)
	if err != nil {
		return 0, err
	}
	return next - 1, nil
}
