package document

import (
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/rope"
)

// PositionToChar converts an LSP position (line, UTF-16 column) to a char
// offset. A column past the end of the line resolves to the line end, before
// any \r\n or \n terminator, and a column between the halves of a surrogate
// pair resolves to the start of that character.
func PositionToChar(text rope.Rope, pos protocol.Position) (int, error) {
	line := int(pos.Line)
	lastLine := text.LenLines() - 1
	if line > lastLine {
		return 0, fmt.Errorf("line %d out of range (0-%d): %w", line, lastLine, rope.ErrOutOfRange)
	}

	startChar, err := text.LineToChar(line)
	if err != nil {
		return 0, err
	}
	endByte, err := text.LineEndByte(line)
	if err != nil {
		return 0, err
	}
	if endByte < text.Len() {
		startByte, err := text.LineToByte(line)
		if err != nil {
			return 0, err
		}
		if endByte > startByte && text.Slice(endByte-1, endByte) == "\r" {
			endByte--
		}
	}
	endChar, err := text.ByteToChar(endByte)
	if err != nil {
		return 0, err
	}

	startUnits, err := text.CharToUTF16(startChar)
	if err != nil {
		return 0, err
	}
	endUnits, err := text.CharToUTF16(endChar)
	if err != nil {
		return 0, err
	}

	target := min(startUnits+int(pos.Character), endUnits)
	return text.UTF16ToChar(target)
}

// PositionToByte converts an LSP position to a byte offset.
func PositionToByte(text rope.Rope, pos protocol.Position) (int, error) {
	c, err := PositionToChar(text, pos)
	if err != nil {
		return 0, err
	}
	return text.CharToByte(c)
}

// ByteToPosition converts a byte offset to an LSP position. An offset inside
// a multi-byte character maps to that character's start.
func ByteToPosition(text rope.Rope, offset int) (protocol.Position, error) {
	line, err := text.ByteToLine(offset)
	if err != nil {
		return protocol.Position{}, err
	}
	lineStart, err := text.LineToChar(line)
	if err != nil {
		return protocol.Position{}, err
	}
	c, err := text.ByteToChar(offset)
	if err != nil {
		return protocol.Position{}, err
	}

	lineUnits, err := text.CharToUTF16(lineStart)
	if err != nil {
		return protocol.Position{}, err
	}
	units, err := text.CharToUTF16(c)
	if err != nil {
		return protocol.Position{}, err
	}

	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(units - lineUnits),
	}, nil
}

// ByteRange converts a byte range to an LSP range.
func ByteRange(text rope.Rope, start, end int) (protocol.Range, error) {
	startPos, err := ByteToPosition(text, start)
	if err != nil {
		return protocol.Range{}, fmt.Errorf("invalid start offset: %w", err)
	}
	endPos, err := ByteToPosition(text, end)
	if err != nil {
		return protocol.Range{}, fmt.Errorf("invalid end offset: %w", err)
	}
	return protocol.Range{Start: startPos, End: endPos}, nil
}
