// Package document translates editor positions and edits into operations
// on the rope-backed document texts held by the database.
package document

import (
	"errors"
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/CWBudde/go-kidl-lsp/internal/rope"
)

// ErrUnsupportedChange is returned for a content change of unknown shape.
var ErrUnsupportedChange = errors.New("unsupported content change")

// ApplyContentChange applies one LSP content change to text and returns the
// updated text. A change without a range replaces the whole text. Positions
// are in UTF-16 code units as LSP requires.
func ApplyContentChange(text rope.Rope, change any) (rope.Rope, error) {
	switch c := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return rope.FromString(c.Text), nil
	case *protocol.TextDocumentContentChangeEventWhole:
		return rope.FromString(c.Text), nil
	case protocol.TextDocumentContentChangeEvent:
		return applyRangeChange(text, c)
	case *protocol.TextDocumentContentChangeEvent:
		return applyRangeChange(text, *c)
	}
	return text, fmt.Errorf("%w: %T", ErrUnsupportedChange, change)
}

// ApplyContentChanges applies changes in order, each against the text left
// by the previous one. On error the original text is returned unchanged.
func ApplyContentChanges(text rope.Rope, changes []any) (rope.Rope, error) {
	next := text
	for i, change := range changes {
		var err error
		next, err = ApplyContentChange(next, change)
		if err != nil {
			return text, fmt.Errorf("change %d: %w", i, err)
		}
	}
	return next, nil
}

func applyRangeChange(text rope.Rope, change protocol.TextDocumentContentChangeEvent) (rope.Rope, error) {
	if change.Range == nil {
		return rope.FromString(change.Text), nil
	}

	start, err := PositionToChar(text, change.Range.Start)
	if err != nil {
		return text, fmt.Errorf("invalid start position: %w", err)
	}
	end, err := PositionToChar(text, change.Range.End)
	if err != nil {
		return text, fmt.Errorf("invalid end position: %w", err)
	}
	if start > end {
		return text, fmt.Errorf("start position %d:%d after end position %d:%d",
			change.Range.Start.Line, change.Range.Start.Character,
			change.Range.End.Line, change.Range.End.Character)
	}

	return text.ReplaceChars(start, end, change.Text)
}

// isWholeChange reports whether change replaces the entire text.
func isWholeChange(change any) bool {
	switch c := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole, *protocol.TextDocumentContentChangeEventWhole:
		return true
	case protocol.TextDocumentContentChangeEvent:
		return c.Range == nil
	case *protocol.TextDocumentContentChangeEvent:
		return c.Range == nil
	}
	return false
}
