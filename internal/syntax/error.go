package syntax

import "fmt"

// TextRange is a half-open byte range [Start, End).
type TextRange struct {
	Start int
	End   int
}

// Len returns the number of bytes in the range.
func (r TextRange) Len() int { return r.End - r.Start }

// Contains reports whether offset lies in [Start, End).
func (r TextRange) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// SyntaxError is a recoverable parse error. A parse always yields a tree;
// errors travel beside it.
type SyntaxError struct {
	Message string
	Range   TextRange
}

// NewErrorAt returns a zero-width error at offset.
func NewErrorAt(message string, offset int) SyntaxError {
	return SyntaxError{Message: message, Range: TextRange{Start: offset, End: offset}}
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Range)
}
