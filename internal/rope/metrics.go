package rope

import "unicode/utf8"

// TextSummary holds aggregated metrics for a span of text.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the number of decoded runes.
	Chars int

	// UTF16Units is the UTF-16 code unit count (for LSP compatibility).
	UTF16Units int

	// Lines is the number of newline characters.
	Lines int
}

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	return TextSummary{
		Bytes:      s.Bytes + other.Bytes,
		Chars:      s.Chars + other.Chars,
		UTF16Units: s.UTF16Units + other.UTF16Units,
		Lines:      s.Lines + other.Lines,
	}
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	sum := TextSummary{Bytes: len(s)}

	for i := 0; i < len(s); {
		if s[i] < utf8.RuneSelf {
			if s[i] == '\n' {
				sum.Lines++
			}
			sum.Chars++
			sum.UTF16Units++
			i++
			continue
		}

		r, w := utf8.DecodeRuneInString(s[i:])
		sum.Chars++
		sum.UTF16Units += utf16Len(r)
		i += w
	}

	return sum
}

// utf16Len returns the number of UTF-16 code units needed for r.
// utf8.RuneError from an invalid byte counts as a single unit.
func utf16Len(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// metric selects one dimension of a summary.
type metric func(TextSummary) int

func byBytes(s TextSummary) int { return s.Bytes }
func byChars(s TextSummary) int { return s.Chars }
func byUTF16(s TextSummary) int { return s.UTF16Units }
func byLines(s TextSummary) int { return s.Lines }
