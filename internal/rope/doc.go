// Package rope provides the immutable text buffer that backs every open
// schema document.
//
// A rope is a B+ tree whose leaves hold bounded UTF-8 chunks and whose
// internal nodes cache aggregated metrics: bytes, chars, UTF-16 code units
// and newlines. Edits return a new rope that shares every untouched chunk
// with the original, so old versions stay valid for as long as something
// references them.
//
// Conversions between the metrics run in O(log n) and are what the editor
// protocol layer needs to turn UTF-16 line/column positions into byte
// offsets:
//
//	r := rope.FromString("struct Foo {}")
//	r = r.Replace(7, 10, "Bar")
//	b, _ := r.CharToByte(7)
//
// A char is one decoded rune. Invalid UTF-8 bytes count as one char and one
// UTF-16 unit each, mirroring utf8.DecodeRuneInString.
package rope
