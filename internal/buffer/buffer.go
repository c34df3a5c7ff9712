package buffer

import "github.com/yuin/goldmark/text"

// UTF16Len returns the length of text measured in UTF-16 code units.
func UTF16Len(s string) int {
	count := 0
	for _, r := range s {
		if r > 0xFFFF {
			count += 2
		} else {
			count++
		}
	}
	return count
}

// TextBuffer accumulates the source bytes that rendered AST nodes point into,
// and tracks the running UTF-16 offset of everything written so far.
type TextBuffer struct {
	buf         []byte
	utf16Offset int
}

// New creates a new TextBuffer.
func New() *TextBuffer {
	return &TextBuffer{
		buf: make([]byte, 0, 256),
	}
}

// Write appends s and returns the segment it occupies.
// Segments stay valid after later writes because they are offsets, not slices.
func (tb *TextBuffer) Write(s string) text.Segment {
	start := len(tb.buf)
	tb.buf = append(tb.buf, s...)
	tb.utf16Offset += UTF16Len(s)
	return text.NewSegment(start, len(tb.buf))
}

// UTF16Offset returns the current UTF-16 offset.
func (tb *TextBuffer) UTF16Offset() int {
	return tb.utf16Offset
}

// ByteOffset returns the current byte offset.
func (tb *TextBuffer) ByteOffset() int {
	return len(tb.buf)
}

// TrailingNewlineCount counts trailing newline characters in the buffer.
func (tb *TextBuffer) TrailingNewlineCount() int {
	count := 0
	for i := len(tb.buf) - 1; i >= 0 && tb.buf[i] == '\n'; i-- {
		count++
	}
	return count
}

// Bytes returns the accumulated source. The caller must not modify it.
func (tb *TextBuffer) Bytes() []byte {
	return tb.buf
}

// String returns the accumulated text.
func (tb *TextBuffer) String() string {
	return string(tb.buf)
}

// Reset clears the buffer.
func (tb *TextBuffer) Reset() {
	tb.buf = tb.buf[:0]
	tb.utf16Offset = 0
}
