// Package linebuffer collects streamed characters into bounded,
// newline-delimited lines. PTY output can produce arbitrarily long lines
// (model completions without newlines), so capture must cap memory and mark
// where loss occurred.
package linebuffer

import "strings"

// StreamLineBuffer accumulates characters up to a byte budget. Characters
// past the budget are dropped and the eventual line carries a truncation
// marker.
type StreamLineBuffer struct {
	buf       strings.Builder
	truncated bool
	maxBytes  int
}

// New creates a buffer that stores at most maxBytes bytes per line.
func New(maxBytes int) *StreamLineBuffer {
	return &StreamLineBuffer{maxBytes: maxBytes}
}

// PushChar appends ch if the budget allows, otherwise marks truncation.
func (b *StreamLineBuffer) PushChar(ch rune) {
	if b.buf.Len() < b.maxBytes {
		b.buf.WriteRune(ch)
		return
	}
	b.truncated = true
}

// PopChar removes the last character (backspace handling in captured lines).
func (b *StreamLineBuffer) PopChar() {
	s := b.buf.String()
	if s == "" {
		return
	}
	runes := []rune(s)
	b.buf.Reset()
	b.buf.WriteString(string(runes[:len(runes)-1]))
}

// TakeLine trims surrounding whitespace and returns the captured line,
// suffixed with " ..." when content was dropped. Returns ok=false when the
// trimmed buffer is empty. State is reset either way.
func (b *StreamLineBuffer) TakeLine() (string, bool) {
	trimmed := strings.TrimSpace(b.buf.String())
	truncated := b.truncated
	b.buf.Reset()
	b.truncated = false
	if trimmed == "" {
		return "", false
	}
	if truncated {
		return trimmed + " ...", true
	}
	return trimmed, true
}
