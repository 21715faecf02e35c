// Package history retains recent transcripts, captured backend output
// lines, and toast messages for the history overlays. Rings are bounded;
// old entries fall off the front.
package history

import (
	"time"

	"voiceterm/internal/linebuffer"
)

const (
	maxEntries = 200
	// streamLineMax caps one captured backend line; longer lines are
	// truncated with a marker by the line buffer.
	streamLineMax = 500
)

// EntrySource says where a history entry came from.
type EntrySource int

const (
	SourceVoice EntrySource = iota
	SourceTyped
	SourceBackend
)

// Entry is one remembered line.
type Entry struct {
	Text   string
	Source EntrySource
	At     time.Time
}

// TranscriptHistory remembers what the user said and what the backend
// printed, in arrival order. The zero value is ready to use.
type TranscriptHistory struct {
	entries []Entry
	stream  *linebuffer.StreamLineBuffer
}

// NewTranscriptHistory creates an empty history.
func NewTranscriptHistory() *TranscriptHistory {
	return &TranscriptHistory{}
}

func (h *TranscriptHistory) lineBuffer() *linebuffer.StreamLineBuffer {
	if h.stream == nil {
		h.stream = linebuffer.New(streamLineMax)
	}
	return h.stream
}

// AddTranscript records a voice transcript or typed submission.
func (h *TranscriptHistory) AddTranscript(text string, source EntrySource) {
	h.push(Entry{Text: text, Source: source, At: time.Now()})
}

// IngestBackendOutput captures printable backend output into bounded
// lines. Escape bytes and carriage returns are ignored; newlines close the
// current line.
func (h *TranscriptHistory) IngestBackendOutput(data []byte) {
	buf := h.lineBuffer()
	for _, r := range string(data) {
		switch {
		case r == '\n':
			if line, ok := buf.TakeLine(); ok {
				h.push(Entry{Text: line, Source: SourceBackend, At: time.Now()})
			}
		case r == '\r' || r < 0x20 || r == 0x7F:
			// Control bytes never enter captured lines.
		default:
			buf.PushChar(r)
		}
	}
}

// FlushPendingStreamLine closes a partial captured line, if any. The
// transcript-history overlay calls this on open so the freshest output is
// visible.
func (h *TranscriptHistory) FlushPendingStreamLine() {
	if line, ok := h.lineBuffer().TakeLine(); ok {
		h.push(Entry{Text: line, Source: SourceBackend, At: time.Now()})
	}
}

// Entries returns retained entries, oldest first.
func (h *TranscriptHistory) Entries() []Entry {
	return h.entries
}

// Transcripts returns only the user-originated entries, oldest first.
func (h *TranscriptHistory) Transcripts() []Entry {
	var out []Entry
	for _, e := range h.entries {
		if e.Source != SourceBackend {
			out = append(out, e)
		}
	}
	return out
}

func (h *TranscriptHistory) push(e Entry) {
	h.entries = append(h.entries, e)
	if len(h.entries) > maxEntries {
		h.entries = h.entries[len(h.entries)-maxEntries:]
	}
}

// ToastLevel classifies a toast.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastWarning
	ToastError
)

// Toast is one transient status message.
type Toast struct {
	Text  string
	Level ToastLevel
	At    time.Time
}

// ToastHistory remembers recent toasts for the toast-history overlay.
type ToastHistory struct {
	toasts []Toast
}

// Add records a toast.
func (h *ToastHistory) Add(text string, level ToastLevel) {
	h.toasts = append(h.toasts, Toast{Text: text, Level: level, At: time.Now()})
	if len(h.toasts) > maxEntries {
		h.toasts = h.toasts[len(h.toasts)-maxEntries:]
	}
}

// Toasts returns retained toasts, oldest first.
func (h *ToastHistory) Toasts() []Toast {
	return h.toasts
}
