package overlay

import "voiceterm/internal/theme"

// HistoryView renders a scrollable list of past entries (transcripts or
// toasts). Entries arrive newest last; Selected indexes into the entry
// list.
type HistoryView struct {
	Title    string
	Entries  []string
	Selected int
}

// visibleWindow bounds how many entries one frame shows.
const visibleWindow = 10

// RenderHistory builds a history overlay frame with the selection kept in
// view.
func RenderHistory(v HistoryView, th theme.Theme, termCols int) Frame {
	entries := v.Entries
	selected := v.Selected
	if len(entries) == 0 {
		entries = []string{"(empty)"}
		selected = -1
	}

	start := 0
	if selected >= visibleWindow {
		start = selected - visibleWindow + 1
	}
	end := start + visibleWindow
	if end > len(entries) {
		end = len(entries)
	}

	window := entries[start:end]
	sel := -1
	if selected >= start && selected < end {
		sel = selected - start
	}
	return buildList(th, v.Title, window, sel,
		"↑/↓ navigate · Enter resend · Esc close", termCols)
}
