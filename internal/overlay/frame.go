package overlay

import (
	"voiceterm/internal/textwidth"
	"voiceterm/internal/theme"
)

// Frame is a rendered overlay: rows drawn into the reserved bottom strip,
// top first. Rows are already clipped to the frame width.
type Frame struct {
	Rows []string
}

// Height returns the number of reserved rows this frame needs.
func (f Frame) Height() int {
	return len(f.Rows)
}

// frameWidth picks the overlay width for a terminal: full width minus a
// small margin, floored so frames stay legible.
func frameWidth(termCols int) int {
	w := termCols - 4
	if w < 24 {
		w = termCols
	}
	if w < 12 {
		w = 12
	}
	return w
}

// buildList renders the standard overlay shape: title, separator, items
// (with a selection caret), and a footer hint.
func buildList(th theme.Theme, title string, items []string, selected int, footer string, termCols int) Frame {
	width := frameWidth(termCols)
	inner := width - 4

	rows := []string{
		theme.FrameTop(th, width),
		theme.CenteredTitleLine(th, title, width),
		theme.FrameSeparator(th, width),
	}
	for i, item := range items {
		caret := "  "
		body := textwidth.Truncate(textwidth.SanitizeStatus(item), inner-2)
		if i == selected {
			caret = "❯ "
			if th.Colorless() {
				caret = "> "
			}
		}
		line := caret + body
		visible := textwidth.DisplayWidth(line)
		if i == selected && !th.Colorless() {
			line = th.Info + line + th.Reset
		}
		rows = append(rows, theme.ContentLine(th, line, visible, width))
	}
	if footer != "" {
		rows = append(rows, theme.FrameSeparator(th, width))
		footer = textwidth.Truncate(footer, inner)
		line := footer
		visible := textwidth.DisplayWidth(line)
		if !th.Colorless() {
			line = th.Dim + line + th.Reset
		}
		rows = append(rows, theme.ContentLine(th, line, visible, width))
	}
	rows = append(rows, theme.FrameBottom(th, width))
	return Frame{Rows: rows}
}
