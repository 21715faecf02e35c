package theme

import (
	"strings"

	"voiceterm/internal/textwidth"
)

// Frame helpers shared by the HUD banner and every overlay, so frames stay
// visually consistent across the UI.

func frameLine(t Theme, left, right rune, width int) string {
	inner := width - 2
	if inner < 0 {
		inner = 0
	}
	var b strings.Builder
	b.WriteString(t.Border)
	b.WriteRune(left)
	b.WriteString(strings.Repeat(string(t.Borders.Horizontal), inner))
	b.WriteRune(right)
	b.WriteString(t.Reset)
	return b.String()
}

// FrameTop renders the top border line.
func FrameTop(t Theme, width int) string {
	return frameLine(t, t.Borders.TopLeft, t.Borders.TopRight, width)
}

// FrameBottom renders the bottom border line.
func FrameBottom(t Theme, width int) string {
	return frameLine(t, t.Borders.BottomLeft, t.Borders.BottomRight, width)
}

// FrameSeparator renders an inner separator line.
func FrameSeparator(t Theme, width int) string {
	return frameLine(t, t.Borders.TLeft, t.Borders.TRight, width)
}

// CenteredTitleLine renders a bordered row with title centered in the
// inner width. title must already be free of control characters.
func CenteredTitleLine(t Theme, title string, width int) string {
	inner := width - 2
	if inner < 0 {
		inner = 0
	}
	title = textwidth.Truncate(title, inner)
	padding := inner - textwidth.DisplayWidth(title)
	left := padding / 2
	right := padding - left

	var b strings.Builder
	b.WriteString(t.Border)
	b.WriteRune(t.Borders.Vertical)
	b.WriteString(t.Reset)
	b.WriteString(strings.Repeat(" ", left))
	b.WriteString(title)
	b.WriteString(strings.Repeat(" ", right))
	b.WriteString(t.Border)
	b.WriteRune(t.Borders.Vertical)
	b.WriteString(t.Reset)
	return b.String()
}

// ContentLine renders a bordered row with body left-aligned and padded to
// the inner width. body may contain escape sequences; visible cells are
// counted on the stripped text, so callers pass the plain width via
// visibleWidth.
func ContentLine(t Theme, body string, visibleWidth, width int) string {
	inner := width - 2
	if inner < 0 {
		inner = 0
	}
	gap := inner - visibleWidth
	if gap < 0 {
		gap = 0
	}
	var b strings.Builder
	b.WriteString(t.Border)
	b.WriteRune(t.Borders.Vertical)
	b.WriteString(t.Reset)
	b.WriteString(body)
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(t.Border)
	b.WriteRune(t.Borders.Vertical)
	b.WriteString(t.Reset)
	return b.String()
}
