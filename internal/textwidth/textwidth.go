// Package textwidth holds the display-width math shared by the writer, the
// HUD renderer, and the overlays. Clipping is done in terminal cells, never
// bytes, so wide runes and combining characters don't break frames.
package textwidth

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns the number of terminal cells s occupies.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate cuts s to at most maxWidth cells, never splitting a wide rune.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	var out strings.Builder
	used := 0
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if used+w > maxWidth {
			break
		}
		out.WriteRune(ch)
		used += w
	}
	return out.String()
}

// SanitizeStatus replaces control characters with spaces so status text can
// never smuggle escape sequences into the terminal.
func SanitizeStatus(s string) string {
	var out strings.Builder
	for _, ch := range s {
		if ch < 0x20 || ch == 0x7F {
			out.WriteByte(' ')
			continue
		}
		out.WriteRune(ch)
	}
	return out.String()
}

// Pad right-pads s with spaces to exactly width cells, truncating first if
// needed.
func Pad(s string, width int) string {
	s = Truncate(s, width)
	if gap := width - DisplayWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
