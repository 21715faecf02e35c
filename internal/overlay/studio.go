package overlay

import "voiceterm/internal/theme"

// Theme Studio edits presentation profiles live. The spec-level studio is
// a page list; the heavy editing surfaces stay outside the core.

// StudioPages are the editable profile groups.
var StudioPages = []string{
	"Borders",
	"Glyphs",
	"Indicators",
	"Spinner",
	"Progress bars",
	"Toast position",
	"Voice scene",
	"Save as theme file",
}

// ThemeStudioState is the studio's retained selection.
type ThemeStudioState struct {
	Selected int
}

// RenderThemeStudio builds the studio page-list frame.
func RenderThemeStudio(s *ThemeStudioState, th theme.Theme, termCols int) Frame {
	return buildList(th, "Theme Studio", StudioPages, s.Selected,
		"↑/↓ select · Enter open · Esc close", termCols)
}
