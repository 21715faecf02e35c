package overlay

import (
	"path/filepath"
	"strings"
	"time"

	"voiceterm/internal/theme"
)

// ThemePickerState tracks the picker selection and its auto-apply timer:
// resting on a theme previews it, and the preview becomes permanent when
// the timer fires.
type ThemePickerState struct {
	Names       []string
	Selected    int
	AutoApplyAt time.Time
}

// AutoApplyDelay is how long a highlighted theme previews before it is
// committed.
const AutoApplyDelay = 1500 * time.Millisecond

// RefreshNames rebuilds the picker list: built-ins first, then user theme
// files sorted by path. Selection is clamped, not reset, so a directory
// change under an open picker keeps the cursor near where it was.
func (s *ThemePickerState) RefreshNames() {
	names := theme.BuiltinNames()
	for _, path := range theme.ListFiles() {
		names = append(names, strings.TrimSuffix(filepath.Base(path), ".toml"))
	}
	s.Names = names
	ClampSelection(&s.Selected, len(s.Names))
}

// SelectedName returns the highlighted theme name, or "" when empty.
func (s *ThemePickerState) SelectedName() string {
	if s.Selected < 0 || s.Selected >= len(s.Names) {
		return ""
	}
	return s.Names[s.Selected]
}

// Touch restarts the auto-apply timer after a selection change.
func (s *ThemePickerState) Touch(now time.Time) {
	s.AutoApplyAt = now.Add(AutoApplyDelay)
}

// AutoApplyDue reports whether the preview should be committed.
func (s *ThemePickerState) AutoApplyDue(now time.Time) bool {
	return !s.AutoApplyAt.IsZero() && !now.Before(s.AutoApplyAt)
}

// RenderThemePicker builds the theme picker frame.
func RenderThemePicker(s *ThemePickerState, active string, th theme.Theme, termCols int) Frame {
	items := make([]string, len(s.Names))
	for i, name := range s.Names {
		mark := "  "
		if name == active {
			mark = "* "
		}
		items[i] = mark + name
	}
	return buildList(th, "Themes", items, s.Selected,
		"↑/↓ preview · Enter apply · Esc cancel", termCols)
}
