// Package overlay holds the overlay modes, their selection state, and the
// renderers that build overlay frames for the writer. Overlays are pure
// data: the kernel owns them and drives every transition.
package overlay

// Mode identifies the active overlay. At most one is open.
type Mode int

const (
	ModeNone Mode = iota
	ModeHelp
	ModeSettings
	ModeThemePicker
	ModeThemeStudio
	ModeDevPanel
	ModeTranscriptHistory
	ModeToastHistory
)

// String returns the overlay's display title.
func (m Mode) String() string {
	switch m {
	case ModeHelp:
		return "Help"
	case ModeSettings:
		return "Settings"
	case ModeThemePicker:
		return "Themes"
	case ModeThemeStudio:
		return "Theme Studio"
	case ModeDevPanel:
		return "Dev Panel"
	case ModeTranscriptHistory:
		return "Transcripts"
	case ModeToastHistory:
		return "Toasts"
	default:
		return ""
	}
}

// ConsumesKeys reports whether raw key bytes route to the overlay instead
// of the child while this mode is open.
func (m Mode) ConsumesKeys() bool {
	return m != ModeNone
}
