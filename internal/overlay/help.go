package overlay

import "voiceterm/internal/theme"

// helpEntries are the key bindings shown in the help overlay.
var helpEntries = []string{
	"Ctrl+V      start/stop voice capture",
	"Ctrl+A      toggle auto-voice",
	"Ctrl+S      toggle send mode (auto/insert)",
	"Ctrl+T      theme picker",
	"Ctrl+Y      quick theme cycle",
	"Ctrl+O      settings",
	"Ctrl+G      transcript history",
	"Ctrl+B      toast history",
	"Ctrl+_      dev panel",
	"+ / -       adjust mic sensitivity",
	"Ctrl+Q      quit voiceterm",
}

// RenderHelp builds the help overlay frame.
func RenderHelp(th theme.Theme, termCols int) Frame {
	return buildList(th, "VoiceTerm Help", helpEntries, -1, "Esc or Enter closes help", termCols)
}
