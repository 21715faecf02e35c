// Package input decodes raw terminal key bytes into the semantic events
// the event loop dispatches on. The kernel never looks at raw bytes when an
// overlay is open; it looks at these.
package input

// Kind discriminates input events.
type Kind int

const (
	// KindBytes is pass-through input destined for the child (or the open
	// overlay's own key handling).
	KindBytes Kind = iota
	KindVoiceTrigger
	KindImageCaptureTrigger
	KindSendStagedText
	KindToggleAutoVoice
	KindToggleSendMode
	KindIncreaseSensitivity
	KindDecreaseSensitivity
	KindHelpToggle
	KindThemePicker
	KindQuickThemeCycle
	KindSettingsToggle
	KindDevPanelToggle
	KindToggleHudStyle
	KindTranscriptHistoryToggle
	KindToastHistoryToggle
	KindEnterKey
	KindExit
	KindMouseClick
)

// Event is one decoded input event.
type Event struct {
	Kind Kind
	Data []byte // KindBytes payload
	X, Y int    // KindMouseClick coordinates (1-based)
}
