package input

import (
	"regexp"
	"strconv"
)

// Control-key bindings. These are the overlay's own chords; everything else
// flows through to the child untouched.
const (
	keyCtrlA  = 0x01 // toggle auto-voice
	keyCtrlB  = 0x02 // toast history
	keyCtrlE  = 0x05 // help
	keyCtrlG  = 0x07 // transcript history
	keyCtrlO  = 0x0F // settings
	keyCtrlP  = 0x10 // image capture
	keyCtrlQ  = 0x11 // exit
	keyCtrlR  = 0x12 // send staged text
	keyCtrlS  = 0x13 // toggle send mode
	keyCtrlT  = 0x14 // theme picker
	keyCtrlU  = 0x15 // toggle hud style
	keyCtrlV  = 0x16 // voice trigger
	keyCtrlY  = 0x19 // quick theme cycle
	keyCtrlUS = 0x1F // dev panel (Ctrl+_)
)

var hotkeys = map[byte]Kind{
	keyCtrlA:  KindToggleAutoVoice,
	keyCtrlB:  KindToastHistoryToggle,
	keyCtrlE:  KindHelpToggle,
	keyCtrlG:  KindTranscriptHistoryToggle,
	keyCtrlO:  KindSettingsToggle,
	keyCtrlP:  KindImageCaptureTrigger,
	keyCtrlQ:  KindExit,
	keyCtrlR:  KindSendStagedText,
	keyCtrlS:  KindToggleSendMode,
	keyCtrlT:  KindThemePicker,
	keyCtrlU:  KindToggleHudStyle,
	keyCtrlV:  KindVoiceTrigger,
	keyCtrlY:  KindQuickThemeCycle,
	keyCtrlUS: KindDevPanelToggle,
}

// sgrMouseRE matches an SGR mouse report; press of button 0 becomes a
// click event.
var sgrMouseRE = regexp.MustCompile(`^\x1b\[<(\d+);(\d+);(\d+)([Mm])$`)

// Decoder turns raw reads into events. Escape sequences that span reads
// are buffered until complete; Flush hands back an unfinished sequence
// (the kernel calls it when input goes quiet, treating a bare ESC as ESC).
type Decoder struct {
	// OverlayActive widens the hotkey set: while an overlay is open,
	// +/- adjust sensitivity instead of typing into the child.
	OverlayActive bool

	pending []byte
}

// Feed decodes a chunk of raw input bytes.
func (d *Decoder) Feed(p []byte) []Event {
	var events []Event
	flushBytes := func(b []byte) {
		if len(b) == 0 {
			return
		}
		// Coalesce adjacent pass-through bytes into one event so child
		// input is written in as few PTY writes as arrived.
		if n := len(events); n > 0 && events[n-1].Kind == KindBytes {
			events[n-1].Data = append(events[n-1].Data, b...)
			return
		}
		buf := make([]byte, len(b))
		copy(buf, b)
		events = append(events, Event{Kind: KindBytes, Data: buf})
	}

	for _, b := range p {
		if len(d.pending) > 0 {
			if len(d.pending) == 1 && b != '[' && b != 'O' {
				// Bare ESC followed by an ordinary key: both pass through.
				flushBytes(d.pending)
				d.pending = nil
				// Fall through to normal handling of b.
			} else {
				d.pending = append(d.pending, b)
				if seq, done := d.takeCompleteSequence(); done {
					if ev, ok := decodeSequence(seq); ok {
						if ev.Kind != KindBytes || len(ev.Data) > 0 {
							events = append(events, ev)
						}
					} else {
						flushBytes(seq)
					}
				}
				continue
			}
		}

		if kind, ok := hotkeys[b]; ok {
			events = append(events, Event{Kind: kind})
			continue
		}
		switch {
		case b == 0x1B:
			d.pending = append(d.pending, b)
		case b == '\r' || b == '\n':
			events = append(events, Event{Kind: KindEnterKey})
		case d.OverlayActive && (b == '+' || b == '='):
			events = append(events, Event{Kind: KindIncreaseSensitivity})
		case d.OverlayActive && b == '-':
			events = append(events, Event{Kind: KindDecreaseSensitivity})
		default:
			flushBytes([]byte{b})
		}
	}
	return events
}

// Flush returns any buffered partial escape sequence as pass-through
// bytes. Call when the input source goes idle.
func (d *Decoder) Flush() []Event {
	if len(d.pending) == 0 {
		return nil
	}
	data := d.pending
	d.pending = nil
	return []Event{{Kind: KindBytes, Data: data}}
}

// takeCompleteSequence pops d.pending if it now forms a complete escape
// sequence.
func (d *Decoder) takeCompleteSequence() ([]byte, bool) {
	if !escSequenceComplete(d.pending) {
		return nil, false
	}
	seq := d.pending
	d.pending = nil
	return seq, true
}

// escSequenceComplete mirrors the classic CSI/SS3 framing: CSI ends on a
// final byte 0x40..0x7E, SS3 is three bytes.
func escSequenceComplete(seq []byte) bool {
	if len(seq) < 2 {
		return false
	}
	switch seq[1] {
	case '[':
		if len(seq) < 3 {
			return false
		}
		final := seq[len(seq)-1]
		return final >= 0x40 && final <= 0x7E
	case 'O':
		return len(seq) >= 3
	default:
		return true
	}
}

// decodeSequence turns a complete escape sequence into a semantic event
// where one exists (currently SGR mouse clicks).
func decodeSequence(seq []byte) (Event, bool) {
	m := sgrMouseRE.FindSubmatch(seq)
	if m == nil {
		return Event{}, false
	}
	button, _ := strconv.Atoi(string(m[1]))
	if button != 0 || string(m[4]) != "M" {
		// Releases, drags, and other buttons are dropped, not forwarded:
		// the child does not have mouse reporting enabled.
		return Event{Kind: KindBytes, Data: nil}, true
	}
	x, _ := strconv.Atoi(string(m[2]))
	y, _ := strconv.Atoi(string(m[3]))
	return Event{Kind: KindMouseClick, X: x, Y: y}, true
}
