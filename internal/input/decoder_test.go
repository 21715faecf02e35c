package input

import (
	"reflect"
	"testing"
)

func TestPlainBytesCoalesce(t *testing.T) {
	var d Decoder
	events := d.Feed([]byte("hello"))
	if len(events) != 1 {
		t.Fatalf("events = %v", events)
	}
	if events[0].Kind != KindBytes || string(events[0].Data) != "hello" {
		t.Errorf("event = %+v", events[0])
	}
}

func TestHotkeysDecode(t *testing.T) {
	tests := []struct {
		b    byte
		want Kind
	}{
		{keyCtrlV, KindVoiceTrigger},
		{keyCtrlA, KindToggleAutoVoice},
		{keyCtrlS, KindToggleSendMode},
		{keyCtrlT, KindThemePicker},
		{keyCtrlY, KindQuickThemeCycle},
		{keyCtrlO, KindSettingsToggle},
		{keyCtrlE, KindHelpToggle},
		{keyCtrlG, KindTranscriptHistoryToggle},
		{keyCtrlB, KindToastHistoryToggle},
		{keyCtrlUS, KindDevPanelToggle},
		{keyCtrlP, KindImageCaptureTrigger},
		{keyCtrlR, KindSendStagedText},
		{keyCtrlU, KindToggleHudStyle},
		{keyCtrlQ, KindExit},
	}
	for _, tt := range tests {
		var d Decoder
		events := d.Feed([]byte{tt.b})
		if len(events) != 1 || events[0].Kind != tt.want {
			t.Errorf("Feed(0x%02x) = %v, want kind %v", tt.b, events, tt.want)
		}
	}
}

func TestEnterKey(t *testing.T) {
	var d Decoder
	for _, b := range []byte{'\r', '\n'} {
		events := d.Feed([]byte{b})
		if len(events) != 1 || events[0].Kind != KindEnterKey {
			t.Errorf("Feed(%q) = %v", b, events)
		}
	}
}

func TestArrowSequencePassesThrough(t *testing.T) {
	var d Decoder
	events := d.Feed([]byte("\x1b[A"))
	if len(events) != 1 || events[0].Kind != KindBytes {
		t.Fatalf("events = %v", events)
	}
	if !reflect.DeepEqual(events[0].Data, []byte("\x1b[A")) {
		t.Errorf("data = %q", events[0].Data)
	}
}

func TestSplitEscapeSequenceAcrossReads(t *testing.T) {
	var d Decoder
	if events := d.Feed([]byte("\x1b[")); len(events) != 0 {
		t.Fatalf("partial sequence emitted early: %v", events)
	}
	events := d.Feed([]byte("B"))
	if len(events) != 1 || string(events[0].Data) != "\x1b[B" {
		t.Errorf("events = %v", events)
	}
}

func TestBareEscapeThenKey(t *testing.T) {
	var d Decoder
	events := d.Feed([]byte{0x1B, 'x'})
	if len(events) != 1 || string(events[0].Data) != "\x1bx" {
		t.Errorf("events = %v", events)
	}
}

func TestFlushReturnsPartialSequence(t *testing.T) {
	var d Decoder
	d.Feed([]byte{0x1B})
	events := d.Flush()
	if len(events) != 1 || string(events[0].Data) != "\x1b" {
		t.Errorf("Flush = %v", events)
	}
	if extra := d.Flush(); extra != nil {
		t.Errorf("second Flush = %v", extra)
	}
}

func TestMouseClickDecodes(t *testing.T) {
	var d Decoder
	events := d.Feed([]byte("\x1b[<0;12;34M"))
	if len(events) != 1 || events[0].Kind != KindMouseClick {
		t.Fatalf("events = %v", events)
	}
	if events[0].X != 12 || events[0].Y != 34 {
		t.Errorf("click at (%d,%d), want (12,34)", events[0].X, events[0].Y)
	}
}

func TestMouseReleaseDropped(t *testing.T) {
	var d Decoder
	events := d.Feed([]byte("\x1b[<0;12;34m"))
	if len(events) != 0 {
		t.Errorf("release should be dropped, got %v", events)
	}
	events = d.Feed([]byte("\x1b[<64;1;1M")) // scroll wheel
	if len(events) != 0 {
		t.Errorf("wheel should be dropped, got %v", events)
	}
}

func TestSensitivityKeysOnlyWithOverlay(t *testing.T) {
	var d Decoder
	events := d.Feed([]byte("+-"))
	if len(events) != 1 || events[0].Kind != KindBytes {
		t.Fatalf("without overlay: %v", events)
	}

	d.OverlayActive = true
	events = d.Feed([]byte("+"))
	if len(events) != 1 || events[0].Kind != KindIncreaseSensitivity {
		t.Errorf("overlay '+': %v", events)
	}
	events = d.Feed([]byte("-"))
	if len(events) != 1 || events[0].Kind != KindDecreaseSensitivity {
		t.Errorf("overlay '-': %v", events)
	}
}

func TestMixedStreamOrdering(t *testing.T) {
	var d Decoder
	events := d.Feed(append([]byte("ab"), keyCtrlV, 'c', 'd'))
	kinds := make([]Kind, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
	}
	want := []Kind{KindBytes, KindVoiceTrigger, KindBytes}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	if string(events[0].Data) != "ab" || string(events[2].Data) != "cd" {
		t.Errorf("byte payloads = %q, %q", events[0].Data, events[2].Data)
	}
}
