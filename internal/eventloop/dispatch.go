package eventloop

import (
	"bytes"
	"time"

	"voiceterm/internal/config"
	"voiceterm/internal/history"
	"voiceterm/internal/hud"
	"voiceterm/internal/input"
	"voiceterm/internal/overlay"
)

// processInput drains buffered and freshly-arrived keyboard bytes, decodes
// them, and dispatches the resulting events.
func (k *Kernel) processInput(now time.Time) bool {
	raw := k.rawPending
	k.rawPending = nil
drain:
	for {
		select {
		case data, ok := <-k.cfg.RawInput:
			if !ok {
				k.cfg.RawInput = nil
				break drain
			}
			raw = append(raw, data)
		default:
			break drain
		}
	}
	k.drainControlChannels()

	var events []input.Event
	for _, data := range raw {
		events = append(events, k.dec.Feed(data)...)
	}
	if len(raw) == 0 {
		// Input went quiet: a buffered lone ESC is a real Escape press.
		events = append(events, k.dec.Flush()...)
	}
	for _, ev := range events {
		k.dispatch(ev, now)
		if !k.running {
			break
		}
	}
	return len(events) > 0
}

// drainControlChannels applies non-keyboard control events (resize, theme
// dir changes) without blocking.
func (k *Kernel) drainControlChannels() {
	for {
		select {
		case size, ok := <-k.cfg.WinchResize:
			if ok {
				k.handleResize(size[0], size[1])
				continue
			}
		case _, ok := <-k.cfg.ThemeChanged:
			if ok {
				k.handleThemeDirChanged()
				continue
			}
		default:
		}
		return
	}
}

// dispatch routes one semantic input event.
func (k *Kernel) dispatch(ev input.Event, now time.Time) {
	switch ev.Kind {
	case input.KindBytes:
		k.handleBytes(ev.Data, now)

	case input.KindEnterKey:
		if k.overlayMode.ConsumesKeys() {
			k.overlayActivate(now)
			return
		}
		k.sendEnter(now)

	case input.KindVoiceTrigger:
		if k.voiceJob != nil {
			k.stopVoiceCapture(now)
		} else {
			k.startVoiceCapture(now)
		}

	case input.KindToggleAutoVoice:
		k.toggleAutoVoice(now)

	case input.KindToggleSendMode:
		k.toggleSendMode(now)

	case input.KindIncreaseSensitivity:
		k.adjustSensitivity(+2)
	case input.KindDecreaseSensitivity:
		k.adjustSensitivity(-2)

	case input.KindHelpToggle:
		k.toggleOverlay(overlay.ModeHelp, now)
	case input.KindSettingsToggle:
		k.toggleOverlay(overlay.ModeSettings, now)
	case input.KindThemePicker:
		k.toggleOverlay(overlay.ModeThemePicker, now)
	case input.KindDevPanelToggle:
		k.toggleOverlay(overlay.ModeDevPanel, now)
	case input.KindTranscriptHistoryToggle:
		k.toggleOverlay(overlay.ModeTranscriptHistory, now)
	case input.KindToastHistoryToggle:
		k.toggleOverlay(overlay.ModeToastHistory, now)

	case input.KindQuickThemeCycle:
		k.cycleTheme(now)

	case input.KindToggleHudStyle:
		k.status.Minimal = !k.status.Minimal
		k.syncOverlayWinsize()
		k.refreshHUD()

	case input.KindImageCaptureTrigger:
		k.captureImage(now)

	case input.KindSendStagedText:
		k.forceFlushPending(now)

	case input.KindExit:
		k.running = false

	case input.KindMouseClick:
		k.handleMouseClick(ev.X, ev.Y, now)
	}
}

// handleBytes forwards pass-through bytes: to the open overlay's state
// machine when one is up, otherwise to the child.
func (k *Kernel) handleBytes(data []byte, now time.Time) {
	if len(data) == 0 {
		return
	}
	if k.overlayMode.ConsumesKeys() {
		k.overlayHandleBytes(data, now)
		return
	}
	if k.suppressStartupEscapeInput && bytes.HasPrefix(data, []byte{0x1b}) {
		// Terminals can replay a stale escape report right after raw
		// mode engages; drop it until the child speaks.
		return
	}
	k.cfg.Session.SendInput(data)
}

func (k *Kernel) toggleAutoVoice(now time.Time) {
	k.autoVoice = !k.autoVoice
	if k.autoVoice {
		k.status.VoiceMode = hud.ModeAuto
		k.toast("Auto voice on", history.ToastInfo, now)
	} else {
		k.status.VoiceMode = hud.ModeManual
		k.toast("Auto voice off", history.ToastInfo, now)
	}
	k.persistSettings()
}

func (k *Kernel) toggleSendMode(now time.Time) {
	if k.sendMode == config.SendModeAuto {
		k.sendMode = config.SendModeInsert
	} else {
		k.sendMode = config.SendModeAuto
	}
	k.toast("Send mode: "+k.sendMode.String(), history.ToastInfo, now)
	k.persistSettings()
}

func (k *Kernel) adjustSensitivity(deltaDB float64) {
	v := k.status.SensitivityDB + deltaDB
	if v > 0 {
		v = 0
	}
	if v < -60 {
		v = -60
	}
	k.status.SensitivityDB = v
	k.persistSettings()
	k.refreshHUD()
}

// forceFlushPending sends the queue now, ignoring the prompt gate (but
// never under an overlay).
func (k *Kernel) forceFlushPending(now time.Time) {
	if k.overlayMode.ConsumesKeys() {
		return
	}
	for len(k.pending) > 0 {
		if !k.sendTranscript(k.pending[0].text, now) {
			return
		}
		k.pending = k.pending[1:]
	}
	k.stats.PendingCount = 0
}

func (k *Kernel) captureImage(now time.Time) {
	if k.cfg.CaptureImage == nil {
		k.toast("Image capture not available", history.ToastWarning, now)
		return
	}
	path, err := k.cfg.CaptureImage()
	if err != nil {
		k.toast(hud.ImageCaptureFailed(err), history.ToastError, now)
		return
	}
	k.cfg.Session.SendInput([]byte(path))
	k.toast("Image attached", history.ToastInfo, now)
}
