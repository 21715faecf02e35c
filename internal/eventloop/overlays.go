package eventloop

import (
	"time"

	"voiceterm/internal/config"
	"voiceterm/internal/history"
	"voiceterm/internal/overlay"
	"voiceterm/internal/theme"
	"voiceterm/internal/voice"
	"voiceterm/internal/writer"
)

// toggleOverlay opens mode, or closes it if it is already up. Opening over
// a different overlay closes that one first with the same protocol:
// clear, resize, render.
func (k *Kernel) toggleOverlay(mode overlay.Mode, now time.Time) {
	if k.overlayMode == mode {
		k.closeOverlay()
		return
	}
	k.cfg.Writer.Send(writer.ClearOverlay{})
	k.overlayMode = mode

	switch mode {
	case overlay.ModeThemePicker:
		k.pickerState.RefreshNames()
		k.pickerState.Touch(now)
	case overlay.ModeTranscriptHistory:
		k.transcripts.FlushPendingStreamLine()
		k.historySel = len(k.transcripts.Transcripts()) - 1
		if k.historySel < 0 {
			k.historySel = 0
		}
	case overlay.ModeToastHistory:
		k.historySel = len(k.toasts.Toasts()) - 1
		if k.historySel < 0 {
			k.historySel = 0
		}
	}

	k.syncOverlayWinsize()
	k.dec.OverlayActive = true
	k.refreshHUD()
}

// closeOverlay tears the open overlay down and restores the banner.
func (k *Kernel) closeOverlay() {
	if k.overlayMode == overlay.ModeNone {
		return
	}
	k.cfg.Writer.Send(writer.ClearOverlay{})
	k.overlayMode = overlay.ModeNone
	k.dec.OverlayActive = false
	k.syncOverlayWinsize()
	k.refreshHUD()
}

// renderOverlayFrame builds the frame for the open overlay.
func (k *Kernel) renderOverlayFrame() overlay.Frame {
	switch k.overlayMode {
	case overlay.ModeHelp:
		return overlay.RenderHelp(k.theme, k.cols)
	case overlay.ModeSettings:
		return overlay.RenderSettings(k.settingsView(), k.theme, k.cols)
	case overlay.ModeThemePicker:
		return overlay.RenderThemePicker(&k.pickerState, k.theme.Name, k.theme, k.cols)
	case overlay.ModeThemeStudio:
		return overlay.RenderThemeStudio(&k.studioState, k.theme, k.cols)
	case overlay.ModeDevPanel:
		k.stats.PendingCount = len(k.pending)
		k.stats.PromptReady = k.cfg.Tracker.PromptReady()
		k.stats.Suppressed = k.status.ClaudePromptSuppressed
		return overlay.RenderDevPanel(k.stats, k.theme, k.cols)
	case overlay.ModeTranscriptHistory:
		return overlay.RenderHistory(k.historyView("Transcripts", k.transcriptTexts()), k.theme, k.cols)
	case overlay.ModeToastHistory:
		return overlay.RenderHistory(k.historyView("Toasts", k.toastTexts()), k.theme, k.cols)
	}
	return overlay.Frame{}
}

func (k *Kernel) settingsView() overlay.SettingsView {
	return overlay.SettingsView{
		Selected:            k.settingsState.Selected,
		AutoVoiceEnabled:    k.autoVoice,
		WakeWordEnabled:     k.wakeWordEnabled,
		WakeWordSensitivity: k.cfg.Overlay.WakeWordSensitivity,
		WakeWordCooldownMS:  k.cfg.Overlay.WakeWordCooldown.Milliseconds(),
		SendMode:            k.sendMode,
		SensitivityDB:       k.status.SensitivityDB,
		ThemeName:           k.theme.Name,
		MouseEnabled:        k.mouseEnabled,
		BackendLabel:        k.cfg.Backend.DisplayName,
		Pipeline:            k.status.Pipeline,
	}
}

func (k *Kernel) historyView(title string, entries []string) overlay.HistoryView {
	overlay.ClampSelection(&k.historySel, len(entries))
	return overlay.HistoryView{Title: title, Entries: entries, Selected: k.historySel}
}

func (k *Kernel) transcriptTexts() []string {
	entries := k.transcripts.Transcripts()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = voice.FormatTranscriptPreview(e.Text, transcriptPreviewMax)
	}
	return out
}

func (k *Kernel) toastTexts() []string {
	toasts := k.toasts.Toasts()
	out := make([]string, len(toasts))
	for i, t := range toasts {
		out[i] = t.Text
	}
	return out
}

// overlayHandleBytes routes raw key bytes into the open overlay's state
// machine. The child never sees them.
func (k *Kernel) overlayHandleBytes(data []byte, now time.Time) {
	switch string(data) {
	case "\x1b", "\x1b\x1b":
		k.closeOverlay()
		return
	case "\x1b[A": // up
		k.overlayMove(-1)
	case "\x1b[B": // down
		k.overlayMove(1)
	}
	k.refreshHUD()
}

func (k *Kernel) overlayMove(delta int) {
	sel, count := k.overlaySelection()
	if sel == nil {
		return
	}
	if delta < 0 {
		overlay.SelectPrev(sel)
	} else {
		overlay.SelectNext(sel, count)
	}
	if k.overlayMode == overlay.ModeThemePicker {
		k.pickerState.Touch(k.now())
	}
}

// overlaySelection returns the open overlay's selection pointer and item
// count, or nil for selection-free overlays.
func (k *Kernel) overlaySelection() (*int, int) {
	switch k.overlayMode {
	case overlay.ModeSettings:
		return &k.settingsState.Selected, len(overlay.SettingsItems)
	case overlay.ModeThemePicker:
		return &k.pickerState.Selected, len(k.pickerState.Names)
	case overlay.ModeThemeStudio:
		return &k.studioState.Selected, len(overlay.StudioPages)
	case overlay.ModeTranscriptHistory:
		return &k.historySel, len(k.transcripts.Transcripts())
	case overlay.ModeToastHistory:
		return &k.historySel, len(k.toasts.Toasts())
	}
	return nil, 0
}

// overlayActivate is Enter inside an overlay.
func (k *Kernel) overlayActivate(now time.Time) {
	switch k.overlayMode {
	case overlay.ModeHelp, overlay.ModeDevPanel, overlay.ModeToastHistory:
		k.closeOverlay()
	case overlay.ModeThemePicker:
		k.applyTheme(k.pickerState.SelectedName(), now)
		k.closeOverlay()
	case overlay.ModeThemeStudio:
		k.toast("Theme Studio: "+overlay.StudioPages[k.studioState.Selected], history.ToastInfo, now)
	case overlay.ModeSettings:
		k.activateSettingsItem(now)
	case overlay.ModeTranscriptHistory:
		k.resendSelectedTranscript(now)
	}
}

func (k *Kernel) resendSelectedTranscript(now time.Time) {
	entries := k.transcripts.Transcripts()
	if k.historySel < 0 || k.historySel >= len(entries) {
		return
	}
	text := entries[k.historySel].Text
	k.closeOverlay()
	k.queueTranscript(text, voice.SourceNative, now)
	k.tryFlushPending(now)
}

func (k *Kernel) activateSettingsItem(now time.Time) {
	switch overlay.SettingsItems[k.settingsState.Selected] {
	case overlay.ItemAutoVoice:
		k.toggleAutoVoice(now)
	case overlay.ItemWakeWord:
		k.wakeWordEnabled = !k.wakeWordEnabled
	case overlay.ItemWakeSensitivity:
		v := k.cfg.Overlay.WakeWordSensitivity + 0.1
		if v > 1 {
			v = 0.1
		}
		k.cfg.Overlay.WakeWordSensitivity = config.ClampWakeWordSensitivity(v)
	case overlay.ItemWakeCooldown:
		d := k.cfg.Overlay.WakeWordCooldown + 500*time.Millisecond
		if d > config.MaxWakeWordCooldownMS*time.Millisecond {
			d = config.MinWakeWordCooldownMS * time.Millisecond
		}
		k.cfg.Overlay.WakeWordCooldown = d
	case overlay.ItemSendMode:
		k.toggleSendMode(now)
	case overlay.ItemSensitivity:
		k.adjustSensitivity(+2)
	case overlay.ItemTheme:
		k.toggleOverlay(overlay.ModeThemePicker, now)
		return
	case overlay.ItemMouse:
		k.mouseEnabled = !k.mouseEnabled
	case overlay.ItemBackend:
		k.toast("Backend: "+k.cfg.Backend.DisplayName+" (set with --backend)", history.ToastInfo, now)
	case overlay.ItemPipeline:
		k.toast("Pipeline: "+k.status.Pipeline.Label(), history.ToastInfo, now)
	case overlay.ItemClose:
		k.closeOverlay()
		return
	case overlay.ItemQuit:
		k.running = false
		return
	}
	k.persistSettings()
	k.refreshHUD()
}

// applyTheme switches the active theme by name and persists the choice.
func (k *Kernel) applyTheme(name string, now time.Time) {
	if name == "" {
		return
	}
	next, ok := theme.FromName(name)
	if !ok {
		user, err := theme.LoadUserTheme(name)
		if err != nil {
			k.toast("Theme load failed: "+name, history.ToastError, now)
			return
		}
		next = user
	}
	if k.cfg.Overlay.ColorDisabled() {
		next = theme.None()
	}
	k.theme = next
	k.persistSettings()
	k.refreshHUD()
}

// cycleTheme applies the next built-in theme.
func (k *Kernel) cycleTheme(now time.Time) {
	names := theme.BuiltinNames()
	idx := 0
	for i, n := range names {
		if n == k.theme.Name {
			idx = (i + 1) % len(names)
			break
		}
	}
	k.applyTheme(names[idx], now)
	k.toast("Theme: "+k.theme.Name, history.ToastInfo, now)
}

// handleMouseClick maps a terminal click into the open overlay's list: a
// click on an item selects it, a click on the selected item activates it.
func (k *Kernel) handleMouseClick(x, y int, now time.Time) {
	if !k.mouseEnabled || k.overlayMode == overlay.ModeNone {
		return
	}
	sel, count := k.overlaySelection()
	if sel == nil || count == 0 {
		return
	}
	stripTop := k.rows - k.reservedRows() + 1
	// buildList layout: frame top, title, separator, then items.
	item := y - stripTop - 3
	if item < 0 || item >= count {
		return
	}
	if *sel == item {
		k.overlayActivate(now)
		return
	}
	*sel = item
	if k.overlayMode == overlay.ModeThemePicker {
		k.pickerState.Touch(now)
	}
	k.refreshHUD()
}

// persistSettings writes the user's durable preferences. Failures only
// get logged; settings are a convenience, not a dependency.
func (k *Kernel) persistSettings() {
	mouse := k.mouseEnabled
	err := config.SaveSettings(config.Settings{
		Theme:               k.theme.Name,
		AutoVoice:           k.autoVoice,
		SendMode:            k.sendMode.String(),
		SensitivityDB:       k.status.SensitivityDB,
		WakeWordSensitivity: k.cfg.Overlay.WakeWordSensitivity,
		WakeWordCooldownMS:  int(k.cfg.Overlay.WakeWordCooldown.Milliseconds()),
		MouseEnabled:        &mouse,
	})
	if err != nil {
		k.cfg.Logger.Debugf("persist settings: %v", err)
	}
}
