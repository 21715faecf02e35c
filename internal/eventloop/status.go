package eventloop

import (
	"time"

	"voiceterm/internal/history"
	"voiceterm/internal/hud"
	"voiceterm/internal/overlay"
	"voiceterm/internal/writer"
)

// setStatus replaces the HUD status text; clearAfter > 0 schedules a
// revert to the resting text.
func (k *Kernel) setStatus(text string, clearAfter time.Duration, now time.Time) {
	k.status.CurrentStatus = text
	if clearAfter > 0 {
		k.statusClearAt = now.Add(clearAfter)
	} else {
		k.statusClearAt = time.Time{}
	}
}

// toast surfaces a transient message and records it for the toast history.
func (k *Kernel) toast(text string, level history.ToastLevel, now time.Time) {
	k.toasts.Add(text, level)
	k.setStatus(text, statusToastDuration, now)
	k.refreshHUD()
}

// restingStatus is what the status line shows when nothing transient is
// up.
func (k *Kernel) restingStatus() string {
	if k.autoVoice {
		return "Auto voice armed"
	}
	return "Ready"
}

// refreshHUD redraws the reserved strip: the active overlay frame, or the
// status banner. Drops on writer back-pressure coalesce; the dirty flag
// retries on a later tick, so the newest state always wins.
func (k *Kernel) refreshHUD() {
	frame := k.currentFrame()
	switch err := k.cfg.Writer.TrySend(writer.DrawOverlay{Frame: frame}); err {
	case nil:
		k.hudDirty = false
	case writer.ErrFull:
		k.stats.WriterFullEvents++
		k.hudDirty = true
	case writer.ErrClosed:
		k.running = false
	}
}

// currentFrame renders whatever owns the reserved strip right now.
func (k *Kernel) currentFrame() overlay.Frame {
	if k.overlayMode != overlay.ModeNone {
		return k.renderOverlayFrame()
	}
	return overlay.Frame{Rows: hud.Render(&k.status, k.theme, k.cols)}
}

// syncOverlayWinsize recomputes the reserved rows for the current overlay
// (or banner) and propagates the reduced height to the child PTY.
func (k *Kernel) syncOverlayWinsize() {
	reserved := k.reservedRows()
	k.cfg.Writer.Send(writer.ReserveRows{N: reserved})

	childRows := k.rows - k.effectiveReserved()
	if childRows < 1 {
		childRows = 1
	}
	k.cfg.Session.Resize(childRows, k.cols)
}

// reservedRows is the strip height the current UI wants.
func (k *Kernel) reservedRows() int {
	if k.overlayMode != overlay.ModeNone {
		h := k.renderOverlayFrame().Height()
		if max := k.rows - 2; h > max {
			h = max
		}
		return h
	}
	return hud.Height(&k.status)
}

// effectiveReserved folds in Claude-prompt suppression, mirroring the
// writer's occlusion rule.
func (k *Kernel) effectiveReserved() int {
	if k.status.ClaudePromptSuppressed {
		return 0
	}
	return k.reservedRows()
}

// handleResize reacts to a terminal size change.
func (k *Kernel) handleResize(rows, cols int) {
	if rows < 3 || cols < 8 {
		return
	}
	k.rows, k.cols = rows, cols
	k.cfg.Writer.Send(writer.Resize{Rows: rows, Cols: cols})
	k.syncOverlayWinsize()
	k.refreshHUD()
}

// handleThemeDirChanged refreshes the picker list when theme files change
// on disk under an open picker.
func (k *Kernel) handleThemeDirChanged() {
	if k.overlayMode != overlay.ModeThemePicker {
		return
	}
	k.pickerState.RefreshNames()
	k.refreshHUD()
}
