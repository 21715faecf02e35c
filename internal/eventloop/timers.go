package eventloop

import (
	"time"

	"voiceterm/internal/overlay"
	"voiceterm/internal/prompt"
)

// processTimers is tick step 10: status clears, deferred HUD redraws,
// theme-picker auto-apply, and the auto-voice idle trigger.
func (k *Kernel) processTimers(now time.Time) bool {
	did := false

	if !k.statusClearAt.IsZero() && !now.Before(k.statusClearAt) {
		k.statusClearAt = time.Time{}
		k.status.CurrentStatus = k.restingStatus()
		k.refreshHUD()
		did = true
	}

	if k.hudDirty {
		k.refreshHUD()
		did = true
	}

	// The idle-timeout flush path must fire even when the child is
	// completely silent.
	if before := len(k.pending); before > 0 {
		k.tryFlushPending(now)
		if len(k.pending) != before {
			did = true
		}
	}

	if k.overlayMode == overlay.ModeThemePicker && k.pickerState.AutoApplyDue(now) {
		k.pickerState.AutoApplyAt = time.Time{}
		k.applyTheme(k.pickerState.SelectedName(), now)
		did = true
	}

	if k.autoVoiceDue(now) {
		k.startVoiceCapture(now)
		k.wakeCooldownUntil = now.Add(k.cfg.Overlay.WakeWordCooldown)
		did = true
	}

	return did
}

// autoVoiceDue decides whether auto-voice should open the mic: armed, no
// capture in flight, no overlay, HUD not suppressed, cooldown passed, and
// the child is at (or idling near) a prompt.
func (k *Kernel) autoVoiceDue(now time.Time) bool {
	if !k.autoVoice || k.voiceJob != nil || k.cfg.StartVoice == nil {
		return false
	}
	if k.overlayMode.ConsumesKeys() || k.status.ClaudePromptSuppressed {
		return false
	}
	if now.Before(k.wakeCooldownUntil) {
		return false
	}
	if len(k.pending) > 0 {
		return false
	}
	idle := k.cfg.Overlay.AutoVoiceIdle
	if k.cfg.Tracker.HasStaticPattern() {
		return prompt.ShouldAutoTrigger(k.cfg.Tracker, now, k.lastEnterAt, idle)
	}
	// Dynamic backends (Codex, Claude): no regex to trust, so readiness is
	// inferred from quiet — no output and no Enter for the idle window.
	return !k.lastOutputAt.IsZero() &&
		now.Sub(k.lastOutputAt) >= idle &&
		now.Sub(k.lastEnterAt) >= idle
}
