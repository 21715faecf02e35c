package eventloop

import (
	"time"

	"voiceterm/internal/hud"
	"voiceterm/internal/writer"
)

// processOutput is tick steps 2–6: batch PTY chunks, update trackers and
// state, flush held transcripts, and hand the bytes to the writer (parking
// them on back-pressure).
func (k *Kernel) processOutput(now time.Time) bool {
	var data []byte
	for i := 0; i < ptyOutputBatchChunks; i++ {
		chunk, ok, closed := k.cfg.Session.TryRecvOutput()
		if closed {
			k.outputClosed = true
			break
		}
		if !ok {
			break
		}
		data = append(data, chunk...)
		k.stats.PtyChunks++
	}
	if len(data) == 0 && !k.outputClosed {
		return false
	}

	if len(data) > 0 {
		k.stats.PtyBytes += uint64(len(data))
		k.lastOutputAt = now
		k.suppressStartupEscapeInput = false
		k.transcripts.IngestBackendOutput(data)
		if k.status.Recording == hud.StateResponding {
			k.status.Recording = hud.StateIdle
			k.refreshHUD()
		}
	}

	k.cfg.Tracker.FeedOutput(data)
	if k.cfg.Detector.FeedOutput(data) {
		k.setClaudePromptSuppression(true)
	} else if k.status.ClaudePromptSuppressed && !k.cfg.Detector.ShouldSuppressHUD() {
		k.setClaudePromptSuppression(false)
	}

	k.tryFlushPending(now)

	if len(data) > 0 {
		switch err := k.cfg.Writer.TrySend(writer.PtyOutput{Bytes: data}); err {
		case writer.ErrFull:
			k.stats.WriterFullEvents++
			k.pendingPtyOutput = data
		case writer.ErrClosed:
			k.running = false
		}
	}
	return true
}

// setClaudePromptSuppression flips HUD occlusion. The kernel keeps
// tracking state while suppressed; a refresh fires on un-suppression so
// the banner reappears current.
func (k *Kernel) setClaudePromptSuppression(on bool) {
	if k.status.ClaudePromptSuppressed == on {
		return
	}
	k.status.ClaudePromptSuppressed = on
	k.cfg.Writer.Send(writer.SetSuppressed{On: on})
	k.syncOverlayWinsize()
	if !on {
		k.refreshHUD()
	}
}
