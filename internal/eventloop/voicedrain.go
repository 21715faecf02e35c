package eventloop

import (
	"time"

	"voiceterm/internal/history"
	"voiceterm/internal/hud"
	"voiceterm/internal/voice"
)

// drainVoice moves up to voiceDrainMax worker messages into kernel state.
func (k *Kernel) drainVoice(now time.Time) bool {
	if k.voiceJob == nil {
		return false
	}
	did := false
	for i := 0; i < voiceDrainMax; i++ {
		msg, ok, closed := k.voiceJob.TryRecv()
		if closed {
			// Worker gone. If it never reported, treat as a silent end.
			k.voiceJob = nil
			if k.status.Recording == hud.StateRecording || k.status.Recording == hud.StateProcessing {
				k.status.Recording = hud.StateIdle
				k.refreshHUD()
			}
			return true
		}
		if !ok {
			break
		}
		did = true
		k.handleVoiceMessage(msg, now)
	}
	return did
}

func (k *Kernel) handleVoiceMessage(msg voice.Message, now time.Time) {
	switch msg.Kind {
	case voice.KindTranscript:
		k.queueTranscript(msg.Text, msg.Source, now)
		k.status.Pipeline = hud.PipelineFromSource(msg.Source)
		k.status.Recording = hud.StateResponding
		k.setStatus("» "+voice.FormatTranscriptPreview(msg.Text, transcriptPreviewMax),
			previewClearDuration, now)
		k.tryFlushPending(now)

	case voice.KindEmpty:
		k.status.Recording = hud.StateIdle
		k.setStatus("No speech detected", previewClearDuration, now)

	case voice.KindError:
		k.status.Recording = hud.StateIdle
		k.toast(msg.Err, history.ToastError, now)
	}
	k.refreshHUD()
}

// startVoiceCapture launches a capture job unless one is already running.
func (k *Kernel) startVoiceCapture(now time.Time) {
	if k.cfg.StartVoice == nil || k.voiceJob != nil {
		return
	}
	k.voiceJob = k.cfg.StartVoice(k.status.SensitivityDB)
	k.stats.VoiceJobs++
	k.status.Recording = hud.StateRecording
	k.status.Pipeline = hud.PipelineFromSource(k.voiceJob.Source())
	k.setStatus("Listening...", 0, now)
	k.refreshHUD()
}

// stopVoiceCapture cancels an in-flight capture.
func (k *Kernel) stopVoiceCapture(now time.Time) {
	if k.voiceJob == nil {
		return
	}
	k.voiceJob.Cancel()
	k.status.Recording = hud.StateProcessing
	k.setStatus("Processing...", 0, now)
	k.refreshHUD()
}
