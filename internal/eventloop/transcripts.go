package eventloop

import (
	"time"

	"voiceterm/internal/config"
	"voiceterm/internal/history"
	"voiceterm/internal/voice"
)

// queueTranscript holds a transcript until the child is ready for it.
func (k *Kernel) queueTranscript(text string, source voice.Source, now time.Time) {
	k.pending = append(k.pending, pendingTranscript{
		text:      text,
		arrivedAt: now,
		source:    source,
	})
	k.stats.Transcripts++
	k.stats.PendingCount = len(k.pending)
}

// tryFlushPending sends held transcripts while policy allows: never under
// an open overlay, and only once the prompt is ready or the idle timeout
// has elapsed since arrival. Each transcript goes to the child as one
// write, so two texts can never interleave.
func (k *Kernel) tryFlushPending(now time.Time) {
	if k.overlayMode.ConsumesKeys() {
		return
	}
	for len(k.pending) > 0 {
		head := k.pending[0]
		ready := k.cfg.Tracker.PromptReady() ||
			now.Sub(head.arrivedAt) >= k.cfg.Overlay.TranscriptIdle
		if !ready {
			break
		}
		if !k.sendTranscript(head.text, now) {
			break
		}
		k.pending = k.pending[1:]
	}
	k.stats.PendingCount = len(k.pending)
}

// sendTranscript writes one transcript to the child per the send mode.
// Auto mode appends the newline in the same write and counts as an Enter.
func (k *Kernel) sendTranscript(text string, now time.Time) bool {
	payload := []byte(text)
	withNewline := k.sendMode == config.SendModeAuto
	if withNewline {
		payload = append(payload, '\n')
	}
	if !k.cfg.Session.SendInput(payload) {
		return false
	}
	if withNewline {
		k.lastEnterAt = now
		k.cfg.Tracker.NoteEnter()
	}
	k.transcripts.AddTranscript(text, history.SourceVoice)
	return true
}

// sendEnter forwards the Enter key and resets prompt-tracking state, then
// gives held transcripts a chance to ride the fresh prompt cycle.
func (k *Kernel) sendEnter(now time.Time) {
	if !k.cfg.Session.SendInput([]byte{'\n'}) {
		return
	}
	k.lastEnterAt = now
	k.cfg.Tracker.NoteEnter()
	k.tryFlushPending(now)
}
