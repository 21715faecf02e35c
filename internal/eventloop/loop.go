// Package eventloop is the overlay's coordinator: one goroutine that
// multiplexes PTY output, keystrokes, voice-worker messages, prompt
// readiness, overlay input, and writer back-pressure into a consistent
// terminal display. All kernel state is confined to that goroutine; workers
// only talk to it through bounded channels.
package eventloop

import (
	"time"

	"voiceterm/internal/backend"
	"voiceterm/internal/config"
	"voiceterm/internal/history"
	"voiceterm/internal/hud"
	"voiceterm/internal/input"
	"voiceterm/internal/logging"
	"voiceterm/internal/overlay"
	"voiceterm/internal/prompt"
	"voiceterm/internal/theme"
	"voiceterm/internal/voice"
	"voiceterm/internal/writer"
)

// Tuning knobs. Batch size bounds how much PTY output one tick moves;
// the tick wait bounds HUD latency when every source is idle.
const (
	ptyOutputBatchChunks = 8
	tickWait             = 10 * time.Millisecond
	voiceDrainMax        = 8

	statusToastDuration  = 2 * time.Second
	previewClearDuration = 3 * time.Second
	transcriptPreviewMax = 60
)

// ChildSession is the kernel's view of the PTY session.
type ChildSession interface {
	TryRecvOutput() (chunk []byte, ok, closed bool)
	SendInput(data []byte) bool
	Resize(rows, cols int) error
}

// VoiceJob is the kernel's view of one in-flight capture.
type VoiceJob interface {
	TryRecv() (msg voice.Message, ok, closed bool)
	Cancel()
	Source() voice.Source
}

// Config wires a kernel.
type Config struct {
	Backend  backend.Backend
	Overlay  config.OverlayConfig
	Session  ChildSession
	Writer   *writer.Writer
	Tracker  *prompt.Tracker
	Detector *prompt.ClaudeDetector
	Logger   *logging.Logger

	// StartVoice launches a capture job; nil disables voice.
	StartVoice func(sensitivityDB float64) VoiceJob

	// CaptureImage grabs a screenshot for the child; nil disables it.
	CaptureImage func() (path string, err error)

	// RawInput carries keyboard bytes from the stdin reader.
	RawInput <-chan []byte

	// WinchResize carries (rows, cols) updates from the SIGWINCH watcher.
	WinchResize <-chan [2]int

	// ThemeChanged signals that the themes directory changed on disk.
	ThemeChanged <-chan struct{}

	Theme theme.Theme
	Rows  int
	Cols  int
}

// pendingTranscript is one held transcript awaiting flush.
type pendingTranscript struct {
	text      string
	arrivedAt time.Time
	source    voice.Source
}

// Kernel is the single-threaded event loop. Only Run's goroutine touches
// its fields.
type Kernel struct {
	cfg Config
	dec input.Decoder
	now func() time.Time

	running      bool
	outputClosed bool

	status      hud.State
	overlayMode overlay.Mode
	theme       theme.Theme
	rows, cols  int

	pending          []pendingTranscript
	pendingPtyOutput []byte

	lastEnterAt time.Time
	autoVoice   bool
	sendMode    config.VoiceSendMode

	voiceJob          VoiceJob
	wakeCooldownUntil time.Time

	transcripts history.TranscriptHistory
	toasts      history.ToastHistory

	settingsState overlay.SettingsState
	pickerState   overlay.ThemePickerState
	studioState   overlay.ThemeStudioState
	historySel    int

	statusClearAt time.Time
	hudDirty      bool
	lastOutputAt  time.Time

	wakeWordEnabled bool
	mouseEnabled    bool

	// rawPending holds keyboard bytes picked up while parked, dispatched
	// by the next tick's input step so ordering stays normative.
	rawPending [][]byte

	// suppressStartupEscapeInput swallows stray escape reports some
	// terminals emit right after raw mode engages, until the child's
	// first output.
	suppressStartupEscapeInput bool

	stats overlay.DevStats
}

// New builds a kernel. Call Run to start it.
func New(cfg Config) *Kernel {
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	k := &Kernel{
		cfg:       cfg,
		now:       time.Now,
		running:   true,
		theme:     cfg.Theme,
		rows:      cfg.Rows,
		cols:      cfg.Cols,
		autoVoice: cfg.Overlay.AutoVoice,
		sendMode:  cfg.Overlay.VoiceSendMode,

		mouseEnabled: cfg.Overlay.MouseEnabled,

		suppressStartupEscapeInput: true,
	}
	k.status.SensitivityDB = cfg.Overlay.SensitivityDB
	k.status.VoiceMode = hud.ModeManual
	if cfg.Overlay.AutoVoice {
		k.status.VoiceMode = hud.ModeAuto
	}
	if cfg.StartVoice == nil {
		k.status.VoiceMode = hud.ModeIdle
	}
	k.status.CurrentStatus = "Ready"
	k.lastEnterAt = k.now()
	return k
}

// Run drives ticks until shutdown. It blocks the calling goroutine.
func (k *Kernel) Run() {
	k.syncOverlayWinsize()
	k.refreshHUD()
	for k.running {
		if !k.tick(k.now()) {
			k.waitForWork()
		}
	}
	k.shutdown()
}

// Running reports whether the loop is still live.
func (k *Kernel) Running() bool {
	return k.running
}

// tick runs one pass of the normative per-tick algorithm. It reports
// whether any work was done, so Run knows when to park.
func (k *Kernel) tick(now time.Time) bool {
	k.stats.Ticks++
	did := false

	// Back-pressure slot first: until it drains, no new PTY output moves.
	sendNewOutput := true
	if k.pendingPtyOutput != nil {
		did = true
		switch err := k.cfg.Writer.TrySend(writer.PtyOutput{Bytes: k.pendingPtyOutput}); err {
		case nil:
			k.pendingPtyOutput = nil
		case writer.ErrFull:
			sendNewOutput = false
		case writer.ErrClosed:
			k.running = false
			return true
		}
	}

	if sendNewOutput {
		if k.processOutput(now) {
			did = true
		}
	}

	if k.drainVoice(now) {
		did = true
	}

	if k.outputClosed && k.pendingPtyOutput == nil {
		k.running = false
		return true
	}

	if k.processInput(now) {
		did = true
	}
	if k.processTimers(now) {
		did = true
	}
	return did
}

// waitForWork parks until any source is plausibly ready, bounded by the
// tick wait so timers stay live.
func (k *Kernel) waitForWork() {
	timer := time.NewTimer(tickWait)
	defer timer.Stop()
	select {
	case data, ok := <-k.cfg.RawInput:
		if ok {
			k.dispatchRaw(data)
		} else {
			// Stdin is gone; stop selecting on it or this becomes a
			// busy loop.
			k.cfg.RawInput = nil
		}
	case size, ok := <-k.cfg.WinchResize:
		if ok {
			k.handleResize(size[0], size[1])
		}
	case <-k.cfg.ThemeChanged:
		k.handleThemeDirChanged()
	case <-k.cfg.Writer.Done():
		k.running = false
	case <-timer.C:
	}
}

// dispatchRaw buffers input consumed by waitForWork until the next tick's
// input step, preserving the tick-order guarantees.
func (k *Kernel) dispatchRaw(data []byte) {
	k.rawPending = append(k.rawPending, data)
}

func (k *Kernel) shutdown() {
	if k.voiceJob != nil {
		k.voiceJob.Cancel()
		k.voiceJob = nil
	}
	k.cfg.Writer.Send(writer.Shutdown{})
	select {
	case <-k.cfg.Writer.Done():
	case <-time.After(time.Second):
	}
	k.cfg.Logger.Debug("event loop exited")
}
