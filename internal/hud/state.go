// Package hud holds the status-line state and renders the banner frame
// drawn in the terminal's reserved bottom rows.
package hud

import "voiceterm/internal/voice"

// RecordingState is the voice pipeline's user-visible phase.
type RecordingState int

const (
	StateIdle RecordingState = iota
	StateRecording
	StateProcessing
	StateResponding
)

// String returns the log-facing name.
func (s RecordingState) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StateProcessing:
		return "processing"
	case StateResponding:
		return "responding"
	default:
		return "idle"
	}
}

// VoiceMode is how captures get triggered.
type VoiceMode int

const (
	ModeAuto VoiceMode = iota
	ModeManual
	ModeIdle
)

// Label returns the HUD tag for the mode.
func (m VoiceMode) Label() string {
	switch m {
	case ModeAuto:
		return "AUTO"
	case ModeManual:
		return "PTT"
	default:
		return "IDLE"
	}
}

// Pipeline mirrors voice.Source for display.
type Pipeline int

const (
	PipelineNative Pipeline = iota
	PipelineExternal
)

// Label returns the HUD tag for the pipeline.
func (p Pipeline) Label() string {
	if p == PipelineExternal {
		return "ext"
	}
	return "native"
}

// PipelineFromSource maps a job's capture source to the display pipeline.
func PipelineFromSource(s voice.Source) Pipeline {
	if s == voice.SourceNative {
		return PipelineNative
	}
	return PipelineExternal
}

// MeterHistoryMax bounds the mic-meter sample ring.
const MeterHistoryMax = 32

// State is everything the banner renders. The kernel owns the single
// instance; nothing else mutates it.
type State struct {
	Recording     RecordingState
	VoiceMode     VoiceMode
	Pipeline      Pipeline
	SensitivityDB float64
	CurrentStatus string

	ClaudePromptSuppressed bool

	// Minimal collapses the banner to a single unframed row.
	Minimal bool

	meter []float64
}

// PushMeterSample appends an RMS sample, discarding the oldest past
// MeterHistoryMax.
func (s *State) PushMeterSample(db float64) {
	s.meter = append(s.meter, db)
	if len(s.meter) > MeterHistoryMax {
		s.meter = s.meter[len(s.meter)-MeterHistoryMax:]
	}
}

// MeterHistory returns the retained samples, oldest first.
func (s *State) MeterHistory() []float64 {
	return s.meter
}
