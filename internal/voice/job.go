// Package voice runs microphone capture and speech-to-text in a worker
// goroutine and reports the result as messages on a bounded channel. The
// event loop polls the channel; it never blocks on the worker.
package voice

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"voiceterm/internal/logging"
)

// Source identifies which capture pipeline produced a result.
type Source int

const (
	// SourceNative is the in-process recorder + transcriber pipeline.
	SourceNative Source = iota
	// SourcePython is the external helper pipeline.
	SourcePython
)

// Label returns the pipeline tag shown in the HUD and logs.
func (s Source) Label() string {
	if s == SourcePython {
		return "python"
	}
	return "native"
}

// Metrics carries timing data for one capture.
type Metrics struct {
	CaptureMS int64
}

// MessageKind discriminates worker results.
type MessageKind int

const (
	// KindTranscript carries recognized speech.
	KindTranscript MessageKind = iota
	// KindEmpty reports a capture with no recognizable speech.
	KindEmpty
	// KindError is terminal: the channel closes right after it.
	KindError
)

// Message is one worker result.
type Message struct {
	Kind    MessageKind
	Text    string
	Source  Source
	Metrics *Metrics
	Err     string
}

// Recorder captures audio until the voice-activity detector decides the
// utterance ended (or ctx is cancelled). Implementations live outside the
// core.
type Recorder interface {
	Record(ctx context.Context, sensitivityDB float64) (samples []float32, captureMS int64, err error)
}

// Transcriber turns captured samples into text. Implementations live
// outside the core.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []float32) (string, error)
}

// ExternalPipeline delegates the whole capture+STT round to a helper
// process.
type ExternalPipeline interface {
	CaptureAndTranscribe(ctx context.Context) (text string, captureMS int64, err error)
}

// Default pipeline components, installed by platform audio builds (or a
// test shim). When all are nil, capture jobs fail fast with a clear error.
var (
	DefaultRecorder    Recorder
	DefaultTranscriber Transcriber
	DefaultExternal    ExternalPipeline
)

// JobConfig wires a capture job. Native capture needs both Recorder and
// Transcriber; otherwise External is used.
type JobConfig struct {
	Recorder      Recorder
	Transcriber   Transcriber
	External      ExternalPipeline
	SensitivityDB float64
	Logger        *logging.Logger
}

// Job is a single in-flight capture. The worker emits exactly one
// Transcript/Empty (or one Error) and the channel closes when it exits.
type Job struct {
	id       string
	messages chan Message
	cancel   context.CancelFunc
	source   Source
}

// messageChanDepth leaves room for the terminal message even if the kernel
// is mid-tick.
const messageChanDepth = 16

// Start launches the capture worker.
func Start(cfg JobConfig) *Job {
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	source := SourcePython
	if UsingNativePipeline(cfg.Transcriber != nil, cfg.Recorder != nil) {
		source = SourceNative
	}
	j := &Job{
		id:       uuid.NewString(),
		messages: make(chan Message, messageChanDepth),
		cancel:   cancel,
		source:   source,
	}
	cfg.Logger.Debugf("voice job %s started via %s", j.id, source.Label())
	go j.run(ctx, cfg)
	return j
}

// ID is the job's correlation id for log lines.
func (j *Job) ID() string {
	return j.id
}

// Source reports which pipeline this job runs, decided at start time.
func (j *Job) Source() Source {
	return j.source
}

// TryRecv is the kernel's non-blocking poll. closed means the worker is
// gone and no further messages will arrive.
func (j *Job) TryRecv() (msg Message, ok, closed bool) {
	select {
	case msg, more := <-j.messages:
		if !more {
			return Message{}, false, true
		}
		return msg, true, false
	default:
		return Message{}, false, false
	}
}

// Cancel short-circuits capture. The worker exits without emitting a
// transcript.
func (j *Job) Cancel() {
	j.cancel()
}

func (j *Job) run(ctx context.Context, cfg JobConfig) {
	defer close(j.messages)
	defer func() {
		if r := recover(); r != nil {
			cfg.Logger.Debugf("voice worker panic: %v", r)
			j.emit(Message{Kind: KindError, Err: fmt.Sprintf("Voice capture failed: %v", r)})
		}
	}()

	var (
		text      string
		captureMS int64
		err       error
	)
	switch j.source {
	case SourceNative:
		text, captureMS, err = j.runNative(ctx, cfg)
	default:
		if cfg.External == nil {
			j.emit(Message{Kind: KindError, Err: "No voice pipeline available"})
			return
		}
		text, captureMS, err = cfg.External.CaptureAndTranscribe(ctx)
	}

	if ctx.Err() != nil {
		// Cancelled: exit without a result message.
		return
	}
	if err != nil {
		cfg.Logger.Debugf("voice job %s error via %s: %v", j.id, j.source.Label(), err)
		j.emit(Message{Kind: KindError, Err: err.Error()})
		return
	}

	metrics := &Metrics{CaptureMS: captureMS}
	if strings.TrimSpace(text) == "" {
		cfg.Logger.VoiceResult(j.id, "empty", j.source.Label(), captureMS)
		j.emit(Message{Kind: KindEmpty, Source: j.source, Metrics: metrics})
		return
	}
	cfg.Logger.VoiceResult(j.id, "transcript", j.source.Label(), captureMS)
	j.emit(Message{Kind: KindTranscript, Text: text, Source: j.source, Metrics: metrics})
}

func (j *Job) runNative(ctx context.Context, cfg JobConfig) (string, int64, error) {
	samples, captureMS, err := cfg.Recorder.Record(ctx, cfg.SensitivityDB)
	if err != nil {
		return "", 0, fmt.Errorf("record: %w", err)
	}
	if ctx.Err() != nil {
		return "", captureMS, nil
	}
	// Below the sensitivity floor there is nothing worth transcribing.
	if RMSdB(samples) < cfg.SensitivityDB {
		return "", captureMS, nil
	}
	text, err := cfg.Transcriber.Transcribe(ctx, samples)
	if err != nil {
		return "", captureMS, fmt.Errorf("transcribe: %w", err)
	}
	return text, captureMS, nil
}

func (j *Job) emit(msg Message) {
	select {
	case j.messages <- msg:
	default:
	}
}
