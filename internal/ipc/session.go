package ipc

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"voiceterm/internal/logging"
	"voiceterm/internal/voice"
)

// AuthTimeout bounds interactive login flows.
const AuthTimeout = 120 * time.Second

// Sink receives events for serialization. Production uses NewWriterSink
// on stdout; tests capture.
type Sink func(event any)

// NewWriterSink serializes events as JSON lines to w.
func NewWriterSink(w io.Writer) Sink {
	var mu sync.Mutex
	return func(event any) {
		data, err := json.Marshal(event)
		if err != nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		w.Write(append(data, '\n'))
	}
}

// AuthRunner performs a blocking login flow for a provider.
type AuthRunner func(provider Provider) error

// VoiceJob is the session's view of one in-flight capture.
type VoiceJob interface {
	TryRecv() (msg voice.Message, ok, closed bool)
	Cancel()
}

// VoiceStarter launches a capture job.
type VoiceStarter func() VoiceJob

// authJob is one in-flight login.
type authJob struct {
	provider  Provider
	startedAt time.Time
	result    chan error
}

// State is the IPC session state machine: at most one backend job, one
// auth flow, and one voice job at a time.
type State struct {
	sink   Sink
	logger *logging.Logger

	runner     JobRunner
	authRunner AuthRunner
	voiceStart VoiceStarter

	currentJob   *CodexJob
	currentAuth  *authJob
	currentVoice VoiceJob
	voiceStopped bool

	shutdownRequested bool

	now func() time.Time
}

// NewState wires a session. Any runner may be nil: a prompt then answers
// with a recoverable error, auth with a failed auth_end, and voice_start with
// a voice_end carrying an error. Capabilities reflect only whether voice is
// available; the provider list is fixed.
func NewState(sink Sink, logger *logging.Logger, runner JobRunner, auth AuthRunner, voiceStart VoiceStarter) *State {
	if logger == nil {
		logger = logging.Nop()
	}
	return &State{
		sink:       sink,
		logger:     logger,
		runner:     runner,
		authRunner: auth,
		voiceStart: voiceStart,
		now:        time.Now,
	}
}

// DefaultRunner builds the exec-based job runner from provider command
// lines.
func DefaultRunner(codexCmd, claudeCmd []string) JobRunner {
	return execRunner(func(p Provider) []string {
		if p == ProviderClaude {
			return claudeCmd
		}
		return codexCmd
	})
}

// EmitCapabilities publishes what this session supports.
func (s *State) EmitCapabilities() {
	s.sink(CapabilitiesEvent{
		Event:     "capabilities",
		Providers: []string{string(ProviderCodex), string(ProviderClaude)},
		Voice:     s.voiceStart != nil,
	})
}

// hasActiveWork reports whether any job is in flight.
func (s *State) hasActiveWork() bool {
	return s.currentJob != nil || s.currentAuth != nil || s.currentVoice != nil
}

// handleCommand applies one parsed command.
func (s *State) handleCommand(cmd Command) {
	switch cmd.Cmd {
	case CmdPrompt:
		s.startPrompt(cmd)
	case CmdCancel:
		s.cancelAll()
	case CmdAuth:
		s.startAuth(cmd)
	case CmdVoiceStart:
		s.startVoice()
	case CmdVoiceStop:
		s.stopVoice()
	case CmdCapabilities:
		s.EmitCapabilities()
	case CmdShutdown:
		s.shutdownRequested = true
	default:
		s.sink(newError(fmt.Sprintf("Invalid command: unknown cmd %q", cmd.Cmd), true))
	}
}

func (s *State) startPrompt(cmd Command) {
	provider := Provider(cmd.Provider)
	if cmd.Provider == "" {
		provider = ProviderCodex
	}
	if !provider.Valid() {
		s.sink(newError(fmt.Sprintf("Invalid command: unknown provider %q", cmd.Provider), true))
		return
	}
	if s.currentJob != nil {
		s.sink(newError("Invalid command: a job is already running", true))
		return
	}
	if s.runner == nil {
		s.sink(newError("Invalid command: backend jobs unavailable", true))
		return
	}
	s.currentJob = startJob(s.runner, provider, cmd.Text)
	s.logger.Debugf("ipc job started for %s", provider)
}

func (s *State) cancelAll() {
	if s.currentJob != nil {
		s.currentJob.Cancel()
	}
	s.stopVoice()
}

func (s *State) startAuth(cmd Command) {
	provider := Provider(cmd.Provider)
	if !provider.Valid() {
		s.sink(newError(fmt.Sprintf("Invalid command: unknown provider %q", cmd.Provider), true))
		return
	}
	if s.currentAuth != nil {
		s.sink(newError("Invalid command: auth already in progress", true))
		return
	}
	if s.authRunner != nil {
		job := &authJob{provider: provider, startedAt: s.now(), result: make(chan error, 1)}
		s.currentAuth = job
		go func() { job.result <- s.authRunner(provider) }()
		return
	}
	s.sink(newAuthEnd(provider, false, strp("auth unavailable")))
	s.EmitCapabilities()
}

func (s *State) startVoice() {
	if s.voiceStart == nil {
		s.sink(newVoiceEnd(strp("voice unavailable")))
		return
	}
	if s.currentVoice != nil {
		s.sink(newError("Invalid command: voice capture already running", true))
		return
	}
	s.voiceStopped = false
	s.currentVoice = s.voiceStart()
}

func (s *State) stopVoice() {
	if s.currentVoice == nil {
		return
	}
	s.currentVoice.Cancel()
	s.voiceStopped = true
	s.sink(newVoiceEnd(strp("Cancelled")))
}

// drainActiveJobs advances every in-flight job without blocking.
func (s *State) drainActiveJobs() {
	if s.currentJob != nil && processCodexEvents(s.currentJob, s.sink) {
		s.currentJob = nil
	}
	if s.currentAuth != nil && s.processAuthEvents() {
		s.currentAuth = nil
	}
	if s.currentVoice != nil && s.processVoiceEvents() {
		s.currentVoice = nil
	}
}

// processAuthEvents checks the login flow: timeout first, then the
// worker's result. Completion re-emits capabilities either way.
func (s *State) processAuthEvents() bool {
	job := s.currentAuth
	if s.now().Sub(job.startedAt) >= AuthTimeout {
		s.sink(newAuthEnd(job.provider, false,
			strp(fmt.Sprintf("Authentication timed out after %ds", int(AuthTimeout.Seconds())))))
		s.EmitCapabilities()
		return true
	}
	select {
	case err := <-job.result:
		if err != nil {
			s.sink(newAuthEnd(job.provider, false, strp(err.Error())))
		} else {
			s.sink(newAuthEnd(job.provider, true, nil))
		}
		s.EmitCapabilities()
		return true
	default:
		return false
	}
}

// processVoiceEvents maps voice-worker messages to IPC events. A
// cancelled job is cleared silently; VoiceEnd for it was emitted when the
// stop command arrived.
func (s *State) processVoiceEvents() bool {
	if s.voiceStopped {
		return true
	}
	msg, ok, closed := s.currentVoice.TryRecv()
	if closed {
		s.sink(newVoiceEnd(strp("Voice worker disconnected")))
		return true
	}
	if !ok {
		return false
	}
	switch msg.Kind {
	case voice.KindTranscript:
		var ms int64
		if msg.Metrics != nil {
			ms = msg.Metrics.CaptureMS
		}
		s.sink(newVoiceEnd(nil))
		s.sink(newTranscript(msg.Text, ms))
		s.logger.Debugf("voice transcript via %s", msg.Source.Label())
	case voice.KindEmpty:
		s.sink(newVoiceEnd(strp("No speech detected")))
	case voice.KindError:
		s.sink(newVoiceEnd(strp(msg.Err)))
	}
	return true
}
