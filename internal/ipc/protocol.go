// Package ipc is the headless front-end: newline-delimited JSON commands
// on stdin, newline-delimited JSON events on stdout. It replaces the
// interactive kernel when no terminal is attached.
package ipc

// Provider names a backend a command may target.
type Provider string

const (
	ProviderCodex  Provider = "codex"
	ProviderClaude Provider = "claude"
)

// Valid reports whether the provider string is known.
func (p Provider) Valid() bool {
	return p == ProviderCodex || p == ProviderClaude
}

// Command is one line of input. Cmd selects the action; the other fields
// apply per action.
type Command struct {
	Cmd      string `json:"cmd"`
	Provider string `json:"provider,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Command verbs.
const (
	CmdPrompt       = "prompt"
	CmdCancel       = "cancel"
	CmdAuth         = "auth"
	CmdVoiceStart   = "voice_start"
	CmdVoiceStop    = "voice_stop"
	CmdCapabilities = "capabilities"
	CmdShutdown     = "shutdown"
)

// Events. Each kind is its own struct so optional fields serialize
// per-kind (JobEnd carries error: null, Token never mentions it).

// TokenEvent streams one chunk of backend output.
type TokenEvent struct {
	Event string `json:"event"`
	Text  string `json:"text"`
}

// StatusEvent is a transient progress message.
type StatusEvent struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

// JobEndEvent terminates a backend job.
type JobEndEvent struct {
	Event    string  `json:"event"`
	Provider string  `json:"provider"`
	Success  bool    `json:"success"`
	Error    *string `json:"error"`
}

// TranscriptEvent delivers a voice transcript.
type TranscriptEvent struct {
	Event      string `json:"event"`
	Text       string `json:"text"`
	DurationMS int64  `json:"duration_ms"`
}

// VoiceEndEvent terminates a voice job.
type VoiceEndEvent struct {
	Event string  `json:"event"`
	Error *string `json:"error"`
}

// AuthEndEvent terminates an auth flow.
type AuthEndEvent struct {
	Event    string  `json:"event"`
	Provider string  `json:"provider"`
	Success  bool    `json:"success"`
	Error    *string `json:"error"`
}

// CapabilitiesEvent describes what this session can do.
type CapabilitiesEvent struct {
	Event     string   `json:"event"`
	Providers []string `json:"providers"`
	Voice     bool     `json:"voice"`
}

// ErrorEvent reports a protocol-level failure.
type ErrorEvent struct {
	Event       string `json:"event"`
	Message     string `json:"message"`
	Recoverable bool   `json:"recoverable"`
}

func strp(s string) *string { return &s }

func newToken(text string) TokenEvent      { return TokenEvent{Event: "token", Text: text} }
func newStatus(msg string) StatusEvent     { return StatusEvent{Event: "status", Message: msg} }
func newTranscript(text string, ms int64) TranscriptEvent {
	return TranscriptEvent{Event: "transcript", Text: text, DurationMS: ms}
}

func newJobEnd(provider Provider, success bool, errText *string) JobEndEvent {
	return JobEndEvent{Event: "job_end", Provider: string(provider), Success: success, Error: errText}
}

func newVoiceEnd(errText *string) VoiceEndEvent {
	return VoiceEndEvent{Event: "voice_end", Error: errText}
}

func newAuthEnd(provider Provider, success bool, errText *string) AuthEndEvent {
	return AuthEndEvent{Event: "auth_end", Provider: string(provider), Success: success, Error: errText}
}

func newError(msg string, recoverable bool) ErrorEvent {
	return ErrorEvent{Event: "error", Message: msg, Recoverable: recoverable}
}
