// Package logging writes structured JSONL debug entries to the voiceterm
// log file. The overlay UI owns the terminal, so diagnostics never go to
// stdout/stderr; they go here, and user-visible errors point at this file.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// Logger appends JSONL entries to the log file. All methods are safe for
// concurrent use. When disabled (w is nil), all methods are no-ops.
type Logger struct {
	mu   sync.Mutex
	w    *os.File
	lock *flock.Flock
}

// LogFilePath returns the location of the voiceterm debug log:
// $XDG_STATE_HOME/voiceterm/voiceterm.log (or ~/.local/state/voiceterm/).
func LogFilePath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "voiceterm.log")
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "voiceterm", "voiceterm.log")
}

// New creates a Logger appending to logPath. The log file is guarded by a
// sibling .lock file so two voiceterm instances never interleave writes; if
// the lock is held elsewhere, or the file cannot be opened, New returns a
// no-op logger (safe to call methods on).
func New(enabled bool, logPath string) *Logger {
	if !enabled {
		return &Logger{}
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return &Logger{}
	}
	fl := flock.New(logPath + ".lock")
	locked, err := fl.TryLock()
	if err != nil || !locked {
		return &Logger{}
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fl.Unlock()
		return &Logger{}
	}
	return &Logger{w: f, lock: fl}
}

// Nop returns a disabled logger. All methods are no-ops.
func Nop() *Logger {
	return &Logger{}
}

// Active reports whether this logger writes anywhere.
func (l *Logger) Active() bool {
	return l.w != nil
}

// entry is the common envelope for all log lines.
type entry struct {
	Timestamp string `json:"ts"`
	Event     string `json:"event"`
}

// Debug logs a free-form diagnostic message.
func (l *Logger) Debug(message string) {
	l.log(struct {
		entry
		Message string `json:"message"`
	}{
		entry:   l.entry("debug"),
		Message: message,
	})
}

// Debugf logs a formatted diagnostic message.
func (l *Logger) Debugf(format string, args ...any) {
	if l.w == nil {
		return
	}
	l.Debug(fmt.Sprintf(format, args...))
}

// StateChange logs a recording-state transition.
func (l *Logger) StateChange(from, to string) {
	l.log(struct {
		entry
		From string `json:"from"`
		To   string `json:"to"`
	}{
		entry: l.entry("state_change"),
		From:  from,
		To:    to,
	})
}

// VoiceResult logs the outcome of one voice-capture job.
func (l *Logger) VoiceResult(jobID, outcome, source string, captureMS int64) {
	l.log(struct {
		entry
		JobID     string `json:"job_id"`
		Outcome   string `json:"outcome"`
		Source    string `json:"source,omitempty"`
		CaptureMS int64  `json:"capture_ms,omitempty"`
	}{
		entry:     l.entry("voice_result"),
		JobID:     jobID,
		Outcome:   outcome,
		Source:    source,
		CaptureMS: captureMS,
	})
}

// Close releases the log file and its lock.
func (l *Logger) Close() error {
	if l.w == nil {
		return nil
	}
	err := l.w.Close()
	if l.lock != nil {
		l.lock.Unlock()
	}
	return err
}

func (l *Logger) entry(event string) entry {
	return entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Event:     event,
	}
}

func (l *Logger) log(v any) {
	if l.w == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	data = append(data, '\n')
	l.mu.Lock()
	l.w.Write(data)
	l.mu.Unlock()
}

// WithLogPath appends the active log-file location to an error prefix so
// toast text stays short but actionable.
func WithLogPath(prefix string) string {
	return fmt.Sprintf("%s (log: %s)", prefix, LogFilePath())
}
