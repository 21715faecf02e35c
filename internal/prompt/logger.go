package prompt

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Logger appends prompt-detection diagnostics to the --prompt-log file.
// A nil *Logger is valid and drops everything.
type Logger struct {
	mu sync.Mutex
	w  *os.File
}

// NewLogger opens (appending) the prompt log at path. Empty path returns a
// nil logger.
func NewLogger(path string) (*Logger, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open prompt log: %w", err)
	}
	return &Logger{w: f}, nil
}

// Match records a prompt-regex hit with the window that produced it.
func (l *Logger) Match(window string) {
	l.write("match", window)
}

// Suppress records a Claude-prompt suppression decision.
func (l *Logger) Suppress(on bool) {
	if on {
		l.write("suppress", "on")
	} else {
		l.write("suppress", "off")
	}
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.w.Close()
}

func (l *Logger) write(event, detail string) {
	if l == nil || l.w == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s %s %q\n", time.Now().UTC().Format(time.RFC3339Nano), event, detail)
}
