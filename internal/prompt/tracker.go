package prompt

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// tailWindowBytes bounds the rolling output window the prompt regex runs
// against. Only the trailing screenful matters for readiness.
const tailWindowBytes = 4096

// matchLineCount is how many trailing lines of the stripped window are
// offered to the prompt regex. Prompts sit on (or just above) the last line,
// but a trailing cursor-park line may follow them.
const matchLineCount = 8

// Tracker follows PTY output and reports prompt readiness for the active
// backend. An empty pattern disables static matching; PromptReady then stays
// false and callers fall back to idle timing.
type Tracker struct {
	re                  *regexp.Regexp
	tail                []byte
	promptReady         bool
	sawOutputSinceEnter bool
	logger              *Logger
}

// NewTracker compiles the backend's prompt pattern. logger may be nil.
func NewTracker(pattern string, logger *Logger) (*Tracker, error) {
	t := &Tracker{logger: logger}
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile prompt pattern: %w", err)
		}
		t.re = re
	}
	return t, nil
}

// FeedOutput ingests one PTY output chunk and re-evaluates readiness.
func (t *Tracker) FeedOutput(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	t.sawOutputSinceEnter = true
	t.tail = appendTail(t.tail, chunk, tailWindowBytes)
	if t.re == nil {
		return
	}

	matched := false
	for _, line := range trailingLines(StripANSI(string(t.tail)), matchLineCount) {
		if t.re.MatchString(line) {
			matched = true
			break
		}
	}
	// Readiness is sticky until Enter: new output alone does not clear
	// it, the prompt may simply have scrolled.
	if matched && !t.promptReady {
		t.promptReady = true
		t.logger.Match(string(t.tail))
	}
}

// NoteEnter records that a newline was sent to the child: the prompt is
// consumed and no output has been seen since.
func (t *Tracker) NoteEnter() {
	t.promptReady = false
	t.sawOutputSinceEnter = false
}

// PromptReady reports whether the trailing window currently matches the
// backend prompt.
func (t *Tracker) PromptReady() bool {
	return t.promptReady
}

// SawOutputSinceEnter reports whether any non-empty chunk arrived since the
// last Enter.
func (t *Tracker) SawOutputSinceEnter() bool {
	return t.sawOutputSinceEnter
}

// HasStaticPattern reports whether this tracker matches a compiled regex
// (false for backends like Codex that learn the prompt dynamically).
func (t *Tracker) HasStaticPattern() bool {
	return t.re != nil
}

// ShouldAutoTrigger reports whether auto-voice may start a capture: the
// prompt is ready and at least idle has passed since the last Enter. Output
// seen since that Enter is not consulted.
func ShouldAutoTrigger(t *Tracker, now, lastEnterAt time.Time, idle time.Duration) bool {
	if !t.promptReady {
		return false
	}
	return now.Sub(lastEnterAt) >= idle
}

// ResolvePromptRegex picks the pattern to track: an explicit --prompt-regex
// wins over the backend default.
func ResolvePromptRegex(flagPattern, backendPattern string) string {
	if flagPattern != "" {
		return flagPattern
	}
	return backendPattern
}

// appendTail appends chunk to tail and trims to the last max bytes without
// splitting a UTF-8 sequence.
func appendTail(tail, chunk []byte, max int) []byte {
	tail = append(tail, chunk...)
	if len(tail) <= max {
		return tail
	}
	start := len(tail) - max
	for start < len(tail) && tail[start]&0xC0 == 0x80 {
		start++
	}
	return append(tail[:0], tail[start:]...)
}

// trailingLines returns up to n trailing lines of s, trailing-space
// trimmed, most recent last.
func trailingLines(s string, n int) []string {
	lines := strings.Split(strings.ReplaceAll(s, "\r", "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.TrimRight(line, " \t"))
	}
	return out
}
