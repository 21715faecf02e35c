package prompt

import (
	"strings"
	"time"
)

// suppressTTL is how long the HUD stays hidden after an interactive inline
// prompt is seen; each re-detection refreshes the deadline.
const suppressTTL = 4 * time.Second

// ClaudeDetector spots the boxed interactive prompts Claude Code (and
// Codex) draw near the bottom of the screen. Those prompts occupy the rows
// the HUD reserves, so the kernel hides the HUD while one is visible.
//
// The exact heuristic is an internal contract: the detector decides, the
// kernel obeys.
type ClaudeDetector struct {
	tail          []byte
	suppressUntil time.Time
	logger        *Logger

	// Clock is replaceable for tests.
	Clock func() time.Time
}

// NewClaudeDetector creates a detector. logger may be nil.
func NewClaudeDetector(logger *Logger) *ClaudeDetector {
	return &ClaudeDetector{logger: logger, Clock: time.Now}
}

// FeedOutput ingests a PTY chunk and reports true when a NEW interactive
// prompt was just detected (a detection while suppression is already active
// only refreshes the deadline).
func (d *ClaudeDetector) FeedOutput(chunk []byte) bool {
	if len(chunk) == 0 {
		return false
	}
	d.tail = appendTail(d.tail, chunk, tailWindowBytes)
	if !d.sees() {
		return false
	}
	// A detection consumes the window, so a prompt that has since left the
	// screen cannot re-trigger on later output and suppression can expire.
	d.tail = d.tail[:0]
	now := d.Clock()
	wasSuppressing := now.Before(d.suppressUntil)
	d.suppressUntil = now.Add(suppressTTL)
	if wasSuppressing {
		return false
	}
	d.logger.Suppress(true)
	return true
}

// ShouldSuppressHUD reports whether the HUD must stay hidden right now.
func (d *ClaudeDetector) ShouldSuppressHUD() bool {
	return d.Clock().Before(d.suppressUntil)
}

// sees reports whether the trailing window currently shows an interactive
// inline prompt.
func (d *ClaudeDetector) sees() bool {
	text := StripANSI(string(d.tail))
	cut := len(text) - 2048
	if cut > 0 {
		text = text[cut:]
	}

	// A boxed selection prompt: border corner plus a selection caret.
	if strings.ContainsRune(text, '╭') &&
		(strings.Contains(text, "❯") || strings.Contains(text, "│ >")) {
		return true
	}
	// Claude Code confirmation prompts.
	return strings.Contains(text, "Do you want")
}
