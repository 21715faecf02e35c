package voice

import (
	"strings"
	"unicode"
)

// FormatTranscriptPreview compresses a transcript for single-line HUD
// display: whitespace and control runs collapse to one space, and text
// longer than maxLen (floored at 4) is cut to maxLen-3 characters plus
// "...". Both the drain path and history navigation use this, so the
// preview never diverges between them.
func FormatTranscriptPreview(text string, maxLen int) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	var collapsed strings.Builder
	lastSpace := false
	for _, ch := range trimmed {
		if unicode.IsSpace(ch) || ch < 0x20 || ch == 0x7F {
			if !lastSpace {
				collapsed.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		collapsed.WriteRune(ch)
		lastSpace = false
	}

	cleaned := strings.TrimSpace(collapsed.String())
	if maxLen < 4 {
		maxLen = 4
	}
	runes := []rune(cleaned)
	if len(runes) <= maxLen {
		return cleaned
	}
	return string(runes[:maxLen-3]) + "..."
}
