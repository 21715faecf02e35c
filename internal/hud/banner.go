package hud

import (
	"fmt"
	"strings"

	"voiceterm/internal/textwidth"
	"voiceterm/internal/theme"
)

// BannerRows is the height of the visible HUD strip.
const BannerRows = 3

// Height returns how many rows the HUD needs right now. While a child's
// inline prompt occupies the bottom of the screen the HUD yields its rows
// entirely.
func Height(s *State) int {
	if s.ClaudePromptSuppressed {
		return 0
	}
	if s.Minimal {
		return 1
	}
	return BannerRows
}

// meterGlyphs maps ascending level to a bar glyph.
var meterGlyphs = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Render builds the banner frame for the given state, theme, and terminal
// width. It returns exactly Height(s) rows, each clipped to width cells.
func Render(s *State, th theme.Theme, width int) []string {
	if Height(s) == 0 {
		return nil
	}
	if width < 8 {
		width = 8
	}

	if s.Minimal {
		body, visible := statusBody(s, th, width)
		pad := width - visible
		if pad < 0 {
			pad = 0
		}
		return []string{body + strings.Repeat(" ", pad)}
	}

	rows := make([]string, 0, BannerRows)
	rows = append(rows, theme.FrameTop(th, width))

	body, visible := statusBody(s, th, width-4)
	rows = append(rows, theme.ContentLine(th, " "+body, visible+1, width))
	rows = append(rows, theme.FrameBottom(th, width))
	return rows
}

// statusBody assembles " ◉ AUTO | native | -40dB | <status> | <meter>",
// dropping segments right-to-left when width is tight. It returns the text
// (with colors) and its visible cell count.
func statusBody(s *State, th theme.Theme, maxWidth int) (string, int) {
	indicator, color := modeIndicator(s, th)

	segments := []string{
		indicator + " " + s.VoiceMode.Label(),
		s.Pipeline.Label(),
		fmt.Sprintf("%.0fdB", s.SensitivityDB),
	}
	if status := textwidth.SanitizeStatus(s.CurrentStatus); status != "" {
		segments = append(segments, status)
	}
	if bar := meterBar(s.MeterHistory(), 8); bar != "" {
		segments = append(segments, bar)
	}

	for len(segments) > 1 {
		plain := strings.Join(segments, " | ")
		if textwidth.DisplayWidth(plain) <= maxWidth {
			break
		}
		segments = segments[:len(segments)-1]
	}
	plain := textwidth.Truncate(strings.Join(segments, " | "), maxWidth)

	if th.Colorless() {
		return plain, textwidth.DisplayWidth(plain)
	}
	// Color only the leading indicator; the rest stays theme-neutral so
	// the banner reads at a glance.
	colored := color + plain + th.Reset
	return colored, textwidth.DisplayWidth(plain)
}

func modeIndicator(s *State, th theme.Theme) (glyph, color string) {
	switch s.Recording {
	case StateRecording:
		return th.IndicatorRec, th.Recording
	case StateProcessing:
		return th.IndicatorRec, th.Processing
	case StateResponding:
		return th.IndicatorRec, th.Success
	}
	switch s.VoiceMode {
	case ModeAuto:
		return th.IndicatorAuto, th.Info
	case ModeManual:
		return th.IndicatorManual, ""
	default:
		return th.IndicatorIdle, th.Dim
	}
}

// meterBar draws the most recent cells of the mic meter as bar glyphs,
// mapping [-60, 0] dB onto the glyph ramp.
func meterBar(history []float64, cells int) string {
	if len(history) == 0 {
		return ""
	}
	if len(history) > cells {
		history = history[len(history)-cells:]
	}
	var b strings.Builder
	for _, db := range history {
		level := (db + 60) / 60
		if level < 0 {
			level = 0
		}
		if level > 1 {
			level = 1
		}
		idx := int(level * float64(len(meterGlyphs)-1))
		b.WriteRune(meterGlyphs[idx])
	}
	return b.String()
}
