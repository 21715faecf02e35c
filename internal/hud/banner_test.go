package hud

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"voiceterm/internal/prompt"
	"voiceterm/internal/textwidth"
	"voiceterm/internal/theme"
	"voiceterm/internal/voice"
)

func TestHeightZeroWhileSuppressed(t *testing.T) {
	s := &State{}
	if got := Height(s); got != BannerRows {
		t.Errorf("Height = %d, want %d", got, BannerRows)
	}
	s.ClaudePromptSuppressed = true
	if got := Height(s); got != 0 {
		t.Errorf("suppressed Height = %d, want 0", got)
	}
	if rows := Render(s, theme.None(), 80); rows != nil {
		t.Errorf("suppressed Render = %v, want nil", rows)
	}
}

func TestRenderRowsMatchWidth(t *testing.T) {
	s := &State{VoiceMode: ModeAuto, SensitivityDB: -40, CurrentStatus: "Ready"}
	for _, width := range []int{20, 40, 80, 120} {
		rows := Render(s, theme.None(), width)
		if len(rows) != BannerRows {
			t.Fatalf("width %d: %d rows", width, len(rows))
		}
		for i, row := range rows {
			if got := textwidth.DisplayWidth(row); got != width {
				t.Errorf("width %d row %d: display width %d (%q)", width, i, got, row)
			}
		}
	}
}

func TestRenderStripsControlCharsFromStatus(t *testing.T) {
	s := &State{CurrentStatus: "bad\x1b[31mstatus\x07"}
	rows := Render(s, theme.None(), 60)
	joined := strings.Join(rows, "\n")
	if strings.ContainsRune(joined, 0x1b) || strings.ContainsRune(joined, 0x07) {
		t.Errorf("control characters leaked into banner: %q", joined)
	}
}

func TestRenderShowsModeAndPipeline(t *testing.T) {
	s := &State{VoiceMode: ModeAuto, Pipeline: PipelineNative, SensitivityDB: -42}
	rows := Render(s, theme.None(), 80)
	body := rows[1]
	for _, want := range []string{"AUTO", "native", "-42dB"} {
		if !strings.Contains(body, want) {
			t.Errorf("banner body %q missing %q", body, want)
		}
	}

	s.VoiceMode = ModeManual
	s.Pipeline = PipelineExternal
	body = Render(s, theme.None(), 80)[1]
	if !strings.Contains(body, "PTT") || !strings.Contains(body, "ext") {
		t.Errorf("banner body %q missing PTT/ext", body)
	}
}

func TestRenderColoredStaysAligned(t *testing.T) {
	s := &State{VoiceMode: ModeAuto, Recording: StateRecording, CurrentStatus: "Listening"}
	th, _ := theme.FromName("ansi")
	rows := Render(s, th, 50)
	for i, row := range rows {
		stripped := prompt.StripANSI(row)
		if got := textwidth.DisplayWidth(stripped); got != 50 {
			t.Errorf("row %d visible width = %d, want 50 (%q)", i, got, stripped)
		}
	}
}

func TestNarrowWidthDropsSegmentsNotAlignment(t *testing.T) {
	s := &State{VoiceMode: ModeAuto, SensitivityDB: -40,
		CurrentStatus: "a very long status message that cannot possibly fit"}
	for i := 0; i < MeterHistoryMax; i++ {
		s.PushMeterSample(-20)
	}
	rows := Render(s, theme.None(), 24)
	for i, row := range rows {
		if got := textwidth.DisplayWidth(row); got != 24 {
			t.Errorf("row %d width = %d, want 24", i, got)
		}
	}
}

func TestMeterRingBounded(t *testing.T) {
	s := &State{}
	for i := 0; i < 100; i++ {
		s.PushMeterSample(float64(-i))
	}
	if got := len(s.MeterHistory()); got != MeterHistoryMax {
		t.Errorf("meter history = %d samples, want %d", got, MeterHistoryMax)
	}
	// Oldest samples dropped: the first retained one is sample 100-32.
	if s.MeterHistory()[0] != -68 {
		t.Errorf("ring kept wrong window, first = %v", s.MeterHistory()[0])
	}
}

func TestPipelineFromSource(t *testing.T) {
	if PipelineFromSource(voice.SourceNative) != PipelineNative {
		t.Error("native source mismapped")
	}
	if PipelineFromSource(voice.SourcePython) != PipelineExternal {
		t.Error("python source mismapped")
	}
}

func TestImageCaptureFailed(t *testing.T) {
	wrapped := fmt.Errorf("capture: %w", errors.New("no display found"))
	if got := ImageCaptureFailed(wrapped); got != "Image capture failed: no display found" {
		t.Errorf("ImageCaptureFailed = %q", got)
	}

	blank := errors.New("   ")
	got := ImageCaptureFailed(blank)
	if !strings.HasPrefix(got, "Image capture failed (log: ") {
		t.Errorf("blank root cause should use the log-path form, got %q", got)
	}
}
