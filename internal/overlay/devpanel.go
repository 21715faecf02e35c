package overlay

import (
	"fmt"

	"voiceterm/internal/theme"
)

// DevStats is the runtime snapshot the dev panel shows.
type DevStats struct {
	Ticks            uint64
	PtyChunks        uint64
	PtyBytes         uint64
	WriterFullEvents uint64
	VoiceJobs        uint64
	Transcripts      uint64
	PendingCount     int
	PromptReady      bool
	Suppressed       bool
}

// RenderDevPanel builds the dev panel frame.
func RenderDevPanel(stats DevStats, th theme.Theme, termCols int) Frame {
	items := []string{
		fmt.Sprintf("ticks             %d", stats.Ticks),
		fmt.Sprintf("pty chunks        %d", stats.PtyChunks),
		fmt.Sprintf("pty bytes         %d", stats.PtyBytes),
		fmt.Sprintf("writer full       %d", stats.WriterFullEvents),
		fmt.Sprintf("voice jobs        %d", stats.VoiceJobs),
		fmt.Sprintf("transcripts       %d", stats.Transcripts),
		fmt.Sprintf("pending queue     %d", stats.PendingCount),
		fmt.Sprintf("prompt ready      %v", stats.PromptReady),
		fmt.Sprintf("hud suppressed    %v", stats.Suppressed),
	}
	return buildList(th, "Dev Panel", items, -1, "Esc closes", termCols)
}
