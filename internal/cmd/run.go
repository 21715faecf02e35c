package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"voiceterm/internal/backend"
	"voiceterm/internal/config"
	"voiceterm/internal/eventloop"
	"voiceterm/internal/hud"
	"voiceterm/internal/logging"
	"voiceterm/internal/prompt"
	"voiceterm/internal/ptysession"
	"voiceterm/internal/theme"
	"voiceterm/internal/voice"
	"voiceterm/internal/writer"
)

// runOverlay wires and runs the interactive terminal overlay.
func runOverlay(cfg config.OverlayConfig) error {
	be, err := backend.Resolve(cfg.BackendName, cfg.BackendArgs)
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("get terminal size (is this a terminal?): %w", err)
	}
	if rows < hud.BannerRows+2 {
		return fmt.Errorf("terminal too small (need at least %d rows, have %d)", hud.BannerRows+2, rows)
	}

	logger := logging.New(cfg.DebugLog, logging.LogFilePath())
	defer logger.Close()

	promptLog, err := prompt.NewLogger(cfg.PromptLogPath)
	if err != nil {
		return err
	}
	defer promptLog.Close()

	pattern := prompt.ResolvePromptRegex(cfg.PromptRegex, be.PromptPattern)
	tracker, err := prompt.NewTracker(pattern, promptLog)
	if err != nil {
		return err
	}
	detector := prompt.NewClaudeDetector(promptLog)

	// Detect the real terminal's colors before raw mode so the session
	// can answer the child's OSC 10/11 queries.
	opts := ptysession.Options{
		Rows:     rows - hud.BannerRows,
		Cols:     cols,
		ExtraEnv: map[string]string{"VOICETERM": "1"},
	}
	output := termenv.NewOutput(os.Stdout)
	if fg := output.ForegroundColor(); fg != nil {
		opts.OscFg = ptysession.ColorToX11(fg)
	}
	if bg := output.BackgroundColor(); bg != nil {
		opts.OscBg = ptysession.ColorToX11(bg)
	}
	if os.Getenv("COLORFGBG") == "" {
		colorfgbg := "0;15"
		if output.HasDarkBackground() {
			colorfgbg = "15;0"
		}
		opts.ExtraEnv["COLORFGBG"] = colorfgbg
	}

	session, err := ptysession.Start(be.Command, opts)
	if err != nil {
		return err
	}
	defer session.Close()

	restore, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	if cfg.MouseEnabled {
		os.Stdout.WriteString("\x1b[?1000h\x1b[?1006h")
	}
	defer func() {
		if cfg.MouseEnabled {
			os.Stdout.WriteString("\x1b[?1000l\x1b[?1006l")
		}
		term.Restore(fd, restore)
		os.Stdout.WriteString("\x1b[?25h\x1b[0m\r\n")
	}()

	w := writer.New(os.Stdout, rows, cols)

	rawCh := make(chan []byte, 16)
	go readStdin(rawCh)

	resizeCh := make(chan [2]int, 1)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	defer signal.Stop(sigCh)
	go watchResize(fd, sigCh, resizeCh)

	var themeChanged <-chan struct{}
	if dir, err := theme.EnsureDir(); err == nil {
		if tw, err := theme.WatchDir(dir); err == nil {
			defer tw.Close()
			themeChanged = tw.Changed()
		}
	}

	kernel := eventloop.New(eventloop.Config{
		Backend:      be,
		Overlay:      cfg,
		Session:      session,
		Writer:       w,
		Tracker:      tracker,
		Detector:     detector,
		Logger:       logger,
		StartVoice:   voiceStarter(logger),
		RawInput:     rawCh,
		WinchResize:  resizeCh,
		ThemeChanged: themeChanged,
		Theme:        theme.Resolve(cfg.ThemeName, cfg.ColorDisabled()),
		Rows:         rows,
		Cols:         cols,
	})
	kernel.Run()
	return nil
}

// voiceStarter adapts the installed capture pipeline to the kernel; nil
// when no pipeline is present so voice features disable cleanly.
func voiceStarter(logger *logging.Logger) func(sensitivityDB float64) eventloop.VoiceJob {
	if voice.DefaultExternal == nil &&
		!voice.UsingNativePipeline(voice.DefaultTranscriber != nil, voice.DefaultRecorder != nil) {
		return nil
	}
	return func(sensitivityDB float64) eventloop.VoiceJob {
		return voice.Start(voice.JobConfig{
			Recorder:      voice.DefaultRecorder,
			Transcriber:   voice.DefaultTranscriber,
			External:      voice.DefaultExternal,
			SensitivityDB: sensitivityDB,
			Logger:        logger,
		})
	}
}

// readStdin pumps raw keyboard bytes to the kernel until stdin closes.
func readStdin(out chan<- []byte) {
	defer close(out)
	buf := make([]byte, 256)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			out <- chunk
		}
		if err != nil {
			return
		}
	}
}

// watchResize forwards SIGWINCH size changes.
func watchResize(fd int, sigCh <-chan os.Signal, out chan<- [2]int) {
	for range sigCh {
		cols, rows, err := term.GetSize(fd)
		if err != nil {
			continue
		}
		select {
		case out <- [2]int{rows, cols}:
		default:
		}
	}
}
