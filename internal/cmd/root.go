// Package cmd is the voiceterm command-line surface: flag parsing, the
// themed grouped help, device listing, and launching either the
// interactive overlay or the headless IPC session.
package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"voiceterm/internal/config"
	"voiceterm/internal/termstyle"
	"voiceterm/internal/version"
	"voiceterm/internal/voice"
)

// flagValues carries raw flag state until RunE resolves it into an
// OverlayConfig.
type flagValues struct {
	backend           string
	voiceSendMode     string
	theme             string
	noColor           bool
	promptRegex       string
	promptLog         string
	autoVoice         bool
	autoVoiceIdleMS   int
	transcriptIdleMS  int
	wakeSensitivity   float64
	wakeCooldownMS    int
	listInputDevices  bool
	ipcMode           bool
	noMouse           bool
	debugLog          bool
}

// NewRootCmd creates the voiceterm root command.
func NewRootCmd() *cobra.Command {
	var fv flagValues

	cmd := &cobra.Command{
		Use:           "voiceterm [flags] [-- backend args]",
		Short:         "VoiceTerm — voice overlay for AI coding CLIs",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fv.noColor || envNoColor() {
				termstyle.SetEnabled(false)
			}
			if fv.listInputDevices {
				return runListInputDevices(cmd.OutOrStdout())
			}

			cfg := resolveConfig(cmd, &fv, args)
			if fv.ipcMode {
				return runIPC(cfg)
			}
			return runOverlay(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&fv.backend, "backend", "codex", "Backend CLI to wrap (codex, claude, opencode, or a command line)")
	flags.StringVar(&fv.voiceSendMode, "voice-send-mode", "auto", "Transcript handling: auto sends with Enter, insert leaves it for editing")
	flags.StringVar(&fv.theme, "theme", "coral", "Status-line theme (coral, catppuccin, dracula, nord, ansi, none, or a user theme)")
	flags.BoolVar(&fv.noColor, "no-color", false, "Disable colors in all output")
	flags.StringVar(&fv.promptRegex, "prompt-regex", "", "Regex that detects the backend prompt line (overrides the backend default)")
	flags.StringVar(&fv.promptLog, "prompt-log", "", "File for prompt-detection diagnostics")
	flags.BoolVar(&fv.autoVoice, "auto-voice", false, "Start with auto-voice armed")
	flags.IntVar(&fv.autoVoiceIdleMS, "auto-voice-idle-ms", config.DefaultAutoVoiceIdleMS, "Idle time before auto-voice triggers (ms)")
	flags.IntVar(&fv.transcriptIdleMS, "transcript-idle-ms", config.DefaultTranscriptIdleMS, "Idle time before held transcripts auto-send (ms)")
	flags.Float64Var(&fv.wakeSensitivity, "wake-word-sensitivity", config.DefaultWakeWordSensitivity, "Wake-word detector sensitivity (0..1)")
	flags.IntVar(&fv.wakeCooldownMS, "wake-word-cooldown-ms", config.DefaultWakeWordCooldownMS, "Cooldown between wake-word triggers (ms)")
	flags.BoolVar(&fv.listInputDevices, "list-input-devices", false, "List audio input devices and exit")
	flags.BoolVar(&fv.ipcMode, "ipc", false, "Run the headless JSON-line session instead of the terminal overlay")
	flags.BoolVar(&fv.noMouse, "no-mouse", false, "Disable mouse support in overlays")
	flags.BoolVar(&fv.debugLog, "debug-log", false, "Write a JSONL debug log")

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if fv.noColor || envNoColor() {
			termstyle.SetEnabled(false)
		}
		fmt.Fprint(c.OutOrStdout(), helpText(c))
	})
	return cmd
}

// Execute runs the root command and returns a process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, termstyle.Red("voiceterm: ")+err.Error())
		return 1
	}
	return 0
}

func envNoColor() bool {
	_, set := os.LookupEnv("NO_COLOR")
	return set
}

// resolveConfig folds flags, persisted settings, and defaults into the
// runtime configuration. Explicit flags win over the settings file.
func resolveConfig(cmd *cobra.Command, fv *flagValues, args []string) config.OverlayConfig {
	cfg := config.Default()
	cfg.BackendName = fv.backend
	cfg.BackendArgs = args
	cfg.VoiceSendMode = config.ParseVoiceSendMode(fv.voiceSendMode)
	cfg.ThemeName = fv.theme
	cfg.NoColor = fv.noColor
	cfg.PromptRegex = fv.promptRegex
	cfg.PromptLogPath = fv.promptLog
	cfg.AutoVoice = fv.autoVoice
	cfg.AutoVoiceIdle = time.Duration(fv.autoVoiceIdleMS) * time.Millisecond
	cfg.TranscriptIdle = time.Duration(fv.transcriptIdleMS) * time.Millisecond
	cfg.WakeWordSensitivity = config.ClampWakeWordSensitivity(fv.wakeSensitivity)
	cfg.WakeWordCooldown = config.ClampWakeWordCooldown(time.Duration(fv.wakeCooldownMS) * time.Millisecond)
	cfg.MouseEnabled = !fv.noMouse
	cfg.DebugLog = fv.debugLog

	if settings, err := config.LoadSettings(); err == nil {
		settings.Apply(&cfg,
			cmd.Flags().Changed("theme"),
			cmd.Flags().Changed("auto-voice"),
			cmd.Flags().Changed("voice-send-mode"))
		// Apply overwrites the remaining fields unconditionally; restore the
		// ones given explicitly on the command line.
		flags := cmd.Flags()
		if flags.Changed("wake-word-sensitivity") {
			cfg.WakeWordSensitivity = config.ClampWakeWordSensitivity(fv.wakeSensitivity)
		}
		if flags.Changed("wake-word-cooldown-ms") {
			cfg.WakeWordCooldown = config.ClampWakeWordCooldown(time.Duration(fv.wakeCooldownMS) * time.Millisecond)
		}
		if flags.Changed("no-mouse") {
			cfg.MouseEnabled = !fv.noMouse
		}
	}
	return cfg
}

// runListInputDevices prints the device list. Both outcomes exit 0: an
// empty machine is not an error.
func runListInputDevices(out io.Writer) error {
	devices, err := voice.ListInputDevices()
	if err != nil {
		return fmt.Errorf("list audio input devices: %w", err)
	}
	if len(devices) == 0 {
		fmt.Fprintln(out, "No audio input devices detected.")
		return nil
	}
	fmt.Fprintln(out, termstyle.Bold("Available audio input devices:"))
	for _, name := range devices {
		fmt.Fprintln(out, "  "+name)
	}
	return nil
}
