package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"voiceterm/internal/backend"
	"voiceterm/internal/config"
	"voiceterm/internal/ipc"
	"voiceterm/internal/logging"
	"voiceterm/internal/voice"
)

// runIPC runs the headless JSON-line session on stdio.
func runIPC(cfg config.OverlayConfig) error {
	logger := logging.New(cfg.DebugLog, logging.LogFilePath())
	defer logger.Close()

	sink := ipc.NewWriterSink(os.Stdout)
	runner := ipc.DefaultRunner(backend.Codex().Command, backend.Claude().Command)

	state := ipc.NewState(sink, logger, runner, runLoginFlow, ipcVoiceStarter(logger))
	state.EmitCapabilities()

	commands := ipc.SpawnStdinReader(os.Stdin, sink)
	ipc.Run(state, commands, 0)
	return nil
}

// runLoginFlow executes the provider CLI's own login command and blocks
// until it finishes.
func runLoginFlow(provider ipc.Provider) error {
	be := backend.Codex()
	if provider == ipc.ProviderClaude {
		be = backend.Claude()
	}
	cmd := exec.Command(be.Command[0], "login")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s auth failed: %w", provider, err)
	}
	return nil
}

func ipcVoiceStarter(logger *logging.Logger) ipc.VoiceStarter {
	if voice.DefaultExternal == nil &&
		!voice.UsingNativePipeline(voice.DefaultTranscriber != nil, voice.DefaultRecorder != nil) {
		return nil
	}
	return func() ipc.VoiceJob {
		return voice.Start(voice.JobConfig{
			Recorder:      voice.DefaultRecorder,
			Transcriber:   voice.DefaultTranscriber,
			External:      voice.DefaultExternal,
			SensitivityDB: config.DefaultSensitivityDB,
			Logger:        logger,
		})
	}
}
