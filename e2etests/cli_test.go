package e2etests

import (
	"strings"
	"testing"
)

func TestListInputDevicesWithFakes(t *testing.T) {
	result := runVT(t, "", []string{"VOICETERM_TEST_DEVICES=Mic A,Mic B"}, "--list-input-devices")
	if result.ExitCode != 0 {
		t.Fatalf("exit=%d stderr=%s", result.ExitCode, result.Stderr)
	}
	for _, want := range []string{"Available audio input devices:", "Mic A", "Mic B"} {
		if !strings.Contains(result.Stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, result.Stdout)
		}
	}
}

func TestListInputDevicesEmpty(t *testing.T) {
	result := runVT(t, "", []string{"VOICETERM_TEST_DEVICES="}, "--list-input-devices")
	if result.ExitCode != 0 {
		t.Fatalf("exit=%d stderr=%s", result.ExitCode, result.Stderr)
	}
	if !strings.Contains(result.Stdout, "No audio input devices detected.") {
		t.Errorf("stdout = %q", result.Stdout)
	}
}

func TestHelpMentionsProductAndGroups(t *testing.T) {
	result := runVT(t, "", nil, "--help")
	if result.ExitCode != 0 {
		t.Fatalf("exit=%d stderr=%s", result.ExitCode, result.Stderr)
	}
	combined := result.Stdout + result.Stderr
	for _, want := range []string{"VoiceTerm", "Backend", "Voice", "--backend", "--voice-send-mode"} {
		if !strings.Contains(combined, want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestHelpNoColorStripsAnsi(t *testing.T) {
	result := runVT(t, "", nil, "--help", "--no-color")
	if result.ExitCode != 0 {
		t.Fatalf("exit=%d stderr=%s", result.ExitCode, result.Stderr)
	}
	combined := result.Stdout + result.Stderr
	if strings.Contains(combined, "\x1b[") {
		t.Error("--no-color output contains ANSI escape sequences")
	}
}

func TestNoColorEnvStripsAnsi(t *testing.T) {
	result := runVT(t, "", []string{"NO_COLOR=1"}, "--help")
	if result.ExitCode != 0 {
		t.Fatalf("exit=%d stderr=%s", result.ExitCode, result.Stderr)
	}
	if strings.Contains(result.Stdout+result.Stderr, "\x1b[") {
		t.Error("NO_COLOR output contains ANSI escape sequences")
	}
}
