package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseVoiceSendMode(t *testing.T) {
	tests := []struct {
		in   string
		want VoiceSendMode
	}{
		{"auto", SendModeAuto},
		{"insert", SendModeInsert},
		{"", SendModeAuto},
		{"garbage", SendModeAuto},
	}
	for _, tt := range tests {
		if got := ParseVoiceSendMode(tt.in); got != tt.want {
			t.Errorf("ParseVoiceSendMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVoiceSendModeString(t *testing.T) {
	if SendModeAuto.String() != "auto" || SendModeInsert.String() != "insert" {
		t.Errorf("String() = %q / %q", SendModeAuto, SendModeInsert)
	}
}

func TestClampWakeWordCooldown(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{100 * time.Millisecond, 500 * time.Millisecond},
		{2 * time.Second, 2 * time.Second},
		{time.Minute, 10 * time.Second},
	}
	for _, tt := range tests {
		if got := ClampWakeWordCooldown(tt.in); got != tt.want {
			t.Errorf("ClampWakeWordCooldown(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampWakeWordSensitivity(t *testing.T) {
	if got := ClampWakeWordSensitivity(-0.2); got != 0 {
		t.Errorf("clamp(-0.2) = %v", got)
	}
	if got := ClampWakeWordSensitivity(1.7); got != 1 {
		t.Errorf("clamp(1.7) = %v", got)
	}
	if got := ClampWakeWordSensitivity(0.4); got != 0.4 {
		t.Errorf("clamp(0.4) = %v", got)
	}
}

func TestColorDisabledHonorsNoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	cfg := Default()
	if !cfg.ColorDisabled() {
		t.Error("NO_COLOR env should disable color")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Missing file is not an error.
	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings on empty dir: %v", err)
	}
	if s.Theme != "" {
		t.Errorf("empty settings theme = %q", s.Theme)
	}

	mouse := false
	want := Settings{
		Theme:              "dracula",
		AutoVoice:          true,
		SendMode:           "insert",
		SensitivityDB:      -35,
		WakeWordCooldownMS: 120000, // out of range; Apply clamps
		MouseEnabled:       &mouse,
	}
	if err := SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	got, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got.Theme != "dracula" || !got.AutoVoice || got.SendMode != "insert" {
		t.Errorf("round-trip = %+v", got)
	}

	cfg := Default()
	got.Apply(&cfg, false, false, false)
	if cfg.ThemeName != "dracula" {
		t.Errorf("Apply theme = %q", cfg.ThemeName)
	}
	if cfg.VoiceSendMode != SendModeInsert {
		t.Errorf("Apply send mode = %v", cfg.VoiceSendMode)
	}
	if cfg.WakeWordCooldown != 10*time.Second {
		t.Errorf("Apply cooldown = %v, want clamped 10s", cfg.WakeWordCooldown)
	}
	if cfg.MouseEnabled {
		t.Error("Apply should disable mouse")
	}
}

func TestApplyKeepsFlagValues(t *testing.T) {
	cfg := Default()
	cfg.ThemeName = "nord"
	s := Settings{Theme: "dracula", SendMode: "insert"}
	s.Apply(&cfg, true, false, true)
	if cfg.ThemeName != "nord" {
		t.Errorf("flag theme overridden: %q", cfg.ThemeName)
	}
	if cfg.VoiceSendMode != SendModeAuto {
		t.Errorf("flag send mode overridden: %v", cfg.VoiceSendMode)
	}
}

func TestDirUsesXDGConfigHome(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if dir != filepath.Join(base, "voiceterm") {
		t.Errorf("Dir = %q", dir)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("Dir should not create the directory, stat err = %v", err)
	}
}
