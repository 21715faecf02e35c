package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const settingsFile = "settings.yaml"

// Settings are the user preferences that survive restarts. Zero values mean
// "not set" so flag defaults win over an absent file.
type Settings struct {
	Theme               string  `yaml:"theme,omitempty"`
	AutoVoice           bool    `yaml:"auto_voice,omitempty"`
	SendMode            string  `yaml:"send_mode,omitempty"`
	SensitivityDB       float64 `yaml:"sensitivity_db,omitempty"`
	WakeWordSensitivity float64 `yaml:"wake_word_sensitivity,omitempty"`
	WakeWordCooldownMS  int     `yaml:"wake_word_cooldown_ms,omitempty"`
	MouseEnabled        *bool   `yaml:"mouse_enabled,omitempty"`
}

// LoadSettings reads the persisted settings file. A missing file returns
// empty settings and no error.
func LoadSettings() (Settings, error) {
	dir, err := Dir()
	if err != nil {
		return Settings{}, err
	}
	data, err := os.ReadFile(filepath.Join(dir, settingsFile))
	if os.IsNotExist(err) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", settingsFile, err)
	}
	return s, nil
}

// SaveSettings writes the settings file, creating the config directory on
// demand.
func SaveSettings(s Settings) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, settingsFile), data, 0o644)
}

// Apply overlays persisted settings onto a resolved config. Theme, auto-voice
// and send mode are filled in only when their flag was not set on the command
// line; every other field present in the file overwrites cfg, so the caller
// restores any of those flags the user set explicitly.
func (s Settings) Apply(cfg *OverlayConfig, themeFlagSet, autoVoiceFlagSet, sendModeFlagSet bool) {
	if s.Theme != "" && !themeFlagSet {
		cfg.ThemeName = s.Theme
	}
	if s.AutoVoice && !autoVoiceFlagSet {
		cfg.AutoVoice = true
	}
	if s.SendMode != "" && !sendModeFlagSet {
		cfg.VoiceSendMode = ParseVoiceSendMode(s.SendMode)
	}
	if s.SensitivityDB != 0 {
		cfg.SensitivityDB = s.SensitivityDB
	}
	if s.WakeWordSensitivity != 0 {
		cfg.WakeWordSensitivity = ClampWakeWordSensitivity(s.WakeWordSensitivity)
	}
	if s.WakeWordCooldownMS != 0 {
		cfg.WakeWordCooldown = ClampWakeWordCooldown(msToDuration(s.WakeWordCooldownMS))
	}
	if s.MouseEnabled != nil {
		cfg.MouseEnabled = *s.MouseEnabled
	}
}

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
