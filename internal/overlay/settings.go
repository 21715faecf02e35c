package overlay

import (
	"fmt"

	"voiceterm/internal/config"
	"voiceterm/internal/hud"
	"voiceterm/internal/theme"
)

// SettingsItem identifies one row of the settings overlay.
type SettingsItem int

const (
	ItemAutoVoice SettingsItem = iota
	ItemWakeWord
	ItemWakeSensitivity
	ItemWakeCooldown
	ItemSendMode
	ItemSensitivity
	ItemTheme
	ItemMouse
	ItemBackend
	ItemPipeline
	ItemClose
	ItemQuit
)

// SettingsItems is the menu order. Rendering and dispatch both walk this
// slice so they cannot drift apart.
var SettingsItems = []SettingsItem{
	ItemAutoVoice,
	ItemWakeWord,
	ItemWakeSensitivity,
	ItemWakeCooldown,
	ItemSendMode,
	ItemSensitivity,
	ItemTheme,
	ItemMouse,
	ItemBackend,
	ItemPipeline,
	ItemClose,
	ItemQuit,
}

// SettingsView is the snapshot of kernel state the settings overlay
// renders from.
type SettingsView struct {
	Selected            int
	AutoVoiceEnabled    bool
	WakeWordEnabled     bool
	WakeWordSensitivity float64
	WakeWordCooldownMS  int64
	SendMode            config.VoiceSendMode
	SensitivityDB       float64
	ThemeName           string
	MouseEnabled        bool
	BackendLabel        string
	Pipeline            hud.Pipeline
}

// SettingsState is the overlay's retained selection.
type SettingsState struct {
	Selected int
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func settingsRow(item SettingsItem, v SettingsView) string {
	switch item {
	case ItemAutoVoice:
		return "Auto voice        " + onOff(v.AutoVoiceEnabled)
	case ItemWakeWord:
		return "Wake word         " + onOff(v.WakeWordEnabled)
	case ItemWakeSensitivity:
		return fmt.Sprintf("Wake sensitivity  %.2f", v.WakeWordSensitivity)
	case ItemWakeCooldown:
		return fmt.Sprintf("Wake cooldown     %dms", v.WakeWordCooldownMS)
	case ItemSendMode:
		return "Send mode         " + v.SendMode.String()
	case ItemSensitivity:
		return fmt.Sprintf("Mic sensitivity   %.0fdB", v.SensitivityDB)
	case ItemTheme:
		return "Theme             " + v.ThemeName
	case ItemMouse:
		return "Mouse             " + onOff(v.MouseEnabled)
	case ItemBackend:
		return "Backend           " + v.BackendLabel
	case ItemPipeline:
		return "Pipeline          " + v.Pipeline.Label()
	case ItemClose:
		return "Close"
	case ItemQuit:
		return "Quit voiceterm"
	}
	return ""
}

// RenderSettings builds the settings overlay frame.
func RenderSettings(v SettingsView, th theme.Theme, termCols int) Frame {
	items := make([]string, len(SettingsItems))
	for i, item := range SettingsItems {
		items[i] = settingsRow(item, v)
	}
	return buildList(th, "Settings", items, v.Selected,
		"↑/↓ select · Enter toggle · Esc close", termCols)
}
