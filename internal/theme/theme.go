// Package theme defines the HUD color themes: semantic ANSI color tokens,
// border glyph sets, built-in palettes, and user themes loaded from TOML
// files in the config directory.
package theme

import (
	"fmt"

	"github.com/muesli/termenv"
)

// BorderSet is the glyph family used to frame the HUD and overlays.
type BorderSet struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	TLeft       rune
	TRight      rune
}

// RoundedBorders is the default border family.
var RoundedBorders = BorderSet{
	Horizontal: '─', Vertical: '│',
	TopLeft: '╭', TopRight: '╮',
	BottomLeft: '╰', BottomRight: '╯',
	TLeft: '├', TRight: '┤',
}

// AsciiBorders renders frames with plain ASCII for dumb terminals.
var AsciiBorders = BorderSet{
	Horizontal: '-', Vertical: '|',
	TopLeft: '+', TopRight: '+',
	BottomLeft: '+', BottomRight: '+',
	TLeft: '+', TRight: '+',
}

// Theme holds the escape sequences rendering code uses. A zero-value color
// is "no styling"; ThemeNone leaves every color empty.
type Theme struct {
	Name string

	Recording  string
	Processing string
	Success    string
	Warning    string
	Error      string
	Info       string
	Dim        string
	Border     string
	Reset      string

	Borders BorderSet

	IndicatorRec    string
	IndicatorAuto   string
	IndicatorManual string
	IndicatorIdle   string
}

// Colorless reports whether this theme emits no escape sequences.
func (t Theme) Colorless() bool {
	return t.Reset == ""
}

func ansi(code string) string { return "\x1b[" + code + "m" }

func rgb(hex string) string {
	c := termenv.TrueColor.Color(hex)
	if c == nil {
		return ""
	}
	return fmt.Sprintf("\x1b[%sm", c.Sequence(false))
}

// None is the colorless theme used for --no-color and dumb terminals.
func None() Theme {
	return Theme{Name: "none", Borders: AsciiBorders, IndicatorRec: "*",
		IndicatorAuto: "A", IndicatorManual: "M", IndicatorIdle: "-"}
}

func coral() Theme {
	return Theme{
		Name:       "coral",
		Recording:  rgb("#ff6f61"),
		Processing: rgb("#f4a261"),
		Success:    rgb("#2a9d8f"),
		Warning:    rgb("#e9c46a"),
		Error:      rgb("#e76f51"),
		Info:       rgb("#8ab4f8"),
		Dim:        ansi("2"),
		Border:     rgb("#ff8a75"),
		Reset:      ansi("0"),
		Borders:    RoundedBorders,

		IndicatorRec:    "●",
		IndicatorAuto:   "◉",
		IndicatorManual: "◎",
		IndicatorIdle:   "○",
	}
}

func dracula() Theme {
	t := coral()
	t.Name = "dracula"
	t.Recording = rgb("#ff5555")
	t.Processing = rgb("#ffb86c")
	t.Success = rgb("#50fa7b")
	t.Warning = rgb("#f1fa8c")
	t.Error = rgb("#ff5555")
	t.Info = rgb("#8be9fd")
	t.Border = rgb("#bd93f9")
	return t
}

func nord() Theme {
	t := coral()
	t.Name = "nord"
	t.Recording = rgb("#bf616a")
	t.Processing = rgb("#d08770")
	t.Success = rgb("#a3be8c")
	t.Warning = rgb("#ebcb8b")
	t.Error = rgb("#bf616a")
	t.Info = rgb("#88c0d0")
	t.Border = rgb("#81a1c1")
	return t
}

func catppuccin() Theme {
	t := coral()
	t.Name = "catppuccin"
	t.Recording = rgb("#f38ba8")
	t.Processing = rgb("#fab387")
	t.Success = rgb("#a6e3a1")
	t.Warning = rgb("#f9e2af")
	t.Error = rgb("#f38ba8")
	t.Info = rgb("#89b4fa")
	t.Border = rgb("#cba6f7")
	return t
}

// ansiTheme uses only the 16-color palette, for terminals without
// truecolor support.
func ansiTheme() Theme {
	return Theme{
		Name:       "ansi",
		Recording:  ansi("31"),
		Processing: ansi("33"),
		Success:    ansi("32"),
		Warning:    ansi("33"),
		Error:      ansi("31"),
		Info:       ansi("36"),
		Dim:        ansi("2"),
		Border:     ansi("34"),
		Reset:      ansi("0"),
		Borders:    RoundedBorders,

		IndicatorRec:    "●",
		IndicatorAuto:   "◉",
		IndicatorManual: "◎",
		IndicatorIdle:   "○",
	}
}

// BuiltinNames lists built-in themes in picker order.
func BuiltinNames() []string {
	return []string{"coral", "catppuccin", "dracula", "nord", "ansi", "none"}
}

// FromName returns a built-in theme by name.
func FromName(name string) (Theme, bool) {
	switch name {
	case "coral":
		return coral(), true
	case "catppuccin":
		return catppuccin(), true
	case "dracula":
		return dracula(), true
	case "nord":
		return nord(), true
	case "ansi":
		return ansiTheme(), true
	case "none":
		return None(), true
	}
	return Theme{}, false
}

// Resolve picks the theme for a requested name, degrading for the terminal's
// color support: no color support (or noColor) yields None, non-truecolor
// terminals fall back to the ansi palette.
func Resolve(name string, noColor bool) Theme {
	if noColor {
		return None()
	}
	profile := termenv.EnvColorProfile()
	if profile == termenv.Ascii {
		return None()
	}

	t, ok := FromName(name)
	if !ok {
		if user, err := LoadUserTheme(name); err == nil {
			t = user
		} else {
			t = coral()
		}
	}
	if profile != termenv.TrueColor && t.Name != "ansi" && t.Name != "none" {
		return ansiTheme()
	}
	return t
}
