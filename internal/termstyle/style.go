// Package termstyle provides small ANSI styling helpers for CLI output
// (help text, device listings, startup errors). Styling is disabled when
// stdout is not a terminal or when NO_COLOR is set.
package termstyle

import (
	"os"

	"github.com/mattn/go-isatty"
)

func detectEnabled() bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// enabled tracks whether ANSI styling is active.
var enabled = detectEnabled()

// SetEnabled overrides the auto-detected TTY/NO_COLOR check.
func SetEnabled(on bool) {
	enabled = on
}

// Enabled returns whether styling is currently active.
func Enabled() bool {
	return enabled
}

func wrap(code, s string) string {
	if !enabled || s == "" {
		return s
	}
	return code + s + "\033[0m"
}

// Bold renders text in bold.
func Bold(s string) string { return wrap("\033[1m", s) }

// Dim renders text in dim/faint.
func Dim(s string) string { return wrap("\033[2m", s) }

// Red renders text in red.
func Red(s string) string { return wrap("\033[31m", s) }

// Green renders text in green.
func Green(s string) string { return wrap("\033[32m", s) }

// Yellow renders text in yellow.
func Yellow(s string) string { return wrap("\033[33m", s) }

// Cyan renders text in cyan.
func Cyan(s string) string { return wrap("\033[36m", s) }

// Heading renders a help-group heading (bold cyan).
func Heading(s string) string { return wrap("\033[1;36m", s) }
