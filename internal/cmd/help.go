package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"voiceterm/internal/termstyle"
)

// Help groups. Flags not listed here land in General.
var helpGroups = []struct {
	heading string
	flags   []string
}{
	{"Backend", []string{"backend", "prompt-regex", "prompt-log", "ipc"}},
	{"Voice", []string{"voice-send-mode", "auto-voice", "auto-voice-idle-ms",
		"transcript-idle-ms", "wake-word-sensitivity", "wake-word-cooldown-ms",
		"list-input-devices"}},
	{"Appearance", []string{"theme", "no-color", "no-mouse"}},
	{"General", nil},
}

// helpText renders the themed, grouped help.
func helpText(c *cobra.Command) string {
	var b strings.Builder

	b.WriteString(termstyle.Bold("VoiceTerm") + " — voice overlay for AI coding CLIs\n")
	b.WriteString(termstyle.Dim("Wraps Codex, Claude, or OpenCode in a PTY and injects voice transcripts.") + "\n\n")
	b.WriteString(termstyle.Heading("Usage") + "\n  " + c.UseLine() + "\n\n")

	grouped := map[string]bool{}
	for _, g := range helpGroups {
		for _, name := range g.flags {
			grouped[name] = true
		}
	}

	for _, g := range helpGroups {
		var lines []string
		if g.flags == nil {
			c.Flags().VisitAll(func(f *pflag.Flag) {
				if !grouped[f.Name] {
					lines = append(lines, flagLine(f))
				}
			})
			lines = append(lines, "  "+termstyle.Cyan(fmt.Sprintf("%-28s", "--help"))+" Show this help")
		} else {
			for _, name := range g.flags {
				if f := c.Flags().Lookup(name); f != nil {
					lines = append(lines, flagLine(f))
				}
			}
		}
		if len(lines) == 0 {
			continue
		}
		b.WriteString(termstyle.Heading(g.heading) + "\n")
		for _, line := range lines {
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(termstyle.Dim("Keys inside the overlay: Ctrl+V voice · Ctrl+A auto-voice · Ctrl+E help · Ctrl+Q quit") + "\n")
	return b.String()
}

func flagLine(f *pflag.Flag) string {
	name := "--" + f.Name
	if f.Value.Type() != "bool" {
		name += " " + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
	}
	usage := f.Usage
	if f.DefValue != "" && f.DefValue != "false" {
		usage += termstyle.Dim(" (default " + f.DefValue + ")")
	}
	return "  " + termstyle.Cyan(fmt.Sprintf("%-28s", name)) + " " + usage
}
