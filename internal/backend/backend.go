// Package backend defines the AI coding CLIs voiceterm can wrap and the
// per-backend knowledge the prompt tracker needs: how to launch the child
// and what its input prompt looks like.
package backend

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// Backend describes one wrappable CLI. An empty PromptPattern means the
// prompt is learned dynamically (or idle-timed) rather than matched
// statically.
type Backend struct {
	Name            string
	DisplayName     string
	Command         []string
	PromptPattern   string
	ThinkingPattern string
}

func commandWithArgs(exe string, args []string) []string {
	cmd := make([]string, 0, 1+len(args))
	cmd = append(cmd, exe)
	return append(cmd, args...)
}

// Codex returns the Codex CLI backend. Codex redraws its prompt with cursor
// addressing, so readiness is learned dynamically instead of regex-matched.
func Codex(args ...string) Backend {
	return Backend{
		Name:        "codex",
		DisplayName: "Codex",
		Command:     commandWithArgs("codex", args),
	}
}

// Claude returns the Claude Code backend. Like Codex it draws an interactive
// box prompt and has no static prompt pattern; readiness comes from idle
// timing, and the prompt detector only hides the HUD while a box is drawn.
func Claude(args ...string) Backend {
	return Backend{
		Name:            "claude",
		DisplayName:     "Claude",
		Command:         commandWithArgs("claude", args),
		ThinkingPattern: `(?i)(esc to interrupt|thinking)`,
	}
}

// OpenCode returns the OpenCode CLI backend.
func OpenCode(args ...string) Backend {
	return Backend{
		Name:            "opencode",
		DisplayName:     "OpenCode",
		Command:         commandWithArgs("opencode", args),
		PromptPattern:   `(?i)^(opencode>|>\s*)$`,
		ThinkingPattern: `(?i)(thinking|processing|\.\.\.)`,
	}
}

// Custom builds a backend from a full command line (split with shell
// quoting rules), for CLIs voiceterm has no built-in entry for.
func Custom(commandLine string) (Backend, error) {
	argv, err := shlex.Split(commandLine)
	if err != nil {
		return Backend{}, fmt.Errorf("parse backend command: %w", err)
	}
	if len(argv) == 0 {
		return Backend{}, fmt.Errorf("empty backend command")
	}
	return Backend{
		Name:        argv[0],
		DisplayName: argv[0],
		Command:     argv,
	}, nil
}

// Resolve maps a --backend name to a known backend, passing extraArgs to the
// child. Unknown names containing whitespace are treated as custom command
// lines; bare unknown names become custom single-word commands.
func Resolve(name string, extraArgs []string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "codex":
		return Codex(extraArgs...), nil
	case "claude":
		return Claude(extraArgs...), nil
	case "opencode":
		return OpenCode(extraArgs...), nil
	default:
		b, err := Custom(name)
		if err != nil {
			return Backend{}, fmt.Errorf("backend %q: %w", name, err)
		}
		b.Command = append(b.Command, extraArgs...)
		return b, nil
	}
}
