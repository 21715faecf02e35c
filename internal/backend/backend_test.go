package backend

import (
	"reflect"
	"regexp"
	"testing"
)

func TestCodexBackend(t *testing.T) {
	b := Codex()
	if b.Name != "codex" || b.DisplayName != "Codex" {
		t.Errorf("codex identity = %q / %q", b.Name, b.DisplayName)
	}
	if !reflect.DeepEqual(b.Command, []string{"codex"}) {
		t.Errorf("codex command = %v", b.Command)
	}
	if b.PromptPattern != "" {
		t.Errorf("codex prompt pattern should be empty (dynamic), got %q", b.PromptPattern)
	}
	if b.ThinkingPattern != "" {
		t.Errorf("codex thinking pattern should be empty, got %q", b.ThinkingPattern)
	}
}

func TestCodexWithArgs(t *testing.T) {
	b := Codex("--foo")
	if !reflect.DeepEqual(b.Command, []string{"codex", "--foo"}) {
		t.Errorf("command = %v", b.Command)
	}
}

func TestOpenCodeBackend(t *testing.T) {
	b := OpenCode()
	if b.Name != "opencode" || b.DisplayName != "OpenCode" {
		t.Errorf("opencode identity = %q / %q", b.Name, b.DisplayName)
	}
	re := regexp.MustCompile(b.PromptPattern)
	for _, line := range []string{"opencode>", "> ", ">"} {
		if !re.MatchString(line) {
			t.Errorf("prompt pattern should match %q", line)
		}
	}
	if re.MatchString("not a prompt") {
		t.Error("prompt pattern matched arbitrary text")
	}
	if b.ThinkingPattern == "" {
		t.Error("opencode should carry a thinking pattern")
	}
}

func TestResolveKnownAndCustom(t *testing.T) {
	b, err := Resolve("opencode", []string{"--verbose"})
	if err != nil {
		t.Fatalf("Resolve(opencode): %v", err)
	}
	if !reflect.DeepEqual(b.Command, []string{"opencode", "--verbose"}) {
		t.Errorf("command = %v", b.Command)
	}

	b, err = Resolve("aider --model gpt", nil)
	if err != nil {
		t.Fatalf("Resolve(custom): %v", err)
	}
	if !reflect.DeepEqual(b.Command, []string{"aider", "--model", "gpt"}) {
		t.Errorf("custom command = %v", b.Command)
	}

	if _, err := Resolve(`broken "quote`, nil); err == nil {
		t.Error("Resolve with unbalanced quote should fail")
	}
}

func TestResolveDefaultsToCodex(t *testing.T) {
	b, err := Resolve("", nil)
	if err != nil {
		t.Fatalf("Resolve(\"\"): %v", err)
	}
	if b.Name != "codex" {
		t.Errorf("default backend = %q, want codex", b.Name)
	}
}
