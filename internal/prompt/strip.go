// Package prompt decides, from raw PTY output, whether the wrapped CLI is
// currently awaiting user input. It also hosts the dynamic Claude prompt
// detector that guards the HUD against inline interactive prompts.
package prompt

import "regexp"

// ansiRE matches CSI sequences, OSC strings, and stray escape pairs. Prompt
// matching runs on stripped text so cursor addressing and colors never hide
// a prompt line.
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(\x07|\x1b\\)|\x1b[@-_]`)

// StripANSI removes escape sequences from s.
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}
