package ipc

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// SpawnStdinReader parses newline-delimited JSON commands from r on its
// own goroutine. Invalid lines produce a recoverable Error event and the
// loop continues; EOF closes the command channel.
func SpawnStdinReader(r io.Reader, sink Sink) <-chan Command {
	commands := make(chan Command, 16)
	go func() {
		defer close(commands)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			var cmd Command
			if err := json.Unmarshal([]byte(line), &cmd); err != nil {
				sink(newError("Invalid command: "+err.Error(), true))
				continue
			}
			commands <- cmd
		}
	}()
	return commands
}
