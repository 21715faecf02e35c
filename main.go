package main

import (
	"os"

	"voiceterm/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
