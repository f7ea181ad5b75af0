package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
)

// stdinIsTerminal is replaced in tests
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// pauseOnExit keeps a double-clicked console window open until Enter is pressed.
// It does nothing when disabled or when stdin is not interactive.
func pauseOnExit(prompter Prompter, enabled bool) {
	if !enabled || !stdinIsTerminal() {
		return
	}
	_ = prompter.Pause("Press Enter to exit...")
}
