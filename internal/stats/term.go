package stats

import (
	"os"

	"golang.org/x/term"
)

const (
	minSparkWidth       = 10
	terminalWidthBackup = 80
)

// TerminalWidth returns the current terminal width, or a backup value
// when stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
