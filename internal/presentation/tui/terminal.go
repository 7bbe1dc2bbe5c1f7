package tui

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of f, or 80 when it cannot be determined.
func Width(f *os.File) int {
	if f == nil {
		return 80
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// Profile picks the color profile for f. Colors are disabled when noColor is
// set or f is not a terminal.
func Profile(f *os.File, noColor bool) termenv.Profile {
	if noColor || !IsTerminal(f) {
		return termenv.Ascii
	}
	return termenv.NewOutput(f).Profile
}
