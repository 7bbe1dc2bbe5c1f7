package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text, color string
}{
	{`  _____     _    __        ___                  _ `, "#38bdf8"},
	{` |_   _| __(_)_ _\ \      / (_)______ _ _ __ __| |`, "#60a5fa"},
	{`   | || '__| | '_ \ \ /\ / /| |_  / _' | '__/ _' |`, "#818cf8"},
	{`   | || |  | | |_) \ V  V / | |/ / (_| | | | (_| |`, "#a78bfa"},
	{`   |_||_|  |_| .__/ \_/\_/  |_/___\__,_|_|  \__,_|`, "#c084fc"},
	{`             |_|                                  `, "#e879f9"},
}

// PrintBanner writes the TripWizard banner using the given color profile.
// termenv.Ascii produces plain text.
func PrintBanner(w io.Writer, p termenv.Profile) {
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
