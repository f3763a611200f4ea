package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the logicx ASCII art banner followed by version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Green-to-teal ramp, one shade per line
	lines := []struct {
		text  string
		color string
	}{
		{`  _             _`, "#4ade80"},
		{` | | ___   __ _(_) _____  __`, "#34d399"},
		{` | |/ _ \ / _' | |/ __\ \/ /`, "#2dd4bf"},
		{` | | (_) | (_| | | (__ >  <`, "#22d3ee"},
		{` |_|\___/ \__, |_|\___/_/\_\`, "#38bdf8"},
		{`          |___/`, "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("  "+version).Faint())
	}
	fmt.Fprintln(w)
}
