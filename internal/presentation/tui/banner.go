package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Arbor ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Greens from canopy to trunk
	lines := []struct {
		text  string
		color string
	}{
		{"     _         _               ", "#86efac"},
		{"    / \\   _ __| |__   ___  _ __ ", "#4ade80"},
		{"   / _ \\ | '__| '_ \\ / _ \\| '__|", "#22c55e"},
		{"  / ___ \\| |  | |_) | (_) | |   ", "#16a34a"},
		{" /_/   \\_\\_|  |_.__/ \\___/|_|   ", "#a16207"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
