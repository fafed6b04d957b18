package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the biomorph banner, shaded from leaf green to bark brown.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, hex string
	}{
		{" _     _                                 _     ", "#4ade80"},
		{"| |__ (_) ___  _ __ ___   ___  _ __ _ __ | |__  ", "#22c55e"},
		{"| '_ \\| |/ _ \\| '_ ` _ \\ / _ \\| '__| '_ \\| '_ \\ ", "#16a34a"},
		{"| |_) | | (_) | | | | | | (_) | |  | |_) | | | |", "#a16207"},
		{"|_.__/|_|\\___/|_| |_| |_|\\___/|_|  | .__/|_| |_|", "#854d0e"},
		{"                                    |_|         ", "#713f12"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.hex)))
	}
	fmt.Fprintln(w)
}
