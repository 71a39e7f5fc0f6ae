package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	" _        _     _                ",
	"| |_ __ _| |__ | | ___  __ _ _   _ ",
	"| __/ _` | '_ \\| |/ _ \\/ _` | | | |",
	"| || (_| | |_) | |  __/ (_| | |_| |",
	" \\__\\__,_|_.__/|_|\\___|\\__,_|\\__,_|",
}

var bannerColors = []string{"#fbbf24", "#f59e0b", "#f97316", "#ef4444", "#e11d48"}

// PrintBanner writes the tableau banner to w, coloured when the terminal
// supports it.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w)
}
