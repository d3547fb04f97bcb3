package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Render writes markdown to w. When w is an interactive terminal the
// markdown is styled with glamour; otherwise it is written verbatim so
// the output stays pipe-friendly.
func Render(w io.Writer, markdown string) error {
	if isTerminal(w) {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(), // Automatically detect light/dark background
		)
		if err == nil {
			if styled, rerr := r.Render(markdown); rerr == nil {
				_, werr := io.WriteString(w, styled)
				return werr
			}
		}
	}

	_, err := io.WriteString(w, markdown)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
