package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders bot turns as markdown using
// glamour, wrapped to the given width.
func NewRenderer(width int) func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // detect light/dark background
		glamour.WithWordWrap(width),
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
