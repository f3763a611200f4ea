package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer builds the markdown styler used by inspect. The style follows
// the terminal background unless opts override it. When glamour cannot
// set up a style, project summaries are printed as raw markdown.
func NewRenderer(opts ...glamour.TermRendererOption) func(string) (string, error) {
	styler, err := glamour.NewTermRenderer(append([]glamour.TermRendererOption{glamour.WithAutoStyle()}, opts...)...)
	if err != nil {
		return plain
	}
	return styler.Render
}

func plain(md string) (string, error) {
	return md, nil
}
