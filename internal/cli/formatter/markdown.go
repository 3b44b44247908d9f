package formatter

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders comment bodies. Plain output uses the notty style so
// captured output carries no escape codes.
type Markdown struct {
	renderer *glamour.TermRenderer
}

// NewMarkdown builds a renderer wrapping at width. style is a glamour
// standard style name such as "dark", "light" or "notty".
func NewMarkdown(style string, width int) (*Markdown, error) {
	if style == "" {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Markdown{renderer: r}, nil
}

// Render returns the rendered text, or the source itself if rendering fails.
func (m *Markdown) Render(src string) string {
	if m == nil || m.renderer == nil {
		return src
	}
	out, err := m.renderer.Render(src)
	if err != nil {
		return src
	}
	return strings.Trim(out, "\n")
}
