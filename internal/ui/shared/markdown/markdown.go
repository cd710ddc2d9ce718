// Package markdown renders journal entry bodies for the timeline.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// noMarginStyle removes document margins so entries sit flush under their heading.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Styles accepted by New besides a path to a glamour JSON style.
var Styles = []string{"dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night"}

// Renderer wraps glamour with a fixed word wrap width and style.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// New creates a markdown renderer. An empty style means "dark".
// Use a fixed style rather than glamour.WithAutoStyle, which queries the
// terminal and leaks the OSC response into the input stream.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}
	if width < 1 {
		width = 1
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer (style %q): %w", style, err)
	}
	return &Renderer{renderer: r, width: width, style: style}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Style returns the glamour style name or path.
func (r *Renderer) Style() string {
	return r.style
}

// Render transforms markdown to styled terminal output with surrounding
// blank lines trimmed.
func (r *Renderer) Render(markdown string) (string, error) {
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}
