package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// Pane describes a bordered panel with text embedded in its top and bottom
// edges: ╭─ Title ────╮ ... ╰─ Footer ───╯
type Pane struct {
	Title   string
	Footer  string // may carry its own styling, e.g. a mode indicator
	Width   int
	Height  int
	Focused bool
}

// Render draws content inside the pane. Content is clipped to the inner area
// and padded so the right border aligns.
func (p Pane) Render(content string) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if p.Focused {
		borderColor = BorderHighlightFocusColor
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(TextSecondaryColor)
	if p.Focused {
		titleStyle = titleStyle.Bold(true)
	}

	innerWidth := max(p.Width-2, 1)
	contentHeight := max(p.Height-2, 1)

	top := edge(borderTopLeft, borderTopRight, titleStyle.Render(TruncateString(p.Title, innerWidth-4)), p.Title != "", innerWidth, borderStyle)
	bottom := edge(borderBottomLeft, borderBottomRight, p.Footer, p.Footer != "", innerWidth, borderStyle)

	contentLines := strings.Split(content, "\n")
	rows := make([]string, contentHeight)
	for i := range contentHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		if lipgloss.Width(line) > innerWidth {
			line = lipgloss.NewStyle().MaxWidth(innerWidth).Render(line)
		}
		rows[i] = borderStyle.Render(borderVertical) + PadRight(line, innerWidth) + borderStyle.Render(borderVertical)
	}

	var result strings.Builder
	result.WriteString(top)
	result.WriteString("\n")
	result.WriteString(strings.Join(rows, "\n"))
	result.WriteString("\n")
	result.WriteString(bottom)
	return result.String()
}

// edge builds a horizontal border with optional embedded text. Text that does
// not fit is dropped rather than wrapped.
func edge(left, right, text string, hasText bool, innerWidth int, borderStyle lipgloss.Style) string {
	textWidth := lipgloss.Width(text)
	if !hasText || innerWidth < textWidth+4 {
		return borderStyle.Render(left + strings.Repeat(borderHorizontal, innerWidth) + right)
	}
	remaining := innerWidth - 3 - textWidth
	return borderStyle.Render(left+borderHorizontal+" ") +
		text +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, remaining)+right)
}
