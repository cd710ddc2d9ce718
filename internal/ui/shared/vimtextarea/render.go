package vimtextarea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/daybook/internal/textbuffer"
	"github.com/zjrosen/daybook/internal/ui/styles"
)

// ANSI codes for cursor and selection
// Cursor uses reverse video (bold highlight), selection uses a dimmer background
const (
	cursorOn  = "\x1b[7m"  // reverse video on (bold, high contrast)
	cursorOff = "\x1b[27m" // reverse video off (not full reset)
	// 48;5;238 = 256-color background (dark gray)
	// 38;5;255 = 256-color foreground (bright white for contrast)
	selectionOn  = "\x1b[48;5;238;38;5;255m"
	selectionOff = "\x1b[49;39m"
)

// Style definitions for the vimtextarea
var (
	placeholderStyle = lipgloss.NewStyle().Foreground(styles.TextPlaceholderColor)
	gutterStyle      = lipgloss.NewStyle().Foreground(styles.LineNumberColor)
)

// View renders the textarea with cursor and selection.
// The mode indicator is not part of the view; clients render ModeIndicator()
// wherever their layout wants it.
func (m Model) View() string {
	if m.IsEmpty() {
		return m.renderEmpty()
	}

	lines := m.buf.Lines()
	cursor := m.buf.Cursor()
	gutter := m.gutterWidth()
	sel := m.selection()

	var displayLines []string
	for row := m.scrollOffset; row < len(lines); row++ {
		segments, starts := m.wrapLineWithInfo(lines[row])
		for i, segment := range segments {
			if m.height > 0 && len(displayLines) >= m.height {
				break
			}
			var prefix string
			if gutter > 0 {
				prefix = m.renderGutter(row, i == 0, gutter)
			}
			segEnd := starts[i] + textbuffer.GraphemeCount(segment)
			isLast := i == len(segments)-1
			cursorCol := -1
			if m.focused && row == cursor.Row && cursor.Col >= starts[i] && (cursor.Col < segEnd || isLast) {
				cursorCol = cursor.Col - starts[i]
			}
			from, to := sel.forRow(row, lines)
			displayLines = append(displayLines, prefix+renderSegment(segment, cursorCol, from-starts[i], to-starts[i]))
		}
		if m.height > 0 && len(displayLines) >= m.height {
			break
		}
	}
	return strings.Join(displayLines, "\n")
}

// renderEmpty renders the view when content is empty.
func (m Model) renderEmpty() string {
	var prefix string
	if g := m.gutterWidth(); g > 0 {
		prefix = m.renderGutter(0, true, g)
	}
	if m.config.Placeholder != "" {
		if m.focused {
			ph := []rune(m.config.Placeholder)
			return prefix + cursorOn + string(ph[0]) + cursorOff + placeholderStyle.Render(string(ph[1:]))
		}
		return prefix + placeholderStyle.Render(m.config.Placeholder)
	}
	if m.focused {
		return prefix + cursorOn + " " + cursorOff
	}
	return prefix
}

// renderSegment draws one display line. cursorCol is the cursor's grapheme
// index within the segment (-1 for none); [selFrom, selTo) is the selected
// range in the same coordinates. The cursor may sit one past the last
// grapheme, where it renders as a block.
func renderSegment(segment string, cursorCol, selFrom, selTo int) string {
	var result strings.Builder
	var selected strings.Builder
	flush := func() {
		if selected.Len() > 0 {
			result.WriteString(selectionOn)
			result.WriteString(selected.String())
			result.WriteString(selectionOff)
			selected.Reset()
		}
	}

	clusters := textbuffer.Graphemes(segment)
	for i, cluster := range clusters {
		switch {
		case i == cursorCol:
			flush()
			result.WriteString(cursorOn)
			result.WriteString(cluster)
			result.WriteString(cursorOff)
		case i >= selFrom && i < selTo:
			selected.WriteString(cluster)
		default:
			flush()
			result.WriteString(cluster)
		}
	}
	flush()

	switch {
	case cursorCol >= len(clusters):
		result.WriteString(cursorOn + " " + cursorOff)
	case len(clusters) == 0 && selTo > selFrom && selFrom <= 0:
		result.WriteString(selectionOn + " " + selectionOff)
	case len(clusters) == 0:
		result.WriteString(" ")
	}
	return result.String()
}

// wrapLineWithInfo wraps a line at the text width and returns the segments
// with the starting grapheme index of each. Graphemes are never split.
func (m Model) wrapLineWithInfo(line string) ([]string, []int) {
	width := m.textWidth()
	if width <= 0 || len(line) == 0 {
		return []string{line}, []int{0}
	}

	var wrapped []string
	var graphemeStarts []int
	var current strings.Builder
	currentWidth := 0
	segmentStart := 0

	for i, cluster := range textbuffer.Graphemes(line) {
		w := textbuffer.DisplayWidth(cluster)
		if currentWidth+w > width && currentWidth > 0 {
			wrapped = append(wrapped, current.String())
			graphemeStarts = append(graphemeStarts, segmentStart)
			current.Reset()
			currentWidth = 0
			segmentStart = i
		}
		current.WriteString(cluster)
		currentWidth += w
	}
	if current.Len() > 0 || len(wrapped) == 0 {
		wrapped = append(wrapped, current.String())
		graphemeStarts = append(graphemeStarts, segmentStart)
	}
	return wrapped, graphemeStarts
}

func (m Model) gutterWidth() int {
	if !m.config.LineNumbers {
		return 0
	}
	return len(fmt.Sprint(len(m.buf.Lines()))) + 1
}

func (m Model) textWidth() int {
	if m.width <= 0 {
		return 0
	}
	return max(m.width-m.gutterWidth(), 1)
}

func (m Model) renderGutter(row int, first bool, width int) string {
	if !first {
		return strings.Repeat(" ", width)
	}
	return gutterStyle.Render(fmt.Sprintf("%*d ", width-1, row+1))
}

// selectionShape is the visual selection in render coordinates.
type selectionShape struct {
	active bool
	kind   VisualKind
	start  Position
	end    Position // inclusive
	colLo  int
	colHi  int // inclusive, block only
}

func (m Model) selection() selectionShape {
	if !m.focused {
		return selectionShape{}
	}
	kind, ok := m.session.Mode().VisualKind()
	anchor, hasAnchor := m.session.VisualAnchor()
	if !ok || !hasAnchor {
		return selectionShape{}
	}
	cursor := m.buf.Cursor()
	start, end := anchor, cursor
	if end.Less(start) {
		start, end = end, start
	}
	return selectionShape{
		active: true,
		kind:   kind,
		start:  start,
		end:    end,
		colLo:  min(anchor.Col, cursor.Col),
		colHi:  max(anchor.Col, cursor.Col),
	}
}

// forRow returns the selected grapheme range [from, to) on row.
func (s selectionShape) forRow(row int, lines []string) (int, int) {
	if !s.active || row < s.start.Row || row > s.end.Row {
		return 0, 0
	}
	n := lineLen(lines, row)
	switch s.kind {
	case VisualLine:
		return 0, max(n, 1)
	case VisualBlock:
		return s.colLo, s.colHi + 1
	default:
		from, to := 0, max(n, 1)
		if row == s.start.Row {
			from = s.start.Col
		}
		if row == s.end.Row {
			to = s.end.Col + 1
		}
		return from, to
	}
}
