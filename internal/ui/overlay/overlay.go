// Package overlay draws a box on top of an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position is where the box sits within the view.
type Position int

const (
	// Center places the box in the middle of the view.
	Center Position = iota
	// Bottom places the box above the bottom edge, offset by Margin rows.
	Bottom
)

// Config sizes the view the box is drawn over.
type Config struct {
	Width    int
	Height   int
	Position Position
	Margin   int
}

// Place splices fg into bg. Both may carry ANSI styling; cells of bg that
// fg does not cover keep their styling.
func Place(cfg Config, fg, bg string) string {
	rows := strings.Split(bg, "\n")
	for len(rows) < cfg.Height {
		rows = append(rows, strings.Repeat(" ", cfg.Width))
	}

	box := strings.Split(fg, "\n")
	x, y := origin(cfg, lipgloss.Width(fg), len(box))
	for i, line := range box {
		if y+i >= len(rows) {
			break
		}
		rows[y+i] = splice(rows[y+i], line, x)
	}
	return strings.Join(rows, "\n")
}

// splice replaces the cells of row starting at column x with line.
func splice(row, line string, x int) string {
	left := ansi.Truncate(row, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(line)
	var right string
	if end < ansi.StringWidth(row) {
		right = ansi.TruncateLeft(row, end, "")
	}
	return left + line + right
}

func origin(cfg Config, w, h int) (x, y int) {
	x = (cfg.Width - w) / 2
	switch cfg.Position {
	case Bottom:
		y = cfg.Height - h - cfg.Margin
	default:
		y = (cfg.Height - h) / 2
	}
	return max(x, 0), max(y, 0)
}
