package vimtextarea

import "github.com/zjrosen/daybook/internal/textbuffer"

// charClass groups graphemes for word motions.
type charClass int

const (
	classSpace = charClass(textbuffer.ClassSpace)
	classWord  = charClass(textbuffer.ClassWord)
	classPunct = charClass(textbuffer.ClassPunct)
	// classEmptyLine marks an empty line. It counts as whitespace for skipping
	// purposes except that w and b stop on it.
	classEmptyLine = classPunct + 1
)

func graphemeClass(cluster string) charClass {
	return charClass(textbuffer.ClassOf(cluster))
}

// isBlank reports whether a cluster is whitespace.
func isBlank(cluster string) bool {
	return graphemeClass(cluster) == classSpace
}

// firstNonBlank returns the column of the first non-whitespace grapheme in
// line. A blank line yields its last column.
func firstNonBlank(line string) int {
	if col, ok := indentEnd(line); ok {
		return col
	}
	return max(textbuffer.GraphemeCount(line)-1, 0)
}

// indentEnd returns the column of the first non-whitespace grapheme, and
// false when the line is blank.
func indentEnd(line string) (int, bool) {
	for i, c := range textbuffer.Graphemes(line) {
		if !isBlank(c) {
			return i, true
		}
	}
	return 0, false
}

// cellWalker steps through the buffer as a flat stream of cells. Every
// grapheme is a cell, every line break after a non-empty line is a whitespace
// cell at column len(line), and an empty line is a single cell at column 0.
type cellWalker struct {
	lines    []string
	bigWord  bool
	clusters map[int][]string
}

func newCellWalker(lines []string, bigWord bool) *cellWalker {
	return &cellWalker{lines: lines, bigWord: bigWord, clusters: make(map[int][]string)}
}

func (w *cellWalker) row(r int) []string {
	if c, ok := w.clusters[r]; ok {
		return c
	}
	c := textbuffer.Graphemes(w.lines[r])
	w.clusters[r] = c
	return c
}

func (w *cellWalker) class(p Position) charClass {
	clusters := w.row(p.Row)
	if len(clusters) == 0 {
		return classEmptyLine
	}
	if p.Col >= len(clusters) {
		return classSpace
	}
	cls := graphemeClass(clusters[p.Col])
	if w.bigWord && cls == classPunct {
		return classWord
	}
	return cls
}

func (w *cellWalker) next(p Position) (Position, bool) {
	last := len(w.lines) - 1
	n := len(w.row(p.Row))
	switch {
	case n == 0 || p.Col >= n:
		if p.Row < last {
			return Position{Row: p.Row + 1}, true
		}
	case p.Col < n-1:
		return Position{Row: p.Row, Col: p.Col + 1}, true
	case p.Row < last:
		return Position{Row: p.Row, Col: n}, true
	}
	return p, false
}

func (w *cellWalker) prev(p Position) (Position, bool) {
	if p.Col > 0 {
		return Position{Row: p.Row, Col: min(p.Col-1, max(len(w.row(p.Row))-1, 0))}, true
	}
	if p.Row == 0 {
		return p, false
	}
	return Position{Row: p.Row - 1, Col: len(w.row(p.Row - 1))}, true
}

func (w *cellWalker) lastChar() Position {
	last := len(w.lines) - 1
	return Position{Row: last, Col: lastCol(w.lines, last)}
}

func isGap(c charClass) bool {
	return c == classSpace || c == classEmptyLine
}
