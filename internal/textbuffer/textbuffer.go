// Package textbuffer provides the line-oriented text buffer used by the composer.
//
// The buffer owns the lines, the cursor and a selection anchor, and exposes raw
// mutation primitives. It knows nothing about editing modes; the vim engine in
// vimtextarea drives it through these primitives.
//
// All columns are grapheme indices, not byte offsets. A cursor may sit at
// len(line) (one past the last grapheme), which is where insertion appends.
package textbuffer

import "strings"

// Position is a (row, col) location in grapheme units.
type Position struct {
	Row int // Line number (0-indexed)
	Col int // Column as grapheme index (0-indexed)
}

// Compare orders positions lexicographically by (Row, Col).
// Returns -1, 0 or 1.
func (p Position) Compare(o Position) int {
	switch {
	case p.Row < o.Row:
		return -1
	case p.Row > o.Row:
		return 1
	case p.Col < o.Col:
		return -1
	case p.Col > o.Col:
		return 1
	default:
		return 0
	}
}

// Less reports whether p sorts before o.
func (p Position) Less(o Position) bool {
	return p.Compare(o) < 0
}

// TextBuffer is an in-memory multi-line buffer with a cursor.
type TextBuffer struct {
	lines  []string
	row    int
	col    int
	anchor *Position // selection anchor, nil when no selection is active
	yank   string    // buffer-local clipboard filled by Cut and DeleteStr
}

// New creates a buffer from the given lines. No lines means a single empty line.
func New(lines ...string) *TextBuffer {
	if len(lines) == 0 {
		lines = []string{""}
	}
	b := &TextBuffer{lines: append([]string(nil), lines...)}
	return b
}

// FromString creates a buffer by splitting s on newlines.
func FromString(s string) *TextBuffer {
	return New(strings.Split(s, "\n")...)
}

// Lines returns the buffer lines. Callers must not modify the returned slice.
func (b *TextBuffer) Lines() []string {
	return b.lines
}

// Line returns the line at row, or "" when row is out of range.
func (b *TextBuffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row]
}

// Value returns the full content joined with newlines.
func (b *TextBuffer) Value() string {
	return strings.Join(b.lines, "\n")
}

// Cursor returns the cursor position.
func (b *TextBuffer) Cursor() Position {
	return Position{Row: b.row, Col: b.col}
}

// MoveCursor jumps to pos, clamped to the buffer. The column may equal the
// line length.
func (b *TextBuffer) MoveCursor(pos Position) {
	pos = b.clamp(pos)
	b.row, b.col = pos.Row, pos.Col
}

func (b *TextBuffer) clamp(pos Position) Position {
	pos.Row = max(min(pos.Row, len(b.lines)-1), 0)
	pos.Col = max(min(pos.Col, GraphemeCount(b.lines[pos.Row])), 0)
	return pos
}

// InsertStr inserts text at the cursor. Embedded newlines split lines.
// The cursor ends up after the inserted text.
func (b *TextBuffer) InsertStr(text string) bool {
	if text == "" {
		return false
	}
	parts := strings.Split(text, "\n")
	line := b.lines[b.row]
	head := SliceByGraphemes(line, 0, b.col)
	tail := line[GraphemeToByteOffset(line, b.col):]

	if len(parts) == 1 {
		b.lines[b.row] = head + parts[0] + tail
		b.col += GraphemeCount(parts[0])
		return true
	}

	inserted := make([]string, 0, len(parts))
	inserted = append(inserted, head+parts[0])
	inserted = append(inserted, parts[1:len(parts)-1]...)
	last := parts[len(parts)-1]
	inserted = append(inserted, last+tail)

	newLines := make([]string, 0, len(b.lines)+len(parts)-1)
	newLines = append(newLines, b.lines[:b.row]...)
	newLines = append(newLines, inserted...)
	newLines = append(newLines, b.lines[b.row+1:]...)
	b.lines = newLines

	b.row += len(parts) - 1
	b.col = GraphemeCount(last)
	return true
}

// InsertChar inserts a single rune at the cursor.
func (b *TextBuffer) InsertChar(r rune) {
	if r == '\n' {
		b.InsertNewline()
		return
	}
	b.InsertStr(string(r))
}

// InsertNewline splits the current line at the cursor.
func (b *TextBuffer) InsertNewline() {
	b.InsertStr("\n")
}

// DeleteStr deletes n graphemes forward from the cursor. A line break counts
// as one character. The removed text becomes the buffer's yank text.
// Returns whether anything was deleted.
func (b *TextBuffer) DeleteStr(n int) bool {
	if n <= 0 {
		return false
	}
	start := b.Cursor()
	end := start
	for range n {
		next, ok := b.advance(end)
		if !ok {
			break
		}
		end = next
	}
	if end == start {
		return false
	}
	b.yank = b.Text(start, end)
	b.remove(start, end)
	return true
}

// DeleteNextChar deletes the grapheme under the cursor, or joins the next line
// when the cursor is at the end of a line.
func (b *TextBuffer) DeleteNextChar() bool {
	start := b.Cursor()
	end, ok := b.advance(start)
	if !ok {
		return false
	}
	b.remove(start, end)
	return true
}

// DeletePrevChar deletes the grapheme before the cursor, joining with the
// previous line at column 0.
func (b *TextBuffer) DeletePrevChar() bool {
	end := b.Cursor()
	start, ok := b.retreat(end)
	if !ok {
		return false
	}
	b.remove(start, end)
	return true
}

// DeleteWord deletes backward from the cursor to the previous word boundary.
// At column 0 it joins with the previous line.
func (b *TextBuffer) DeleteWord() bool {
	if b.col == 0 {
		return b.DeletePrevChar()
	}
	clusters := Graphemes(b.lines[b.row])
	i := b.col
	for i > 0 && ClassOf(clusters[i-1]) == ClassSpace {
		i--
	}
	if i > 0 {
		cls := ClassOf(clusters[i-1])
		for i > 0 && ClassOf(clusters[i-1]) == cls {
			i--
		}
	}
	start := Position{Row: b.row, Col: i}
	b.remove(start, b.Cursor())
	return true
}

// DeleteToLineStart deletes from the start of the line to the cursor.
func (b *TextBuffer) DeleteToLineStart() bool {
	if b.col == 0 {
		return false
	}
	b.remove(Position{Row: b.row}, b.Cursor())
	return true
}

// StartSelection anchors a selection at the cursor.
func (b *TextBuffer) StartSelection() {
	p := b.Cursor()
	b.anchor = &p
}

// CancelSelection drops the selection anchor.
func (b *TextBuffer) CancelSelection() {
	b.anchor = nil
}

// Selection returns the normalized selection range [start, end).
func (b *TextBuffer) Selection() (start, end Position, ok bool) {
	if b.anchor == nil {
		return Position{}, Position{}, false
	}
	start, end = *b.anchor, b.Cursor()
	if end.Less(start) {
		start, end = end, start
	}
	return start, end, true
}

// Cut removes the selected range, stores it as the yank text and clears the
// selection. Returns false when there is no selection or it is empty.
func (b *TextBuffer) Cut() bool {
	start, end, ok := b.Selection()
	b.anchor = nil
	if !ok || start == end {
		return false
	}
	b.yank = b.Text(start, end)
	b.remove(start, end)
	return true
}

// SetYankText replaces the buffer-local clipboard.
func (b *TextBuffer) SetYankText(text string) {
	b.yank = text
}

// YankText returns the buffer-local clipboard.
func (b *TextBuffer) YankText() string {
	return b.yank
}

// Restore replaces the whole content and cursor. Used by undo/redo.
func (b *TextBuffer) Restore(lines []string, cursor Position) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	b.lines = append([]string(nil), lines...)
	b.anchor = nil
	b.MoveCursor(cursor)
}

// Text returns the text in [start, end). A line break between rows is "\n".
func (b *TextBuffer) Text(start, end Position) string {
	start, end = b.clamp(start), b.clamp(end)
	if !start.Less(end) {
		return ""
	}
	if start.Row == end.Row {
		return SliceByGraphemes(b.lines[start.Row], start.Col, end.Col)
	}
	var sb strings.Builder
	first := b.lines[start.Row]
	sb.WriteString(SliceByGraphemes(first, start.Col, GraphemeCount(first)))
	for row := start.Row + 1; row < end.Row; row++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[row])
	}
	sb.WriteByte('\n')
	sb.WriteString(SliceByGraphemes(b.lines[end.Row], 0, end.Col))
	return sb.String()
}

// remove deletes [start, end) and leaves the cursor at start.
func (b *TextBuffer) remove(start, end Position) {
	start, end = b.clamp(start), b.clamp(end)
	if !start.Less(end) {
		return
	}
	head := SliceByGraphemes(b.lines[start.Row], 0, start.Col)
	last := b.lines[end.Row]
	tail := last[GraphemeToByteOffset(last, end.Col):]

	newLines := make([]string, 0, len(b.lines)-(end.Row-start.Row))
	newLines = append(newLines, b.lines[:start.Row]...)
	newLines = append(newLines, head+tail)
	newLines = append(newLines, b.lines[end.Row+1:]...)
	b.lines = newLines
	b.row, b.col = start.Row, start.Col
}

// advance returns the position one character after pos, crossing line breaks.
func (b *TextBuffer) advance(pos Position) (Position, bool) {
	if pos.Col < GraphemeCount(b.lines[pos.Row]) {
		return Position{Row: pos.Row, Col: pos.Col + 1}, true
	}
	if pos.Row < len(b.lines)-1 {
		return Position{Row: pos.Row + 1}, true
	}
	return pos, false
}

// retreat returns the position one character before pos, crossing line breaks.
func (b *TextBuffer) retreat(pos Position) (Position, bool) {
	if pos.Col > 0 {
		return Position{Row: pos.Row, Col: pos.Col - 1}, true
	}
	if pos.Row > 0 {
		return Position{Row: pos.Row - 1, Col: GraphemeCount(b.lines[pos.Row-1])}, true
	}
	return pos, false
}
