package vimtextarea

import "github.com/zjrosen/daybook/internal/textbuffer"

// Position is a cursor location. Col is a grapheme index, not a byte offset.
type Position = textbuffer.Position

// Buffer is the text storage the engine edits. The engine never touches lines
// directly; every mutation goes through these primitives.
type Buffer interface {
	Lines() []string
	Cursor() Position
	// MoveCursor jumps to pos, clamped so the column may equal the line length.
	MoveCursor(pos Position)

	InsertStr(text string) bool
	InsertChar(r rune)
	InsertNewline()

	DeleteStr(n int) bool
	DeleteNextChar() bool
	DeletePrevChar() bool
	DeleteWord() bool
	DeleteToLineStart() bool

	StartSelection()
	CancelSelection()
	Cut() bool

	SetYankText(text string)
	YankText() string

	Restore(lines []string, cursor Position)
}

var _ Buffer = (*textbuffer.TextBuffer)(nil)

func lineLen(lines []string, row int) int {
	if row < 0 || row >= len(lines) {
		return 0
	}
	return textbuffer.GraphemeCount(lines[row])
}

// lastCol is the rightmost column a Normal-mode cursor may occupy on row.
func lastCol(lines []string, row int) int {
	return max(lineLen(lines, row)-1, 0)
}
