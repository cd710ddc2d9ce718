package vimtextarea

import (
	"strings"

	"github.com/zjrosen/daybook/internal/textbuffer"
)

// ObjectKind is the shape of a text object.
type ObjectKind int

const (
	// ObjectChar is a character-wise range. End is exclusive.
	ObjectChar ObjectKind = iota
	// ObjectLine covers whole lines Start.Row through End.Row. End.Col is the
	// length of the last line.
	ObjectLine
	// ObjectBlock is a rectangle of rows Start.Row..End.Row and columns
	// [Start.Col, End.Col).
	ObjectBlock
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectLine:
		return "line"
	case ObjectBlock:
		return "block"
	default:
		return "char"
	}
}

// TextObject is the region an operator acts on.
type TextObject struct {
	Kind  ObjectKind
	Start Position
	End   Position
}

// Empty reports whether the object covers no text. A line object always
// covers at least one line and is never empty.
func (o TextObject) Empty() bool {
	switch o.Kind {
	case ObjectLine:
		return false
	case ObjectBlock:
		return o.Start.Row > o.End.Row || o.Start.Col >= o.End.Col
	default:
		return !o.Start.Less(o.End)
	}
}

// lineObject covers count lines starting at row, truncated at the last line.
func lineObject(lines []string, row, count int) TextObject {
	last := len(lines) - 1
	end := min(row+orOne(count)-1, last)
	return lineRange(lines, row, end)
}

func lineRange(lines []string, from, to int) TextObject {
	return TextObject{
		Kind:  ObjectLine,
		Start: Position{Row: from},
		End:   Position{Row: to, Col: lineLen(lines, to)},
	}
}

// charObject covers count characters forward from p. Line breaks count as
// characters.
func charObject(lines []string, p Position, count int) TextObject {
	end := p
	for range orOne(count) {
		next, ok := advance(lines, end)
		if !ok {
			break
		}
		end = next
	}
	return TextObject{Kind: ObjectChar, Start: p, End: end}
}

// charBeforeObject covers up to count characters before p on its own line.
// At column 0 the object is empty.
func charBeforeObject(p Position, count int) TextObject {
	start := Position{Row: p.Row, Col: max(p.Col-orOne(count), 0)}
	return TextObject{Kind: ObjectChar, Start: start, End: p}
}

// lineEndObject runs from p to the end of the line count-1 lines below.
func lineEndObject(lines []string, p Position, count int) TextObject {
	row := min(p.Row+orOne(count)-1, len(lines)-1)
	return TextObject{Kind: ObjectChar, Start: p, End: Position{Row: row, Col: lineLen(lines, row)}}
}

// visualObject resolves the selection between anchor and cursor.
func visualObject(lines []string, kind VisualKind, anchor, cursor Position) TextObject {
	start, end := anchor, cursor
	if end.Less(start) {
		start, end = end, start
	}
	switch kind {
	case VisualLine:
		return lineRange(lines, start.Row, end.Row)
	case VisualBlock:
		return TextObject{
			Kind:  ObjectBlock,
			Start: Position{Row: start.Row, Col: min(anchor.Col, cursor.Col)},
			End:   Position{Row: end.Row, Col: max(anchor.Col, cursor.Col) + 1},
		}
	default:
		if next, ok := advance(lines, end); ok {
			end = next
		}
		return TextObject{Kind: ObjectChar, Start: start, End: end}
	}
}

// objectText extracts the text an object covers. Line objects end with a
// trailing newline. Block rows are joined with newlines; rows that end before
// the block's first column contribute nothing.
func objectText(lines []string, o TextObject) string {
	switch o.Kind {
	case ObjectLine:
		return strings.Join(lines[o.Start.Row:o.End.Row+1], "\n") + "\n"
	case ObjectBlock:
		rows := make([]string, 0, o.End.Row-o.Start.Row+1)
		for r := o.Start.Row; r <= o.End.Row; r++ {
			if lineLen(lines, r) <= o.Start.Col {
				continue
			}
			rows = append(rows, textbuffer.SliceByGraphemes(lines[r], o.Start.Col, min(o.End.Col, lineLen(lines, r))))
		}
		return strings.Join(rows, "\n")
	default:
		return textRange(lines, o.Start, o.End)
	}
}

func textRange(lines []string, start, end Position) string {
	if !start.Less(end) {
		return ""
	}
	if start.Row == end.Row {
		return textbuffer.SliceByGraphemes(lines[start.Row], start.Col, end.Col)
	}
	var sb strings.Builder
	sb.WriteString(textbuffer.SliceByGraphemes(lines[start.Row], start.Col, lineLen(lines, start.Row)))
	for r := start.Row + 1; r < end.Row; r++ {
		sb.WriteByte('\n')
		sb.WriteString(lines[r])
	}
	sb.WriteByte('\n')
	sb.WriteString(textbuffer.SliceByGraphemes(lines[end.Row], 0, end.Col))
	return sb.String()
}

// advance steps one character forward, crossing line breaks.
func advance(lines []string, p Position) (Position, bool) {
	if p.Col < lineLen(lines, p.Row) {
		return Position{Row: p.Row, Col: p.Col + 1}, true
	}
	if p.Row < len(lines)-1 {
		return Position{Row: p.Row + 1}, true
	}
	return p, false
}

// retreat steps one character back, crossing line breaks.
func retreat(lines []string, p Position) (Position, bool) {
	if p.Col > 0 {
		return Position{Row: p.Row, Col: p.Col - 1}, true
	}
	if p.Row > 0 {
		return Position{Row: p.Row - 1, Col: lineLen(lines, p.Row-1)}, true
	}
	return p, false
}
