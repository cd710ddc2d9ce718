package vimtextarea

import "strings"

// Operator is an action applied to a text object.
type Operator int

const (
	OpDelete Operator = iota
	OpYank
	OpChange
)

func (o Operator) String() string {
	switch o {
	case OpYank:
		return "yank"
	case OpChange:
		return "change"
	default:
		return "delete"
	}
}

// PostAction is what the session must do after an operator runs.
type PostAction struct {
	EnterInsert bool
	At          Position
}

// applyOperator runs op over obj. Empty objects mutate nothing and record no
// undo step.
func (s *Session) applyOperator(op Operator, obj TextObject) PostAction {
	if obj.Empty() {
		if op == OpChange {
			return PostAction{EnterInsert: true, At: obj.Start}
		}
		return PostAction{}
	}

	lines := s.buf.Lines()
	s.yank = YankBuffer{Text: objectText(lines, obj), Linewise: obj.Kind == ObjectLine}
	s.buf.SetYankText(s.yank.Text)

	switch op {
	case OpYank:
		at := obj.Start
		if obj.Kind == ObjectLine {
			at.Col = s.buf.Cursor().Col
		}
		s.buf.MoveCursor(at)
		s.clampNormal()
		return PostAction{}

	case OpChange:
		s.history.beginGroup(takeSnapshot(s.buf))
		before := len(lines)
		s.removeObject(obj)
		at := s.buf.Cursor()
		if obj.Kind == ObjectLine {
			at = Position{Row: obj.Start.Row}
			if len(s.buf.Lines()) < before {
				s.openLine(obj.Start.Row)
			}
		}
		return PostAction{EnterInsert: true, At: at}

	default:
		snap := takeSnapshot(s.buf)
		if !s.removeObject(obj) {
			return PostAction{}
		}
		s.history.push(snap)
		if obj.Kind == ObjectLine {
			cur := s.buf.Lines()
			row := min(obj.Start.Row, len(cur)-1)
			s.buf.MoveCursor(Position{Row: row, Col: firstNonBlank(cur[row])})
		}
		s.clampNormal()
		return PostAction{}
	}
}

// perform carries out a PostAction.
func (s *Session) perform(post PostAction) {
	if post.EnterInsert {
		s.enterInsert(post.At)
	}
}

// removeObject deletes obj through the buffer's selection primitives and
// reports whether the content changed.
func (s *Session) removeObject(obj TextObject) bool {
	var changed bool
	switch obj.Kind {
	case ObjectBlock:
		changed = s.removeBlock(obj)
	case ObjectLine:
		from, to := lineRemoval(s.buf.Lines(), obj)
		changed = s.cut(from, to)
	default:
		changed = s.cut(obj.Start, obj.End)
	}
	if changed {
		s.markModified()
	}
	return changed
}

// lineRemoval returns the character range deleted for a line object. A
// single line other than the first takes the line break before it. Otherwise
// the break after the last row goes, or the one before the first row when the
// object reaches the end of the buffer. Removing every line leaves one empty
// line.
func lineRemoval(lines []string, obj TextObject) (Position, Position) {
	first, lastRow := obj.Start.Row, obj.End.Row
	last := len(lines) - 1
	switch {
	case first > 0 && (first == lastRow || lastRow == last):
		return Position{Row: first - 1, Col: lineLen(lines, first-1)}, Position{Row: lastRow, Col: lineLen(lines, lastRow)}
	case lastRow < last:
		return Position{Row: first}, Position{Row: lastRow + 1}
	default:
		return Position{}, Position{Row: last, Col: lineLen(lines, last)}
	}
}

func (s *Session) cut(from, to Position) bool {
	if !from.Less(to) {
		return false
	}
	yank := s.buf.YankText()
	s.buf.MoveCursor(from)
	s.buf.StartSelection()
	s.buf.MoveCursor(to)
	ok := s.buf.Cut()
	s.buf.SetYankText(yank)
	return ok
}

func (s *Session) removeBlock(obj TextObject) bool {
	changed := false
	lines := s.buf.Lines()
	for r := obj.Start.Row; r <= obj.End.Row; r++ {
		end := min(obj.End.Col, lineLen(lines, r))
		if obj.Start.Col >= end {
			continue
		}
		if s.cut(Position{Row: r, Col: obj.Start.Col}, Position{Row: r, Col: end}) {
			changed = true
		}
	}
	s.buf.MoveCursor(obj.Start)
	return changed
}

// openLine inserts an empty line at row and leaves the cursor on it.
func (s *Session) openLine(row int) {
	lines := s.buf.Lines()
	if row >= len(lines) {
		last := len(lines) - 1
		s.buf.MoveCursor(Position{Row: last, Col: lineLen(lines, last)})
		s.buf.InsertNewline()
	} else {
		s.buf.MoveCursor(Position{Row: row})
		s.buf.InsertNewline()
		s.buf.MoveCursor(Position{Row: row})
	}
	s.markModified()
}

// replaceChar overwrites count characters from the cursor with r. Nothing
// happens when fewer than count characters remain on the line.
func (s *Session) replaceChar(r rune, count int) {
	n := orOne(count)
	c := s.buf.Cursor()
	lines := s.buf.Lines()
	if c.Col+n > lineLen(lines, c.Row) {
		return
	}
	snap := takeSnapshot(s.buf)
	s.buf.MoveCursor(c)
	yank := s.buf.YankText()
	s.buf.DeleteStr(n)
	s.buf.SetYankText(yank)
	s.buf.InsertStr(strings.Repeat(string(r), n))
	s.buf.MoveCursor(Position{Row: c.Row, Col: c.Col + n - 1})
	s.history.push(snap)
	s.markModified()
	s.syncPreferredCol()
}
