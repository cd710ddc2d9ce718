package vimtextarea

import "strings"

var pasteAfter = newCommand("paste.after", []string{"p"}, func(s *Session, count int) ExecuteResult {
	return s.paste(count, true)
})

var pasteBefore = newCommand("paste.before", []string{"P"}, func(s *Session, count int) ExecuteResult {
	return s.paste(count, false)
})

// paste inserts count copies of the yank buffer as one undo step.
//
// Line-wise text goes below (after) or above the cursor line, and the cursor
// lands on the first non-blank column of the first pasted line. Character-wise
// text is inserted at the cursor column. After p the cursor rests on the last
// pasted character and after P on the first.
func (s *Session) paste(count int, after bool) ExecuteResult {
	if s.yank.Text == "" {
		return Skipped
	}
	n := orOne(count)
	snap := takeSnapshot(s.buf)
	c := s.buf.Cursor()
	lines := s.buf.Lines()

	if s.yank.Linewise {
		body := strings.TrimSuffix(strings.Repeat(s.yank.Text, n), "\n")
		row := c.Row
		if after {
			s.buf.MoveCursor(Position{Row: c.Row, Col: lineLen(lines, c.Row)})
			s.buf.InsertStr("\n" + body)
			row = c.Row + 1
		} else {
			s.buf.MoveCursor(Position{Row: c.Row})
			s.buf.InsertStr(body + "\n")
		}
		s.moveToLine(row)
	} else {
		s.buf.MoveCursor(c)
		s.buf.InsertStr(strings.Repeat(s.yank.Text, n))
		if after {
			end := s.buf.Cursor()
			if prev, ok := retreat(s.buf.Lines(), end); ok && prev.Row == end.Row {
				s.buf.MoveCursor(prev)
			}
		} else {
			s.buf.MoveCursor(c)
		}
		s.clampNormal()
		s.syncPreferredCol()
	}

	s.history.push(snap)
	s.markModified()
	return Executed
}
