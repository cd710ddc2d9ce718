package vimtextarea

// Motion commands move the cursor without touching content. They are shared
// by Normal mode and the visual modes.

var moveLeft = newCommand("move.left", []string{"h", keyLeft}, func(s *Session, count int) ExecuteResult {
	c := s.buf.Cursor()
	if c.Col == 0 {
		return Skipped
	}
	s.buf.MoveCursor(Position{Row: c.Row, Col: max(c.Col-orOne(count), 0)})
	s.syncPreferredCol()
	return Executed
})

var moveRight = newCommand("move.right", []string{"l", keyRight}, func(s *Session, count int) ExecuteResult {
	c := s.buf.Cursor()
	limit := s.cursorLimit(c.Row)
	if c.Col >= limit {
		return Skipped
	}
	s.buf.MoveCursor(Position{Row: c.Row, Col: min(c.Col+orOne(count), limit)})
	s.syncPreferredCol()
	return Executed
})

var moveUp = newCommand("move.up", []string{"k", keyUp}, func(s *Session, count int) ExecuteResult {
	return s.moveVertical(-orOne(count))
})

var moveDown = newCommand("move.down", []string{"j", keyDown}, func(s *Session, count int) ExecuteResult {
	return s.moveVertical(orOne(count))
})

// moveVertical moves delta lines, aiming for the preferred column.
func (s *Session) moveVertical(delta int) ExecuteResult {
	c := s.buf.Cursor()
	row := max(min(c.Row+delta, len(s.buf.Lines())-1), 0)
	if row == c.Row {
		return Skipped
	}
	s.buf.MoveCursor(Position{Row: row, Col: min(s.preferredCol, s.cursorLimit(row))})
	return Executed
}

func wordMotion(id, key string, bigWord bool, motion func([]string, Position, bool) Position) Command {
	return newCommand(id, []string{key}, func(s *Session, count int) ExecuteResult {
		lines := s.buf.Lines()
		c := s.buf.Cursor()
		p := repeatMotion(lines, c, count, bigWord, motion)
		if p == c {
			return Skipped
		}
		s.buf.MoveCursor(p)
		s.clampNormal()
		s.syncPreferredCol()
		return Executed
	})
}

var (
	wordForward     = wordMotion("move.word_forward", "w", false, nextWordStart)
	wordBackward    = wordMotion("move.word_backward", "b", false, prevWordStart)
	wordEndCmd      = wordMotion("move.word_end", "e", false, nextWordEnd)
	bigWordForward  = wordMotion("move.WORD_forward", "W", true, nextWordStart)
	bigWordBackward = wordMotion("move.WORD_backward", "B", true, prevWordStart)
	bigWordEnd      = wordMotion("move.WORD_end", "E", true, nextWordEnd)
)

var lineStart = newCommand("move.line_start", []string{"0", keyHome}, func(s *Session, _ int) ExecuteResult {
	s.buf.MoveCursor(Position{Row: s.buf.Cursor().Row})
	s.syncPreferredCol()
	return Executed
})

var firstNonBlankCmd = newCommand("move.first_non_blank", []string{"^"}, func(s *Session, _ int) ExecuteResult {
	row := s.buf.Cursor().Row
	s.buf.MoveCursor(Position{Row: row, Col: firstNonBlank(s.buf.Lines()[row])})
	s.syncPreferredCol()
	return Executed
})

// lineEndCmd moves to the last character of the line count-1 lines below.
var lineEndCmd = newCommand("move.line_end", []string{"$", keyEnd}, func(s *Session, count int) ExecuteResult {
	lines := s.buf.Lines()
	row := min(s.buf.Cursor().Row+orOne(count)-1, len(lines)-1)
	s.buf.MoveCursor(Position{Row: row, Col: lastCol(lines, row)})
	s.syncPreferredCol()
	return Executed
})

// lastLine is G: the last line, or line count when a count is given.
var lastLine = newCommand("move.last_line", []string{"G"}, func(s *Session, count int) ExecuteResult {
	lines := s.buf.Lines()
	row := len(lines) - 1
	if count > 0 {
		row = min(count-1, row)
	}
	s.moveToLine(row)
	return Executed
})

var goToTopPrefix = newCommand("pending.goto_top", []string{"g"}, func(s *Session, count int) ExecuteResult {
	return s.startPending(PendingGoToTop, count)
})

// moveToLine jumps to the first non-blank column of row.
func (s *Session) moveToLine(row int) {
	s.buf.MoveCursor(Position{Row: row, Col: firstNonBlank(s.buf.Lines()[row])})
	s.syncPreferredCol()
}
