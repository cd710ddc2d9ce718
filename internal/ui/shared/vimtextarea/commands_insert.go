package vimtextarea

// Insert-mode editing applies straight to the buffer. The insert group opened
// on entry is the only undo step for the whole session.

// insertEscape returns to Normal mode. The cursor stays put unless it sits
// past the last character.
var insertEscape = newCommand("mode.insert_escape", []string{keyEscape}, func(s *Session, _ int) ExecuteResult {
	s.exitToNormal()
	s.syncPreferredCol()
	return Executed
})

var insertNewline = newCommand("insert.newline", []string{keyEnter, keyAltEnter}, func(s *Session, _ int) ExecuteResult {
	s.buf.InsertNewline()
	s.markModified()
	s.syncPreferredCol()
	return Executed
})

var insertTab = newCommand("insert.tab", []string{keyTab}, func(s *Session, _ int) ExecuteResult {
	s.buf.InsertStr("  ")
	s.markModified()
	s.syncPreferredCol()
	return Executed
})

func insertEdit(id, key string, edit func(Buffer) bool) Command {
	return newCommand(id, []string{key}, func(s *Session, _ int) ExecuteResult {
		if !edit(s.buf) {
			return Skipped
		}
		s.markModified()
		s.syncPreferredCol()
		return Executed
	})
}

var (
	insertBackspace         = insertEdit("insert.backspace", keyBackspace, Buffer.DeletePrevChar)
	insertDelete            = insertEdit("insert.delete", keyDelete, Buffer.DeleteNextChar)
	insertDeleteWord        = insertEdit("insert.delete_word", keyCtrlW, Buffer.DeleteWord)
	insertDeleteToLineStart = insertEdit("insert.delete_to_line_start", keyCtrlU, Buffer.DeleteToLineStart)
)

var insertLeft = newCommand("insert.move_left", []string{keyLeft}, func(s *Session, _ int) ExecuteResult {
	c := s.buf.Cursor()
	prev, ok := retreat(s.buf.Lines(), c)
	if !ok {
		return Skipped
	}
	s.buf.MoveCursor(prev)
	s.syncPreferredCol()
	return Executed
})

var insertRight = newCommand("insert.move_right", []string{keyRight}, func(s *Session, _ int) ExecuteResult {
	c := s.buf.Cursor()
	next, ok := advance(s.buf.Lines(), c)
	if !ok {
		return Skipped
	}
	s.buf.MoveCursor(next)
	s.syncPreferredCol()
	return Executed
})

var insertUp = newCommand("insert.move_up", []string{keyUp}, func(s *Session, _ int) ExecuteResult {
	return s.moveVertical(-1)
})

var insertDown = newCommand("insert.move_down", []string{keyDown}, func(s *Session, _ int) ExecuteResult {
	return s.moveVertical(1)
})

var insertHome = newCommand("insert.line_start", []string{keyHome}, func(s *Session, _ int) ExecuteResult {
	s.buf.MoveCursor(Position{Row: s.buf.Cursor().Row})
	s.syncPreferredCol()
	return Executed
})

var insertEnd = newCommand("insert.line_end", []string{keyEnd}, func(s *Session, _ int) ExecuteResult {
	row := s.buf.Cursor().Row
	s.buf.MoveCursor(Position{Row: row, Col: lineLen(s.buf.Lines(), row)})
	s.syncPreferredCol()
	return Executed
})
