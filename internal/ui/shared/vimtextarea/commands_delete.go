package vimtextarea

// x deletes count characters forward, crossing line breaks.
var deleteChar = newCommand("delete.char", []string{"x", keyDelete}, func(s *Session, count int) ExecuteResult {
	return s.operate(OpDelete, charObject(s.buf.Lines(), s.buf.Cursor(), count))
})

// X deletes count characters before the cursor.
var deleteCharBefore = newCommand("delete.char_before", []string{"X"}, func(s *Session, count int) ExecuteResult {
	return s.operate(OpDelete, charBeforeObject(s.buf.Cursor(), count))
})

// D deletes to the end of the line, or of the line count-1 below.
var deleteToLineEnd = newCommand("delete.to_eol", []string{"D"}, func(s *Session, count int) ExecuteResult {
	return s.operate(OpDelete, lineEndObject(s.buf.Lines(), s.buf.Cursor(), count))
})

var deletePrefix = newCommand("pending.delete", []string{"d"}, func(s *Session, count int) ExecuteResult {
	return s.startPending(PendingDelete, count)
})

// operate applies op to obj and performs the follow-up action.
func (s *Session) operate(op Operator, obj TextObject) ExecuteResult {
	if obj.Empty() && op != OpChange {
		return Skipped
	}
	s.perform(s.applyOperator(op, obj))
	s.syncPreferredCol()
	return Executed
}
