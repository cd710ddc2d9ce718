package vimtextarea

// C changes to the end of the line.
var changeToLineEnd = newCommand("change.to_eol", []string{"C"}, func(s *Session, count int) ExecuteResult {
	return s.operate(OpChange, lineEndObject(s.buf.Lines(), s.buf.Cursor(), count))
})

// s substitutes count characters.
var substituteChar = newCommand("change.char", []string{"s"}, func(s *Session, count int) ExecuteResult {
	return s.operate(OpChange, charObject(s.buf.Lines(), s.buf.Cursor(), count))
})

// S substitutes the whole line. The count is ignored.
var substituteLine = newCommand("change.line", []string{"S"}, func(s *Session, _ int) ExecuteResult {
	return s.operate(OpChange, lineObject(s.buf.Lines(), s.buf.Cursor().Row, 1))
})

var changePrefix = newCommand("pending.change", []string{"c"}, func(s *Session, count int) ExecuteResult {
	return s.startPending(PendingChange, count)
})
