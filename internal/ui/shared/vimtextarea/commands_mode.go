package vimtextarea

// ============================================================================
// Insert mode entry
// ============================================================================

var insertBefore = newCommand("mode.insert", []string{"i"}, func(s *Session, _ int) ExecuteResult {
	s.enterInsert(s.buf.Cursor())
	return Executed
})

var insertAfter = newCommand("mode.append", []string{"a"}, func(s *Session, _ int) ExecuteResult {
	c := s.buf.Cursor()
	lines := s.buf.Lines()
	s.enterInsert(Position{Row: c.Row, Col: min(c.Col+1, lineLen(lines, c.Row))})
	return Executed
})

var insertLineStart = newCommand("mode.insert_line_start", []string{"I"}, func(s *Session, _ int) ExecuteResult {
	row := s.buf.Cursor().Row
	col, ok := indentEnd(s.buf.Lines()[row])
	if !ok {
		col = lineLen(s.buf.Lines(), row)
	}
	s.enterInsert(Position{Row: row, Col: col})
	return Executed
})

var insertLineEnd = newCommand("mode.append_line_end", []string{"A"}, func(s *Session, _ int) ExecuteResult {
	row := s.buf.Cursor().Row
	s.enterInsert(Position{Row: row, Col: lineLen(s.buf.Lines(), row)})
	return Executed
})

// o opens a line below. The new line is part of the insert group.
var openBelow = newCommand("mode.open_below", []string{"o"}, func(s *Session, _ int) ExecuteResult {
	s.history.beginGroup(takeSnapshot(s.buf))
	row := s.buf.Cursor().Row
	s.openLine(row + 1)
	s.enterInsert(Position{Row: row + 1})
	return Executed
})

// O opens a line above.
var openAbove = newCommand("mode.open_above", []string{"O"}, func(s *Session, _ int) ExecuteResult {
	s.history.beginGroup(takeSnapshot(s.buf))
	row := s.buf.Cursor().Row
	s.openLine(row)
	s.enterInsert(Position{Row: row})
	return Executed
})

// ============================================================================
// Visual mode entry
// ============================================================================

func visualToggle(id, key string, kind VisualKind) Command {
	return newCommand(id, []string{key}, func(s *Session, _ int) ExecuteResult {
		if s.mode == kind.Mode() {
			s.exitToNormal()
			return Executed
		}
		s.setMode(kind.Mode())
		return Executed
	})
}

var (
	enterVisual      = visualToggle("mode.visual", "v", VisualChar)
	enterVisualLine  = visualToggle("mode.visual_line", "V", VisualLine)
	enterVisualBlock = visualToggle("mode.visual_block", keyCtrlV, VisualBlock)
)
