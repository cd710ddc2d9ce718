package vimtextarea

// Visual operators resolve the selection, drop back to Normal mode and apply
// the operator. Change continues into Insert mode.

func visualOperator(id string, keys []string, op Operator) Command {
	return newCommand(id, keys, func(s *Session, _ int) ExecuteResult {
		kind, _ := s.mode.VisualKind()
		anchor, ok := s.VisualAnchor()
		if !ok {
			anchor = s.buf.Cursor()
		}
		obj := visualObject(s.buf.Lines(), kind, anchor, s.buf.Cursor())
		s.setMode(ModeNormal)
		s.operate(op, obj)
		if s.mode == ModeNormal {
			s.clampNormal()
		}
		return Executed
	})
}

var (
	visualDelete = visualOperator("visual.delete", []string{"d", "x", keyDelete}, OpDelete)
	visualYank   = visualOperator("visual.yank", []string{"y"}, OpYank)
	visualChange = visualOperator("visual.change", []string{"c", "s"}, OpChange)
)

// visualSwap moves the cursor to the other end of the selection.
var visualSwap = newCommand("visual.swap", []string{"o"}, func(s *Session, _ int) ExecuteResult {
	if s.anchor == nil {
		return Skipped
	}
	c := s.buf.Cursor()
	s.buf.MoveCursor(*s.anchor)
	*s.anchor = c
	s.syncPreferredCol()
	return Executed
})

var visualEscape = newCommand("visual.escape", []string{keyEscape}, func(s *Session, _ int) ExecuteResult {
	s.exitToNormal()
	return Executed
})
