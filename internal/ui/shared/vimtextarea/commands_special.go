package vimtextarea

var undoCmd = newCommand("undo", []string{"u"}, func(s *Session, count int) ExecuteResult {
	return s.undo(orOne(count))
})

var redoCmd = newCommand("redo", []string{keyCtrlR}, func(s *Session, count int) ExecuteResult {
	return s.redo(orOne(count))
})

// normalEscape cancels pending state. The count and pending command were
// already cleared before dispatch.
var normalEscape = newCommand("mode.normal_escape", []string{keyEscape}, func(s *Session, _ int) ExecuteResult {
	return Executed
})

func (s *Session) undo(n int) ExecuteResult {
	if s.history.InGroup() {
		return Skipped
	}
	restored := false
	for range n {
		snap, ok := s.history.undoStep(takeSnapshot(s.buf))
		if !ok {
			break
		}
		s.buf.Restore(snap.lines, snap.cursor)
		restored = true
	}
	return s.afterRestore(restored)
}

func (s *Session) redo(n int) ExecuteResult {
	if s.history.InGroup() {
		return Skipped
	}
	restored := false
	for range n {
		snap, ok := s.history.redoStep(takeSnapshot(s.buf))
		if !ok {
			break
		}
		s.buf.Restore(snap.lines, snap.cursor)
		restored = true
	}
	return s.afterRestore(restored)
}

func (s *Session) afterRestore(restored bool) ExecuteResult {
	if !restored {
		return Skipped
	}
	s.clampNormal()
	s.syncPreferredCol()
	s.markModified()
	return Executed
}
