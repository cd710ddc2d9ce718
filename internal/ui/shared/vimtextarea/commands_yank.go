package vimtextarea

var yankPrefix = newCommand("pending.yank", []string{"y"}, func(s *Session, count int) ExecuteResult {
	return s.startPending(PendingYank, count)
})
