package vimtextarea

// r waits for the replacement character. A count replaces that many
// characters.
var replacePrefix = newCommand("pending.replace", []string{"r"}, func(s *Session, count int) ExecuteResult {
	return s.startPending(PendingReplace, count)
})
