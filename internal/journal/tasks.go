package journal

import (
	"regexp"
	"strings"

	"github.com/zjrosen/daybook/internal/log"
)

// taskPattern matches a markdown task item. Group 2 is the checkbox mark.
var taskPattern = regexp.MustCompile(`^(\s*[-*+]\s+)\[([ xX])\](\s|$)`)

// TaskCounts returns how many open and done task items body holds.
func TaskCounts(body string) (open, done int) {
	for _, line := range strings.Split(body, "\n") {
		m := taskPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if m[2] == " " {
			open++
		} else {
			done++
		}
	}
	return open, done
}

// setTask marks the task item on line done or open. It reports whether the
// line was a task in the other state.
func setTask(line string, done bool) (string, bool) {
	loc := taskPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return line, false
	}
	mark := line[loc[4]:loc[5]]
	if (mark == " ") != done {
		return line, false
	}
	next := " "
	if done {
		next = "x"
	}
	return line[:loc[4]] + next + line[loc[5]:], true
}

// ToggleTasks completes every open task item of entry. An entry whose tasks
// are all done has them reopened instead. It returns the updated entry and
// how many items changed; an entry without task items is left untouched and
// reports zero.
func (s *Store) ToggleTasks(entry Entry) (Entry, int, error) {
	open, done := TaskCounts(entry.Body)
	if open == 0 && done == 0 {
		return entry, 0, nil
	}
	complete := open > 0

	var changed int
	err := s.rewrite(entry, func(lines []string, current Entry) []string {
		out := make([]string, 0, current.EndLine-current.Line+1)
		for i, line := range lines[current.Line : current.EndLine+1] {
			// An inline stamp shares its line with the first body line.
			var prefix string
			if i == 0 && current.kind == headingInline {
				prefix = "[" + current.Time + "] "
				line = strings.TrimPrefix(line, prefix)
			}
			next, ok := setTask(line, complete)
			if ok {
				changed++
			}
			out = append(out, prefix+next)
		}
		return out
	})
	if err != nil {
		return Entry{}, 0, err
	}
	log.Info(log.CatJournal, "toggled tasks", "path", entry.Path, "line", entry.Line, "changed", changed, "done", complete)

	updated, ok, err := s.EntryAt(entry.Path, entry.Line)
	if err != nil {
		return Entry{}, 0, err
	}
	if !ok {
		return Entry{}, 0, ErrEntryChanged
	}
	return updated, changed, nil
}
