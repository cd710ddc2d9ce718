package journal

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// headingKind records how an entry's timestamp was written.
type headingKind int

const (
	headingNone     headingKind = iota // text before the first timestamp
	headingMarkdown                    // "## [HH:MM:SS]" on its own line
	headingInline                      // "[HH:MM:SS] first line of text"
)

// Entry is one timestamped block of a daily file.
type Entry struct {
	// Date is the day of the file the entry lives in (zero if the file name
	// is not a date).
	Date time.Time
	// Time is the "HH:MM:SS" stamp, empty for text before the first stamp.
	Time string
	// Body is the entry text without its stamp and trailing blank lines.
	Body string
	// Path is the daily file.
	Path string
	// Line and EndLine are the zero-based first and last file lines of the entry.
	Line    int
	EndLine int

	kind headingKind
}

// Timestamp combines Date and Time. ok is false when either is missing.
func (e Entry) Timestamp() (t time.Time, ok bool) {
	if e.Date.IsZero() || e.Time == "" {
		return time.Time{}, false
	}
	clock, err := time.Parse(timeLayout, e.Time)
	if err != nil {
		return time.Time{}, false
	}
	y, m, d := e.Date.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), clock.Second(), 0, e.Date.Location()), true
}

// Contains reports whether the zero-based file line falls inside the entry.
func (e Entry) Contains(line int) bool {
	return e.Line <= line && line <= e.EndLine
}

// isStamp reports whether s starts with "[HH:MM:SS]".
func isStamp(s string) bool {
	if len(s) < 10 || s[0] != '[' || s[9] != ']' {
		return false
	}
	for i, c := range []byte(s[1:9]) {
		if i == 2 || i == 5 {
			if c != ':' {
				return false
			}
		} else if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// parseHeading classifies line and returns its stamp and any inline text.
func parseHeading(line string) (kind headingKind, stamp, rest string) {
	if after, ok := strings.CutPrefix(line, "## "); ok && isStamp(after) && strings.TrimSpace(after[10:]) == "" {
		return headingMarkdown, after[1:9], ""
	}
	if isStamp(line) && len(line) > 10 && line[10] == ' ' {
		return headingInline, line[1:9], line[11:]
	}
	return headingNone, "", ""
}

func isHeading(line string) bool {
	kind, _, _ := parseHeading(line)
	return kind != headingNone
}

// nextNonBlankIsHeading reports whether the first non-blank line at or after
// start is a timestamp heading.
func nextNonBlankIsHeading(lines []string, start int) bool {
	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		return isHeading(line)
	}
	return false
}

// Parse splits a daily file into entries. A new entry starts at every
// timestamp heading; text before the first heading forms an untimestamped
// entry. Blank lines that separate entries belong to neither.
func Parse(content, path string) []Entry {
	date, _ := time.ParseInLocation(dateLayout, strings.TrimSuffix(filepath.Base(path), ".md"), time.Local)

	lines := splitLines(content)
	var (
		entries []Entry
		bodies  [][]string
	)
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(entries) == 0 || nextNonBlankIsHeading(lines, i+1) {
				continue
			}
		}

		kind, stamp, rest := parseHeading(line)
		if kind != headingNone || len(entries) == 0 {
			e := Entry{Date: date, Time: stamp, Path: path, Line: i, EndLine: i, kind: kind}
			var body []string
			switch kind {
			case headingNone:
				body = []string{line}
			case headingInline:
				body = []string{rest}
			}
			entries = append(entries, e)
			bodies = append(bodies, body)
			continue
		}

		last := len(entries) - 1
		entries[last].EndLine = i
		bodies[last] = append(bodies[last], line)
	}

	for i := range entries {
		entries[i].Body = strings.TrimRight(strings.Join(bodies[i], "\n"), "\n \t")
	}
	return entries
}

// splitLines splits like a line reader: a final newline does not start an
// extra empty line.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// formatEntry renders a new entry block: heading, body and one blank line.
func formatEntry(stamp, content string) string {
	var b strings.Builder
	b.WriteString("## [" + stamp + "]\n")
	if body := strings.TrimRight(content, "\n"); body != "" {
		b.WriteString(body)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

// entryLines renders e with body in the same heading style e was written in.
func entryLines(e Entry, body string) []string {
	bodyLines := splitLines(strings.TrimRight(body, "\n"))
	switch e.kind {
	case headingMarkdown:
		return append([]string{"## [" + e.Time + "]"}, bodyLines...)
	case headingInline:
		if len(bodyLines) == 0 {
			return []string{"[" + e.Time + "] "}
		}
		return append([]string{"[" + e.Time + "] " + bodyLines[0]}, bodyLines[1:]...)
	default:
		return bodyLines
	}
}
