// Package journal stores composer entries in daily markdown files named
// YYYY-MM-DD.md. Each entry starts with a "## [HH:MM:SS]" heading.
package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/zjrosen/daybook/internal/log"
)

var (
	// ErrEmptyEntry is returned when appending whitespace-only content.
	ErrEmptyEntry = errors.New("journal: entry is empty")
	// ErrEntryChanged is returned when an entry no longer sits where it was read.
	ErrEntryChanged = errors.New("journal: entry changed on disk")
)

// Store reads and writes the daily files of one journal directory.
type Store struct {
	dir   string
	clock Clock
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for stamps and "today".
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// New creates a store rooted at dir. The directory is created on first write.
func New(dir string, opts ...Option) *Store {
	s := &Store{dir: dir, clock: RealClock{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the journal directory.
func (s *Store) Dir() string {
	return s.dir
}

// EnsureDir creates the journal directory if needed.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("creating journal directory: %w", err)
	}
	return nil
}

// PathFor returns the daily file for the day of t.
func (s *Store) PathFor(t time.Time) string {
	return filepath.Join(s.dir, t.Format(dateLayout)+".md")
}

// Append writes content as a new entry in today's file.
func (s *Store) Append(content string) (Entry, error) {
	return s.AppendToDate(s.clock.Now(), content)
}

// AppendToDate writes content as a new entry in the file for date, stamped
// with the current time of day. The file is separated from its previous
// entry by exactly one blank line.
func (s *Store) AppendToDate(date time.Time, content string) (Entry, error) {
	if strings.TrimSpace(content) == "" {
		return Entry{}, ErrEmptyEntry
	}
	if err := s.EnsureDir(); err != nil {
		return Entry{}, err
	}

	path := s.PathFor(date)
	existing, err := os.ReadFile(path) //nolint:gosec // G304: path is inside the journal directory
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Entry{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var sep string
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n\n") {
		sep = "\n"
		if !strings.HasSuffix(string(existing), "\n") {
			sep = "\n\n"
		}
	}

	stamp := s.clock.Now().Format(timeLayout)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:gosec // G304: path is inside the journal directory
	if err != nil {
		return Entry{}, fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := f.WriteString(sep + formatEntry(stamp, content)); err != nil {
		_ = f.Close()
		return Entry{}, fmt.Errorf("appending to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return Entry{}, fmt.Errorf("closing %s: %w", path, err)
	}

	entries, err := s.readFile(path)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("appended entry missing from %s", path)
	}
	entry := entries[len(entries)-1]
	log.Info(log.CatJournal, "appended entry", "path", path, "time", stamp, "line", entry.Line)
	return entry, nil
}

// Today returns the entries in today's file, oldest first.
func (s *Store) Today() ([]Entry, error) {
	return s.ForDate(s.clock.Now())
}

// ForDate returns the entries in the file for the day of date. A missing
// file yields no entries.
func (s *Store) ForDate(date time.Time) ([]Entry, error) {
	return s.readFile(s.PathFor(date))
}

// Dates returns the days that have a daily file, ascending.
func (s *Store) Dates() ([]time.Time, error) {
	files, err := s.dailyFiles()
	if err != nil {
		return nil, err
	}
	loc := s.clock.Now().Location()
	dates := make([]time.Time, 0, len(files))
	for _, path := range files {
		d, err := time.ParseInLocation(dateLayout, strings.TrimSuffix(filepath.Base(path), ".md"), loc)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })
	return dates, nil
}

// PrevDay returns the nearest day before the day of from that has a daily
// file. ok is false when there is none.
func (s *Store) PrevDay(from time.Time) (day time.Time, ok bool, err error) {
	dates, err := s.Dates()
	if err != nil {
		return time.Time{}, false, err
	}
	from = truncateDay(from)
	for i := len(dates) - 1; i >= 0; i-- {
		if dates[i].Before(from) {
			return dates[i], true, nil
		}
	}
	return time.Time{}, false, nil
}

// NextDay returns the nearest day after the day of from that has a daily
// file, stopping at today. ok is false when from is already today or later.
func (s *Store) NextDay(from time.Time) (day time.Time, ok bool, err error) {
	today := truncateDay(s.clock.Now())
	from = truncateDay(from)
	if !from.Before(today) {
		return time.Time{}, false, nil
	}
	dates, err := s.Dates()
	if err != nil {
		return time.Time{}, false, err
	}
	for _, d := range dates {
		if d.After(from) && d.Before(today) {
			return d, true, nil
		}
	}
	return today, true, nil
}

// EntryAt returns the entry of path that contains the zero-based line.
func (s *Store) EntryAt(path string, line int) (Entry, bool, error) {
	entries, err := s.readFile(path)
	if err != nil {
		return Entry{}, false, err
	}
	for _, e := range entries {
		if e.Contains(line) {
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}

// Replace rewrites the body of entry, keeping its stamp. The entry must
// still start at the same line with the same stamp.
func (s *Store) Replace(entry Entry, body string) (Entry, error) {
	if strings.TrimSpace(body) == "" {
		return Entry{}, ErrEmptyEntry
	}
	err := s.rewrite(entry, func(lines []string, current Entry) []string {
		replacement := entryLines(current, body)
		if strings.TrimSpace(lines[current.EndLine]) == "" {
			replacement = append(replacement, "")
		}
		return replacement
	})
	if err != nil {
		return Entry{}, err
	}
	log.Info(log.CatJournal, "replaced entry", "path", entry.Path, "line", entry.Line)

	updated, ok, err := s.EntryAt(entry.Path, entry.Line)
	if err != nil {
		return Entry{}, err
	}
	if !ok {
		return Entry{}, ErrEntryChanged
	}
	return updated, nil
}

// Delete removes entry and the blank lines that separated it from the next one.
func (s *Store) Delete(entry Entry) error {
	err := s.rewrite(entry, func([]string, Entry) []string { return nil })
	if err != nil {
		return err
	}
	log.Info(log.CatJournal, "deleted entry", "path", entry.Path, "line", entry.Line)
	return nil
}

// rewrite replaces lines [entry.Line, entry.EndLine] of entry's file with
// the result of fn and writes the file back atomically.
func (s *Store) rewrite(entry Entry, fn func(lines []string, current Entry) []string) error {
	data, err := os.ReadFile(entry.Path) //nolint:gosec // G304: path came from a parsed entry
	if err != nil {
		return fmt.Errorf("reading %s: %w", entry.Path, err)
	}
	content := string(data)

	current, ok := findEntry(Parse(content, entry.Path), entry)
	if !ok {
		return ErrEntryChanged
	}

	lines := splitLines(content)
	end := current.EndLine + 1
	replacement := fn(lines, current)
	if len(replacement) == 0 {
		// Deleting also drops the separator before the next entry.
		for end < len(lines) && strings.TrimSpace(lines[end]) == "" {
			end++
		}
	}
	lines = slices.Concat(lines[:current.Line], replacement, lines[end:])

	var out string
	if len(lines) > 0 {
		out = strings.Join(lines, "\n") + "\n"
	}
	return writeFileAtomic(entry.Path, []byte(out))
}

// findEntry locates want among entries by start line and stamp.
func findEntry(entries []Entry, want Entry) (Entry, bool) {
	for _, e := range entries {
		if e.Line == want.Line && e.Time == want.Time {
			return e, true
		}
	}
	return Entry{}, false
}

func (s *Store) readFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is inside the journal directory
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(string(data), path), nil
}

// dailyFiles lists the markdown files of the journal directory, sorted.
func (s *Store) dailyFiles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("listing journal files: %w", err)
	}
	slices.Sort(matches)
	return matches, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// writeFileAtomic writes data to a temp file in the same directory and
// renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	temp, err := os.CreateTemp(dir, ".daybook.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
