package journal

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskCounts(t *testing.T) {
	open, done := TaskCounts("plan\n- [ ] write\n  * [x] read\n+ [X] sleep\n- [ ]no space\n[ ] bare")
	require.Equal(t, 1, open)
	require.Equal(t, 2, done)

	open, done = TaskCounts("")
	require.Zero(t, open)
	require.Zero(t, done)
}

func TestStore_ToggleTasks_CompletesOpen(t *testing.T) {
	s, clock := newTestStore(t)
	e, err := s.Append("todo\n- [ ] write\n- [x] read\n  - [ ] nested")
	require.NoError(t, err)
	clock.t = at(11, 0, 0)
	_, err = s.Append("- [ ] untouched")
	require.NoError(t, err)

	updated, n, err := s.ToggleTasks(e)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, "todo\n- [x] write\n- [x] read\n  - [x] nested", updated.Body)
	require.Equal(t, e.Time, updated.Time)

	want := "## [09:30:00]\ntodo\n- [x] write\n- [x] read\n  - [x] nested\n\n## [11:00:00]\n- [ ] untouched\n\n"
	require.Equal(t, want, readFile(t, e.Path))
}

func TestStore_ToggleTasks_ReopensWhenAllDone(t *testing.T) {
	s, _ := newTestStore(t)
	e, err := s.Append("- [x] one\n- [X] two")
	require.NoError(t, err)

	updated, n, err := s.ToggleTasks(e)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, "- [ ] one\n- [ ] two", updated.Body)

	// Toggling again completes them.
	updated, n, err = s.ToggleTasks(updated)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, "- [x] one\n- [x] two", updated.Body)
}

func TestStore_ToggleTasks_NoTasks(t *testing.T) {
	s, _ := newTestStore(t)
	e, err := s.Append("just words")
	require.NoError(t, err)
	before := readFile(t, e.Path)

	updated, n, err := s.ToggleTasks(e)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, e, updated)
	require.Equal(t, before, readFile(t, e.Path))
}

func TestStore_ToggleTasks_InlineEntry(t *testing.T) {
	s, clock := newTestStore(t)
	require.NoError(t, s.EnsureDir())
	path := s.PathFor(clock.t)
	require.NoError(t, os.WriteFile(path, []byte("[08:00:00] - [ ] coffee\n- [ ] tea\n"), 0o600))

	entries, err := s.Today()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, n, err := s.ToggleTasks(entries[0])
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, "[08:00:00] - [x] coffee\n- [x] tea\n", readFile(t, path))
}

func TestStore_ToggleTasks_RejectsStaleEntry(t *testing.T) {
	s, _ := newTestStore(t)
	e, err := s.Append("- [ ] one")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(e.Path, []byte("## [10:00:00]\n- [ ] other\n"), 0o600))

	_, _, err = s.ToggleTasks(e)
	require.ErrorIs(t, err, ErrEntryChanged)
	require.Equal(t, "## [10:00:00]\n- [ ] other\n", readFile(t, e.Path))
}
