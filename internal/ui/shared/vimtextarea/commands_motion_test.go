package vimtextarea

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMoveLeftRight tests h and l stay on the line and off the end.
func TestMoveLeftRight(t *testing.T) {
	s := newTestSession("abc")

	typeKeys(s, "h")
	require.Equal(t, pos(0, 0), s.Cursor())

	typeKeys(s, "llll")
	require.Equal(t, pos(0, 2), s.Cursor(), "Normal mode cursor rests on the last character")

	typeKeys(s, "<left>")
	require.Equal(t, pos(0, 1), s.Cursor())
}

// TestMoveRight_Count tests 10l moves ten columns.
func TestMoveRight_Count(t *testing.T) {
	s := newTestSession("abcdefghijkl")
	typeKeys(s, "10l")
	require.Equal(t, pos(0, 10), s.Cursor())
}

// TestMoveUpDown_PreferredColumn tests j/k remember the column across short lines.
func TestMoveUpDown_PreferredColumn(t *testing.T) {
	s := newTestSession("abcdef", "ab", "abcdef")
	typeKeys(s, "4l")
	require.Equal(t, pos(0, 4), s.Cursor())

	typeKeys(s, "j")
	require.Equal(t, pos(1, 1), s.Cursor())

	typeKeys(s, "j")
	require.Equal(t, pos(2, 4), s.Cursor())

	typeKeys(s, "2k")
	require.Equal(t, pos(0, 4), s.Cursor())
}

// TestMoveDown_CountClamps tests 5j stops at the last line.
func TestMoveDown_CountClamps(t *testing.T) {
	s := newTestSession("a", "b", "c")
	typeKeys(s, "5j")
	require.Equal(t, 2, s.Cursor().Row)
}

// TestLineStartAndEnd tests 0, ^ and $.
func TestLineStartAndEnd(t *testing.T) {
	s := newTestSession("   indented text")

	typeKeys(s, "$")
	require.Equal(t, pos(0, 15), s.Cursor())

	typeKeys(s, "0")
	require.Equal(t, pos(0, 0), s.Cursor())

	typeKeys(s, "^")
	require.Equal(t, pos(0, 3), s.Cursor())
}

// TestLineEnd_WideCharacters tests $ counts graphemes, not bytes.
func TestLineEnd_WideCharacters(t *testing.T) {
	s := newTestSession("a한b")
	typeKeys(s, "$")
	require.Equal(t, pos(0, 2), s.Cursor())
}

// TestGoToLine tests G, nG, gg and ngg.
func TestGoToLine(t *testing.T) {
	s := newTestSession("one", "  two", "three", "four")

	typeKeys(s, "G")
	require.Equal(t, pos(3, 0), s.Cursor())

	typeKeys(s, "2G")
	require.Equal(t, pos(1, 2), s.Cursor())

	typeKeys(s, "gg")
	require.Equal(t, pos(0, 0), s.Cursor())

	typeKeys(s, "3gg")
	require.Equal(t, pos(2, 0), s.Cursor())

	typeKeys(s, "99G")
	require.Equal(t, pos(3, 0), s.Cursor())
}

// TestWordMotions_Keys tests w, b and e through the key dispatcher.
func TestWordMotions_Keys(t *testing.T) {
	s := newTestSession("foo bar baz")

	typeKeys(s, "w")
	require.Equal(t, pos(0, 4), s.Cursor())

	typeKeys(s, "e")
	require.Equal(t, pos(0, 6), s.Cursor())

	typeKeys(s, "2b")
	require.Equal(t, pos(0, 0), s.Cursor())

	typeKeys(s, "2w")
	require.Equal(t, pos(0, 8), s.Cursor())
}

// TestNextWordStart tests the w resolver.
func TestNextWordStart(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		from    Position
		bigWord bool
		want    Position
	}{
		{"next word", []string{"foo bar baz"}, pos(0, 0), false, pos(0, 4)},
		{"last word lands on last char", []string{"foo bar baz"}, pos(0, 8), false, pos(0, 10)},
		{"punctuation is its own word", []string{"foo.bar"}, pos(0, 0), false, pos(0, 3)},
		{"WORD spans punctuation", []string{"foo.bar baz"}, pos(0, 0), true, pos(0, 8)},
		{"crosses line break", []string{"foo", "bar"}, pos(0, 0), false, pos(1, 0)},
		{"stops on empty line", []string{"foo", "", "bar"}, pos(0, 0), false, pos(1, 0)},
		{"leaves empty line", []string{"foo", "", "bar"}, pos(1, 0), false, pos(2, 0)},
		{"skips leading whitespace", []string{"a   b"}, pos(0, 1), false, pos(0, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, nextWordStart(tt.lines, tt.from, tt.bigWord))
		})
	}
}

// TestPrevWordStart tests the b resolver.
func TestPrevWordStart(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		from    Position
		bigWord bool
		want    Position
	}{
		{"previous word", []string{"foo bar"}, pos(0, 4), false, pos(0, 0)},
		{"start of current word", []string{"foo bar"}, pos(0, 6), false, pos(0, 4)},
		{"buffer start", []string{"foo"}, pos(0, 0), false, pos(0, 0)},
		{"skips run of spaces", []string{"foo   bar"}, pos(0, 6), false, pos(0, 0)},
		{"stops on empty line", []string{"foo", "", "bar"}, pos(2, 0), false, pos(1, 0)},
		{"leaves empty line", []string{"foo", "", "bar"}, pos(1, 0), false, pos(0, 0)},
		{"WORD spans punctuation", []string{"foo.bar"}, pos(0, 6), true, pos(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, prevWordStart(tt.lines, tt.from, tt.bigWord))
		})
	}
}

// TestNextWordEnd tests the e resolver.
func TestNextWordEnd(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		from    Position
		bigWord bool
		want    Position
	}{
		{"end of current word", []string{"foo bar"}, pos(0, 0), false, pos(0, 2)},
		{"end of next word", []string{"foo bar"}, pos(0, 2), false, pos(0, 6)},
		{"no later word stays", []string{"foo bar"}, pos(0, 6), false, pos(0, 6)},
		{"skips empty lines", []string{"foo", "", "bar"}, pos(0, 2), false, pos(2, 2)},
		{"punctuation run", []string{"a..b"}, pos(0, 0), false, pos(0, 2)},
		{"WORD spans punctuation", []string{"a..b c"}, pos(0, 0), true, pos(0, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, nextWordEnd(tt.lines, tt.from, tt.bigWord))
		})
	}
}
