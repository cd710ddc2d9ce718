package vimtextarea

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestInsertEntry tests where each insert command puts the cursor.
func TestInsertEntry(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		keys  string
		want  Position
	}{
		{"i keeps column", []string{"abc"}, "li", pos(0, 1)},
		{"a moves after cursor", []string{"abc"}, "a", pos(0, 1)},
		{"a on empty line", []string{""}, "a", pos(0, 0)},
		{"I goes to first non-blank", []string{"   x"}, "$I", pos(0, 3)},
		{"I on blank line goes to end", []string{"   "}, "I", pos(0, 3)},
		{"A goes past last char", []string{"abc"}, "A", pos(0, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(tt.lines...)
			eff := typeKeys(s, tt.keys)
			require.Equal(t, ModeInsert, s.Mode())
			require.True(t, eff.ModeChanged)
			require.Equal(t, ModeNormal, eff.Previous)
			require.Equal(t, tt.want, s.Cursor())
		})
	}
}

// TestInsert_TypeAndEscape tests typed text lands at the cursor and Esc clamps.
func TestInsert_TypeAndEscape(t *testing.T) {
	s := newTestSession("abc")
	typeKeys(s, "A")
	require.Equal(t, pos(0, 3), s.Cursor())

	require.True(t, typeKeysAny(s, "de"))
	require.Equal(t, []string{"abcde"}, bufLines(s))

	eff := typeKeys(s, "<escape>")
	require.Equal(t, ModeNormal, s.Mode())
	require.Equal(t, ModeInsert, eff.Previous)
	require.Equal(t, pos(0, 4), s.Cursor())
}

// TestInsert_SpecialKeys tests newline, tab, backspace and word deletion.
func TestInsert_SpecialKeys(t *testing.T) {
	s := newTestSession()
	typeKeys(s, "ifoo bar<ctrl+w>baz<enter>x<tab>y<backspace>")
	require.Equal(t, []string{"foo baz", "x  "}, bufLines(s))

	typeKeys(s, "<backspace><backspace><backspace><backspace>")
	require.Equal(t, []string{"foo baz"}, bufLines(s))
	require.Equal(t, pos(0, 7), s.Cursor())
}

// TestInsert_SpaceTypesSpace tests the space key inserts text in Insert mode.
func TestInsert_SpaceTypesSpace(t *testing.T) {
	s := newTestSession()
	typeKeys(s, "ia b")
	require.Equal(t, []string{"a b"}, bufLines(s))
}

// TestInsert_ArrowsCrossLines tests Insert-mode arrows wrap between lines.
func TestInsert_ArrowsCrossLines(t *testing.T) {
	s := newTestSession("ab", "cd")
	typeKeys(s, "ji<left>")
	require.Equal(t, pos(0, 2), s.Cursor())

	typeKeys(s, "<right>")
	require.Equal(t, pos(1, 0), s.Cursor())

	typeKeys(s, "<end>")
	require.Equal(t, pos(1, 2), s.Cursor())

	typeKeys(s, "<home>")
	require.Equal(t, pos(1, 0), s.Cursor())
}

// TestInsert_NormalKeysAreText tests Normal-mode bindings type themselves in Insert mode.
func TestInsert_NormalKeysAreText(t *testing.T) {
	s := newTestSession()
	typeKeys(s, "iddx0")
	require.Equal(t, []string{"ddx0"}, bufLines(s))
	require.Equal(t, ModeInsert, s.Mode())
}

// TestOpenBelow tests o opens a line and the whole session undoes as one step.
func TestOpenBelow(t *testing.T) {
	s := newTestSession("a", "b")
	typeKeys(s, "o")
	require.Equal(t, []string{"a", "", "b"}, bufLines(s))
	require.Equal(t, pos(1, 0), s.Cursor())
	require.Equal(t, ModeInsert, s.Mode())

	typeKeys(s, "new<escape>")
	require.Equal(t, []string{"a", "new", "b"}, bufLines(s))
	require.Equal(t, 1, s.History().UndoDepth())

	typeKeys(s, "u")
	require.Equal(t, []string{"a", "b"}, bufLines(s))
}

// TestOpenBelow_LastLine tests o on the last line appends a line.
func TestOpenBelow_LastLine(t *testing.T) {
	s := newTestSession("a")
	typeKeys(s, "o")
	require.Equal(t, []string{"a", ""}, bufLines(s))
	require.Equal(t, pos(1, 0), s.Cursor())
}

// TestOpenAbove tests O opens a line above the cursor.
func TestOpenAbove(t *testing.T) {
	s := newTestSession("a", "b")
	typeKeys(s, "jO")
	require.Equal(t, []string{"a", "", "b"}, bufLines(s))
	require.Equal(t, pos(1, 0), s.Cursor())

	typeKeys(s, "<escape>")
	require.True(t, s.History().CanUndo(), "the opened line is itself a change")
}

// TestVisual_EnterAndToggle tests v enters, v again leaves, and the hint shows.
func TestVisual_EnterAndToggle(t *testing.T) {
	s := newTestSession("abc")
	typeKeys(s, "l")

	eff := typeKeys(s, "v")
	require.Equal(t, ModeVisual, s.Mode())
	require.True(t, eff.ModeChanged)
	require.Equal(t, ModeNormal, eff.Previous)
	anchor, ok := s.VisualAnchor()
	require.True(t, ok)
	require.Equal(t, pos(0, 1), anchor)
	require.Equal(t, "-- VISUAL --", s.StatusHint())

	typeKeys(s, "v")
	require.Equal(t, ModeNormal, s.Mode())
	_, ok = s.VisualAnchor()
	require.False(t, ok)
	require.Empty(t, s.StatusHint())
}

// TestVisual_HintClearsOnNextKey tests the mode label is transient.
func TestVisual_HintClearsOnNextKey(t *testing.T) {
	s := newTestSession("abc")
	typeKeys(s, "V")
	require.Equal(t, "-- VISUAL LINE --", s.StatusHint())

	typeKeys(s, "l")
	require.Empty(t, s.StatusHint())
	require.Equal(t, ModeVisualLine, s.Mode())
}

// TestVisual_SwitchKindKeepsAnchor tests v then V keeps the original anchor.
func TestVisual_SwitchKindKeepsAnchor(t *testing.T) {
	s := newTestSession("abc", "def")
	typeKeys(s, "vjV")
	require.Equal(t, ModeVisualLine, s.Mode())
	anchor, _ := s.VisualAnchor()
	require.Equal(t, pos(0, 0), anchor)

	typeKeys(s, "<ctrl+v>")
	require.Equal(t, ModeVisualBlock, s.Mode())
	require.Equal(t, "-- VISUAL BLOCK --", s.StatusHint())
}

// TestVisual_Escape tests Esc leaves visual mode without touching content.
func TestVisual_Escape(t *testing.T) {
	s := newTestSession("abc")
	eff := typeKeys(s, "vl<escape>")
	require.Equal(t, ModeNormal, s.Mode())
	require.Equal(t, ModeVisual, eff.Previous)
	require.False(t, eff.Modified)
	require.Equal(t, pos(0, 1), s.Cursor())
}

// TestVisual_CharDelete tests a character selection deletes inclusively.
func TestVisual_CharDelete(t *testing.T) {
	s := newTestSession("hello world")
	eff := typeKeys(s, "wvlld")
	require.True(t, eff.Modified)
	require.Equal(t, ModeNormal, s.Mode())
	require.Equal(t, []string{"hello ld"}, bufLines(s))
	require.Equal(t, YankBuffer{Text: "wor"}, s.Yank())
	require.Equal(t, pos(0, 6), s.Cursor())
}

// TestVisual_BackwardSelection tests a selection made leftward is normalized.
func TestVisual_BackwardSelection(t *testing.T) {
	s := newTestSession("abcdef")
	typeKeys(s, "$vhhy")
	require.Equal(t, "def", s.Yank().Text)
	require.Equal(t, pos(0, 3), s.Cursor())
}

// TestVisual_Count tests counts apply to motions inside visual mode.
func TestVisual_Count(t *testing.T) {
	s := newTestSession("abcdef")
	typeKeys(s, "v3lx")
	require.Equal(t, []string{"ef"}, bufLines(s))
}

// TestVisual_LineDelete tests V deletes whole lines.
func TestVisual_LineDelete(t *testing.T) {
	s := newTestSession("a", "b", "c")
	typeKeys(s, "Vjd")
	require.Equal(t, []string{"c"}, bufLines(s))
	require.Equal(t, YankBuffer{Text: "a\nb\n", Linewise: true}, s.Yank())
	require.Equal(t, pos(0, 0), s.Cursor())
}

// TestVisual_LineDeleteToEnd tests V through the last line joins upward.
func TestVisual_LineDeleteToEnd(t *testing.T) {
	s := newTestSession("a", "b", "c")
	typeKeys(s, "jVjd")
	require.Equal(t, []string{"a"}, bufLines(s))
	require.Equal(t, "b\nc\n", s.Yank().Text)
}

// TestVisual_BlockDelete tests a block delete removes the same columns from every row.
func TestVisual_BlockDelete(t *testing.T) {
	s := newTestSession("abcd", "efgh", "ijkl")
	typeKeys(s, "l<ctrl+v>jjld")
	require.Equal(t, []string{"ad", "eh", "il"}, bufLines(s))
	require.Equal(t, "bc\nfg\njk", s.Yank().Text)
	require.Equal(t, pos(0, 1), s.Cursor())

	typeKeys(s, "u")
	require.Equal(t, []string{"abcd", "efgh", "ijkl"}, bufLines(s))
}

// TestVisual_BlockShortRow tests a row shorter than the block is left alone
// and adds nothing to the yank.
func TestVisual_BlockShortRow(t *testing.T) {
	s := newTestSession("abcd", "e", "ijkl")
	typeKeys(s, "l<ctrl+v>jjld")
	require.Equal(t, []string{"ad", "e", "il"}, bufLines(s))
	require.Equal(t, "bc\njk", s.Yank().Text)
}

// TestVisual_Swap tests o moves the cursor to the other end.
func TestVisual_Swap(t *testing.T) {
	s := newTestSession("abcdef")
	typeKeys(s, "vllo")
	require.Equal(t, pos(0, 0), s.Cursor())
	anchor, _ := s.VisualAnchor()
	require.Equal(t, pos(0, 2), anchor)

	typeKeys(s, "y")
	require.Equal(t, "abc", s.Yank().Text)
}

// TestVisual_Change tests c replaces the selection and one undo restores it.
func TestVisual_Change(t *testing.T) {
	s := newTestSession("abc")
	eff := typeKeys(s, "vlc")
	require.Equal(t, ModeInsert, s.Mode())
	require.True(t, eff.ModeChanged)
	require.Equal(t, ModeVisual, eff.Previous)
	require.Equal(t, []string{"c"}, bufLines(s))

	typeKeys(s, "X<escape>")
	require.Equal(t, []string{"Xc"}, bufLines(s))

	typeKeys(s, "u")
	require.Equal(t, []string{"abc"}, bufLines(s))
}

// TestVisual_GoToTop tests gg works as a motion inside visual mode.
func TestVisual_GoToTop(t *testing.T) {
	s := newTestSession("a", "b", "c")
	typeKeys(s, "GVggd")
	require.Equal(t, []string{""}, bufLines(s))
}

// TestHandleVisual_EntersRequestedKind tests calling HandleVisual from Normal.
func TestHandleVisual_EntersRequestedKind(t *testing.T) {
	s := newTestSession("abc")
	eff := s.HandleVisual(RuneKey('l'), VisualLine)
	require.True(t, eff.ModeChanged)
	require.Equal(t, ModeVisualLine, s.Mode())
	require.Equal(t, pos(0, 1), s.Cursor())
}
