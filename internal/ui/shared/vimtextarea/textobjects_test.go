package vimtextarea

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineObject_Truncates(t *testing.T) {
	lines := []string{"a", "bb", "ccc"}
	obj := lineObject(lines, 1, 10)
	require.Equal(t, TextObject{Kind: ObjectLine, Start: pos(1, 0), End: pos(2, 3)}, obj)
	require.False(t, obj.Empty())
	require.Equal(t, "bb\nccc\n", objectText(lines, obj))
}

func TestLineRemoval(t *testing.T) {
	lines := []string{"a", "bb", "ccc", "d"}
	tests := []struct {
		name     string
		from, to int
		start    Position
		end      Position
	}{
		{"first line takes following break", 0, 0, pos(0, 0), pos(1, 0)},
		{"middle line takes preceding break", 1, 1, pos(0, 1), pos(1, 2)},
		{"last line takes preceding break", 3, 3, pos(2, 3), pos(3, 1)},
		{"range from top", 0, 1, pos(0, 0), pos(2, 0)},
		{"range in middle", 1, 2, pos(1, 0), pos(3, 0)},
		{"range to end", 2, 3, pos(1, 2), pos(3, 1)},
		{"everything", 0, 3, pos(0, 0), pos(3, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := lineRemoval(lines, lineRange(lines, tt.from, tt.to))
			require.Equal(t, tt.start, start)
			require.Equal(t, tt.end, end)
		})
	}
}

func TestCharObject_CrossesLines(t *testing.T) {
	lines := []string{"ab", "cd"}
	obj := charObject(lines, pos(0, 1), 3)
	require.Equal(t, pos(1, 1), obj.End)
	require.Equal(t, "b\nc", objectText(lines, obj))
}

func TestCharObject_StopsAtBufferEnd(t *testing.T) {
	lines := []string{"ab"}
	obj := charObject(lines, pos(0, 1), 5)
	require.Equal(t, pos(0, 2), obj.End)

	empty := charObject([]string{""}, pos(0, 0), 1)
	require.True(t, empty.Empty())
}

func TestCharBeforeObject(t *testing.T) {
	lines := []string{"ab", "cd"}

	obj := charBeforeObject(pos(1, 1), 1)
	require.Equal(t, pos(1, 0), obj.Start)
	require.Equal(t, "c", objectText(lines, obj))

	obj = charBeforeObject(pos(1, 1), 3)
	require.Equal(t, pos(1, 0), obj.Start, "stops at the start of the line")
	require.Equal(t, "c", objectText(lines, obj))

	require.True(t, charBeforeObject(pos(0, 0), 1).Empty())
	require.True(t, charBeforeObject(pos(1, 0), 2).Empty(), "never crosses a line break")
}

func TestLineEndObject(t *testing.T) {
	lines := []string{"abc", "de", "f"}
	obj := lineEndObject(lines, pos(0, 1), 2)
	require.Equal(t, pos(1, 2), obj.End)
	require.Equal(t, "bc\nde", objectText(lines, obj))

	obj = lineEndObject(lines, pos(2, 0), 5)
	require.Equal(t, pos(2, 1), obj.End)
}

func TestVisualObject(t *testing.T) {
	lines := []string{"abcd", "ef", "ghij"}

	t.Run("char is inclusive and ordered", func(t *testing.T) {
		obj := visualObject(lines, VisualChar, pos(2, 1), pos(0, 2))
		require.Equal(t, pos(0, 2), obj.Start)
		require.Equal(t, pos(2, 2), obj.End)
		require.Equal(t, "cd\nef\ngh", objectText(lines, obj))
	})

	t.Run("char at line end includes the break", func(t *testing.T) {
		obj := visualObject([]string{"ab", "c"}, VisualChar, pos(0, 0), pos(0, 2))
		require.Equal(t, pos(1, 0), obj.End)
	})

	t.Run("line ignores columns", func(t *testing.T) {
		obj := visualObject(lines, VisualLine, pos(1, 1), pos(0, 3))
		require.Equal(t, ObjectLine, obj.Kind)
		require.Equal(t, pos(0, 0), obj.Start)
		require.Equal(t, pos(1, 2), obj.End)
	})

	t.Run("block uses min and max columns", func(t *testing.T) {
		obj := visualObject(lines, VisualBlock, pos(0, 3), pos(2, 1))
		require.Equal(t, TextObject{Kind: ObjectBlock, Start: pos(0, 1), End: pos(2, 4)}, obj)
		require.Equal(t, "bcd\nf\nhij", objectText(lines, obj))
	})

	t.Run("block skips rows that end before it", func(t *testing.T) {
		short := []string{"abcd", "e", "", "ghij"}
		obj := visualObject(short, VisualBlock, pos(0, 1), pos(3, 2))
		require.Equal(t, "bc\nhi", objectText(short, obj))
	})
}

func TestTextObject_Empty(t *testing.T) {
	require.True(t, TextObject{Kind: ObjectChar, Start: pos(0, 1), End: pos(0, 1)}.Empty())
	require.False(t, TextObject{Kind: ObjectLine}.Empty())
	require.True(t, TextObject{Kind: ObjectBlock, Start: pos(0, 2), End: pos(1, 2)}.Empty())
}
