package textbuffer

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// GraphemeCount returns the number of grapheme clusters in a string.
// For example: "hello" = 5, "h😀llo" = 5, "한글" = 2.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Graphemes splits s into its grapheme clusters.
func Graphemes(s string) []string {
	out := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		out = append(out, cluster)
	}
	return out
}

// GraphemeToByteOffset converts a grapheme index to byte offset.
// Returns len(s) if graphemeIdx >= grapheme count and 0 if graphemeIdx <= 0.
func GraphemeToByteOffset(s string, graphemeIdx int) int {
	if graphemeIdx <= 0 {
		return 0
	}

	idx := 0
	state := -1
	original := s
	for len(s) > 0 {
		_, rest, _, newState := uniseg.StepString(s, state)
		idx++
		if idx == graphemeIdx {
			return len(original) - len(rest)
		}
		s = rest
		state = newState
	}
	return len(original)
}

// SliceByGraphemes returns the substring from grapheme index start to end (exclusive).
func SliceByGraphemes(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}
	startByte := GraphemeToByteOffset(s, start)
	endByte := GraphemeToByteOffset(s, end)
	return s[startByte:endByte]
}

// DisplayWidth returns the width of s in terminal cells (CJK and emoji count as 2).
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// WordClass groups graphemes for word boundaries.
type WordClass int

const (
	ClassSpace WordClass = iota
	ClassWord
	ClassPunct
)

// ClassOf classifies a grapheme cluster by its first rune. Letters, digits and
// underscore are word characters.
func ClassOf(cluster string) WordClass {
	for _, r := range cluster {
		switch {
		case unicode.IsSpace(r):
			return ClassSpace
		case r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r):
			return ClassWord
		default:
			return ClassPunct
		}
	}
	return ClassSpace
}
