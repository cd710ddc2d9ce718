package vimtextarea

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/daybook/internal/textbuffer"
)

// newTestSession creates a Normal-mode session over the given lines with the
// cursor at (0, 0).
func newTestSession(lines ...string) *Session {
	return NewSession(textbuffer.New(lines...))
}

// parseKeys turns "3dd<escape>" into keys. Angle-bracketed names are named
// keys; everything else is one key per character.
func parseKeys(seq string) []Key {
	var keys []Key
	for i := 0; i < len(seq); {
		if seq[i] == '<' {
			if j := strings.IndexByte(seq[i:], '>'); j > 1 {
				keys = append(keys, NamedKey(seq[i:i+j+1]))
				i += j + 1
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(seq[i:])
		keys = append(keys, RuneKey(r))
		i += size
	}
	return keys
}

// typeKeys feeds seq to the session and returns the effect of the last key.
func typeKeys(s *Session, seq string) Effect {
	var eff Effect
	for _, k := range parseKeys(seq) {
		eff = s.HandleKey(k)
	}
	return eff
}

// typeKeysAny feeds seq and reports whether any key modified the buffer.
func typeKeysAny(s *Session, seq string) bool {
	modified := false
	for _, k := range parseKeys(seq) {
		if s.HandleKey(k).Modified {
			modified = true
		}
	}
	return modified
}

func bufLines(s *Session) []string {
	return s.Buffer().Lines()
}

func pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// collectMsgs runs cmd and flattens any batch into its messages.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func runeMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
