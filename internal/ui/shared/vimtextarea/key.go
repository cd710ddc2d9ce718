package vimtextarea

import (
	"regexp"

	tea "github.com/charmbracelet/bubbletea"
)

// Registry names for non-printable keys.
const (
	keyEscape    = "<escape>"
	keyEnter     = "<enter>"
	keyAltEnter  = "<alt+enter>"
	keyBackspace = "<backspace>"
	keyDelete    = "<delete>"
	keySpace     = "<space>"
	keyTab       = "<tab>"
	keyLeft      = "<left>"
	keyRight     = "<right>"
	keyUp        = "<up>"
	keyDown      = "<down>"
	keyHome      = "<home>"
	keyEnd       = "<end>"
	keyCtrlR     = "<ctrl+r>"
	keyCtrlV     = "<ctrl+v>"
	keyCtrlW     = "<ctrl+w>"
	keyCtrlU     = "<ctrl+u>"
	keyRunes     = "<runes>"
)

// mouseEscapePattern matches SGR mouse tracking sequences that weren't parsed by bubbletea.
// These look like "[<65;87;15M" or "<65;87;15M" (CSI < Pb ; Px ; Py M/m format).
var mouseEscapePattern = regexp.MustCompile(`^\[?<\d+;\d+;\d+[Mm]$`)

func isMouseEscapeSequence(runes []rune) bool {
	if len(runes) < 6 {
		return false
	}
	return mouseEscapePattern.MatchString(string(runes))
}

// Key is a single key event as the engine sees it.
//
// Name is the registry name: the character itself for a single printable rune
// ("h", "3", "$") and an angle-bracketed name otherwise ("<escape>",
// "<ctrl+r>"). Runes carries the text the key would type, if any.
type Key struct {
	Name  string
	Runes []rune
}

// RuneKey builds the key for a single printable character.
func RuneKey(r rune) Key {
	if r == ' ' {
		return Key{Name: keySpace, Runes: []rune{' '}}
	}
	return Key{Name: string(r), Runes: []rune{r}}
}

// NamedKey builds a key that types nothing, such as "<escape>".
func NamedKey(name string) Key {
	return Key{Name: name}
}

// KeyFromMsg converts a Bubble Tea key message to an engine key.
// The returned key has an empty Name for keys the engine never handles.
func KeyFromMsg(msg tea.KeyMsg) Key {
	if msg.Alt && msg.Type == tea.KeyEnter {
		return NamedKey(keyAltEnter)
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt || isMouseEscapeSequence(msg.Runes) {
			return Key{}
		}
		if len(msg.Runes) == 1 {
			return RuneKey(msg.Runes[0])
		}
		return Key{Name: keyRunes, Runes: msg.Runes}
	case tea.KeySpace:
		return RuneKey(' ')
	case tea.KeyEscape:
		return NamedKey(keyEscape)
	case tea.KeyEnter:
		return NamedKey(keyEnter)
	case tea.KeyBackspace:
		return NamedKey(keyBackspace)
	case tea.KeyDelete:
		return NamedKey(keyDelete)
	case tea.KeyTab:
		return NamedKey(keyTab)
	case tea.KeyCtrlR:
		return NamedKey(keyCtrlR)
	case tea.KeyCtrlV:
		return NamedKey(keyCtrlV)
	case tea.KeyCtrlW:
		return NamedKey(keyCtrlW)
	case tea.KeyCtrlU:
		return NamedKey(keyCtrlU)
	case tea.KeyLeft:
		return NamedKey(keyLeft)
	case tea.KeyRight:
		return NamedKey(keyRight)
	case tea.KeyUp:
		return NamedKey(keyUp)
	case tea.KeyDown:
		return NamedKey(keyDown)
	case tea.KeyHome:
		return NamedKey(keyHome)
	case tea.KeyEnd:
		return NamedKey(keyEnd)
	default:
		return Key{}
	}
}

// char returns the single character this key types.
func (k Key) char() (rune, bool) {
	if len(k.Runes) != 1 {
		return 0, false
	}
	return k.Runes[0], true
}

// digit returns the count digit this key represents.
func (k Key) digit() (int, bool) {
	if len(k.Name) != 1 || k.Name[0] < '0' || k.Name[0] > '9' {
		return 0, false
	}
	return int(k.Name[0] - '0'), true
}

func (k Key) String() string {
	return k.Name
}
