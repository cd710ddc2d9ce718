// Package vimtextarea provides the modal editing engine behind the composer.
//
// A Session interprets key events as vim commands against a text buffer:
// motions, operators applied to text objects, counts, a yank buffer and
// snapshot-based undo. Model wraps a Session as a Bubble Tea component.
package vimtextarea

// Mode represents the current vim editing mode.
type Mode int

const (
	// ModeNormal is the default vim mode for navigation and commands.
	ModeNormal Mode = iota
	// ModeInsert is the mode for inserting text.
	ModeInsert
	// ModeVisual is character-wise visual selection.
	ModeVisual
	// ModeVisualLine is line-wise visual selection.
	ModeVisualLine
	// ModeVisualBlock is rectangular visual selection.
	ModeVisualBlock
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeVisualLine:
		return "VISUAL LINE"
	case ModeVisualBlock:
		return "VISUAL BLOCK"
	default:
		return "UNKNOWN"
	}
}

// IsVisual reports whether m is one of the visual modes.
func (m Mode) IsVisual() bool {
	return m == ModeVisual || m == ModeVisualLine || m == ModeVisualBlock
}

// VisualKind returns the selection kind of a visual mode.
func (m Mode) VisualKind() (VisualKind, bool) {
	switch m {
	case ModeVisual:
		return VisualChar, true
	case ModeVisualLine:
		return VisualLine, true
	case ModeVisualBlock:
		return VisualBlock, true
	default:
		return VisualChar, false
	}
}

// VisualKind distinguishes the three visual selection shapes.
type VisualKind int

const (
	VisualChar VisualKind = iota
	VisualLine
	VisualBlock
)

// Mode returns the editing mode for this selection kind.
func (k VisualKind) Mode() Mode {
	switch k {
	case VisualLine:
		return ModeVisualLine
	case VisualBlock:
		return ModeVisualBlock
	default:
		return ModeVisual
	}
}

func (k VisualKind) String() string {
	switch k {
	case VisualLine:
		return "line"
	case VisualBlock:
		return "block"
	default:
		return "char"
	}
}

// statusHint is the transient label shown while a visual mode is active.
func statusHint(m Mode) string {
	if !m.IsVisual() {
		return ""
	}
	return "-- " + m.String() + " --"
}

// PendingCommand is the first key of a two-key normal-mode command.
type PendingCommand int

const (
	PendingNone PendingCommand = iota
	PendingDelete
	PendingYank
	PendingChange
	PendingGoToTop
	PendingReplace
)

// key returns the second key that completes the pending command, or "" when
// any character completes it.
func (p PendingCommand) key() string {
	switch p {
	case PendingDelete:
		return "d"
	case PendingYank:
		return "y"
	case PendingChange:
		return "c"
	case PendingGoToTop:
		return "g"
	default:
		return ""
	}
}

func (p PendingCommand) String() string {
	switch p {
	case PendingDelete:
		return "d"
	case PendingYank:
		return "y"
	case PendingChange:
		return "c"
	case PendingGoToTop:
		return "g"
	case PendingReplace:
		return "r"
	default:
		return ""
	}
}
