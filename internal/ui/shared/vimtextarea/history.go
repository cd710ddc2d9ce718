package vimtextarea

import "slices"

// DefaultUndoLimit is the number of undo steps kept when none is configured.
const DefaultUndoLimit = 200

// snapshot is the full buffer state before an edit.
type snapshot struct {
	lines  []string
	cursor Position
}

func takeSnapshot(buf Buffer) snapshot {
	return snapshot{lines: slices.Clone(buf.Lines()), cursor: buf.Cursor()}
}

// History holds undo and redo snapshots.
//
// An insert group collapses an Insert-mode session into one undo step: the
// snapshot taken when the group begins is pushed when it is committed, and
// only if the lines actually changed.
type History struct {
	undo  []snapshot
	redo  []snapshot
	limit int
	group *snapshot
}

// NewHistory creates an empty history keeping at most limit undo steps.
// A limit of zero or less means unlimited.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// push records an undo step and invalidates redo.
func (h *History) push(s snapshot) {
	h.undo = append(h.undo, s)
	if h.limit > 0 && len(h.undo) > h.limit {
		h.undo = slices.Delete(h.undo, 0, len(h.undo)-h.limit)
	}
	h.redo = h.redo[:0]
}

// beginGroup opens an insert group. Returns false when one is already open.
func (h *History) beginGroup(s snapshot) bool {
	if h.group != nil {
		return false
	}
	h.group = &s
	return true
}

// commitGroup closes the open insert group against the current lines.
// Returns whether an undo step was recorded.
func (h *History) commitGroup(current []string) bool {
	if h.group == nil {
		return false
	}
	s := *h.group
	h.group = nil
	if slices.Equal(s.lines, current) {
		return false
	}
	h.push(s)
	return true
}

// InGroup reports whether an insert group is open.
func (h *History) InGroup() bool {
	return h.group != nil
}

// undoStep pops the newest undo snapshot, saving current for redo.
func (h *History) undoStep(current snapshot) (snapshot, bool) {
	if len(h.undo) == 0 {
		return snapshot{}, false
	}
	s := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return s, true
}

// redoStep pops the newest redo snapshot, saving current for undo.
func (h *History) redoStep(current snapshot) (snapshot, bool) {
	if len(h.redo) == 0 {
		return snapshot{}, false
	}
	s := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return s, true
}

// CanUndo returns true if there are snapshots to undo.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo returns true if there are snapshots to redo.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoDepth returns the number of undo steps available.
func (h *History) UndoDepth() int {
	return len(h.undo)
}

// Clear discards all history, including an open group.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
	h.group = nil
}
