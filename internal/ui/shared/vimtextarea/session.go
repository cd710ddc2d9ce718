package vimtextarea

import (
	"github.com/zjrosen/daybook/internal/log"
)

// Effect reports what handling one key did.
type Effect struct {
	// Handled is true when the engine consumed the key.
	Handled bool
	// Modified is true when the buffer content changed.
	Modified bool
	// ModeChanged is true when the mode differs from Previous.
	ModeChanged bool
	// Previous is the mode before the key, valid when ModeChanged is set.
	Previous Mode
}

// YankBuffer is the engine's unnamed register.
type YankBuffer struct {
	Text     string
	Linewise bool
}

// Option configures a Session.
type Option func(*Session)

// WithUndoLimit caps the number of undo steps kept. Zero or less is unlimited.
func WithUndoLimit(limit int) Option {
	return func(s *Session) {
		s.history = NewHistory(limit)
	}
}

// WithMode sets the starting mode.
func WithMode(mode Mode) Option {
	return func(s *Session) {
		s.mode = mode
	}
}

// WithRegistry replaces the key bindings.
func WithRegistry(r *CommandRegistry) Option {
	return func(s *Session) {
		s.registry = r
	}
}

// Session is the modal editing state machine for one buffer.
type Session struct {
	buf      Buffer
	registry *CommandRegistry
	history  *History

	mode         Mode
	pending      PendingCommand
	count        int
	anchor       *Position
	yank         YankBuffer
	preferredCol int
	hint         string

	effect Effect
}

// NewSession creates a session editing buf, starting in Normal mode.
func NewSession(buf Buffer, opts ...Option) *Session {
	s := &Session{
		buf:      buf,
		registry: DefaultRegistry,
		history:  NewHistory(DefaultUndoLimit),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.mode.IsVisual() {
		a := buf.Cursor()
		s.anchor = &a
		s.hint = statusHint(s.mode)
	}
	if s.mode == ModeInsert {
		s.history.beginGroup(takeSnapshot(buf))
	}
	return s
}

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Buffer returns the edited buffer.
func (s *Session) Buffer() Buffer { return s.buf }

// Cursor returns the buffer cursor.
func (s *Session) Cursor() Position { return s.buf.Cursor() }

// Yank returns the yank buffer.
func (s *Session) Yank() YankBuffer { return s.yank }

// Pending returns the pending two-key command, if any.
func (s *Session) Pending() PendingCommand { return s.pending }

// Count returns the numeric prefix typed so far, zero when none.
func (s *Session) Count() int { return s.count }

// VisualAnchor returns the fixed end of the selection in visual modes.
func (s *Session) VisualAnchor() (Position, bool) {
	if s.anchor == nil {
		return Position{}, false
	}
	return *s.anchor, true
}

// StatusHint returns the transient mode label, empty when none is showing.
func (s *Session) StatusHint() string { return s.hint }

// History exposes the undo history.
func (s *Session) History() *History { return s.history }

// Reset empties the buffer and returns to mode, discarding undo history.
// The yank buffer survives.
func (s *Session) Reset(mode Mode) {
	s.history.Clear()
	s.buf.Restore([]string{""}, Position{})
	s.pending, s.count = PendingNone, 0
	s.anchor = nil
	s.preferredCol = 0
	s.mode = mode
	s.hint = statusHint(mode)
	if mode.IsVisual() {
		a := s.buf.Cursor()
		s.anchor = &a
	}
	if mode == ModeInsert {
		s.history.beginGroup(takeSnapshot(s.buf))
	}
}

// SetContent replaces the buffer content, discarding undo history.
func (s *Session) SetContent(lines []string, cursor Position) {
	s.history.Clear()
	s.buf.Restore(lines, cursor)
	s.pending, s.count = PendingNone, 0
	if s.mode == ModeInsert {
		s.history.beginGroup(takeSnapshot(s.buf))
	} else {
		s.clampNormal()
	}
	if s.mode.IsVisual() {
		a := s.buf.Cursor()
		s.anchor = &a
	}
}

// HandleKey dispatches key according to the current mode.
func (s *Session) HandleKey(key Key) Effect {
	switch s.mode {
	case ModeInsert:
		return s.HandleInsert(key)
	case ModeNormal:
		return s.HandleNormal(key)
	default:
		kind, _ := s.mode.VisualKind()
		return s.HandleVisual(key, kind)
	}
}

// HandleNormal interprets key as Normal-mode input.
func (s *Session) HandleNormal(key Key) Effect {
	s.begin()
	s.normal(key)
	return s.effect
}

// HandleInsert interprets key as Insert-mode input.
func (s *Session) HandleInsert(key Key) Effect {
	s.begin()
	s.insert(key)
	return s.effect
}

// HandleVisual interprets key as visual-mode input for the given selection
// kind. A session not already in that visual mode enters it first.
func (s *Session) HandleVisual(key Key, kind VisualKind) Effect {
	s.begin()
	if s.mode != kind.Mode() {
		s.setMode(kind.Mode())
	}
	s.visual(key)
	return s.effect
}

// MaxCount caps a typed count. Further digits keep the count at the cap.
const MaxCount = 9999

func (s *Session) addDigit(d int) {
	s.count = min(s.count*10+d, MaxCount)
}

func (s *Session) begin() {
	s.effect = Effect{Previous: s.mode}
}

func (s *Session) normal(key Key) {
	if s.pending == PendingReplace {
		s.pending = PendingNone
		count := s.takeCount()
		if r, ok := key.char(); ok {
			s.replaceChar(r, count)
			s.effect.Handled = true
			return
		}
	}

	if d, ok := key.digit(); ok && (d != 0 || s.count > 0) {
		s.addDigit(d)
		s.effect.Handled = true
		return
	}

	if s.pending != PendingNone {
		if s.completePending(key) {
			s.effect.Handled = true
			return
		}
		s.pending, s.count = PendingNone, 0
	}

	s.dispatch(ModeNormal, key)
}

func (s *Session) visual(key Key) {
	s.hint = ""

	if d, ok := key.digit(); ok && (d != 0 || s.count > 0) {
		s.addDigit(d)
		s.effect.Handled = true
		return
	}

	if s.pending != PendingNone {
		if s.completePending(key) {
			s.effect.Handled = true
			return
		}
		s.pending, s.count = PendingNone, 0
	}

	s.dispatch(s.mode, key)
}

func (s *Session) insert(key Key) {
	if cmd, ok := s.registry.Get(ModeInsert, key.Name); ok {
		s.execute(cmd, 0)
		return
	}
	if len(key.Runes) > 0 {
		s.buf.InsertStr(string(key.Runes))
		s.effect.Handled = true
		s.effect.Modified = true
		s.syncPreferredCol()
	}
}

// dispatch runs the command bound to key in mode. Unknown keys are ignored
// and clear any count.
func (s *Session) dispatch(mode Mode, key Key) {
	cmd, ok := s.registry.Get(mode, key.Name)
	if !ok {
		s.count = 0
		return
	}
	s.execute(cmd, s.takeCount())
}

func (s *Session) execute(cmd Command, count int) {
	result := cmd.Execute(s, count)
	if result == PassThrough {
		return
	}
	s.effect.Handled = true
	if result == Skipped {
		log.Debug(log.CatEditor, "command skipped", "id", cmd.ID(), "mode", s.mode.String())
	}
}

func (s *Session) takeCount() int {
	c := s.count
	s.count = 0
	return c
}

// startPending begins a two-key command, keeping count for the second key.
func (s *Session) startPending(p PendingCommand, count int) ExecuteResult {
	s.pending = p
	s.count = count
	return Executed
}

// completePending finishes a pending command when key is its second key.
func (s *Session) completePending(key Key) bool {
	p := s.pending
	if key.Name != p.key() {
		return false
	}
	s.pending = PendingNone
	count := s.takeCount()

	switch p {
	case PendingGoToTop:
		row := 0
		if count > 0 {
			row = min(count-1, len(s.buf.Lines())-1)
		}
		s.moveToLine(row)
	case PendingDelete:
		s.perform(s.applyOperator(OpDelete, lineObject(s.buf.Lines(), s.buf.Cursor().Row, count)))
	case PendingYank:
		s.perform(s.applyOperator(OpYank, lineObject(s.buf.Lines(), s.buf.Cursor().Row, count)))
	case PendingChange:
		s.perform(s.applyOperator(OpChange, lineObject(s.buf.Lines(), s.buf.Cursor().Row, count)))
	}
	return true
}

// setMode performs a mode transition and its side effects.
func (s *Session) setMode(mode Mode) {
	prev := s.mode
	if prev == mode {
		return
	}
	if prev == ModeInsert {
		s.history.commitGroup(s.buf.Lines())
	}
	s.pending, s.count = PendingNone, 0

	if mode.IsVisual() {
		if !prev.IsVisual() {
			a := s.buf.Cursor()
			s.anchor = &a
		}
	} else {
		s.anchor = nil
	}
	s.hint = statusHint(mode)
	s.mode = mode

	if !s.effect.ModeChanged {
		s.effect.ModeChanged = true
		s.effect.Previous = prev
	}
	log.Debug(log.CatEditor, "mode change", "from", prev.String(), "to", mode.String())
}

// enterInsert switches to Insert mode with the cursor at p, opening an
// insert group unless one is already open.
func (s *Session) enterInsert(p Position) {
	if !s.history.InGroup() {
		s.history.beginGroup(takeSnapshot(s.buf))
	}
	s.buf.MoveCursor(p)
	s.setMode(ModeInsert)
	s.syncPreferredCol()
}

// exitToNormal leaves Insert or a visual mode and clamps the cursor onto a
// character.
func (s *Session) exitToNormal() {
	s.setMode(ModeNormal)
	s.clampNormal()
}

func (s *Session) clampNormal() {
	c := s.buf.Cursor()
	lines := s.buf.Lines()
	if c.Col > lastCol(lines, c.Row) {
		s.buf.MoveCursor(Position{Row: c.Row, Col: lastCol(lines, c.Row)})
	}
}

// cursorLimit is the rightmost column motions may reach in the current mode.
func (s *Session) cursorLimit(row int) int {
	lines := s.buf.Lines()
	if s.mode == ModeInsert {
		return lineLen(lines, row)
	}
	return lastCol(lines, row)
}

func (s *Session) syncPreferredCol() {
	s.preferredCol = s.buf.Cursor().Col
}

func (s *Session) markModified() {
	s.effect.Modified = true
}
