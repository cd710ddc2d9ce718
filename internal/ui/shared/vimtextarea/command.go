package vimtextarea

// ExecuteResult indicates the outcome of command execution.
type ExecuteResult int

const (
	// Executed means the command ran and consumed the key.
	Executed ExecuteResult = iota
	// PassThrough means the command chose not to handle this key (let parent handle it).
	PassThrough
	// Skipped means pre-conditions weren't met (e.g., undo with an empty history).
	// The key is still consumed.
	Skipped
)

func (r ExecuteResult) String() string {
	switch r {
	case Executed:
		return "executed"
	case PassThrough:
		return "pass_through"
	default:
		return "skipped"
	}
}

// Command is a key-triggered editing action.
type Command interface {
	// Execute runs the command. count is the accumulated numeric prefix, zero
	// when none was typed.
	Execute(s *Session, count int) ExecuteResult

	// Keys returns the trigger key(s) that invoke this command.
	// For aliases: []string{"h", "<left>"} (both trigger the same command).
	Keys() []string

	// ID returns a hierarchical identifier, e.g. "move.left" or "delete.line".
	ID() string
}

// command is the Command used by every built-in binding.
type command struct {
	id   string
	keys []string
	run  func(s *Session, count int) ExecuteResult
}

func newCommand(id string, keys []string, run func(s *Session, count int) ExecuteResult) Command {
	return &command{id: id, keys: keys, run: run}
}

func (c *command) Execute(s *Session, count int) ExecuteResult { return c.run(s, count) }
func (c *command) Keys() []string                              { return c.keys }
func (c *command) ID() string                                  { return c.id }

// ============================================================================
// CommandRegistry
// ============================================================================

// CommandRegistry provides mode-aware, key-based command dispatch.
type CommandRegistry struct {
	// commands maps Mode -> trigger key -> command
	commands map[Mode]map[string]Command
}

// NewCommandRegistry creates an empty command registry.
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[Mode]map[string]Command),
	}
}

// Register adds commands for a mode. Commands with multiple keys are
// registered under each key.
func (r *CommandRegistry) Register(mode Mode, cmds ...Command) {
	if r.commands[mode] == nil {
		r.commands[mode] = make(map[string]Command)
	}
	for _, cmd := range cmds {
		for _, key := range cmd.Keys() {
			r.commands[mode][key] = cmd
		}
	}
}

// Get retrieves a command for a specific mode and key.
func (r *CommandRegistry) Get(mode Mode, key string) (Command, bool) {
	if modeMap, ok := r.commands[mode]; ok {
		if cmd, ok := modeMap[key]; ok {
			return cmd, true
		}
	}
	return nil, false
}

// ============================================================================
// Default Registry
// ============================================================================

// DefaultRegistry is the global command registry with all bindings registered.
var DefaultRegistry = newDefaultRegistry()

var visualModes = []Mode{ModeVisual, ModeVisualLine, ModeVisualBlock}

func newDefaultRegistry() *CommandRegistry {
	r := NewCommandRegistry()

	motions := []Command{
		moveLeft, moveRight, moveUp, moveDown,
		wordForward, wordBackward, wordEndCmd,
		bigWordForward, bigWordBackward, bigWordEnd,
		lineStart, firstNonBlankCmd, lineEndCmd,
		lastLine, goToTopPrefix,
	}

	r.Register(ModeNormal, motions...)
	r.Register(ModeNormal,
		deleteChar, deleteCharBefore, deleteToLineEnd,
		changeToLineEnd, substituteChar, substituteLine,
		deletePrefix, yankPrefix, changePrefix, replacePrefix,
		pasteAfter, pasteBefore,
		undoCmd, redoCmd,
		insertBefore, insertAfter, insertLineStart, insertLineEnd,
		openBelow, openAbove,
		enterVisual, enterVisualLine, enterVisualBlock,
		normalEscape,
	)

	for _, mode := range visualModes {
		r.Register(mode, motions...)
		r.Register(mode,
			visualDelete, visualYank, visualChange, visualSwap,
			enterVisual, enterVisualLine, enterVisualBlock,
			visualEscape,
		)
	}

	r.Register(ModeInsert,
		insertEscape,
		insertNewline, insertBackspace, insertDelete,
		insertDeleteWord, insertDeleteToLineStart, insertTab,
		insertLeft, insertRight, insertUp, insertDown, insertHome, insertEnd,
	)

	return r
}
