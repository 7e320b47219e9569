package dispatcher

import (
	"github.com/dshills/keyline/internal/input"
)

// CommandOutcome is what a CommandHandler reports for one event.
type CommandOutcome struct {
	// Done ends Command mode and returns to Normal.
	Done bool

	// Quit asks the editor to exit.
	Quit bool

	// Changed is set when the command line text changed.
	Changed bool

	// Ignored is set when the event has no meaning on the command line.
	Ignored bool

	// Message is shown on the status line after the step.
	Message string
}

// CommandHandler owns Command mode. The dispatcher forwards every event
// received in Command mode except the quit key.
type CommandHandler interface {
	// Reset clears the command line. It is called on entering Command mode.
	Reset()

	// Line returns the command line typed so far, without the prompt.
	Line() string

	// HandleCommand processes one event.
	HandleCommand(ev input.Event) CommandOutcome
}

// LineEditor is the default CommandHandler: a one-line input that runs
// submitted lines against a Registry.
type LineEditor struct {
	line     []rune
	registry *Registry
}

// NewLineEditor creates a line editor executing commands from registry.
// A nil registry uses DefaultCommands.
func NewLineEditor(registry *Registry) *LineEditor {
	if registry == nil {
		registry = DefaultCommands()
	}
	return &LineEditor{registry: registry}
}

// Reset clears the command line.
func (l *LineEditor) Reset() {
	l.line = l.line[:0]
}

// Line returns the command line typed so far.
func (l *LineEditor) Line() string {
	return string(l.line)
}

// HandleCommand processes one event.
//
// Printable runes append and Backspace removes the last rune; Backspace on
// an empty line leaves Command mode, as does Escape. Enter submits the line.
func (l *LineEditor) HandleCommand(ev input.Event) CommandOutcome {
	switch ev.Kind {
	case input.KindPrintable:
		l.line = append(l.line, ev.Rune)
		return CommandOutcome{Changed: true}

	case input.KindControl:
		switch ev.Control {
		case input.ControlBackspace:
			if len(l.line) == 0 {
				return CommandOutcome{Done: true}
			}
			l.line = l.line[:len(l.line)-1]
			return CommandOutcome{Changed: true}
		case input.ControlEscape:
			l.Reset()
			return CommandOutcome{Done: true}
		case input.ControlEnter:
			submitted := string(l.line)
			l.Reset()
			return l.registry.Execute(submitted)
		}
	}

	return CommandOutcome{Ignored: true}
}
