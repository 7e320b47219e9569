package dispatcher

import (
	"fmt"

	"github.com/dshills/keyline/internal/engine"
	"github.com/dshills/keyline/internal/input"
	"github.com/dshills/keyline/internal/input/mode"
)

// Dispatcher is the modal state machine. It owns the mode and routes each
// input event to the handler for the current mode, which edits the engine.
type Dispatcher struct {
	engine   *engine.Engine
	modes    *mode.Manager
	commands CommandHandler

	// message is the status message produced by the last step.
	message string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithCommandHandler replaces the default command-line handler.
func WithCommandHandler(h CommandHandler) Option {
	return func(d *Dispatcher) {
		if h != nil {
			d.commands = h
		}
	}
}

// WithModeManager uses modes instead of a fresh manager starting in Insert.
func WithModeManager(modes *mode.Manager) Option {
	return func(d *Dispatcher) {
		if modes != nil {
			d.modes = modes
		}
	}
}

// New creates a dispatcher driving eng.
func New(eng *engine.Engine, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		engine:   eng,
		modes:    mode.NewManager(),
		commands: NewLineEditor(nil),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.modes.OnChange(d.onModeChange)
	if shape, ok := d.modes.Current().Shape(); ok && !eng.HasSelection() {
		eng.BeginSelection(shape)
	}
	return d
}

// Engine returns the editor state the dispatcher drives.
func (d *Dispatcher) Engine() *engine.Engine {
	return d.engine
}

// Modes returns the mode manager.
func (d *Dispatcher) Modes() *mode.Manager {
	return d.modes
}

// Mode returns the current mode.
func (d *Dispatcher) Mode() mode.Mode {
	return d.modes.Current()
}

// CommandLine returns the command line being typed.
// The second result is false outside Command mode.
func (d *Dispatcher) CommandLine() (string, bool) {
	if d.modes.Current() != mode.Command {
		return "", false
	}
	return d.commands.Line(), true
}

// Message returns the status message left by the last dispatch step.
func (d *Dispatcher) Message() string {
	return d.message
}

// Dispatch handles one input event.
//
// Events with no meaning in the current mode return an ignored Result and a
// nil error. A non-nil error is always a *DefectError and means the editor
// state can no longer be trusted.
func (d *Dispatcher) Dispatch(ev input.Event) (Result, error) {
	d.message = ""

	if ev.IsControl(input.ControlQuit) {
		return Result{Quit: true}, nil
	}

	current := d.modes.Current()

	var (
		res Result
		err error
	)
	switch current {
	case mode.Insert:
		res, err = d.handleInsert(ev)
	case mode.Normal, mode.Visual, mode.VisualLine, mode.VisualBlock:
		res, err = d.handleCommandMode(current, ev)
	case mode.Command:
		res, err = d.handleCommandLine(ev)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownMode, current)
	}
	if err != nil {
		return Result{}, &DefectError{Mode: current, Event: ev, Err: err}
	}

	d.message = res.Message
	return res, nil
}

// enter switches to mode to and records the transition in res.
func (d *Dispatcher) enter(to mode.Mode, res Result) (Result, error) {
	changed, err := d.modes.Switch(to)
	if err != nil {
		return res, err
	}
	if changed {
		res.ModeChanged = true
		res.Changed = true
	}
	return res, nil
}

// onModeChange keeps the selection and command line in step with the mode.
// Entering a visual mode anchors a new selection at the cursor, including
// when coming from another visual mode; leaving the visual modes ends it.
func (d *Dispatcher) onModeChange(from, to mode.Mode) {
	if shape, ok := to.Shape(); ok {
		d.engine.BeginSelection(shape)
	} else if from.IsVisual() {
		d.engine.EndSelection()
	}

	if to == mode.Command {
		d.commands.Reset()
	}
}
