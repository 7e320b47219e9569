package input

import (
	"fmt"

	"github.com/dshills/keyline/internal/engine/cursor"
	"github.com/dshills/keyline/internal/input/key"
)

// Direction is a navigation direction.
type Direction = cursor.Direction

// Kind is the classification of an input event.
type Kind uint8

const (
	// KindUnknown is input that matches no recognized shape for the mode.
	KindUnknown Kind = iota
	// KindPrintable is a character to be inserted as text.
	KindPrintable
	// KindControl is one of the control keys.
	KindControl
	// KindNav is an arrow key.
	KindNav
	// KindCommand is a literal key interpreted as a mode command.
	KindCommand
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPrintable:
		return "printable"
	case KindControl:
		return "control"
	case KindNav:
		return "nav"
	case KindCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Control identifies a control key.
type Control uint8

const (
	// ControlNone indicates no control key.
	ControlNone Control = iota
	// ControlBackspace deletes the character before the cursor.
	ControlBackspace
	// ControlEnter splits the line or submits the command line.
	ControlEnter
	// ControlEscape leaves the current mode.
	ControlEscape
	// ControlQuit asks the editor to exit. Honoured in every mode.
	ControlQuit
	// ControlBlockSelect toggles block selection.
	ControlBlockSelect
)

// String returns a string representation of the control key.
func (c Control) String() string {
	switch c {
	case ControlBackspace:
		return "backspace"
	case ControlEnter:
		return "enter"
	case ControlEscape:
		return "escape"
	case ControlQuit:
		return "quit"
	case ControlBlockSelect:
		return "block-select"
	default:
		return "none"
	}
}

// Event is a classified unit of user input. Only the field matching Kind is
// meaningful; Key always carries the key press it was classified from.
type Event struct {
	Kind Kind

	// Rune is set for KindPrintable and KindCommand.
	Rune rune

	// Control is set for KindControl.
	Control Control

	// Direction is set for KindNav.
	Direction Direction

	// Key is the originating key press.
	Key key.Event
}

// Printable returns a printable character event.
func Printable(r rune) Event {
	return Event{Kind: KindPrintable, Rune: r, Key: key.NewRuneEvent(r, key.ModNone)}
}

// CommandChar returns a mode command event for r.
func CommandChar(r rune) Event {
	return Event{Kind: KindCommand, Rune: r, Key: key.NewRuneEvent(r, key.ModNone)}
}

// ControlKey returns a control key event.
func ControlKey(c Control) Event {
	return Event{Kind: KindControl, Control: c}
}

// Nav returns a navigation event.
func Nav(dir Direction) Event {
	return Event{Kind: KindNav, Direction: dir}
}

// Unknown returns an unrecognized event wrapping k.
func Unknown(k key.Event) Event {
	return Event{Kind: KindUnknown, Key: k}
}

// IsControl reports whether e is the control key c.
func (e Event) IsControl(c Control) bool {
	return e.Kind == KindControl && e.Control == c
}

// String returns a compact description such as "printable(a)" or "nav(up)".
func (e Event) String() string {
	switch e.Kind {
	case KindPrintable, KindCommand:
		return fmt.Sprintf("%s(%c)", e.Kind, e.Rune)
	case KindControl:
		return fmt.Sprintf("control(%s)", e.Control)
	case KindNav:
		return fmt.Sprintf("nav(%s)", e.Direction)
	default:
		return fmt.Sprintf("unknown(%s)", e.Key)
	}
}
