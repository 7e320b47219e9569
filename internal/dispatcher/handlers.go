package dispatcher

import (
	"github.com/dshills/keyline/internal/engine/cursor"
	"github.com/dshills/keyline/internal/input"
	"github.com/dshills/keyline/internal/input/mode"
)

// handleInsert edits text at the cursor.
func (d *Dispatcher) handleInsert(ev input.Event) (Result, error) {
	var res Result

	switch ev.Kind {
	case input.KindPrintable:
		if err := d.engine.InsertRune(ev.Rune); err != nil {
			return res, err
		}
		res.Changed = true

	case input.KindNav:
		return d.move(ev.Direction), nil

	case input.KindControl:
		switch ev.Control {
		case input.ControlBackspace:
			before := d.engine.Cursor()
			if err := d.engine.Backspace(); err != nil {
				return res, err
			}
			res.Changed = d.engine.Cursor() != before
		case input.ControlEnter:
			if err := d.engine.NewLine(); err != nil {
				return res, err
			}
			res.Changed = true
		case input.ControlEscape:
			return d.enter(mode.Normal, res)
		default:
			return ignored(), nil
		}

	default:
		return ignored(), nil
	}

	return res, nil
}

// handleCommandMode is shared by Normal and the three visual modes.
func (d *Dispatcher) handleCommandMode(current mode.Mode, ev input.Event) (Result, error) {
	var res Result

	switch ev.Kind {
	case input.KindNav:
		return d.move(ev.Direction), nil

	case input.KindControl:
		switch ev.Control {
		case input.ControlBlockSelect:
			return d.toggle(mode.VisualBlock, res)
		case input.ControlEscape:
			if !current.IsVisual() {
				return ignored(), nil
			}
			return d.enter(mode.Normal, res)
		default:
			return ignored(), nil
		}

	case input.KindCommand:
		if dir, ok := vimDirection(ev.Rune); ok {
			return d.move(dir), nil
		}

		switch ev.Rune {
		case 'i':
			return d.enter(mode.Insert, res)
		case 'I':
			d.engine.MoveToLineStart()
			res.Changed = true
			return d.enter(mode.Insert, res)
		case 's':
			if err := d.engine.Substitute(); err != nil {
				return res, err
			}
			res.Changed = true
			return d.enter(mode.Insert, res)
		case 'v':
			return d.toggle(mode.Visual, res)
		case 'V':
			return d.toggle(mode.VisualLine, res)
		case ':':
			return d.enter(mode.Command, res)
		default:
			return ignored(), nil
		}
	}

	return ignored(), nil
}

// handleCommandLine forwards the event to the command handler.
func (d *Dispatcher) handleCommandLine(ev input.Event) (Result, error) {
	out := d.commands.HandleCommand(ev)
	if out.Ignored {
		return ignored(), nil
	}

	res := Result{
		Changed: out.Changed,
		Quit:    out.Quit,
		Message: out.Message,
	}
	if out.Done {
		return d.enter(mode.Normal, res)
	}
	return res, nil
}

// move moves the cursor; an active selection follows it.
func (d *Dispatcher) move(dir cursor.Direction) Result {
	before := d.engine.Cursor()
	after := d.engine.MoveCursor(dir)
	return Result{Changed: after != before}
}

// toggle enters target, or returns to Normal when target is already active.
func (d *Dispatcher) toggle(target mode.Mode, res Result) (Result, error) {
	if _, err := d.modes.Toggle(target); err != nil {
		return res, err
	}
	res.ModeChanged = true
	res.Changed = true
	return res, nil
}

// vimDirection maps h, j, k, and l to directions.
func vimDirection(r rune) (cursor.Direction, bool) {
	switch r {
	case 'h':
		return cursor.DirLeft, true
	case 'j':
		return cursor.DirDown, true
	case 'k':
		return cursor.DirUp, true
	case 'l':
		return cursor.DirRight, true
	default:
		return cursor.DirNone, false
	}
}
