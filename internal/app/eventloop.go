package app

import (
	"errors"
	"runtime/debug"

	"github.com/dshills/keyline/internal/dispatcher"
	"github.com/dshills/keyline/internal/input"
	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/renderer"
	"github.com/dshills/keyline/internal/renderer/backend"
)

// eventLoop renders, then handles one backend event per iteration and
// renders again. It returns nil on quit or shutdown.
func (app *Application) eventLoop() error {
	app.display.SetCursorStyle(app.dispatcher.Mode().CursorStyle())
	app.render()

	for !app.stopping.Load() {
		ev := app.display.PollEvent()

		switch ev.Type {
		case backend.EventKey:
			err := app.handleKeyEvent(ev)
			if errors.Is(err, ErrQuit) {
				app.loopLog.Info("quit requested")
				return nil
			}
			if err != nil {
				return err
			}
		case backend.EventResize:
			app.loopLog.Debug("resize %dx%d", ev.Width, ev.Height)
		default:
			// Interrupts only wake the loop so it sees stopping.
			continue
		}

		app.render()
	}

	app.loopLog.Info("shutdown requested")
	return nil
}

// handleKeyEvent runs one key press through classification and dispatch.
// Returns ErrQuit if the application should exit.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	keyEv := convertToKeyEvent(ev)

	inEv, err := app.classifier.Classify(keyEv, app.dispatcher.Mode())
	if err != nil {
		if errors.Is(err, input.ErrUnrecognized) {
			app.metrics.RecordDroppedEvent()
			app.loopLog.Debug("dropped: %v", err)
			return nil
		}
		return NewOperationError("classify", keyEv.String(), err)
	}

	timer := app.metrics.StartTimer()
	res, err := app.dispatch(inEv)
	timer.Stop(inEv)
	if err != nil {
		return NewComponentError("dispatcher", "dispatch "+inEv.String(), err)
	}

	if res.Quit {
		return ErrQuit
	}
	if !app.loopLog.Enabled(LogLevelDebug) {
		return nil
	}
	switch {
	case res.Ignored:
		app.loopLog.Debug("ignored %s in %s mode", inEv, app.dispatcher.Mode())
	case res.Message != "":
		app.loopLog.Debug("message: %s", res.Message)
	}
	return nil
}

// dispatch runs a dispatcher step, converting a panic into an error so the
// loop can unwind and restore the terminal.
func (app *Application) dispatch(ev input.Event) (res dispatcher.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r, string(debug.Stack()))
		}
	}()
	return app.dispatcher.Dispatch(ev)
}

// render draws the current editor state.
func (app *Application) render() {
	app.display.Render(app.frame())
}

// frame snapshots the editor state for the display.
func (app *Application) frame() renderer.Frame {
	eng := app.dispatcher.Engine()
	sel, hasSel := eng.Selection()
	cmdLine, cmdActive := app.dispatcher.CommandLine()

	return renderer.Frame{
		Mode:          app.dispatcher.Mode(),
		Lines:         eng.Lines(),
		Cursor:        eng.Cursor(),
		Selection:     sel,
		HasSelection:  hasSel,
		CommandLine:   cmdLine,
		CommandActive: cmdActive,
		Message:       app.dispatcher.Message(),
	}
}

// convertToKeyEvent converts a backend.Event to a key.Event.
//
// Control letters arrive as dedicated backend keys; they become the letter
// with ModCtrl so they match bindings such as "<C-q>". Ctrl+H, Ctrl+I,
// Ctrl+J and Ctrl+M are the ASCII codes for Backspace, Tab and Enter.
func convertToKeyEvent(ev backend.Event) key.Event {
	mods := convertMods(ev.Mod)

	switch ev.Key {
	case backend.KeyCtrlH:
		return key.NewSpecialEvent(key.KeyBackspace, mods&^key.ModCtrl)
	case backend.KeyCtrlI:
		return key.NewSpecialEvent(key.KeyTab, mods&^key.ModCtrl)
	case backend.KeyCtrlJ, backend.KeyCtrlM:
		return key.NewSpecialEvent(key.KeyEnter, mods&^key.ModCtrl)
	case backend.KeyCtrlSpace:
		return key.NewRuneEvent(' ', mods.With(key.ModCtrl))
	}
	if ev.Key.IsCtrlLetter() {
		return key.NewRuneEvent(ev.Key.CtrlLetter(), mods.With(key.ModCtrl))
	}

	k := mapBackendKey(ev.Key)
	if k == key.KeyRune {
		return key.NewRuneEvent(ev.Rune, mods)
	}
	return key.NewSpecialEvent(k, mods)
}

func convertMods(m backend.ModMask) key.Modifier {
	mods := key.ModNone
	if m.Has(backend.ModShift) {
		mods = mods.With(key.ModShift)
	}
	if m.Has(backend.ModCtrl) {
		mods = mods.With(key.ModCtrl)
	}
	if m.Has(backend.ModAlt) {
		mods = mods.With(key.ModAlt)
	}
	if m.Has(backend.ModMeta) {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

// backendKeys maps the non-rune backend keys one to one.
var backendKeys = map[backend.Key]key.Key{
	backend.KeyRune:      key.KeyRune,
	backend.KeyEscape:    key.KeyEscape,
	backend.KeyEnter:     key.KeyEnter,
	backend.KeyTab:       key.KeyTab,
	backend.KeyBackspace: key.KeyBackspace,
	backend.KeyDelete:    key.KeyDelete,
	backend.KeyInsert:    key.KeyInsert,
	backend.KeyHome:      key.KeyHome,
	backend.KeyEnd:       key.KeyEnd,
	backend.KeyPageUp:    key.KeyPageUp,
	backend.KeyPageDown:  key.KeyPageDown,
	backend.KeyUp:        key.KeyUp,
	backend.KeyDown:      key.KeyDown,
	backend.KeyLeft:      key.KeyLeft,
	backend.KeyRight:     key.KeyRight,
	backend.KeyF1:        key.KeyF1,
	backend.KeyF2:        key.KeyF2,
	backend.KeyF3:        key.KeyF3,
	backend.KeyF4:        key.KeyF4,
	backend.KeyF5:        key.KeyF5,
	backend.KeyF6:        key.KeyF6,
	backend.KeyF7:        key.KeyF7,
	backend.KeyF8:        key.KeyF8,
	backend.KeyF9:        key.KeyF9,
	backend.KeyF10:       key.KeyF10,
	backend.KeyF11:       key.KeyF11,
	backend.KeyF12:       key.KeyF12,
}

// mapBackendKey maps a backend key to a key.Key, or key.KeyNone.
func mapBackendKey(bk backend.Key) key.Key {
	if k, ok := backendKeys[bk]; ok {
		return k
	}
	return key.KeyNone
}
