package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal is a Backend on a tcell screen.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewTerminal opens the controlling terminal. Init must be called before
// drawing.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen wraps an existing screen, such as a
// tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// do runs fn with the screen locked.
func (t *Terminal) do(fn func(s tcell.Screen)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.screen)
}

// Init puts the terminal in raw mode and takes over the screen.
func (t *Terminal) Init() error {
	var err error
	t.do(func(s tcell.Screen) {
		if err = s.Init(); err == nil {
			s.SetStyle(tcell.StyleDefault)
		}
	})
	return err
}

// Shutdown restores the terminal. Any blocked PollEvent returns an
// EventInterrupt.
func (t *Terminal) Shutdown() { t.do(tcell.Screen.Fini) }

// Size returns the screen size in cells.
func (t *Terminal) Size() (w, h int) {
	t.do(func(s tcell.Screen) { w, h = s.Size() })
	return w, h
}

// SetCell stages a cell for the next Show. tcell ignores positions off
// screen.
func (t *Terminal) SetCell(x, y int, cell Cell) {
	t.do(func(s tcell.Screen) { s.SetContent(x, y, cell.Rune, nil, cell.Style) })
}

// GetCell returns the staged content of a cell.
func (t *Terminal) GetCell(x, y int) (cell Cell) {
	t.do(func(s tcell.Screen) {
		r, _, style, _ := s.GetContent(x, y) //nolint:staticcheck // still the way to read a cell in tcell v2
		cell = Cell{Rune: r, Style: style}
	})
	return cell
}

// Clear blanks every staged cell.
func (t *Terminal) Clear() { t.do(tcell.Screen.Clear) }

// Show writes the staged cells and cursor to the terminal.
func (t *Terminal) Show() { t.do(tcell.Screen.Show) }

// ShowCursor places the cursor at cell (x, y) and makes it visible.
func (t *Terminal) ShowCursor(x, y int) {
	t.do(func(s tcell.Screen) { s.ShowCursor(x, y) })
}

// HideCursor hides the cursor until the next ShowCursor.
func (t *Terminal) HideCursor() { t.do(tcell.Screen.HideCursor) }

// cursorStyles maps shapes to tcell. Only the typing bar blinks.
var cursorStyles = map[CursorStyle]tcell.CursorStyle{
	CursorBlock:     tcell.CursorStyleSteadyBlock,
	CursorUnderline: tcell.CursorStyleSteadyUnderline,
	CursorBar:       tcell.CursorStyleBlinkingBar,
}

// SetCursorStyle maps CursorHidden to hiding the cursor, since tcell has
// no hidden shape.
func (t *Terminal) SetCursorStyle(style CursorStyle) {
	t.do(func(s tcell.Screen) {
		if style == CursorHidden {
			s.HideCursor()
			return
		}
		s.SetCursorStyle(cursorStyles[style])
	})
}

// PollEvent reports a finalized screen, which tcell signals with a nil
// event, as EventInterrupt.
func (t *Terminal) PollEvent() Event {
	switch ev := t.screen.PollEvent().(type) {
	case nil:
		return Event{Type: EventInterrupt}
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  fromTcellKey(ev.Key()),
			Rune: ev.Rune(),
			Mod:  fromTcellMod(ev.Modifiers()),
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}
	default:
		return Event{Type: EventNone}
	}
}

// PostEvent queues key and interrupt events. Others are ignored, and a
// full queue drops the event.
func (t *Terminal) PostEvent(event Event) {
	var ev tcell.Event
	switch event.Type {
	case EventKey:
		ev = tcell.NewEventKey(toTcellKey(event.Key), event.Rune, toTcellMod(event.Mod))
	case EventInterrupt:
		ev = tcell.NewEventInterrupt(nil)
	default:
		return
	}
	_ = t.screen.PostEvent(ev)
}

var (
	fromTcell = map[tcell.Key]Key{
		tcell.KeyRune:       KeyRune,
		tcell.KeyEscape:     KeyEscape,
		tcell.KeyEnter:      KeyEnter,
		tcell.KeyTab:        KeyTab,
		tcell.KeyBackspace:  KeyBackspace,
		tcell.KeyBackspace2: KeyBackspace,
		tcell.KeyDelete:     KeyDelete,
		tcell.KeyInsert:     KeyInsert,
		tcell.KeyHome:       KeyHome,
		tcell.KeyEnd:        KeyEnd,
		tcell.KeyPgUp:       KeyPageUp,
		tcell.KeyPgDn:       KeyPageDown,
		tcell.KeyUp:         KeyUp,
		tcell.KeyDown:       KeyDown,
		tcell.KeyLeft:       KeyLeft,
		tcell.KeyRight:      KeyRight,
		tcell.KeyCtrlSpace:  KeyCtrlSpace,
	}

	// toTcell inverts fromTcell. Backspace posts as KeyBackspace2, the
	// code most terminals send.
	toTcell = map[Key]tcell.Key{}
)

func init() {
	for i := range 12 {
		fromTcell[tcell.KeyF1+tcell.Key(i)] = KeyF1 + Key(i)
	}
	for i := range 26 {
		fromTcell[tcell.KeyCtrlA+tcell.Key(i)] = KeyCtrlA + Key(i)
	}
	for tk, k := range fromTcell {
		if tk != tcell.KeyBackspace {
			toTcell[k] = tk
		}
	}
}

func fromTcellKey(k tcell.Key) Key {
	return fromTcell[k]
}

func toTcellKey(k Key) tcell.Key {
	if tk, ok := toTcell[k]; ok {
		return tk
	}
	return tcell.KeyRune
}

// modPairs lines up our modifier bits with tcell's.
var modPairs = [...]struct {
	ours  ModMask
	tcell tcell.ModMask
}{
	{ModShift, tcell.ModShift},
	{ModCtrl, tcell.ModCtrl},
	{ModAlt, tcell.ModAlt},
	{ModMeta, tcell.ModMeta},
}

func fromTcellMod(m tcell.ModMask) ModMask {
	var out ModMask
	for _, p := range modPairs {
		if m&p.tcell != 0 {
			out |= p.ours
		}
	}
	return out
}

func toTcellMod(m ModMask) tcell.ModMask {
	var out tcell.ModMask
	for _, p := range modPairs {
		if m.Has(p.ours) {
			out |= p.tcell
		}
	}
	return out
}
