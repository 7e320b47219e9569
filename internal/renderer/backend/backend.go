// Package backend is the boundary between the renderer and a real or
// simulated terminal. Terminal drives a tcell screen; NullBackend keeps
// cells in memory for tests.
package backend

import "github.com/gdamore/tcell/v2"

// Backend is a grid of styled cells plus a cursor and an event source.
// Init must be called first and Shutdown last. Only PostEvent may be
// called from other goroutines.
type Backend interface {
	Init() error
	Shutdown()

	Size() (width, height int)

	// SetCell ignores positions outside the screen. GetCell returns
	// EmptyCell for them.
	SetCell(x, y int, cell Cell)
	GetCell(x, y int) Cell
	Clear()

	// Show flushes pending cell and cursor changes to the display.
	Show()

	ShowCursor(x, y int)
	HideCursor()
	SetCursorStyle(style CursorStyle)

	// PollEvent blocks until an event is available.
	PollEvent() Event
	PostEvent(event Event)
}

// Cell is one screen position.
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// EmptyCell is a space in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Style: tcell.StyleDefault}
}

// CursorStyle is the shape of the terminal cursor.
type CursorStyle int

const (
	// CursorBlock covers the cell under the cursor.
	CursorBlock CursorStyle = iota

	// CursorUnderline underlines the cell under the cursor.
	CursorUnderline

	// CursorBar is a blinking vertical bar before the cell, used while
	// typing text.
	CursorBar

	// CursorHidden hides the cursor.
	CursorHidden
)

// EventType says which fields of an Event are meaningful.
type EventType int

const (
	// EventNone is reported for terminal events the editor ignores.
	EventNone EventType = iota

	// EventKey is a key press.
	EventKey

	// EventResize reports the new screen size.
	EventResize

	// EventInterrupt carries no input. It wakes a blocked PollEvent.
	EventInterrupt
)

// Event is a key press or a resize. Key, Rune and Mod are set for
// EventKey; Width and Height for EventResize.
type Event struct {
	Type EventType

	Key  Key
	Rune rune
	Mod  ModMask

	Width, Height int
}

// Key is a key as the terminal reports it. Control letters are distinct
// keys, as they are on the wire.
type Key int

// Key constants. Printable characters are KeyRune with Event.Rune set.
// KeyCtrlA through KeyCtrlZ must stay contiguous; CtrlLetter and the tcell
// conversion rely on it.
const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCtrlSpace
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// IsCtrlLetter reports whether k is one of KeyCtrlA through KeyCtrlZ.
func (k Key) IsCtrlLetter() bool {
	return KeyCtrlA <= k && k <= KeyCtrlZ
}

// CtrlLetter returns 'a' for KeyCtrlA through 'z' for KeyCtrlZ, and 0 for
// every other key.
func (k Key) CtrlLetter() rune {
	if k.IsCtrlLetter() {
		return 'a' + rune(k-KeyCtrlA)
	}
	return 0
}

// ModMask is the set of modifiers held during a key press.
type ModMask int

// Modifier bits of a ModMask.
const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether any bit of mod is set in m.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}
