package backend

// NullBackend is a Backend held entirely in memory. Tests draw to it and
// read the result back with Row, GetCell and the cursor accessors.
type NullBackend struct {
	width, height int
	cells         []Cell

	cursorX, cursorY int
	cursorVisible    bool
	cursorStyle      CursorStyle

	shown  int
	events chan Event
}

// nullQueueSize bounds PostEvent. Further events are dropped.
const nullQueueSize = 100

func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, nullQueueSize),
	}
}

func (b *NullBackend) Init() error {
	b.reset()
	return nil
}

// reset allocates a blank grid for the current size.
func (b *NullBackend) reset() {
	b.cells = make([]Cell, b.width*b.height)
	b.Clear()
}

// index returns the offset of (x, y) in cells, or -1 if it is off screen
// or Init has not run.
func (b *NullBackend) index(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || len(b.cells) == 0 {
		return -1
	}
	return y*b.width + x
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) { return b.width, b.height }

func (b *NullBackend) SetCell(x, y int, cell Cell) {
	if i := b.index(x, y); i >= 0 {
		b.cells[i] = cell
	}
}

func (b *NullBackend) GetCell(x, y int) Cell {
	if i := b.index(x, y); i >= 0 {
		return b.cells[i]
	}
	return EmptyCell()
}

func (b *NullBackend) Clear() {
	for i := range b.cells {
		b.cells[i] = EmptyCell()
	}
}

func (b *NullBackend) Show() { b.shown++ }

func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX, b.cursorY = x, y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() { b.cursorVisible = false }

func (b *NullBackend) SetCursorStyle(style CursorStyle) { b.cursorStyle = style }

func (b *NullBackend) PollEvent() Event { return <-b.events }

// PostEvent never blocks. It drops the event when the queue is full.
func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
	}
}

// Resize changes the size, blanks the grid and queues an EventResize the
// way a terminal reports one.
func (b *NullBackend) Resize(width, height int) {
	b.width, b.height = width, height
	b.reset()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}

func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

func (b *NullBackend) CursorStyleValue() CursorStyle { return b.cursorStyle }

// ShowCount reports how many frames were flushed.
func (b *NullBackend) ShowCount() int { return b.shown }

// Row returns the text of row y. Cells holding rune 0, the trailing half
// of a wide rune, are skipped.
func (b *NullBackend) Row(y int) string {
	if y < 0 || y >= b.height || len(b.cells) == 0 {
		return ""
	}
	row := b.cells[y*b.width : (y+1)*b.width]
	runes := make([]rune, 0, len(row))
	for _, c := range row {
		if c.Rune != 0 {
			runes = append(runes, c.Rune)
		}
	}
	return string(runes)
}
