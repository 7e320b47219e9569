package renderer

import (
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/input/mode"
	"github.com/dshills/keyline/internal/renderer/backend"
)

// Options configures the renderer.
type Options struct {
	// ScrollOff is the number of lines kept visible above and below the cursor.
	ScrollOff int

	// TabWidth is the distance between tab stops in cells.
	TabWidth int

	Theme Theme
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		ScrollOff: 3,
		TabWidth:  4,
		Theme:     DefaultTheme(),
	}
}

// Renderer draws frames to a backend.
// The last screen row is the status line; the rows above it show the buffer.
type Renderer struct {
	opts Options

	backend backend.Backend
	width   int
	height  int

	viewport *Viewport
}

// New creates a new renderer with the given backend and options.
func New(b backend.Backend, opts Options) *Renderer {
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultOptions().TabWidth
	}

	width, height := b.Size()
	return &Renderer{
		opts:     opts,
		backend:  b,
		width:    width,
		height:   height,
		viewport: NewViewport(width, max(height-1, 0), opts.ScrollOff),
	}
}

// PollEvent waits for the next backend event.
func (r *Renderer) PollEvent() backend.Event {
	return r.backend.PollEvent()
}

// PostEvent queues an event for PollEvent. It may be called from any goroutine.
func (r *Renderer) PostEvent(ev backend.Event) {
	r.backend.PostEvent(ev)
}

// SetCursorStyle changes the terminal cursor to match a mode.
func (r *Renderer) SetCursorStyle(style mode.CursorStyle) {
	r.backend.SetCursorStyle(toBackendCursor(style))
}

func toBackendCursor(style mode.CursorStyle) backend.CursorStyle {
	switch style {
	case mode.CursorBar:
		return backend.CursorBar
	case mode.CursorUnderline:
		return backend.CursorUnderline
	case mode.CursorHidden:
		return backend.CursorHidden
	default:
		return backend.CursorBlock
	}
}

// Resize updates the renderer dimensions.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	r.viewport.Resize(width, max(height-1, 0))
}

// Render draws f and flushes it to the backend.
func (r *Renderer) Render(f Frame) {
	if w, h := r.backend.Size(); w != r.width || h != r.height {
		r.Resize(w, h)
	}

	r.backend.Clear()

	if r.width <= 0 || r.height <= 0 {
		r.backend.Show()
		return
	}

	cursorX := r.cellColumn(lineAt(f.Lines, f.Cursor.Line), f.Cursor.Column)
	r.viewport.ScrollToReveal(f.Cursor.Line, cursorX, len(f.Lines))

	for row := 0; row < r.viewport.Height(); row++ {
		line := r.viewport.TopLine() + row
		if line >= len(f.Lines) {
			break
		}
		r.drawLine(&f, line, row)
	}

	r.drawStatus(&f, r.height-1)

	if !f.CommandActive {
		if row, x, ok := r.viewport.BufferToScreen(f.Cursor.Line, cursorX); ok {
			r.backend.ShowCursor(x, row)
		} else {
			r.backend.HideCursor()
		}
	}

	r.backend.Show()
}

// drawLine draws one buffer line at screen row. The cell after the last
// rune is drawn only when it is selected, so selections that cross a line
// break stay visible on empty lines.
func (r *Renderer) drawLine(f *Frame, line, row int) {
	runes := []rune(f.Lines[line])
	fullLine := f.lineSelected(line)
	left := r.viewport.LeftColumn()
	width := r.viewport.Width()

	x := 0
	for col := 0; col <= len(runes); col++ {
		ch := ' '
		if col < len(runes) {
			ch = runes[col]
		}

		selected := fullLine || f.selected(buffer.Point{Line: line, Column: col})
		if col == len(runes) && !selected {
			break
		}

		style := r.opts.Theme.Text
		if selected {
			style = r.opts.Theme.Selection
		}

		cells := r.runeCells(ch, x)
		sx := x - left
		if sx >= width {
			return
		}
		switch {
		case sx < 0 || cells == 0:
		case ch == '\t':
			for i := 0; i < cells && sx+i < width; i++ {
				r.backend.SetCell(sx+i, row, backend.Cell{Rune: ' ', Style: style})
			}
		default:
			// Wide runes cover their second cell without a separate write.
			r.backend.SetCell(sx, row, backend.Cell{Rune: displayRune(ch), Style: style})
		}
		x += cells
	}

	if fullLine {
		for sx := max(x-left, 0); sx < width; sx++ {
			r.backend.SetCell(sx, row, backend.Cell{Rune: ' ', Style: r.opts.Theme.Selection})
		}
	}
}

// cellColumn returns the screen cell offset of rune column col in line.
func (r *Renderer) cellColumn(line string, col int) int {
	x := 0
	for i, ch := range []rune(line) {
		if i >= col {
			break
		}
		x += r.runeCells(ch, x)
	}
	return x
}

// runeCells returns the number of cells ch occupies when drawn at cell x.
func (r *Renderer) runeCells(ch rune, x int) int {
	switch {
	case ch == '\t':
		return r.opts.TabWidth - x%r.opts.TabWidth
	case unicode.IsControl(ch):
		return 1
	default:
		return runewidth.RuneWidth(ch)
	}
}

// displayRune maps runes that cannot be drawn directly to a visible glyph.
func displayRune(ch rune) rune {
	switch {
	case ch == '\t':
		return ' '
	case unicode.IsControl(ch):
		return '?'
	default:
		return ch
	}
}

func lineAt(lines []string, line int) string {
	if line < 0 || line >= len(lines) {
		return ""
	}
	return lines[line]
}
