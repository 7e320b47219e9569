package engine

import (
	"fmt"

	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/engine/cursor"
)

// Re-export commonly used types for convenience.
type (
	// Point represents a line/column position.
	Point = buffer.Point

	// Direction is a single-step cursor movement.
	Direction = cursor.Direction

	// Shape determines how a selection is interpreted.
	Shape = cursor.Shape

	// Region is a resolved selection.
	Region = cursor.Region
)

// Engine combines the buffer, cursor and selection into the single
// editor state aggregate.
type Engine struct {
	buf *buffer.Buffer
	cur *cursor.Cursor
	sel *cursor.Tracker

	// Initialization
	initContent string
	initCursor  Point
}

// New creates a new Engine with the given options.
// Without options the buffer is a single empty line and the cursor is at (0:0).
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	if e.initContent != "" {
		e.buf = buffer.NewBufferFromString(e.initContent)
	} else {
		e.buf = buffer.NewBuffer()
	}
	e.cur = cursor.NewCursor(e.initCursor, e.buf)
	e.sel = cursor.NewTracker()

	return e
}

// Read Operations

// Text returns the buffer content with lines joined by LF.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// Lines returns a copy of every line.
func (e *Engine) Lines() []string {
	return e.buf.Lines()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	return e.buf.LineCount()
}

// LineText returns the text of a line.
func (e *Engine) LineText(line int) string {
	return e.buf.LineText(line)
}

// Cursor returns the cursor position.
func (e *Engine) Cursor() Point {
	return e.cur.Point()
}

// HasSelection returns true while a selection is active.
func (e *Engine) HasSelection() bool {
	return e.sel.Active()
}

// Selection returns the region of the active selection.
// The second result is false when there is no selection.
func (e *Engine) Selection() (Region, bool) {
	return e.sel.Range()
}

// Edit Operations

// InsertRune inserts r at the cursor and moves the cursor past it.
func (e *Engine) InsertRune(r rune) error {
	p, err := e.buf.InsertChar(e.cur.Point(), r)
	if err != nil {
		return fmt.Errorf("insert %q: %w", r, err)
	}
	e.cur.SetPoint(p, e.buf)
	return nil
}

// Backspace deletes the rune before the cursor, joining lines at column 0.
func (e *Engine) Backspace() error {
	p, err := e.buf.DeleteCharBefore(e.cur.Point())
	if err != nil {
		return fmt.Errorf("backspace: %w", err)
	}
	e.cur.SetPoint(p, e.buf)
	return nil
}

// NewLine splits the line at the cursor and moves to the new line.
func (e *Engine) NewLine() error {
	p, err := e.buf.SplitLine(e.cur.Point())
	if err != nil {
		return fmt.Errorf("newline: %w", err)
	}
	e.cur.SetPoint(p, e.buf)
	return nil
}

// Substitute deletes the rune under the cursor. The cursor stays put.
func (e *Engine) Substitute() error {
	if err := e.buf.DeleteCharAt(e.cur.Point()); err != nil {
		return fmt.Errorf("substitute: %w", err)
	}
	e.cur.SetPoint(e.cur.Point(), e.buf)
	return nil
}

// Cursor Operations

// MoveCursor moves the cursor one step in dir, clamped to the buffer.
// An active selection follows the cursor.
func (e *Engine) MoveCursor(dir Direction) Point {
	p := e.cur.Move(dir, e.buf)
	e.sel.Update(p)
	return p
}

// MoveToLineStart moves the cursor to column 0.
// An active selection follows the cursor.
func (e *Engine) MoveToLineStart() Point {
	p := e.cur.MoveToLineStart()
	e.sel.Update(p)
	return p
}

// Selection Operations

// BeginSelection starts a selection of the given shape anchored at the cursor.
func (e *Engine) BeginSelection(shape Shape) {
	e.sel.Begin(shape, e.cur.Point())
}

// EndSelection discards the selection.
func (e *Engine) EndSelection() {
	e.sel.End()
}
