package cursor

import "github.com/dshills/keyline/internal/engine/buffer"

type Point = buffer.Point

// Bounds is the shape of the text a cursor lives in. *buffer.Buffer
// satisfies it.
type Bounds interface {
	// LineCount is at least 1.
	LineCount() int
	LineLen(line int) int
}

// Direction is a one-step cursor movement.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

var directions = [...]struct {
	name      string
	line, col int
}{
	DirNone:  {"none", 0, 0},
	DirUp:    {"up", -1, 0},
	DirDown:  {"down", 1, 0},
	DirLeft:  {"left", 0, -1},
	DirRight: {"right", 0, 1},
}

func (d Direction) String() string {
	if int(d) < len(directions) {
		return directions[d].name
	}
	return "unknown"
}

// Cursor is the insertion point. It is kept inside the Bounds it was last
// moved within; the zero value sits at (0:0).
type Cursor struct {
	point Point
}

func NewCursor(p Point, bounds Bounds) *Cursor {
	return &Cursor{point: Clamp(p, bounds)}
}

func (c *Cursor) Point() Point { return c.point }

// SetPoint moves the cursor to p, clamped to bounds.
func (c *Cursor) SetPoint(p Point, bounds Bounds) {
	c.point = Clamp(p, bounds)
}

// Move takes one step in dir and clamps. A vertical step keeps the column
// when the destination line is long enough and otherwise lands at its end.
// Unknown directions do not move.
func (c *Cursor) Move(dir Direction, bounds Bounds) Point {
	if int(dir) < len(directions) {
		step := directions[dir]
		c.point = Clamp(Point{
			Line:   c.point.Line + step.line,
			Column: c.point.Column + step.col,
		}, bounds)
	}
	return c.point
}

// MoveToLineStart puts the cursor in column 0 of its line.
func (c *Cursor) MoveToLineStart() Point {
	c.point.Column = 0
	return c.point
}

func (c *Cursor) String() string {
	return "Cursor" + c.point.String()
}

// Clamp limits p.Line to the existing lines and p.Column to
// [0, LineLen(p.Line)].
func Clamp(p Point, bounds Bounds) Point {
	p.Line = min(max(p.Line, 0), max(bounds.LineCount()-1, 0))
	p.Column = min(max(p.Column, 0), bounds.LineLen(p.Line))
	return p
}
