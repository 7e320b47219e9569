package cursor

import (
	"fmt"

	"github.com/dshills/keyline/internal/engine/buffer"
)

// Shape determines how a selection's anchor and extent are interpreted.
type Shape uint8

const (
	// ShapeChar selects a contiguous run of characters in reading order.
	ShapeChar Shape = iota

	// ShapeLine selects whole lines.
	ShapeLine

	// ShapeBlock selects a rectangle of lines and columns.
	ShapeBlock
)

// String returns a human-readable shape name.
func (s Shape) String() string {
	switch s {
	case ShapeChar:
		return "char"
	case ShapeLine:
		return "line"
	case ShapeBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Selection is an anchor and an extent.
// Anchor is where the selection started; Extent follows the cursor.
// Selection is an immutable value type.
type Selection struct {
	Anchor Point
	Extent Point
}

// NewSelection creates a selection from anchor to extent.
func NewSelection(anchor, extent Point) Selection {
	return Selection{Anchor: anchor, Extent: extent}
}

// Start returns the earlier of anchor and extent.
func (s Selection) Start() Point {
	return buffer.MinPoint(s.Anchor, s.Extent)
}

// End returns the later of anchor and extent.
func (s Selection) End() Point {
	return buffer.MaxPoint(s.Anchor, s.Extent)
}

// IsBackward returns true if the extent precedes the anchor.
func (s Selection) IsBackward() bool {
	return s.Extent.Before(s.Anchor)
}

// Extend returns a new selection with the same anchor and a new extent.
func (s Selection) Extend(extent Point) Selection {
	return Selection{Anchor: s.Anchor, Extent: extent}
}

// Region returns the area the selection covers for the given shape.
func (s Selection) Region(shape Shape) Region {
	switch shape {
	case ShapeLine:
		first, last := orderInts(s.Anchor.Line, s.Extent.Line)
		return Region{
			Shape: ShapeLine,
			Start: Point{Line: first},
			End:   Point{Line: last},
		}
	case ShapeBlock:
		first, last := orderInts(s.Anchor.Line, s.Extent.Line)
		left, right := orderInts(s.Anchor.Column, s.Extent.Column)
		return Region{
			Shape: ShapeBlock,
			Start: Point{Line: first, Column: left},
			End:   Point{Line: last, Column: right},
		}
	default:
		return Region{Shape: ShapeChar, Start: s.Start(), End: s.End()}
	}
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	dir := "→"
	if s.IsBackward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%s%s%s)", s.Anchor, dir, s.Extent)
}

func orderInts(a, b int) (int, int) {
	if a <= b {
		return a, b
	}
	return b, a
}

// Region is the resolved area of a selection. Start and End are inclusive.
//
//   - ShapeChar: every position from Start to End in reading order.
//   - ShapeLine: lines Start.Line through End.Line at full width; columns
//     are always 0.
//   - ShapeBlock: lines Start.Line through End.Line crossed with columns
//     Start.Column through End.Column.
type Region struct {
	Shape Shape
	Start Point
	End   Point
}

// FirstLine returns the first selected line.
func (r Region) FirstLine() int {
	return r.Start.Line
}

// LastLine returns the last selected line.
func (r Region) LastLine() int {
	return r.End.Line
}

// Contains reports whether p falls inside the region.
func (r Region) Contains(p Point) bool {
	if p.Line < r.Start.Line || p.Line > r.End.Line {
		return false
	}
	switch r.Shape {
	case ShapeLine:
		return true
	case ShapeBlock:
		return p.Column >= r.Start.Column && p.Column <= r.End.Column
	default:
		return p.Compare(r.Start) >= 0 && p.Compare(r.End) <= 0
	}
}

// String returns a string representation of the region.
func (r Region) String() string {
	return fmt.Sprintf("%s[%s..%s]", r.Shape, r.Start, r.End)
}

// Tracker owns the selection of the active visual mode.
// The zero value is an inactive tracker.
type Tracker struct {
	sel    Selection
	shape  Shape
	active bool
}

// NewTracker creates an inactive selection tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin starts a selection of the given shape with anchor and extent both
// at anchor. Any previous selection is replaced.
func (t *Tracker) Begin(shape Shape, anchor Point) {
	t.sel = Selection{Anchor: anchor, Extent: anchor}
	t.shape = shape
	t.active = true
}

// Update moves the extent. It does nothing while inactive.
func (t *Tracker) Update(extent Point) {
	if !t.active {
		return
	}
	t.sel = t.sel.Extend(extent)
}

// End clears the selection.
func (t *Tracker) End() {
	t.sel = Selection{}
	t.active = false
}

// Active returns true while a selection exists.
func (t *Tracker) Active() bool {
	return t.active
}

// Shape returns the shape of the current selection.
func (t *Tracker) Shape() Shape {
	return t.shape
}

// Selection returns the raw anchor and extent.
// The second result is false when no selection is active.
func (t *Tracker) Selection() (Selection, bool) {
	return t.sel, t.active
}

// Range returns the region covered by the current selection.
// The second result is false when no selection is active.
func (t *Tracker) Range() (Region, bool) {
	if !t.active {
		return Region{}, false
	}
	return t.sel.Region(t.shape), true
}
