package buffer

import (
	"cmp"
	"fmt"
)

// Point addresses a gap between runes: Line and Column are 0-based, and
// Column counts runes, so Column == len(line) is the end of the line.
type Point struct {
	Line   int
	Column int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare orders points by line, then column, returning -1, 0 or +1.
func (p Point) Compare(other Point) int {
	if c := cmp.Compare(p.Line, other.Line); c != 0 {
		return c
	}
	return cmp.Compare(p.Column, other.Column)
}

func (p Point) Before(other Point) bool { return p.Compare(other) < 0 }
func (p Point) After(other Point) bool { return p.Compare(other) > 0 }

// MinPoint returns whichever of a and b comes first.
func MinPoint(a, b Point) Point {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxPoint returns whichever of a and b comes last.
func MaxPoint(a, b Point) Point {
	if b.After(a) {
		return b
	}
	return a
}
