package renderer

// maxMarginRatio limits margins to 1/3 of viewport dimension to ensure
// there's always usable space in the center.
const maxMarginRatio = 3

// Viewport tracks which part of the buffer is visible.
// Rows are buffer lines, columns are terminal cells.
type Viewport struct {
	width, height int
	topLine       int
	leftColumn    int
	scrollOff     int
}

// NewViewport creates a viewport of the given size. scrollOff is the number
// of lines kept visible above and below the cursor.
func NewViewport(width, height, scrollOff int) *Viewport {
	v := &Viewport{scrollOff: max(scrollOff, 0)}
	v.Resize(width, height)
	return v
}

// Resize changes the viewport dimensions. Negative sizes become zero.
func (v *Viewport) Resize(width, height int) {
	v.width = max(width, 0)
	v.height = max(height, 0)
}

// Width returns the viewport width in cells.
func (v *Viewport) Width() int { return v.width }

// Height returns the viewport height in lines.
func (v *Viewport) Height() int { return v.height }

// TopLine returns the first visible buffer line.
func (v *Viewport) TopLine() int { return v.topLine }

// LeftColumn returns the first visible cell column.
func (v *Viewport) LeftColumn() int { return v.leftColumn }

// effectiveScrollOff clamps the margin so it never exceeds a third of the height.
func (v *Viewport) effectiveScrollOff() int {
	return min(v.scrollOff, v.height/maxMarginRatio)
}

// ScrollToReveal adjusts the viewport so that line and the cell column col
// are visible, honoring the scroll margin. lineCount bounds the top line.
// Returns true if the viewport moved.
func (v *Viewport) ScrollToReveal(line, col, lineCount int) bool {
	if v.height == 0 || v.width == 0 {
		return false
	}

	targetTop := v.topLine
	targetLeft := v.leftColumn
	margin := v.effectiveScrollOff()

	// Vertical scroll
	if line < targetTop+margin {
		targetTop = max(line-margin, 0)
	} else if line > targetTop+v.height-1-margin {
		targetTop = line - v.height + 1 + margin
	}

	// Never scroll past the point where the last line sits at the bottom
	// unless the cursor itself needs it.
	if maxTop := max(lineCount-v.height, 0); targetTop > maxTop && line <= maxTop+v.height-1 {
		targetTop = max(maxTop, 0)
	}
	targetTop = max(targetTop, 0)

	// Horizontal scroll
	if col < targetLeft {
		targetLeft = col
	} else if col >= targetLeft+v.width {
		targetLeft = col - v.width + 1
	}
	targetLeft = max(targetLeft, 0)

	moved := targetTop != v.topLine || targetLeft != v.leftColumn
	v.topLine = targetTop
	v.leftColumn = targetLeft
	return moved
}

// BufferToScreen converts a buffer line and cell column to a screen
// position. ok is false when the position is outside the viewport.
func (v *Viewport) BufferToScreen(line, col int) (row, x int, ok bool) {
	row = line - v.topLine
	x = col - v.leftColumn
	ok = row >= 0 && row < v.height && x >= 0 && x < v.width
	return row, x, ok
}
