package renderer

import (
	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/engine/cursor"
	"github.com/dshills/keyline/internal/input/mode"
)

// Frame is a snapshot of everything drawn in one render pass.
type Frame struct {
	Mode   mode.Mode
	Lines  []string
	Cursor buffer.Point

	// Selection is meaningful only when HasSelection is true.
	Selection    cursor.Region
	HasSelection bool

	// CommandLine is the text typed after ':' while CommandActive is true.
	CommandLine   string
	CommandActive bool

	// Message is a one-shot status message.
	Message string
}

// selected reports whether the buffer position p is inside the selection.
func (f *Frame) selected(p buffer.Point) bool {
	return f.HasSelection && f.Selection.Contains(p)
}

// lineSelected reports whether every cell of line is selected.
func (f *Frame) lineSelected(line int) bool {
	return f.HasSelection && f.Selection.Shape == cursor.ShapeLine &&
		line >= f.Selection.FirstLine() && line <= f.Selection.LastLine()
}
