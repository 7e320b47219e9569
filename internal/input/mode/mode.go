package mode

import (
	"fmt"

	"github.com/dshills/keyline/internal/engine/cursor"
)

// Mode identifies the active editing mode. Exactly one mode is active at a
// time; the dispatcher selects its handler by switching on the value.
type Mode uint8

const (
	// Insert edits text at the cursor. It is the initial mode.
	Insert Mode = iota

	// Normal interprets keys as commands.
	Normal

	// Command collects an ex-style command line.
	Command

	// Visual selects a character range.
	Visual

	// VisualLine selects whole lines.
	VisualLine

	// VisualBlock selects a rectangular block.
	VisualBlock
)

// Standard mode names.
const (
	NameInsert      = "insert"
	NameNormal      = "normal"
	NameCommand     = "command"
	NameVisual      = "visual"
	NameVisualLine  = "visual-line"
	NameVisualBlock = "visual-block"
)

var modeInfo = [...]struct {
	name    string
	display string
	cursor  CursorStyle
}{
	Insert:      {NameInsert, "INSERT", CursorBar},
	Normal:      {NameNormal, "NORMAL", CursorBlock},
	Command:     {NameCommand, "COMMAND", CursorBar},
	Visual:      {NameVisual, "VISUAL", CursorBlock},
	VisualLine:  {NameVisualLine, "VISUAL LINE", CursorBlock},
	VisualBlock: {NameVisualBlock, "VISUAL BLOCK", CursorBlock},
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return int(m) < len(modeInfo)
}

// Name returns the unique mode identifier (e.g., "normal", "insert").
func (m Mode) Name() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", m)
	}
	return modeInfo[m].name
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return m.Name()
}

// DisplayName returns the label shown on the status line.
func (m Mode) DisplayName() string {
	if !m.Valid() {
		return "UNKNOWN"
	}
	return modeInfo[m].display
}

// CursorStyle returns the cursor style for this mode.
func (m Mode) CursorStyle() CursorStyle {
	if !m.Valid() {
		return CursorBlock
	}
	return modeInfo[m].cursor
}

// IsVisual reports whether m is one of the selection modes.
func (m Mode) IsVisual() bool {
	return m == Visual || m == VisualLine || m == VisualBlock
}

// Shape returns the selection shape a visual mode tracks.
// The second result is false for non-visual modes.
func (m Mode) Shape() (cursor.Shape, bool) {
	switch m {
	case Visual:
		return cursor.ShapeChar, true
	case VisualLine:
		return cursor.ShapeLine, true
	case VisualBlock:
		return cursor.ShapeBlock, true
	default:
		return 0, false
	}
}

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, error) {
	for m := range modeInfo {
		if modeInfo[m].name == name {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("unknown mode: %s", name)
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor.
	CursorUnderline

	// CursorHidden hides the cursor.
	CursorHidden
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	case CursorHidden:
		return "hidden"
	default:
		return "unknown"
	}
}
