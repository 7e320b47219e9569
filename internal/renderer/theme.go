package renderer

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/keyline/internal/input/mode"
)

// Theme holds the styles used to draw a frame.
type Theme struct {
	Text      tcell.Style
	Selection tcell.Style
	Status    tcell.Style

	// Mode label styles on the status line.
	ModeNormal  tcell.Style
	ModeInsert  tcell.Style
	ModeVisual  tcell.Style
	CommandLine tcell.Style
}

// Palette is the set of colors a Theme is built from.
// A zero color means the terminal default.
type Palette struct {
	TextFG      tcell.Color
	StatusFG    tcell.Color
	StatusBG    tcell.Color
	InsertBG    tcell.Color
	VisualBG    tcell.Color
	SelectionBG tcell.Color
}

// DefaultPalette returns the built-in colors.
func DefaultPalette() Palette {
	return Palette{
		TextFG:      tcell.ColorDefault,
		StatusFG:    tcell.ColorWhite,
		StatusBG:    tcell.ColorNavy,
		InsertBG:    tcell.ColorGreen,
		VisualBG:    tcell.ColorPurple,
		SelectionBG: tcell.ColorGray,
	}
}

// NewTheme builds the styles for p.
func NewTheme(p Palette) Theme {
	text := tcell.StyleDefault.Foreground(p.TextFG)
	status := tcell.StyleDefault.Foreground(p.StatusFG).Background(p.StatusBG)

	selection := text.Background(p.SelectionBG)
	if p.SelectionBG == tcell.ColorDefault {
		selection = text.Reverse(true)
	}

	return Theme{
		Text:        text,
		Selection:   selection,
		Status:      status,
		ModeNormal:  status.Bold(true),
		ModeInsert:  status.Background(p.InsertBG).Bold(true),
		ModeVisual:  status.Background(p.VisualBG).Bold(true),
		CommandLine: text,
	}
}

// DefaultTheme returns the theme for DefaultPalette.
func DefaultTheme() Theme {
	return NewTheme(DefaultPalette())
}

// ModeStyle returns the style of the mode label for m.
func (t Theme) ModeStyle(m mode.Mode) tcell.Style {
	switch {
	case m == mode.Insert:
		return t.ModeInsert
	case m.IsVisual():
		return t.ModeVisual
	default:
		return t.ModeNormal
	}
}

// ParseColor parses a color given as "#rrggbb", "#rgb", a tcell color name
// such as "navy", or "default". An empty string is the terminal default.
func ParseColor(s string) (tcell.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "default") {
		return tcell.ColorDefault, nil
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
	}

	if c := tcell.GetColor(strings.ToLower(s)); c != tcell.ColorDefault {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color %q", s)
}
