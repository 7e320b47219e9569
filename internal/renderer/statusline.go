package renderer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/keyline/internal/renderer/backend"
)

// commandPrompt is drawn before the command line text.
const commandPrompt = ':'

// drawStatus renders the bottom line: the command line while one is being
// typed, otherwise the mode label, the message and the cursor position.
func (r *Renderer) drawStatus(f *Frame, row int) {
	if f.CommandActive {
		r.drawCommandLine(f, row)
		return
	}

	theme := r.opts.Theme
	r.fillRow(row, theme.Status)

	col := r.drawText(0, row, " "+f.Mode.DisplayName()+" ", theme.ModeStyle(f.Mode), r.width)

	// Right side: position info
	posInfo := formatPosition(f)
	posStart := r.width - uniseg.StringWidth(posInfo) - 1

	if f.Message != "" {
		limit := r.width
		if posStart > col+1 {
			limit = posStart - 1
		}
		r.drawText(col+1, row, f.Message, theme.Status, limit)
	}

	if posStart > col {
		r.drawText(posStart, row, posInfo, theme.Status, r.width)
	}
}

// drawCommandLine renders the prompt and typed text, and places the cursor
// after the text.
func (r *Renderer) drawCommandLine(f *Frame, row int) {
	style := r.opts.Theme.CommandLine
	r.fillRow(row, style)

	end := r.drawText(0, row, string(commandPrompt)+f.CommandLine, style, r.width)
	r.backend.ShowCursor(min(end, r.width-1), row)
}

// fillRow paints every cell of row with a blank in style.
func (r *Renderer) fillRow(row int, style tcell.Style) {
	for x := 0; x < r.width; x++ {
		r.backend.SetCell(x, row, backend.Cell{Rune: ' ', Style: style})
	}
}

// drawText draws s starting at cell x, one grapheme cluster at a time,
// stopping before any cluster that would cross limit. Returns the cell
// after the last cluster drawn.
func (r *Renderer) drawText(x, row int, s string, style tcell.Style, limit int) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if x+w > limit {
			break
		}
		runes := g.Runes()
		if w > 0 && len(runes) > 0 {
			r.backend.SetCell(x, row, backend.Cell{Rune: displayRune(runes[0]), Style: style})
		}
		x += w
	}
	return x
}

// formatPosition formats the 1-based cursor position shown on the right.
func formatPosition(f *Frame) string {
	return fmt.Sprintf("Ln %d, Col %d", f.Cursor.Line+1, f.Cursor.Column+1)
}
