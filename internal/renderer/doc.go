// Package renderer draws a Frame, a snapshot of editor state, onto a
// backend.Backend.
//
// Every row but the last shows a buffer line, with the visual selection
// highlighted and tabs expanded to the configured width. The viewport
// scrolls vertically to keep the cursor scroll_off lines from either edge.
// The last row is the status line, or the command line while one is being
// typed. The terminal cursor is placed by display column, so it lands
// correctly after wide runes and tabs.
//
//	term, err := backend.NewTerminal()
//	...
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.Render(renderer.Frame{Mode: mode.Insert, Lines: []string{""}})
package renderer
