// Package engine provides the editor state for keyline.
//
// The engine package is the facade the modal dispatcher drives. It owns the
// three pieces of mutable editor state and keeps them consistent:
//
//   - buffer: the lines of text
//   - cursor: the single insertion point, always clamped to the buffer
//   - selection: the anchor/extent tracker used by the visual modes
//
// # Basic Usage
//
//	e := engine.New()
//	_ = e.InsertRune('a')  // ["a"], cursor (0:1)
//	_ = e.NewLine()        // ["a", ""], cursor (1:0)
//	_ = e.Backspace()      // ["a"], cursor (0:1)
//
// # Selections
//
// While a selection is active every cursor movement also moves the
// selection extent:
//
//	e.BeginSelection(cursor.ShapeLine)
//	e.MoveCursor(cursor.DirDown)
//	region, _ := e.Selection()
//
// # Errors
//
// Edits only fail when the cursor has been corrupted, which the engine
// never allows. Such failures wrap ErrPointOutOfRange and indicate a bug
// rather than a user error.
//
// # Thread Safety
//
// Engine is not thread-safe. It is owned by the application event loop.
package engine
