// Package dispatcher implements the modal state machine of the editor.
//
// The Dispatcher owns the current mode and receives classified input
// events one at a time. Each event is routed to the handler for the current
// mode, which edits the engine's buffer, moves its cursor, or switches
// modes. Dispatch returns a Result describing what happened; the caller
// redraws after every step.
//
// # Modes
//
// The handlers are selected by switching on the mode:
//
//   - Insert: printable characters are inserted, Backspace deletes the
//     character before the cursor (joining lines at column 0), Enter splits
//     the line, arrows move, Escape returns to Normal.
//   - Normal, Visual, VisualLine, VisualBlock: one shared command table.
//     i, I, and s enter Insert; h, j, k, l and the arrows move; v and V
//     toggle Visual and VisualLine; Ctrl+V toggles VisualBlock; ':' opens
//     the command line; Escape leaves a visual mode.
//   - Command: delegated to a CommandHandler. The default LineEditor runs
//     submitted lines against a Registry whose only built-in is quit.
//
// The quit key is honoured in every mode.
//
// # Selections
//
// The dispatcher listens for mode changes. Entering a visual mode anchors a
// selection at the cursor and leaving the visual modes discards it. While
// a selection is active every cursor move updates its extent.
//
// # Errors
//
// Input that has no meaning in the current mode is ignored and reported
// through Result.Ignored. Errors returned by Dispatch are *DefectError
// values: an engine operation was asked to address a point outside the
// buffer, which the cursor clamping rules make impossible unless there is
// a bug.
package dispatcher
