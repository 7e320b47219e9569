// Package input turns key presses into the classified events the editor's
// state machine consumes.
//
// A key.Event from the terminal is classified against the active mode into
// one of five shapes:
//
//   - Printable: a character to insert (Insert and Command mode)
//   - Control: Backspace, Enter, Escape, Quit, or BlockSelect
//   - Nav: an arrow key
//   - Command: a literal key read as a mode command, such as i, v, or V
//   - Unknown: anything else
//
// Unknown input is reported with ErrUnrecognized. It never changes editor
// state; the event loop drops it and redraws.
//
// # Usage
//
//	classifier := input.NewClassifier(input.DefaultConfig())
//
//	ev, err := classifier.Classify(keyEvent, modes.Current())
//	if errors.Is(err, input.ErrUnrecognized) {
//	    // log and continue
//	}
//
// The key bindings for Quit and BlockSelect are configurable through Config.
package input
