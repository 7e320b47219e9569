// Package mode defines the editing modes and the manager that tracks the
// active one.
//
// The modes are:
//   - Insert: Text input (the initial mode)
//   - Normal: Navigation and single-key commands
//   - Command: Ex-style command line
//   - Visual: Character-wise selection
//   - Visual Line: Line-wise selection
//   - Visual Block: Block/column selection
//
// Mode is a closed enumeration. Behaviour per mode lives in the dispatcher,
// which switches on the value; this package only carries the attributes
// every consumer needs: the status-line label, the cursor style, and the
// selection shape of the visual modes.
//
// # Transitions
//
// The Manager records the current mode. Listeners registered
// with OnChange run after each effective switch:
//
//	modes := mode.NewManager()
//	modes.OnChange(func(from, to mode.Mode) {
//		display.SetCursorStyle(to.CursorStyle())
//	})
//	modes.Switch(mode.Normal)
package mode
