package mode

import "fmt"

// ChangeCallback is called after the mode changes.
type ChangeCallback func(from, to Mode)

// Manager tracks the active mode and notifies listeners of transitions.
// It is owned by the event loop and is not safe for concurrent use.
type Manager struct {
	// current is the active mode.
	current Mode

	// callbacks are notified on mode changes, in registration order.
	callbacks []ChangeCallback
}

// NewManager creates a mode manager starting in Insert mode.
func NewManager() *Manager {
	return &Manager{current: Insert}
}

// Current returns the active mode.
func (m *Manager) Current() Mode {
	return m.current
}

// IsVisual reports whether a visual mode is active.
func (m *Manager) IsVisual() bool {
	return m.current.IsVisual()
}

// OnChange registers a callback invoked after every mode change.
func (m *Manager) OnChange(cb ChangeCallback) {
	if cb != nil {
		m.callbacks = append(m.callbacks, cb)
	}
}

// SetInitialMode sets the active mode without notifying callbacks.
func (m *Manager) SetInitialMode(to Mode) error {
	if !to.Valid() {
		return fmt.Errorf("unknown mode: %s", to)
	}
	m.current = to
	return nil
}

// Switch changes to a different mode and notifies callbacks.
// Switching to the active mode is a no-op and reports false.
func (m *Manager) Switch(to Mode) (bool, error) {
	if !to.Valid() {
		return false, fmt.Errorf("unknown mode: %s", to)
	}
	if to == m.current {
		return false, nil
	}

	from := m.current
	m.current = to

	for _, cb := range m.callbacks {
		cb(from, to)
	}
	return true, nil
}

// Toggle switches to target, or back to Normal when target is already active.
// This is how the visual modes are entered and left from their own keys.
func (m *Manager) Toggle(target Mode) (Mode, error) {
	next := target
	if m.current == target {
		next = Normal
	}
	if _, err := m.Switch(next); err != nil {
		return m.current, err
	}
	return next, nil
}
