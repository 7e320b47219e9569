package dispatcher

// Result describes the outcome of one dispatch step.
//
// The event loop redraws after every step whatever the result, so the flags
// are informational: they drive cursor style updates and logging.
type Result struct {
	// Changed is set when the buffer, cursor, selection, or command line changed.
	Changed bool

	// ModeChanged is set when the step switched modes.
	ModeChanged bool

	// Ignored is set when the event has no meaning in the current mode.
	// State is untouched.
	Ignored bool

	// Quit is set when the user asked to exit.
	Quit bool

	// Message is an optional status message for display.
	Message string
}

func ignored() Result {
	return Result{Ignored: true}
}
