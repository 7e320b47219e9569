package dispatcher

import (
	"errors"
	"fmt"

	"github.com/dshills/keyline/internal/input"
	"github.com/dshills/keyline/internal/input/mode"
)

// Dispatcher errors.
var (
	// ErrUnknownMode indicates the mode manager reported a mode with no handler.
	ErrUnknownMode = errors.New("dispatcher: no handler for mode")

	// ErrUnknownCommand indicates a submitted command line named no command.
	ErrUnknownCommand = errors.New("not an editor command")
)

// DefectError reports an internal invariant violation during a dispatch
// step, such as an edit addressed outside the buffer. It is never a user
// error; the event loop stops when it sees one.
type DefectError struct {
	Mode  mode.Mode
	Event input.Event
	Err   error
}

// Error implements the error interface.
func (e *DefectError) Error() string {
	return fmt.Sprintf("dispatcher: defect handling %s in %s mode: %v", e.Event, e.Mode, e.Err)
}

// Unwrap returns the underlying error.
func (e *DefectError) Unwrap() error {
	return e.Err
}

// IsDefect reports whether err is or wraps a DefectError.
func IsDefect(err error) bool {
	var de *DefectError
	return errors.As(err, &de)
}
