package input

import (
	"errors"
	"fmt"

	"github.com/dshills/keyline/internal/engine/cursor"
	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/input/mode"
)

// ErrUnrecognized is returned by Classify for key presses that have no
// meaning in the current mode. It is recoverable: the caller drops the event.
var ErrUnrecognized = errors.New("unrecognized input")

// ErrReservedKey is returned by CheckBinding for a key that already has a
// fixed meaning, such as a printable character or Escape.
var ErrReservedKey = errors.New("key is reserved")

// Config configures the classifier.
type Config struct {
	// QuitKey requests exit in every mode (default: "<C-q>").
	QuitKey key.Event

	// BlockKey toggles block selection (default: "<C-v>").
	BlockKey key.Event
}

// DefaultConfig returns a configuration with the default bindings.
func DefaultConfig() Config {
	return Config{
		QuitKey:  key.MustParse("<C-q>"),
		BlockKey: key.MustParse("<C-v>"),
	}
}

// Classifier turns key presses into input events for a mode.
type Classifier struct {
	config Config
}

// NewClassifier creates a classifier. Zero bindings in config fall back to
// the defaults.
func NewClassifier(config Config) *Classifier {
	def := DefaultConfig()
	if config.QuitKey.Key == key.KeyNone {
		config.QuitKey = def.QuitKey
	}
	if config.BlockKey.Key == key.KeyNone {
		config.BlockKey = def.BlockKey
	}
	return &Classifier{config: config}
}

// Classify maps ev to an input event for the active mode m.
//
// Unmodified printable runes are text in Insert and Command mode and
// single-key commands everywhere else. Key presses that fit no shape yield
// an Unknown event together with an error wrapping ErrUnrecognized.
func (c *Classifier) Classify(ev key.Event, m mode.Mode) (Event, error) {
	switch {
	case ev.Matches(c.config.QuitKey):
		return withKey(ControlKey(ControlQuit), ev), nil
	case ev.Matches(c.config.BlockKey):
		return withKey(ControlKey(ControlBlockSelect), ev), nil
	}

	switch ev.Key {
	case key.KeyEscape:
		return withKey(ControlKey(ControlEscape), ev), nil
	case key.KeyEnter:
		if ev.Modifiers == key.ModNone {
			return withKey(ControlKey(ControlEnter), ev), nil
		}
	case key.KeyBackspace:
		if ev.Modifiers == key.ModNone {
			return withKey(ControlKey(ControlBackspace), ev), nil
		}
	case key.KeyUp, key.KeyDown, key.KeyLeft, key.KeyRight:
		if ev.Modifiers == key.ModNone {
			return withKey(Nav(arrowDirection(ev.Key)), ev), nil
		}
	case key.KeyRune:
		if ev.IsChar() && !ev.IsModified() {
			if m == mode.Insert || m == mode.Command {
				return withKey(Printable(ev.Rune), ev), nil
			}
			return withKey(CommandChar(ev.Rune), ev), nil
		}
	}

	return Unknown(ev), fmt.Errorf("%w: %s in %s mode", ErrUnrecognized, ev, m)
}

// CheckBinding rejects ev as a quit or block binding when Classify would
// otherwise give it a meaning of its own. Bindings are matched first, so
// such a binding would shadow text entry or editing keys.
func CheckBinding(ev key.Event) error {
	if builtin(ev) {
		return fmt.Errorf("%w: %s", ErrReservedKey, ev)
	}
	return nil
}

// builtin reports whether Classify handles ev without any binding.
// Escape counts with any modifiers; Enter, Backspace and the arrows only
// bare.
func builtin(ev key.Event) bool {
	switch ev.Key {
	case key.KeyEscape:
		return true
	case key.KeyEnter, key.KeyBackspace, key.KeyUp, key.KeyDown, key.KeyLeft, key.KeyRight:
		return ev.Modifiers == key.ModNone
	case key.KeyRune:
		return ev.IsChar() && !ev.IsModified()
	default:
		return false
	}
}

func withKey(e Event, k key.Event) Event {
	e.Key = k
	return e
}

func arrowDirection(k key.Key) Direction {
	switch k {
	case key.KeyUp:
		return cursor.DirUp
	case key.KeyDown:
		return cursor.DirDown
	case key.KeyLeft:
		return cursor.DirLeft
	case key.KeyRight:
		return cursor.DirRight
	default:
		return cursor.DirNone
	}
}
