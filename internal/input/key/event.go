package key

import (
	"strings"
	"unicode"
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune // set when Key is KeyRune
	Modifiers Modifier
}

// NewRuneEvent returns a character key press.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent returns a non-character key press.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// chordMods turn a character into a chord. Shift only picks which
// character is typed, so it is not among them.
const chordMods = ModCtrl | ModAlt | ModMeta

func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar reports whether e types a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsModified reports whether e is a chord. Shift on a character does not
// count.
func (e Event) IsModified() bool {
	mods := e.Modifiers
	if e.IsRune() {
		mods &= chordMods
	}
	return mods != ModNone
}

// runeNotation holds characters that need a name inside "<...>".
var runeNotation = map[rune]string{
	' ': "Space",
	'<': "lt",
	'>': "gt",
	'|': "Bar",
}

// String returns the event in Vim notation: "a", "<Esc>", "<C-q>", "<S-Up>".
// Parse accepts everything String produces.
func (e Event) String() string {
	if e.IsRune() && !e.IsModified() {
		if e.Rune == ' ' {
			return "<Space>"
		}
		return string(e.Rune)
	}

	if e.Key != KeyRune {
		return "<" + e.Modifiers.short(ModNone) + e.Key.notation() + ">"
	}
	name, ok := runeNotation[e.Rune]
	if !ok {
		name = strings.ToLower(string(e.Rune))
	}
	return "<" + e.Modifiers.short(ModShift) + name + ">"
}

// Equals reports whether e and other are exactly the same press.
func (e Event) Equals(other Event) bool {
	return e == other
}

// Matches reports whether e is the press that binding describes. Character
// bindings ignore Shift, and fold case while Ctrl is held since terminals
// report Ctrl+V and Ctrl+v alike.
func (e Event) Matches(binding Event) bool {
	switch {
	case e.Key != binding.Key:
		return false
	case e.Key != KeyRune:
		return e.Modifiers == binding.Modifiers
	case e.Modifiers&chordMods != binding.Modifiers&chordMods:
		return false
	case e.Modifiers.HasCtrl():
		return unicode.ToLower(e.Rune) == unicode.ToLower(binding.Rune)
	default:
		return e.Rune == binding.Rune
	}
}
