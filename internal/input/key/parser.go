package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// namedRunes are characters written by name in a specification.
var namedRunes = map[string]rune{
	"space": ' ',
	"lt":    '<',
	"gt":    '>',
	"bar":   '|',
}

// Parse reads a key specification. Three forms are accepted:
//
//	a  A  :  Enter  Escape  Space      single keys
//	Ctrl+Q  Alt+F4  Ctrl+Shift+P       modifiers joined with "+"
//	<C-q>  <A-f>  <CR>  <S-Up>  <lt>   Vim notation
//
// An uppercase letter on its own implies Shift. With Ctrl held, letters are
// lowercased to match what terminals report.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)

	switch {
	case spec == "":
		return Event{}, ErrEmptySpec
	case len(spec) > 2 && spec[0] == '<' && spec[len(spec)-1] == '>':
		return parseChord(spec[1:len(spec)-1], "-")
	case len(spec) > 1 && strings.Contains(spec, "+"):
		return parseChord(spec, "+")
	}
	return parseKey(spec, ModNone, true)
}

// parseChord splits modifiers from the final key on sep.
func parseChord(chord, sep string) (Event, error) {
	parts := strings.Split(chord, sep)
	last := len(parts) - 1

	var mods Modifier
	for _, name := range parts[:last] {
		m := ModifierFromName(name)
		if m == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, name)
		}
		mods = mods.With(m)
	}
	return parseKey(parts[last], mods, false)
}

// parseKey resolves one key name. bare is set when the key stood alone, so
// its case carries Shift.
func parseKey(name string, mods Modifier, bare bool) (Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, fmt.Errorf("%w: missing key", ErrInvalidSpec)
	}

	if r, ok := namedRunes[strings.ToLower(name)]; ok {
		return NewRuneEvent(r, mods), nil
	}
	if k := KeyFromName(name); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	r, size := utf8.DecodeRuneInString(name)
	if size != len(name) {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
	}
	switch {
	case mods.HasCtrl():
		r = unicode.ToLower(r)
	case bare && unicode.IsUpper(r):
		mods = mods.With(ModShift)
	}
	return NewRuneEvent(r, mods), nil
}

// MustParse is Parse for specifications known to be valid. It panics on
// error.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic(fmt.Sprintf("key.MustParse(%q): %v", spec, err))
	}
	return ev
}
