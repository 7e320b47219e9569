package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/keyline/internal/engine/cursor"
	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/input/mode"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	tests := []struct {
		name string
		ev   key.Event
		mode mode.Mode
		want Event
	}{
		{"insert rune is printable", key.NewRuneEvent('a', key.ModNone), mode.Insert, Printable('a')},
		{"shifted rune is printable", key.NewRuneEvent('A', key.ModShift), mode.Insert, Printable('A')},
		{"space is printable", key.NewRuneEvent(' ', key.ModNone), mode.Insert, Printable(' ')},
		{"command line rune is printable", key.NewRuneEvent('q', key.ModNone), mode.Command, Printable('q')},
		{"normal rune is a command", key.NewRuneEvent('v', key.ModNone), mode.Normal, CommandChar('v')},
		{"visual rune is a command", key.NewRuneEvent('V', key.ModShift), mode.VisualLine, CommandChar('V')},
		{"escape", key.NewSpecialEvent(key.KeyEscape, key.ModNone), mode.Insert, ControlKey(ControlEscape)},
		{"enter", key.NewSpecialEvent(key.KeyEnter, key.ModNone), mode.Insert, ControlKey(ControlEnter)},
		{"backspace", key.NewSpecialEvent(key.KeyBackspace, key.ModNone), mode.Normal, ControlKey(ControlBackspace)},
		{"arrow", key.NewSpecialEvent(key.KeyUp, key.ModNone), mode.Visual, Nav(cursor.DirUp)},
		{"left arrow", key.NewSpecialEvent(key.KeyLeft, key.ModNone), mode.Insert, Nav(cursor.DirLeft)},
		{"quit in insert", key.NewRuneEvent('q', key.ModCtrl), mode.Insert, ControlKey(ControlQuit)},
		{"quit in command", key.NewRuneEvent('q', key.ModCtrl), mode.Command, ControlKey(ControlQuit)},
		{"block select", key.NewRuneEvent('v', key.ModCtrl), mode.Normal, ControlKey(ControlBlockSelect)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify(tt.ev, tt.mode)
			require.NoError(t, err)
			require.Equal(t, tt.want.Kind, got.Kind)
			require.Equal(t, tt.want.Rune, got.Rune)
			require.Equal(t, tt.want.Control, got.Control)
			require.Equal(t, tt.want.Direction, got.Direction)
			require.True(t, got.Key.Equals(tt.ev), "classified event should keep its key")
		})
	}
}

func TestClassifyUnrecognized(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	inputs := []key.Event{
		key.NewSpecialEvent(key.KeyF5, key.ModNone),
		key.NewSpecialEvent(key.KeyTab, key.ModNone),
		key.NewSpecialEvent(key.KeyUp, key.ModShift),
		key.NewRuneEvent('x', key.ModAlt),
		key.NewRuneEvent('\x01', key.ModNone),
		{},
	}

	for _, ev := range inputs {
		got, err := c.Classify(ev, mode.Normal)
		if !errors.Is(err, ErrUnrecognized) {
			t.Errorf("Classify(%s) error = %v, want ErrUnrecognized", ev, err)
		}
		if got.Kind != KindUnknown {
			t.Errorf("Classify(%s) kind = %s, want unknown", ev, got.Kind)
		}
	}
}

func TestClassifierCustomBindings(t *testing.T) {
	c := NewClassifier(Config{QuitKey: key.MustParse("<F10>")})

	got, err := c.Classify(key.NewSpecialEvent(key.KeyF10, key.ModNone), mode.Normal)
	require.NoError(t, err)
	require.True(t, got.IsControl(ControlQuit))

	// The default quit key is no longer bound.
	_, err = c.Classify(key.NewRuneEvent('q', key.ModCtrl), mode.Normal)
	require.ErrorIs(t, err, ErrUnrecognized)

	// The block key keeps its default.
	got, err = c.Classify(key.NewRuneEvent('v', key.ModCtrl), mode.Normal)
	require.NoError(t, err)
	require.True(t, got.IsControl(ControlBlockSelect))
}

func TestCheckBinding(t *testing.T) {
	reserved := []string{"x", "A", "<Space>", ":", "<Esc>", "<C-Esc>", "<CR>", "<BS>", "<Up>", "<Right>"}
	for _, spec := range reserved {
		require.ErrorIs(t, CheckBinding(key.MustParse(spec)), ErrReservedKey, spec)
	}

	free := []string{"<C-q>", "<C-v>", "<A-x>", "<F10>", "<Tab>", "<C-CR>", "<S-Up>", "<Del>"}
	for _, spec := range free {
		require.NoError(t, CheckBinding(key.MustParse(spec)), spec)
	}
}

// A key is reserved exactly when Classify handles it with both bindings
// moved out of the way.
func TestCheckBindingMatchesClassify(t *testing.T) {
	c := NewClassifier(Config{
		QuitKey:  key.MustParse("<F11>"),
		BlockKey: key.MustParse("<F12>"),
	})

	specs := []string{"x", "<Space>", "<Esc>", "<A-Esc>", "<CR>", "<C-CR>", "<BS>", "<S-BS>", "<Left>", "<C-Left>", "<C-x>", "<Tab>", "<Home>", "<F1>"}
	for _, spec := range specs {
		ev := key.MustParse(spec)
		_, err := c.Classify(ev, mode.Insert)
		require.Equal(t, err == nil, CheckBinding(ev) != nil, spec)
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Printable('a'), "printable(a)"},
		{CommandChar('v'), "command(v)"},
		{ControlKey(ControlQuit), "control(quit)"},
		{Nav(cursor.DirDown), "nav(down)"},
		{Unknown(key.NewSpecialEvent(key.KeyF1, key.ModNone)), "unknown(<F1>)"},
	}

	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
