package dispatcher_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/keyline/internal/dispatcher"
	"github.com/dshills/keyline/internal/engine"
	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/engine/cursor"
	"github.com/dshills/keyline/internal/input"
	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/input/mode"
)

// newDispatcher creates a dispatcher over eng starting in start.
func newDispatcher(t *testing.T, eng *engine.Engine, start mode.Mode) *dispatcher.Dispatcher {
	t.Helper()
	modes := mode.NewManager()
	require.NoError(t, modes.SetInitialMode(start))
	return dispatcher.New(eng, dispatcher.WithModeManager(modes))
}

// feed dispatches events in order and returns the last result.
func feed(t *testing.T, d *dispatcher.Dispatcher, events ...input.Event) dispatcher.Result {
	t.Helper()
	var res dispatcher.Result
	for _, ev := range events {
		var err error
		res, err = d.Dispatch(ev)
		require.NoError(t, err, "dispatching %s", ev)
	}
	return res
}

func typed(s string) []input.Event {
	var events []input.Event
	for _, r := range s {
		events = append(events, input.Printable(r))
	}
	return events
}

var (
	escape    = input.ControlKey(input.ControlEscape)
	enter     = input.ControlKey(input.ControlEnter)
	backspace = input.ControlKey(input.ControlBackspace)
	quit      = input.ControlKey(input.ControlQuit)
	block     = input.ControlKey(input.ControlBlockSelect)
)

// ============================================================================
// Insert mode
// ============================================================================

func TestDispatcherStartsInInsert(t *testing.T) {
	d := dispatcher.New(engine.New())

	if d.Mode() != mode.Insert {
		t.Errorf("Mode() = %v, want insert", d.Mode())
	}
}

func TestInsertThenNewline(t *testing.T) {
	eng := engine.New()
	d := dispatcher.New(eng)

	feed(t, d, input.Printable('a'), input.Printable('b'), enter, input.Printable('c'))

	require.Equal(t, []string{"ab", "c"}, eng.Lines())
	require.Equal(t, engine.Point{Line: 1, Column: 1}, eng.Cursor())
}

func TestBackspaceAcrossLineJoin(t *testing.T) {
	eng := engine.New(engine.WithContent("ab\nc"), engine.WithCursor(engine.Point{Line: 1}))
	d := dispatcher.New(eng)

	res := feed(t, d, backspace)

	require.True(t, res.Changed)
	require.Equal(t, []string{"abc"}, eng.Lines())
	require.Equal(t, engine.Point{Line: 0, Column: 2}, eng.Cursor())
}

func TestBackspaceAtOriginIsNoop(t *testing.T) {
	eng := engine.New(engine.WithContent("ab"))
	d := dispatcher.New(eng)

	res := feed(t, d, backspace)

	require.False(t, res.Changed)
	require.Equal(t, "ab", eng.Text())
}

func TestInsertEscapeKeepsCursor(t *testing.T) {
	eng := engine.New(engine.WithContent("abc"), engine.WithCursor(engine.Point{Column: 2}))
	d := dispatcher.New(eng)

	res := feed(t, d, escape)

	require.True(t, res.ModeChanged)
	require.Equal(t, mode.Normal, d.Mode())
	require.Equal(t, engine.Point{Column: 2}, eng.Cursor())
}

func TestInsertArrowsMove(t *testing.T) {
	eng := engine.New(engine.WithContent("abc\nd"))
	d := dispatcher.New(eng)

	feed(t, d, input.Nav(cursor.DirRight), input.Nav(cursor.DirRight), input.Nav(cursor.DirDown))

	require.Equal(t, engine.Point{Line: 1, Column: 1}, eng.Cursor())
	require.Equal(t, mode.Insert, d.Mode())
}

func TestInsertIgnoresOtherInput(t *testing.T) {
	eng := engine.New(engine.WithContent("abc"))
	d := dispatcher.New(eng)

	for _, ev := range []input.Event{
		block,
		input.CommandChar('v'),
		input.Unknown(key.NewSpecialEvent(key.KeyF3, key.ModNone)),
	} {
		res := feed(t, d, ev)
		require.True(t, res.Ignored, "%s should be ignored", ev)
	}
	require.Equal(t, "abc", eng.Text())
	require.Equal(t, mode.Insert, d.Mode())
}

// ============================================================================
// Normal mode
// ============================================================================

func TestNormalCommands(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		start      engine.Point
		events     []input.Event
		wantText   string
		wantCursor engine.Point
		wantMode   mode.Mode
	}{
		{"i enters insert", "abc", engine.Point{Column: 1}, []input.Event{input.CommandChar('i')}, "abc", engine.Point{Column: 1}, mode.Insert},
		{"I jumps to column 0", "abc", engine.Point{Column: 2}, []input.Event{input.CommandChar('I')}, "abc", engine.Point{}, mode.Insert},
		{"s substitutes", "abc", engine.Point{Column: 1}, []input.Event{input.CommandChar('s'), input.Printable('X')}, "aXc", engine.Point{Column: 2}, mode.Insert},
		{"s at end of line", "ab", engine.Point{Column: 2}, []input.Event{input.CommandChar('s')}, "ab", engine.Point{Column: 2}, mode.Insert},
		{"hjkl move", "abc\ndef", engine.Point{}, []input.Event{input.CommandChar('l'), input.CommandChar('l'), input.CommandChar('j'), input.CommandChar('h')}, "abc\ndef", engine.Point{Line: 1, Column: 1}, mode.Normal},
		{"k clamps at top", "abc", engine.Point{Column: 1}, []input.Event{input.CommandChar('k')}, "abc", engine.Point{Column: 1}, mode.Normal},
		{"arrows move", "abc\nd", engine.Point{Column: 3}, []input.Event{input.Nav(cursor.DirDown)}, "abc\nd", engine.Point{Line: 1, Column: 1}, mode.Normal},
		{"colon opens command line", "abc", engine.Point{}, []input.Event{input.CommandChar(':')}, "abc", engine.Point{}, mode.Command},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := engine.New(engine.WithContent(tt.content), engine.WithCursor(tt.start))
			d := newDispatcher(t, eng, mode.Normal)

			feed(t, d, tt.events...)

			require.Equal(t, tt.wantText, eng.Text())
			require.Equal(t, tt.wantCursor, eng.Cursor())
			require.Equal(t, tt.wantMode, d.Mode())
		})
	}
}

func TestNormalUnrecognizedInputLeavesStateUnchanged(t *testing.T) {
	eng := engine.New(engine.WithContent("abc\ndef"), engine.WithCursor(engine.Point{Line: 1, Column: 1}))
	d := newDispatcher(t, eng, mode.Normal)

	for _, ev := range []input.Event{
		input.CommandChar('z'),
		input.CommandChar('Q'),
		input.Unknown(key.NewSpecialEvent(key.KeyF5, key.ModNone)),
		input.Unknown(key.Event{}),
		enter,
		backspace,
		escape,
	} {
		res, err := d.Dispatch(ev)
		require.NoError(t, err)
		require.True(t, res.Ignored, "%s should be ignored", ev)
		require.False(t, res.Changed)
	}

	require.Equal(t, "abc\ndef", eng.Text())
	require.Equal(t, engine.Point{Line: 1, Column: 1}, eng.Cursor())
	require.Equal(t, mode.Normal, d.Mode())
	require.False(t, eng.HasSelection())
}

// ============================================================================
// Visual modes
// ============================================================================

func TestVisualToggle(t *testing.T) {
	eng := engine.New(engine.WithContent("abc"), engine.WithCursor(engine.Point{Column: 1}))
	d := newDispatcher(t, eng, mode.Normal)

	res := feed(t, d, input.CommandChar('v'))
	require.True(t, res.ModeChanged)
	require.Equal(t, mode.Visual, d.Mode())

	region, ok := eng.Selection()
	require.True(t, ok)
	require.Equal(t, eng.Cursor(), region.Start)
	require.Equal(t, eng.Cursor(), region.End)

	feed(t, d, input.CommandChar('v'))
	require.Equal(t, mode.Normal, d.Mode())
	require.False(t, eng.HasSelection())
}

func TestVisualExtentFollowsCursor(t *testing.T) {
	eng := engine.New(engine.WithContent("abc\ndef\nghi"), engine.WithCursor(engine.Point{Line: 1, Column: 1}))
	d := newDispatcher(t, eng, mode.Normal)

	feed(t, d, input.CommandChar('v'), input.CommandChar('k'), input.CommandChar('h'))

	region, ok := eng.Selection()
	require.True(t, ok)
	require.Equal(t, cursor.ShapeChar, region.Shape)
	require.Equal(t, engine.Point{Line: 0, Column: 0}, region.Start)
	require.Equal(t, engine.Point{Line: 1, Column: 1}, region.End)
}

func TestVisualLineSelection(t *testing.T) {
	eng := engine.New(engine.WithContent("a\nb\nc\nd"), engine.WithCursor(engine.Point{Line: 2}))
	d := newDispatcher(t, eng, mode.Normal)

	feed(t, d, input.CommandChar('V'), input.Nav(cursor.DirUp), input.Nav(cursor.DirUp))

	require.Equal(t, mode.VisualLine, d.Mode())
	region, ok := eng.Selection()
	require.True(t, ok)
	require.Equal(t, 0, region.FirstLine())
	require.Equal(t, 2, region.LastLine())

	feed(t, d, input.CommandChar('V'))
	require.Equal(t, mode.Normal, d.Mode())
	require.False(t, eng.HasSelection())
}

func TestVisualBlockSelection(t *testing.T) {
	eng := engine.New(engine.WithContent("abcd\nefgh\nijkl"), engine.WithCursor(engine.Point{Column: 2}))
	d := newDispatcher(t, eng, mode.Normal)

	feed(t, d, block, input.CommandChar('j'), input.CommandChar('j'), input.CommandChar('h'), input.CommandChar('h'))

	require.Equal(t, mode.VisualBlock, d.Mode())
	region, ok := eng.Selection()
	require.True(t, ok)
	require.Equal(t, cursor.ShapeBlock, region.Shape)
	require.True(t, region.Contains(engine.Point{Line: 1, Column: 1}))
	require.False(t, region.Contains(engine.Point{Line: 1, Column: 3}))

	feed(t, d, block)
	require.Equal(t, mode.Normal, d.Mode())
	require.False(t, eng.HasSelection())
}

func TestSwitchingVisualModesReanchors(t *testing.T) {
	eng := engine.New(engine.WithContent("abc\ndef"))
	d := newDispatcher(t, eng, mode.Normal)

	feed(t, d, input.CommandChar('v'), input.CommandChar('j'), input.CommandChar('V'))

	require.Equal(t, mode.VisualLine, d.Mode())
	region, ok := eng.Selection()
	require.True(t, ok)
	require.Equal(t, 1, region.FirstLine())
	require.Equal(t, 1, region.LastLine())
}

func TestVisualEscapeEndsSelection(t *testing.T) {
	eng := engine.New(engine.WithContent("abc"))
	d := newDispatcher(t, eng, mode.Normal)

	feed(t, d, input.CommandChar('v'), input.CommandChar('l'), escape)

	require.Equal(t, mode.Normal, d.Mode())
	require.False(t, eng.HasSelection())
	require.Equal(t, engine.Point{Column: 1}, eng.Cursor())
}

func TestVisualInsertEndsSelection(t *testing.T) {
	eng := engine.New(engine.WithContent("abc"))
	d := newDispatcher(t, eng, mode.Normal)

	feed(t, d, input.CommandChar('v'), input.CommandChar('i'))

	require.Equal(t, mode.Insert, d.Mode())
	require.False(t, eng.HasSelection())
}

// ============================================================================
// Command mode
// ============================================================================

func TestCommandLineQuit(t *testing.T) {
	for _, cmd := range []string{"q", "quit", " q "} {
		t.Run(cmd, func(t *testing.T) {
			d := newDispatcher(t, engine.New(), mode.Normal)

			feed(t, d, input.CommandChar(':'))
			feed(t, d, typed(cmd)...)

			line, ok := d.CommandLine()
			require.True(t, ok)
			require.Equal(t, cmd, line)

			res := feed(t, d, enter)
			require.True(t, res.Quit)
			require.Equal(t, mode.Normal, d.Mode())
		})
	}
}

func TestCommandLineUnknownCommand(t *testing.T) {
	d := newDispatcher(t, engine.New(), mode.Normal)

	feed(t, d, input.CommandChar(':'))
	feed(t, d, typed("wq")...)
	res := feed(t, d, enter)

	require.False(t, res.Quit)
	require.Equal(t, mode.Normal, d.Mode())
	require.Equal(t, "not an editor command: wq", res.Message)
	require.Equal(t, res.Message, d.Message())

	// The message lasts one step.
	feed(t, d, input.CommandChar('l'))
	require.Empty(t, d.Message())
}

func TestCommandLineEditing(t *testing.T) {
	d := newDispatcher(t, engine.New(), mode.Normal)

	feed(t, d, input.CommandChar(':'))
	feed(t, d, typed("qx")...)
	feed(t, d, backspace)

	line, _ := d.CommandLine()
	require.Equal(t, "q", line)

	res := feed(t, d, input.Nav(cursor.DirLeft))
	require.True(t, res.Ignored)

	feed(t, d, backspace, backspace)
	require.Equal(t, mode.Normal, d.Mode(), "backspace on an empty line leaves command mode")

	_, ok := d.CommandLine()
	require.False(t, ok)
}

func TestCommandLineEscapeAndEmpty(t *testing.T) {
	d := newDispatcher(t, engine.New(), mode.Normal)

	feed(t, d, input.CommandChar(':'))
	feed(t, d, typed("q")...)
	res := feed(t, d, escape)
	require.False(t, res.Quit)
	require.Equal(t, mode.Normal, d.Mode())

	// Reopening starts from an empty line.
	feed(t, d, input.CommandChar(':'))
	line, _ := d.CommandLine()
	require.Empty(t, line)

	res = feed(t, d, enter)
	require.False(t, res.Quit)
	require.Empty(t, res.Message)
	require.Equal(t, mode.Normal, d.Mode())
}

type recordingHandler struct {
	events []input.Event
	resets int
}

func (h *recordingHandler) Reset() { h.resets++ }
func (h *recordingHandler) Line() string { return "custom" }
func (h *recordingHandler) HandleCommand(ev input.Event) dispatcher.CommandOutcome {
	h.events = append(h.events, ev)
	return dispatcher.CommandOutcome{Done: ev.IsControl(input.ControlEnter), Message: "ran"}
}

func TestCustomCommandHandler(t *testing.T) {
	h := &recordingHandler{}
	modes := mode.NewManager()
	require.NoError(t, modes.SetInitialMode(mode.Normal))
	d := dispatcher.New(engine.New(), dispatcher.WithModeManager(modes), dispatcher.WithCommandHandler(h))

	feed(t, d, input.CommandChar(':'), input.Printable('x'), input.Nav(cursor.DirUp))
	line, _ := d.CommandLine()
	require.Equal(t, "custom", line)
	require.Equal(t, 1, h.resets)

	res := feed(t, d, enter)
	require.Equal(t, "ran", res.Message)
	require.Equal(t, mode.Normal, d.Mode())
	require.Len(t, h.events, 3)
}

// ============================================================================
// Quit and errors
// ============================================================================

func TestQuitInEveryMode(t *testing.T) {
	for _, m := range []mode.Mode{mode.Insert, mode.Normal, mode.Command, mode.Visual, mode.VisualLine, mode.VisualBlock} {
		t.Run(m.Name(), func(t *testing.T) {
			eng := engine.New(engine.WithContent("abc"))
			d := newDispatcher(t, eng, m)

			res := feed(t, d, quit)

			require.True(t, res.Quit)
			require.Equal(t, m, d.Mode())
			require.Equal(t, "abc", eng.Text())
		})
	}
}

func TestStartingInVisualModeAnchorsSelection(t *testing.T) {
	eng := engine.New(engine.WithContent("abc"), engine.WithCursor(engine.Point{Column: 1}))
	d := newDispatcher(t, eng, mode.VisualLine)

	region, ok := eng.Selection()
	require.True(t, ok)
	require.Equal(t, cursor.ShapeLine, region.Shape)
	require.Equal(t, mode.VisualLine, d.Mode())
}

func TestDefectError(t *testing.T) {
	err := error(&dispatcher.DefectError{
		Mode:  mode.Insert,
		Event: input.Printable('a'),
		Err:   buffer.ErrPointOutOfRange,
	})

	require.True(t, dispatcher.IsDefect(err))
	require.True(t, errors.Is(err, buffer.ErrPointOutOfRange))
	require.Contains(t, err.Error(), "insert mode")
	require.False(t, dispatcher.IsDefect(errors.New("other")))
}

// ============================================================================
// Properties
// ============================================================================

func genEvent() *rapid.Generator[input.Event] {
	return rapid.OneOf(
		rapid.Map(rapid.RuneFrom([]rune("abxy ")), input.Printable),
		rapid.Map(rapid.RuneFrom([]rune("iIsvVhjklqz:")), input.CommandChar),
		rapid.Map(rapid.SampledFrom([]input.Control{
			input.ControlBackspace, input.ControlEnter, input.ControlEscape, input.ControlBlockSelect,
		}), input.ControlKey),
		rapid.Map(rapid.SampledFrom([]cursor.Direction{cursor.DirUp, cursor.DirDown, cursor.DirLeft, cursor.DirRight}), input.Nav),
		rapid.Just(input.Unknown(key.NewSpecialEvent(key.KeyF1, key.ModNone))),
	)
}

func TestPropertyDispatchPreservesInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		eng := engine.New(engine.WithContent(rapid.StringMatching(`[ab\n]{0,10}`).Draw(t, "text")))
		d := dispatcher.New(eng)

		events := rapid.SliceOfN(genEvent(), 0, 60).Draw(t, "events")
		for _, ev := range events {
			before := eng.Text()
			beforeCursor := eng.Cursor()
			beforeMode := d.Mode()

			res, err := d.Dispatch(ev)
			if err != nil {
				t.Fatalf("dispatch %s in %s: %v", ev, beforeMode, err)
			}

			if eng.LineCount() < 1 {
				t.Fatalf("buffer became empty")
			}
			p := eng.Cursor()
			if p.Line < 0 || p.Line >= eng.LineCount() || p.Column < 0 || p.Column > len([]rune(eng.LineText(p.Line))) {
				t.Fatalf("cursor %v outside buffer", p)
			}
			if eng.HasSelection() != d.Mode().IsVisual() {
				t.Fatalf("selection present = %v in %s mode", eng.HasSelection(), d.Mode())
			}
			if res.Ignored && (eng.Text() != before || eng.Cursor() != beforeCursor || d.Mode() != beforeMode) {
				t.Fatalf("ignored %s changed state", ev)
			}
		}
	})
}
