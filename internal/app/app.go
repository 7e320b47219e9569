// Package app runs the keyline editor: it owns the event loop that reads
// key presses from the display, feeds them through the input classifier and
// the dispatcher, and redraws after every step.
package app

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/keyline/internal/dispatcher"
	"github.com/dshills/keyline/internal/engine"
	"github.com/dshills/keyline/internal/input"
	"github.com/dshills/keyline/internal/input/mode"
	"github.com/dshills/keyline/internal/renderer"
	"github.com/dshills/keyline/internal/renderer/backend"
)

// Display is the screen the event loop draws to and reads input from.
// renderer.Renderer implements it.
type Display interface {
	// PollEvent blocks until the next input or resize event.
	PollEvent() backend.Event

	// PostEvent queues an event for PollEvent from any goroutine.
	PostEvent(backend.Event)

	// Render draws a complete frame.
	Render(renderer.Frame)

	// SetCursorStyle changes the cursor shape.
	SetCursorStyle(mode.CursorStyle)
}

// Options configures the application.
type Options struct {
	// Backend is the terminal. Run initializes and shuts it down, and draws
	// to it through a renderer.Renderer.
	Backend backend.Backend

	// Display replaces the renderer built on Backend. When set, Backend is
	// ignored and the caller owns the display's lifecycle.
	Display Display

	// Renderer configures the renderer built on Backend. A zero TabWidth
	// selects renderer.DefaultOptions.
	Renderer renderer.Options

	// Keys holds the quit and block-selection bindings.
	Keys input.Config

	// Content is the initial buffer text.
	Content string

	// InitialMode is the mode the editor starts in (default Insert).
	InitialMode mode.Mode

	// Logger receives diagnostics. Nil discards them.
	Logger *Logger
}

// Application is the editor session: one buffer, one display, one loop.
type Application struct {
	// backend is set only when Run owns its lifecycle.
	backend backend.Backend
	display Display

	classifier *input.Classifier
	dispatcher *dispatcher.Dispatcher
	metrics    *input.Metrics

	logger    *Logger
	loopLog   *Logger
	sessionID string

	running  atomic.Bool
	stopping atomic.Bool
}

// New creates an application. It does not touch the terminal; Run does.
func New(opts Options) (*Application, error) {
	if opts.Backend == nil && opts.Display == nil {
		return nil, ErrNoDisplay
	}

	modes := mode.NewManager()
	if err := modes.SetInitialMode(opts.InitialMode); err != nil {
		return nil, NewComponentError("mode", "initial mode", err)
	}

	var engOpts []engine.Option
	if opts.Content != "" {
		engOpts = append(engOpts, engine.WithContent(opts.Content))
	}

	logger := opts.Logger
	if logger == nil {
		logger = NullLogger()
	}
	sessionID := uuid.NewString()

	app := &Application{
		display:    opts.Display,
		classifier: input.NewClassifier(opts.Keys),
		dispatcher: dispatcher.New(engine.New(engOpts...), dispatcher.WithModeManager(modes)),
		metrics:    input.NewMetrics(),
		logger:     logger.WithField("session", sessionID),
		sessionID:  sessionID,
	}
	if app.display == nil {
		ropts := opts.Renderer
		if ropts.TabWidth == 0 {
			ropts = renderer.DefaultOptions()
		}
		app.backend = opts.Backend
		app.display = renderer.New(opts.Backend, ropts)
	}

	app.loopLog = app.logger.WithComponent("loop")
	modes.OnChange(app.onModeChange)
	return app, nil
}

// Run draws the initial frame and processes events until the user quits,
// Shutdown is called, or a dispatch step fails. A user quit returns nil.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.backend != nil {
		if err := app.backend.Init(); err != nil {
			return NewComponentError("backend", "init", err)
		}
		defer app.backend.Shutdown()
	}

	app.logger.Info("session started in %s mode", app.dispatcher.Mode())
	err := app.eventLoop()
	app.logSummary(err)
	return err
}

// Shutdown asks a running event loop to return. It is safe to call from
// any goroutine and more than once.
func (app *Application) Shutdown() {
	if app.stopping.Swap(true) {
		return
	}

	app.display.PostEvent(backend.Event{Type: backend.EventInterrupt})
}

// IsRunning reports whether Run is executing.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Dispatcher returns the modal state machine.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Engine returns the editor state.
func (app *Application) Engine() *engine.Engine {
	return app.dispatcher.Engine()
}

// Metrics returns a snapshot of input statistics for this session.
func (app *Application) Metrics() input.MetricsSnapshot {
	return app.metrics.Snapshot()
}

// SessionID returns the identifier attached to every log line.
func (app *Application) SessionID() string {
	return app.sessionID
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

func (app *Application) onModeChange(from, to mode.Mode) {
	app.logger.Debug("mode %s -> %s", from, to)
	app.display.SetCursorStyle(to.CursorStyle())
}

func (app *Application) logSummary(err error) {
	snap := app.metrics.Snapshot()
	l := app.logger.WithFields(map[string]any{
		"events":  snap.KeyEventsTotal,
		"dropped": snap.DroppedEvents,
		"avg":     snap.AvgLatency,
		"peak":    snap.PeakLatency,
	})
	if err != nil {
		l.Error("session aborted: %v", err)
		return
	}
	l.Info("session ended after %s", snap.Uptime.Round(time.Millisecond))
}
