package engine

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithCursor sets the initial cursor position.
// The point is clamped to the initial content.
func WithCursor(p Point) Option {
	return func(e *Engine) {
		e.initCursor = p
	}
}
