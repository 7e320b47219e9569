package buffer

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by buffer operations.
var (
	ErrPointOutOfRange = errors.New("point out of range")
)

// Buffer holds editable text as an ordered sequence of lines.
// A buffer always contains at least one line.
type Buffer struct {
	lines [][]rune
}

// NewBuffer creates a new buffer holding a single empty line.
func NewBuffer() *Buffer {
	return &Buffer{lines: [][]rune{{}}}
}

// NewBufferFromString creates a buffer with initial content.
// CRLF and CR line endings are normalized to LF before splitting.
func NewBufferFromString(s string) *Buffer {
	s = normalizeLineEndings(s)
	parts := strings.Split(s, "\n")
	lines := make([][]rune, len(parts))
	for i, part := range parts {
		lines[i] = []rune(part)
	}
	return &Buffer{lines: lines}
}

// normalizeLineEndings converts CRLF and CR line endings to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Read Operations

// Text returns the full buffer content with lines joined by LF.
func (b *Buffer) Text() string {
	return strings.Join(b.Lines(), "\n")
}

// Lines returns a copy of every line as a string.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, line := range b.lines {
		out[i] = string(line)
	}
	return out
}

// LineCount returns the number of lines. It is never less than 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineText returns the text of a specific line.
// Returns an empty string for a line outside the buffer.
func (b *Buffer) LineText(line int) string {
	if line < 0 || line >= len(b.lines) {
		return ""
	}
	return string(b.lines[line])
}

// LineLen returns the length of a specific line in runes.
// Returns 0 for a line outside the buffer.
func (b *Buffer) LineLen(line int) int {
	if line < 0 || line >= len(b.lines) {
		return 0
	}
	return len(b.lines[line])
}

// RuneAt returns the rune at p.
// The second result is false when p does not address a rune.
func (b *Buffer) RuneAt(p Point) (rune, bool) {
	if p.Line < 0 || p.Line >= len(b.lines) {
		return 0, false
	}
	line := b.lines[p.Line]
	if p.Column < 0 || p.Column >= len(line) {
		return 0, false
	}
	return line[p.Column], true
}

// IsEmpty returns true if the buffer holds a single empty line.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

// ValidPoint reports whether p satisfies 0 <= Line < LineCount and
// 0 <= Column <= LineLen(Line).
func (b *Buffer) ValidPoint(p Point) bool {
	if p.Line < 0 || p.Line >= len(b.lines) {
		return false
	}
	return p.Column >= 0 && p.Column <= len(b.lines[p.Line])
}

// ClampPoint returns the nearest valid point to p.
func (b *Buffer) ClampPoint(p Point) Point {
	p.Line = clamp(p.Line, 0, len(b.lines)-1)
	p.Column = clamp(p.Column, 0, len(b.lines[p.Line]))
	return p
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// checkPoint returns ErrPointOutOfRange wrapped with p if p is invalid.
func (b *Buffer) checkPoint(op string, p Point) error {
	if !b.ValidPoint(p) {
		return fmt.Errorf("%s at %s: %w", op, p, ErrPointOutOfRange)
	}
	return nil
}

// Write Operations

// InsertChar inserts r at p and returns the point immediately after it.
func (b *Buffer) InsertChar(p Point, r rune) (Point, error) {
	if err := b.checkPoint("insert", p); err != nil {
		return p, err
	}

	line := b.lines[p.Line]
	next := make([]rune, 0, len(line)+1)
	next = append(next, line[:p.Column]...)
	next = append(next, r)
	next = append(next, line[p.Column:]...)
	b.lines[p.Line] = next

	return Point{Line: p.Line, Column: p.Column + 1}, nil
}

// DeleteCharBefore removes the rune before p.
//
// At column 0 the line is joined onto the end of the previous line and the
// returned point sits at the join. At (0:0) nothing changes.
func (b *Buffer) DeleteCharBefore(p Point) (Point, error) {
	if err := b.checkPoint("delete before", p); err != nil {
		return p, err
	}

	if p.Column > 0 {
		line := b.lines[p.Line]
		b.lines[p.Line] = append(line[:p.Column-1:p.Column-1], line[p.Column:]...)
		return Point{Line: p.Line, Column: p.Column - 1}, nil
	}

	if p.Line == 0 {
		return p, nil
	}

	prev := b.lines[p.Line-1]
	joinCol := len(prev)
	joined := make([]rune, 0, len(prev)+len(b.lines[p.Line]))
	joined = append(joined, prev...)
	joined = append(joined, b.lines[p.Line]...)
	b.lines[p.Line-1] = joined
	b.lines = append(b.lines[:p.Line], b.lines[p.Line+1:]...)

	return Point{Line: p.Line - 1, Column: joinCol}, nil
}

// SplitLine breaks the line at p. Text before p.Column stays on the line,
// the remainder becomes a new line inserted directly after it.
// Returns the start of the new line.
func (b *Buffer) SplitLine(p Point) (Point, error) {
	if err := b.checkPoint("split", p); err != nil {
		return p, err
	}

	line := b.lines[p.Line]
	head := make([]rune, p.Column)
	copy(head, line[:p.Column])
	tail := make([]rune, len(line)-p.Column)
	copy(tail, line[p.Column:])

	b.lines = append(b.lines, nil)
	copy(b.lines[p.Line+2:], b.lines[p.Line+1:])
	b.lines[p.Line] = head
	b.lines[p.Line+1] = tail

	return Point{Line: p.Line + 1, Column: 0}, nil
}

// DeleteCharAt removes the rune at p.
// At the end of a line there is no rune to remove and nothing changes.
func (b *Buffer) DeleteCharAt(p Point) error {
	if err := b.checkPoint("delete", p); err != nil {
		return err
	}

	line := b.lines[p.Line]
	if p.Column == len(line) {
		return nil
	}
	b.lines[p.Line] = append(line[:p.Column:p.Column], line[p.Column+1:]...)
	return nil
}
