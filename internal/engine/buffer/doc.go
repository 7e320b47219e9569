// Package buffer provides the line-oriented text buffer that backs the
// editor engine.
//
// The buffer stores text as an ordered slice of lines, each line a slice of
// runes, and provides the primitive edits used by insert mode:
//
//   - InsertChar: insert a rune before a point
//   - DeleteCharBefore: backspace, joining lines at column 0
//   - SplitLine: break a line in two at a point
//   - DeleteCharAt: remove the rune under a point
//
// Basic usage:
//
//	buf := buffer.NewBuffer()                    // [""]
//	p, _ := buf.InsertChar(buffer.Point{}, 'a')  // ["a"], p = (0:1)
//	p, _ = buf.SplitLine(p)                      // ["a", ""], p = (1:0)
//	p, _ = buf.DeleteCharBefore(p)               // ["a"], p = (0:1)
//
// Invariants:
//
// The buffer always holds at least one line. Every edit validates its point
// before mutating and returns ErrPointOutOfRange for an invalid one, leaving
// the buffer untouched. Points returned by edits are always valid.
//
// Thread Safety:
//
// Buffer is not safe for concurrent use. It is owned by a single engine
// that is driven from one event loop.
package buffer
