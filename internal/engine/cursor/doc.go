// Package cursor keeps the insertion point and the visual selection inside
// the buffer.
//
// A Cursor moves one step at a time and is clamped after every step. A
// Selection is an anchor, fixed where visual mode began, and an extent that
// follows the cursor. Its Shape decides how the pair is read: characters
// in reading order, whole lines, or a rectangle of columns. Region turns a
// selection into ordered inclusive bounds.
//
//	c := cursor.NewCursor(buffer.Point{}, buf)
//	tr := cursor.NewTracker()
//	tr.Begin(cursor.ShapeLine, c.Point())
//	tr.Update(c.Move(cursor.DirDown, buf))
//	region, _ := tr.Range()
//
// Nothing here is safe for concurrent use. Selection and Region are values.
package cursor
