// Package key models key presses: which key, which character, and which
// modifiers were held.
//
// Bindings are written as text ("<C-q>", "Ctrl+V", "F10") and read with
// Parse. An incoming Event is compared to a parsed binding with
// Event.Matches, which tolerates the ways terminals blur Shift and letter
// case on control chords.
package key
