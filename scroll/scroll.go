// Package scroll implements the marquee over the exhibit question.
package scroll

import "strings"

const (
	// Width is the number of characters visible at once.
	Width = 16
	// IntervalMs is the time between window advances.
	IntervalMs = 500
)

// Window is a fixed-width view that steps one character to the right every
// IntervalMs and wraps to the start once the view would run past the end.
//
// Poll catches up by at most one step, however long it was not called.
type Window struct {
	text    []rune
	offset  int
	last    uint64
	advance uint64
}

// New returns a window at offset 0. Text shorter than Width is padded with spaces.
func New(text string) *Window {
	r := []rune(text)
	if len(r) < Width {
		r = []rune(text + strings.Repeat(" ", Width-len(r)))
	}
	return &Window{text: r}
}

// Poll advances the window if IntervalMs has elapsed since the last advance.
// It reports whether the view changed.
func (w *Window) Poll(now uint64) bool {
	if now < w.last || now-w.last < IntervalMs {
		return false
	}
	w.last = now
	w.offset++
	if w.offset > w.MaxOffset() {
		w.offset = 0
	}
	w.advance++
	return true
}

// View returns the Width characters starting at the current offset.
func (w *Window) View() string {
	return string(w.text[w.offset : w.offset+Width])
}

// Offset returns the index of the first visible character.
func (w *Window) Offset() int { return w.offset }

// MaxOffset is the last offset before wrapping: len(text) - Width.
func (w *Window) MaxOffset() int { return len(w.text) - Width }

// Len returns the message length in characters.
func (w *Window) Len() int { return len(w.text) }

// Advances returns how many times the window has moved.
func (w *Window) Advances() uint64 { return w.advance }

// LastAdvance returns the time of the last advance.
func (w *Window) LastAdvance() uint64 { return w.last }
