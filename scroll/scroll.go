// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package scroll computes the horizontal offsets used to scroll text across a
// row of cells one pixel at a time.
//
// The text is drawn at offset 0, then moved left one pixel per tick until its
// first character has left the viewport. The caller then drops that
// character, sends the shorter text and starts over at offset 0.
package scroll

// Metrics returns the width in pixels of a character, spacing excluded.
type Metrics interface {
	Width(c byte) uint8
}

// MetricsFunc adapts a function to Metrics.
type MetricsFunc func(c byte) uint8

// Width implements Metrics.
func (f MetricsFunc) Width(c byte) uint8 {
	return f(c)
}

// Sequencer yields scroll offsets for text drawn with Metrics.
type Sequencer struct {
	Metrics Metrics
	// Spacing is the number of blank columns after each character.
	Spacing uint8
}

// Ticks returns the number of ticks needed to scroll past a character of the
// given width. It is at least 1.
func (s Sequencer) Ticks(width uint8) int {
	return max(1, int(width)+int(s.Spacing))
}

// Offsets returns the offsets for the first character of text. Empty text
// yields the single offset 0.
func (s Sequencer) Offsets(text string) *Offsets {
	var w uint8
	if len(text) != 0 && s.Metrics != nil {
		w = s.Metrics.Width(text[0])
	}
	return &Offsets{n: s.Ticks(w)}
}

// TextWidth returns the width in pixels of text, spacing included.
func (s Sequencer) TextWidth(text string) int {
	n := 0
	for i := 0; i < len(text); i++ {
		if s.Metrics != nil {
			n += int(s.Metrics.Width(text[i]))
		}
		n += int(s.Spacing)
	}
	return n
}

// Offsets is a restartable sequence of offsets 0, -1, ..., -(Len()-1).
type Offsets struct {
	n    int
	next int
}

// Len returns the number of ticks.
func (o *Offsets) Len() int {
	return o.n
}

// Next returns the next offset. It returns false once the sequence is done.
func (o *Offsets) Next() (int, bool) {
	if o.next >= o.n {
		return 0, false
	}
	v := -o.next
	o.next++
	return v, true
}

// Reset restarts the sequence at offset 0.
func (o *Offsets) Reset() {
	o.next = 0
}

// All returns every offset, regardless of the current position.
func (o *Offsets) All() []int {
	out := make([]int, o.n)
	for i := range out {
		out[i] = -i
	}
	return out
}
