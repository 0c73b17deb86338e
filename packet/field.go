// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package packet

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Color is an RGB color. Its wire order is set by the Codec's ChannelOrder.
type Color struct {
	R, G, B uint8
}

// Black is the color of a blanked matrix.
var Black = Color{}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ChannelOrder holds the position on the wire of the red, green and blue
// channels, in that order.
//
// With RGB the red channel is sent first; with BGR it is sent last.
type ChannelOrder [3]uint8

var (
	RGB = ChannelOrder{0, 1, 2}
	RBG = ChannelOrder{0, 2, 1}
	GRB = ChannelOrder{1, 0, 2}
	BGR = ChannelOrder{2, 1, 0}
)

// Valid reports whether o is a permutation of the three positions.
func (o ChannelOrder) Valid() bool {
	var seen [3]bool
	for _, p := range o {
		if p > 2 || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}

func (o ChannelOrder) String() string {
	if !o.Valid() {
		return fmt.Sprintf("ChannelOrder%v", [3]uint8(o))
	}
	var s [3]byte
	s[o[0]] = 'R'
	s[o[1]] = 'G'
	s[o[2]] = 'B'
	return string(s[:])
}

// ParseChannelOrder parses a string like "RGB" or "grb".
func ParseChannelOrder(s string) (ChannelOrder, error) {
	var o ChannelOrder
	if len(s) != 3 {
		return o, fmt.Errorf("%w: channel order %q", ErrInvalidConfig, s)
	}
	var seen [3]bool
	for i := 0; i < 3; i++ {
		var ch int
		switch s[i] {
		case 'R', 'r':
			ch = 0
		case 'G', 'g':
			ch = 1
		case 'B', 'b':
			ch = 2
		default:
			return o, fmt.Errorf("%w: channel order %q", ErrInvalidConfig, s)
		}
		if seen[ch] {
			return o, fmt.Errorf("%w: channel order %q", ErrInvalidConfig, s)
		}
		seen[ch] = true
		o[ch] = uint8(i)
	}
	return o, nil
}

func (o ChannelOrder) put(b []byte, c Color) {
	b[o[0]] = c.R
	b[o[1]] = c.G
	b[o[2]] = c.B
}

func (o ChannelOrder) get(b []byte) Color {
	return Color{R: b[o[0]], G: b[o[1]], B: b[o[2]]}
}

// Point16 is a pixel position in the absolute coordinates of the wall.
type Point16 struct {
	X, Y int16
}

// Rect is a rectangle given by two corners, both included.
type Rect struct {
	Min, Max Point16
}

// writer appends fields to a frame being built.
type writer struct {
	b     []byte
	order ChannelOrder
}

func (w *writer) u8(v uint8) {
	w.b = append(w.b, v)
}

func (w *writer) bool(v bool) {
	if v {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

func (w *writer) u16(v uint16) {
	w.b = binary.BigEndian.AppendUint16(w.b, v)
}

func (w *writer) i16(v int16) {
	w.u16(uint16(v))
}

func (w *writer) f32(v float32) {
	w.b = binary.BigEndian.AppendUint32(w.b, math.Float32bits(v))
}

func (w *writer) point(p Point16) {
	w.i16(p.X)
	w.i16(p.Y)
}

func (w *writer) rect(r Rect) {
	w.point(r.Min)
	w.point(r.Max)
}

func (w *writer) color(c Color) {
	var t [3]byte
	w.order.put(t[:], c)
	w.b = append(w.b, t[:]...)
}

func (w *writer) bytes(p []byte) {
	w.b = append(w.b, p...)
}

// reader consumes the fields of a frame being decoded. The first error sticks
// and every later read returns a zero value.
type reader struct {
	b     []byte
	order ChannelOrder
	err   error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.b) < n {
		r.err = fmt.Errorf("%w: need %d more bytes, have %d", ErrTruncated, n, len(r.b))
		return nil
	}
	p := r.b[:n]
	r.b = r.b[n:]
	return p
}

func (r *reader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: "+format, append([]any{ErrFieldOutOfRange}, args...)...)
	}
}

func (r *reader) u8() uint8 {
	if p := r.take(1); p != nil {
		return p[0]
	}
	return 0
}

func (r *reader) bool() bool {
	v := r.u8()
	if v > 1 {
		r.fail("boolean byte 0x%02X", v)
	}
	return v == 1
}

func (r *reader) u16() uint16 {
	if p := r.take(2); p != nil {
		return binary.BigEndian.Uint16(p)
	}
	return 0
}

func (r *reader) i16() int16 {
	return int16(r.u16())
}

func (r *reader) f32() float32 {
	if p := r.take(4); p != nil {
		return math.Float32frombits(binary.BigEndian.Uint32(p))
	}
	return 0
}

func (r *reader) point() Point16 {
	x := r.i16()
	return Point16{X: x, Y: r.i16()}
}

func (r *reader) rect() Rect {
	lo := r.point()
	return Rect{Min: lo, Max: r.point()}
}

func (r *reader) color() Color {
	if p := r.take(3); p != nil {
		return r.order.get(p)
	}
	return Color{}
}

// rest returns a copy of the remaining bytes.
func (r *reader) rest() []byte {
	if r.err != nil {
		return nil
	}
	p := make([]byte, len(r.b))
	copy(p, r.b)
	r.b = r.b[len(r.b):]
	return p
}

// remaining is the number of unread bytes.
func (r *reader) remaining() int {
	return len(r.b)
}
