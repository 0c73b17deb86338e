// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package packet

import "math"

// Payload is the typed content of a frame. The set of payloads is closed: one
// type per Kind, all defined in this package.
type Payload interface {
	// Kind returns the command identifier sent as the first byte.
	Kind() Kind

	// size returns the number of payload bytes, without the kind byte.
	size() int
	// check validates the field values before encoding.
	check(c *Config) error
	// put appends the payload bytes.
	put(w *writer)
}

// ImageChunkSize is the size of the pixel data of an ImageChunk4bit: 8×8
// pixels, three channels of 4 bits each.
const ImageChunkSize = 8 * 8 * 3 * 4 / 8

// StoreAddressControl is the control byte of a StoreAddress frame.
const StoreAddressControl = ^uint8(KindStoreAddress)

// MaxAddress is the highest bus address a cell can be given. Address 0 means
// the cell has no address.
const MaxAddress = 127

// None is the null command. It is never sent by a commander but encodes as a
// bare kind byte.
type None struct{}

func (None) Kind() Kind { return KindNone }
func (None) size() int { return 0 }
func (None) check(*Config) error { return nil }
func (None) put(*writer) {}

// Ping carries nothing; it tests that a cell acknowledges its address.
type Ping struct{}

func (Ping) Kind() Kind { return KindPing }
func (Ping) size() int { return 0 }
func (Ping) check(*Config) error { return nil }
func (Ping) put(*writer) {}

// Swap swaps the front and back buffers as soon as possible.
//
// When Timestamped is set, Timestamp (milliseconds since the previous swap) is
// appended. Only some senders use this extension.
type Swap struct {
	Flags       SwapFlags
	Timestamped bool
	Timestamp   uint16
}

func (Swap) Kind() Kind { return KindSwap }

func (s Swap) size() int {
	if s.Timestamped {
		return 3
	}
	return 1
}

func (s Swap) check(*Config) error {
	if s.Flags&^swapMask != 0 {
		return outOfRange("Flags", "unknown bits 0x%02X", uint8(s.Flags&^swapMask))
	}
	return nil
}

func (s Swap) put(w *writer) {
	w.u8(uint8(s.Flags))
	if s.Timestamped {
		w.u16(s.Timestamp)
	}
}

// ImageChunk4bit is one 8×8 block of the back buffer.
//
// Col and Row index the block inside the cell matrix, in blocks (not pixels).
// Pix holds the 64 pixels row by row, each pixel as three 4-bit channels in
// channel order, two nibbles per byte with the high nibble first.
type ImageChunk4bit struct {
	Col, Row uint8
	Pix      [ImageChunkSize]byte
}

func (ImageChunk4bit) Kind() Kind { return KindImageChunk4bit }
func (ImageChunk4bit) size() int { return 2 + ImageChunkSize }
func (ImageChunk4bit) check(*Config) error { return nil }

func (p ImageChunk4bit) put(w *writer) {
	w.u8(p.Col)
	w.u8(p.Row)
	w.bytes(p.Pix[:])
}

// Fill paints every pixel of the back buffer with Color.
type Fill struct {
	Color Color
}

func (Fill) Kind() Kind { return KindFill }
func (Fill) size() int { return 3 }
func (Fill) check(*Config) error { return nil }
func (f Fill) put(w *writer) { w.color(f.Color) }

// CopyBuffer copies the front buffer into the back buffer.
type CopyBuffer struct{}

func (CopyBuffer) Kind() Kind { return KindCopyBuffer }
func (CopyBuffer) size() int { return 0 }
func (CopyBuffer) check(*Config) error { return nil }
func (CopyBuffer) put(*writer) {}

// CellPosition tells a cell the absolute coordinates of its top-left pixel.
type CellPosition struct {
	X, Y int16
}

func (CellPosition) Kind() Kind { return KindCellPosition }
func (CellPosition) size() int { return 4 }
func (CellPosition) check(*Config) error { return nil }

func (p CellPosition) put(w *writer) {
	w.i16(p.X)
	w.i16(p.Y)
}

// TextPosition sets the absolute coordinates of the text.
type TextPosition struct {
	X, Y int16
}

func (TextPosition) Kind() Kind { return KindTextPosition }
func (TextPosition) size() int { return 4 }
func (TextPosition) check(*Config) error { return nil }

func (p TextPosition) put(w *writer) {
	w.i16(p.X)
	w.i16(p.Y)
}

// Text is one chunk of the string stored by a cell.
//
// Index is the position of the chunk among the chunks of the same string. Use
// a Chunker to split a string.
type Text struct {
	Index uint8
	Data  []byte
}

func (Text) Kind() Kind { return KindText }

func (t Text) size() int { return 1 + len(t.Data) }

func (t Text) check(c *Config) error {
	if len(t.Data) > c.TextChunkSize {
		return outOfRange("Data", "%d bytes, chunk capacity is %d", len(t.Data), c.TextChunkSize)
	}
	if i := nonASCII(t.Data); i >= 0 {
		return outOfRange("Data", "byte 0x%02X at offset %d is not 7-bit ASCII", t.Data[i], i)
	}
	return nil
}

func (t Text) put(w *writer) {
	w.u8(t.Index)
	w.bytes(t.Data)
}

// DrawText draws the stored text in the back buffer, with the stored text
// parameters and position.
type DrawText struct{}

func (DrawText) Kind() Kind { return KindDrawText }
func (DrawText) size() int { return 0 }
func (DrawText) check(*Config) error { return nil }
func (DrawText) put(*writer) {}

// DrawPixel sets one pixel.
type DrawPixel struct {
	X, Y  int16
	Color Color
}

func (DrawPixel) Kind() Kind { return KindDrawPixel }
func (DrawPixel) size() int { return 7 }
func (DrawPixel) check(*Config) error { return nil }

func (p DrawPixel) put(w *writer) {
	w.i16(p.X)
	w.i16(p.Y)
	w.color(p.Color)
}

// DrawLineH draws a horizontal line from (X1, Y) to (X2, Y).
type DrawLineH struct {
	X1, X2, Y int16
	Color     Color
}

func (DrawLineH) Kind() Kind { return KindDrawLineH }
func (DrawLineH) size() int { return 9 }
func (DrawLineH) check(*Config) error { return nil }

func (l DrawLineH) put(w *writer) {
	w.i16(l.X1)
	w.i16(l.X2)
	w.i16(l.Y)
	w.color(l.Color)
}

// DrawLineV draws a vertical line from (X, Y1) to (X, Y2).
type DrawLineV struct {
	X, Y1, Y2 int16
	Color     Color
}

func (DrawLineV) Kind() Kind { return KindDrawLineV }
func (DrawLineV) size() int { return 9 }
func (DrawLineV) check(*Config) error { return nil }

func (l DrawLineV) put(w *writer) {
	w.i16(l.X)
	w.i16(l.Y1)
	w.i16(l.Y2)
	w.color(l.Color)
}

// DrawRect draws the outline of a rectangle, or fills it.
type DrawRect struct {
	Rect   Rect
	Color  Color
	Filled bool
}

func (DrawRect) Kind() Kind { return KindDrawRect }
func (DrawRect) size() int { return 12 }
func (DrawRect) check(*Config) error { return nil }

func (r DrawRect) put(w *writer) {
	w.rect(r.Rect)
	w.color(r.Color)
	w.bool(r.Filled)
}

// DrawGradient draws a gradient from From to To in the direction Type.
//
// When Rect is nil the cell uses its own boundaries.
type DrawGradient struct {
	From, To Color
	Type     Gradient
	Rect     *Rect
}

func (DrawGradient) Kind() Kind { return KindDrawGradient }

func (g DrawGradient) size() int {
	if g.Rect != nil {
		return 15
	}
	return 7
}

func (g DrawGradient) check(*Config) error {
	if g.Type > GradientVertical {
		return outOfRange("Type", "gradient type %d", uint8(g.Type))
	}
	return nil
}

func (g DrawGradient) put(w *writer) {
	w.color(g.From)
	w.color(g.To)
	w.u8(uint8(g.Type))
	if g.Rect != nil {
		w.rect(*g.Rect)
	}
}

// DrawRainbow draws a horizontal gradient interpolating the hue from Hue1 to
// Hue2, with saturation 1 and the given Value.
//
// Hues are in degrees and may lie outside [0, 360) to turn clockwise,
// counter-clockwise or several times. Value is in [0, 1]. When Rect is nil the
// cell uses its own boundaries.
type DrawRainbow struct {
	Hue1, Hue2, Value float32
	Rect              *Rect
}

func (DrawRainbow) Kind() Kind { return KindDrawRainbow }

func (r DrawRainbow) size() int {
	if r.Rect != nil {
		return 20
	}
	return 12
}

func (r DrawRainbow) check(*Config) error {
	if math.IsNaN(float64(r.Value)) || r.Value < 0 || r.Value > 1 {
		return outOfRange("Value", "%v not in [0, 1]", r.Value)
	}
	return nil
}

func (r DrawRainbow) put(w *writer) {
	w.f32(r.Hue1)
	w.f32(r.Hue2)
	w.f32(r.Value)
	if r.Rect != nil {
		w.rect(*r.Rect)
	}
}

// StoreAddress gives a cell a new bus address, effective immediately.
//
// The control byte guarding against accidental reassignment is always
// StoreAddressControl; it is not settable.
type StoreAddress struct {
	Address uint8
}

func (StoreAddress) Kind() Kind { return KindStoreAddress }
func (StoreAddress) size() int { return 3 }

func (a StoreAddress) check(*Config) error {
	if a.Address > MaxAddress {
		return &EncodeError{Field: "Address", Err: errAddress(a.Address)}
	}
	return nil
}

func (a StoreAddress) put(w *writer) {
	w.u8(StoreAddressControl)
	w.u8(a.Address)
	w.u8(0)
}

// nonASCII returns the offset of the first byte that cannot be sent as text,
// or -1. NUL terminates strings on the cell so it is refused too.
func nonASCII(b []byte) int {
	for i, c := range b {
		if c == 0 || c > 0x7F {
			return i
		}
	}
	return -1
}
