// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package packet

import (
	"fmt"
	"math"
	"slices"
)

// Layout describes the payload sizes accepted for a Kind.
type Layout struct {
	Kind Kind
	// Sizes lists the legal payload sizes in increasing order. It is nil when
	// every size from Min to Max is legal.
	Sizes []int
	// Min and Max bound the payload size, kind byte excluded.
	Min, Max int
}

// Fixed reports whether the payload always has the same size.
func (l Layout) Fixed() bool {
	return l.Min == l.Max
}

// Accepts reports whether a payload of n bytes matches the layout.
func (l Layout) Accepts(n int) bool {
	if n < l.Min || n > l.Max {
		return false
	}
	return l.Sizes == nil || slices.Contains(l.Sizes, n)
}

func (l Layout) String() string {
	switch {
	case l.Fixed():
		return fmt.Sprintf("%s[%d]", l.Kind, l.Min)
	case l.Sizes == nil:
		return fmt.Sprintf("%s[%d..%d]", l.Kind, l.Min, l.Max)
	default:
		return fmt.Sprintf("%s%v", l.Kind, l.Sizes)
	}
}

// entry binds a kind to its name, its layout and its decoder. Encoding is
// done by the Payload itself.
type entry struct {
	name string
	// sizes is nil for Text, whose size depends on the chunk capacity.
	sizes  []int
	decode func(r *reader) Payload
}

var catalog = map[Kind]entry{
	KindNone: {"None", []int{0}, func(*reader) Payload { return None{} }},
	KindPing: {"Ping", []int{0}, func(*reader) Payload { return Ping{} }},
	KindSwap: {"Swap", []int{1, 3}, decodeSwap},
	KindImageChunk4bit: {"ImageChunk4bit", []int{2 + ImageChunkSize}, func(r *reader) Payload {
		p := ImageChunk4bit{Col: r.u8(), Row: r.u8()}
		copy(p.Pix[:], r.take(ImageChunkSize))
		return p
	}},
	KindFill:       {"Fill", []int{3}, func(r *reader) Payload { return Fill{Color: r.color()} }},
	KindCopyBuffer: {"CopyBuffer", []int{0}, func(*reader) Payload { return CopyBuffer{} }},
	KindCellPosition: {"CellPosition", []int{4}, func(r *reader) Payload {
		p := r.point()
		return CellPosition{X: p.X, Y: p.Y}
	}},
	KindTextPosition: {"TextPosition", []int{4}, func(r *reader) Payload {
		p := r.point()
		return TextPosition{X: p.X, Y: p.Y}
	}},
	KindTextParameters: {"TextParameters", textSizes[:], decodeTextParameters},
	KindText:           {"Text", nil, decodeText},
	KindDrawText:       {"DrawText", []int{0}, func(*reader) Payload { return DrawText{} }},
	KindDrawPixel: {"DrawPixel", []int{7}, func(r *reader) Payload {
		p := r.point()
		return DrawPixel{X: p.X, Y: p.Y, Color: r.color()}
	}},
	KindDrawLineH: {"DrawLineH", []int{9}, func(r *reader) Payload {
		l := DrawLineH{X1: r.i16(), X2: r.i16(), Y: r.i16()}
		l.Color = r.color()
		return l
	}},
	KindDrawLineV: {"DrawLineV", []int{9}, func(r *reader) Payload {
		l := DrawLineV{X: r.i16(), Y1: r.i16(), Y2: r.i16()}
		l.Color = r.color()
		return l
	}},
	KindDrawRect: {"DrawRect", []int{12}, func(r *reader) Payload {
		d := DrawRect{Rect: r.rect()}
		d.Color = r.color()
		d.Filled = r.bool()
		return d
	}},
	KindDrawGradient: {"DrawGradient", []int{7, 15}, decodeGradient},
	KindDrawRainbow:  {"DrawRainbow", []int{12, 20}, decodeRainbow},
	KindStoreAddress: {"StoreAddress", []int{3}, decodeStoreAddress},
}

// LayoutOf returns the layout of k under DefaultConfig.
func LayoutOf(k Kind) (Layout, error) {
	return layoutOf(k, &DefaultConfig)
}

func layoutOf(k Kind, c *Config) (Layout, error) {
	e, ok := catalog[k]
	if !ok {
		return Layout{}, fmt.Errorf("%w: 0x%02X", ErrUnknownKind, uint8(k))
	}
	if e.sizes == nil {
		return Layout{Kind: k, Min: 1, Max: 1 + c.TextChunkSize}, nil
	}
	return Layout{Kind: k, Sizes: e.sizes, Min: e.sizes[0], Max: e.sizes[len(e.sizes)-1]}, nil
}

func decodeSwap(r *reader) Payload {
	s := Swap{Flags: SwapFlags(r.u8())}
	if s.Flags&^swapMask != 0 {
		r.fail("swap flags 0x%02X", uint8(s.Flags))
	}
	if r.remaining() != 0 {
		s.Timestamped = true
		s.Timestamp = r.u16()
	}
	return s
}

func decodeText(r *reader) Payload {
	t := Text{Index: r.u8()}
	t.Data = r.rest()
	if i := nonASCII(t.Data); i >= 0 {
		r.fail("byte 0x%02X at offset %d is not 7-bit ASCII", t.Data[i], i)
	}
	return t
}

func decodeGradient(r *reader) Payload {
	g := DrawGradient{From: r.color(), To: r.color(), Type: Gradient(r.u8())}
	if g.Type > GradientVertical {
		r.fail("gradient type %d", uint8(g.Type))
	}
	if r.remaining() != 0 {
		rect := r.rect()
		g.Rect = &rect
	}
	return g
}

func decodeRainbow(r *reader) Payload {
	d := DrawRainbow{Hue1: r.f32(), Hue2: r.f32(), Value: r.f32()}
	if math.IsNaN(float64(d.Value)) || d.Value < 0 || d.Value > 1 {
		r.fail("rainbow value %v not in [0, 1]", d.Value)
	}
	if r.remaining() != 0 {
		rect := r.rect()
		d.Rect = &rect
	}
	return d
}

func decodeStoreAddress(r *reader) Payload {
	if c := r.u8(); c != StoreAddressControl {
		r.fail("control byte 0x%02X, want 0x%02X", c, StoreAddressControl)
	}
	a := StoreAddress{Address: r.u8()}
	if a.Address > MaxAddress {
		r.fail("address %d not in [0, %d]", a.Address, MaxAddress)
	}
	if v := r.u8(); v != 0 {
		r.fail("reserved byte 0x%02X", v)
	}
	return a
}
