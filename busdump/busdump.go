// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package busdump implements an i2c.Bus that prints the FlashMat frames
// written to it instead of sending them.
//
// Useful to try a wall layout or an animation without the cells at hand.
// Colors are shown as ANSI color blocks when the output is a terminal.
package busdump

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"sync"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/flashmat/packet"
)

// Opts represents the options available for this bus.
type Opts struct {
	// Out defaults to stdout.
	Out io.Writer
	// Color forces color blocks on or off. nil enables them when Out is nil
	// and stdout is a terminal.
	Color   *bool
	Palette *ansi256.Palette
	// Codec must match the frames written. The zero value uses
	// packet.DefaultConfig.
	Codec packet.Config

	_ struct{}
}

// Bus prints frames as they are written.
type Bus struct {
	mu      sync.Mutex
	w       io.Writer
	color   bool
	palette ansi256.Palette
	codec   *packet.Codec
	frames  int

	buf bytes.Buffer
}

// New returns a Bus printing to opts.Out.
func New(opts *Opts) (*Bus, error) {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	cfg := opts.Codec
	if cfg == (packet.Config{}) {
		cfg = packet.DefaultConfig
	}
	c, err := packet.New(&cfg)
	if err != nil {
		return nil, fmt.Errorf("busdump: %w", err)
	}
	b := &Bus{w: opts.Out, palette: *p, codec: c}
	if b.w == nil {
		b.w = colorable.NewColorableStdout()
		fd := os.Stdout.Fd()
		b.color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	if opts.Color != nil {
		b.color = *opts.Color
	}
	return b, nil
}

func (b *Bus) String() string {
	return "busdump"
}

// Tx implements i2c.Bus.
//
// Frames that do not decode are printed as hex along with the decode error;
// they never fail the transaction. Reads return zeros.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(r)
	b.frames++
	b.buf.Reset()
	fmt.Fprintf(&b.buf, "0x%02X ", addr)
	k, p, err := b.codec.Decode(w)
	if err != nil {
		fmt.Fprintf(&b.buf, "[% X] %v\n", w, err)
	} else {
		b.describe(k, p)
	}
	_, err = b.buf.WriteTo(b.w)
	return err
}

func (b *Bus) describe(k packet.Kind, p packet.Payload) {
	switch v := p.(type) {
	case packet.Text:
		fmt.Fprintf(&b.buf, "%s {Index:%d Data:%q}", k, v.Index, v.Data)
	case packet.ImageChunk4bit:
		fmt.Fprintf(&b.buf, "%s {Col:%d Row:%d}", k, v.Col, v.Row)
	default:
		fmt.Fprintf(&b.buf, "%s %+v", k, p)
	}
	if b.color {
		for _, c := range colors(p) {
			b.buf.WriteString(" " + b.palette.Block(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}) + "\033[0m")
		}
	}
	b.buf.WriteByte('\n')
}

// colors returns the colors carried by p.
func colors(p packet.Payload) []packet.Color {
	switch v := p.(type) {
	case packet.Fill:
		return []packet.Color{v.Color}
	case packet.DrawPixel:
		return []packet.Color{v.Color}
	case packet.DrawLineH:
		return []packet.Color{v.Color}
	case packet.DrawLineV:
		return []packet.Color{v.Color}
	case packet.DrawRect:
		return []packet.Color{v.Color}
	case packet.DrawGradient:
		return []packet.Color{v.From, v.To}
	case packet.TextParameters:
		var c []packet.Color
		if v.Has(packet.TextColor) {
			c = append(c, v.Color)
		}
		if v.Has(packet.TextBackground) {
			c = append(c, v.Background)
		}
		return c
	}
	return nil
}

// SetSpeed implements i2c.Bus.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return nil
}

// Frames returns the number of frames written so far.
func (b *Bus) Frames() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}

// Close implements i2c.BusCloser.
func (b *Bus) Close() error {
	if !b.color {
		return nil
	}
	_, err := b.w.Write([]byte("\033[0m"))
	return err
}

var _ i2c.BusCloser = &Bus{}
