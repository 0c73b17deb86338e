// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package wall drives a row of FlashMat cells sharing one bus as a single
// display.
//
// Cells are placed left to right in the order of their addresses. Every
// command is sent to every cell in turn; each cell only paints the part that
// falls inside its own matrix.
package wall

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"

	"github.com/GermanBionicSystems/flashmat/cell"
	"github.com/GermanBionicSystems/flashmat/packet"
)

// Dev is a row of cells.
type Dev struct {
	cells []*cell.Dev
	rect  image.Rectangle
}

// NewI2C opens the cells at addrs on b and tells each one its position. opts
// is used for every cell; its Addr and Position are ignored.
func NewI2C(b i2c.Bus, addrs []uint16, opts *cell.Opts) (*Dev, error) {
	if len(addrs) == 0 {
		return nil, errors.New("wall: no cell")
	}
	if opts == nil {
		opts = &cell.DefaultOpts
	}
	w := &Dev{}
	x := 0
	for _, a := range addrs {
		o := *opts
		o.Addr = a
		o.Position = image.Point{}
		c, err := cell.NewI2C(b, &o)
		if err != nil {
			return nil, fmt.Errorf("wall: %w", err)
		}
		p := image.Pt(x, 0)
		if err := c.SetPosition(p); err != nil {
			return nil, fmt.Errorf("wall: %w", err)
		}
		r := c.Bounds()
		w.rect = w.rect.Union(r)
		x = r.Max.X
		w.cells = append(w.cells, c)
	}
	return w, nil
}

// Cells returns the cells from left to right.
func (w *Dev) Cells() []*cell.Dev {
	return append([]*cell.Dev(nil), w.cells...)
}

func (w *Dev) String() string {
	s := make([]string, len(w.cells))
	for i, c := range w.cells {
		s[i] = c.String()
	}
	return "Wall{" + strings.Join(s, ", ") + "}"
}

// each calls f on every cell and joins the errors.
func (w *Dev) each(f func(c *cell.Dev) error) error {
	var errs []error
	for _, c := range w.cells {
		if err := f(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Send sends p to every cell.
func (w *Dev) Send(p packet.Payload) error {
	return w.each(func(c *cell.Dev) error { return c.Send(p) })
}

// Fill paints every cell with c.
func (w *Dev) Fill(c packet.Color) error {
	return w.each(func(d *cell.Dev) error { return d.Fill(c) })
}

// Swap shows the back buffer of every cell.
func (w *Dev) Swap(flags packet.SwapFlags) error {
	return w.each(func(d *cell.Dev) error { return d.Swap(flags) })
}

// SetTextParameters sets the text style of every cell.
func (w *Dev) SetTextParameters(p packet.TextParameters) error {
	return w.each(func(d *cell.Dev) error { return d.SetTextParameters(p) })
}

// SetText stores s on every cell.
func (w *Dev) SetText(s string) error {
	return w.each(func(d *cell.Dev) error { return d.SetText(s) })
}

// SetTextPosition moves the text of every cell.
func (w *Dev) SetTextPosition(p image.Point) error {
	return w.each(func(d *cell.Dev) error { return d.SetTextPosition(p) })
}

// DrawText paints the stored text on every cell.
func (w *Dev) DrawText() error {
	return w.each((*cell.Dev).DrawText)
}

// Halt implements conn.Resource.
func (w *Dev) Halt() error {
	return w.each((*cell.Dev).Halt)
}

// ColorModel implements display.Drawer.
func (w *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (w *Dev) Bounds() image.Rectangle {
	return w.rect
}

// Draw implements display.Drawer.
func (w *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	return w.each(func(d *cell.Dev) error { return d.Draw(r, src, sp) })
}

var _ conn.Resource = &Dev{}
var _ display.Drawer = &Dev{}
