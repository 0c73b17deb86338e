// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cell

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"

	"github.com/GermanBionicSystems/flashmat/packet"
)

// DefaultAddr is the address of a cell that was never given one.
const DefaultAddr = 0x40

// DefaultOpts is the stock 32×8 cell.
var DefaultOpts = Opts{
	Addr:   DefaultAddr,
	Width:  32,
	Height: 8,
	Codec:  packet.DefaultConfig,
}

// Opts defines the options for the device.
type Opts struct {
	// Addr is the I²C address of the cell. 0 uses DefaultAddr.
	Addr uint16
	// Width and Height are the matrix size in pixels. Both must be multiples
	// of 8 to use Draw.
	Width, Height int
	// Position is the absolute coordinate of the top-left pixel. It is only
	// sent to the cell by SetPosition.
	Position image.Point
	// Codec must match the cell firmware. The zero value uses
	// packet.DefaultConfig.
	Codec packet.Config
}

var errPosition = errors.New("cell: coordinate out of range")

// Dev is an open handle to a cell.
type Dev struct {
	mu    sync.Mutex
	d     i2c.Dev
	codec *packet.Codec
	rect  image.Rectangle
	// next is the host copy of the back buffer, allocated on the first Draw.
	next *image.NRGBA
}

// NewI2C returns a handle to the cell at opts.Addr on b. It does not talk to
// the cell.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.Addr == 0 {
		o.Addr = DefaultOpts.Addr
	}
	if o.Width == 0 {
		o.Width = DefaultOpts.Width
	}
	if o.Height == 0 {
		o.Height = DefaultOpts.Height
	}
	if o.Codec == (packet.Config{}) {
		o.Codec = packet.DefaultConfig
	}
	if o.Width < 0 || o.Height < 0 {
		return nil, fmt.Errorf("cell: invalid size %dx%d", o.Width, o.Height)
	}
	c, err := packet.New(&o.Codec)
	if err != nil {
		return nil, fmt.Errorf("cell: %w", err)
	}
	return &Dev{
		d:     i2c.Dev{Bus: b, Addr: o.Addr},
		codec: c,
		rect:  image.Rectangle{Min: o.Position, Max: o.Position.Add(image.Pt(o.Width, o.Height))},
	}, nil
}

func (d *Dev) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fmt.Sprintf("FlashMat{%s, %s}", &d.d, d.rect)
}

// Addr returns the current address of the cell.
func (d *Dev) Addr() uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.d.Addr
}

// Codec returns the codec used to build the frames.
func (d *Dev) Codec() *packet.Codec {
	return d.codec
}

// Send builds p and writes it to the cell.
func (d *Dev) Send(p packet.Payload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.send(p)
}

func (d *Dev) send(p packet.Payload) error {
	f, err := d.codec.Build(p)
	if err != nil {
		return fmt.Errorf("cell: %w", err)
	}
	if err := d.d.Tx(f.Bytes(), nil); err != nil {
		return fmt.Errorf("cell: sending %s to 0x%02X: %w", f.Kind(), d.d.Addr, err)
	}
	return nil
}

// Ping checks that the cell acknowledges its address.
func (d *Dev) Ping() error {
	return d.Send(packet.Ping{})
}

// Swap shows the back buffer.
func (d *Dev) Swap(flags packet.SwapFlags) error {
	return d.Send(packet.Swap{Flags: flags})
}

// SwapAfter shows the back buffer, telling the cell how many milliseconds
// elapsed since the previous swap.
func (d *Dev) SwapAfter(flags packet.SwapFlags, ms uint16) error {
	return d.Send(packet.Swap{Flags: flags, Timestamped: true, Timestamp: ms})
}

// Fill paints the whole back buffer with c.
func (d *Dev) Fill(c packet.Color) error {
	return d.Send(packet.Fill{Color: c})
}

// CopyBuffer copies the front buffer into the back buffer.
func (d *Dev) CopyBuffer() error {
	return d.Send(packet.CopyBuffer{})
}

// SetPosition tells the cell the absolute coordinate of its top-left pixel.
func (d *Dev) SetPosition(p image.Point) error {
	x, y, err := point16(p)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.send(packet.CellPosition{X: x, Y: y}); err != nil {
		return err
	}
	d.rect = d.rect.Sub(d.rect.Min).Add(p)
	if d.next != nil {
		d.next.Rect = d.rect
	}
	return nil
}

// SetTextPosition sets where the stored text is drawn, in absolute
// coordinates.
func (d *Dev) SetTextPosition(p image.Point) error {
	x, y, err := point16(p)
	if err != nil {
		return err
	}
	return d.Send(packet.TextPosition{X: x, Y: y})
}

// SetTextParameters sets how the stored text is drawn.
func (d *Dev) SetTextParameters(p packet.TextParameters) error {
	return d.Send(p)
}

// SetText stores s on the cell. The chunks are sent in order; the transfer
// stops at the first error.
func (d *Dev) SetText(s string) error {
	ch, err := d.codec.Chunks(s)
	if err != nil {
		return fmt.Errorf("cell: %w", err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for t, ok := ch.Next(); ok; t, ok = ch.Next() {
		if err := d.send(t); err != nil {
			return err
		}
	}
	return nil
}

// DrawText paints the stored text in the back buffer.
func (d *Dev) DrawText() error {
	return d.Send(packet.DrawText{})
}

// DrawPixel sets one pixel of the back buffer.
func (d *Dev) DrawPixel(x, y int16, c packet.Color) error {
	return d.Send(packet.DrawPixel{X: x, Y: y, Color: c})
}

// DrawLineH draws a horizontal line from (x1, y) to (x2, y).
func (d *Dev) DrawLineH(x1, x2, y int16, c packet.Color) error {
	return d.Send(packet.DrawLineH{X1: x1, X2: x2, Y: y, Color: c})
}

// DrawLineV draws a vertical line from (x, y1) to (x, y2).
func (d *Dev) DrawLineV(x, y1, y2 int16, c packet.Color) error {
	return d.Send(packet.DrawLineV{X: x, Y1: y1, Y2: y2, Color: c})
}

// DrawRect draws the outline of r, or fills it.
func (d *Dev) DrawRect(r packet.Rect, c packet.Color, filled bool) error {
	return d.Send(packet.DrawRect{Rect: r, Color: c, Filled: filled})
}

// DrawGradient paints a gradient in r, or in the whole cell when r is nil.
func (d *Dev) DrawGradient(from, to packet.Color, g packet.Gradient, r *packet.Rect) error {
	return d.Send(packet.DrawGradient{From: from, To: to, Type: g, Rect: r})
}

// DrawRainbow paints a hue gradient in r, or in the whole cell when r is nil.
func (d *Dev) DrawRainbow(hue1, hue2, value float32, r *packet.Rect) error {
	return d.Send(packet.DrawRainbow{Hue1: hue1, Hue2: hue2, Value: value, Rect: r})
}

// StoreAddress gives the cell a new address. The handle uses it for the
// following commands.
func (d *Dev) StoreAddress(addr uint16) error {
	if addr > packet.MaxAddress {
		return fmt.Errorf("cell: %w: %d", packet.ErrInvalidAddress, addr)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.send(packet.StoreAddress{Address: uint8(addr)}); err != nil {
		return err
	}
	d.d.Addr = addr
	return nil
}

// Halt implements conn.Resource.
//
// It blanks the matrix.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.send(packet.Fill{Color: packet.Black}); err != nil {
		return err
	}
	return d.send(packet.Swap{})
}

// ColorModel implements display.Drawer.
//
// The cell has 4 bits per channel.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer. It is in absolute coordinates.
func (d *Dev) Bounds() image.Rectangle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rect
}

// Draw implements display.Drawer.
//
// The 8×8 blocks touched by r are sent as 4-bit images, then the back buffer
// is shown. Pixels outside the cell are ignored, so the same image can be
// drawn on every cell of a wall.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.rect.Dx()%8 != 0 || d.rect.Dy()%8 != 0 {
		return fmt.Errorf("cell: size %s is not a multiple of 8", d.rect.Size())
	}
	if d.next == nil {
		d.next = image.NewNRGBA(d.rect)
	}
	// Align r to the cell before drawing so sp moves with it.
	clip := r.Intersect(d.rect)
	if clip.Empty() {
		return nil
	}
	sp = sp.Add(clip.Min.Sub(r.Min))
	draw.Draw(d.next, clip, src, sp, draw.Src)
	order := d.codec.Config().Order
	for by := (clip.Min.Y - d.rect.Min.Y) / 8; by*8 < clip.Max.Y-d.rect.Min.Y; by++ {
		for bx := (clip.Min.X - d.rect.Min.X) / 8; bx*8 < clip.Max.X-d.rect.Min.X; bx++ {
			p := packet.ImageChunk4bit{Col: uint8(bx), Row: uint8(by)}
			pack4bit(&p.Pix, d.next, d.rect.Min.Add(image.Pt(bx*8, by*8)), order)
			if err := d.send(p); err != nil {
				return err
			}
		}
	}
	return d.send(packet.Swap{})
}

// pack4bit packs the 8×8 block of img at o, row by row, keeping the high 4
// bits of each channel.
func pack4bit(dst *[packet.ImageChunkSize]byte, img *image.NRGBA, o image.Point, order packet.ChannelOrder) {
	*dst = [packet.ImageChunkSize]byte{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := img.NRGBAAt(o.X+x, o.Y+y)
			k := 3 * (8*y + x)
			for ch, v := range [3]uint8{c.R, c.G, c.B} {
				n := k + int(order[ch])
				if n%2 == 0 {
					dst[n/2] |= v & 0xF0
				} else {
					dst[n/2] |= v >> 4
				}
			}
		}
	}
}

func point16(p image.Point) (int16, int16, error) {
	if p.X < math.MinInt16 || p.X > math.MaxInt16 || p.Y < math.MinInt16 || p.Y > math.MaxInt16 {
		return 0, 0, fmt.Errorf("%w: %s", errPosition, p)
	}
	return int16(p.X), int16(p.Y), nil
}

var _ conn.Resource = &Dev{}
var _ display.Drawer = &Dev{}
