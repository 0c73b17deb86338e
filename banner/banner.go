// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package banner renders text and pictures on the host and scrolls them
// across a display.Drawer as images, for fonts the cells do not have.
package banner

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/display"
)

// Opts defines how text is rendered.
type Opts struct {
	// Height of the image in pixels.
	Height int
	// Size of the font in points at 72 DPI. 0 uses Height.
	Size float64
	// TTF is a TrueType font. nil uses Go Regular.
	TTF []byte
	// Padding is the blank space added on both sides of the text.
	Padding int

	Foreground, Background color.Color
}

// DefaultOpts fits a single row of cells.
var DefaultOpts = Opts{
	Height:     8,
	Padding:    1,
	Foreground: color.NRGBA{R: 255, G: 127, A: 255},
	Background: color.Black,
}

// Render draws text on one line, vertically centered, in an image exactly as
// wide as needed.
func Render(text string, opts *Opts) (*image.RGBA, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Height < 1 {
		return nil, fmt.Errorf("banner: invalid height %d", opts.Height)
	}
	ttf := opts.TTF
	if ttf == nil {
		ttf = goregular.TTF
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("banner: %w", err)
	}
	size := opts.Size
	if size == 0 {
		size = float64(opts.Height)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull})
	defer face.Close()

	m := gg.NewContext(1, 1)
	m.SetFontFace(face)
	tw, _ := m.MeasureString(text)
	w := int(math.Ceil(tw)) + 2*opts.Padding
	if w < 1 {
		w = 1
	}

	dc := gg.NewContext(w, opts.Height)
	dc.SetColor(orDefault(opts.Background, DefaultOpts.Background))
	dc.Clear()
	dc.SetColor(orDefault(opts.Foreground, DefaultOpts.Foreground))
	dc.SetFontFace(face)
	dc.DrawStringAnchored(text, float64(opts.Padding), float64(opts.Height)/2, 0, 0.35)
	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, errors.New("banner: unexpected image type")
	}
	return img, nil
}

// Load reads a PNG or JPEG file.
func Load(path string) (image.Image, error) {
	img, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("banner: %w", err)
	}
	return img, nil
}

// Fit scales img to height h, keeping its aspect ratio.
func Fit(img image.Image, h int) *image.RGBA {
	b := img.Bounds()
	w := 1
	if b.Dy() > 0 {
		w = max(1, b.Dx()*h/b.Dy())
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Frame returns the content of a display covering bounds when img is shifted
// left by x pixels, with bg around it. x may be negative.
func Frame(bounds image.Rectangle, img image.Image, x int, bg color.Color) *image.RGBA {
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, image.NewUniform(orDefault(bg, color.Black)), image.Point{}, draw.Src)
	ib := img.Bounds()
	r := image.Rectangle{Min: bounds.Min.Sub(image.Pt(x, 0)), Max: bounds.Min.Sub(image.Pt(x, 0)).Add(ib.Size())}
	draw.Draw(dst, r, img, ib.Min, draw.Over)
	return dst
}

// Scroll moves img from the right edge of d to its left edge, one pixel every
// interval.
func Scroll(ctx context.Context, d display.Drawer, img image.Image, bg color.Color, interval time.Duration) error {
	bounds := d.Bounds()
	var tick <-chan time.Time
	if interval > 0 {
		t := time.NewTicker(interval)
		defer t.Stop()
		tick = t.C
	}
	for x := -bounds.Dx(); x <= img.Bounds().Dx(); x++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.Draw(bounds, Frame(bounds, img, x, bg), bounds.Min); err != nil {
			return fmt.Errorf("banner: %w", err)
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
	}
	return nil
}

func orDefault(c, def color.Color) color.Color {
	if c == nil {
		return def
	}
	return c
}
