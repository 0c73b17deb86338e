// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package banner

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
)

func TestRender(t *testing.T) {
	img, err := Render("Hi", nil)
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dy() != 8 || b.Dx() <= 2 {
		t.Fatalf("Bounds() = %s", b)
	}
	lit := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r != 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("nothing drawn")
	}
}

func TestRenderEmpty(t *testing.T) {
	img, err := Render("", &Opts{Height: 16, Padding: 3})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(6, 16) {
		t.Fatalf("Size() = %s", got)
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := Render("x", &Opts{Height: 0}); err == nil {
		t.Fatal("Render() accepted a zero height")
	}
	if _, err := Render("x", &Opts{Height: 8, TTF: []byte("not a font")}); err == nil {
		t.Fatal("Render() accepted a bad font")
	}
}

func TestLoad(t *testing.T) {
	dc := gg.NewContext(4, 2)
	dc.SetRGB(1, 0, 0)
	dc.Clear()
	p := filepath.Join(t.TempDir(), "red.png")
	if err := dc.SavePNG(p); err != nil {
		t.Fatal(err)
	}
	img, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Size() != image.Pt(4, 2) {
		t.Fatalf("Bounds() = %s", img.Bounds())
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("Load() of a missing file succeeded")
	}
}

func TestFit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 32, 16))
	if got := Fit(src, 8).Bounds(); got != image.Rect(0, 0, 16, 8) {
		t.Fatalf("Fit() = %s", got)
	}
}

func TestFrame(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, red)
	bounds := image.Rect(0, 0, 4, 1)
	f := Frame(bounds, img, -2, color.Black)
	for x := 0; x < 4; x++ {
		want := color.RGBA{A: 255}
		if x == 2 {
			want = red
		}
		if got := f.RGBAAt(x, 0); got != want {
			t.Errorf("pixel %d = %v, want %v", x, got, want)
		}
	}
}

// counter is a display.Drawer counting the frames drawn.
type counter struct {
	n int
}

func (c *counter) String() string          { return "counter" }
func (c *counter) Halt() error             { return nil }
func (c *counter) ColorModel() color.Model { return color.RGBAModel }
func (c *counter) Bounds() image.Rectangle { return image.Rect(0, 0, 4, 1) }

func (c *counter) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	c.n++
	return nil
}

func TestScroll(t *testing.T) {
	c := &counter{}
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	if err := Scroll(context.Background(), c, img, nil, 0); err != nil {
		t.Fatal(err)
	}
	// From fully right of the display to fully left of it.
	if c.n != 4+2+1 {
		t.Fatalf("%d frames", c.n)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Scroll(ctx, c, img, nil, 0); err != context.Canceled {
		t.Fatalf("Scroll() = %v", err)
	}
}
