// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package glyph

import (
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/GermanBionicSystems/flashmat/scroll"
)

var (
	_ scroll.Metrics = FlashMat
	_ scroll.Metrics = Face{}
)

func TestFlashMat(t *testing.T) {
	for _, tc := range []struct {
		c    byte
		want uint8
	}{
		{' ', 6},
		{'!', 1},
		{'0', 4},
		{'@', 7},
		{'A', 4},
		{'W', 7},
		{'i', 1},
		{'~', 7},
		{0x1F, 0},
		{0x7F, 0},
		{0xFF, 0},
	} {
		if got := FlashMat.Width(tc.c); got != tc.want {
			t.Errorf("Width(%q) = %d, want %d", tc.c, got, tc.want)
		}
	}
}

// missing is a face without any glyph.
type missing struct {
	font.Face
}

func (missing) GlyphAdvance(rune) (fixed.Int26_6, bool) {
	return 0, false
}

// wide has glyphs half a pixel wider than basicfont.
type wide struct {
	font.Face
}

func (wide) GlyphAdvance(rune) (fixed.Int26_6, bool) {
	return fixed.I(7) + 32, true
}

func TestFace(t *testing.T) {
	if got := (Face{basicfont.Face7x13}).Width('A'); got != 7 {
		t.Fatalf("Width(A) = %d, want 7", got)
	}
	if got := (Face{wide{basicfont.Face7x13}}).Width('A'); got != 8 {
		t.Fatalf("Width(A) = %d, want 8", got)
	}
	if got := (Face{}).Width('A'); got != 0 {
		t.Fatalf("zero Face: got %d", got)
	}
	if got := (Face{missing{basicfont.Face7x13}}).Width('A'); got != 0 {
		t.Fatalf("Width(A) = %d, want 0", got)
	}
}

func TestScroll(t *testing.T) {
	s := scroll.Sequencer{Metrics: FlashMat, Spacing: 1}
	if got := s.Offsets("Hello").Len(); got != 5 {
		t.Fatalf("Len() = %d, want 5", got)
	}
	// 'H' 4, 'i' 1, each followed by one blank column.
	if got := s.TextWidth("Hi"); got != 7 {
		t.Fatalf("TextWidth() = %d, want 7", got)
	}
}
