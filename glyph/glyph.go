// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package glyph provides character widths for scrolling text.
//
// FlashMat returns the widths of the font stored in the cell firmware. Face
// measures any golang.org/x/image/font face, for text rendered on the host.
package glyph

import "golang.org/x/image/font"

// First and Last bound the printable characters of the cell font.
const (
	First = 0x20
	Last  = 0x7E
)

var flashMatWidths = [Last - First + 1]uint8{
	6, 1, 3, 6, 5, 6, 5, 1, 3, 3, 5, 5, 2, 3, 2, 5, // 0x20
	4, 3, 4, 4, 5, 4, 4, 4, 4, 4, 1, 2, 3, 4, 3, 5, // 0x30
	7, 4, 4, 4, 4, 4, 4, 4, 4, 3, 5, 4, 4, 5, 5, 5, // 0x40
	4, 5, 4, 4, 5, 5, 5, 7, 5, 5, 4, 3, 5, 3, 5, 6, // 0x50
	2, 4, 4, 3, 4, 4, 4, 4, 4, 1, 3, 3, 3, 5, 4, 4, // 0x60
	4, 4, 4, 4, 3, 4, 5, 5, 4, 4, 4, 4, 1, 4, 7, // 0x70
}

// FlashMat is the font 0 of the cell firmware.
var FlashMat flashMat

type flashMat struct{}

// Width returns the width of c in pixels, spacing excluded. Characters the
// font lacks have width 0.
func (flashMat) Width(c byte) uint8 {
	if c < First || c > Last {
		return 0
	}
	return flashMatWidths[c-First]
}

// Face measures characters with a font face. The zero value reports 0 for
// every character.
type Face struct {
	font.Face
}

// Width returns the advance of c rounded up to a whole pixel, or 0 when the
// face has no glyph for it.
func (f Face) Width(c byte) uint8 {
	if f.Face == nil {
		return 0
	}
	a, ok := f.GlyphAdvance(rune(c))
	if !ok {
		return 0
	}
	w := a.Ceil()
	if w > 255 {
		return 255
	}
	if w < 0 {
		return 0
	}
	return uint8(w)
}
