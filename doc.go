// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package flashmat is a container for the FlashMat LED matrix host software.
//
// packet builds and decodes the command frames understood by the cell
// firmware. cell and wall drive one cell or a row of them over I²C. marquee,
// scroll, glyph and sanitize turn a message into scrolling text; banner
// renders text or pictures host side. busdump prints frames instead of
// sending them.
//
// The flashmat command ties them together.
package flashmat
