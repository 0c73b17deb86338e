// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package packet implements the command protocol a commander uses to drive
// FlashMat LED matrix cells over a shared bus.
//
// Every command is a Frame: one byte identifying the Kind followed by the
// payload bytes. Multi-byte fields are sent MSB first. Colors are sent in a
// configurable channel order. Optional trailing fields (TextParameters, the
// rectangle of DrawGradient and DrawRainbow, the Swap timestamp) are length
// discriminated: a field is absent when its bytes are absent, never because it
// holds a sentinel value.
//
// Strings longer than the text chunk capacity are split by a Chunker into Text
// payloads carrying a sequence index. Receivers expect the chunks of one string
// in index order, with no gaps, and every chunk but the last one full.
//
// A Codec holds the configuration (channel order, maximum frame size, text
// chunk capacity) and no other state; it is safe for concurrent use. The codec
// performs no I/O: the resulting frames are handed to a transport, usually an
// i2c.Dev as done by package cell.
//
// # Wire layout
//
//	Kind            Id   Payload
//	Ping             1   -
//	Swap             2   flags [timestamp u16]
//	ImageChunk4bit  15   col row pixels(96)
//	Fill            40   color
//	CopyBuffer      41   -
//	CellPosition    50   x y
//	TextPosition    51   x y
//	TextParameters  60   [color [overlay [bg [font [mono [charsp [linesp]]]]]]]
//	Text            61   index ascii(<=31)
//	DrawText        62   -
//	DrawPixel       80   x y color
//	DrawLineH       81   x1 x2 y color
//	DrawLineV       82   x y1 y2 color
//	DrawRect        84   x1 y1 x2 y2 color filled
//	DrawGradient    90   color1 color2 type [x1 y1 x2 y2]
//	DrawRainbow     91   hue1 hue2 value [x1 y1 x2 y2]
//	StoreAddress   100   ^100 address 0
package packet
