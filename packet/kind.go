// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package packet

import "fmt"

// Kind identifies a command. It is the first byte of every frame.
type Kind uint8

const (
	KindNone           Kind = 0 // null value, carries no payload
	KindPing           Kind = 1
	KindSwap           Kind = 2
	KindImageChunk4bit Kind = 15
	KindFill           Kind = 40
	KindCopyBuffer     Kind = 41
	KindCellPosition   Kind = 50
	KindTextPosition   Kind = 51
	KindTextParameters Kind = 60
	KindText           Kind = 61
	KindDrawText       Kind = 62
	KindDrawPixel      Kind = 80
	KindDrawLineH      Kind = 81
	KindDrawLineV      Kind = 82
	KindDrawRect       Kind = 84
	KindDrawGradient   Kind = 90
	KindDrawRainbow    Kind = 91
	KindStoreAddress   Kind = 100
)

// Kinds lists every kind of the catalog in id order.
var Kinds = []Kind{
	KindNone,
	KindPing,
	KindSwap,
	KindImageChunk4bit,
	KindFill,
	KindCopyBuffer,
	KindCellPosition,
	KindTextPosition,
	KindTextParameters,
	KindText,
	KindDrawText,
	KindDrawPixel,
	KindDrawLineH,
	KindDrawLineV,
	KindDrawRect,
	KindDrawGradient,
	KindDrawRainbow,
	KindStoreAddress,
}

func (k Kind) String() string {
	if e, ok := catalog[k]; ok {
		return e.name
	}
	return fmt.Sprintf("Kind(0x%02X)", uint8(k))
}

// SwapFlags is the OR of the swap options.
type SwapFlags uint8

const (
	// SwapSync waits for the synchronization signal before swapping.
	SwapSync SwapFlags = 0x01
	// SwapBlank blanks the back buffer after the swap.
	SwapBlank SwapFlags = 0x02

	swapMask = SwapSync | SwapBlank
)

func (f SwapFlags) String() string {
	switch f {
	case 0:
		return "0"
	case SwapSync:
		return "SYNC"
	case SwapBlank:
		return "BLANK"
	case SwapSync | SwapBlank:
		return "SYNC|BLANK"
	}
	return fmt.Sprintf("SwapFlags(0x%02X)", uint8(f))
}

// Gradient is the direction of a DrawGradient command.
type Gradient uint8

const (
	GradientHorizontal Gradient = 0
	GradientVertical   Gradient = 1
)

func (g Gradient) String() string {
	switch g {
	case GradientHorizontal:
		return "Horizontal"
	case GradientVertical:
		return "Vertical"
	}
	return fmt.Sprintf("Gradient(%d)", uint8(g))
}
