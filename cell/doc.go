// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package cell drives one FlashMat cell: an RGB LED matrix with its own
// controller, reachable at an I²C address.
//
// A cell holds two frame buffers. Drawing commands paint the back buffer and
// Swap shows it. Text is stored on the cell with SetText, styled with
// SetTextParameters, placed with SetTextPosition and painted with DrawText;
// scrolling only needs the last three.
//
// Each command is sent as a single I²C write. A Dev serialises its commands so
// the chunks of a string are never interleaved with another command.
//
// Cells of a wall share one coordinate system. Each cell is told the absolute
// position of its top-left pixel with SetPosition and only paints what falls
// inside its own matrix; the same commands can then be sent to every cell.
package cell
