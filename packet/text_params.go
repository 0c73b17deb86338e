// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package packet

import "fmt"

// TextField names a field of TextParameters. Fields are numbered in wire
// order starting at 1.
type TextField int

const (
	TextColor TextField = iota + 1
	TextOverlay
	TextBackground
	TextFont
	TextMonospace
	TextCharSpacing
	TextLineSpacing

	// TextAll selects every field.
	TextAll = TextLineSpacing
)

var textFieldNames = [...]string{
	"",
	"Color",
	"Overlay",
	"Background",
	"Font",
	"Monospace",
	"CharSpacing",
	"LineSpacing",
}

func (f TextField) String() string {
	if f >= 0 && int(f) < len(textFieldNames) {
		if f == 0 {
			return "none"
		}
		return textFieldNames[f]
	}
	return fmt.Sprintf("TextField(%d)", int(f))
}

// textSizes[n] is the payload size when the first n fields are sent.
var textSizes = [...]int{0, 3, 4, 7, 8, 9, 10, 11}

// TextParameters sets how the stored text is drawn.
//
// Only the first Fields fields are sent; the cell keeps its current value for
// the others. Fields are positional: setting Fields to TextFont sends Color,
// Overlay, Background and Font. The zero value sends nothing.
type TextParameters struct {
	Color Color
	// Overlay draws the text over the current image instead of over a uniform
	// Background.
	Overlay     bool
	Background  Color
	Font        uint8
	Monospace   bool
	CharSpacing uint8
	LineSpacing uint8

	// Fields is the number of leading fields present, 0 to TextAll.
	Fields TextField
}

// Has reports whether field f is sent.
func (p TextParameters) Has(f TextField) bool {
	return f >= TextColor && f <= p.Fields
}

func (TextParameters) Kind() Kind { return KindTextParameters }

func (p TextParameters) size() int {
	if p.Fields < 0 || p.Fields > TextAll {
		return 0
	}
	return textSizes[p.Fields]
}

func (p TextParameters) check(*Config) error {
	if p.Fields < 0 || p.Fields > TextAll {
		return outOfRange("Fields", "%d fields, at most %d", int(p.Fields), int(TextAll))
	}
	return nil
}

func (p TextParameters) put(w *writer) {
	for f := TextColor; f <= p.Fields; f++ {
		switch f {
		case TextColor:
			w.color(p.Color)
		case TextOverlay:
			w.bool(p.Overlay)
		case TextBackground:
			w.color(p.Background)
		case TextFont:
			w.u8(p.Font)
		case TextMonospace:
			w.bool(p.Monospace)
		case TextCharSpacing:
			w.u8(p.CharSpacing)
		case TextLineSpacing:
			w.u8(p.LineSpacing)
		}
	}
}

func decodeTextParameters(r *reader) Payload {
	var p TextParameters
	n := r.remaining()
	for f, size := range textSizes {
		if size == n {
			p.Fields = TextField(f)
		}
	}
	for f := TextColor; f <= p.Fields; f++ {
		switch f {
		case TextColor:
			p.Color = r.color()
		case TextOverlay:
			p.Overlay = r.bool()
		case TextBackground:
			p.Background = r.color()
		case TextFont:
			p.Font = r.u8()
		case TextMonospace:
			p.Monospace = r.bool()
		case TextCharSpacing:
			p.CharSpacing = r.u8()
		case TextLineSpacing:
			p.LineSpacing = r.u8()
		}
	}
	return p
}
