// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package marquee scrolls a string across a cell or a wall of cells.
//
// The text is stored on the cells a window at a time. The window is drawn at
// decreasing offsets until its first character has left the display, then the
// window moves one character forward. Only the text position, DrawText and
// Swap are sent on each tick.
package marquee

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/GermanBionicSystems/flashmat/glyph"
	"github.com/GermanBionicSystems/flashmat/packet"
	"github.com/GermanBionicSystems/flashmat/scroll"
)

// Target is a display able to draw stored text. Both cell.Dev and wall.Dev
// implement it.
type Target interface {
	SetTextParameters(p packet.TextParameters) error
	SetText(s string) error
	SetTextPosition(p image.Point) error
	DrawText() error
	Swap(flags packet.SwapFlags) error
}

// Opts defines how the text scrolls.
type Opts struct {
	// Lead is the number of blanks prepended to the text so it enters from
	// the right.
	Lead int
	// Window is the number of characters stored on the cells at once.
	Window int
	// Interval is the delay between two ticks.
	Interval time.Duration
	// Y is the vertical position of the text.
	Y int
	// Params is sent once before scrolling.
	Params packet.TextParameters
	// Sequencer measures the characters; it must match Params.Font and
	// Params.CharSpacing.
	Sequencer scroll.Sequencer
	// Logger defaults to a disabled logger.
	Logger *zerolog.Logger
}

// DefaultOpts scrolls orange text on black with the cell's font 0.
var DefaultOpts = Opts{
	Lead:     20,
	Window:   30,
	Interval: 30 * time.Millisecond,
	Params: packet.TextParameters{
		Color:       packet.Color{R: 255, G: 127},
		Background:  packet.Black,
		CharSpacing: 1,
		LineSpacing: 1,
		Fields:      packet.TextAll,
	},
	Sequencer: scroll.Sequencer{Metrics: glyph.FlashMat, Spacing: 1},
}

// Run scrolls text once across t. It returns when the last character has
// left the display, on the first error, or when ctx is done.
func Run(ctx context.Context, t Target, text string, opts *Opts) error {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Window < 1 {
		return fmt.Errorf("marquee: invalid window %d", opts.Window)
	}
	if opts.Lead < 0 {
		return fmt.Errorf("marquee: invalid lead %d", opts.Lead)
	}
	log := opts.Logger
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.SetTextParameters(opts.Params); err != nil {
		return fmt.Errorf("marquee: %w", err)
	}
	text = strings.Repeat(" ", opts.Lead) + text
	log.Info().Int("len", len(text)).Dur("interval", opts.Interval).Msg("scrolling")
	start := time.Now()
	var tick <-chan time.Time
	if opts.Interval > 0 {
		ticker := time.NewTicker(opts.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	ticks := 0
	for i := 0; i < len(text); i++ {
		w := text[i:min(i+opts.Window, len(text))]
		if err := t.SetText(w); err != nil {
			return fmt.Errorf("marquee: %w", err)
		}
		offsets := opts.Sequencer.Offsets(w)
		log.Debug().Int("index", i).Str("window", w).Int("ticks", offsets.Len()).Msg("window")
		for x, ok := offsets.Next(); ok; x, ok = offsets.Next() {
			if err := t.SetTextPosition(image.Pt(x, opts.Y)); err != nil {
				return fmt.Errorf("marquee: %w", err)
			}
			if err := t.DrawText(); err != nil {
				return fmt.Errorf("marquee: %w", err)
			}
			if err := t.Swap(0); err != nil {
				return fmt.Errorf("marquee: %w", err)
			}
			ticks++
			if err := wait(ctx, tick); err != nil {
				log.Info().Int("ticks", ticks).Msg("interrupted")
				return err
			}
		}
	}
	log.Info().Int("ticks", ticks).Dur("elapsed", time.Since(start)).Msg("done")
	return nil
}

func wait(ctx context.Context, tick <-chan time.Time) error {
	if tick == nil {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tick:
		return nil
	}
}
