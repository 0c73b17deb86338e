// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/GermanBionicSystems/flashmat/cell"
	"github.com/GermanBionicSystems/flashmat/glyph"
	"github.com/GermanBionicSystems/flashmat/marquee"
	"github.com/GermanBionicSystems/flashmat/packet"
	"github.com/GermanBionicSystems/flashmat/scroll"
)

// config is the content of the TOML configuration file.
type config struct {
	// Bus is the I²C bus name, as understood by i2creg.Open.
	Bus    string   `toml:"bus"`
	Cells  []uint16 `toml:"cells"`
	Width  int      `toml:"width"`
	Height int      `toml:"height"`

	Order        string `toml:"order"`
	MaxFrameSize int    `toml:"max_frame_size"`
	ChunkSize    int    `toml:"chunk_size"`

	Text   textConfig   `toml:"text"`
	Banner bannerConfig `toml:"banner"`
}

type textConfig struct {
	Color       string        `toml:"color"`
	Background  string        `toml:"background"`
	Overlay     bool          `toml:"overlay"`
	Font        uint8         `toml:"font"`
	Monospace   bool          `toml:"monospace"`
	CharSpacing uint8         `toml:"char_spacing"`
	LineSpacing uint8         `toml:"line_spacing"`
	Lead        int           `toml:"lead"`
	Window      int           `toml:"window"`
	Interval    time.Duration `toml:"interval"`
	Y           int           `toml:"y"`
}

type bannerConfig struct {
	// Font is a TrueType file. Empty uses Go Regular.
	Font     string        `toml:"font"`
	Size     float64       `toml:"size"`
	Interval time.Duration `toml:"interval"`
}

// defaultConfig is a wall of four 32×8 cells.
func defaultConfig() config {
	return config{
		Cells:        []uint16{0x41, 0x40, 0x3D, 0x3E},
		Width:        cell.DefaultOpts.Width,
		Height:       cell.DefaultOpts.Height,
		Order:        "RGB",
		MaxFrameSize: packet.DefaultConfig.MaxFrameSize,
		ChunkSize:    packet.DefaultConfig.TextChunkSize,
		Text: textConfig{
			Color:       "#ff7f00",
			Background:  "#000000",
			CharSpacing: 1,
			LineSpacing: 1,
			Lead:        marquee.DefaultOpts.Lead,
			Window:      marquee.DefaultOpts.Window,
			Interval:    marquee.DefaultOpts.Interval,
		},
		Banner: bannerConfig{
			Interval: 20 * time.Millisecond,
		},
	}
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if u := md.Undecoded(); len(u) != 0 {
		return c, fmt.Errorf("config: unknown keys %v", u)
	}
	return c, c.validate()
}

func (c *config) validate() error {
	var errs []error
	if len(c.Cells) == 0 {
		errs = append(errs, errors.New("config: no cell"))
	}
	for _, a := range c.Cells {
		if a == 0 || a > packet.MaxAddress {
			errs = append(errs, fmt.Errorf("config: invalid cell address %d", a))
		}
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: invalid cell size %dx%d", c.Width, c.Height))
	}
	if _, err := c.codec(); err != nil {
		errs = append(errs, fmt.Errorf("config: %w", err))
	}
	if _, err := c.marquee(); err != nil {
		errs = append(errs, fmt.Errorf("config: %w", err))
	}
	return errors.Join(errs...)
}

func (c *config) codec() (packet.Config, error) {
	o, err := packet.ParseChannelOrder(c.Order)
	if err != nil {
		return packet.Config{}, err
	}
	pc := packet.Config{Order: o, MaxFrameSize: c.MaxFrameSize, TextChunkSize: c.ChunkSize}
	if _, err := packet.New(&pc); err != nil {
		return packet.Config{}, err
	}
	return pc, nil
}

func (c *config) cellOpts() (cell.Opts, error) {
	pc, err := c.codec()
	if err != nil {
		return cell.Opts{}, err
	}
	return cell.Opts{Width: c.Width, Height: c.Height, Codec: pc}, nil
}

func (c *config) marquee() (marquee.Opts, error) {
	fg, err := parseColor(c.Text.Color)
	if err != nil {
		return marquee.Opts{}, err
	}
	bg, err := parseColor(c.Text.Background)
	if err != nil {
		return marquee.Opts{}, err
	}
	if c.Text.Window < 1 {
		return marquee.Opts{}, fmt.Errorf("invalid text window %d", c.Text.Window)
	}
	if c.Text.Lead < 0 {
		return marquee.Opts{}, fmt.Errorf("invalid text lead %d", c.Text.Lead)
	}
	return marquee.Opts{
		Lead:     c.Text.Lead,
		Window:   c.Text.Window,
		Interval: c.Text.Interval,
		Y:        c.Text.Y,
		Params: packet.TextParameters{
			Color:       fg,
			Overlay:     c.Text.Overlay,
			Background:  bg,
			Font:        c.Text.Font,
			Monospace:   c.Text.Monospace,
			CharSpacing: c.Text.CharSpacing,
			LineSpacing: c.Text.LineSpacing,
			Fields:      packet.TextAll,
		},
		Sequencer: scroll.Sequencer{Metrics: glyph.FlashMat, Spacing: c.Text.CharSpacing},
	}, nil
}

// parseColor parses "#rrggbb".
func parseColor(s string) (packet.Color, error) {
	h, ok := strings.CutPrefix(s, "#")
	if !ok || len(h) != 6 {
		return packet.Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return packet.Color{}, fmt.Errorf("invalid color %q", s)
	}
	return packet.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func nrgba(c packet.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
