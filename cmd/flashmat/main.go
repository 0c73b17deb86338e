// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// flashmat drives a wall of FlashMat cells.
//
// Usage:
//
//	flashmat [flags] -mode text "Hello, world"
//	flashmat [flags] -mode file message.txt
//	flashmat [flags] -mode banner "Hello, world"
//	flashmat [flags] -mode image picture.png
//	flashmat [flags] -mode address 0x40:0x3D
//	flashmat [flags] -mode ping
//	flashmat [flags] -mode blank
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/flashmat/banner"
	"github.com/GermanBionicSystems/flashmat/busdump"
	"github.com/GermanBionicSystems/flashmat/cell"
	"github.com/GermanBionicSystems/flashmat/marquee"
	"github.com/GermanBionicSystems/flashmat/packet"
	"github.com/GermanBionicSystems/flashmat/sanitize"
	"github.com/GermanBionicSystems/flashmat/wall"
)

// envLogLevel overrides the log level.
const envLogLevel = "FLASHMAT_LOG_LEVEL"

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if verbose {
		lvl = zerolog.DebugLevel
	}
	if v := os.Getenv(envLogLevel); v != "" {
		if l, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			lvl = l
		}
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func openBus(name string, dryRun bool) (i2c.BusCloser, error) {
	if dryRun {
		b, err := busdump.New(nil)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	return i2creg.Open(name)
}

// parseAddresses parses "old:new". The old address cannot be the broadcast
// address 0.
func parseAddresses(s string) (uint16, uint16, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("want old:new, got %q", s)
	}
	from, err := strconv.ParseUint(a, 0, 7)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid address %q", a)
	}
	if from == 0 {
		return 0, 0, errors.New("cannot reassign the broadcast address 0")
	}
	to, err := strconv.ParseUint(b, 0, 7)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid address %q", b)
	}
	return uint16(from), uint16(to), nil
}

type app struct {
	cfg  config
	log  zerolog.Logger
	bus  i2c.Bus
	loop bool
}

func (a *app) wall() (*wall.Dev, error) {
	o, err := a.cfg.cellOpts()
	if err != nil {
		return nil, err
	}
	return wall.NewI2C(a.bus, a.cfg.Cells, &o)
}

func (a *app) text(ctx context.Context, s string) error {
	w, err := a.wall()
	if err != nil {
		return err
	}
	o, err := a.cfg.marquee()
	if err != nil {
		return err
	}
	o.Logger = &a.log
	s = sanitize.ASCII(s)
	for {
		if err := marquee.Run(ctx, w, s, &o); err != nil {
			return err
		}
		if !a.loop {
			return nil
		}
	}
}

func (a *app) file(ctx context.Context, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return a.text(ctx, string(b))
}

func (a *app) scrollImage(ctx context.Context, img image.Image) error {
	w, err := a.wall()
	if err != nil {
		return err
	}
	if img.Bounds().Dx() <= w.Bounds().Dx() && !a.loop {
		return w.Draw(w.Bounds(), banner.Frame(w.Bounds(), img, 0, nil), w.Bounds().Min)
	}
	for {
		a.log.Debug().Stringer("size", img.Bounds().Size()).Msg("scrolling image")
		if err := banner.Scroll(ctx, w, img, nil, a.cfg.Banner.Interval); err != nil {
			return err
		}
		if !a.loop {
			return nil
		}
	}
}

func (a *app) banner(ctx context.Context, s string) error {
	o := banner.DefaultOpts
	o.Height = a.cfg.Height
	o.Size = a.cfg.Banner.Size
	if a.cfg.Banner.Font != "" {
		ttf, err := os.ReadFile(a.cfg.Banner.Font)
		if err != nil {
			return err
		}
		o.TTF = ttf
	}
	if c, err := parseColor(a.cfg.Text.Color); err == nil {
		o.Foreground = nrgba(c)
	}
	if c, err := parseColor(a.cfg.Text.Background); err == nil {
		o.Background = nrgba(c)
	}
	img, err := banner.Render(s, &o)
	if err != nil {
		return err
	}
	return a.scrollImage(ctx, img)
}

func (a *app) image(ctx context.Context, path string) error {
	img, err := banner.Load(path)
	if err != nil {
		return err
	}
	return a.scrollImage(ctx, banner.Fit(img, a.cfg.Height))
}

func (a *app) blank() error {
	w, err := a.wall()
	if err != nil {
		return err
	}
	if err := w.Fill(packet.Black); err != nil {
		return err
	}
	return w.Swap(0)
}

func (a *app) ping() error {
	o, err := a.cfg.cellOpts()
	if err != nil {
		return err
	}
	var errs []error
	for _, addr := range a.cfg.Cells {
		o.Addr = addr
		d, err := cell.NewI2C(a.bus, &o)
		if err != nil {
			return err
		}
		if err := d.Ping(); err != nil {
			a.log.Warn().Err(err).Msgf("cell 0x%02X", addr)
			errs = append(errs, err)
			continue
		}
		a.log.Info().Msgf("cell 0x%02X", addr)
	}
	return errors.Join(errs...)
}

func (a *app) address(s string) error {
	from, to, err := parseAddresses(s)
	if err != nil {
		return err
	}
	o, err := a.cfg.cellOpts()
	if err != nil {
		return err
	}
	o.Addr = from
	d, err := cell.NewI2C(a.bus, &o)
	if err != nil {
		return err
	}
	if err := d.StoreAddress(to); err != nil {
		return err
	}
	a.log.Info().Msgf("cell 0x%02X is now 0x%02X", from, to)
	return nil
}

func mainImpl() error {
	cfgPath := flag.String("config", "", "TOML configuration file")
	busName := flag.String("bus", "", "I²C bus to use, overrides the configuration")
	dryRun := flag.Bool("dry-run", false, "print the frames instead of sending them")
	mode := flag.String("mode", "text", "text, file, banner, image, address, ping or blank")
	loop := flag.Bool("loop", false, "scroll forever")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()

	log := newLogger(os.Stderr, *verbose)
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	if *busName != "" {
		cfg.Bus = *busName
	}
	var arg string
	switch flag.NArg() {
	case 0:
		if *mode != "blank" && *mode != "ping" {
			return fmt.Errorf("mode %s needs a value", *mode)
		}
	case 1:
		arg = flag.Arg(0)
	default:
		return errors.New("too many arguments")
	}

	bus, err := openBus(cfg.Bus, *dryRun)
	if err != nil {
		return err
	}
	defer bus.Close()
	log.Debug().Str("bus", bus.String()).Str("mode", *mode).Int("cells", len(cfg.Cells)).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	a := &app{cfg: cfg, log: log, bus: bus, loop: *loop}
	switch *mode {
	case "text":
		err = a.text(ctx, arg)
	case "file":
		err = a.file(ctx, arg)
	case "banner":
		err = a.banner(ctx, arg)
	case "image":
		err = a.image(ctx, arg)
	case "address":
		err = a.address(arg)
	case "ping":
		err = a.ping()
	case "blank":
		err = a.blank()
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}
	if errors.Is(err, context.Canceled) {
		log.Info().Msg("interrupted")
		return nil
	}
	return err
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "flashmat: %s.\n", err)
		os.Exit(1)
	}
}
