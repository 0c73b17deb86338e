// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/GermanBionicSystems/flashmat/busdump"
)

func newApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	off := false
	b, err := busdump.New(&busdump.Opts{Out: &out, Color: &off})
	if err != nil {
		t.Fatal(err)
	}
	return &app{cfg: defaultConfig(), log: zerolog.Nop(), bus: b}, &out
}

func lines(b *bytes.Buffer) []string {
	return strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
}

func TestBlank(t *testing.T) {
	a, out := newApp(t)
	if err := a.blank(); err != nil {
		t.Fatal(err)
	}
	l := lines(out)
	// Position, then fill, then swap, for each of the four cells.
	if len(l) != 12 {
		t.Fatalf("got %q", l)
	}
	if l[4] != "0x41 Fill {Color:#000000}" || l[11] != "0x3E Swap {Flags:0 Timestamped:false Timestamp:0}" {
		t.Fatalf("got %q", l)
	}
}

func TestText(t *testing.T) {
	a, out := newApp(t)
	a.cfg.Text.Lead = 0
	a.cfg.Text.Interval = 0
	if err := a.text(context.Background(), "è"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `0x41 Text {Index:0 Data:"e'"}`) {
		t.Fatalf("got %s", out.String())
	}
}

func TestAddress(t *testing.T) {
	a, out := newApp(t)
	if err := a.address("0x40:0x3d"); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "0x40 StoreAddress {Address:61}\n" {
		t.Fatalf("got %q", got)
	}
	for _, s := range []string{"", "0x40", "0x40:200", "x:1", "0:0x41"} {
		if err := a.address(s); err == nil {
			t.Errorf("address(%q) succeeded", s)
		}
	}
	if got := out.String(); got != "0x40 StoreAddress {Address:61}\n" {
		t.Fatalf("sent more frames: %q", got)
	}
}

func TestPing(t *testing.T) {
	a, out := newApp(t)
	if err := a.ping(); err != nil {
		t.Fatal(err)
	}
	if n := len(lines(out)); n != 4 {
		t.Fatalf("%d frames", n)
	}
}

func TestBanner(t *testing.T) {
	a, out := newApp(t)
	a.cfg.Cells = a.cfg.Cells[:1]
	a.cfg.Banner.Interval = 0
	if err := a.banner(context.Background(), "Hi"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "0x41 ImageChunk4bit {Col:3 Row:0}") {
		t.Fatalf("got %s", out.String())
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv(envLogLevel, "")
	l := newLogger(&buf, false)
	l.Debug().Msg("hidden")
	l.Info().Msg("shown")
	if s := buf.String(); strings.Contains(s, "hidden") || !strings.Contains(s, "shown") {
		t.Fatalf("got %q", s)
	}
	buf.Reset()
	t.Setenv(envLogLevel, "DEBUG")
	l = newLogger(&buf, false)
	l.Debug().Msg("debug")
	if !strings.Contains(buf.String(), "debug") {
		t.Fatalf("got %q", buf.String())
	}
}
