// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/GermanBionicSystems/flashmat/packet"
)

func writeConfig(t *testing.T, s string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "flashmat.toml")
	if err := os.WriteFile(p, []byte(s), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfigDefault(t *testing.T) {
	c, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.validate(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint16{0x41, 0x40, 0x3D, 0x3E}, c.Cells); diff != "" {
		t.Fatalf("cells (-want +got):\n%s", diff)
	}
	pc, err := c.codec()
	if err != nil {
		t.Fatal(err)
	}
	if pc != packet.DefaultConfig {
		t.Fatalf("codec() = %+v", pc)
	}
}

func TestLoadConfig(t *testing.T) {
	p := writeConfig(t, `
bus = "/dev/i2c-1"
cells = [0x20, 0x21]
order = "GRB"

[text]
color = "#00ff00"
interval = "50ms"
window = 20
`)
	c, err := loadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.Bus != "/dev/i2c-1" || len(c.Cells) != 2 || c.Cells[1] != 0x21 {
		t.Fatalf("config = %+v", c)
	}
	m, err := c.marquee()
	if err != nil {
		t.Fatal(err)
	}
	if m.Interval != 50*time.Millisecond || m.Window != 20 || m.Lead != 20 {
		t.Fatalf("marquee = %+v", m)
	}
	if m.Params.Color != (packet.Color{G: 255}) || m.Params.Fields != packet.TextAll {
		t.Fatalf("params = %+v", m.Params)
	}
	o, err := c.cellOpts()
	if err != nil {
		t.Fatal(err)
	}
	if o.Codec.Order != packet.GRB || o.Width != 32 {
		t.Fatalf("cell options = %+v", o)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	for name, s := range map[string]string{
		"syntax":  `cells = [`,
		"unknown": `colour = "red"`,
		"address": `cells = [200]`,
		"empty":   `cells = []`,
		"order":   `order = "RGX"`,
		"chunk":   `chunk_size = 300`,
		"color": `[text]
color = "red"`,
		"size": `width = 0`,
		"lead": `[text]
lead = -1`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := loadConfig(writeConfig(t, s)); err == nil {
				t.Fatal("loadConfig() succeeded")
			}
		})
	}
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("loadConfig() of a missing file succeeded")
	}
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#FF7f00")
	if err != nil {
		t.Fatal(err)
	}
	if c != (packet.Color{R: 255, G: 127}) {
		t.Fatalf("parseColor() = %s", c)
	}
	for _, s := range []string{"", "ff7f00", "#ff7f0", "#gg0000"} {
		if _, err := parseColor(s); err == nil {
			t.Errorf("parseColor(%q) succeeded", s)
		}
	}
}
