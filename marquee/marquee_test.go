// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package marquee

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/GermanBionicSystems/flashmat/cell"
	"github.com/GermanBionicSystems/flashmat/packet"
	"github.com/GermanBionicSystems/flashmat/scroll"
)

// recorder logs the calls made on a Target.
type recorder struct {
	calls  []string
	failOn string
}

func (r *recorder) add(s string) error {
	r.calls = append(r.calls, s)
	if r.failOn != "" && strings.HasPrefix(s, r.failOn) {
		return errors.New("failed")
	}
	return nil
}

func (r *recorder) SetTextParameters(p packet.TextParameters) error {
	return r.add(fmt.Sprintf("params %d", p.Fields))
}

func (r *recorder) SetText(s string) error {
	return r.add(fmt.Sprintf("text %q", s))
}

func (r *recorder) SetTextPosition(p image.Point) error {
	return r.add(fmt.Sprintf("pos %d,%d", p.X, p.Y))
}

func (r *recorder) DrawText() error {
	return r.add("draw")
}

func (r *recorder) Swap(flags packet.SwapFlags) error {
	return r.add("swap")
}

func testOpts() *Opts {
	o := DefaultOpts
	o.Lead = 1
	o.Window = 2
	o.Interval = 0
	o.Sequencer = scroll.Sequencer{Metrics: scroll.MetricsFunc(func(byte) uint8 { return 2 })}
	return &o
}

func TestRun(t *testing.T) {
	r := &recorder{}
	if err := Run(context.Background(), r, "AB", testOpts()); err != nil {
		t.Fatal(err)
	}
	tick := func(x int) []string {
		return []string{fmt.Sprintf("pos %d,0", x), "draw", "swap"}
	}
	want := []string{"params 7"}
	for _, w := range []string{`" A"`, `"AB"`, `"B"`} {
		want = append(want, "text "+w)
		want = append(want, tick(0)...)
		want = append(want, tick(-1)...)
	}
	if diff := cmp.Diff(want, r.calls); diff != "" {
		t.Fatalf("unexpected calls (-want +got):\n%s", diff)
	}
}

func TestRunError(t *testing.T) {
	r := &recorder{failOn: "draw"}
	err := Run(context.Background(), r, "AB", testOpts())
	if err == nil || !strings.HasPrefix(err.Error(), "marquee: ") {
		t.Fatalf("Run() = %v", err)
	}
	if last := r.calls[len(r.calls)-1]; last != "draw" {
		t.Fatalf("last call %q", last)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &recorder{}
	if err := Run(ctx, r, "AB", testOpts()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v", err)
	}
	if len(r.calls) != 0 {
		t.Fatalf("%d calls", len(r.calls))
	}
}

func TestRunTimeout(t *testing.T) {
	o := testOpts()
	o.Interval = time.Hour
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	r := &recorder{}
	if err := Run(ctx, r, "AB", o); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() = %v", err)
	}
	// Interrupted while waiting after the first tick.
	if len(r.calls) != 5 {
		t.Fatalf("%d calls: %v", len(r.calls), r.calls)
	}
}

func TestRunLogs(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.DebugLevel)
	o := testOpts()
	o.Logger = &l
	if err := Run(context.Background(), &recorder{}, "AB", o); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{`"message":"scrolling"`, `"window":"AB"`, `"message":"done"`, `"ticks":6`} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("log lacks %s:\n%s", s, buf.String())
		}
	}
}

func TestRunCell(t *testing.T) {
	rec := &i2ctest.Record{}
	d, err := cell.NewI2C(rec, nil)
	if err != nil {
		t.Fatal(err)
	}
	o := DefaultOpts
	o.Lead = 0
	o.Interval = 0
	if err := Run(context.Background(), d, "A", &o); err != nil {
		t.Fatal(err)
	}
	// 'A' is 4 pixels wide plus one blank column.
	if len(rec.Ops) != 2+5*3 {
		t.Fatalf("%d writes", len(rec.Ops))
	}
	if w := rec.Ops[1].W; !bytes.Equal(w, []byte{61, 0, 'A'}) {
		t.Fatalf("text frame % X", w)
	}
	if w := rec.Ops[len(rec.Ops)-3].W; !bytes.Equal(w, []byte{51, 0xFF, 0xFC, 0, 0}) {
		t.Fatalf("last position % X", w)
	}
}

func TestInvalidOpts(t *testing.T) {
	for name, f := range map[string]func(o *Opts){
		"window": func(o *Opts) { o.Window = 0 },
		"lead":   func(o *Opts) { o.Lead = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			o := testOpts()
			f(o)
			r := &recorder{}
			if err := Run(context.Background(), r, "AB", o); err == nil {
				t.Fatal("Run() succeeded")
			}
			if len(r.calls) != 0 {
				t.Fatalf("sent %q", r.calls)
			}
		})
	}
}
