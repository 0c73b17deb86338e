// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package scroll

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fixed(w uint8) Metrics {
	return MetricsFunc(func(byte) uint8 { return w })
}

func TestOffsets(t *testing.T) {
	for _, tc := range []struct {
		name string
		s    Sequencer
		text string
		want []int
	}{
		{"width 4", Sequencer{Metrics: fixed(4)}, "A", []int{0, -1, -2, -3}},
		{"width 0", Sequencer{Metrics: fixed(0)}, "A", []int{0}},
		{"spacing", Sequencer{Metrics: fixed(4), Spacing: 1}, "AB", []int{0, -1, -2, -3, -4}},
		{"spacing only", Sequencer{Metrics: fixed(0), Spacing: 2}, "A", []int{0, -1}},
		{"empty", Sequencer{Metrics: fixed(4)}, "", []int{0}},
		{"nil metrics", Sequencer{}, "A", []int{0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			o := tc.s.Offsets(tc.text)
			if o.Len() != len(tc.want) {
				t.Fatalf("Len() = %d, want %d", o.Len(), len(tc.want))
			}
			for pass := 0; pass < 2; pass++ {
				var got []int
				for v, ok := o.Next(); ok; v, ok = o.Next() {
					got = append(got, v)
				}
				if diff := cmp.Diff(tc.want, got); diff != "" {
					t.Fatalf("pass %d (-want +got):\n%s", pass, diff)
				}
				o.Reset()
			}
			if diff := cmp.Diff(tc.want, o.All()); diff != "" {
				t.Fatalf("All() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOffsetsFirstCharacter(t *testing.T) {
	m := MetricsFunc(func(c byte) uint8 {
		if c == 'W' {
			return 7
		}
		return 1
	})
	s := Sequencer{Metrics: m, Spacing: 1}
	if n := s.Offsets("Wi").Len(); n != 8 {
		t.Fatalf("Offsets(Wi).Len() = %d, want 8", n)
	}
	if n := s.Offsets("iW").Len(); n != 2 {
		t.Fatalf("Offsets(iW).Len() = %d, want 2", n)
	}
}

func TestTextWidth(t *testing.T) {
	s := Sequencer{Metrics: fixed(4), Spacing: 1}
	if w := s.TextWidth("ABC"); w != 15 {
		t.Fatalf("TextWidth() = %d, want 15", w)
	}
	if w := s.TextWidth(""); w != 0 {
		t.Fatalf("TextWidth() = %d, want 0", w)
	}
}
