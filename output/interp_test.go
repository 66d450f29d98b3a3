// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package output

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestResampleDropOutsideInterpolatesLinearly(t *testing.T) {
	chk.PrintTitle("output: resampleDropOutside linearly interpolates within range")
	x := []float64{0, 10, 20}
	y := []float64{0, 100, 300}

	got := resampleDropOutside(x, y, []float64{5, 15})
	want := []float64{50, 200}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestResampleDropOutsideDropsPointsAtOrBeyondRange(t *testing.T) {
	chk.PrintTitle("output: resampleDropOutside drops reference points at or beyond x's last value")
	x := []float64{0, 10}
	y := []float64{0, 100}

	got := resampleDropOutside(x, y, []float64{5, 10, 15})
	if len(got) != 1 {
		t.Fatalf("expected only the in-range sample to survive, got %v", got)
	}
	if math.Abs(got[0]-50) > 1e-9 {
		t.Errorf("expected 50, got %v", got[0])
	}
}

func TestExtrapolateLastSlopeExtendsByHalfThickness(t *testing.T) {
	chk.PrintTitle("output: extrapolateLastSlope extends by the last slope over half the layer thickness")
	ref := []float64{0, 10, 20}
	data := []float64{1, 2, 4}

	const thickness = 10.0
	got := extrapolateLastSlope(ref, data, thickness)
	if len(got) != len(data)+1 {
		t.Fatalf("expected one extra point, got %d", len(got))
	}
	slope := (data[2] - data[1]) / (ref[2] - ref[1])
	want := data[2] + slope*thickness/2
	if math.Abs(got[3]-want) > 1e-9 {
		t.Errorf("got %v, want %v", got[3], want)
	}
}
