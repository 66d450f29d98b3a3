// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nlprop

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestInterpClampsToEndpoints(t *testing.T) {
	chk.PrintTitle("nlprop: clamp at endpoints")
	p := New("test", ModulusReduction, []float64{1e-4, 1e-2, 1, 3}, []float64{1.0, 0.9, 0.4, 0.1})

	if v := p.Interp(1e-6); v != 1.0 {
		t.Errorf("below-range strain should clamp to first value, got %v", v)
	}
	if v := p.Interp(10); v != 0.1 {
		t.Errorf("above-range strain should clamp to last value, got %v", v)
	}
}

func TestInterpIsLinearInLogStrain(t *testing.T) {
	chk.PrintTitle("nlprop: log-linear interpolation")
	p := New("test", ModulusReduction, []float64{0.01, 1}, []float64{1.0, 0.0})

	// midpoint in log-strain space is strain = 0.1
	got := p.Interp(0.1)
	want := 0.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("interp at log-midpoint: got %v want %v", got, want)
	}
}

func TestDuplicateStrainsAreDeduplicated(t *testing.T) {
	chk.PrintTitle("nlprop: duplicate strain removal")
	p := New("test", Damping, []float64{0.01, 0.01, 1}, []float64{1.0, 2.0, 3.0})
	if len(p.Strain()) != 2 {
		t.Fatalf("expected 2 strain points after dedup, got %d", len(p.Strain()))
	}
	if p.Average()[0] != 1.0 {
		t.Errorf("dedup should keep the first occurrence, got %v", p.Average()[0])
	}
}

func TestResetVariedRestoresAverage(t *testing.T) {
	chk.PrintTitle("nlprop: reset restores average")
	p := New("test", ModulusReduction, []float64{0.01, 1}, []float64{1.0, 0.5})
	p.SetVaried([]float64{0.8, 0.3})
	p.ResetVaried()
	for i, v := range p.Varied() {
		if v != p.Average()[i] {
			t.Errorf("ResetVaried mismatch at %d: got %v want %v", i, v, p.Average()[i])
		}
	}
}
