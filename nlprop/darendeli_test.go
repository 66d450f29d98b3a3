// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nlprop

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

func TestDarendeliProducesMonotonicModulusReduction(t *testing.T) {
	chk.PrintTitle("nlprop: Darendeli modulus reduction is monotone decreasing")
	d := NewDarendeliParams(fun.Prms{
		{N: "meanStress", V: 1.0},
		{N: "PI", V: 0},
		{N: "OCR", V: 1},
		{N: "freq", V: 1},
		{N: "cycles", V: 10},
	})
	modulus, damping := Darendeli(d)

	vals := modulus.Average()
	for i := 1; i < len(vals); i++ {
		if vals[i] > vals[i-1] {
			t.Fatalf("modulus reduction must be non-increasing with strain: vals[%d]=%v > vals[%d]=%v", i, vals[i], i-1, vals[i-1])
		}
	}
	if vals[0] < 0.9 || vals[0] > 1.0 {
		t.Errorf("modulus reduction at smallest strain should be close to 1, got %v", vals[0])
	}

	dampingVals := damping.Average()
	for i := 1; i < len(dampingVals); i++ {
		if dampingVals[i] < dampingVals[i-1] {
			t.Fatalf("damping must be non-decreasing with strain: vals[%d]=%v < vals[%d]=%v", i, dampingVals[i], i-1, dampingVals[i-1])
		}
	}
}

func TestDarendeliRequiresAllParameters(t *testing.T) {
	chk.PrintTitle("nlprop: Darendeli panics on missing parameters")
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for missing Darendeli parameters")
		}
	}()
	NewDarendeliParams(fun.Prms{{N: "meanStress", V: 1.0}})
}
