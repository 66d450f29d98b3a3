// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calc

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/arkottke/strata-sub001/motion"
	"github.com/arkottke/strata-sub001/profile"
	"github.com/arkottke/strata-sub001/units"
)

// fakeMotion is a minimal motion.Motion for exercising the calculator
// without pulling in the RVT kernel or a real FFT.
type fakeMotion struct {
	typ  motion.Type
	freq []float64
	fas  []float64
}

func newFakeMotion() *fakeMotion {
	freq := make([]float64, 50)
	fas := make([]float64, 50)
	for i := range freq {
		freq[i] = 0.1 + float64(i)*0.5
		fas[i] = 0.01
	}
	return &fakeMotion{typ: motion.Outcrop, freq: freq, fas: fas}
}

func (m *fakeMotion) Type() motion.Type      { return m.typ }
func (m *fakeMotion) Freq() []float64        { return m.freq }
func (m *fakeMotion) AngFreqAt(i int) float64 { return 2 * math.Pi * m.freq[i] }
func (m *fakeMotion) AbsFourierAcc(tf []complex128) []float64 {
	return motion.ApplyTF(m.fas, tf)
}
func (m *fakeMotion) Max(tf []complex128) float64 {
	peak := 0.0
	for i, f := range m.fas {
		v := f
		if tf != nil {
			v *= cmplx.Abs(tf[i])
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}
func (m *fakeMotion) MaxVel(tf []complex128) float64  { return m.Max(tf) }
func (m *fakeMotion) MaxDisp(tf []complex128) float64 { return m.Max(tf) }
func (m *fakeMotion) CalcMaxStrain(tf []complex128) float64 {
	return m.Max(tf)
}
func (m *fakeMotion) ComputeSa(periods []float64, dampingPct float64, tf []complex128) []float64 {
	sa := make([]float64, len(periods))
	for i := range periods {
		sa[i] = m.Max(tf)
	}
	return sa
}

type constProperty float64

func (c constProperty) Interp(float64) float64 { return float64(c) }

func testSite(t *testing.T) *profile.Profile {
	t.Helper()
	st := profile.NewSoilType("clay", 17.0, 2.0, constProperty(1.0), constProperty(5.0))
	layers := []*profile.SoilLayer{
		profile.NewSoilLayer(st, 10.0, 200.0, 9.80665),
		profile.NewSoilLayer(st, 7.0, 300.0, 9.80665),
	}
	rock := profile.NewRockLayer(22.0, 1.0, 1500.0, 9.80665)
	p := profile.NewProfile(9.80665, layers, rock)
	p.Discretise(25.0, 0.2)
	return p
}

func TestAccelTfFromLocationToItselfIsUnity(t *testing.T) {
	chk.PrintTitle("calc: acceleration transfer function from a location to itself is unity")
	site := testSite(t)
	m := newFakeMotion()

	c := NewCalculator(units.Metric)
	c.Mode = LinearElastic
	if err := c.Run(m, site); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	loc := profile.Location{SubLayerIndex: 2, DepthInLayer: 0}
	tf := c.CalcAccelTf(loc, motion.Within, loc, motion.Within)
	for i, v := range tf {
		if cmplx.Abs(v-1) > 1e-9 {
			t.Errorf("freq index %d: expected unity transfer function, got %v", i, v)
		}
	}
}

func TestRunConvergesWithinMaxIterations(t *testing.T) {
	chk.PrintTitle("calc: equivalent-linear iteration stays within maxIterations")
	site := testSite(t)
	m := newFakeMotion()

	c := NewCalculator(units.Metric)
	if err := c.Run(m, site); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if c.Iterations() > c.MaxIterations {
		t.Errorf("iterations %d exceeded maxIterations %d", c.Iterations(), c.MaxIterations)
	}
}

func TestMaxAccelProfileHasOneEntryPerSubLayerPlusBedrock(t *testing.T) {
	chk.PrintTitle("calc: max acceleration profile spans sub-layers plus bedrock")
	site := testSite(t)
	m := newFakeMotion()

	c := NewCalculator(units.Metric)
	c.Mode = LinearElastic
	if err := c.Run(m, site); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	profileOut := c.MaxAccelProfile()
	if len(profileOut) != len(site.SubLayers())+1 {
		t.Fatalf("expected %d entries, got %d", len(site.SubLayers())+1, len(profileOut))
	}
}
