// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package output

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/arkottke/strata-sub001/calc"
	"github.com/arkottke/strata-sub001/motion"
	"github.com/arkottke/strata-sub001/nlprop"
	"github.com/arkottke/strata-sub001/profile"
	"github.com/arkottke/strata-sub001/units"
)

const gravity = 9.81

func testProfile(t *testing.T) *profile.Profile {
	t.Helper()
	strain := []float64{0.0001, 0.001, 0.01, 0.1, 1.0}
	g := []float64{1.0, 0.95, 0.7, 0.3, 0.1}
	d := []float64{1.0, 1.5, 3.0, 8.0, 15.0}
	normShearMod := nlprop.New("clay-G", nlprop.ModulusReduction, strain, g)
	damping := nlprop.New("clay-D", nlprop.Damping, strain, d)
	st := profile.NewSoilType("clay", 18.0, 1.0, normShearMod, damping)

	l1 := profile.NewSoilLayer(st, 10, 200, gravity)
	l2 := profile.NewSoilLayer(st, 15, 350, gravity)
	rock := profile.NewRockLayer(22.0, 1.0, 760, gravity)
	site := profile.NewProfile(gravity, []*profile.SoilLayer{l1, l2}, rock)
	site.Discretise(25, 0.2)
	return site
}

func testMotion(t *testing.T) *motion.TimeSeries {
	t.Helper()
	const n = 256
	accel := make([]float64, n)
	for i := range accel {
		accel[i] = 0.01 * math.Sin(2*math.Pi*float64(i)/16)
	}
	return motion.NewTimeSeries(units.Metric, motion.Outcrop, accel, 0.005)
}

func runCalculator(t *testing.T) (*calc.Calculator, *profile.Profile) {
	t.Helper()
	site := testProfile(t)
	c := calc.NewCalculator(units.Metric)
	if err := c.Run(testMotion(t), site); err != nil {
		t.Fatalf("unexpected error from Run: %v", err)
	}
	return c, site
}

func TestCatalogPopulateDepthVectorCoversMaxDepth(t *testing.T) {
	chk.PrintTitle("output: PopulateDepthVector grows the reference vector to cover the requested depth")
	cat := NewCatalog(units.Metric, nil)
	cat.PopulateDepthVector(25)
	if cat.Depth()[0] != 0 {
		t.Fatalf("expected the depth vector to start at 0, got %v", cat.Depth()[0])
	}
	if cat.Depth()[len(cat.Depth())-1] < 25 {
		t.Fatalf("expected the depth vector to reach at least 25, got %v", cat.Depth())
	}
	for i := 1; i < len(cat.Depth()); i++ {
		if cat.Depth()[i] <= cat.Depth()[i-1] {
			t.Fatalf("expected a strictly increasing depth vector, got %v", cat.Depth())
		}
	}
}

func TestCatalogSaveResultsAccumulatesAcrossSites(t *testing.T) {
	chk.PrintTitle("output: Catalog.SaveResults accumulates one row per realisation per output")
	accelOut := NewAccelProfileOutput()
	cat := NewCatalog(units.Metric, []Output{accelOut})
	cat.Initialize(2, []string{"m1"})

	for site := 0; site < 2; site++ {
		c, _ := runCalculator(t)
		cat.SaveResults(0, c)
	}

	if accelOut.Data(0, 0) == nil || accelOut.Data(1, 0) == nil {
		t.Fatalf("expected data recorded for both sites")
	}
	if accelOut.Data(2, 0) != nil {
		t.Fatalf("expected no third site to exist")
	}
}

func TestCatalogRemoveLastSiteUndoesAccumulation(t *testing.T) {
	chk.PrintTitle("output: Catalog.RemoveLastSite discards the most recently added site")
	accelOut := NewAccelProfileOutput()
	cat := NewCatalog(units.Metric, []Output{accelOut})
	cat.Initialize(1, []string{"m1"})

	c, _ := runCalculator(t)
	cat.SaveResults(0, c)
	cat.RemoveLastSite()

	if accelOut.Data(0, 0) != nil {
		t.Fatalf("expected the removed site's data to be gone")
	}
}

func TestAccelProfileOutputMatchesMaxAccelProfile(t *testing.T) {
	chk.PrintTitle("output: AccelProfileOutput extracts MaxAccelProfile resampled onto the depth reference")
	accelOut := NewAccelProfileOutput()
	cat := NewCatalog(units.Metric, []Output{accelOut})
	cat.Initialize(1, []string{"m1"})

	c, site := runCalculator(t)
	cat.SaveResults(0, c)

	series := accelOut.Data(0, 0)
	if len(series) == 0 {
		t.Fatalf("expected a non-empty acceleration profile")
	}
	for _, v := range series {
		if v < 0 {
			t.Errorf("expected non-negative peak accelerations, got %v", v)
		}
	}
	if len(series) >= len(cat.Depth()) {
		t.Errorf("expected the resampled series to be shorter than the reference, len(series)=%d len(ref)=%d", len(series), len(cat.Depth()))
	}
	want := resampleDropOutside(profileTopDepths(c), c.MaxAccelProfile(), cat.Depth())
	if len(series) != len(want) {
		t.Fatalf("expected %d resampled points, got %d", len(want), len(series))
	}
	for i := range want {
		if math.Abs(series[i]-want[i]) > 1e-12 {
			t.Errorf("point %d: expected %v (MaxAccelProfile resampled), got %v", i, want[i], series[i])
		}
	}
	_ = site
}

func TestResponseSpectrumOutputMatchesCatalogPeriodGrid(t *testing.T) {
	chk.PrintTitle("output: ResponseSpectrumOutput's data length matches the configured period grid")
	cat := NewCatalog(units.Metric, nil)
	rsOut := NewResponseSpectrumOutput(cat.Period(), cat.DampingPct())
	cat = NewCatalog(units.Metric, []Output{rsOut})
	cat.Initialize(1, []string{"m1"})

	c, _ := runCalculator(t)
	cat.SaveResults(0, c)

	sa := rsOut.Data(0, 0)
	if len(sa) != len(rsOut.Periods) {
		t.Fatalf("expected %d spectral values, got %d", len(rsOut.Periods), len(sa))
	}
	for _, v := range sa {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("expected finite spectral acceleration, got %v", v)
		}
	}
}

func TestCatalogFinalizeProducesMedianAndStdevAcrossRealisations(t *testing.T) {
	chk.PrintTitle("output: Catalog.Finalize reduces accumulated realisations to log-normal statistics")
	accelOut := NewAccelProfileOutput()
	cat := NewCatalog(units.Metric, []Output{accelOut})
	cat.Initialize(3, []string{"m1"})

	for i := 0; i < 3; i++ {
		c, _ := runCalculator(t)
		cat.SaveResults(0, c)
	}
	cat.Finalize()

	if len(accelOut.Median()) == 0 {
		t.Fatalf("expected a non-empty median after Finalize")
	}
	for i, m := range accelOut.Median() {
		if m <= 0 {
			t.Errorf("index %d: expected a positive median, got %v", i, m)
		}
		if accelOut.LnStdev()[i] < 0 {
			t.Errorf("index %d: expected a non-negative ln-stdev, got %v", i, accelOut.LnStdev()[i])
		}
	}
}
