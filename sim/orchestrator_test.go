// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"context"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/arkottke/strata-sub001/calc"
	"github.com/arkottke/strata-sub001/motion"
	"github.com/arkottke/strata-sub001/nlprop"
	"github.com/arkottke/strata-sub001/output"
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
	return profile.NewProfile(gravity, []*profile.SoilLayer{l1, l2}, rock)
}

func testMotion(name string, scale float64) NamedMotion {
	const n = 256
	accel := make([]float64, n)
	for i := range accel {
		accel[i] = scale * math.Sin(2*math.Pi*float64(i)/16)
	}
	return NamedMotion{Name: name, Motion: motion.NewTimeSeries(units.Metric, motion.Outcrop, accel, 0.005)}
}

func testOrchestrator(t *testing.T) (*Orchestrator, *output.Catalog) {
	t.Helper()
	accelOut := output.NewAccelProfileOutput()
	cat := output.NewCatalog(units.Metric, []output.Output{accelOut})
	o := &Orchestrator{
		Profile:      testProfile(t),
		Calculator:   calc.NewCalculator(units.Metric),
		Catalog:      cat,
		Motions:      []NamedMotion{testMotion("m1", 0.01), testMotion("m2", 0.02)},
		MaxFreq:      25,
		WaveFraction: 0.2,
		ProfileCount: 2,
		Log:          NewTextLog(),
	}
	return o, cat
}

func TestOrchestratorRunAccumulatesAllRealisationsAndMotions(t *testing.T) {
	chk.PrintTitle("sim: Orchestrator.Run saves every realisation/motion pair and finalises the catalog")
	o, cat := testOrchestrator(t)

	progressCalls := 0
	o.OnProgress = func(completed, total int) { progressCalls++ }
	var finishedSuccess bool
	var finishedCount int
	o.OnFinished = func(success bool, motionCount int) {
		finishedSuccess = success
		finishedCount = motionCount
	}

	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error from Run: %v", err)
	}
	if progressCalls != 2 {
		t.Errorf("expected 2 progress callbacks, got %d", progressCalls)
	}
	if !finishedSuccess {
		t.Errorf("expected a successful finish")
	}
	if finishedCount != 4 {
		t.Errorf("expected 4 total motion results (2 realisations * 2 motions), got %d", finishedCount)
	}

	out := cat.Outputs()[0].(*output.AccelProfileOutput)
	if out.Data(0, 0) == nil || out.Data(0, 1) == nil || out.Data(1, 0) == nil || out.Data(1, 1) == nil {
		t.Fatalf("expected data recorded for both realisations and both motions")
	}
	if len(out.Median()) == 0 {
		t.Fatalf("expected Finalize to have run, producing a non-empty median")
	}
}

func TestOrchestratorRunStopsOnCancellation(t *testing.T) {
	chk.PrintTitle("sim: Orchestrator.Run stops cleanly and drops the partial site on cancellation")
	o, cat := testOrchestrator(t)
	o.ProfileCount = 5

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := o.Run(ctx)
	if err != ErrCancelled {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	out := cat.Outputs()[0].(*output.AccelProfileOutput)
	if out.Data(0, 0) != nil {
		t.Fatalf("expected no site data to survive an immediate cancellation")
	}
}

// cancellingMotion wraps a motion and calls Cancel on o whenever its peak is
// read, so the request arrives while a realisation is still running.
type cancellingMotion struct {
	motion.Motion
	o *Orchestrator
}

func (m *cancellingMotion) Max(tf []complex128) float64 {
	m.o.Cancel()
	return m.Motion.Max(tf)
}

func TestOrchestratorCancelStopsMidRealisation(t *testing.T) {
	chk.PrintTitle("sim: Orchestrator.Cancel is honored between motions within a realisation")
	o, cat := testOrchestrator(t)
	o.ProfileCount = 1
	m1 := testMotion("m1", 0.01)
	m1.Motion = &cancellingMotion{Motion: m1.Motion, o: o}
	o.Motions = []NamedMotion{m1, testMotion("m2", 0.02), testMotion("m3", 0.03)}

	err := o.Run(context.Background())
	if err != ErrCancelled {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	out := cat.Outputs()[0].(*output.AccelProfileOutput)
	if out.Data(0, 0) != nil {
		t.Fatalf("expected the in-progress site to have been discarded")
	}
}
