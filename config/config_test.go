// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/arkottke/strata-sub001/sim"
)

func testConfig() *Config {
	return &Config{
		Units: "metric",
		SoilTypes: []SoilTypeConfig{
			{
				Name:           "clay",
				UnitWeight:     18.0,
				InitialDamping: 1.0,
				Curve: CurveConfig{
					Strain:           []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
					ModulusReduction: []float64{1.0, 0.95, 0.7, 0.3, 0.1},
					Damping:          []float64{1.0, 1.5, 3.0, 8.0, 15.0},
				},
			},
		},
		Profile: ProfileConfig{
			SoilLayers: []SoilLayerConfig{
				{SoilType: "clay", Thickness: 10, ShearVel: 200},
				{SoilType: "clay", Thickness: 15, ShearVel: 350},
			},
			Rock: RockLayerConfig{UnitWeight: 22.0, AvgDamping: 1.0, ShearVel: 760},
		},
		Motions: []MotionConfig{
			{Name: "m1", TimeSeries: &TimeSeriesConfig{Type: "outcrop", Accel: sineWave(), Dt: 0.005}},
		},
		Calculator: CalculatorConfig{Mode: "equivalentLinear"},
		Analysis:   AnalysisConfig{MaxFreq: 25, WaveFraction: 0.2, ProfileCount: 1},
		Output:     OutputConfig{Extractors: []string{"accelProfile", "responseSpectrum"}},
	}
}

func sineWave() []float64 {
	accel := make([]float64, 256)
	for i := range accel {
		accel[i] = 0.01
		if i%2 == 0 {
			accel[i] = -0.01
		}
	}
	return accel
}

func TestBuildProducesRunnableOrchestrator(t *testing.T) {
	chk.PrintTitle("config: Build translates a Config into domain objects an Orchestrator can run")
	cfg := testConfig()
	log := sim.NewTextLog()
	built := cfg.Build(log)

	if built.Profile == nil || len(built.Motions) != 1 || built.Calculator == nil || built.Catalog == nil {
		t.Fatalf("expected all core domain objects to be built, got %+v", built)
	}
	if built.Driver != nil {
		t.Fatalf("expected no variation driver when analysis.isVaried is false")
	}

	o := &sim.Orchestrator{
		Profile:      built.Profile,
		Calculator:   built.Calculator,
		Catalog:      built.Catalog,
		Motions:      built.Motions,
		MaxFreq:      cfg.Analysis.MaxFreq,
		WaveFraction: cfg.Analysis.WaveFraction,
		ProfileCount: cfg.Analysis.ProfileCount,
		Log:          log,
	}
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error running the built orchestrator: %v", err)
	}
	if len(built.Catalog.Outputs()[0].Median()) == 0 {
		t.Fatalf("expected the first output to have a non-empty median after Run")
	}
}

func TestBuildPanicsOnUnknownSoilTypeReference(t *testing.T) {
	chk.PrintTitle("config: Build panics on a soil layer referencing an undefined soil type")
	cfg := testConfig()
	cfg.Profile.SoilLayers[0].SoilType = "sand"

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a panic for the unknown soil type reference")
		}
	}()
	cfg.Build(sim.NewTextLog())
}
