// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/arkottke/strata-sub001/nlprop"
	"github.com/arkottke/strata-sub001/profile"
)

const gravity = 9.81

func testSoilType(name string) *profile.SoilType {
	strain := []float64{0.0001, 0.001, 0.01, 0.1, 1.0}
	g := []float64{1.0, 0.95, 0.7, 0.3, 0.1}
	d := []float64{1.0, 1.5, 3.0, 8.0, 15.0}
	normShearMod := nlprop.New(name+"-G", nlprop.ModulusReduction, strain, g)
	damping := nlprop.New(name+"-D", nlprop.Damping, strain, d)
	return profile.NewSoilType(name, 18.0, 1.0, normShearMod, damping)
}

func testBaseProfile(t *testing.T) *profile.Profile {
	t.Helper()
	st1 := testSoilType("clay")
	st2 := testSoilType("sand")
	l1 := profile.NewSoilLayer(st1, 10, 200, gravity)
	l2 := profile.NewSoilLayer(st2, 15, 350, gravity)
	rock := profile.NewRockLayer(22.0, 1.0, 760, gravity)
	return profile.NewProfile(gravity, []*profile.SoilLayer{l1, l2}, rock)
}

func TestDriverSampleReproducibleWithSameSeed(t *testing.T) {
	chk.PrintTitle("variation: Driver.Sample is reproducible for a fixed seed")
	base := testBaseProfile(t)

	cfg := Config{
		VaryVelocity: true,
		Velocity:     VelocityRandomizer{Model: USGSCD, Stdev: USGSCD.Stdev(), MetersPerUnit: 1},
	}

	d1 := NewDriver(base, gravity, cfg, 42)
	d2 := NewDriver(base, gravity, cfg, 42)

	r1 := d1.Sample()
	r2 := d2.Sample()

	for i := range r1.SoilLayers() {
		v1 := r1.SoilLayers()[i].ShearVel()
		v2 := r2.SoilLayers()[i].ShearVel()
		if math.Abs(v1-v2) > 1e-9 {
			t.Errorf("layer %d: expected identical velocities for the same seed, got %v and %v", i, v1, v2)
		}
	}
}

func TestVelocityRandomizerClampsBedrockToLastSoilLayer(t *testing.T) {
	chk.PrintTitle("variation: bedrock velocity is clamped to the last soil layer's velocity")
	base := testBaseProfile(t)
	rng := rand.New(rand.NewSource(1))
	vr := NewVelocityRandomizer(rng, USGSCD, 1)

	soilLayers := base.SoilLayers()
	avg := make([]float64, len(soilLayers))
	isVaried := make([]bool, len(soilLayers))
	for i, sl := range soilLayers {
		avg[i] = sl.AvgShearVel()
		isVaried[i] = true
	}
	rock := base.Rock()
	vr.Vary(soilLayers, avg, isVaried, rock, rock.ShearVel(), true)

	last := soilLayers[len(soilLayers)-1]
	if rock.ShearVel() < last.ShearVel() {
		t.Errorf("expected bedrock velocity >= last soil layer velocity, got rock=%v last=%v", rock.ShearVel(), last.ShearVel())
	}
}

func TestLayeringRandomizerThicknessSumsToDepth(t *testing.T) {
	chk.PrintTitle("variation: layering randomizer's thicknesses sum exactly to the target depth")
	rng := rand.New(rand.NewSource(7))
	lr := NewLayeringRandomizer(rng, DefaultLayering)

	const depthToBedrock = 50.0
	thickness := lr.VaryThickness(depthToBedrock)

	sum := 0.0
	for _, t := range thickness {
		sum += t
	}
	if math.Abs(sum-depthToBedrock) > 1e-9 {
		t.Errorf("expected thicknesses to sum to %v, got %v", depthToBedrock, sum)
	}
}

func TestCurveRandomizerClampsToConfiguredBounds(t *testing.T) {
	chk.PrintTitle("variation: curve randomizer clamps modulus reduction and damping to bounds")
	rng := rand.New(rand.NewSource(3))
	cr := NewCurveRandomizer(rng)
	cr.ShearModMin, cr.ShearModMax = 0.2, 0.9
	cr.DampingMin, cr.DampingMax = 1.0, 10.0

	st := testSoilType("clay")
	cr.Vary(st)

	for _, v := range st.NormShearMod().(interface{ Varied() []float64 }).Varied() {
		if v < cr.ShearModMin || v > cr.ShearModMax {
			t.Errorf("expected varied modulus reduction within [%v, %v], got %v", cr.ShearModMin, cr.ShearModMax, v)
		}
	}
	for _, v := range st.Damping().(interface{ Varied() []float64 }).Varied() {
		if v < cr.DampingMin || v > cr.DampingMax {
			t.Errorf("expected varied damping within [%v, %v], got %v", cr.DampingMin, cr.DampingMax, v)
		}
	}
}
