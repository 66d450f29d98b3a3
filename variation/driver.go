// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variation

import (
	"math/rand"

	"github.com/cpmech/gosl/chk"

	"github.com/arkottke/strata-sub001/profile"
)

// Config selects which of the three randomisers a Driver applies and with
// what parameters (§4.5 "driver yields one realised Profile per call").
type Config struct {
	VaryVelocity bool
	Velocity     VelocityRandomizer

	VaryLayering bool
	Layering     LayeringParams

	VaryNonlinear bool
	Curve         CurveRandomizer
}

// baseSoilLayer is the immutable template a Driver replays on every Sample
// call: the soil type and average velocity configured for the layer before
// any randomisation.
type baseSoilLayer struct {
	soilType    *profile.SoilType
	thickness   float64
	avgShearVel float64
}

// Driver realises independent Profiles from a fixed base profile, applying
// the configured subset of the Toro velocity randomiser, the Toro layering
// randomiser, and the correlated nonlinear-curve randomiser, all drawn from
// one shared, reproducible PRNG (§4.5).
type Driver struct {
	rng     *rand.Rand
	cfg     Config
	gravity float64

	baseLayers []baseSoilLayer
	soilTypes  []*profile.SoilType

	bedrockUntWt      float64
	bedrockAvgDamping float64
	bedrockAvgVel     float64
}

// NewDriver captures base seeds an independent realisation driver for base,
// seeded from seed so repeated runs with the same seed reproduce identical
// realisations (§8 "same seed -> identical sequence of realised Profiles").
func NewDriver(base *profile.Profile, gravity float64, cfg Config, seed int64) *Driver {
	d := &Driver{
		rng:     rand.New(rand.NewSource(seed)),
		cfg:     cfg,
		gravity: gravity,
	}

	seen := make(map[*profile.SoilType]bool)
	for _, sl := range base.SoilLayers() {
		d.baseLayers = append(d.baseLayers, baseSoilLayer{
			soilType:    sl.SoilType(),
			thickness:   sl.Thickness(),
			avgShearVel: sl.AvgShearVel(),
		})
		if st := sl.SoilType(); !seen[st] {
			seen[st] = true
			d.soilTypes = append(d.soilTypes, st)
		}
	}

	rock := base.Rock()
	d.bedrockUntWt = rock.UntWt()
	d.bedrockAvgDamping = rock.AvgDamping()
	d.bedrockAvgVel = rock.ShearVel()

	d.cfg.Velocity.rng = d.rng
	d.cfg.Curve.rng = d.rng

	return d
}

// Sample yields one realised Profile, independent of any Profile previously
// returned. The result is not discretised; the caller calls Discretise on
// it.
func (d *Driver) Sample() *profile.Profile {
	layers := d.realiseSoilLayers()

	if d.cfg.VaryNonlinear {
		for _, st := range d.soilTypes {
			d.cfg.Curve.Vary(st)
		}
	}

	rock := profile.NewRockLayer(d.bedrockUntWt, d.bedrockAvgDamping, d.bedrockAvgVel, d.gravity)

	if d.cfg.VaryVelocity {
		avgVel := make([]float64, len(layers))
		isVaried := make([]bool, len(layers))
		for i, sl := range layers {
			avgVel[i] = sl.AvgShearVel()
			isVaried[i] = true
		}
		d.cfg.Velocity.Vary(layers, avgVel, isVaried, rock, d.bedrockAvgVel, true)
	}

	if d.cfg.VaryNonlinear {
		d.cfg.Curve.VaryBedrock(rock)
	}

	return profile.NewProfile(d.gravity, layers, rock)
}

// realiseSoilLayers builds the soil layer sequence for one realisation: the
// base layering if layering variation is disabled, or a fresh set of layer
// boundaries drawn from the layering randomiser with soil types assigned by
// the representative-travel-time rule.
func (d *Driver) realiseSoilLayers() []*profile.SoilLayer {
	if !d.cfg.VaryLayering {
		layers := make([]*profile.SoilLayer, len(d.baseLayers))
		for i, b := range d.baseLayers {
			layers[i] = profile.NewSoilLayer(b.soilType, b.thickness, b.avgShearVel, d.gravity)
		}
		return layers
	}

	depthToBedrock := 0.0
	base := make([]*profile.SoilLayer, len(d.baseLayers))
	for i, b := range d.baseLayers {
		base[i] = profile.NewSoilLayer(b.soilType, b.thickness, b.avgShearVel, d.gravity)
		depthToBedrock += b.thickness
	}
	depth := 0.0
	for _, sl := range base {
		sl.SetDepth(depth)
		depth += sl.Thickness()
	}

	layering := NewLayeringRandomizer(d.rng, d.cfg.Layering)
	thickness := layering.VaryThickness(depthToBedrock)
	reps := AssignSoilTypes(base, thickness)

	layers := make([]*profile.SoilLayer, len(thickness))
	for i, t := range thickness {
		rep := reps[i]
		if rep == nil {
			chk.Panic("variation: no representative soil layer found for realised layer %d", i)
		}
		layers[i] = profile.NewSoilLayer(rep.SoilType(), t, rep.AvgShearVel(), d.gravity)
	}
	return layers
}
