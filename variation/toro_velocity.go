// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variation

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/arkottke/strata-sub001/profile"
)

// VelocityRandomizer draws a correlated Toro (1995) realisation of a
// profile's shear-wave velocities (§4.5 "Toro velocity",
// ProfileVariation::varyVelocity()).
type VelocityRandomizer struct {
	Model             VelocityModel
	Stdev             float64 // used when Model is CustomVelocityModel
	StdevIsLayerSpecific bool
	LayerStdev        []float64 // per-SoilLayer stdev, used when StdevIsLayerSpecific
	BedrockStdev      float64
	MetersPerUnit     float64 // converts a layer's depth to meters for depthCorrel
	rng               *rand.Rand
}

// NewVelocityRandomizer builds a randomizer seeded from rng (shared across
// all three variation drivers per §4.5).
func NewVelocityRandomizer(rng *rand.Rand, model VelocityModel, metersPerUnit float64) *VelocityRandomizer {
	return &VelocityRandomizer{Model: model, Stdev: model.Stdev(), MetersPerUnit: metersPerUnit, rng: rng}
}

func (v *VelocityRandomizer) stdevFor(layerIdx int) float64 {
	if v.StdevIsLayerSpecific && layerIdx < len(v.LayerStdev) {
		return v.LayerStdev[layerIdx]
	}
	return v.Stdev
}

// standardNormal draws Z ~ N(0,1) from the shared PRNG via gonum/distuv.
func (v *VelocityRandomizer) standardNormal() float64 {
	return distuv.Normal{Mu: 0, Sigma: 1, Src: v.rng}.Rand()
}

// Vary randomises soilLayers' shear velocities in place and the bedrock's,
// following the recursive correlated-normal recursion of §4.5.
func (v *VelocityRandomizer) Vary(soilLayers []*profile.SoilLayer, avgShearVel []float64, isVaried []bool, bedrock *profile.RockLayer, bedrockAvg float64, bedrockVaried bool) {
	stdev0 := v.stdevFor(0)
	prevRandVar := v.standardNormal() * stdev0
	if isVaried[0] {
		soilLayers[0].SetShearVel(avgShearVel[0] * math.Exp(prevRandVar))
	} else {
		soilLayers[0].SetShearVel(avgShearVel[0])
	}

	p := v.Model.Correl()
	for i := 1; i < len(soilLayers); i++ {
		if !isVaried[i] {
			soilLayers[i].SetShearVel(avgShearVel[i])
			continue
		}

		depthToMid := (soilLayers[i].Depth() + soilLayers[i].Thickness()/2) * v.MetersPerUnit
		dCorrel := depthCorrel(depthToMid, p)
		thicknessCorrel := p.Initial * math.Exp(-soilLayers[i].Thickness()/p.Delta)
		correl := (1-dCorrel)*thicknessCorrel + dCorrel

		stdev := v.stdevFor(i)
		randVar := correl*prevRandVar + v.standardNormal()*stdev*math.Sqrt(1-correl*correl)
		soilLayers[i].SetShearVel(avgShearVel[i] * math.Exp(randVar))
		prevRandVar = randVar
	}

	if bedrockVaried {
		randVar := prevRandVar
		if v.StdevIsLayerSpecific && len(v.LayerStdev) > 0 {
			randVar *= v.BedrockStdev / v.LayerStdev[len(v.LayerStdev)-1]
		}
		last := soilLayers[len(soilLayers)-1]
		bedrock.SetShearVel(math.Max(bedrockAvg*math.Exp(randVar), last.ShearVel()))
	} else {
		bedrock.SetShearVel(bedrockAvg)
	}
}
