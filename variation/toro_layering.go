// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variation

import (
	"math"
	"math/rand"

	"github.com/arkottke/strata-sub001/profile"
)

// LayeringParams are the rate-function parameters of the non-homogeneous
// Poisson layering process (ProfileVariation::setLayeringModel()).
type LayeringParams struct {
	Coeff    float64
	Initial  float64
	Exponent float64
}

// DefaultLayering mirrors ProfileVariation::setLayeringModel(DefaultLayering).
var DefaultLayering = LayeringParams{Coeff: 1.98, Initial: 10.86, Exponent: -0.89}

// LayeringRandomizer draws a Toro (1995) non-homogeneous-Poisson layering
// realisation: a new set of layer thicknesses spanning the same total depth
// to bedrock, independent of the input layer boundaries.
type LayeringRandomizer struct {
	Params LayeringParams
	rng    *rand.Rand
}

func NewLayeringRandomizer(rng *rand.Rand, params LayeringParams) *LayeringRandomizer {
	return &LayeringRandomizer{Params: params, rng: rng}
}

// VaryThickness returns the realised layer thicknesses spanning
// [0, depthToBedrock] (ProfileVariation::varyLayering()).
func (l *LayeringRandomizer) VaryThickness(depthToBedrock float64) []float64 {
	p := l.Params
	var thickness []float64

	sum := 0.0
	prevDepth := 0.0

	for prevDepth < depthToBedrock {
		sum += l.rng.ExpFloat64()

		depth := math.Pow(
			(p.Exponent*sum)/p.Coeff+sum/p.Coeff+math.Pow(p.Initial, p.Exponent+1),
			1/(p.Exponent+1),
		) - p.Initial

		thickness = append(thickness, depth-prevDepth)
		prevDepth = depth
	}

	last := len(thickness) - 1
	thickness[last] -= prevDepth - depthToBedrock

	return thickness
}

// representativeSoilLayer returns the soil layer contributing the longest
// shear-wave travel time within [top, base] among the original soil
// layers, the soil type inherited by a newly-realised layering layer
// spanning that same interval (SiteProfile::representativeSoilLayer()).
func representativeSoilLayer(soilLayers []*profile.SoilLayer, top, base float64) *profile.SoilLayer {
	var best *profile.SoilLayer
	bestTime := -1.0

	for _, sl := range soilLayers {
		layerTop := sl.Depth()
		layerBase := sl.DepthToBase()

		overlapTop := math.Max(top, layerTop)
		overlapBase := math.Min(base, layerBase)
		if overlapBase <= overlapTop {
			continue
		}

		travelTime := (overlapBase - overlapTop) / sl.AvgShearVel()
		if travelTime > bestTime {
			bestTime = travelTime
			best = sl
		}
	}

	return best
}

// AssignSoilTypes returns, for each realised layer thickness in thickness
// (cumulative depths starting at 0), the original soil layer whose
// material contributes the longest travel time within that layer's depth
// range -- the representative-soil-type inheritance rule.
func AssignSoilTypes(soilLayers []*profile.SoilLayer, thickness []float64) []*profile.SoilLayer {
	assigned := make([]*profile.SoilLayer, len(thickness))
	depth := 0.0
	for i, t := range thickness {
		assigned[i] = representativeSoilLayer(soilLayers, depth, depth+t)
		depth += t
	}
	return assigned
}
