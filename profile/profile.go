// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profile

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Profile is an ordered sequence of SoilLayers terminated by a RockLayer
// (§3). Profile owns its SoilLayers, its RockLayer, and the SubLayers
// produced by Discretise; SubLayers are freed and rebuilt wholesale on
// every re-discretisation, mirroring the teacher's fem.Domain ownership of
// Elements/Nodes (fem/domain.go).
type Profile struct {
	gravity    float64
	soilLayers []*SoilLayer
	rock       *RockLayer
	subLayers  []*SubLayer
}

// NewProfile builds a Profile from an ordered slice of SoilLayers and a
// terminal RockLayer.
func NewProfile(gravity float64, soilLayers []*SoilLayer, rock *RockLayer) *Profile {
	if len(soilLayers) == 0 {
		chk.Panic("profile: a profile must contain at least one soil layer")
	}
	if rock == nil {
		chk.Panic("profile: a profile must be terminated by a rock layer")
	}
	return &Profile{gravity: gravity, soilLayers: soilLayers, rock: rock}
}

// SoilLayers returns the ordered soil layers.
func (p *Profile) SoilLayers() []*SoilLayer { return p.soilLayers }

// Rock returns the terminal half-space.
func (p *Profile) Rock() *RockLayer { return p.rock }

// SubLayers returns the SubLayers produced by the most recent Discretise
// call (nil before the first call).
func (p *Profile) SubLayers() []*SubLayer { return p.subLayers }

// Discretise implements the contract of §4.1: each SoilLayer of thickness h
// and shear-wave velocity vs is subdivided into
// ceil(h*maxFreq*waveFraction/vs) SubLayers of equal thickness h/n. Depth to
// top and total vertical stress are accumulated exactly along the full
// sequence, and the rock layer's depth is set to the base of the last
// SubLayer.
func (p *Profile) Discretise(maxFreq, waveFraction float64) []*SubLayer {
	if maxFreq <= 0 {
		chk.Panic("profile: discretise requires a positive max frequency, got %v", maxFreq)
	}
	if waveFraction <= 0 {
		chk.Panic("profile: discretise requires a positive wave fraction, got %v", waveFraction)
	}

	depth := 0.0
	vTotalStress := 0.0
	var subLayers []*SubLayer

	for _, sl := range p.soilLayers {
		sl.SetDepth(depth)

		n := int(math.Ceil(sl.Thickness() * maxFreq * waveFraction / sl.ShearVel()))
		if n < 1 {
			n = 1
		}
		subThickness := sl.Thickness() / float64(n)

		for i := 0; i < n; i++ {
			sub := NewSubLayer(sl, subThickness, depth, vTotalStress)
			subLayers = append(subLayers, sub)
			depth += subThickness
			vTotalStress += sl.UntWt() * subThickness
		}
	}

	p.rock.SetDepth(depth)
	p.subLayers = subLayers
	return subLayers
}

// ResetSubLayers restores every SubLayer to its initial (pre-iteration)
// state, called between realisations (§4.7).
func (p *Profile) ResetSubLayers() {
	for _, s := range p.subLayers {
		s.Reset()
	}
}

// LocationAtDepth resolves an absolute depth below the surface into a
// Location, clamping to the rock outcrop if depth falls at or below the
// base of the discretised column.
func (p *Profile) LocationAtDepth(depth float64) Location {
	if depth >= p.rock.Depth() {
		return Location{SubLayerIndex: len(p.subLayers)}
	}
	for i, s := range p.subLayers {
		if depth < s.DepthToBase() {
			within := depth - s.Depth()
			if within < 0 {
				within = 0
			}
			return Location{SubLayerIndex: i, DepthInLayer: within}
		}
	}
	return Location{SubLayerIndex: len(p.subLayers)}
}

// RockOutcropLocation returns the Location designating the bedrock outcrop.
func (p *Profile) RockOutcropLocation() Location {
	return Location{SubLayerIndex: len(p.subLayers)}
}

// DepthOf returns the absolute depth below the surface a Location refers
// to.
func (p *Profile) DepthOf(loc Location) float64 {
	if loc.IsRockOutcrop(len(p.subLayers)) {
		return p.rock.Depth()
	}
	return p.subLayers[loc.SubLayerIndex].Depth() + loc.DepthInLayer
}
