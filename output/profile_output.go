// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package output

import "github.com/arkottke/strata-sub001/calc"

// profileOutput is the shared machinery of every depth-vs-quantity output
// (AbstractProfileOutput): every extracted series is resampled onto the
// Catalog's depth reference before being stored, since two realisations can
// discretise to a different number of sub-layers once layering is
// randomised (LinearOutputInterpolater::calculate, applied here to the
// depth axis rather than the time axis it serves in the teacher).
type profileOutput struct {
	baseOutput
}

func (p *profileOutput) Finalize(enabled func(site, motion int) bool, siteCount, motionCount int) {
	p.median, p.lnStdev = finalizeLogNormal(p.data, enabled, siteCount, motionCount)
}

// resample interpolates (nativeDepth, vals) onto p.ref, dropping points at
// or beyond the reference's last depth (AbstractProfileOutput's eventual
// LinearOutputInterpolater pass over m_ref).
func (p *profileOutput) resample(nativeDepth, vals []float64) []float64 {
	if len(p.ref) == 0 {
		return vals
	}
	return resampleDropOutside(nativeDepth, vals, p.ref)
}

// AccelProfileOutput extracts the peak acceleration at the top of every
// sub-layer plus the bedrock outcrop (MaxAccelProfileOutput.cpp).
type AccelProfileOutput struct{ profileOutput }

func NewAccelProfileOutput() *AccelProfileOutput {
	o := &AccelProfileOutput{}
	o.name = "Acceleration Profile"
	return o
}

func (o *AccelProfileOutput) AddData(motionIdx int, c *calc.Calculator) {
	vals := c.MaxAccelProfile()
	depth := profileTopDepths(c)
	o.addAt(motionIdx, o.resample(depth, vals))
}

// StrainProfileOutput extracts the peak shear strain (percent) at the
// mid-depth of every sub-layer, extrapolated by slope across half the
// final layer's thickness to reach the bedrock outcrop depth
// (MaxStrainProfileOutput.cpp / AbstractProfileOutput::extrap()).
type StrainProfileOutput struct{ profileOutput }

func NewStrainProfileOutput() *StrainProfileOutput {
	o := &StrainProfileOutput{}
	o.name = "Shear Strain Profile"
	return o
}

func (o *StrainProfileOutput) AddData(motionIdx int, c *calc.Calculator) {
	depth, vals := extractMidDepthSeries(c, func(s subLayerLike) float64 { return s.MaxStrain() })
	o.addAt(motionIdx, o.resample(depth, vals))
}

// StressProfileOutput extracts the peak shear stress at the mid-depth of
// every sub-layer (MaxStressProfileOutput.cpp).
type StressProfileOutput struct{ profileOutput }

func NewStressProfileOutput() *StressProfileOutput {
	o := &StressProfileOutput{}
	o.name = "Shear Stress Profile"
	return o
}

func (o *StressProfileOutput) AddData(motionIdx int, c *calc.Calculator) {
	depth, vals := extractMidDepthSeries(c, func(s subLayerLike) float64 { return s.ShearStress() })
	o.addAt(motionIdx, o.resample(depth, vals))
}

// StressRatioProfileOutput extracts the cyclic stress ratio (shear stress
// over total vertical stress) at the mid-depth of every sub-layer
// (StressRatioProfileOutput.cpp).
type StressRatioProfileOutput struct{ profileOutput }

func NewStressRatioProfileOutput() *StressRatioProfileOutput {
	o := &StressRatioProfileOutput{}
	o.name = "Stress Ratio Profile"
	return o
}

func (o *StressRatioProfileOutput) AddData(motionIdx int, c *calc.Calculator) {
	depth, vals := extractMidDepthSeries(c, func(s subLayerLike) float64 { return s.StressRatio() })
	o.addAt(motionIdx, o.resample(depth, vals))
}

// subLayerLike is the slice of profile.SubLayer's API the extractors need,
// named narrowly so extractMidDepthSeries stays decoupled from the
// concrete profile package type.
type subLayerLike interface {
	MaxStrain() float64
	ShearStress() float64
	StressRatio() float64
	DepthToMid() float64
	Thickness() float64
}

// profileTopDepths returns the depth to the top of every sub-layer plus
// the bedrock outcrop depth, the reference AbstractProfileOutput::extract()
// builds for layer-top quantities like peak acceleration.
func profileTopDepths(c *calc.Calculator) []float64 {
	subs := c.Site().SubLayers()
	out := make([]float64, len(subs)+1)
	for i, s := range subs {
		out[i] = s.Depth()
	}
	out[len(subs)] = c.Site().Rock().Depth()
	return out
}

// extractMidDepthSeries reads f at the mid-depth of every sub-layer of
// c.Site(), then appends one more point at the bedrock outcrop by
// extrapolating the slope of the last two sub-layers across half of the
// final sub-layer's thickness (AbstractProfileOutput::extrap()), since
// mid-depth quantities have no natural value exactly at the outcrop.
func extractMidDepthSeries(c *calc.Calculator, f func(subLayerLike) float64) (depth, vals []float64) {
	subs := c.Site().SubLayers()
	vals = make([]float64, len(subs))
	depth = make([]float64, len(subs))
	for i, s := range subs {
		vals[i] = f(s)
		depth[i] = s.DepthToMid()
	}
	if len(subs) < 2 {
		return depth, vals
	}
	last := subs[len(subs)-1]
	vals = extrapolateLastSlope(depth, vals, last.Thickness())
	depth = append(depth, last.DepthToMid()+last.Thickness()/2)
	return depth, vals
}
