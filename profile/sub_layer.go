// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profile

import "math"

// SubLayer is the numerical discretisation unit built from a SoilLayer
// (§3): current shear modulus, damping, effective/max strain, the previous
// iteration's modulus/damping (for convergence error), and the total
// vertical stress at mid-depth.
type SubLayer struct {
	soilLayer *SoilLayer

	thickness    float64
	depth        float64
	vTotalStress float64

	effStrain float64
	maxStrain float64

	shearMod    float64
	oldShearMod float64
	shearVel    float64
	normShearMod float64

	damping    float64
	oldDamping float64

	shearModError float64
	dampingError  float64
}

// NewSubLayer builds a SubLayer of the given thickness at depthToTop,
// accumulating vTotalStressAtTop (the running total stress at the top of
// this sub-layer) into the mid-depth stress (SubLayer::SubLayer in
// SubLayer.cpp).
func NewSubLayer(soilLayer *SoilLayer, thickness, depthToTop, vTotalStressAtTop float64) *SubLayer {
	sl := &SubLayer{
		soilLayer:    soilLayer,
		thickness:    thickness,
		depth:        depthToTop,
		vTotalStress: vTotalStressAtTop + soilLayer.UntWt()*thickness/2,
	}
	sl.Reset()
	return sl
}

// Reset restores the SubLayer to its initial (un-iterated) state: initial
// shear modulus/velocity from the SoilLayer, the SoilType's initial
// damping, and invalidated error/strain history (SubLayer::reset()).
func (s *SubLayer) Reset() {
	s.damping = s.soilLayer.SoilType().InitialDamping
	s.effStrain = -1
	s.shearMod = s.soilLayer.ShearMod()
	s.shearVel = s.soilLayer.ShearVel()
	s.dampingError = -1
	s.shearModError = -1
	s.oldShearMod = -1
	s.oldDamping = -1
}

func (s *SubLayer) SoilLayer() *SoilLayer     { return s.soilLayer }
func (s *SubLayer) Thickness() float64        { return s.thickness }
func (s *SubLayer) Depth() float64            { return s.depth }
func (s *SubLayer) DepthToMid() float64       { return s.depth + s.thickness/2 }
func (s *SubLayer) DepthToBase() float64      { return s.depth + s.thickness }
func (s *SubLayer) VTotalStress() float64     { return s.vTotalStress }
func (s *SubLayer) EffStrain() float64        { return s.effStrain }
func (s *SubLayer) MaxStrain() float64        { return s.maxStrain }
func (s *SubLayer) ShearMod() float64         { return s.shearMod }
func (s *SubLayer) OldShearMod() float64      { return s.oldShearMod }
func (s *SubLayer) ShearVel() float64         { return s.shearVel }
func (s *SubLayer) NormShearMod() float64     { return s.normShearMod }
func (s *SubLayer) Damping() float64          { return s.damping }
func (s *SubLayer) OldDamping() float64       { return s.oldDamping }
func (s *SubLayer) ShearModError() float64    { return s.shearModError }
func (s *SubLayer) DampingError() float64     { return s.dampingError }

// StressRatio returns shearStress()/vTotalStress() (used by
// StressRatioProfileOutput).
func (s *SubLayer) StressRatio() float64 {
	return s.ShearStress() / s.vTotalStress
}

// ShearStress returns the peak shear stress implied by the current shear
// modulus and max strain (percent), SubLayer::shearStress().
func (s *SubLayer) ShearStress() float64 {
	return s.shearMod * s.maxStrain / 100
}

// Error returns the larger of the shear-modulus and damping percent errors,
// the convergence criterion tested against errorTolerance (§4.3 step 6,
// SubLayer::error()).
func (s *SubLayer) Error() float64 {
	return math.Max(s.shearModError, s.dampingError)
}

// SetStrain updates the SubLayer's nonlinear properties for the newly
// computed effective and maximum strain (SubLayer::setStrain()): it looks
// up the normalized modulus reduction and damping curves at effStrain,
// recomputes shear modulus/velocity, and records the percent change from
// the previous iteration's values for convergence checking.
func (s *SubLayer) SetStrain(effStrain, maxStrain float64) {
	s.effStrain = effStrain
	s.maxStrain = maxStrain
	s.oldShearMod = s.shearMod
	s.oldDamping = s.damping

	st := s.soilLayer.SoilType()
	s.normShearMod = st.NormShearMod().Interp(effStrain)
	s.shearMod = s.soilLayer.ShearMod() * s.normShearMod
	s.damping = st.Damping().Interp(effStrain)

	s.shearVel = math.Sqrt(s.shearMod / s.soilLayer.Density())

	s.shearModError = 100 * math.Abs(s.shearMod-s.oldShearMod) / s.shearMod
	s.dampingError = 100 * math.Abs(s.damping-s.oldDamping) / s.damping
}
