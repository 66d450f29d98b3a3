// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package profile

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
)

// VelocityLayer is the capability set shared by SoilLayer and RockLayer
// (§3): a possibly-randomised shear-wave velocity, unit weight, density, and
// depth-to-top. Rendered as an interface rather than the source's abstract
// base class with virtual untWt()/density()/toString().
type VelocityLayer interface {
	Depth() float64
	SetDepth(depth float64)
	ShearVel() float64
	SetShearVel(shearVel float64)
	ShearMod() float64
	UntWt() float64
	Density() float64
	String() string
}

// shearMod computes G = (gamma/g) * vs^2 in consistent units, the relation
// shared by SoilLayer.shearMod() and RockLayer.shearMod() in the original
// VelocityLayer base class.
func shearMod(untWt, shearVel, gravity float64) float64 {
	return (untWt / gravity) * shearVel * shearVel
}

// SoilLayer has finite thickness and references a SoilType for its
// nonlinear behavior (§3).
type SoilLayer struct {
	soilType    *SoilType
	thickness   float64
	depth       float64
	avgShearVel float64
	shearVel    float64
	gravity     float64
}

// NewSoilLayer builds a SoilLayer of the given thickness referencing
// soilType, with an average (un-randomised) shear-wave velocity.
func NewSoilLayer(soilType *SoilType, thickness, avgShearVel, gravity float64) *SoilLayer {
	if soilType == nil {
		chk.Panic("profile: soil layer requires a non-nil soil type")
	}
	if thickness <= 0 {
		chk.Panic("profile: soil layer thickness must be positive, got %v", thickness)
	}
	if avgShearVel <= 0 {
		chk.Panic("profile: soil layer shear velocity must be positive, got %v", avgShearVel)
	}
	return &SoilLayer{
		soilType:    soilType,
		thickness:   thickness,
		avgShearVel: avgShearVel,
		shearVel:    avgShearVel,
		gravity:     gravity,
	}
}

func (l *SoilLayer) SoilType() *SoilType     { return l.soilType }
func (l *SoilLayer) Thickness() float64      { return l.thickness }
func (l *SoilLayer) Depth() float64          { return l.depth }
func (l *SoilLayer) SetDepth(depth float64)  { l.depth = depth }
func (l *SoilLayer) DepthToBase() float64    { return l.depth + l.thickness }
func (l *SoilLayer) ShearVel() float64       { return l.shearVel }
func (l *SoilLayer) AvgShearVel() float64    { return l.avgShearVel }

// SetShearVel sets the (possibly randomised) shear-wave velocity.
func (l *SoilLayer) SetShearVel(shearVel float64) {
	if shearVel <= 0 {
		chk.Panic("profile: randomised shear velocity must be positive, got %v", shearVel)
	}
	l.shearVel = shearVel
}

func (l *SoilLayer) UntWt() float64  { return l.soilType.UnitWeight }
func (l *SoilLayer) Density() float64 {
	return l.soilType.UnitWeight / l.gravity
}

func (l *SoilLayer) ShearMod() float64 {
	return shearMod(l.UntWt(), l.shearVel, l.gravity)
}

func (l *SoilLayer) String() string {
	return fmt.Sprintf("%s (h=%.2f, vs=%.1f)", l.soilType.Name, l.thickness, l.shearVel)
}

// RockLayer is the half-space terminating the column (§3): no thickness, no
// nonlinear curves, carries an average and a (possibly randomised) damping
// ratio rather than a full SoilType.
type RockLayer struct {
	untWt      float64
	avgDamping float64
	damping    float64
	shearVel   float64
	depth      float64
	gravity    float64
}

// NewRockLayer builds the terminal half-space layer.
func NewRockLayer(untWt, avgDamping, shearVel, gravity float64) *RockLayer {
	if untWt <= 0 {
		chk.Panic("profile: rock layer must have a positive unit weight")
	}
	if shearVel <= 0 {
		chk.Panic("profile: rock layer must have a positive shear velocity")
	}
	return &RockLayer{
		untWt:      untWt,
		avgDamping: avgDamping,
		damping:    avgDamping,
		shearVel:   shearVel,
		gravity:    gravity,
	}
}

func (r *RockLayer) Depth() float64         { return r.depth }
func (r *RockLayer) SetDepth(depth float64) { r.depth = depth }
func (r *RockLayer) ShearVel() float64      { return r.shearVel }

// SetShearVel sets the randomised bedrock velocity; the Toro randomiser
// clamps this to be no smaller than the last soil layer's velocity
// before calling in (ProfileVariation.cpp varyVelocity()).
func (r *RockLayer) SetShearVel(shearVel float64) {
	if shearVel <= 0 {
		chk.Panic("profile: rock layer shear velocity must be positive, got %v", shearVel)
	}
	r.shearVel = shearVel
}

func (r *RockLayer) UntWt() float64   { return r.untWt }
func (r *RockLayer) Density() float64 { return r.untWt / r.gravity }
func (r *RockLayer) ShearMod() float64 {
	return shearMod(r.untWt, r.shearVel, r.gravity)
}

// Damping returns the current (possibly randomised) damping ratio, in
// percent -- the same convention as SoilType's damping curve (§6 "damping in
// percent, never fraction").
func (r *RockLayer) Damping() float64 { return r.damping }

// AvgDamping returns the average (pre-randomisation) damping ratio, in
// percent.
func (r *RockLayer) AvgDamping() float64 { return r.avgDamping }

// SetDamping sets only the randomised damping, in percent.
func (r *RockLayer) SetDamping(damping float64) {
	if damping < 0 {
		chk.Panic("profile: rock layer damping must be non-negative, got %v", damping)
	}
	r.damping = damping
}

// Reset restores the randomised damping and velocity to their average
// values, mirroring RockLayer::reset().
func (r *RockLayer) Reset(avgShearVel float64) {
	r.damping = r.avgDamping
	r.shearVel = avgShearVel
}

func (r *RockLayer) String() string {
	return fmt.Sprintf("rock half-space (vs=%.1f, damping=%.2f%%)", r.shearVel, r.damping)
}

var _ VelocityLayer = (*SoilLayer)(nil)
var _ VelocityLayer = (*RockLayer)(nil)

// clampedVel returns v clamped to [min, +inf). Nothing in the module calls
// it: the Toro bedrock rule applies math.Max directly and Discretise has no
// velocity floor.
func clampedVel(v, min float64) float64 {
	return math.Max(v, min)
}
