// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variation

import (
	"math"
	"math/rand"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/arkottke/strata-sub001/profile"
)

// StdevModel selects how the per-point standard deviation of a nonlinear
// curve is computed (NonlinearPropertyVariation::Model).
type StdevModel int

const (
	// Darendeli is the closed-form stdev model hardcoded from Darendeli's
	// dissertation (NonlinearPropertyVariation::shearModStdev/dampingStdev).
	Darendeli StdevModel = iota
	// CustomStdevModel evaluates a user-supplied function of
	// (normShearMod|damping, strain).
	CustomStdevModel
)

// StdevFunc is a user-supplied standard-deviation model, evaluated at a
// curve value and its strain (percent); used when Model is CustomStdevModel.
type StdevFunc func(value, strain float64) float64

// variedProperty is the surface nonlinear_curve.go needs beyond the minimal
// profile.Property interface: the average/strain vectors to perturb and
// SetVaried to install the result. *nlprop.Property satisfies it
// structurally without profile needing to import nlprop.
type variedProperty interface {
	profile.Property
	Strain() []float64
	Average() []float64
	SetVaried(varied []float64)
}

// CurveRandomizer draws the correlated bivariate-normal nonlinear-curve
// perturbation of §4.5 (NonlinearPropertyVariation::vary()).
type CurveRandomizer struct {
	Model                  StdevModel
	Correl                 float64 // correlation between shear-modulus and damping perturbations
	ShearModMin, ShearModMax float64
	DampingMin, DampingMax float64
	ShearModStdevFunc      StdevFunc // used when Model is CustomStdevModel
	DampingStdevFunc       StdevFunc // used when Model is CustomStdevModel
	BedrockEnabled         bool
	rng                    *rand.Rand
}

// NewCurveRandomizer builds a randomizer with the Strata defaults: Darendeli
// stdev model, correl=-0.50, shearMod in [0.10, 1.00], damping in
// [0.20, 15.00] percent (NonlinearPropertyVariation::reset()).
func NewCurveRandomizer(rng *rand.Rand) *CurveRandomizer {
	return &CurveRandomizer{
		Model:       Darendeli,
		Correl:      -0.50,
		ShearModMin: 0.10,
		ShearModMax: 1.00,
		DampingMin:  0.20,
		DampingMax:  15.00,
		rng:         rng,
	}
}

func (c *CurveRandomizer) shearModStdev(normShearMod, strain float64) float64 {
	switch c.Model {
	case Darendeli:
		return math.Exp(-4.23) + math.Sqrt(0.25/math.Exp(3.62)-math.Pow(normShearMod-0.5, 2)/math.Exp(3.62))
	case CustomStdevModel:
		if c.ShearModStdevFunc == nil {
			chk.Panic("variation: custom shear modulus stdev model selected but no function supplied")
		}
		return c.ShearModStdevFunc(normShearMod, strain)
	}
	chk.Panic("variation: unknown shear modulus stdev model %v", c.Model)
	return 0
}

func (c *CurveRandomizer) dampingStdev(damping, strain float64) float64 {
	switch c.Model {
	case Darendeli:
		return math.Exp(-5) + math.Exp(-0.25)*math.Sqrt(damping)
	case CustomStdevModel:
		if c.DampingStdevFunc == nil {
			chk.Panic("variation: custom damping stdev model selected but no function supplied")
		}
		return c.DampingStdevFunc(damping, strain)
	}
	chk.Panic("variation: unknown damping stdev model %v", c.Model)
	return 0
}

// bivariateNormal draws a pair (g, d) of zero-mean unit-variance normal
// variates with correlation correl, mirroring gsl_ran_bivariate_gaussian
// with sigmaX=sigmaY=1.
func (c *CurveRandomizer) bivariateNormal(correl float64) (g, d float64) {
	n := distuv.Normal{Mu: 0, Sigma: 1, Src: c.rng}
	g = n.Rand()
	d = correl*g + n.Rand()*math.Sqrt(1-correl*correl)
	return
}

// clamp restricts x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Vary perturbs soilType's modulus-reduction and damping curves in place,
// installing the result via SetVaried (NonlinearPropertyVariation::vary(SoilType&)).
// It panics via chk.Panic if soilType's curves do not expose the varied-curve
// surface (i.e. were not built from *nlprop.Property).
func (c *CurveRandomizer) Vary(soilType *profile.SoilType) {
	normShearMod, ok := soilType.NormShearMod().(variedProperty)
	if !ok {
		chk.Panic("variation: soil type %q's modulus-reduction curve does not support variation", soilType.Name)
	}
	damping, ok := soilType.Damping().(variedProperty)
	if !ok {
		chk.Panic("variation: soil type %q's damping curve does not support variation", soilType.Name)
	}

	randG, randD := c.bivariateNormal(c.Correl)

	strain := normShearMod.Strain()
	avgG := normShearMod.Average()
	variedG := make([]float64, len(avgG))
	for i, v := range avgG {
		stdev := c.shearModStdev(v, strain[i])
		variedG[i] = clamp(v+stdev*randG, c.ShearModMin, c.ShearModMax)
	}
	normShearMod.SetVaried(variedG)

	dStrain := damping.Strain()
	avgD := damping.Average()
	variedD := make([]float64, len(avgD))
	for i, v := range avgD {
		stdev := c.dampingStdev(v, dStrain[i])
		variedD[i] = clamp(v+stdev*randD, c.DampingMin, c.DampingMax)
	}
	damping.SetVaried(variedD)
}

// VaryBedrock perturbs the bedrock's damping ratio about its average value
// (NonlinearPropertyVariation::vary(RockLayer&)); a no-op unless
// BedrockEnabled is set.
func (c *CurveRandomizer) VaryBedrock(bedrock *profile.RockLayer) {
	if !c.BedrockEnabled {
		return
	}
	stdev := c.dampingStdev(bedrock.AvgDamping(), 0.0001)
	d := distuv.Normal{Mu: bedrock.AvgDamping(), Sigma: stdev, Src: c.rng}.Rand()
	bedrock.SetDamping(d)
}
