// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package calc implements the one-dimensional equivalent-linear
// Thomson-Haskell wave-propagation calculator (§4.3): complex shear
// modulus, wave number, up/down-going wave recursion, and the strain
// transfer function / acceleration transfer function / stress transfer
// function family, driven to strain compatibility by the iteration loop
// named in EquivLinearCalc::run (original_source/src/EquivLinearCalc.cpp).
package calc

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cpmech/gosl/chk"

	"github.com/arkottke/strata-sub001/motion"
	"github.com/arkottke/strata-sub001/profile"
	"github.com/arkottke/strata-sub001/units"
)

// freqFloor is the numerical floor below which wave propagation treats the
// frequency as zero (§4.3 "numerical floor").
const freqFloor = 1e-4

// Mode selects how the calculator derives the strain-compatible
// properties (§4.3 "linear-elastic mode"/"frequency-dependent mode").
type Mode int

const (
	// EquivalentLinear iterates to strain compatibility (the default).
	EquivalentLinear Mode = iota
	// LinearElastic skips the iteration entirely (one pass at effStrain=0).
	LinearElastic
	// FrequencyDependent uses a frequency-varying effective-strain ratio
	// instead of the scalar StrainRatio.
	FrequencyDependent
)

// NumericalInstability is returned when a transfer function produces a
// non-finite value (§4.3 "Failure modes", §7).
type NumericalInstability struct {
	Location string
}

func (e *NumericalInstability) Error() string {
	return "calc: numerical instability computing transfer function at " + e.Location
}

// Calculator propagates a single Motion through a single discretised
// Profile, iterating to strain-compatible properties (EquivLinearCalc in
// the source).
type Calculator struct {
	Mode          Mode
	MaxIterations int
	ErrorTolerance float64
	StrainRatio   float64
	// FreqDependentRatio supplies a per-frequency strain ratio when Mode is
	// FrequencyDependent; indexed in parallel with the motion's Freq().
	FreqDependentRatio []float64

	sys    units.System
	motion motion.Motion
	site   *profile.Profile
	subs   []*profile.SubLayer

	nsl int
	nf  int

	shearMod []complex128   // [nsl+1]
	waveA    [][]complex128 // [nsl+1][nf]
	waveB    [][]complex128 // [nsl+1][nf]
	waveNum  [][]complex128 // [nsl+1][nf]
	strainTf [][]complex128 // [nsl][nf]

	rockShearMod float64
	rockDamping  float64
	iterations   int
	maxError     float64
}

// NewCalculator builds a Calculator with the typical SHAKE-style defaults
// (maxIterations=8, errorTolerance=1.0%, strainRatio=0.65), matching
// EquivLinearCalc::reset().
func NewCalculator(sys units.System) *Calculator {
	return &Calculator{
		Mode:           EquivalentLinear,
		MaxIterations:  8,
		ErrorTolerance: 1.0,
		StrainRatio:    0.65,
		sys:            sys,
	}
}

// Motion returns the motion propagated by the most recent Run call.
func (c *Calculator) Motion() motion.Motion { return c.motion }

// Site returns the discretised profile propagated by the most recent Run
// call.
func (c *Calculator) Site() *profile.Profile { return c.site }

// InputLocation returns the location where the input motion is defined
// (the bedrock outcrop), exposing inputLocation() to output extractors
// that need to build their own transfer functions from the surface.
func (c *Calculator) InputLocation() profile.Location { return c.inputLocation() }

// SurfaceLocation returns the location at the top of the discretised
// column, the conventional "ground surface" output point.
func (c *Calculator) SurfaceLocation() profile.Location {
	return profile.Location{SubLayerIndex: 0, DepthInLayer: 0}
}

// Iterations returns the number of iterations performed by the most recent
// Run call.
func (c *Calculator) Iterations() int { return c.iterations }

// MaxError returns the maximum per-layer error at the end of the most
// recent Run call.
func (c *Calculator) MaxError() float64 { return c.maxError }

// compShearMod computes the complex shear modulus G* = G(1 - 2d^2 + 2d*sqrt(1-d^2)*i)
// for real modulus G and damping ratio dampingPct, given in percent (§6
// "damping in percent, never fraction"); d in the formula is the fraction
// dampingPct/100.
func compShearMod(shearMod, dampingPct float64) complex128 {
	d := dampingPct / 100
	return complex(shearMod, 0) * complex(1-2*d*d, 2*d*math.Sqrt(1-d*d))
}

// Run iterates the equivalent-linear calculation to strain compatibility
// for m against the discretised site. site must already have been
// discretised (profile.Profile.Discretise); Run works on the sub-layer
// slice that call cached (site.SubLayers()).
func (c *Calculator) Run(m motion.Motion, site *profile.Profile) error {
	c.motion = m
	c.site = site
	c.subs = site.SubLayers()

	c.nsl = len(c.subs)
	c.nf = len(m.Freq())
	if c.nsl == 0 {
		chk.Panic("calc: profile must be discretised before Run is called")
	}

	c.shearMod = make([]complex128, c.nsl+1)
	c.waveA = make([][]complex128, c.nsl+1)
	c.waveB = make([][]complex128, c.nsl+1)
	c.waveNum = make([][]complex128, c.nsl+1)
	c.strainTf = make([][]complex128, c.nsl)
	for i := 0; i <= c.nsl; i++ {
		c.waveA[i] = make([]complex128, c.nf)
		c.waveB[i] = make([]complex128, c.nf)
		c.waveNum[i] = make([]complex128, c.nf)
		if i < c.nsl {
			c.strainTf[i] = make([]complex128, c.nf)
		}
	}

	rock := site.Rock()
	c.shearMod[c.nsl] = compShearMod(rock.ShearMod(), rock.Damping())

	maxIterations := c.MaxIterations
	if c.Mode == LinearElastic {
		maxIterations = 1
	}

	c.iterations = 0
	c.maxError = -1
	for {
		for i := 0; i < c.nsl; i++ {
			c.shearMod[i] = compShearMod(c.subs[i].ShearMod(), c.subs[i].Damping())
		}

		c.calcWaves()

		for i := 0; i < c.nsl; i++ {
			c.calcStrainTf(profile.Location{SubLayerIndex: i, DepthInLayer: c.subs[i].Thickness() / 2}, c.strainTf[i])
		}

		c.maxError = -1
		for i := 0; i < c.nsl; i++ {
			g := c.sys.Gravity()
			maxStrainPct := 100 * g * m.CalcMaxStrain(c.strainTf[i])
			if math.IsNaN(maxStrainPct) || math.IsInf(maxStrainPct, 0) {
				return &NumericalInstability{Location: "strain"}
			}
			ratio := c.StrainRatio
			if c.Mode == FrequencyDependent {
				ratio = weightedEffectiveRatio(c.FreqDependentRatio, c.strainTf[i])
			}
			if c.Mode == LinearElastic {
				ratio = 0
			}
			c.subs[i].SetStrain(ratio*maxStrainPct, maxStrainPct)
			if e := c.subs[i].Error(); e > c.maxError {
				c.maxError = e
			}
		}

		c.iterations++
		if c.Mode == LinearElastic || c.maxError <= c.ErrorTolerance {
			return nil
		}
		if c.iterations >= maxIterations {
			return &ConvergenceNotReached{Iterations: c.iterations, MaxError: c.maxError, Tolerance: c.ErrorTolerance}
		}
	}
}

// ConvergenceNotReached is returned when the equivalent-linear iteration
// hits its iteration cap with the sub-layer error still above tolerance
// (§7 "keep the result, log Medium"); the sub-layer properties and wave
// solution from the final iteration are still usable as the best estimate.
type ConvergenceNotReached struct {
	Iterations int
	MaxError   float64
	Tolerance  float64
}

func (e *ConvergenceNotReached) Error() string {
	return fmt.Sprintf("calc: equivalent-linear iteration did not converge after %d iterations (maxError=%.3f%%, tolerance=%.3f%%)", e.Iterations, e.MaxError, e.Tolerance)
}

// weightedEffectiveRatio collapses the frequency-dependent strain-ratio
// spectrum (§4.3 "frequency-dependent mode") to a single per-layer value by
// weighting each frequency's ratio by the strain transfer function's
// amplitude at that frequency, so the ratio reflects the frequency content
// actually driving strain at this sub-layer.
func weightedEffectiveRatio(ratios []float64, strainTf []complex128) float64 {
	if len(ratios) == 0 {
		return 0.65
	}
	n := len(ratios)
	if len(strainTf) < n {
		n = len(strainTf)
	}
	var num, denom float64
	for i := 0; i < n; i++ {
		w := cmplx.Abs(strainTf[i])
		num += w * ratios[i]
		denom += w
	}
	if denom == 0 {
		return ratios[len(ratios)/2]
	}
	return num / denom
}

// calcWaves computes the complex wave numbers and the up/down-going wave
// amplitudes at every layer and frequency (EquivLinearCalc::calcWaves()).
func (c *Calculator) calcWaves() {
	for i := 0; i <= c.nsl; i++ {
		density := c.densityAt(i)
		for j := 0; j < c.nf; j++ {
			omega := c.motion.AngFreqAt(j)
			c.waveNum[i][j] = complex(omega, 0) / cmplx.Sqrt(c.shearMod[i]/complex(density, 0))
		}
	}

	freq := c.motion.Freq()
	for i := 0; i < c.nsl; i++ {
		thickness := c.subs[i].Thickness()
		for j := 0; j < c.nf; j++ {
			if i == 0 {
				c.waveA[i][j] = 1
				c.waveB[i][j] = 1
			}

			if freq[j] < freqFloor {
				c.waveA[i+1][j] = 1
				c.waveB[i+1][j] = 1
				continue
			}

			imped := (c.waveNum[i][j] * c.shearMod[i]) / (c.waveNum[i+1][j] * c.shearMod[i+1])
			term := complex(0, 1) * c.waveNum[i][j] * complex(thickness, 0)

			c.waveA[i+1][j] = 0.5*c.waveA[i][j]*(1+imped)*cmplx.Exp(term) +
				0.5*c.waveB[i][j]*(1-imped)*cmplx.Exp(-term)
			c.waveB[i+1][j] = 0.5*c.waveA[i][j]*(1-imped)*cmplx.Exp(term) +
				0.5*c.waveB[i][j]*(1+imped)*cmplx.Exp(-term)
		}
	}
}

// densityAt returns the mass density (unit weight / gravity) of layer i,
// where i == nsl designates the bedrock half-space.
func (c *Calculator) densityAt(i int) float64 {
	if i == c.nsl {
		return c.site.Rock().Density()
	}
	return c.subs[i].SoilLayer().Density()
}

// calcStrainTf computes the strain transfer function at location, storing
// the result into dst (EquivLinearCalc::calcStrainTf()).
func (c *Calculator) calcStrainTf(location profile.Location, dst []complex128) {
	freq := c.motion.Freq()
	inLoc := c.inputLocation()
	inType := c.motion.Type()

	for i := 0; i < c.nf; i++ {
		if freq[i] < freqFloor {
			dst[i] = 0
			continue
		}
		term := complex(0, 1) * c.waveNum[location.SubLayerIndex][i] * complex(location.DepthInLayer, 0)
		numer := complex(0, 1) * c.waveNum[location.SubLayerIndex][i] *
			(c.waveA[location.SubLayerIndex][i]*cmplx.Exp(term) - c.waveB[location.SubLayerIndex][i]*cmplx.Exp(-term))
		omega := c.motion.AngFreqAt(i)
		denom := complex(-omega*omega, 0) * c.waves(i, inLoc, inType)
		dst[i] = numer / denom
	}
}

// CalcAccelTf computes the acceleration transfer function between two
// locations/types (EquivLinearCalc::calcAccelTf()).
func (c *Calculator) CalcAccelTf(inLoc profile.Location, inType motion.Type, outLoc profile.Location, outType motion.Type) []complex128 {
	freq := c.motion.Freq()
	tf := make([]complex128, c.nf)
	for i := 0; i < c.nf; i++ {
		if freq[i] < freqFloor {
			tf[i] = 1
			continue
		}
		tf[i] = c.waves(i, outLoc, outType) / c.waves(i, inLoc, inType)
	}
	return tf
}

// CalcStressTf computes the stress transfer function at location: the
// strain transfer function multiplied by the complex shear modulus of that
// sub-layer (§4.3 "Stress TF").
func (c *Calculator) CalcStressTf(location profile.Location) []complex128 {
	tf := make([]complex128, c.nf)
	base := c.strainTf[location.SubLayerIndex]
	g := c.shearMod[location.SubLayerIndex]
	for i := range tf {
		tf[i] = base[i] * g
	}
	return tf
}

// StrainTfAt returns the cached strain transfer function computed during
// the last Run for the given sub-layer.
func (c *Calculator) StrainTfAt(subLayer int) []complex128 {
	return c.strainTf[subLayer]
}

// inputLocation is the location where the input motion is defined: rock
// outcrop at the base of the column by convention, matching the source's
// SiteProfile::inputLocation() default.
func (c *Calculator) inputLocation() profile.Location {
	return profile.Location{SubLayerIndex: c.nsl, DepthInLayer: 0}
}

// waves evaluates the up/down-going wave solution at a location for a
// given freqIdx and motion Type (EquivLinearCalc::waves()).
func (c *Calculator) waves(freqIdx int, location profile.Location, typ motion.Type) complex128 {
	term := complex(0, 1) * c.waveNum[location.SubLayerIndex][freqIdx] * complex(location.DepthInLayer, 0)

	switch typ {
	case motion.Within:
		return c.waveA[location.SubLayerIndex][freqIdx]*cmplx.Exp(term) + c.waveB[location.SubLayerIndex][freqIdx]*cmplx.Exp(-term)
	case motion.Outcrop:
		return 2 * c.waveA[location.SubLayerIndex][freqIdx] * cmplx.Exp(term)
	case motion.IncomingOnly:
		return c.waveA[location.SubLayerIndex][freqIdx] * cmplx.Exp(term)
	default:
		chk.Panic("calc: unknown motion type %v", typ)
		return 0
	}
}

// MaxAccelProfile computes the peak acceleration at the top of every
// sub-layer plus the bedrock outcrop (EquivLinearCalc::maxAccelProfile()).
func (c *Calculator) MaxAccelProfile() []float64 {
	out := make([]float64, c.nsl+1)
	inLoc := c.inputLocation()
	inType := c.motion.Type()
	for i := 0; i <= c.nsl; i++ {
		outType := motion.Within
		if i == 0 {
			outType = motion.Outcrop
		}
		tf := c.CalcAccelTf(inLoc, inType, profile.Location{SubLayerIndex: i, DepthInLayer: 0}, outType)
		out[i] = c.motion.Max(tf)
	}
	return out
}
