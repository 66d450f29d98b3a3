// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nlprop

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/utl"
)

// nPoints is the number of strain points on the Darendeli table (§4.2).
const nPoints = 19

// strain grid endpoints in percent.
const (
	minStrainPct = 1e-4
	maxStrainPct = 3.0
)

// DarendeliParams bundles the inputs to the Darendeli/Stokoe (2001)
// closed-form modulus-reduction and damping model. It is built the same way
// the teacher's constitutive models are (a parameter list keyed by name),
// see SmallElasticity.Init in the teacher's mdl/solid/elasticity.go.
type DarendeliParams struct {
	MeanStress float64 // mean effective confining stress, atm
	PI         float64 // plasticity index, percent
	OCR        float64 // overconsolidation ratio
	Freq       float64 // excitation frequency, Hz
	Cycles     float64 // number of loading cycles
}

// NewDarendeliParams reads a DarendeliParams from a fun.Prms bundle,
// mirroring the teacher's Init(prms fun.Prms) convention. Any Darendeli
// input that is missing or non-finite is a ConfigurationInvalid condition
// (§3's SoilType invariant) and panics before any calculation starts.
func NewDarendeliParams(prms fun.Prms) (d DarendeliParams) {
	var hasStress, hasPI, hasOCR, hasFreq, hasCycles bool
	for _, p := range prms {
		switch p.N {
		case "meanStress":
			d.MeanStress, hasStress = p.V, true
		case "PI":
			d.PI, hasPI = p.V, true
		case "OCR":
			d.OCR, hasOCR = p.V, true
		case "freq":
			d.Freq, hasFreq = p.V, true
		case "cycles":
			d.Cycles, hasCycles = p.V, true
		}
	}
	if !hasStress || !hasPI || !hasOCR || !hasFreq || !hasCycles {
		chk.Panic("nlprop: Darendeli soil type requires meanStress, PI, OCR, freq and cycles parameters")
	}
	if !allFinite(d.MeanStress, d.PI, d.OCR, d.Freq, d.Cycles) {
		chk.Panic("nlprop: Darendeli soil type parameters must all be finite")
	}
	return
}

func allFinite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// StrainGrid returns the 19-point log-spaced strain grid (percent) from
// 1e-4% to 3%, shared by every Darendeli-computed curve. gosl/utl exposes
// utl.LinSpace for linearly-spaced grids (as used to build strain ranges in
// the teacher's mdl/solid tests); the log-spacing itself is a one-line
// transform of that linear grid in log10 space.
func StrainGrid() []float64 {
	logGrid := utl.LinSpace(math.Log10(minStrainPct), math.Log10(maxStrainPct), nPoints)
	strain := make([]float64, nPoints)
	for i, lg := range logGrid {
		strain[i] = math.Pow(10, lg)
	}
	return strain
}

// Darendeli evaluates the published Darendeli/Stokoe (2001) coefficients on
// StrainGrid() and returns the modulus-reduction (G/Gmax) and damping
// (percent) curves for the given parameters.
func Darendeli(d DarendeliParams) (modulus, damping *Property) {
	strain := StrainGrid()

	const (
		phi1 = 0.0352
		phi2 = 0.0010
		phi3 = 0.3246
		phi4 = 0.3483
		phi5 = 0.8005
		phi6 = 0.0129
		phi7 = -0.1069
		phi8 = -0.2889
		phi9 = 0.2919
		a    = 0.9190
	)

	refStrain := (phi1 + phi2*d.PI*math.Pow(d.OCR, phi3)) * math.Pow(d.MeanStress, phi4)
	minDamping := (phi5 + phi6*d.PI*math.Pow(d.OCR, phi7)) * math.Pow(d.MeanStress, phi8) * (1 + phi9*math.Log(d.Freq))

	c1 := -1.1143*a*a + 1.8618*a + 0.2523
	c2 := 0.0805*a*a - 0.0710*a - 0.0095
	c3 := -0.0005*a*a + 0.0002*a + 0.0003
	b := 0.6329 - 0.00566*math.Log(d.Cycles)

	modulusVals := make([]float64, nPoints)
	dampingVals := make([]float64, nPoints)
	for i, gamma := range strain {
		normModulus := 1.0 / (1.0 + math.Pow(gamma/refStrain, a))
		modulusVals[i] = normModulus

		masingA1 := (100.0 / math.Pi) * (4.0*(gamma-refStrain*math.Log((gamma+refStrain)/refStrain))/(gamma*gamma/(gamma+refStrain)) - 2.0)
		masing := c1*masingA1 + c2*masingA1*masingA1 + c3*masingA1*masingA1*masingA1
		dampingVals[i] = masing*b*math.Pow(normModulus, 0.1) + minDamping
	}

	modulus = New("darendeli-modulus", ModulusReduction, strain, modulusVals)
	damping = New("darendeli-damping", Damping, strain, dampingVals)
	return
}
