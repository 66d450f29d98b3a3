// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvt

import (
	"math"
	"math/cmplx"
)

// sdofTransferFunction returns H(f; period, dampingPct) = -fn^2 / ((f^2-fn^2) - 2i*(d/100)*fn*f)
// evaluated at every frequency in freq, with fn = 1/period (§4.4 "SDOF
// transfer function").
func sdofTransferFunction(freq []float64, period, dampingPct float64) []complex128 {
	fn := 1.0 / period
	d := dampingPct / 100.0
	tf := make([]complex128, len(freq))
	for i, f := range freq {
		tf[i] = complex(-fn*fn, 0) / complex(f*f-fn*fn, -2*d*fn*f)
	}
	return tf
}

// calcMax computes E[max] = sqrt(m0/durationRms) * peakFactor for a
// (possibly transfer-function-filtered) FAS on freq (RvtMotion::calcMax()).
// durationRms < 0 means "use durationGm" (no oscillator correction),
// matching the source's sentinel convention.
func calcMax(freq, fas []float64, durationGm, durationRms float64) float64 {
	if durationRms < 0 {
		durationRms = durationGm
	}
	fasSqr := fasSquared(fas)
	m0 := spectralMoment(0, freq, fasSqr)
	m2 := spectralMoment(2, freq, fasSqr)
	m4 := spectralMoment(4, freq, fasSqr)

	peakFactor := calcPeakFactor(m0, m2, m4, durationGm)
	return sqrtNonNeg(m0/durationRms) * peakFactor
}

func sqrtNonNeg(x float64) float64 {
	if x < 0 {
		return 0
	}
	return math.Sqrt(x)
}

// calcOscillatorMax filters fas through the SDOF transfer function for the
// given period/damping, then computes the peak with the oscillator's own
// RMS duration correction (RvtMotion::calcOscillatorMax()).
func calcOscillatorMax(correction OscillatorCorrection, freq, fas []float64, durationGm, period, dampingPct float64) float64 {
	tf := sdofTransferFunction(freq, period, dampingPct)
	filtered := make([]float64, len(fas))
	for i := range fas {
		filtered[i] = fas[i] * cmplx.Abs(tf[i])
	}
	durationRms := calcRmsDuration(correction, period, dampingPct, durationGm, freq, filtered)
	return calcMax(freq, filtered, durationGm, durationRms)
}
