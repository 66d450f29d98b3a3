// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rvt implements the Random Vibration Theory motion kernel (§4.4):
// spectral moments, the Cartwright-Longuet-Higgins peak factor, oscillator
// RMS duration corrections, the SDOF transfer function, response-spectrum
// computation, Vanmarcke's FAS inversion, and the Brune point-source model.
// It implements motion.Motion so the calculator never distinguishes an RVT
// motion from a recorded time series.
package rvt

import (
	"math"

	"gonum.org/v1/gonum/integrate"
)

// spectralMoment computes m_n = 2 * integral[ (2*pi*f)^n * fasSqr(f) df ]
// over freq by the trapezoidal rule (RvtMotion::moment()).
func spectralMoment(power int, freq, fasSqr []float64) float64 {
	integrand := make([]float64, len(freq))
	for i, f := range freq {
		integrand[i] = math.Pow(2*math.Pi*f, float64(power)) * fasSqr[i]
	}
	return 2 * integrate.Trapezoidal(freq, integrand)
}

// fasSquared returns the element-wise square of fas.
func fasSquared(fas []float64) []float64 {
	sq := make([]float64, len(fas))
	for i, v := range fas {
		sq[i] = v * v
	}
	return sq
}
