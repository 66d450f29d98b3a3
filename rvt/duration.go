// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvt

import "math"

// OscillatorCorrection selects the RMS-duration correction model applied
// when computing an oscillator's response (§4.4).
type OscillatorCorrection int

const (
	// BooreJoyner is the p=3, bar=1/3 correction.
	BooreJoyner OscillatorCorrection = iota
	// LiuPezeshk is the p=2, bar=sqrt(2*pi*(1-m1^2/(m0*m2))) correction,
	// computed on the oscillator-shaped FAS.
	LiuPezeshk
)

// calcRmsDuration computes T_rms for an oscillator of period and damping
// (percent), given the ground-motion duration durationGm and, for
// LiuPezeshk, the oscillator-filtered FAS (RvtMotion::calcRmsDuration()).
// An empty fas falls back to BooreJoyner, matching the source's behavior
// when no FAS has been computed yet.
func calcRmsDuration(correction OscillatorCorrection, period, dampingPct, durationGm float64, freq, oscFas []float64) float64 {
	if len(oscFas) == 0 {
		correction = BooreJoyner
	}

	durOsc := period / (2 * math.Pi * dampingPct / 100)

	var power float64
	var bar float64
	switch correction {
	case BooreJoyner:
		power = 3
		bar = 1.0 / 3.0
	case LiuPezeshk:
		fasSqr := fasSquared(oscFas)
		m0 := spectralMoment(0, freq, fasSqr)
		m1 := spectralMoment(1, freq, fasSqr)
		m2 := spectralMoment(2, freq, fasSqr)
		power = 2
		bar = math.Sqrt(2 * math.Pi * (1 - (m1*m1)/(m0*m2)))
	}

	ratio := math.Pow(durationGm/period, power)
	return durationGm + durOsc*(ratio/(ratio+bar))
}
