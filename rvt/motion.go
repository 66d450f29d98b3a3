// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvt

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/gosl/chk"

	"github.com/arkottke/strata-sub001/motion"
)

// Motion is a Random Vibration Theory ground motion defined by a Fourier
// amplitude spectrum on a frequency grid plus a ground-motion duration
// (RvtMotion in the source). It implements motion.Motion so the calculator
// treats it identically to a recorded time series.
type Motion struct {
	typ         motion.Type
	freq        []float64
	fas         []float64
	durationGm  float64
	correction  OscillatorCorrection
}

// NewMotion builds an RVT motion directly from a Fourier amplitude
// spectrum (the "Defined Fourier Spectrum" source in the original; the
// "Calculated Fourier Spectrum" source is NewPointSourceMotion, and
// "Defined Response Spectrum" is NewMotionFromResponseSpectrum).
func NewMotion(typ motion.Type, freq, fas []float64, durationGm float64, correction OscillatorCorrection) *Motion {
	if len(freq) != len(fas) {
		chk.Panic("rvt: frequency and FAS vectors must be the same length (got %d and %d)", len(freq), len(fas))
	}
	if len(freq) == 0 {
		chk.Panic("rvt: motion must have at least one frequency point")
	}
	if durationGm <= 0 {
		chk.Panic("rvt: ground-motion duration must be positive, got %v", durationGm)
	}
	return &Motion{typ: typ, freq: freq, fas: fas, durationGm: durationGm, correction: correction}
}

// NewMotionFromResponseSpectrum builds an RVT motion by inverting a target
// response spectrum via Vanmarcke's method (§4.4 "Vanmarcke inversion",
// RvtMotion::invert()).
func NewMotionFromResponseSpectrum(typ motion.Type, target *motion.ResponseSpectrum, durationGm float64, correction OscillatorCorrection, maxEngFreq float64, limitFas bool) (*Motion, error) {
	freq, fas, err := invertResponseSpectrum(target, durationGm, correction, maxEngFreq, limitFas)
	if _, ok := err.(*InversionDidNotConverge); err != nil && !ok {
		// A malformed target (e.g. no periods) leaves no usable estimate at
		// all; only InversionDidNotConverge carries a best-estimate freq/fas
		// worth keeping (§7 "keep the best estimate, log Medium").
		return nil, err
	}
	return NewMotion(typ, freq, fas, durationGm, correction), err
}

func (m *Motion) Type() motion.Type { return m.typ }
func (m *Motion) Freq() []float64   { return m.freq }

func (m *Motion) AngFreqAt(i int) float64 {
	return 2 * math.Pi * m.freq[i]
}

func (m *Motion) AbsFourierAcc(tf []complex128) []float64 {
	return motion.ApplyTF(m.fas, tf)
}

// filteredFas applies tf (nil is identity), mirroring RvtMotion::absFas().
func (m *Motion) filteredFas(tf []complex128) []float64 {
	if tf == nil {
		return m.fas
	}
	out := make([]float64, len(m.fas))
	for i := range m.fas {
		out[i] = cmplx.Abs(tf[i]) * m.fas[i]
	}
	return out
}

// Max returns the expected peak (RvtMotion::max()).
func (m *Motion) Max(tf []complex128) float64 {
	return calcMax(m.freq, m.filteredFas(tf), m.durationGm, -1)
}

// MaxVel divides the FAS by angular frequency (velocity = accel / (i*omega)
// in the frequency domain) before taking the RVT peak. The result is in
// gravity units times seconds; no gravity conversion to a length unit is
// applied.
func (m *Motion) MaxVel(tf []complex128) float64 {
	fas := m.filteredFas(tf)
	velFas := make([]float64, len(fas))
	for i, f := range m.freq {
		omega := m.AngFreqAt(i)
		if f < 1e-8 {
			velFas[i] = 0
			continue
		}
		velFas[i] = fas[i] / omega
	}
	return calcMax(m.freq, velFas, m.durationGm, -1)
}

// MaxDisp divides the FAS by angular frequency squared before taking the
// RVT peak. The result is in gravity units times seconds squared; no
// gravity conversion to a length unit is applied.
func (m *Motion) MaxDisp(tf []complex128) float64 {
	fas := m.filteredFas(tf)
	dispFas := make([]float64, len(fas))
	for i, f := range m.freq {
		omega := m.AngFreqAt(i)
		if f < 1e-8 {
			dispFas[i] = 0
			continue
		}
		dispFas[i] = fas[i] / (omega * omega)
	}
	return calcMax(m.freq, dispFas, m.durationGm, -1)
}

// CalcMaxStrain applies the strain transfer function and returns the RVT
// peak, exactly like Max (the transfer function is what distinguishes a
// strain calculation from an acceleration one; §4.3 step 4).
func (m *Motion) CalcMaxStrain(tf []complex128) float64 {
	return m.Max(tf)
}

// ComputeSa computes the response spectrum at the given periods
// (RvtMotion::computeSa()).
func (m *Motion) ComputeSa(periods []float64, dampingPct float64, tf []complex128) []float64 {
	fas := m.filteredFas(tf)
	sa := make([]float64, len(periods))
	for i, period := range periods {
		sa[i] = calcOscillatorMax(m.correction, m.freq, fas, m.durationGm, period, dampingPct)
	}
	return sa
}

var _ motion.Motion = (*Motion)(nil)
