// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package motion

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/arkottke/strata-sub001/units"
)

// TimeSeries is the minimal on-disk-record collaborator named in §1/§6: it
// supplies acceleration samples, a sampling interval, and an FFT. Ingestion
// (reading a record file, baseline correction, filtering) is out of scope;
// this type only implements the Motion capability set so the calculator can
// treat a recorded accelerogram the same way it treats an RVT motion.
//
// Per the resolved Open Question in SPEC_FULL.md §9, the original's 5-point
// moving-average FAS smoothing (applied only to time-series motions) is
// intentionally omitted here.
type TimeSeries struct {
	sys   units.System
	typ   Type
	dt    float64
	accel []float64 // g, time domain
	freq  []float64
	fas   []complex128 // one-sided FFT of accel
	fft   *fourier.FFT
}

// NewTimeSeries builds a TimeSeries from acceleration samples (g) sampled
// at interval dt (seconds).
func NewTimeSeries(sys units.System, typ Type, accel []float64, dt float64) *TimeSeries {
	if len(accel) == 0 {
		chk.Panic("motion: time series must have at least one sample")
	}
	if dt <= 0 {
		chk.Panic("motion: time series sampling interval must be positive")
	}
	fft := fourier.NewFFT(len(accel))
	fas := fft.Coefficients(nil, accel)
	freq := make([]float64, len(fas))
	for i := range fas {
		freq[i] = fft.Freq(i) / dt
	}
	return &TimeSeries{sys: sys, typ: typ, dt: dt, accel: accel, freq: freq, fas: fas, fft: fft}
}

func (m *TimeSeries) Type() Type       { return m.typ }
func (m *TimeSeries) Freq() []float64  { return m.freq }
func (m *TimeSeries) AngFreqAt(i int) float64 {
	return 2 * math.Pi * m.freq[i]
}

func (m *TimeSeries) AbsFourierAcc(tf []complex128) []float64 {
	abs := make([]float64, len(m.fas))
	for i, c := range m.fas {
		abs[i] = cmplx.Abs(c)
	}
	return ApplyTF(abs, tf)
}

// filtered returns the time-domain signal obtained by multiplying the FAS by
// tf (nil tf is the identity) and inverse-transforming.
func (m *TimeSeries) filtered(tf []complex128) []float64 {
	coeffs := m.fas
	if tf != nil {
		coeffs = make([]complex128, len(m.fas))
		for i := range m.fas {
			coeffs[i] = m.fas[i] * tf[i]
		}
	}
	return m.fft.Sequence(nil, coeffs)
}

func maxAbs(xs []float64) float64 {
	peak := 0.0
	for _, x := range xs {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}
	return peak
}

// Max returns the time-domain peak absolute value, in g, after applying tf.
func (m *TimeSeries) Max(tf []complex128) float64 {
	return maxAbs(m.filtered(tf)) / float64(len(m.accel))
}

// integrate divides the FAS by (i*omega), the frequency-domain equivalent of
// time integration, zeroing the DC term to avoid divide-by-zero drift.
func (m *TimeSeries) integrate(tf []complex128, order int) []float64 {
	coeffs := make([]complex128, len(m.fas))
	for i, f := range m.freq {
		c := m.fas[i]
		if tf != nil {
			c *= tf[i]
		}
		if f < 1e-8 {
			coeffs[i] = 0
			continue
		}
		omega := 2 * math.Pi * f
		divisor := complex(0, omega)
		for k := 1; k < order; k++ {
			divisor *= complex(0, omega)
		}
		coeffs[i] = c / divisor
	}
	return m.fft.Sequence(nil, coeffs)
}

// MaxVel returns the peak velocity (length-unit/s), converting the
// gravity-scaled acceleration record using the configured unit system — the
// second of the two genuine gravity-scaling call sites named in SPEC_FULL.md
// §9's resolved Open Question.
func (m *TimeSeries) MaxVel(tf []complex128) float64 {
	g := m.sys.Gravity()
	return maxAbs(m.integrate(tf, 1)) * g / float64(len(m.accel))
}

// MaxDisp returns the peak displacement (length unit).
func (m *TimeSeries) MaxDisp(tf []complex128) float64 {
	g := m.sys.Gravity()
	return maxAbs(m.integrate(tf, 2)) * g / float64(len(m.accel))
}

// CalcMaxStrain applies the same time-domain peak-finding as Max, since a
// strain transfer function is just another linear filter on this motion
// (§4.3 step 4 multiplies the result by 100*g to get percent strain).
func (m *TimeSeries) CalcMaxStrain(tf []complex128) float64 {
	return m.Max(tf)
}

// ComputeSa computes the response spectrum by applying each period's SDOF
// transfer function in the frequency domain and taking the time-domain
// peak, the deterministic (non-RVT) analogue of rvt.Motion.ComputeSa.
func (m *TimeSeries) ComputeSa(periods []float64, dampingPct float64, tf []complex128) []float64 {
	sa := make([]float64, len(periods))
	for i, period := range periods {
		sdof := sdofTransferFunction(m.freq, period, dampingPct)
		combined := sdof
		if tf != nil {
			combined = make([]complex128, len(sdof))
			for j := range sdof {
				combined[j] = sdof[j] * tf[j]
			}
		}
		sa[i] = m.Max(combined)
	}
	return sa
}

// sdofTransferFunction is shared with the RVT kernel's SDOF oscillator
// transfer function (§4.4); duplicated here in a small unexported helper so
// motion has no import-cycle dependency on rvt.
func sdofTransferFunction(freq []float64, period, dampingPct float64) []complex128 {
	fn := 1.0 / period
	d := dampingPct / 100.0
	tf := make([]complex128, len(freq))
	for i, f := range freq {
		tf[i] = complex(-fn*fn, 0) / complex(f*f-fn*fn, -2*d*fn*f)
	}
	return tf
}
