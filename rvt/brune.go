// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvt

import (
	"math"

	"github.com/arkottke/strata-sub001/motion"
)

// PathAtten is Q(f) = a*f^b, the path attenuation model (§4.4).
type PathAtten struct {
	A, B float64
}

func (p PathAtten) At(f float64) float64 {
	return p.A * math.Pow(f, p.B)
}

// CrustalAmp supplies A(f), the crustal amplification factor; a
// table-driven implementation can be substituted by any func value.
type CrustalAmp func(f float64) float64

// PointSourceParams are the inputs to the Brune (1970) point-source model
// (§4.4 "Point-source (Brune) model", SourceTheoryRvtMotion in the
// original).
type PointSourceParams struct {
	Magnitude    float64 // moment magnitude M
	Distance     float64 // epicentral distance R
	Depth        float64 // depth h
	StressDrop   float64 // stress drop, bars
	ShearVel     float64 // crustal shear-wave velocity beta, km/s
	Density      float64 // crustal density rho, gm/cm^3
	Kappa        float64 // site attenuation kappa
	Path         PathAtten
	GeoAtten     float64    // geometric attenuation G
	CrustalAmp   CrustalAmp // A(f); nil means unity
	DurationCoef float64    // region-dependent duration coefficient c
}

// hypocentralDistance returns R_hyp = sqrt(R^2 + h^2).
func (p PointSourceParams) hypocentralDistance() float64 {
	return math.Sqrt(p.Distance*p.Distance + p.Depth*p.Depth)
}

// seismicMoment returns M0 = 10^(1.5*(M+10.7)) (dyne-cm).
func (p PointSourceParams) seismicMoment() float64 {
	return math.Pow(10, 1.5*(p.Magnitude+10.7))
}

// cornerFreq returns fc = 4.9e6 * beta * (stressDrop/M0)^(1/3).
func (p PointSourceParams) cornerFreq() float64 {
	m0 := p.seismicMoment()
	return 4.9e6 * p.ShearVel * math.Cbrt(p.StressDrop/m0)
}

// sourceSpectrumConst returns C = 0.55*2 / (sqrt(2)*4*pi*rho*beta^3).
func (p PointSourceParams) sourceSpectrumConst() float64 {
	return (0.55 * 2) / (math.Sqrt2 * 4 * math.Pi * p.Density * p.ShearVel * p.ShearVel * p.ShearVel)
}

// Duration returns 1/fc + c*R_hyp (§4.4 "Duration").
func (p PointSourceParams) Duration() float64 {
	return 1/p.cornerFreq() + p.DurationCoef*p.hypocentralDistance()
}

// FourierSpectrum evaluates the Brune point-source FAS at each frequency in
// freq (§4.4 formula): conv * (2*pi*f)^2 * S(f) * P(f) * Z(f).
func (p PointSourceParams) FourierSpectrum(freq []float64) []float64 {
	const conv = 1e-18 / 981

	m0 := p.seismicMoment()
	fc := p.cornerFreq()
	c := p.sourceSpectrumConst()
	rHyp := p.hypocentralDistance()

	amp := p.CrustalAmp
	if amp == nil {
		amp = func(float64) float64 { return 1 }
	}

	out := make([]float64, len(freq))
	for i, f := range freq {
		s := c * m0 / (1 + (f/fc)*(f/fc))
		path := p.GeoAtten * math.Exp(-math.Pi*f*rHyp/(p.Path.At(f)*p.ShearVel))
		site := amp(f) * math.Exp(-math.Pi*p.Kappa*f)
		out[i] = conv * (2 * math.Pi * f) * (2 * math.Pi * f) * s * path * site
	}
	return out
}

// NewPointSourceMotion builds an RVT motion whose FAS is computed from the
// Brune point-source model, on a log-spaced grid up to maxEngFreq
// (RvtMotion::calcPointSource()).
func NewPointSourceMotion(typ motion.Type, params PointSourceParams, minEngFreq, maxEngFreq float64, correction OscillatorCorrection) *Motion {
	freq := logSpaceFreq(minEngFreq, maxEngFreq, vanmarckeFasGridPoints)
	fas := params.FourierSpectrum(freq)
	return NewMotion(typ, freq, fas, params.Duration(), correction)
}
