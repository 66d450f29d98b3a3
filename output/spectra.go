// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package output

import (
	"math/cmplx"

	"github.com/arkottke/strata-sub001/calc"
	"github.com/arkottke/strata-sub001/motion"
	"github.com/arkottke/strata-sub001/profile"
)

// ResponseSpectrumOutput extracts the surface (outcrop) pseudo-acceleration
// response spectrum at a fixed damping ratio over the catalog's period
// grid (ResponseSpectrumOutput.cpp).
type ResponseSpectrumOutput struct {
	baseOutput
	Periods    []float64
	DampingPct float64
}

// NewResponseSpectrumOutput builds the output over periods (s), at the
// given damping ratio in percent (OutputCatalog's default damping is 5%).
func NewResponseSpectrumOutput(periods []float64, dampingPct float64) *ResponseSpectrumOutput {
	o := &ResponseSpectrumOutput{Periods: periods, DampingPct: dampingPct}
	o.name = "Response Spectrum"
	o.ref = periods
	return o
}

func (o *ResponseSpectrumOutput) AddData(motionIdx int, c *calc.Calculator) {
	tf := c.CalcAccelTf(c.InputLocation(), c.Motion().Type(), c.SurfaceLocation(), motion.Outcrop)
	sa := c.Motion().ComputeSa(o.Periods, o.DampingPct, tf)
	o.addAt(motionIdx, sa)
}

func (o *ResponseSpectrumOutput) Finalize(enabled func(site, motion int) bool, siteCount, motionCount int) {
	o.median, o.lnStdev = finalizeLogNormal(o.data, enabled, siteCount, motionCount)
}

// FourierSpectrumOutput extracts the surface (outcrop) Fourier amplitude
// spectrum of acceleration over the catalog's frequency grid
// (FourierSpectrumOutput.cpp).
type FourierSpectrumOutput struct {
	baseOutput
}

// NewFourierSpectrumOutput builds the output over the given frequency grid
// (Hz).
func NewFourierSpectrumOutput(freq []float64) *FourierSpectrumOutput {
	o := &FourierSpectrumOutput{}
	o.name = "Fourier Amplitude Spectrum"
	o.ref = freq
	return o
}

func (o *FourierSpectrumOutput) AddData(motionIdx int, c *calc.Calculator) {
	tf := c.CalcAccelTf(c.InputLocation(), c.Motion().Type(), c.SurfaceLocation(), motion.Outcrop)
	fas := c.Motion().AbsFourierAcc(tf)
	o.addAt(motionIdx, resampleDropOutside(c.Motion().Freq(), fas, o.ref))
}

func (o *FourierSpectrumOutput) Finalize(enabled func(site, motion int) bool, siteCount, motionCount int) {
	o.median, o.lnStdev = finalizeLogNormal(o.data, enabled, siteCount, motionCount)
}

// AccelTransferFunctionOutput extracts the magnitude of the acceleration
// transfer function between two named locations over the catalog's
// frequency grid (AccelTransferFunctionOutput.cpp); the default is
// surface-outcrop over input-outcrop (the standard site-amplification
// transfer function), but both ends are configurable so this output can
// also report e.g. within-motion transfer functions at depth.
type AccelTransferFunctionOutput struct {
	baseOutput
	InLoc, OutLoc   profile.Location
	InType, OutType motion.Type
	useDefaultLocs  bool
}

// NewAccelTransferFunctionOutput builds the default surface/input-outcrop
// transfer function output over the given frequency grid: the in/out
// locations track whatever the calculator's input location and surface are
// for each realisation rather than a fixed pair, since the input location
// depends on the discretised column.
func NewAccelTransferFunctionOutput(freq []float64) *AccelTransferFunctionOutput {
	o := &AccelTransferFunctionOutput{
		OutType:        motion.Outcrop,
		useDefaultLocs: true,
	}
	o.name = "Acceleration Transfer Function"
	o.ref = freq
	return o
}

func (o *AccelTransferFunctionOutput) AddData(motionIdx int, c *calc.Calculator) {
	inLoc, inType, outLoc := o.InLoc, o.InType, o.OutLoc
	if o.useDefaultLocs {
		inLoc, inType = c.InputLocation(), c.Motion().Type()
		outLoc = c.SurfaceLocation()
	}
	tf := c.CalcAccelTf(inLoc, inType, outLoc, o.OutType)
	mag := make([]float64, len(tf))
	for i, v := range tf {
		mag[i] = cmplx.Abs(v)
	}
	o.addAt(motionIdx, resampleDropOutside(c.Motion().Freq(), mag, o.ref))
}

func (o *AccelTransferFunctionOutput) Finalize(enabled func(site, motion int) bool, siteCount, motionCount int) {
	o.median, o.lnStdev = finalizeLogNormal(o.data, enabled, siteCount, motionCount)
}
