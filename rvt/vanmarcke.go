// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvt

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/utl"

	"github.com/arkottke/strata-sub001/motion"
)

const (
	vanmarckePeakFactor       = 2.5
	vanmarckeExtrapSlope      = 1.92
	vanmarckeMinRmse          = 0.005
	vanmarckeMinRmseChange    = 0.0002
	vanmarckeMaxPasses        = 30
	vanmarckeFasGridPoints    = 1024
)

// logSpaceFreq builds an n-point log-spaced frequency grid from fMin to
// fMax, the same log10/LinSpace/pow construction used for the Darendeli
// strain grid (nlprop.StrainGrid), grounded identically
// because gosl has no evidenced log-space helper beyond utl.LinSpace.
func logSpaceFreq(fMin, fMax float64, n int) []float64 {
	lg := utl.LinSpace(math.Log10(fMin), math.Log10(fMax), n)
	out := make([]float64, n)
	for i, l := range lg {
		out[i] = math.Pow(10, l)
	}
	return out
}

// logLogInterp performs linear interpolation (and linear extrapolation
// beyond the endpoints) in log-log space, a direct port of the source's
// free function logLogInterp() in RvtMotion.cpp.
func logLogInterp(x, y, xi []float64) []float64 {
	yi := make([]float64, len(xi))
	logX := make([]float64, len(x))
	logY := make([]float64, len(y))
	for i := range x {
		logX[i] = math.Log10(x[i])
		logY[i] = math.Log10(y[i])
	}

	for i, xv := range xi {
		logXi := math.Log10(xv)
		switch {
		case logXi < logX[0]:
			slope := (logY[1] - logY[0]) / (logX[1] - logX[0])
			yi[i] = math.Pow(10, slope*(logXi-logX[0])+logY[0])
		case logXi > logX[len(logX)-1]:
			n := len(logY) - 2
			slope := (logY[len(logY)-1] - logY[n]) / (logX[len(logX)-1] - logX[n])
			yi[i] = math.Pow(10, slope*(logXi-logX[len(logX)-1])+logY[len(logY)-1])
		default:
			yi[i] = math.Pow(10, interpLogLinear(logX, logY, logXi))
		}
	}
	return yi
}

func interpLogLinear(logX, logY []float64, logXi float64) float64 {
	for j := 0; j < len(logX)-1; j++ {
		if logX[j] <= logXi && logXi <= logX[j+1] {
			if logX[j+1] == logX[j] {
				return logY[j]
			}
			slope := (logY[j+1] - logY[j]) / (logX[j+1] - logX[j])
			return slope*(logXi-logX[j]) + logY[j]
		}
	}
	return logY[len(logY)-1]
}

// vanmarckeInversion produces an initial FAS estimate from a target
// response spectrum (§4.4 "Vanmarcke inversion", RvtMotion::vanmarckeInversion()).
// Returns one value per period in target.Period, in the same order.
func vanmarckeInversion(target *motion.ResponseSpectrum, durationGm float64, correction OscillatorCorrection) []float64 {
	n := len(target.Period)
	fas := make([]float64, n)

	sdofFactor := math.Pi/(4*target.DampingPct/100) - 1
	sum := 0.0
	prevFasSqr := 0.0

	for i := n - 1; i >= 0; i-- {
		freq := 1 / target.Period[i]
		sa := target.Sa[i]
		rmsDuration := calcRmsDuration(correction, target.Period[i], target.DampingPct, durationGm, nil, nil)

		fasSqr := (rmsDuration*sa*sa/(2*vanmarckePeakFactor*vanmarckePeakFactor) - sum) / (freq * sdofFactor)
		if fasSqr < 0 {
			fasSqr = prevFasSqr
		}
		fas[i] = math.Sqrt(fasSqr)

		if i == n-1 {
			sum = fasSqr * freq / 2
		} else {
			sum += (fasSqr - prevFasSqr) / 2 * (freq - 1/target.Period[i+1])
		}
		prevFasSqr = fasSqr
	}

	return fas
}

// invertResponseSpectrum builds the frequency grid and FAS that best
// reproduce target under RVT, iterating the ratio-correction loop of §4.4
// (RvtMotion::invert()). limitFas enables the high-frequency tail
// straight-line extrapolation from the minimum-slope point.
func invertResponseSpectrum(target *motion.ResponseSpectrum, durationGm float64, correction OscillatorCorrection, maxEngFreq float64, limitFas bool) ([]float64, []float64, error) {
	if len(target.Period) == 0 {
		return nil, nil, fmt.Errorf("rvt: target response spectrum must have at least one period")
	}

	estimate := vanmarckeInversion(target, durationGm, correction)

	targetMinFreq := 1 / target.Period[len(target.Period)-1]
	freq := logSpaceFreq(math.Min(targetMinFreq/2, 0.05), maxEngFreq, vanmarckeFasGridPoints)
	fas := make([]float64, len(freq))

	periodFreq := make([]float64, len(target.Period))
	for i, p := range target.Period {
		periodFreq[len(target.Period)-1-i] = 1 / p
	}
	estimateByFreq := make([]float64, len(estimate))
	for i, v := range estimate {
		estimateByFreq[len(estimate)-1-i] = v
	}

	offset := 0
	logFas0 := math.Log(estimate[len(estimate)-1])
	freq0 := 1 / target.Period[len(target.Period)-1]
	for i, f := range freq {
		if f < targetMinFreq {
			fas[i] = math.Exp(vanmarckeExtrapSlope*math.Log(f/freq0) + logFas0)
			offset = i
		} else {
			fas[i] = logLogInterp(periodFreq, estimateByFreq, []float64{f})[0]
		}
	}
	offset++

	respSa := computeSaStatic(freq, fas, target.Period, target.DampingPct, correction, durationGm)

	rmse := 0.0
	oldRmse := 1.0
	maxError := 0.0
	converged := false
	ratio := make([]float64, len(target.Sa))

	for count := 0; count < vanmarckeMaxPasses; count++ {
		for i := range ratio {
			ratio[i] = target.Sa[i] / respSa[i]
		}

		queryPeriods := make([]float64, len(freq)-offset)
		for i := offset; i < len(freq); i++ {
			queryPeriods[i-offset] = 1 / freq[i]
		}
		corrected := logLogInterp(target.Period, ratio, queryPeriods)
		for i := offset; i < len(freq); i++ {
			fas[i] *= corrected[i-offset]
		}

		logFreq0 := math.Log(freq[offset])
		logFasAtOffset := math.Log(fas[offset])
		slope := vanmarckeExtrapSlope
		if !limitFas && offset+1 < len(freq) {
			slope = math.Log(fas[offset]/fas[offset+1]) / math.Log(freq[offset]/freq[offset+1])
		}
		for i := 0; i < offset; i++ {
			fas[i] = math.Exp(slope*(math.Log(freq[i])-logFreq0) + logFasAtOffset)
		}

		if limitFas {
			applyTailLimit(freq, fas, offset)
		}

		respSa = computeSaStatic(freq, fas, target.Period, target.DampingPct, correction, durationGm)

		sumError := 0.0
		maxError = 0
		for i := range respSa {
			e := (respSa[i] - target.Sa[i]) / target.Sa[i]
			if math.Abs(e) > math.Abs(maxError) {
				maxError = e
			}
			sumError += e * e
		}
		rmse = math.Sqrt(sumError / float64(len(respSa)))

		if rmse < vanmarckeMinRmse || math.Abs(oldRmse-rmse) < vanmarckeMinRmseChange {
			converged = true
			break
		}
		oldRmse = rmse
	}

	if !converged {
		return freq, fas, &InversionDidNotConverge{Rmse: rmse, Passes: vanmarckeMaxPasses}
	}
	return freq, fas, nil
}

// InversionDidNotConverge is returned when the Vanmarcke response-spectrum
// inversion exhausts its pass budget without the RMSE falling below
// threshold or stabilizing between passes (§7 "keep the best estimate, log
// Medium"); freq/fas from the final pass are still usable as the best
// available estimate.
type InversionDidNotConverge struct {
	Rmse   float64
	Passes int
}

func (e *InversionDidNotConverge) Error() string {
	return fmt.Sprintf("rvt: response spectrum inversion did not converge after %d passes (rmse=%.4f)", e.Passes, e.Rmse)
}

// applyTailLimit finds the minimum-slope point in the high-frequency tail
// (past offset) and overwrites everything beyond it with a straight line in
// log-log space through that point, the "force down the high frequency
// tail" step of RvtMotion::invert().
func applyTailLimit(freq, fas []float64, offset int) {
	minSlope := 0.0
	minSlopeIdx := offset
	for i := offset; i < len(freq)-1; i++ {
		slope := math.Log(fas[i]/fas[i+1]) / math.Log(freq[i]/freq[i+1])
		if slope < minSlope {
			minSlope = slope
			minSlopeIdx = i
		}
	}
	x0 := math.Log(freq[minSlopeIdx])
	y0 := math.Log(fas[minSlopeIdx])
	for i := minSlopeIdx + 1; i < len(fas); i++ {
		fas[i] = math.Exp(-minSlope*(math.Log(freq[i])-x0) + y0)
	}
}

// computeSaStatic is a free-function wrapper around calcOscillatorMax used
// while building the inversion's own working response spectrum (before a
// Motion value exists to call ComputeSa on).
func computeSaStatic(freq, fas, periods []float64, dampingPct float64, correction OscillatorCorrection, durationGm float64) []float64 {
	sa := make([]float64, len(periods))
	for i, period := range periods {
		sa[i] = calcOscillatorMax(correction, freq, fas, durationGm, period, dampingPct)
	}
	return sa
}
