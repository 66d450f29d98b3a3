// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package output implements the concrete output extractors (§3A, §4.6):
// profile-vs-depth, spectrum-vs-period/frequency, and transfer-function
// extractors, resampled onto a canonical reference and accumulated into
// log-normal statistics across realisations.
package output

// resampleDropOutside linearly interpolates (x, y) onto the points of xi
// that fall strictly before x's last value, dropping samples beyond the
// range (LinearOutputInterpolater::calculate; original_source's
// "stop when xi exceeds the last value of x").
func resampleDropOutside(x, y, xi []float64) []float64 {
	out := make([]float64, 0, len(xi))
	for _, xq := range xi {
		if xq >= x[len(x)-1] {
			break
		}
		out = append(out, interpAt(x, y, xq))
	}
	return out
}

// interpAt linearly interpolates y at xq given strictly increasing x;
// values below x[0] clamp to y[0].
func interpAt(x, y []float64, xq float64) float64 {
	if xq <= x[0] {
		return y[0]
	}
	lo, hi := 0, len(x)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x[mid] <= xq {
			lo = mid
		} else {
			hi = mid
		}
	}
	frac := (xq - x[lo]) / (x[hi] - x[lo])
	return y[lo] + frac*(y[hi]-y[lo])
}

// extrapolateLastSlope appends one more value to data by extrapolating the
// slope between its last two points across half of layerThickness
// (AbstractProfileOutput::extrap()), used for strain-based profiles whose
// reference vector has one more point (the bedrock outcrop depth) than the
// extracted per-sub-layer data.
func extrapolateLastSlope(ref, data []float64, layerThickness float64) []float64 {
	n := len(data) - 1
	slope := (data[n] - data[n-1]) / (ref[n] - ref[n-1])
	return append(append([]float64(nil), data...), data[n]+slope*layerThickness/2)
}
