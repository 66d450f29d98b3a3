// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvt

import "math"

// peakFactorIntegrand is the Cartwright-Longuet-Higgins integrand
// 1 - (1 - b*exp(-z^2))^numExtrema (RvtMotion::peakFactorEqn()).
func peakFactorIntegrand(z, bandWidth, numExtrema float64) float64 {
	return 1 - math.Pow(1-bandWidth*math.Exp(-z*z), numExtrema)
}

// integrateSemiInfinite integrates f over [0, +inf) to the given tolerance
// using adaptive Simpson's rule after the substitution z = t/(1-t), t in
// [0,1), which maps the semi-infinite domain to a finite one while keeping
// the integrand's decay well resolved near t=1 (neither gosl/num, which
// only exposes derivative/root-finding routines, nor gonum/integrate,
// which is fixed-order, provide adaptive semi-infinite quadrature with
// error control — see DESIGN.md).
func integrateSemiInfinite(f func(z float64) float64, tol float64, maxDepth int) float64 {
	g := func(t float64) float64 {
		if t >= 1 {
			return 0
		}
		z := t / (1 - t)
		jacobian := 1 / ((1 - t) * (1 - t))
		return f(z) * jacobian
	}
	return adaptiveSimpson(g, 0, 1-1e-12, tol, maxDepth)
}

func simpson(f func(float64) float64, a, b float64) float64 {
	mid := (a + b) / 2
	return (b - a) / 6 * (f(a) + 4*f(mid) + f(b))
}

// adaptiveSimpson recursively refines the Simpson estimate over [a,b] until
// the difference between the whole-interval and two-half-interval
// estimates is within tol, or maxDepth recursions are reached (the
// 1000-subdivision cap named in §4.4 is enforced by the caller bounding
// maxDepth so 2^(maxDepth+1), the most subintervals the recursion can
// reach, does not exceed it).
func adaptiveSimpson(f func(float64) float64, a, b, tol float64, maxDepth int) float64 {
	whole := simpson(f, a, b)
	return adaptiveSimpsonRecurse(f, a, b, tol, whole, maxDepth)
}

func adaptiveSimpsonRecurse(f func(float64) float64, a, b, tol, whole float64, depth int) float64 {
	mid := (a + b) / 2
	left := simpson(f, a, mid)
	right := simpson(f, mid, b)
	if depth <= 0 || math.Abs(left+right-whole) <= 15*tol {
		return left + right + (left+right-whole)/15
	}
	return adaptiveSimpsonRecurse(f, a, mid, tol/2, left, depth-1) +
		adaptiveSimpsonRecurse(f, mid, b, tol/2, right, depth-1)
}

// peakFactorMaxDepth bounds recursion so the total number of Simpson
// subintervals stays under the 1000-subdivision cap named in §4.4
// (2^(8+1) == 512).
const peakFactorMaxDepth = 8

// calcPeakFactor computes the Cartwright-Longuet-Higgins peak factor for
// spectral moments m0, m2, m4 and ground-motion duration durationGm
// (RvtMotion::calcMax()). If bandWidth or numExtrema come out non-finite
// (degenerate spectral moments), it returns 1.0 per §4.4.
func calcPeakFactor(m0, m2, m4, durationGm float64) float64 {
	bandWidth := math.Sqrt((m2 * m2) / (m0 * m4))
	numExtrema := math.Sqrt(m4/m2) * durationGm / math.Pi
	if numExtrema < 2 {
		numExtrema = 2
	}

	if math.IsNaN(bandWidth) || math.IsInf(bandWidth, 0) || math.IsNaN(numExtrema) || math.IsInf(numExtrema, 0) {
		return 1.0
	}

	result := integrateSemiInfinite(func(z float64) float64 {
		return peakFactorIntegrand(z, bandWidth, numExtrema)
	}, 1e-7, peakFactorMaxDepth)

	return math.Sqrt2 * result
}
