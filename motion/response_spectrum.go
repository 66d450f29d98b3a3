// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package motion

import "github.com/cpmech/gosl/chk"

// ResponseSpectrum holds parallel vectors of period, a single damping
// scalar, and spectral acceleration (§3).
type ResponseSpectrum struct {
	DampingPct float64
	Period     []float64
	Sa         []float64
}

// NewResponseSpectrum validates that period and Sa are the same length and
// that period is strictly increasing, mirroring the check performed before
// RvtMotion::invert() in the original implementation.
func NewResponseSpectrum(dampingPct float64, period, sa []float64) *ResponseSpectrum {
	if len(period) != len(sa) {
		chk.Panic("motion: response spectrum period and Sa vectors must be the same length (got %d and %d)", len(period), len(sa))
	}
	if len(period) == 0 {
		chk.Panic("motion: response spectrum must have at least one period")
	}
	for i := 1; i < len(period); i++ {
		if period[i] <= period[i-1] {
			chk.Panic("motion: response spectrum period vector must be strictly increasing")
		}
	}
	return &ResponseSpectrum{DampingPct: dampingPct, Period: period, Sa: sa}
}
