// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package output

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// finalizeLogNormal reduces the accumulated (site, motion) series to a
// per-reference-point log-normal median and ln-stdev (§4.6 "Statistics"):
// at each reference index, gather ln(value) across every enabled
// (site, motion) pair, take the sample mean/stdev, and report
// median = exp(mean), lnStdev = stdev. Values that are non-positive are
// skipped (a realisation that produced a degenerate zero at that point
// contributes nothing rather than poisoning the log).
//
// No OutputStatistics.cpp survives in the retrieved source -- this is
// built directly from the numeric-format description in SPEC_FULL.md §4.6
// rather than ported from a teacher source file; see DESIGN.md.
func finalizeLogNormal(data [][][]float64, enabled func(site, motion int) bool, siteCount, motionCount int) (median, lnStdev []float64) {
	refLen := 0
	for _, row := range data {
		for _, series := range row {
			if len(series) > refLen {
				refLen = len(series)
			}
		}
	}
	median = make([]float64, refLen)
	lnStdev = make([]float64, refLen)

	samples := make([]float64, 0, siteCount*motionCount)
	for i := 0; i < refLen; i++ {
		samples = samples[:0]
		for site := 0; site < len(data); site++ {
			row := data[site]
			for m := 0; m < len(row); m++ {
				if enabled != nil && !enabled(site, m) {
					continue
				}
				series := row[m]
				if i >= len(series) || series[i] <= 0 {
					continue
				}
				samples = append(samples, math.Log(series[i]))
			}
		}
		if len(samples) == 0 {
			continue
		}
		mean, stdev := stat.MeanStdDev(samples, nil)
		median[i] = math.Exp(mean)
		lnStdev[i] = stdev
	}
	return median, lnStdev
}
