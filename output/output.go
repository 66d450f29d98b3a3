// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package output

import "github.com/arkottke/strata-sub001/calc"

// Output is a single extracted quantity accumulated across every
// (site, motion) realisation of an analysis (§3A), mirroring the virtual
// interface of AbstractOutput.h: it knows how to pull its own data out of a
// just-completed Calculator run, resample it onto a canonical reference,
// and reduce the accumulated realisations to log-normal statistics.
type Output interface {
	// Name identifies the output for reporting (AbstractOutput::name()).
	Name() string

	// Ref returns the canonical reference axis (depth, period, or
	// frequency, depending on the output) this output's data is resampled
	// onto (AbstractOutput::ref()).
	Ref() []float64

	// AddData extracts this output's quantity from calc for the given
	// motion index and appends it to the current site's row
	// (AbstractOutput::addData()).
	AddData(motionIdx int, calc *calc.Calculator)

	// RemoveLastSite discards the most recently added site's data, used to
	// unwind a realisation the orchestrator decided to discard
	// (AbstractOutput::removeLastSite()).
	RemoveLastSite()

	// Data returns the resampled data series for the given site and
	// motion (AbstractOutput::data()).
	Data(site, motionIdx int) []float64

	// Finalize computes log-normal statistics across every accumulated
	// (site, motion) pair (OutputStatistics, built from the numeric-format
	// invariants rather than a surviving source file -- see DESIGN.md).
	Finalize(enabled func(site, motion int) bool, siteCount, motionCount int)

	// Median returns the per-reference-point median after Finalize.
	Median() []float64

	// LnStdev returns the per-reference-point standard deviation of the
	// natural log after Finalize.
	LnStdev() []float64
}

// baseOutput is the storage and statistics machinery shared by every
// concrete Output (AbstractOutput's data members): a per-site slice of
// per-motion series, plus the finalized log-normal summary.
type baseOutput struct {
	name string
	ref  []float64
	data [][][]float64 // data[site][motion] = series, already resampled onto ref

	median  []float64
	lnStdev []float64
}

func (b *baseOutput) Name() string   { return b.name }
func (b *baseOutput) Ref() []float64 { return b.ref }

// depthReferenced is implemented only by profile (depth-vs-quantity)
// outputs: the Catalog sets their reference to its realisation-specific
// depth vector before each AddData call, since depth varies between
// realisations when layering is randomised. Spectrum/transfer-function
// outputs don't implement it -- their period/frequency grid is fixed at
// construction and never overwritten.
type depthReferenced interface {
	setDepthRef(ref []float64)
}

func (p *profileOutput) setDepthRef(ref []float64) { p.ref = ref }

// addAt records series as the data for motionIdx of the current site,
// opening a new site row whenever motionIdx is 0 -- the convention the
// Catalog relies on (every realisation calls AddData once per motion, in
// order, starting from motion 0), mirroring AbstractOutput::addData()
// appending a fresh row to m_data on the first motion of a site.
func (b *baseOutput) addAt(motionIdx int, series []float64) {
	if motionIdx == 0 {
		b.data = append(b.data, nil)
	}
	last := len(b.data) - 1
	row := b.data[last]
	for len(row) <= motionIdx {
		row = append(row, nil)
	}
	row[motionIdx] = series
	b.data[last] = row
}

func (b *baseOutput) RemoveLastSite() {
	if len(b.data) == 0 {
		return
	}
	b.data = b.data[:len(b.data)-1]
}

func (b *baseOutput) Data(site, motionIdx int) []float64 {
	if site < 0 || site >= len(b.data) {
		return nil
	}
	row := b.data[site]
	if motionIdx < 0 || motionIdx >= len(row) {
		return nil
	}
	return row[motionIdx]
}

func (b *baseOutput) Median() []float64  { return b.median }
func (b *baseOutput) LnStdev() []float64 { return b.lnStdev }
