// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package output

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/arkottke/strata-sub001/calc"
	"github.com/arkottke/strata-sub001/units"
)

// Catalog owns every Output of an analysis and the shared reference axes
// (depth/period/frequency) they resample onto, mirroring OutputCatalog's
// role as the single object the orchestrator hands each completed
// Calculator run to (OutputCatalog.cpp).
type Catalog struct {
	outputs []Output

	system units.System

	depth  []float64
	period []float64
	freq   []float64

	dampingPct float64

	siteCount   int
	motionCount int
	enabled     [][]bool // enabled[site][motion]
}

// frequencyDimension/periodDimension mirror OutputCatalog's two fixed
// Dimension objects: a 512-point log-spaced frequency grid from 0.05 to
// 100 Hz, and a 91-point log-spaced period grid from 0.01 to 10 s.
const (
	frequencyMin, frequencyMax = 0.05, 100.0
	frequencySize              = 512
	periodMin, periodMax       = 0.01, 10.0
	periodSize                 = 91
	defaultDampingPct          = 5.0
)

// NewCatalog builds a Catalog with the default frequency/period grids and
// the given set of outputs, over the given unit system (used only by
// PopulateDepthVector's metric/imperial increment conversion).
func NewCatalog(system units.System, outputs []Output) *Catalog {
	return &Catalog{
		outputs:    outputs,
		system:     system,
		period:     logSpace(periodMin, periodMax, periodSize),
		freq:       logSpace(frequencyMin, frequencyMax, frequencySize),
		dampingPct: defaultDampingPct,
	}
}

// Outputs returns the catalog's outputs in construction order.
func (c *Catalog) Outputs() []Output { return c.outputs }

// Period returns the catalog's fixed period grid (s).
func (c *Catalog) Period() []float64 { return c.period }

// Freq returns the catalog's fixed frequency grid (Hz).
func (c *Catalog) Freq() []float64 { return c.freq }

// Depth returns the catalog's depth reference vector, populated the first
// time SaveResults sees a profile deeper than the current vector covers.
func (c *Catalog) Depth() []float64 { return c.depth }

// DampingPct returns the damping ratio response spectra are computed at.
func (c *Catalog) DampingPct() float64 { return c.dampingPct }

// SetDampingPct overrides the default 5% spectral damping.
func (c *Catalog) SetDampingPct(pct float64) { c.dampingPct = pct }

// logSpace returns n points log-uniformly spaced over [lo, hi] inclusive.
func logSpace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	logLo, logHi := math.Log(lo), math.Log(hi)
	step := (logHi - logLo) / float64(n-1)
	for i := range out {
		out[i] = math.Exp(logLo + step*float64(i))
	}
	return out
}

// Initialize prepares the catalog to receive siteCount sites, each with
// len(motionNames) motions (OutputCatalog::initialize()).
func (c *Catalog) Initialize(siteCount int, motionNames []string) {
	c.siteCount = siteCount
	c.motionCount = len(motionNames)
	c.enabled = nil
}

// PopulateDepthVector extends the depth reference vector, if necessary, to
// cover maxDepth. The increment grows with depth in five tiers -- 1 below
// 20, 2 below 60, 5 below 160, 10 below 360, 20 beyond -- with the
// thresholds compared against the last depth in the configured length unit.
// Under the metric system each increment is converted from feet to meters
// (x0.3048); the thresholds are not converted
// (OutputCatalog::populateDepthVector()).
func (c *Catalog) PopulateDepthVector(maxDepth float64) {
	if len(c.depth) == 0 {
		c.depth = append(c.depth, 0)
	}
	for c.depth[len(c.depth)-1] < maxDepth {
		last := c.depth[len(c.depth)-1]
		var increment float64
		switch {
		case last < 20:
			increment = 1
		case last < 60:
			increment = 2
		case last < 160:
			increment = 5
		case last < 360:
			increment = 10
		default:
			increment = 20
		}
		if c.system == units.Metric {
			increment *= 0.3048
		}
		c.depth = append(c.depth, last+increment)
	}
}

// SaveResults extracts every output's data from a completed Calculator run
// for the given motion index, growing the depth reference vector first if
// the propagated column reaches deeper than it currently covers
// (OutputCatalog::saveResults()).
func (c *Catalog) SaveResults(motionIdx int, calculator *calc.Calculator) {
	subs := calculator.Site().SubLayers()
	if len(subs) == 0 {
		chk.Panic("output: cannot save results for an undiscretised profile")
	}
	maxDepth := calculator.Site().Rock().Depth()
	c.PopulateDepthVector(maxDepth)

	for _, o := range c.outputs {
		if dr, ok := o.(depthReferenced); ok {
			dr.setDepthRef(c.depth)
		}
		o.AddData(motionIdx, calculator)
	}

	if motionIdx == 0 {
		c.enabled = append(c.enabled, make([]bool, c.motionCount))
	}
	c.enabled[len(c.enabled)-1][motionIdx] = true
}

// RemoveLastSite discards the most recently added site's data from every
// output, used when the orchestrator decides to discard a realisation
// (OutputCatalog::removeLastSite()).
func (c *Catalog) RemoveLastSite() {
	for _, o := range c.outputs {
		o.RemoveLastSite()
	}
	if len(c.enabled) > 0 {
		c.enabled = c.enabled[:len(c.enabled)-1]
	}
}

// DisableMotion marks a (site, motion) pair as excluded from the final
// statistics without removing its stored data. Out-of-range indices are
// ignored. sim.Orchestrator does not call it: results that end with
// ConvergenceNotReached stay enabled.
func (c *Catalog) DisableMotion(site, motionIdx int) {
	if site < 0 || site >= len(c.enabled) {
		return
	}
	if motionIdx < 0 || motionIdx >= len(c.enabled[site]) {
		return
	}
	c.enabled[site][motionIdx] = false
}

// Finalize computes log-normal statistics on every output across all
// enabled (site, motion) pairs (OutputCatalog::finalize()).
func (c *Catalog) Finalize() {
	enabled := func(site, motionIdx int) bool {
		if site < 0 || site >= len(c.enabled) {
			return false
		}
		row := c.enabled[site]
		return motionIdx >= 0 && motionIdx < len(row) && row[motionIdx]
	}
	for _, o := range c.outputs {
		o.Finalize(enabled, len(c.enabled), c.motionCount)
	}
}
