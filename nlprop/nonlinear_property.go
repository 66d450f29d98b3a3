// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package nlprop implements the strain-dependent nonlinear material curves
// (shear-modulus reduction and damping ratio) used by the equivalent-linear
// calculator, and the Darendeli/Stokoe (2001) closed-form generator that
// fills those curves for a "computed" soil type.
package nlprop

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Kind distinguishes the two nonlinear curves a SoilType owns.
type Kind int

const (
	// ModulusReduction is G/Gmax, dimensionless, in (0, 1].
	ModulusReduction Kind = iota
	// Damping is the damping ratio in percent.
	Damping
)

// Property is a tabulated function of log-strain (%) to a property value.
// It keeps both the "average" curve (as configured) and a "varied" curve
// (populated by the Monte-Carlo curve randomiser); interpolation always
// reads from the varied curve, which equals the average curve until a
// randomiser perturbs it.
type Property struct {
	Name    string
	Kind    Kind
	strain  []float64 // percent, strictly increasing after Initialize
	average []float64
	varied  []float64
}

// New builds a Property from parallel strain/value vectors, deduplicating
// strain points (keeping the first occurrence) and validating that at least
// two points remain. It panics with chk.Panic on configuration errors,
// mirroring the teacher's constitutive-model Init() convention of treating
// a malformed material definition as fatal before any calculation starts.
func New(name string, kind Kind, strain, property []float64) *Property {
	if len(strain) != len(property) {
		chk.Panic("nlprop: strain and property vectors must be the same length (got %d and %d)", len(strain), len(property))
	}
	p := &Property{Name: name, Kind: kind}
	p.strain, p.average = dedupe(strain, property)
	p.varied = append([]float64(nil), p.average...)
	if len(p.strain) < 2 {
		chk.Panic("nlprop: %q needs at least two distinct strain points after deduplication, got %d", name, len(p.strain))
	}
	for i := 1; i < len(p.strain); i++ {
		if p.strain[i] <= p.strain[i-1] {
			chk.Panic("nlprop: %q strain vector must be strictly increasing after deduplication", name)
		}
	}
	return p
}

// dedupe removes strain values equal to a previous value (keeping the first
// occurrence), mirroring NonlinearProperty::initialize in the original
// implementation.
func dedupe(strain, property []float64) (s, v []float64) {
	s = make([]float64, 0, len(strain))
	v = make([]float64, 0, len(strain))
	for i, x := range strain {
		dup := false
		for _, y := range s {
			if math.Abs(x-y) <= 1e-12 {
				dup = true
				break
			}
		}
		if !dup {
			s = append(s, x)
			v = append(v, property[i])
		}
	}
	return
}

// Strain returns the strain grid, in percent.
func (p *Property) Strain() []float64 { return p.strain }

// Average returns the configured (un-randomised) property vector.
func (p *Property) Average() []float64 { return p.average }

// Varied returns the currently active (possibly randomised) property
// vector.
func (p *Property) Varied() []float64 { return p.varied }

// SetVaried replaces the varied vector, e.g. from the curve randomiser. The
// slice length must match Strain().
func (p *Property) SetVaried(varied []float64) {
	if len(varied) != len(p.strain) {
		chk.Panic("nlprop: %q SetVaried length mismatch: want %d got %d", p.Name, len(p.strain), len(varied))
	}
	p.varied = varied
}

// ResetVaried restores the varied curve to the average curve, used when the
// orchestrator rewinds between Monte-Carlo realisations.
func (p *Property) ResetVaried() {
	p.varied = append([]float64(nil), p.average...)
}

// Interp evaluates the varied curve at a target strain (percent) using
// linear interpolation on log(strain); values outside the tabulated range
// are clamped to the nearest endpoint (§4.2).
func (p *Property) Interp(strain float64) float64 {
	if strain <= p.strain[0] {
		return p.varied[0]
	}
	n := len(p.strain)
	if strain >= p.strain[n-1] {
		return p.varied[n-1]
	}
	logStrain := math.Log(strain)
	// binary search for the bracketing interval
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if p.strain[mid] <= strain {
			lo = mid
		} else {
			hi = mid
		}
	}
	x0, x1 := math.Log(p.strain[lo]), math.Log(p.strain[hi])
	y0, y1 := p.varied[lo], p.varied[hi]
	frac := (logStrain - x0) / (x1 - x0)
	return y0 + frac*(y1-y0)
}
