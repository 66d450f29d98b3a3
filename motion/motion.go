// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package motion defines the capability set that every input ground motion
// (time-series or RVT-derived) must implement, and the small set of
// concrete types (MotionType, ResponseSpectrum) shared across the
// calculator, the RVT kernel, and the output catalogue.
//
// The source's polymorphic AbstractMotion hierarchy (§9 Design Notes) is
// rendered here as a single Go interface; the calculator is written
// entirely in terms of Motion and never type-switches on a concrete motion
// kind.
package motion

import "math/cmplx"

// Type enumerates where/how a motion is defined relative to the free
// surface (§3).
type Type int

const (
	// Outcrop doubles the incoming wave (free-surface reflection).
	Outcrop Type = iota
	// Within combines the incoming and reflected waves.
	Within
	// IncomingOnly takes just the upward-propagating wave.
	IncomingOnly
)

func (t Type) String() string {
	switch t {
	case Outcrop:
		return "outcrop"
	case Within:
		return "within"
	case IncomingOnly:
		return "incoming-only"
	default:
		return "unknown"
	}
}

// Motion is the capability set every input ground motion exposes to the
// equivalent-linear calculator and to the output catalogue (§6 "Inputs
// consumed by the core").
type Motion interface {
	// Type reports where/how this motion is defined.
	Type() Type

	// Freq returns the (one-sided) frequency grid, Hz.
	Freq() []float64

	// AngFreqAt returns 2*pi*Freq()[i].
	AngFreqAt(i int) float64

	// AbsFourierAcc returns |FAS(acceleration)|, optionally filtered
	// through a transfer function (nil tf means the identity).
	AbsFourierAcc(tf []complex128) []float64

	// Max returns the expected/observed peak of the motion as filtered by
	// tf (nil tf means the identity), in units of gravity.
	Max(tf []complex128) float64

	// MaxVel returns the expected/observed peak velocity as filtered by tf.
	// TimeSeries reports it in the configured length unit per second;
	// rvt.Motion reports it in gravity units times seconds.
	MaxVel(tf []complex128) float64

	// MaxDisp returns the expected/observed peak displacement as filtered
	// by tf. TimeSeries reports it in the configured length unit;
	// rvt.Motion reports it in gravity units times seconds squared.
	MaxDisp(tf []complex128) float64

	// CalcMaxStrain returns the peak of a strain transfer function applied
	// to this motion, in units of gravity (the caller converts to percent
	// strain by multiplying by 100*g, §4.3 step 4).
	CalcMaxStrain(tf []complex128) float64

	// ComputeSa returns the 5%-or-other-damping response spectrum ordinates
	// at the given periods (seconds), after passing the motion through tf.
	ComputeSa(periods []float64, dampingPct float64, tf []complex128) []float64
}

// ApplyTF multiplies a real-valued FAS by the modulus of a complex transfer
// function; a nil tf is the identity.
func ApplyTF(fas []float64, tf []complex128) []float64 {
	if tf == nil {
		return fas
	}
	out := make([]float64, len(fas))
	for i := range fas {
		out[i] = fas[i] * cmplx.Abs(tf[i])
	}
	return out
}
