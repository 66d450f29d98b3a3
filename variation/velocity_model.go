// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package variation implements the Monte-Carlo realisation driver (§4.5):
// the Toro velocity randomiser, the Toro non-homogeneous-Poisson layering
// randomiser, and the correlated nonlinear-curve randomiser, all seeded
// from a shared, reproducible PRNG.
package variation

import "math"

// VelocityModel selects a published stdev/correlation parameter set
// (ProfileVariation::VelocityModel in the source).
type VelocityModel int

const (
	CustomVelocityModel VelocityModel = iota
	GeoMatrixAB
	GeoMatrixCD
	USGSAB
	USGSCD
	USGSA
	USGSB
	USGSC
	USGSD
)

// stdevByModel mirrors ProfileVariation::setStdevModel()'s switch table.
var stdevByModel = map[VelocityModel]float64{
	GeoMatrixAB: 0.46,
	GeoMatrixCD: 0.38,
	USGSAB:      0.35,
	USGSCD:      0.36,
	USGSA:       0.36,
	USGSB:       0.27,
	USGSC:       0.31,
	USGSD:       0.37,
}

// Stdev returns the published lognormal standard deviation for m, or 0 for
// CustomVelocityModel (the caller supplies its own value in that case).
func (m VelocityModel) Stdev() float64 { return stdevByModel[m] }

// correlParams is the depth-correlation parameter quintuple used by
// depthCorrel and the thickness-correlation term (ProfileVariation::setCorrelModel()).
type correlParams struct {
	Initial, Final, Delta, Intercept, Exponent float64
}

var correlByModel = map[VelocityModel]correlParams{
	GeoMatrixAB: {Initial: 0.96, Final: 0.96, Delta: 13.1, Intercept: 0.0, Exponent: 0.095},
	GeoMatrixCD: {Initial: 0.99, Final: 1.00, Delta: 8.0, Intercept: 0.0, Exponent: 0.160},
	USGSAB:      {Initial: 0.95, Final: 1.00, Delta: 4.2, Intercept: 0.0, Exponent: 0.138},
	USGSCD:      {Initial: 0.99, Final: 1.00, Delta: 3.9, Intercept: 0.0, Exponent: 0.293},
	USGSA:       {Initial: 0.95, Final: 0.42, Delta: 3.4, Intercept: 0.0, Exponent: 0.063},
	USGSB:       {Initial: 0.97, Final: 1.00, Delta: 3.8, Intercept: 0.0, Exponent: 0.293},
	USGSC:       {Initial: 0.99, Final: 0.98, Delta: 3.9, Intercept: 0.0, Exponent: 0.344},
	USGSD:       {Initial: 0.00, Final: 0.50, Delta: 5.0, Intercept: 0.0, Exponent: 0.744},
}

// Correl returns the depth-correlation parameters for m.
func (m VelocityModel) Correl() correlParams { return correlByModel[m] }

// depthCorrel implements ProfileVariation::depthCorrel(): a clamped power
// law in depth (meters) below 200 m, constant above it.
func depthCorrel(depth float64, p correlParams) float64 {
	if depth < 200 {
		return p.Final * math.Pow((depth+p.Initial)/(200+p.Initial), p.Exponent)
	}
	return p.Final
}
