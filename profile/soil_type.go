// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package profile implements the layered site data model: SoilType,
// VelocityLayer (SoilLayer/RockLayer), Profile, SubLayer, and Location (§3,
// §4.1). A Profile owns its SoilLayers and terminal RockLayer; SubLayers are
// owned by the Profile and replaced wholesale on every discretisation, the
// same ownership shape the teacher's fem.Domain uses for its Elements and
// Nodes (fem/domain.go).
package profile

import "github.com/cpmech/gosl/chk"

// SoilType is a named material: two nonlinear curves (modulus reduction,
// damping) plus the scalar properties shared by every SubLayer built from a
// SoilLayer referencing it (§3).
type SoilType struct {
	Name            string
	UnitWeight      float64
	InitialDamping  float64
	normShearMod    *Property
	damping         *Property
	isComputed      bool
	darendeli       DarendeliParams
}

// Property is the minimal surface SoilType needs from a nonlinear curve;
// satisfied by *nlprop.Property (kept as an interface here so profile does
// not force a concrete nlprop import cycle onto callers that supply curves
// some other way).
type Property interface {
	Interp(strain float64) float64
}

// DarendeliParams mirrors nlprop.DarendeliParams; duplicated as a plain
// value type so profile does not need to import nlprop just to carry the
// five scalars through to the catalogue/output layer for reporting.
type DarendeliParams struct {
	MeanStress, PI, OCR, Freq, Cycles float64
}

// NewSoilType builds a SoilType from pre-computed curves (either tabulated
// or Darendeli-generated upstream); the "computed" invariant (§3: Darendeli
// inputs must be finite) is enforced by nlprop.NewDarendeliParams before the
// curves are ever handed here, so this constructor only wires the result.
func NewSoilType(name string, unitWeight, initialDamping float64, normShearMod, damping Property) *SoilType {
	if unitWeight <= 0 {
		chk.Panic("profile: soil type %q must have a positive unit weight", name)
	}
	if normShearMod == nil || damping == nil {
		chk.Panic("profile: soil type %q requires both a modulus-reduction and a damping curve", name)
	}
	return &SoilType{
		Name:           name,
		UnitWeight:     unitWeight,
		InitialDamping: initialDamping,
		normShearMod:   normShearMod,
		damping:        damping,
	}
}

// NormShearMod returns the normalized-shear-modulus-reduction curve.
func (s *SoilType) NormShearMod() Property { return s.normShearMod }

// Damping returns the damping curve.
func (s *SoilType) Damping() Property { return s.damping }
