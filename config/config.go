// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads a JSON analysis description from disk and builds the
// domain objects (SoilTypes, Profile, MotionLibrary, Calculator,
// variation.Driver, output.Catalog) the orchestrator needs to run, the same
// role inp.ReadSim plays for a gofem .sim file (inp/sim.go): read the file,
// unmarshal into a plain struct, then translate field-by-field into the
// package types that actually do the work.
package config

import (
	"encoding/json"
	"math/rand"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/arkottke/strata-sub001/calc"
	"github.com/arkottke/strata-sub001/motion"
	"github.com/arkottke/strata-sub001/nlprop"
	"github.com/arkottke/strata-sub001/output"
	"github.com/arkottke/strata-sub001/profile"
	"github.com/arkottke/strata-sub001/rvt"
	"github.com/arkottke/strata-sub001/sim"
	"github.com/arkottke/strata-sub001/units"
	"github.com/arkottke/strata-sub001/variation"
)

// CurveConfig describes one SoilType's modulus-reduction/damping curves,
// either tabulated directly or generated by the Darendeli closed-form model
// (§4.2, nlprop.Darendeli).
type CurveConfig struct {
	Strain           []float64 `json:"strain,omitempty"`
	ModulusReduction []float64 `json:"modulusReduction,omitempty"`
	Damping          []float64 `json:"damping,omitempty"`

	Darendeli *DarendeliConfig `json:"darendeli,omitempty"`
}

// DarendeliConfig mirrors nlprop.DarendeliParams field-for-field in JSON.
type DarendeliConfig struct {
	MeanStress float64 `json:"meanStress"`
	PI         float64 `json:"pi"`
	OCR        float64 `json:"ocr"`
	Freq       float64 `json:"freq"`
	Cycles     float64 `json:"cycles"`
}

// SoilTypeConfig is one named material (§3 "SoilType").
type SoilTypeConfig struct {
	Name           string      `json:"name"`
	UnitWeight     float64     `json:"unitWeight"`
	InitialDamping float64     `json:"initialDamping"`
	Curve          CurveConfig `json:"curve"`
}

// SoilLayerConfig is one layer of the profile, referencing a SoilType by
// name (§3 "SoilLayer").
type SoilLayerConfig struct {
	SoilType  string  `json:"soilType"`
	Thickness float64 `json:"thickness"`
	ShearVel  float64 `json:"shearVel"`
}

// RockLayerConfig is the terminal half-space (§3 "RockLayer").
type RockLayerConfig struct {
	UnitWeight float64 `json:"unitWeight"`
	AvgDamping float64 `json:"avgDamping"`
	ShearVel   float64 `json:"shearVel"`
}

// ProfileConfig is the full soil column (§3 "Profile").
type ProfileConfig struct {
	SoilLayers []SoilLayerConfig `json:"soilLayers"`
	Rock       RockLayerConfig   `json:"rock"`
}

// TimeSeriesConfig describes a recorded acceleration motion.
type TimeSeriesConfig struct {
	Type  string    `json:"type"` // "outcrop", "within", "incomingOnly"
	Accel []float64 `json:"accel"`
	Dt    float64   `json:"dt"`
}

// ResponseSpectrumMotionConfig describes an RVT motion inverted from a
// target response spectrum (rvt.NewMotionFromResponseSpectrum).
type ResponseSpectrumMotionConfig struct {
	Type        string    `json:"type"`
	DampingPct  float64   `json:"dampingPct"`
	Periods     []float64 `json:"periods"`
	Sa          []float64 `json:"sa"`
	DurationGm  float64   `json:"durationGm"`
	Correction  string    `json:"correction"` // "booreJoyner" or "liuPezeshk"
	MaxEngFreq  float64   `json:"maxEngFreq"`
	LimitFas    bool      `json:"limitFas"`
}

// MotionConfig is one entry of the motion library; exactly one of
// TimeSeries or ResponseSpectrum should be set.
type MotionConfig struct {
	Name            string                        `json:"name"`
	TimeSeries      *TimeSeriesConfig             `json:"timeSeries,omitempty"`
	ResponseSpectrum *ResponseSpectrumMotionConfig `json:"responseSpectrum,omitempty"`
}

// CalculatorConfig parameterises calc.Calculator (§4.3).
type CalculatorConfig struct {
	Mode               string    `json:"mode"` // "equivalentLinear" (default), "linearElastic", "frequencyDependent"
	MaxIterations      int       `json:"maxIterations"`
	ErrorTolerance     float64   `json:"errorTolerance"`
	StrainRatio        float64   `json:"strainRatio"`
	FreqDependentRatio []float64 `json:"freqDependentRatio,omitempty"`
}

// AnalysisConfig parameterises the discretisation/realisation loop (§4.1, §4.7).
type AnalysisConfig struct {
	MaxFreq      float64 `json:"maxFreq"`
	WaveFraction float64 `json:"waveFraction"`
	ProfileCount int     `json:"profileCount"`
	IsVaried     bool    `json:"isVaried"`
	Seed         int64   `json:"seed"`
}

// VariationConfig selects the Monte-Carlo randomisers (§4.5).
type VariationConfig struct {
	VaryVelocity  bool                 `json:"varyVelocity"`
	Velocity      VelocityConfig       `json:"velocity"`
	VaryLayering  bool                 `json:"varyLayering"`
	Layering      variation.LayeringParams `json:"layering"`
	VaryNonlinear bool                 `json:"varyNonlinear"`
}

// VelocityConfig mirrors variation.VelocityRandomizer's exported fields,
// minus the shared PRNG the Driver injects.
type VelocityConfig struct {
	Model                string    `json:"model"`
	Stdev                float64   `json:"stdev"`
	StdevIsLayerSpecific bool      `json:"stdevIsLayerSpecific"`
	LayerStdev           []float64 `json:"layerStdev,omitempty"`
	BedrockStdev         float64   `json:"bedrockStdev"`
}

// OutputConfig selects which extractors the catalog reports and at what
// spectral damping (§3A, §4.6).
type OutputConfig struct {
	DampingPct float64  `json:"dampingPct"`
	Extractors []string `json:"extractors"` // e.g. "accelProfile", "strainProfile", "responseSpectrum", ...
}

// Config is the top-level JSON analysis description.
type Config struct {
	Units     string             `json:"units"` // "metric" (default) or "imperial"
	SoilTypes []SoilTypeConfig   `json:"soilTypes"`
	Profile   ProfileConfig      `json:"profile"`
	Motions   []MotionConfig     `json:"motions"`
	Calculator CalculatorConfig  `json:"calculator"`
	Analysis  AnalysisConfig     `json:"analysis"`
	Variation *VariationConfig   `json:"variation,omitempty"`
	Output    OutputConfig       `json:"output"`
}

// Load reads and unmarshals a JSON config file (ReadSim's pattern, applied
// to our own schema).
func Load(path string) *Config {
	var cfg Config
	b, err := io.ReadFile(path)
	if err != nil {
		chk.Panic("config: cannot read analysis file %q", path)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		chk.Panic("config: cannot unmarshal analysis file %q: %v", path, err)
	}
	return &cfg
}

// Built bundles every domain object derived from a Config, ready to hand to
// an orchestrator.
type Built struct {
	System      units.System
	SoilTypes   map[string]*profile.SoilType
	Profile     *profile.Profile
	Motions     []sim.NamedMotion
	Calculator  *calc.Calculator
	Driver      *variation.Driver
	Catalog     *output.Catalog
}

// Build translates cfg into runnable domain objects. It panics (via
// gosl/chk) on any malformed reference or missing required field --
// ConfigurationInvalid conditions are always fatal, never propagated as an
// error value (§7).
func (cfg *Config) Build(log *sim.TextLog) *Built {
	sys := units.Metric
	if cfg.Units == "imperial" {
		sys = units.Imperial
	}

	soilTypes := buildSoilTypes(cfg.SoilTypes)
	prof := buildProfile(cfg.Profile, soilTypes, sys.Gravity())
	motions := buildMotions(log, sys, cfg.Motions)
	calculator := buildCalculator(cfg.Calculator, sys)

	var driver *variation.Driver
	if cfg.Analysis.IsVaried {
		if cfg.Variation == nil {
			chk.Panic("config: analysis.isVaried requires a variation section")
		}
		driver = buildDriver(prof, sys, *cfg.Variation, cfg.Analysis.Seed)
	}

	catalog := buildCatalog(sys, cfg.Output)

	return &Built{
		System:     sys,
		SoilTypes:  soilTypes,
		Profile:    prof,
		Motions:    motions,
		Calculator: calculator,
		Driver:     driver,
		Catalog:    catalog,
	}
}

func buildSoilTypes(cfgs []SoilTypeConfig) map[string]*profile.SoilType {
	if len(cfgs) == 0 {
		chk.Panic("config: at least one soil type is required")
	}
	out := make(map[string]*profile.SoilType, len(cfgs))
	for _, c := range cfgs {
		modulus, damping := buildCurves(c.Name, c.Curve)
		out[c.Name] = profile.NewSoilType(c.Name, c.UnitWeight, c.InitialDamping, modulus, damping)
	}
	return out
}

func buildCurves(name string, c CurveConfig) (modulus, damping *nlprop.Property) {
	if c.Darendeli != nil {
		d := c.Darendeli
		prms := fun.Prms{
			&fun.Prm{N: "meanStress", V: d.MeanStress},
			&fun.Prm{N: "PI", V: d.PI},
			&fun.Prm{N: "OCR", V: d.OCR},
			&fun.Prm{N: "freq", V: d.Freq},
			&fun.Prm{N: "cycles", V: d.Cycles},
		}
		return nlprop.Darendeli(nlprop.NewDarendeliParams(prms))
	}
	if len(c.Strain) == 0 || len(c.ModulusReduction) == 0 || len(c.Damping) == 0 {
		chk.Panic("config: soil type %q must have either a darendeli section or strain/modulusReduction/damping vectors", name)
	}
	modulus = nlprop.New(name+"-G", nlprop.ModulusReduction, c.Strain, c.ModulusReduction)
	damping = nlprop.New(name+"-D", nlprop.Damping, c.Strain, c.Damping)
	return
}

func buildProfile(c ProfileConfig, soilTypes map[string]*profile.SoilType, gravity float64) *profile.Profile {
	if len(c.SoilLayers) == 0 {
		chk.Panic("config: profile must have at least one soil layer")
	}
	layers := make([]*profile.SoilLayer, len(c.SoilLayers))
	for i, l := range c.SoilLayers {
		st, ok := soilTypes[l.SoilType]
		if !ok {
			chk.Panic("config: soil layer %d references unknown soil type %q", i, l.SoilType)
		}
		layers[i] = profile.NewSoilLayer(st, l.Thickness, l.ShearVel, gravity)
	}
	rock := profile.NewRockLayer(c.Rock.UnitWeight, c.Rock.AvgDamping, c.Rock.ShearVel, gravity)
	return profile.NewProfile(gravity, layers, rock)
}

func motionType(s string) motion.Type {
	switch s {
	case "within":
		return motion.Within
	case "incomingOnly":
		return motion.IncomingOnly
	default:
		return motion.Outcrop
	}
}

func oscillatorCorrection(s string) rvt.OscillatorCorrection {
	if s == "liuPezeshk" {
		return rvt.LiuPezeshk
	}
	return rvt.BooreJoyner
}

func buildMotions(log *sim.TextLog, sys units.System, cfgs []MotionConfig) []sim.NamedMotion {
	if len(cfgs) == 0 {
		chk.Panic("config: at least one motion is required")
	}
	out := make([]sim.NamedMotion, 0, len(cfgs))
	for _, m := range cfgs {
		switch {
		case m.TimeSeries != nil:
			ts := m.TimeSeries
			if len(ts.Accel) == 0 || ts.Dt <= 0 {
				chk.Panic("config: motion %q: time series requires a non-empty accel vector and a positive dt", m.Name)
			}
			out = append(out, sim.NamedMotion{
				Name:   m.Name,
				Motion: motion.NewTimeSeries(sys, motionType(ts.Type), ts.Accel, ts.Dt),
			})
		case m.ResponseSpectrum != nil:
			rs := m.ResponseSpectrum
			if len(rs.Periods) == 0 || len(rs.Periods) != len(rs.Sa) {
				chk.Panic("config: motion %q: response spectrum requires matching, non-empty period/Sa vectors", m.Name)
			}
			target := motion.NewResponseSpectrum(rs.DampingPct, rs.Periods, rs.Sa)
			nm, err := sim.BuildRvtMotion(log, m.Name, motionType(rs.Type), target, rs.DurationGm, oscillatorCorrection(rs.Correction), rs.MaxEngFreq, rs.LimitFas)
			if err != nil {
				chk.Panic("config: motion %q: %v", m.Name, err)
			}
			out = append(out, nm)
		default:
			chk.Panic("config: motion %q must set either timeSeries or responseSpectrum", m.Name)
		}
	}
	return out
}

func calculatorMode(s string) calc.Mode {
	switch s {
	case "linearElastic":
		return calc.LinearElastic
	case "frequencyDependent":
		return calc.FrequencyDependent
	default:
		return calc.EquivalentLinear
	}
}

func buildCalculator(c CalculatorConfig, sys units.System) *calc.Calculator {
	calculator := calc.NewCalculator(sys)
	calculator.Mode = calculatorMode(c.Mode)
	if c.MaxIterations > 0 {
		calculator.MaxIterations = c.MaxIterations
	}
	if c.ErrorTolerance > 0 {
		calculator.ErrorTolerance = c.ErrorTolerance
	}
	if c.StrainRatio > 0 {
		calculator.StrainRatio = c.StrainRatio
	}
	calculator.FreqDependentRatio = c.FreqDependentRatio
	return calculator
}

func velocityModel(s string) variation.VelocityModel {
	switch s {
	case "geoMatrixAB":
		return variation.GeoMatrixAB
	case "geoMatrixCD":
		return variation.GeoMatrixCD
	case "usgsAB":
		return variation.USGSAB
	case "usgsCD":
		return variation.USGSCD
	case "usgsA":
		return variation.USGSA
	case "usgsB":
		return variation.USGSB
	case "usgsC":
		return variation.USGSC
	case "usgsD":
		return variation.USGSD
	default:
		return variation.CustomVelocityModel
	}
}

func buildDriver(base *profile.Profile, sys units.System, vc VariationConfig, seed int64) *variation.Driver {
	rng := rand.New(rand.NewSource(seed))

	velocity := variation.NewVelocityRandomizer(rng, velocityModel(vc.Velocity.Model), sys.MetersPerUnit())
	if vc.Velocity.Stdev > 0 {
		velocity.Stdev = vc.Velocity.Stdev
	}
	velocity.StdevIsLayerSpecific = vc.Velocity.StdevIsLayerSpecific
	velocity.LayerStdev = vc.Velocity.LayerStdev
	velocity.BedrockStdev = vc.Velocity.BedrockStdev

	curve := variation.NewCurveRandomizer(rng)

	cfg := variation.Config{
		VaryVelocity:  vc.VaryVelocity,
		Velocity:      *velocity,
		VaryLayering:  vc.VaryLayering,
		Layering:      vc.Layering,
		VaryNonlinear: vc.VaryNonlinear,
		Curve:         *curve,
	}
	return variation.NewDriver(base, sys.Gravity(), cfg, seed)
}

func buildCatalog(sys units.System, oc OutputConfig) *output.Catalog {
	// An empty catalog exposes the fixed period/frequency grids the
	// spectra extractors need to be built with; the real catalog is
	// constructed below once the extractor list is known.
	grids := output.NewCatalog(sys, nil)
	dampingPct := grids.DampingPct()
	if oc.DampingPct > 0 {
		dampingPct = oc.DampingPct
	}

	extractors := oc.Extractors
	if len(extractors) == 0 {
		extractors = []string{"accelProfile", "responseSpectrum"}
	}

	var outs []output.Output
	for _, name := range extractors {
		switch name {
		case "accelProfile":
			outs = append(outs, output.NewAccelProfileOutput())
		case "strainProfile":
			outs = append(outs, output.NewStrainProfileOutput())
		case "stressProfile":
			outs = append(outs, output.NewStressProfileOutput())
		case "stressRatioProfile":
			outs = append(outs, output.NewStressRatioProfileOutput())
		case "responseSpectrum":
			outs = append(outs, output.NewResponseSpectrumOutput(grids.Period(), dampingPct))
		case "fourierSpectrum":
			outs = append(outs, output.NewFourierSpectrumOutput(grids.Freq()))
		case "accelTransferFunction":
			outs = append(outs, output.NewAccelTransferFunctionOutput(grids.Freq()))
		default:
			chk.Panic("config: unknown output extractor %q", name)
		}
	}

	cat := output.NewCatalog(sys, outs)
	cat.SetDampingPct(dampingPct)
	return cat
}
