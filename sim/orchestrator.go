// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/arkottke/strata-sub001/calc"
	"github.com/arkottke/strata-sub001/motion"
	"github.com/arkottke/strata-sub001/output"
	"github.com/arkottke/strata-sub001/profile"
	"github.com/arkottke/strata-sub001/rvt"
	"github.com/arkottke/strata-sub001/variation"
)

// ErrCancelled is returned by Run when the analysis was stopped by a
// cancellation request mid-realisation; the partial site has already been
// dropped from the catalog before Run returns it (§7 "Cancelled").
var ErrCancelled = errors.New("sim: analysis cancelled")

// errInstability is the internal sentinel used within one realisation to
// signal that the whole site must be discarded (§7 "NumericalInstability").
var errInstability = errors.New("sim: numerical instability")

// NamedMotion pairs a motion with the name it is reported under in the
// output catalog and log (MotionLibrary entries in the source).
type NamedMotion struct {
	Name   string
	Motion motion.Motion
}

// BuildRvtMotion constructs an RVT motion from a target response spectrum
// and records the result in log, degrading gracefully per §7
// "InversionDidNotConverge (per-motion; keep best estimate, log Medium)":
// an inversion that exhausts its pass budget still yields a usable motion,
// so only a harder failure (e.g. an empty target) is propagated as an
// error.
func BuildRvtMotion(log *TextLog, name string, typ motion.Type, target *motion.ResponseSpectrum, durationGm float64, correction rvt.OscillatorCorrection, maxEngFreq float64, limitFas bool) (NamedMotion, error) {
	m, err := rvt.NewMotionFromResponseSpectrum(typ, target, durationGm, correction, maxEngFreq, limitFas)
	if err != nil {
		var notConverged *rvt.InversionDidNotConverge
		if !errors.As(err, &notConverged) {
			return NamedMotion{}, fmt.Errorf("sim: building motion %q: %w", name, err)
		}
		log.Append(Medium, fmt.Sprintf("motion %q: %v; keeping best estimate", name, err))
	}
	return NamedMotion{Name: name, Motion: m}, nil
}

// Orchestrator drives the realisation loop of §4.7: for each realisation it
// samples (or reuses) a profile, discretises it, runs the calculator over
// every enabled motion, and hands each completed run to the output
// catalog, mirroring fem.FEM.Run's loop-over-stages structure
// (fem/fem.go).
type Orchestrator struct {
	// Profile is the base site profile; when Driver is nil it is reused
	// unmodified for every realisation.
	Profile *profile.Profile
	// Driver samples a varied profile per realisation (nil when the
	// analysis is not randomised).
	Driver *variation.Driver

	Calculator *calc.Calculator
	Catalog    *output.Catalog
	Motions    []NamedMotion

	// MaxFreq and WaveFraction parameterise Profile.Discretise.
	MaxFreq      float64
	WaveFraction float64
	// ProfileCount is the number of realisations to run (1 when Driver is
	// nil).
	ProfileCount int

	Log *TextLog

	// OnProgress, if set, is called after every completed (non-discarded)
	// realisation with the number completed so far and the total planned.
	OnProgress func(completed, total int)
	// OnFinished, if set, is called once Run returns, reporting whether the
	// analysis completed normally and how many motion results the completed
	// realisations produced (completed realisations times motions)
	// (§6 "Finished(success bool, motionCount int)").
	OnFinished func(success bool, motionCount int)

	cancelled int32
}

// Cancel requests that Run stop at the next realisation/motion boundary; it
// is safe to call from any goroutine (§5 "Cancellation").
func (o *Orchestrator) Cancel() { atomic.StoreInt32(&o.cancelled, 1) }

func (o *Orchestrator) stopRequested(ctx context.Context) bool {
	if ctx != nil {
		select {
		case <-ctx.Done():
			return true
		default:
		}
	}
	return atomic.LoadInt32(&o.cancelled) != 0
}

// Run executes the full realisation loop (§4.7). It returns ErrCancelled if
// stopped mid-run (with the partial site already dropped from the
// catalog and the catalog finalised over the completed realisations), or any ConfigurationInvalid-class panic propagates unrecovered
// per §7 -- callers that want the fatal/recoverable boundary of
// ConfigurationInvalid should wrap Run in their own recover, the way
// cmd/strata's main does.
func (o *Orchestrator) Run(ctx context.Context) error {
	if o.Log == nil {
		o.Log = NewTextLog()
	}

	names := make([]string, len(o.Motions))
	for i, m := range o.Motions {
		names[i] = m.Name
	}
	o.Catalog.Initialize(o.ProfileCount, names)
	o.Log.Append(Low, fmt.Sprintf("starting analysis: %d realisation(s), %d motion(s)", o.ProfileCount, len(o.Motions)))

	completed := 0
	for r := 0; r < o.ProfileCount; r++ {
		if o.stopRequested(ctx) {
			o.Catalog.Finalize()
			return o.finish(false, completed, ErrCancelled)
		}

		site := o.Profile
		if o.Driver != nil {
			site = o.Driver.Sample()
		}
		site.Discretise(o.MaxFreq, o.WaveFraction)

		err := o.runRealisation(ctx, r, site)
		site.ResetSubLayers()

		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, ErrCancelled):
			o.Catalog.RemoveLastSite()
			o.Log.Append(Low, fmt.Sprintf("realisation %d: cancelled, discarding partial site", r+1))
			o.Catalog.Finalize()
			return o.finish(false, completed, ErrCancelled)
		case errors.Is(err, errInstability):
			o.Catalog.RemoveLastSite()
			o.Log.Append(High, fmt.Sprintf("realisation %d: discarded for numerical instability", r+1))
			continue
		case err != nil:
			return o.finish(false, completed, err)
		}

		completed++
		if o.OnProgress != nil {
			o.OnProgress(completed, o.ProfileCount)
		}
	}

	o.Catalog.Finalize()
	o.Log.Append(Low, "analysis finished")
	return o.finish(true, completed, nil)
}

func (o *Orchestrator) finish(success bool, completed int, err error) error {
	if o.OnFinished != nil {
		o.OnFinished(success, completed*len(o.Motions))
	}
	return err
}

// runRealisation runs every enabled motion against site, saving each
// completed run to the catalog. It returns errInstability if any motion's
// calculation is numerically unstable, discarding the whole realisation
// (§7 "NumericalInstability"); ConvergenceNotReached results are kept and
// logged at Medium rather than discarded.
func (o *Orchestrator) runRealisation(ctx context.Context, r int, site *profile.Profile) error {
	for idx, nm := range o.Motions {
		if o.stopRequested(ctx) {
			return ErrCancelled
		}

		err := o.Calculator.Run(nm.Motion, site)
		var unstable *calc.NumericalInstability
		var notConverged *calc.ConvergenceNotReached
		switch {
		case err == nil:
			o.Catalog.SaveResults(idx, o.Calculator)
		case errors.As(err, &unstable):
			o.Log.Append(High, fmt.Sprintf("realisation %d motion %q: %v", r+1, nm.Name, err))
			return errInstability
		case errors.As(err, &notConverged):
			o.Log.Append(Medium, fmt.Sprintf("realisation %d motion %q: %v; keeping result", r+1, nm.Name, err))
			o.Catalog.SaveResults(idx, o.Calculator)
		default:
			return err
		}
	}
	return nil
}
