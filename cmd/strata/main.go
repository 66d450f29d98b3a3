// Copyright 2024 The Strata Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/arkottke/strata-sub001/config"
	"github.com/arkottke/strata-sub001/sim"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	// analysis filenamepath
	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("Please, provide a filename. Ex.: site.json")
	}
	if io.FnExt(fnamepath) == "" {
		fnamepath += ".json"
	}

	io.PfWhite("\nStrata -- one-dimensional equivalent-linear site response\n\n")
	io.Pf("Copyright 2024 The Strata Authors. All rights reserved.\n")
	io.Pf("Use of this source code is governed by a BSD-style\n")
	io.Pf("license that can be found in the LICENSE file.\n\n")

	// read and build the analysis
	cfg := config.Load(fnamepath)
	log := sim.NewTextLog()
	built := cfg.Build(log)

	o := &sim.Orchestrator{
		Profile:      built.Profile,
		Driver:       built.Driver,
		Calculator:   built.Calculator,
		Catalog:      built.Catalog,
		Motions:      built.Motions,
		MaxFreq:      cfg.Analysis.MaxFreq,
		WaveFraction: cfg.Analysis.WaveFraction,
		ProfileCount: profileCount(cfg.Analysis.ProfileCount),
		Log:          log,
		OnProgress: func(completed, total int) {
			io.Pf("> realisation %d/%d complete\n", completed, total)
		},
	}

	// stop cleanly on an interrupt (Ctrl-C) rather than leaving a partial
	// site half-written to the catalog
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	io.Pf("> running %d realisation(s)\n", o.ProfileCount)
	err := o.Run(ctx)

	for _, line := range log.Text() {
		io.Pf("%s\n", line)
	}

	if err != nil {
		if err == sim.ErrCancelled {
			io.Pfyel("\nanalysis cancelled\n")
			return
		}
		chk.Panic("analysis failed: %v", err)
	}

	io.PfGreen("\nanalysis finished\n")
	printSummary(built)
}

func profileCount(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func printSummary(b *config.Built) {
	for _, o := range b.Catalog.Outputs() {
		median := o.Median()
		if len(median) == 0 {
			continue
		}
		lo, hi := minMax(median)
		fmt.Printf("%s: %d reference points, median range [%.4g, %.4g]\n", o.Name(), len(median), lo, hi)
	}
}

func minMax(xs []float64) (float64, float64) {
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}
