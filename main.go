// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/godeco/inp"
	"github.com/cpmech/godeco/mdl/vpm"
	"github.com/cpmech/godeco/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			if chk.Verbose {
				for i := 5; i > 3; i-- {
					chk.CallerInfo(i)
				}
			}
		}
	}()

	// read input parameters
	fnamepath, fnkey := io.ArgToFilename(0, "", ".dive", true)
	verbose := io.ArgToBool(1, true)
	doplot := io.ArgToBool(2, false)

	// message
	if verbose {
		io.PfWhite("\nGodeco -- VPM-B dive decompression planner\n\n")
		io.Pf("%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"plot profiles", "doplot", doplot,
		))
	}

	// read configuration
	cfg, err := inp.ReadConfig(fnamepath)
	if err != nil {
		chk.Panic("cannot read %q: %v", fnamepath, err)
	}

	// run all dives
	state, err := vpm.NewDiveState(cfg)
	if err != nil {
		chk.Panic("cannot initialise dive state: %v", err)
	}
	results, err := state.Run()
	if err != nil {
		chk.Panic("decompression calculation failed: %v", err)
	}

	// report
	for i, res := range results {
		title := io.Sf("dive %d", i+1)
		if i < len(cfg.Input) && cfg.Input[i].Desc != "" {
			title = cfg.Input[i].Desc
		}
		out.PrintReport(title, res)
		if doplot {
			if err := out.PlotProfile("/tmp/godeco", io.Sf("%s-dive%d", fnkey, i+1), res.Segments); err != nil {
				io.PfRed("cannot plot profile: %v\n", err)
			}
		}
	}
}
