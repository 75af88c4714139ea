// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements reporting and plotting of computed
// decompression schedules
package out

import (
	"github.com/cpmech/godeco/plan"
	"github.com/cpmech/gosl/io"
)

// Report formats a computed schedule as a run-time table. One line per
// segment: depths, gas, duration and run time at the end of the
// segment
func Report(title string, res *plan.Result) string {
	l := io.Sf("%s\n", title)
	l += io.Sf("%8s%10s%10s%10s%12s  %s\n", "seg", "from", "to", "time", "run time", "gas")
	runTime := 0.0
	for i, s := range res.Segments {
		runTime += s.Time
		l += io.Sf("%8d%10.1f%10.1f%10.1f%12.1f  %s\n", i+1, s.StartDepth, s.EndDepth, s.Time, runTime, s.Gas)
	}
	for _, w := range res.Warnings {
		l += io.Sf("warning: %s\n", w)
	}
	return l
}

// PrintReport writes the schedule table to standard output
func PrintReport(title string, res *plan.Result) {
	io.Pf("%s", Report(title, res))
}
