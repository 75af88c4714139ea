// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"fmt"

	"github.com/cpmech/godeco/plan"
	"github.com/cpmech/gosl/plt"
)

// PlotProfile plots the dive profile and schedule as depth versus run
// time and saves the figure to dirout/fnkey
func PlotProfile(dirout, fnkey string, segs plan.Segments) error {
	n := len(segs)
	T := make([]float64, 1, n+1)
	D := make([]float64, 1, n+1)
	t := 0.0
	if n > 0 {
		D[0] = -segs[0].StartDepth
	}
	for _, s := range segs {
		t += s.Time
		T = append(T, t)
		D = append(D, -s.EndDepth)
	}
	plt.Reset(true, nil)
	plt.Plot(T, D, &plt.A{C: "#0077be", NoClip: true})
	plt.Gll("run time [min]", "depth [m]", nil)
	return savePlotNoPanic(dirout, fnkey)
}

// savePlotNoPanic wraps plt.Save, which panics on a save error in this
// version of gosl, converting the panic back into a returned error
func savePlotNoPanic(dirout, fnkey string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	plt.Save(dirout, fnkey)
	return
}
