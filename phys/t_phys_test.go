// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_conv01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("conv01. unit round trips")

	for _, x := range utl.LinSpace(-10000, 10000, 101) {
		chk.Float64(tst, "m -> ft -> m", 1e-9, FeetToMeters(MetersToFeet(x)), x)
		chk.Float64(tst, "ft -> m -> ft", 1e-9, MetersToFeet(FeetToMeters(x)), x)
	}

	for _, d := range utl.LinSpace(0, 120, 25) {
		chk.Float64(tst, "depth (salt)", 1e-10, PressureToDepth(DepthToPressure(d, false), false), d)
		chk.Float64(tst, "depth (fresh)", 1e-10, PressureToDepth(DepthToPressure(d, true), true), d)
	}
}

func Test_conv02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("conv02. pressures")

	// 10 m of salt water on top of one atmosphere
	chk.Float64(tst, "P(10m salt)", 1e-12, DepthToPressure(10, false), 1.0+1030.0*StandardGravity*10.0/100000.0)

	// one millimeter of mercury
	chk.Float64(tst, "mmHg", 1e-9, MmHgToBar(1), 0.00133322387415)

	// breathing pressure is proportional to the gas fraction
	chk.Float64(tst, "pp breathing", 1e-12, GasPressureBreathingInBars(30, 0.79, false),
		DepthToPressure(30, false)*0.79)

	// rate of change over a descent
	rate := GasRateInBarsPerMinute(0, 30, 3, 0.79, false)
	chk.Float64(tst, "gas rate", 1e-12, rate, (DepthToPressure(30, false)-1.0)/3.0*0.79)
}

func Test_vapour01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("vapour01. Antoine equation")

	// water boils at 100 °C under one atmosphere
	chk.Float64(tst, "100C", 1e-3, WaterVapourPressure(100), 1.0133)

	// water vapour pressure in the lungs
	chk.Float64(tst, "lungs", 2e-4, LungWaterVapourPressure, 0.0567)
}

func Test_loading01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("loading01. Schreiner and Haldane")

	// with zero rate the Schreiner equation degenerates to Haldane
	for _, t := range utl.LinSpace(0, 120, 13) {
		for _, halfTime := range []float64{4.0, 27.0, 635.0} {
			s := Schreiner(0.75, 3.16, t, halfTime, 0)
			h := Haldane(0.75, 3.16, halfTime, t)
			chk.Float64(tst, "schreiner(rate=0) == haldane", 1e-12, s, h)
		}
	}

	// no time, no loading
	chk.Float64(tst, "t=0", 1e-15, Schreiner(0.75, 3.16, 0, 8.0, 0.5), 0.75)
	chk.Float64(tst, "t=0", 1e-15, Haldane(0.75, 3.16, 8.0, 0), 0.75)

	// saturation approaches the inspired pressure
	chk.Float64(tst, "saturation", 1e-6, Haldane(0.75, 3.16, 4.0, 100000), 3.16)
}
