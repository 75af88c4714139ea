// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vpm

import (
	"math"
	"testing"

	"github.com/cpmech/godeco/inp"
	"github.com/cpmech/godeco/plan"
	"github.com/cpmech/gosl/chk"
)

func Test_root01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("root01. hybrid radius root finder")

	// construct a cubic with a known root
	b := 2.0 * (0.257 - 0.0179)
	a := 2.0e5
	root := 3.0e-6
	c := a*root*root*root - b*root*root
	r, err := radiusRootFinder(a, b, c, b/a, 1e-5)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Float64(tst, "root", 1e-9, r, root)

	// brackets sharing a sign are a numeric error
	if _, err := radiusRootFinder(a, b, c, 4e-6, 1e-5); !plan.IsKind(err, plan.KindNumeric) {
		tst.Errorf("test failed: invalid brackets must raise a numeric error: %v\n", err)
		return
	}
}

func Test_settings01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("settings01. validation")

	newSettings := func() *inp.Settings {
		s := new(inp.Settings)
		s.SetDefault()
		return s
	}
	newAltitude := func() *inp.Altitude {
		a := new(inp.Altitude)
		a.SetDefault()
		return a
	}

	// defaults are valid
	if _, err := newState(newSettings(), newAltitude()); err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	// unknown units
	s := newSettings()
	s.Units = "bar"
	if _, err := newState(s, newAltitude()); !plan.IsKind(err, plan.KindConfiguration) {
		tst.Errorf("test failed: unknown units must be rejected: %v\n", err)
		return
	}

	// critical radius out of range
	s = newSettings()
	s.CriticalRadiusN2Microns = 1.4
	if _, err := newState(s, newAltitude()); !plan.IsKind(err, plan.KindConfiguration) {
		tst.Errorf("test failed: radius out of range must be rejected: %v\n", err)
		return
	}

	// regeneration time constant must be positive
	s = newSettings()
	s.RegenerationTimeConstant = 0
	if _, err := newState(s, newAltitude()); !plan.IsKind(err, plan.KindConfiguration) {
		tst.Errorf("test failed: zero regeneration time must be rejected: %v\n", err)
		return
	}

	// unknown toggle
	s = newSettings()
	s.CriticalVolumeAlgorithm = "maybe"
	if _, err := newState(s, newAltitude()); !plan.IsKind(err, plan.KindConfiguration) {
		tst.Errorf("test failed: unknown toggle must be rejected: %v\n", err)
		return
	}

	// altitude above Everest
	s = newSettings()
	s.AltitudeDiveAlgorithm = inp.On
	alt := newAltitude()
	alt.AltitudeOfDive = 9000
	if _, err := newState(s, alt); !plan.IsKind(err, plan.KindConfiguration) {
		tst.Errorf("test failed: altitude above Everest must be rejected: %v\n", err)
		return
	}

	// a non-acclimatized diver needs travel time
	s = newSettings()
	s.AltitudeDiveAlgorithm = inp.On
	alt = newAltitude()
	alt.AltitudeOfDive = 2000
	alt.DiverAcclimatizedAtAltitude = inp.Off
	alt.AscentToAltitudeHours = 0
	if _, err := newState(s, alt); !plan.IsKind(err, plan.KindConfiguration) {
		tst.Errorf("test failed: zero ascent time must be rejected: %v\n", err)
		return
	}

	// coming from above the dive altitude is not modelled
	alt.AscentToAltitudeHours = 2
	alt.StartingAcclimatizedAltitude = 2500
	if _, err := newState(s, alt); !plan.IsKind(err, plan.KindConfiguration) {
		tst.Errorf("test failed: starting above the dive altitude must be rejected: %v\n", err)
		return
	}
}

func Test_barometric01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("barometric01. U.S. Standard Atmosphere")

	s := new(inp.Settings)
	s.SetDefault()
	a := new(inp.Altitude)
	a.SetDefault()
	o, err := newState(s, a)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Float64(tst, "sea level (msw)", 1e-12, o.barometric, 10.1325)
	if p := o.barometricPressure(2000); p >= o.barometric || p <= 0.7*o.barometric {
		tst.Errorf("test failed: barometric pressure at 2000 m is implausible: %g\n", p)
		return
	}

	s.Units = "fsw"
	o, err = newState(s, a)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Float64(tst, "sea level (fsw)", 1e-12, o.barometric, 33.0)
}

func Test_crush01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("crush01. crushing pressure during descent")

	p := NewPlan(false, 1.0)
	p.AddBottomGas("air", 0.21, 0)
	if err := p.AddDepthChange(0, 40, "air", 4); err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	c40 := make([]float64, NumCompartments)
	for i, c := range p.Tissues() {
		if c.MaxCrushingPressureN2 <= 0 {
			tst.Errorf("test failed: compartment %d must be crushed after a descent\n", i)
			return
		}
		c40[i] = c.MaxCrushingPressureN2
	}

	// crushing pressure grows monotonically on a deeper walk
	if err := p.AddDepthChange(40, 60, "air", 2); err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	for i, c := range p.Tissues() {
		if c.MaxCrushingPressureN2 < c40[i] {
			tst.Errorf("test failed: max crushing pressure must not decrease during descent (%d)\n", i)
			return
		}
	}
}

func Test_deco02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("deco02. VPM-B schedule for the trimix profile")

	p := NewPlan(false, 1.0)
	p.AddBottomGas("2135", 0.21, 0.35)
	p.AddDecoGas("50%", 0.5, 0)
	if err := p.AddDepthChange(0, 50, "2135", 5); err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if err := p.AddFlat(50, "2135", 25); err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}

	res, err := p.CalculateDecompression(false, 1.6, 30)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	last := res.Segments[len(res.Segments)-1]
	chk.Float64(tst, "surfacing", 1e-9, last.EndDepth, 0)

	var stops []float64
	for _, s := range res.Segments[2:] {
		if s.Flat() {
			stops = append(stops, s.StartDepth)
		}
	}
	if len(stops) == 0 {
		tst.Errorf("test failed: this profile must produce decompression stops\n")
		return
	}
	for _, d := range stops {
		if r := math.Mod(d+1e-9, 3.0); r > 2e-9 && r < 3.0-2e-9 {
			tst.Errorf("test failed: stop %g is not on a 3 m band\n", d)
			return
		}
	}

	// repeated evaluations are identical
	res2, err := p.CalculateDecompression(false, 1.6, 30)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if len(res.Segments) != len(res2.Segments) {
		tst.Errorf("test failed: repeated evaluations must match\n")
		return
	}
	for i := range res.Segments {
		if res.Segments[i] != res2.Segments[i] {
			tst.Errorf("test failed: repeated evaluations must match at segment %d\n", i)
			return
		}
	}

	// ndl is not part of this model
	if _, err := p.Ndl(30, "2135", 1.0); !plan.IsKind(err, plan.KindUnsupported) {
		tst.Errorf("test failed: vpm ndl must be unsupported: %v\n", err)
		return
	}
}

func Test_run01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run01. batch configuration")

	cfg := &inp.Config{
		Input: []*inp.Dive{{
			Desc:        "air 30 msw for 25 min",
			NumGasMixes: 1,
			GasmixSummary: []*inp.GasSummary{
				{FractionO2: 0.21, FractionHe: 0, FractionN2: 0.79},
			},
			ProfileCodes: []*inp.ProfileCode{
				{ProfileCode: 1, StartingDepth: 0, EndingDepth: 30, Rate: 10, Gasmix: 1},
				{ProfileCode: 2, Depth: 30, RunTimeAtEndOfSegment: 25, Gasmix: 1},
				{ProfileCode: 99, AscentSummary: []*inp.AscentChange{
					{StartingDepth: 30, Gasmix: 1, Rate: -10, StepSize: 3},
				}},
			},
		}},
	}
	state, err := NewDiveState(cfg)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	results, err := state.Run()
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.IntAssert(len(results), 1)
	segs := results[0].Segments
	if len(segs) < 2 {
		tst.Errorf("test failed: the run must return the dive and its ascent\n")
		return
	}
	chk.Float64(tst, "surfacing", 1e-9, segs[len(segs)-1].EndDepth, 0)

	// a gas mix summing beyond unity is a configuration error
	bad := &inp.Config{
		Input: []*inp.Dive{{
			Desc:        "bad mix",
			NumGasMixes: 1,
			GasmixSummary: []*inp.GasSummary{
				{FractionO2: 0.22, FractionHe: 0, FractionN2: 0.79},
			},
			ProfileCodes: []*inp.ProfileCode{
				{ProfileCode: 2, Depth: 10, RunTimeAtEndOfSegment: 10, Gasmix: 1},
			},
		}},
	}
	if _, err := NewDiveState(bad); !plan.IsKind(err, plan.KindConfiguration) {
		tst.Errorf("test failed: invalid gas sum must be rejected: %v\n", err)
		return
	}

	// an invalid profile code is a plan error
	bad.Input[0].GasmixSummary[0].FractionO2 = 0.21
	bad.Input[0].ProfileCodes[0].ProfileCode = 3
	if _, err := NewDiveState(bad); !plan.IsKind(err, plan.KindPlan) {
		tst.Errorf("test failed: invalid profile code must be rejected: %v\n", err)
		return
	}
}
