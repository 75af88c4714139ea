// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buhlmann

import (
	"math"
	"reflect"
	"testing"

	"github.com/cpmech/godeco/phys"
	"github.com/cpmech/godeco/plan"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_tables01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tables01. ZH-L16 coefficient sets")

	chk.IntAssert(len(ZH16A), 17)
	chk.IntAssert(len(ZH16B), 17)
	chk.IntAssert(len(ZH16C), 17)

	// B and C only lower nitrogen a values
	for i := range ZH16A {
		chk.Float64(tst, "half-times A==B", 1e-15, ZH16A[i].N2HalfTime, ZH16B[i].N2HalfTime)
		chk.Float64(tst, "half-times A==C", 1e-15, ZH16A[i].N2HalfTime, ZH16C[i].N2HalfTime)
		chk.Float64(tst, "b A==B", 1e-15, ZH16A[i].N2B, ZH16B[i].N2B)
		if ZH16B[i].N2A > ZH16A[i].N2A || ZH16C[i].N2A > ZH16A[i].N2A {
			tst.Errorf("test failed: table B/C must not raise a coefficients (row %d)\n", i)
			return
		}
	}
	chk.Float64(tst, "B row 7", 1e-15, ZH16B[6].N2A, 0.5600)
	chk.Float64(tst, "C row 6", 1e-15, ZH16C[5].N2A, 0.6200)
}

func Test_cpt01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cpt01. loading and ceilings")

	p := NewPlan(ZH16B, 1.0, false)

	// every compartment on-gasses during a descent on air
	before := make([]float64, len(p.tissues))
	for i, c := range p.tissues {
		before[i] = c.PTotal
	}
	for i := range p.tissues {
		p.tissues[i].AddDepthChange(0, 40, 0.21, 0, 4)
	}
	for i, c := range p.tissues {
		if c.PTotal < before[i] {
			tst.Errorf("test failed: compartment %d lost gas during descent\n", i)
			return
		}
		if math.IsNaN(c.PTotal) || math.IsInf(c.PTotal, 0) || c.PN2 < 0 || c.PHe < 0 {
			tst.Errorf("test failed: compartment %d state is not finite\n", i)
			return
		}
	}

	// more exposure, deeper ceilings
	for i := range p.tissues {
		p.tissues[i].AddFlat(40, 0.21, 0, 20)
	}

	// the ceiling recedes as the gradient factor grows
	for i, c := range p.tissues {
		if c.Ceiling(1.0) > c.Ceiling(0.2) {
			tst.Errorf("test failed: compartment %d ceiling must be monotone in gf\n", i)
			return
		}
	}
	if p.ceiling(1.0) > p.ceiling(0.2) {
		tst.Errorf("test failed: plan ceiling must be monotone in gf\n")
		return
	}
	if p.ceiling(0.2) <= 0 {
		tst.Errorf("test failed: 40 m for 20 min on air must produce a ceiling at gf=0.2\n")
		return
	}
	chk.Float64(tst, "ceiling is a multiple of 3", 1e-15, math.Mod(p.ceiling(0.2), 3.0), 0)
}

func Test_ndl01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ndl01. no-decompression limits")

	p := NewPlan(ZH16B, 1.0, false)
	p.AddBottomGas("air", 0.21, 0)

	n30, err := p.Ndl(30, "air", 1.5)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if n30 <= 0 || n30 == NoLimit {
		tst.Errorf("test failed: ndl at 30 m must be a positive finite count: %d\n", n30)
		return
	}
	if chk.Verbose {
		io.Pforan("ndl(30m, air, 1.5) = %d\n", n30)
	}

	// deeper means shorter
	n42, err := p.Ndl(42, "air", 1.5)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if n42 >= n30 {
		tst.Errorf("test failed: ndl must shrink with depth: %d >= %d\n", n42, n30)
		return
	}

	// smaller gradient factors are more conservative
	n30lo, err := p.Ndl(30, "air", 1.0)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if n30lo > n30 {
		tst.Errorf("test failed: ndl must shrink with the gradient factor: %d > %d\n", n30lo, n30)
		return
	}

	// very shallow exposures saturate without a ceiling
	n3, err := p.Ndl(3, "air", 1.5)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.IntAssert(n3, NoLimit)

	// the search must leave tissue state untouched
	if p.tissues[0].PTotal != (1.0-phys.LungWaterVapourPressure)*0.79 {
		tst.Errorf("test failed: ndl must not disturb tissue state\n")
		return
	}
}

func Test_deco01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("deco01. trimix 50 m / 25 min with 50% deco gas")

	p := NewPlan(ZH16B, 1.0, false)
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

	tissuesBefore := p.snapshot()
	res, err := p.CalculateDecompression(false, 0.2, 0.8, 1.6, 30)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if chk.Verbose {
		for _, s := range res.Segments {
			io.Pforan("%6.1f -> %6.1f  %6.1f min  %s\n", s.StartDepth, s.EndDepth, s.Time, s.Gas)
		}
	}

	// the schedule surfaces the diver
	last := res.Segments[len(res.Segments)-1]
	chk.Float64(tst, "surfacing", 1e-15, last.EndDepth, 0)

	// the first stop lies on a 3 m band and below follow-up stops
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
	chk.Float64(tst, "first stop on band", 1e-15, math.Mod(stops[0], 3.0), 0)
	for i := 1; i < len(stops); i++ {
		if stops[i] >= stops[i-1] {
			tst.Errorf("test failed: stops must get shallower: %v\n", stops)
			return
		}
	}

	// no two adjacent identical flat segments
	for i := 1; i < len(res.Segments); i++ {
		a, b := res.Segments[i-1], res.Segments[i]
		if a.Flat() && b.Flat() && a.EndDepth == b.StartDepth && a.Gas == b.Gas {
			tst.Errorf("test failed: adjacent identical flat segments at %g\n", a.EndDepth)
			return
		}
	}

	// the deco gas takes over during the ascent
	used50 := false
	for _, s := range res.Segments {
		if s.Gas == "50%" {
			used50 = true
		}
	}
	if !used50 {
		tst.Errorf("test failed: the 50%% deco gas must be used during the ascent\n")
		return
	}

	// tissue state is restored and the evaluation is idempotent
	if !reflect.DeepEqual(tissuesBefore, p.snapshot()) {
		tst.Errorf("test failed: tissue state must be restored\n")
		return
	}
	res2, err := p.CalculateDecompression(false, 0.2, 0.8, 1.6, 30)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if !reflect.DeepEqual(res.Segments, res2.Segments) {
		tst.Errorf("test failed: repeated evaluations must yield identical schedules\n")
		return
	}
}

func Test_gasswitch01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gasswitch01. best deco gas selection")

	p := NewPlan(ZH16B, 1.0, false)
	p.AddBottomGas("air", 0.21, 0)
	p.AddDecoGas("50%", 0.5, 0)
	p.AddDecoGas("O2", 1.0, 0)

	// at 21 m only the 50% mix fits below its mod of 22 m
	best, ok := p.bestDecoGas(21, 1.6, 30)
	if !ok || best != "50%" {
		tst.Errorf("test failed: best gas at 21 m must be 50%%: %q\n", best)
		return
	}

	// at 6 m pure oxygen reaches its mod
	best, ok = p.bestDecoGas(6, 1.6, 30)
	if !ok || best != "O2" {
		tst.Errorf("test failed: best gas at 6 m must be O2: %q\n", best)
		return
	}

	// nothing fits below 25 m
	if _, ok = p.bestDecoGas(25, 1.6, 30); ok {
		tst.Errorf("test failed: no deco gas is usable at 25 m\n")
		return
	}
}

func Test_errors02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("errors02. plan errors")

	p := NewPlan(ZH16A, 1.0, false)
	if err := p.AddFlat(30, "unknown", 10); !plan.IsKind(err, plan.KindPlan) {
		tst.Errorf("test failed: unknown gas label must be a plan error: %v\n", err)
		return
	}
	if _, err := p.CalculateDecompression(false, 0.2, 0.8, 1.6, 30); !plan.IsKind(err, plan.KindPlan) {
		tst.Errorf("test failed: empty plan must be a plan error: %v\n", err)
		return
	}
}
