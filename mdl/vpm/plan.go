// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vpm

import (
	"math"
	"sort"

	"github.com/cpmech/godeco/gas"
	"github.com/cpmech/godeco/inp"
	"github.com/cpmech/godeco/phys"
	"github.com/cpmech/godeco/plan"
	"github.com/cpmech/gosl/chk"
)

const (
	// decoAscentRate is the ascent speed between stops [m/min]
	decoAscentRate = 10.0

	// stopBand is the depth spacing of decompression stops [m]
	stopBand = 3.0
)

// namedGas pairs a declared label with its mix
type namedGas struct {
	label string
	mix   gas.Mix
}

// Plan is the segment-builder façade over the VPM-B solver. Depths
// are in meters; the internal calculation runs in msw pressure units
type Plan struct {
	state    *DiveState
	fresh    bool
	abs      float64 // surface absolute pressure [bar]
	factor   float64 // meters of depth to msw pressure units
	bottom   []namedGas
	deco     []namedGas
	segments plan.Segments // [m]
}

// NewPlan returns a plan at the given surface absolute pressure [bar]
func NewPlan(freshWater bool, absPressure float64) *Plan {
	set := new(inp.Settings)
	set.SetDefault()
	alt := new(inp.Altitude)
	alt.SetDefault()
	s, err := newState(set, alt)
	if err != nil {
		chk.Panic("vpm: default settings failed validation: %v", err)
	}
	// 1 bar = 10 msw exactly
	s.barometric = absPressure * 10.0
	for i := range s.cpt {
		s.cpt[i].PHe = 0
		s.cpt[i].PN2 = (s.barometric - s.waterVapour) * gas.AirFN2
	}
	return &Plan{
		state:  s,
		fresh:  freshWater,
		abs:    absPressure,
		factor: phys.Density(freshWater) * phys.StandardGravity / 10000.0,
	}
}

// Tissues returns the compartment bank
func (o *Plan) Tissues() []Compartment {
	return o.state.cpt[:]
}

// Segments returns the profile built so far [m]
func (o *Plan) Segments() plan.Segments {
	return o.segments
}

// AddBottomGas declares a bottom mix under the given label
func (o *Plan) AddBottomGas(label string, fO2, fHe float64) error {
	m, err := gas.New(fO2, fHe)
	if err != nil {
		return err
	}
	o.bottom = append(o.bottom, namedGas{label, m})
	o.state.mixes = append(o.state.mixes, m)
	o.state.labels = append(o.state.labels, label)
	return nil
}

// AddDecoGas declares a decompression mix under the given label
func (o *Plan) AddDecoGas(label string, fO2, fHe float64) error {
	m, err := gas.New(fO2, fHe)
	if err != nil {
		return err
	}
	o.deco = append(o.deco, namedGas{label, m})
	o.state.mixes = append(o.state.mixes, m)
	o.state.labels = append(o.state.labels, label)
	return nil
}

// mixIndex finds a declared gas by label
func (o *Plan) mixIndex(label string) (int, error) {
	for i, l := range o.state.labels {
		if l == label {
			return i, nil
		}
	}
	return 0, plan.PlanErr("gas %q has not been declared in this plan", label)
}

// AddFlat appends a constant-depth segment at depth [m]
func (o *Plan) AddFlat(depth float64, gasLabel string, time float64) error {
	mi, err := o.mixIndex(gasLabel)
	if err != nil {
		return err
	}
	if err := o.state.constantDepth(depth*o.factor, time, mi, false); err != nil {
		return err
	}
	o.segments = append(o.segments, plan.Segment{StartDepth: depth, EndDepth: depth, Gas: gasLabel, Time: time})
	return nil
}

// AddDepthChange appends a depth-change segment over time [min]
func (o *Plan) AddDepthChange(startDepth, endDepth float64, gasLabel string, time float64) error {
	mi, err := o.mixIndex(gasLabel)
	if err != nil {
		return err
	}
	if time <= 0 {
		return plan.PlanErr("segment time must be positive for a depth change: %g", time)
	}
	rate := (endDepth - startDepth) * o.factor / time
	if err := o.state.ascentDescent(startDepth*o.factor, endDepth*o.factor, rate, mi, false); err != nil {
		return err
	}
	o.segments = append(o.segments, plan.Segment{StartDepth: startDepth, EndDepth: endDepth, Gas: gasLabel, Time: time})
	return nil
}

// decoChanges builds the ascent-parameter changes for the
// decompression: the current gas from the starting depth, then the
// declared deco mixes from the depth where their rounded maximum
// operating depth (at maxPpO2) allows them, kept within the narcotic
// limit maxEnd. Deeper switches come first; ordering is deterministic.
// A mix whose switch depth is not shallower than the starting depth is
// left out, as is a mix not richer in oxygen than the gas breathed
// before it
func (o *Plan) decoChanges(startDepth float64, startMix int, maxPpO2, maxEnd float64) []change {
	changes := []change{{
		depth: startDepth * o.factor,
		mix:   startMix,
		rate:  -decoAscentRate * o.factor,
		step:  stopBand * o.factor,
	}}
	type sw struct {
		depth float64
		mix   int
		fO2   float64
	}
	var switches []sw
	for _, g := range o.deco {
		d := math.Round(g.mix.Mod(maxPpO2, o.fresh))
		for d > 0 && g.mix.End(d, o.fresh) > maxEnd {
			d--
		}
		if d <= 0 || d >= startDepth {
			continue
		}
		mi, _ := o.mixIndex(g.label)
		switches = append(switches, sw{depth: d, mix: mi, fO2: g.mix.FO2})
	}
	sort.SliceStable(switches, func(i, j int) bool { return switches[i].depth > switches[j].depth })
	richest := o.state.mixes[startMix].FO2
	for _, s := range switches {
		if s.fO2 <= richest {
			continue
		}
		richest = s.fO2
		changes = append(changes, change{
			depth: s.depth * o.factor,
			mix:   s.mix,
			rate:  -decoAscentRate * o.factor,
			step:  stopBand * o.factor,
		})
	}
	return changes
}

// CalculateDecompression computes the ascent schedule from the end of
// the current profile (or from fromDepth when given). Unless
// maintainTissues is set, tissue and segment state are left exactly
// as they were at entry. Deco mixes switch in at their maximum
// operating depth for maxPpO2, within the narcotic limit maxEnd
func (o *Plan) CalculateDecompression(maintainTissues bool, maxPpO2, maxEnd float64, fromDepth ...float64) (*plan.Result, error) {
	var start float64
	var gasLabel string
	if len(o.segments) > 0 {
		last := o.segments[len(o.segments)-1]
		start = last.EndDepth
		gasLabel = last.Gas
	}
	if len(fromDepth) > 0 {
		start = fromDepth[0]
	} else if len(o.segments) == 0 {
		return nil, plan.PlanErr("cannot calculate decompression: no segments and no fromDepth given")
	}
	if gasLabel == "" {
		if len(o.bottom) == 0 {
			return nil, plan.PlanErr("no gas usable at %g m: declare a bottom gas before computing decompression", start)
		}
		gasLabel = o.bottom[0].label
	}
	mi, err := o.mixIndex(gasLabel)
	if err != nil {
		return nil, err
	}

	snapCpt := o.state.cpt
	snapRunTime := o.state.runTime
	snapDepth := o.state.currentDepth
	if !maintainTissues {
		defer func() {
			o.state.cpt = snapCpt
			o.state.runTime = snapRunTime
			o.state.currentDepth = snapDepth
		}()
	}
	o.state.segments = nil
	o.state.warnings = nil

	if err := o.state.decompress(start*o.factor, o.decoChanges(start, mi, maxPpO2, maxEnd)); err != nil {
		return nil, err
	}

	all := make(plan.Segments, 0, len(o.segments)+len(o.state.segments))
	all = append(all, o.segments...)
	for _, s := range o.state.segments {
		all = append(all, plan.Segment{
			StartDepth: s.StartDepth / o.factor,
			EndDepth:   s.EndDepth / o.factor,
			Gas:        s.Gas,
			Time:       s.Time,
		})
	}
	res := &plan.Result{Segments: all.Collapse(), Warnings: o.state.warnings}
	o.state.segments = nil
	if maintainTissues {
		o.segments = res.Segments
	}
	return res, nil
}

// Ndl is not implemented by the VPM-B planner: the model has no
// no-decompression limit notion comparable to the dissolved-gas one
func (o *Plan) Ndl(depth float64, gasLabel string, gf float64) (int, error) {
	return 0, plan.UnsupErr("the VPM-B planner does not implement no-decompression limits")
}
