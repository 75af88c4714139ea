// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buhlmann

import (
	"math"

	"github.com/cpmech/godeco/gas"
	"github.com/cpmech/godeco/phys"
	"github.com/cpmech/godeco/plan"
)

const (
	// decoAscentRate is the ascent speed between stops [m/min]
	decoAscentRate = 10.0

	// stopBand is the depth spacing of decompression stops [m]
	stopBand = 3.0

	// maxStopMinutes caps the minute accumulator of one deco stop
	maxStopMinutes = 10000

	// NoLimit is the sentinel returned by Ndl when the exposure never
	// produces a ceiling below the surface
	NoLimit = math.MaxInt32
)

// namedGas pairs a declared label with its mix; declaration order is
// preserved so gas selection is deterministic
type namedGas struct {
	label string
	mix   gas.Mix
}

// Plan builds a dive profile on a ZH-L16 compartment bank and
// computes its decompression schedule. A Plan is confined to one
// goroutine during a calculation
type Plan struct {
	env      phys.Environment
	fresh    bool
	bottom   []namedGas
	deco     []namedGas
	segments plan.Segments
	tissues  []Compartment
}

// NewPlan returns a plan over the given coefficient table (ZH16A,
// ZH16B or ZH16C) with the given surface absolute pressure [bar]
func NewPlan(table []Coefs, absPressure float64, freshWater bool) *Plan {
	env := phys.Default
	env.SurfacePressure = absPressure
	env.AltitudePressure = absPressure
	o := &Plan{env: env, fresh: freshWater, tissues: make([]Compartment, len(table))}
	for i, c := range table {
		o.tissues[i].Init(c, env, freshWater)
	}
	return o
}

// Tissues returns the compartment bank
func (o *Plan) Tissues() []Compartment {
	return o.tissues
}

// Segments returns the profile built so far
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
	return nil
}

// AddDecoGas declares a decompression mix under the given label
func (o *Plan) AddDecoGas(label string, fO2, fHe float64) error {
	m, err := gas.New(fO2, fHe)
	if err != nil {
		return err
	}
	o.deco = append(o.deco, namedGas{label, m})
	return nil
}

// gasByLabel finds a declared bottom or deco gas
func (o *Plan) gasByLabel(label string) (gas.Mix, error) {
	for _, g := range o.bottom {
		if g.label == label {
			return g.mix, nil
		}
	}
	for _, g := range o.deco {
		if g.label == label {
			return g.mix, nil
		}
	}
	return gas.Mix{}, plan.PlanErr("gas %q has not been declared in this plan", label)
}

// AddFlat appends a constant-depth segment
func (o *Plan) AddFlat(depth float64, gasLabel string, time float64) error {
	return o.AddDepthChange(depth, depth, gasLabel, time)
}

// AddDepthChange appends a depth-change segment and loads all
// compartments accordingly
func (o *Plan) AddDepthChange(startDepth, endDepth float64, gasLabel string, time float64) error {
	m, err := o.gasByLabel(gasLabel)
	if err != nil {
		return err
	}
	if time < 0 {
		return plan.PlanErr("segment time must be non-negative: %g", time)
	}
	o.segments = append(o.segments, plan.Segment{StartDepth: startDepth, EndDepth: endDepth, Gas: gasLabel, Time: time})
	for i := range o.tissues {
		o.tissues[i].AddDepthChange(startDepth, endDepth, m.FO2, m.FHe, time)
	}
	return nil
}

// ceiling returns the deepest compartment ceiling [m] at gradient
// factor gf, rounded up to the next multiple of the stop band
func (o *Plan) ceiling(gf float64) float64 {
	c := 0.0
	for i := range o.tissues {
		if ci := o.tissues[i].Ceiling(gf); ci > c {
			c = ci
		}
	}
	if c <= 0 {
		return 0
	}
	return math.Ceil(c/stopBand) * stopBand
}

// bestDecoGas selects the richest declared deco mix usable at depth:
// highest oxygen fraction whose maximum operating depth (rounded to
// the nearest meter) is not exceeded and whose narcotic depth stays
// within maxEnd. First declared wins ties
func (o *Plan) bestDecoGas(depth, maxPpO2, maxEnd float64) (string, bool) {
	best := -1
	for i, g := range o.deco {
		if depth > math.Round(g.mix.Mod(maxPpO2, o.fresh)) {
			continue
		}
		if g.mix.End(depth, o.fresh) > maxEnd {
			continue
		}
		if best < 0 || g.mix.FO2 > o.deco[best].mix.FO2 {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return o.deco[best].label, true
}

// addDecoDepthChange ascends from cur to target [m] at the deco
// ascent rate, walking one meter at a time and switching to a better
// deco gas as soon as one becomes usable. Returns the gas in use on
// arrival
func (o *Plan) addDecoDepthChange(cur, target float64, maxPpO2, maxEnd float64, gasLabel string) (string, error) {
	if gasLabel == "" {
		return "", plan.PlanErr("no gas usable at %g m: declare a bottom gas before computing decompression", cur)
	}
	for cur > target {
		next := target
		switchTo := ""
		for d := cur - 1; d >= target; d-- {
			if best, ok := o.bestDecoGas(d, maxPpO2, maxEnd); ok && best != gasLabel {
				next = d
				switchTo = best
				break
			}
		}
		if err := o.AddDepthChange(cur, next, gasLabel, (cur-next)/decoAscentRate); err != nil {
			return "", err
		}
		if switchTo != "" {
			gasLabel = switchTo
		}
		cur = next
	}
	return gasLabel, nil
}

// snapshot copies the compartment bank by value
func (o *Plan) snapshot() []Compartment {
	s := make([]Compartment, len(o.tissues))
	copy(s, o.tissues)
	return s
}

// restore copies a snapshot back into the compartment bank
func (o *Plan) restore(s []Compartment) {
	copy(o.tissues, s)
}

// CalculateDecompression computes the ascent schedule from the end of
// the current profile (or from fromDepth when given). Unless
// maintainTissues is set, tissue and segment state are left exactly
// as they were at entry, so repeated evaluations of the same plan
// yield identical schedules.
//
// The first stop ceiling is evaluated at gfLow; while ascending, the
// gradient factor is interpolated linearly toward gfHigh at the
// surface. Gas switches prefer the richest declared deco mix whose
// maximum operating depth (at maxPpO2) and narcotic depth (maxEnd)
// permit the current depth
func (o *Plan) CalculateDecompression(maintainTissues bool, gfLow, gfHigh, maxPpO2, maxEnd float64, fromDepth ...float64) (*plan.Result, error) {
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

	if !maintainTissues {
		snap := o.snapshot()
		nseg := len(o.segments)
		defer func() {
			o.restore(snap)
			o.segments = o.segments[:nseg]
		}()
	}

	ceiling := o.ceiling(gfLow)
	gasLabel, err := o.addDecoDepthChange(start, ceiling, maxPpO2, maxEnd, gasLabel)
	if err != nil {
		return nil, err
	}
	cur := ceiling
	for ceiling > 0 {
		gf := gfLow
		if start > 0 {
			gf = gfLow + (gfHigh-gfLow)*(1.0-ceiling/start)
		}
		minutes := 0
		for {
			if err := o.AddFlat(cur, gasLabel, 1); err != nil {
				return nil, err
			}
			minutes++
			ceiling = o.ceiling(gf)
			if ceiling <= cur-stopBand {
				break
			}
			if minutes >= maxStopMinutes {
				return nil, plan.NumErr("deco stop at %g m did not clear after %d minutes", cur, maxStopMinutes)
			}
		}
		gasLabel, err = o.addDecoDepthChange(cur, ceiling, maxPpO2, maxEnd, gasLabel)
		if err != nil {
			return nil, err
		}
		cur = ceiling
	}
	return &plan.Result{Segments: o.segments.Collapse()}, nil
}

// Ndl returns the no-decompression limit [min] at depth on the given
// gas and gradient factor: the number of whole minutes the diver may
// remain before any compartment ceiling drops below the surface.
// Returns NoLimit when the exposure saturates without producing a
// ceiling. Tissue state is left untouched
func (o *Plan) Ndl(depth float64, gasLabel string, gf float64) (int, error) {
	m, err := o.gasByLabel(gasLabel)
	if err != nil {
		return 0, err
	}
	snap := o.snapshot()
	defer o.restore(snap)
	minutes := 0
	for {
		var dTotal float64
		for i := range o.tissues {
			dTotal += o.tissues[i].AddFlat(depth, m.FO2, m.FHe, 1)
		}
		exceeded := false
		for i := range o.tissues {
			if o.tissues[i].Ceiling(gf) > 0 {
				exceeded = true
				break
			}
		}
		if exceeded {
			return minutes, nil
		}
		if dTotal == 0 {
			return NoLimit, nil
		}
		minutes++
		if minutes >= maxStopMinutes {
			return NoLimit, nil
		}
	}
}
