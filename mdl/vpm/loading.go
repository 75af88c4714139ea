// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vpm

import (
	"github.com/cpmech/godeco/gas"
	"github.com/cpmech/godeco/phys"
	"github.com/cpmech/godeco/plan"
)

// ascentDescent loads all compartments over a linear depth change
// from startDepth to endDepth [units] at rate [units/min, negative
// upward] breathing mix mi. Descents update the crushing pressures.
// The inspired pressures follow the Schreiner equation with the
// inspired pressure taken at the starting depth
func (o *DiveState) ascentDescent(startDepth, endDepth, rate float64, mi int, record bool) error {
	if rate == 0 {
		return plan.PlanErr("depth change rate must be nonzero")
	}
	segTime := (endDepth - startDepth) / rate
	if segTime < 0 {
		return plan.PlanErr("rate %g does not move the diver from %g to %g", rate, startDepth, endDepth)
	}
	m := o.mixes[mi]
	startAmb := o.ambient(startDepth)
	inspHe := (startAmb - o.waterVapour) * m.FHe
	inspN2 := (startAmb - o.waterVapour) * m.FN2
	for i := range o.cpt {
		c := &o.cpt[i]
		c.InitialPHe = c.PHe
		c.InitialPN2 = c.PN2
		c.PHe = phys.Schreiner(c.PHe, inspHe, segTime, HalfTimeHe[i], rate*m.FHe)
		c.PN2 = phys.Schreiner(c.PN2, inspN2, segTime, HalfTimeN2[i], rate*m.FN2)
	}
	o.runTime += segTime
	o.currentDepth = endDepth
	if record {
		o.segments = append(o.segments, plan.Segment{
			StartDepth: startDepth, EndDepth: endDepth, Gas: o.labels[mi], Time: segTime,
		})
	}
	if endDepth > startDepth {
		return o.calcCrushingPressure(startDepth, endDepth, rate, mi)
	}
	return nil
}

// constantDepth loads all compartments at constant depth [units] for
// segTime [min] breathing mix mi
func (o *DiveState) constantDepth(depth, segTime float64, mi int, record bool) error {
	if segTime < 0 {
		return plan.PlanErr("segment time must be non-negative: %g", segTime)
	}
	m := o.mixes[mi]
	amb := o.ambient(depth)
	inspHe := (amb - o.waterVapour) * m.FHe
	inspN2 := (amb - o.waterVapour) * m.FN2
	for i := range o.cpt {
		c := &o.cpt[i]
		c.InitialPHe = c.PHe
		c.InitialPN2 = c.PN2
		c.PHe = phys.Haldane(c.PHe, inspHe, HalfTimeHe[i], segTime)
		c.PN2 = phys.Haldane(c.PN2, inspN2, HalfTimeN2[i], segTime)
	}
	o.runTime += segTime
	o.currentDepth = depth
	if record {
		o.segments = append(o.segments, plan.Segment{
			StartDepth: depth, EndDepth: depth, Gas: o.labels[mi], Time: segTime,
		})
	}
	return nil
}

// surfaceInterval off-gasses all compartments at the surface breathing
// air for the given interval [min]
func (o *DiveState) surfaceInterval(minutes float64) {
	inspN2 := (o.barometric - o.waterVapour) * gas.AirFN2
	for i := range o.cpt {
		c := &o.cpt[i]
		c.PHe = phys.Haldane(c.PHe, 0, HalfTimeHe[i], minutes)
		c.PN2 = phys.Haldane(c.PN2, inspN2, HalfTimeN2[i], minutes)
	}
}

// calcMaxActualGradient records the supersaturation gradient reached
// on arrival at a stop of the committed ascent
func (o *DiveState) calcMaxActualGradient(stop float64) {
	amb := o.ambient(stop)
	for i := range o.cpt {
		c := &o.cpt[i]
		if g := c.PHe + c.PN2 + o.otherGases - amb; g > c.MaxActualGradient {
			c.MaxActualGradient = g
		}
	}
}
