// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vpm

import (
	"math"

	"github.com/cpmech/godeco/phys"
	"github.com/cpmech/godeco/plan"
)

// calcStartOfDecoZone finds, by bisection over the simulated ascent at
// constant rate, the depth at which each compartment's total inert gas
// tension plus other gases reaches the ambient pressure, and returns
// the deepest of these crossings: the first depth of the ascent at
// which any compartment is supersaturated.
// When a compartment is already supersaturated at the starting depth
// the zone is clamped there and reported as such
func (o *DiveState) calcStartOfDecoZone(startDepth, rate float64, mi int) (depthZone float64, clamped bool, err error) {
	startAmb := o.ambient(startDepth)
	m := o.mixes[mi]
	inspHe := (startAmb - o.waterVapour) * m.FHe
	inspN2 := (startAmb - o.waterVapour) * m.FN2
	highBound := -startAmb / rate
	for i := range o.cpt {
		c := &o.cpt[i]
		f := func(t float64) float64 {
			amb := startAmb + rate*t
			he := phys.Schreiner(c.PHe, inspHe, t, HalfTimeHe[i], rate*m.FHe)
			n2 := phys.Schreiner(c.PN2, inspN2, t, HalfTimeN2[i], rate*m.FN2)
			return he + n2 + o.otherGases - amb
		}
		if f(0) > 0 {
			// the diver is already beyond this compartment
			depthZone = startDepth
			clamped = true
			continue
		}
		if f(highBound) < 0 {
			continue
		}
		low, high := 0.0, highBound
		solved := false
		for it := 0; it < maxRootIter; it++ {
			t := 0.5 * (low + high)
			if f(t) < 0 {
				low = t
			} else {
				high = t
			}
			if high-low < rootTimeTol {
				solved = true
				break
			}
		}
		if !solved {
			return 0, false, plan.NumErr("start of deco zone search exceeded %d iterations", maxRootIter)
		}
		if depth := startDepth + rate*0.5*(low+high); depth > depthZone {
			depthZone = depth
		}
	}
	if depthZone > startDepth {
		depthZone = startDepth
	}
	return
}

// calcAscentCeiling returns the deepest depth [units] tolerated by the
// compartment bank under the current allowable gradients
func (o *DiveState) calcAscentCeiling() float64 {
	ceiling := -math.MaxFloat64
	for i := range o.cpt {
		c := &o.cpt[i]
		load := c.PHe + c.PN2
		var tolerated float64
		if load > 0 {
			w := (c.AllowableGradientHe*c.PHe + c.AllowableGradientN2*c.PN2) / load
			tolerated = load + o.otherGases - w
		} else {
			tolerated = o.otherGases - math.Min(c.AllowableGradientHe, c.AllowableGradientN2)
		}
		if d := tolerated - o.barometric; d > ceiling {
			ceiling = d
		}
	}
	return ceiling
}

// calcDecoCeiling is calcAscentCeiling under the Boyle's-Law
// compensated deco gradients
func (o *DiveState) calcDecoCeiling() float64 {
	ceiling := -math.MaxFloat64
	for i := range o.cpt {
		c := &o.cpt[i]
		load := c.PHe + c.PN2
		var tolerated float64
		if load > 0 {
			w := (c.DecoGradientHe*c.PHe + c.DecoGradientN2*c.PN2) / load
			tolerated = load + o.otherGases - w
		} else {
			tolerated = o.otherGases - math.Min(c.DecoGradientHe, c.DecoGradientN2)
		}
		if d := tolerated - o.barometric; d > ceiling {
			ceiling = d
		}
	}
	return ceiling
}

// projectedAscent simulates the ascent to the proposed stop and pushes
// the stop deeper by stepSize while any compartment would exceed its
// gas-loading-weighted allowable gradient on arrival
func (o *DiveState) projectedAscent(startDepth, rate, stop, stepSize float64, mi int) float64 {
	m := o.mixes[mi]
	startAmb := o.ambient(startDepth)
	inspHe := (startAmb - o.waterVapour) * m.FHe
	inspN2 := (startAmb - o.waterVapour) * m.FN2
outer:
	for stop < startDepth {
		segTime := (stop - startDepth) / rate
		for i := range o.cpt {
			c := &o.cpt[i]
			he := phys.Schreiner(c.PHe, inspHe, segTime, HalfTimeHe[i], rate*m.FHe)
			n2 := phys.Schreiner(c.PN2, inspN2, segTime, HalfTimeN2[i], rate*m.FN2)
			load := he + n2
			var w float64
			if load > 0 {
				w = (c.AllowableGradientHe*he + c.AllowableGradientN2*n2) / load
			} else {
				w = math.Min(c.AllowableGradientHe, c.AllowableGradientN2)
			}
			if load+o.otherGases-o.ambient(stop) > w {
				stop += stepSize
				continue outer
			}
		}
		break
	}
	return stop
}

// decompressionStop holds the diver at the stop until the deco ceiling
// clears the next stop, advancing the run time in minimum-stop
// increments after rounding it up to the next multiple. Returns the
// stop time [min]
func (o *DiveState) decompressionStop(stop, stepSize float64, mi int) (float64, error) {
	m := o.mixes[mi]
	amb := o.ambient(stop)
	inspHe := (amb - o.waterVapour) * m.FHe
	inspN2 := (amb - o.waterVapour) * m.FN2
	nextStop := stop - stepSize
	nextAmb := o.ambient(nextStop)

	// even full equilibration at this stop must clear the next one
	if insp := inspHe + inspN2; insp > 0 {
		for i := range o.cpt {
			c := &o.cpt[i]
			w := (c.DecoGradientHe*inspHe + c.DecoGradientN2*inspN2) / insp
			if insp+o.otherGases-w > nextAmb {
				return 0, plan.NumErr("off-gassing gradient is too small to decompress at the %g stop", stop)
			}
		}
	}

	roundUp := math.Ceil(o.runTime/o.minStopTime) * o.minStopTime
	segTime := roundUp - o.runTime
	o.runTime = roundUp
	total := segTime
	cur := segTime
	for {
		if cur > 0 {
			for i := range o.cpt {
				c := &o.cpt[i]
				c.PHe = phys.Haldane(c.PHe, inspHe, HalfTimeHe[i], cur)
				c.PN2 = phys.Haldane(c.PN2, inspN2, HalfTimeN2[i], cur)
			}
		}
		if o.calcDecoCeiling() <= nextStop {
			break
		}
		cur = o.minStopTime
		total += cur
		o.runTime += cur
	}
	return total, nil
}
