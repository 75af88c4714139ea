// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vpm

import (
	"math"

	"github.com/cpmech/godeco/plan"
	"github.com/cpmech/gosl/io"
)

// change is one ascent-parameter change: from depth upward, breathe
// mix and ascend at rate with stops spaced step apart
type change struct {
	depth float64
	mix   int // index into the mix list
	rate  float64
	step  float64
}

// decompress runs the VPM-B ascent algorithm from startDepth [units]:
// nuclear regeneration, initial allowable gradients, then the
// critical-volume loop, each pass simulating the full ascent with
// projected stops, Boyle's-Law compensated gradients and deco stops.
// When the phase-volume times of two consecutive passes agree within
// one minute across all compartments (or the critical-volume
// algorithm is disabled) the final pass commits the ascent segments
func (o *DiveState) decompress(startDepth float64, changes []change) error {
	if len(changes) == 0 {
		return plan.PlanErr("decompression needs at least one ascent change")
	}
	o.nuclearRegeneration(o.runTime)
	o.calcInitialAllowableGradient()

	var savedHe, savedN2 [NumCompartments]float64
	for i := range o.cpt {
		c := &o.cpt[i]
		c.PHeStartOfAscent = c.PHe
		c.PN2StartOfAscent = c.PN2
		savedHe[i], savedN2[i] = c.PHe, c.PN2
	}
	o.runTimeStartOfAscent = o.runTime
	savedRunTime := o.runTime

	first := changes[0]
	zone, clamped, err := o.calcStartOfDecoZone(startDepth, first.rate, first.mix)
	if err != nil {
		return err
	}
	o.depthStartOfDecoZone = zone
	if clamped {
		o.warnings = append(o.warnings, io.Sf(
			"start of deco zone clamped to the starting depth (%g): the diver is already beyond the leading compartment", startDepth))
	}

	o.scheduleConverged = false
	for i := range o.cpt {
		o.cpt[i].LastPhaseVolumeTime = 0
	}

	for {
		commit := o.scheduleConverged || !o.cvAlgorithm
		if err := o.runAscent(startDepth, changes, commit); err != nil {
			return err
		}
		if commit {
			return nil
		}

		decoPhaseVolumeTime := o.runTime - o.runTimeStartOfDecoZone
		o.calcSurfacePhaseVolumeTime()
		converged := true
		for i := range o.cpt {
			c := &o.cpt[i]
			c.PhaseVolumeTime = decoPhaseVolumeTime + c.SurfacePhaseVolumeTime
			if math.Abs(c.PhaseVolumeTime-c.LastPhaseVolumeTime) > 1.0 {
				converged = false
			}
		}
		if converged {
			o.scheduleConverged = true
		} else {
			o.criticalVolume(decoPhaseVolumeTime)
		}
		for i := range o.cpt {
			o.cpt[i].LastPhaseVolumeTime = o.cpt[i].PhaseVolumeTime
		}
		for i := range o.cpt {
			o.cpt[i].PHe = savedHe[i]
			o.cpt[i].PN2 = savedN2[i]
		}
		o.runTime = savedRunTime
	}
}

// runAscent simulates one full ascent from startDepth: first stop from
// the ascent ceiling rounded up to the step size and checked by the
// projected ascent, then stop after stop until the surface. Segments
// are recorded only when commit is set
func (o *DiveState) runAscent(startDepth float64, changes []change, commit bool) error {
	cur := startDepth
	ci := 0
	mix, rate, step := changes[0].mix, changes[0].rate, changes[0].step
	o.decoZoneReached = false
	o.runTimeStartOfDecoZone = o.runTime

	var stop float64
	if ceiling := o.calcAscentCeiling(); ceiling > 0 {
		stop = math.Ceil(ceiling/step) * step
		stop = o.projectedAscent(cur, rate, stop, step, mix)
		if stop > cur {
			return plan.NumErr("step size %g is too large to ascend from %g", step, cur)
		}
	}
	firstStop := stop
	for {
		if err := o.ascendLeg(cur, stop, &mix, &rate, &step, changes, &ci, commit); err != nil {
			return err
		}
		if commit {
			o.calcMaxActualGradient(stop)
		}
		if stop <= 0 {
			return nil
		}
		if err := o.boylesLawCompensation(firstStop, stop, step); err != nil {
			return err
		}
		stopTime, err := o.decompressionStop(stop, step, mix)
		if err != nil {
			return err
		}
		if commit && stopTime > 0 {
			o.segments = append(o.segments, plan.Segment{
				StartDepth: stop, EndDepth: stop, Gas: o.labels[mix], Time: stopTime,
			})
		}
		cur = stop
		stop -= step
		if stop < 0 {
			stop = 0
		}
	}
}

// ascendLeg moves the diver from depth from to depth to, splitting the
// leg at ascent-parameter change depths. The leg is not split at the
// start of the deco zone: the run time of that crossing is interpolated
// within the sub-leg that contains it
func (o *DiveState) ascendLeg(from, to float64, mix *int, rate, step *float64, changes []change, ci *int, commit bool) error {
	cur := from
	for {
		for *ci+1 < len(changes) && changes[*ci+1].depth >= cur {
			*ci++
			*mix = changes[*ci].mix
			*rate = changes[*ci].rate
			*step = changes[*ci].step
		}
		if cur <= to {
			return nil
		}
		next := to
		if *ci+1 < len(changes) && changes[*ci+1].depth > to && changes[*ci+1].depth < cur {
			next = changes[*ci+1].depth
		}
		if !o.decoZoneReached && cur >= o.depthStartOfDecoZone && next <= o.depthStartOfDecoZone {
			o.runTimeStartOfDecoZone = o.runTime + (o.depthStartOfDecoZone-cur)/(*rate)
			o.decoZoneReached = true
			for i := range o.cpt {
				o.cpt[i].PHeStartOfDecoZone = o.cpt[i].PHe
				o.cpt[i].PN2StartOfDecoZone = o.cpt[i].PN2
			}
		}
		if err := o.ascentDescent(cur, next, *rate, *mix, commit); err != nil {
			return err
		}
		cur = next
	}
}
