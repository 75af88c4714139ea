// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vpm

import (
	"math"

	"github.com/cpmech/godeco/gas"
	"github.com/cpmech/godeco/phys"
	"github.com/cpmech/godeco/plan"
)

const (
	// maxRootIter caps all root-finding loops
	maxRootIter = 100

	// rootTimeTol is the bisection tolerance on differential time [min]
	rootTimeTol = 1e-3

	// radiusRootTol is the Newton/bisection tolerance on radius [m]
	radiusRootTol = 1e-11
)

// calcCrushingPressure updates the maximum crushing pressures after a
// descent from startDepth to endDepth [units] at rate [units/min].
// While the gradient across the bubble skin stays below the onset of
// impermeability the nuclei compress as permeable structures and the
// crushing pressure is the ambient-minus-tension gradient; beyond the
// onset the gas inside the nucleus obeys Boyle's law and the ending
// radius follows from the cubic r²·(A·r − B) = C
func (o *DiveState) calcCrushingPressure(startDepth, endDepth, rate float64, mi int) error {
	gradientOnset := o.gradientOnsetAtm * o.unitsFactor
	gradientOnsetPa := o.gradientOnsetAtm * atmPa
	startAmb := o.ambient(startDepth)
	endAmb := o.ambient(endDepth)
	b := 2.0 * (o.gammaC - o.gamma)
	m := o.mixes[mi]
	for i := range o.cpt {
		c := &o.cpt[i]
		startTension := c.InitialPHe + c.InitialPN2 + o.otherGases
		endTension := c.PHe + c.PN2 + o.otherGases
		endGradient := endAmb - endTension
		var crushHe, crushN2 float64
		if endGradient <= gradientOnset {
			crushHe = endGradient
			crushN2 = endGradient
		} else {
			startGradient := startAmb - startTension
			if startGradient == gradientOnset {
				c.AmbPressureOnsetOfImperm = startAmb
				c.GasTensionOnsetOfImperm = startTension
			}
			if startGradient < gradientOnset {
				if err := o.onsetOfImpermeability(startAmb, endAmb, rate, i, m); err != nil {
					return err
				}
			}
			endAmbPa := o.pascals(endAmb)
			ambOnsetPa := o.pascals(c.AmbPressureOnsetOfImperm)
			tensionOnsetPa := o.pascals(c.GasTensionOnsetOfImperm)
			var crushPa [2]float64
			for j, r0 := range [2]float64{c.InitialCriticalRadiusHe, c.InitialCriticalRadiusN2} {
				radiusOnset := 1.0 / (gradientOnsetPa/b + 1.0/r0)
				// the skin balance keeps its offset at the initial radius:
				// amb − P_in = B(1/r − 1/r0), with Boyle's law inside
				aa := endAmbPa + b/r0
				cc := tensionOnsetPa * radiusOnset * radiusOnset * radiusOnset
				endRadius, err := radiusRootFinder(aa, b, cc, b/aa, radiusOnset)
				if err != nil {
					return err
				}
				ratio := radiusOnset / endRadius
				crushPa[j] = gradientOnsetPa + (endAmbPa - ambOnsetPa) + tensionOnsetPa*(1.0-ratio*ratio*ratio)
			}
			crushHe = o.fromPascals(crushPa[0])
			crushN2 = o.fromPascals(crushPa[1])
		}
		c.MaxCrushingPressureHe = math.Max(c.MaxCrushingPressureHe, crushHe)
		c.MaxCrushingPressureN2 = math.Max(c.MaxCrushingPressureN2, crushN2)
	}
	return nil
}

// onsetOfImpermeability finds, by bisection over the segment time, the
// point of the descent at which the crushing gradient of compartment i
// reaches the onset of impermeability, capturing the ambient pressure
// and gas tension there
func (o *DiveState) onsetOfImpermeability(startAmb, endAmb, rate float64, i int, m gas.Mix) error {
	c := &o.cpt[i]
	gradientOnset := o.gradientOnsetAtm * o.unitsFactor
	inspHe := (startAmb - o.waterVapour) * m.FHe
	inspN2 := (startAmb - o.waterVapour) * m.FN2
	tensionAt := func(t float64) float64 {
		he := phys.Schreiner(c.InitialPHe, inspHe, t, HalfTimeHe[i], rate*m.FHe)
		n2 := phys.Schreiner(c.InitialPN2, inspN2, t, HalfTimeN2[i], rate*m.FN2)
		return he + n2 + o.otherGases
	}
	f := func(t float64) float64 {
		return startAmb + rate*t - tensionAt(t) - gradientOnset
	}
	low, high := 0.0, (endAmb-startAmb)/rate
	fLow, fHigh := f(low), f(high)
	if fLow*fHigh >= 0 {
		return plan.NumErr("onset of impermeability: root must lie within the segment brackets")
	}
	solved := false
	for it := 0; it < maxRootIter; it++ {
		t := 0.5 * (low + high)
		if fm := f(t); (fm < 0) == (fLow < 0) {
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
		return plan.NumErr("onset of impermeability search exceeded %d iterations", maxRootIter)
	}
	t := 0.5 * (low + high)
	c.AmbPressureOnsetOfImperm = startAmb + rate*t
	c.GasTensionOnsetOfImperm = tensionAt(t)
	return nil
}

// radiusRootFinder solves a·r³ − b·r² − c = 0 for r within
// [low, high] by the guarded Newton-Raphson/bisection hybrid. The
// bracket values must produce function values of opposite sign
func radiusRootFinder(a, b, c, low, high float64) (float64, error) {
	eval := func(r float64) (fv, df float64) {
		fv = a*r*r*r - b*r*r - c
		df = 3.0*a*r*r - 2.0*b*r
		return
	}
	fLow, _ := eval(low)
	fHigh, _ := eval(high)
	if fLow == 0 {
		return low, nil
	}
	if fHigh == 0 {
		return high, nil
	}
	if (fLow > 0) == (fHigh > 0) {
		return 0, plan.NumErr("radius root finder: root must lie within brackets")
	}
	xl, xh := low, high
	if fLow > 0 {
		xl, xh = high, low
	}
	r := 0.5 * (low + high)
	dxOld := math.Abs(high - low)
	dx := dxOld
	fv, df := eval(r)
	for it := 0; it < maxRootIter; it++ {
		if (((r-xh)*df-fv)*((r-xl)*df-fv) >= 0) || (math.Abs(2.0*fv) > math.Abs(dxOld*df)) {
			dxOld = dx
			dx = 0.5 * (xh - xl)
			r = xl + dx
			if xl == r {
				return r, nil
			}
		} else {
			dxOld = dx
			dx = fv / df
			prev := r
			r -= dx
			if prev == r {
				return r, nil
			}
		}
		if math.Abs(dx) < radiusRootTol {
			return r, nil
		}
		fv, df = eval(r)
		if fv < 0 {
			xl = r
		} else {
			xh = r
		}
	}
	return 0, plan.NumErr("radius root finder exceeded %d iterations", maxRootIter)
}
