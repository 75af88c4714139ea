// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vpm

import (
	"math"

	"github.com/cpmech/godeco/gas"
	"github.com/cpmech/godeco/inp"
	"github.com/cpmech/godeco/phys"
)

// nuclearRegeneration lets the crushed bubble nuclei regenerate toward
// their adjusted critical radii over the elapsed dive time, and derives
// the adjusted crushing pressures from the ratio of the regenerated to
// the fully-crushed radii
func (o *DiveState) nuclearRegeneration(diveTime float64) {
	b := 2.0 * (o.gammaC - o.gamma)
	regen := math.Exp(-diveTime / o.regenTime)
	for i := range o.cpt {
		c := &o.cpt[i]

		crushPaHe := o.pascals(c.MaxCrushingPressureHe)
		endRadiusHe := 1.0 / (crushPaHe/b + 1.0/c.AdjustedCriticalRadiusHe)
		c.RegeneratedRadiusHe = c.AdjustedCriticalRadiusHe + (endRadiusHe-c.AdjustedCriticalRadiusHe)*regen
		if endRadiusHe == c.AdjustedCriticalRadiusHe {
			c.AdjustedCrushingPressureHe = 0
		} else {
			ratio := (endRadiusHe * (c.AdjustedCriticalRadiusHe - c.RegeneratedRadiusHe)) /
				(c.RegeneratedRadiusHe * (c.AdjustedCriticalRadiusHe - endRadiusHe))
			c.AdjustedCrushingPressureHe = o.fromPascals(crushPaHe * ratio)
		}

		crushPaN2 := o.pascals(c.MaxCrushingPressureN2)
		endRadiusN2 := 1.0 / (crushPaN2/b + 1.0/c.AdjustedCriticalRadiusN2)
		c.RegeneratedRadiusN2 = c.AdjustedCriticalRadiusN2 + (endRadiusN2-c.AdjustedCriticalRadiusN2)*regen
		if endRadiusN2 == c.AdjustedCriticalRadiusN2 {
			c.AdjustedCrushingPressureN2 = 0
		} else {
			ratio := (endRadiusN2 * (c.AdjustedCriticalRadiusN2 - c.RegeneratedRadiusN2)) /
				(c.RegeneratedRadiusN2 * (c.AdjustedCriticalRadiusN2 - endRadiusN2))
			c.AdjustedCrushingPressureN2 = o.fromPascals(crushPaN2 * ratio)
		}
	}
}

// calcInitialAllowableGradient sets the allowable supersaturation
// gradients from the regenerated radii:
//   g = 2·γ·(γc − γ) / (r·γc)
func (o *DiveState) calcInitialAllowableGradient() {
	for i := range o.cpt {
		c := &o.cpt[i]
		gPaHe := 2.0 * o.gamma * (o.gammaC - o.gamma) / (c.RegeneratedRadiusHe * o.gammaC)
		gPaN2 := 2.0 * o.gamma * (o.gammaC - o.gamma) / (c.RegeneratedRadiusN2 * o.gammaC)
		c.InitialAllowableGradientHe = o.fromPascals(gPaHe)
		c.InitialAllowableGradientN2 = o.fromPascals(gPaN2)
		c.AllowableGradientHe = c.InitialAllowableGradientHe
		c.AllowableGradientN2 = c.InitialAllowableGradientN2
	}
}

// boylesLawCompensation reduces the allowable gradients for the stop
// above deepStop: the nucleus that probed the first stop expands on
// ascent following Boyle's law, so the tolerated gradient shrinks with
// the ratio of the first-stop to the expanded radius
func (o *DiveState) boylesLawCompensation(firstStop, deepStop, stepSize float64) error {
	nextStop := deepStop - stepSize
	ambFirstPa := o.pascals(o.ambient(firstStop))
	ambNextPa := o.pascals(o.ambient(nextStop))
	b := -2.0 * o.gamma
	for i := range o.cpt {
		c := &o.cpt[i]

		gradPaHe := o.pascals(c.AllowableGradientHe)
		r1 := 2.0 * o.gamma / gradPaHe
		cc := (ambFirstPa + 2.0*o.gamma/r1) * r1 * r1 * r1
		r2, err := radiusRootFinder(ambNextPa, b, cc, r1, r1*math.Cbrt(ambFirstPa/ambNextPa))
		if err != nil {
			return err
		}
		c.DecoGradientHe = c.AllowableGradientHe * r1 / r2

		gradPaN2 := o.pascals(c.AllowableGradientN2)
		r1 = 2.0 * o.gamma / gradPaN2
		cc = (ambFirstPa + 2.0*o.gamma/r1) * r1 * r1 * r1
		r2, err = radiusRootFinder(ambNextPa, b, cc, r1, r1*math.Cbrt(ambFirstPa/ambNextPa))
		if err != nil {
			return err
		}
		c.DecoGradientN2 = c.AllowableGradientN2 * r1 / r2
	}
	return nil
}

// criticalVolume relaxes the allowable gradients so that the
// integrated supersaturation over the phase-volume time matches the
// critical volume hypothesis with parameter lambda
func (o *DiveState) criticalVolume(decoPhaseVolumeTime float64) {
	lambdaPa := o.lambda / 33.0 * atmPa
	for i := range o.cpt {
		c := &o.cpt[i]
		pvt := decoPhaseVolumeTime + c.SurfacePhaseVolumeTime
		c.PhaseVolumeTime = pvt
		if pvt <= 0 {
			continue
		}

		adjCrushPaHe := o.pascals(c.AdjustedCrushingPressureHe)
		initGradPaHe := o.pascals(c.InitialAllowableGradientHe)
		bHe := initGradPaHe + lambdaPa*o.gamma/(o.gammaC*pvt)
		cHe := o.gamma * o.gamma * lambdaPa * adjCrushPaHe / (o.gammaC * o.gammaC * pvt)
		c.AllowableGradientHe = o.fromPascals((bHe + math.Sqrt(bHe*bHe-4.0*cHe)) / 2.0)

		adjCrushPaN2 := o.pascals(c.AdjustedCrushingPressureN2)
		initGradPaN2 := o.pascals(c.InitialAllowableGradientN2)
		bN2 := initGradPaN2 + lambdaPa*o.gamma/(o.gammaC*pvt)
		cN2 := o.gamma * o.gamma * lambdaPa * adjCrushPaN2 / (o.gammaC * o.gammaC * pvt)
		c.AllowableGradientN2 = o.fromPascals((bN2 + math.Sqrt(bN2*bN2-4.0*cN2)) / 2.0)
	}
}

// calcSurfacePhaseVolumeTime integrates the supersaturation gradient
// over the surface off-gassing, normalized by the surfacing gradient.
// Three branches depending on whether the residual nitrogen tension
// exceeds the surface inspired nitrogen pressure
func (o *DiveState) calcSurfacePhaseVolumeTime() {
	surfInspN2 := (o.barometric - o.waterVapour) * gas.AirFN2
	for i := range o.cpt {
		c := &o.cpt[i]
		surfacing := c.PHe + c.PN2 - surfInspN2
		switch {
		case c.PN2 > surfInspN2:
			c.SurfacePhaseVolumeTime = (c.PHe/c.KHe + (c.PN2-surfInspN2)/c.KN2) / surfacing
		case c.PHe > 0 && surfacing >= 0:
			decayTime := 1.0 / (c.KN2 - c.KHe) * math.Log((surfInspN2-c.PN2)/c.PHe)
			integral := c.PHe/c.KHe*(1.0-math.Exp(-c.KHe*decayTime)) +
				(c.PN2-surfInspN2)/c.KN2*(1.0-math.Exp(-c.KN2*decayTime))
			if surfacing > 0 {
				c.SurfacePhaseVolumeTime = integral / surfacing
			} else {
				c.SurfacePhaseVolumeTime = 0
			}
		default:
			c.SurfacePhaseVolumeTime = 0
		}
	}
}

// vpmRepetitive adjusts the critical radii for the next dive of a
// repetitive series: compartments whose actual gradient exceeded the
// initial allowable value probed new, smaller nuclei into existence,
// which regenerate toward the initial radii over the surface interval.
// Crushing history is reset for the new dive
func (o *DiveState) vpmRepetitive(surfaceInterval float64) {
	regen := math.Exp(-surfaceInterval / o.regenTime)
	for i := range o.cpt {
		c := &o.cpt[i]
		maxGradPa := o.pascals(c.MaxActualGradient)

		if c.MaxActualGradient > c.InitialAllowableGradientHe {
			newRadius := 2.0 * o.gamma * (o.gammaC - o.gamma) / (maxGradPa * o.gammaC)
			c.AdjustedCriticalRadiusHe = c.InitialCriticalRadiusHe + (newRadius-c.InitialCriticalRadiusHe)*regen
		} else {
			c.AdjustedCriticalRadiusHe = c.InitialCriticalRadiusHe
		}
		if c.MaxActualGradient > c.InitialAllowableGradientN2 {
			newRadius := 2.0 * o.gamma * (o.gammaC - o.gamma) / (maxGradPa * o.gammaC)
			c.AdjustedCriticalRadiusN2 = c.InitialCriticalRadiusN2 + (newRadius-c.InitialCriticalRadiusN2)*regen
		} else {
			c.AdjustedCriticalRadiusN2 = c.InitialCriticalRadiusN2
		}

		c.MaxActualGradient = 0
		c.MaxCrushingPressureHe = 0
		c.MaxCrushingPressureN2 = 0
	}
}

// altitudeDive simulates the ascent to the dive altitude for a
// non-acclimatized diver: compartments equilibrate at the starting
// altitude, off-gas during the ascent and the waiting time, and the
// critical radii expand under the supersaturation gradient on arrival
// (clamped at the onset of impermeability)
func (o *DiveState) altitudeDive(alt *inp.Altitude) error {
	acclimatized, err := inp.Toggle("diver_acclimatized_at_altitude", alt.DiverAcclimatizedAtAltitude)
	if err != nil {
		return err
	}
	if acclimatized {
		return nil // loadings are already equilibrated at the dive altitude
	}
	startingBar := o.barometricPressure(alt.StartingAcclimatizedAltitude)
	ascentTime := alt.AscentToAltitudeHours * 60.0
	rate := (o.barometric - startingBar) / ascentTime
	inspN2Start := (startingBar - o.waterVapour) * gas.AirFN2
	b := 2.0 * (o.gammaC - o.gamma)
	gradientOnset := o.gradientOnsetAtm * o.unitsFactor
	for i := range o.cpt {
		c := &o.cpt[i]
		c.PHe = 0
		c.PN2 = phys.Schreiner(inspN2Start, inspN2Start, ascentTime, HalfTimeN2[i], rate*gas.AirFN2)

		if gradient := c.PHe + c.PN2 + o.otherGases - o.barometric; gradient > 0 {
			gPa := o.pascals(math.Min(gradient, gradientOnset))
			if denomHe := 1.0/c.AdjustedCriticalRadiusHe - gPa/b; denomHe > 0 {
				c.AdjustedCriticalRadiusHe = 1.0 / denomHe
			}
			if denomN2 := 1.0/c.AdjustedCriticalRadiusN2 - gPa/b; denomN2 > 0 {
				c.AdjustedCriticalRadiusN2 = 1.0 / denomN2
			}
		}

		inspN2 := (o.barometric - o.waterVapour) * gas.AirFN2
		c.PN2 = phys.Haldane(c.PN2, inspN2, HalfTimeN2[i], alt.HoursAtAltitudeBeforeDive*60.0)
	}
	return nil
}
