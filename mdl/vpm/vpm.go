// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package vpm implements the Varying Permeability Model (VPM-B)
// decompression algorithm after Yount and Baker: gas loadings over the
// dive profile, crushing-pressure tracking of bubble nuclei, nuclear
// regeneration, allowable supersaturation gradients with Boyle's-Law
// compensation, and the critical-volume iteration that converges on
// the final ascent schedule.
//
// Depths are expressed in the pressure units of the run (fsw or msw);
// the absolute-pascal form p/unitsFactor·atm is used inside the
// closed-form bubble mechanics
package vpm

import (
	"math"

	"github.com/cpmech/godeco/gas"
	"github.com/cpmech/godeco/inp"
	"github.com/cpmech/godeco/phys"
	"github.com/cpmech/godeco/plan"
)

// atmPa is one standard atmosphere [Pa]
const atmPa = 101325.0

// barPerAtm converts bar to atmospheres
const barPerAtm = 1.01325

// mmHgPerAtm is the mercury column of one atmosphere
const mmHgPerAtm = 760.0

// DiveState carries the full VPM-B state across the profile, the
// decompression calculation and repetitive dives. It is confined to
// one goroutine during a calculation
type DiveState struct {

	// resolved settings
	units            string  // "fsw" or "msw"
	unitsFactor      float64 // pressure units per atmosphere
	cvAlgorithm      bool    // critical-volume iteration enabled
	altAlgorithm     bool    // altitude-dive algorithm enabled
	minStopTime      float64 // minimum deco stop time [min]
	lambda           float64 // critical-volume parameter [fsw·min]
	gradientOnsetAtm float64 // gradient for onset of impermeability [atm]
	gamma            float64 // surface tension [N/m]
	gammaC           float64 // skin compression [N/m]
	regenTime        float64 // regeneration time constant [min]

	// derived ambient quantities [units]
	barometric  float64 // barometric pressure at the dive site
	waterVapour float64 // water vapour pressure in the lungs
	otherGases  float64 // constant partial pressure of other gases

	// compartment bank
	cpt [NumCompartments]Compartment

	// breathing mixes
	mixes  []gas.Mix
	labels []string

	// profile state
	currentDepth float64
	runTime      float64
	segments     plan.Segments
	warnings     []string

	// ascent bookkeeping
	depthStartOfDecoZone   float64
	runTimeStartOfAscent   float64
	runTimeStartOfDecoZone float64
	decoZoneReached        bool
	scheduleConverged      bool

	// batch input
	cfg *inp.Config
}

// NewDiveState validates the configuration and returns a state ready
// to Run the batch input
func NewDiveState(cfg *inp.Config) (*DiveState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o, err := newState(cfg.Settings, cfg.Altitude)
	if err != nil {
		return nil, err
	}
	o.cfg = cfg
	return o, nil
}

// newState resolves settings, computes the ambient quantities and
// initialises the compartment bank at surface equilibrium
func newState(set *inp.Settings, alt *inp.Altitude) (*DiveState, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	if err := alt.Validate(set); err != nil {
		return nil, err
	}
	o := new(DiveState)
	o.units = set.Units
	o.unitsFactor, _ = set.UnitsFactor()
	o.cvAlgorithm, _ = inp.Toggle("critical_volume_algorithm", set.CriticalVolumeAlgorithm)
	o.altAlgorithm, _ = inp.Toggle("altitude_dive_algorithm", set.AltitudeDiveAlgorithm)
	o.minStopTime = set.MinimumDecoStopTime
	o.lambda = set.CritVolumeParameterLambda
	o.gradientOnsetAtm = set.GradientOnsetOfImpermAtm
	o.gamma = set.SurfaceTensionGamma
	o.gammaC = set.SkinCompressionGammaC
	o.regenTime = set.RegenerationTimeConstant

	altitude := 0.0
	if o.altAlgorithm {
		altitude = alt.AltitudeOfDive
	}
	o.barometric = o.barometricPressure(altitude)
	o.waterVapour = phys.LungWaterVapourPressure / barPerAtm * o.unitsFactor
	o.otherGases = set.PressureOtherGasesMmHg / mmHgPerAtm * o.unitsFactor

	for i := range o.cpt {
		o.cpt[i].init(i, set, o.barometric, o.waterVapour)
	}
	if o.altAlgorithm {
		if err := o.altitudeDive(alt); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// barometricPressure computes the barometric pressure [units] at
// altitude [ft for fsw, m for msw] via the U.S. Standard Atmosphere
// (1976) troposphere relation
func (o *DiveState) barometricPressure(altitude float64) float64 {
	const (
		radiusEarthKm  = 6369.0   // [km]
		tempAtSeaLevel = 288.15   // [K]
		tempGradient   = -6.5     // [K/km]
		gmrFactor      = 34.1632  // g·M/R [K/km]
	)
	altKm := altitude / 1000.0
	if o.units == "fsw" {
		altKm = phys.FeetToMeters(altitude) / 1000.0
	}
	geopot := altKm * radiusEarthKm / (altKm + radiusEarthKm)
	temp := tempAtSeaLevel + tempGradient*geopot
	return o.unitsFactor * math.Pow(tempAtSeaLevel/temp, gmrFactor/tempGradient)
}

// pascals converts a pressure in run units to pascals
func (o *DiveState) pascals(p float64) float64 {
	return p / o.unitsFactor * atmPa
}

// fromPascals converts a pressure in pascals to run units
func (o *DiveState) fromPascals(pa float64) float64 {
	return pa / atmPa * o.unitsFactor
}

// ambient returns the absolute ambient pressure [units] at depth
func (o *DiveState) ambient(depth float64) float64 {
	return depth + o.barometric
}

// Warnings returns the non-fatal diagnostics collected so far
func (o *DiveState) Warnings() []string {
	return o.warnings
}
