// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vpm

import (
	"math"

	"github.com/cpmech/godeco/gas"
	"github.com/cpmech/godeco/inp"
)

// NumCompartments is the number of tissue compartments
const NumCompartments = 16

// HalfTimeHe holds the helium half-times [min]
var HalfTimeHe = [NumCompartments]float64{
	1.88, 3.02, 4.72, 6.99, 10.21, 14.48, 20.53, 29.11,
	41.20, 55.19, 70.69, 90.34, 115.29, 147.42, 188.24, 240.03,
}

// HalfTimeN2 holds the nitrogen half-times [min]
var HalfTimeN2 = [NumCompartments]float64{
	5.0, 8.0, 12.5, 18.5, 27.0, 38.3, 54.3, 77.0,
	109.0, 146.0, 187.0, 239.0, 305.0, 390.0, 498.0, 635.0,
}

// Compartment holds the VPM-B state of one tissue compartment.
// Pressures and gradients are in the run units; radii in meters
type Compartment struct {

	// rate constants [1/min]
	KHe float64
	KN2 float64

	// gas loadings
	PHe        float64
	PN2        float64
	InitialPHe float64 // at the start of the running segment
	InitialPN2 float64

	// loading snapshots
	PHeStartOfAscent   float64
	PN2StartOfAscent   float64
	PHeStartOfDecoZone float64
	PN2StartOfDecoZone float64

	// critical radii [m]
	InitialCriticalRadiusHe  float64
	InitialCriticalRadiusN2  float64
	AdjustedCriticalRadiusHe float64
	AdjustedCriticalRadiusN2 float64
	RegeneratedRadiusHe      float64
	RegeneratedRadiusN2      float64

	// crushing-pressure history
	MaxCrushingPressureHe      float64
	MaxCrushingPressureN2      float64
	AdjustedCrushingPressureHe float64
	AdjustedCrushingPressureN2 float64

	// allowable supersaturation gradients
	InitialAllowableGradientHe float64
	InitialAllowableGradientN2 float64
	AllowableGradientHe        float64
	AllowableGradientN2        float64
	DecoGradientHe             float64
	DecoGradientN2             float64

	// onset of impermeability
	AmbPressureOnsetOfImperm float64
	GasTensionOnsetOfImperm  float64

	// phase-volume times [min]
	SurfacePhaseVolumeTime float64
	PhaseVolumeTime        float64
	LastPhaseVolumeTime    float64

	// largest supersaturation gradient seen during the final ascent
	MaxActualGradient float64
}

// init sets the rate constants, the critical radii from the settings
// and the surface-equilibrium gas loadings
func (o *Compartment) init(index int, set *inp.Settings, barometric, waterVapour float64) {
	o.KHe = math.Ln2 / HalfTimeHe[index]
	o.KN2 = math.Ln2 / HalfTimeN2[index]
	o.InitialCriticalRadiusHe = set.CriticalRadiusHeMicrons * 1e-6
	o.InitialCriticalRadiusN2 = set.CriticalRadiusN2Microns * 1e-6
	o.AdjustedCriticalRadiusHe = o.InitialCriticalRadiusHe
	o.AdjustedCriticalRadiusN2 = o.InitialCriticalRadiusN2
	o.PHe = 0
	o.PN2 = (barometric - waterVapour) * gas.AirFN2
}
