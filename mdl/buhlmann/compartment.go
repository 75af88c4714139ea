// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buhlmann

import (
	"math"

	"github.com/cpmech/godeco/gas"
	"github.com/cpmech/godeco/phys"
)

// Compartment tracks the inert gas loading of one tissue compartment.
// The environment and water type are shared plan configuration held
// by value; compartments never point back into the plan
type Compartment struct {
	Coefs

	// state
	PN2    float64 // nitrogen tension [bar]
	PHe    float64 // helium tension [bar]
	PTotal float64 // total inert gas tension [bar]

	// shared configuration
	env   phys.Environment
	fresh bool
}

// Init sets the coefficients and the surface-equilibrium loading:
// nitrogen at the air fraction of the water-vapour-depleted surface
// pressure, no helium
func (o *Compartment) Init(c Coefs, env phys.Environment, freshWater bool) {
	o.Coefs = c
	o.env = env
	o.fresh = freshWater
	o.PN2 = (env.SurfacePressure - phys.LungWaterVapourPressure) * gas.AirFN2
	o.PHe = 0
	o.PTotal = o.PN2 + o.PHe
}

// AddDepthChange exposes the compartment to a depth change from d1 to
// d2 [m] over time [min] breathing the given fractions, applying the
// Schreiner equation per inert gas. Returns the change in total
// inert gas tension
func (o *Compartment) AddDepthChange(d1, d2, fO2, fHe, time float64) float64 {
	fN2 := 1.0 - fO2 - fHe
	prev := o.PTotal

	rateN2 := o.env.GasRateInBarsPerMinute(d1, d2, time, fN2, o.fresh)
	pInspN2 := o.env.GasPressureBreathingInBars(d2, fN2, o.fresh)
	o.PN2 = phys.Schreiner(o.PN2, pInspN2, time, o.N2HalfTime, rateN2)

	rateHe := o.env.GasRateInBarsPerMinute(d1, d2, time, fHe, o.fresh)
	pInspHe := o.env.GasPressureBreathingInBars(d2, fHe, o.fresh)
	o.PHe = phys.Schreiner(o.PHe, pInspHe, time, o.HeHalfTime, rateHe)

	o.PTotal = o.PN2 + o.PHe
	return o.PTotal - prev
}

// AddFlat exposes the compartment at constant depth [m] for time [min]
func (o *Compartment) AddFlat(depth, fO2, fHe, time float64) float64 {
	return o.AddDepthChange(depth, depth, fO2, fHe, time)
}

// Ceiling computes the ceiling depth [m] tolerated by this
// compartment at gradient factor gf, rounded up to the next whole
// meter. Values at or below zero mean the compartment tolerates the
// surface
func (o Compartment) Ceiling(gf float64) float64 {
	a := (o.N2A*o.PN2 + o.HeA*o.PHe) / o.PTotal
	b := (o.N2B*o.PN2 + o.HeB*o.PHe) / o.PTotal
	bars := (o.PTotal - a*gf) / (gf/b + 1.0 - gf)
	return math.Ceil(o.env.PressureToDepth(bars, o.fresh))
}
