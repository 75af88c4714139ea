// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package gas implements the breathing-mix model with the derived
// depth queries: maximum operating depth, equivalent narcotic depth
// and equivalent air depth
package gas

import (
	"github.com/cpmech/godeco/phys"
	"github.com/cpmech/godeco/plan"
)

// fraction of nitrogen in air
const AirFN2 = 0.79

// closureTol absorbs binary rounding of decimal gas fractions
const closureTol = 1e-6

// Mix is an inert-gas breathing mix. FO2 + FHe + FN2 = 1
type Mix struct {
	FO2 float64 // fraction of oxygen
	FHe float64 // fraction of helium
	FN2 float64 // fraction of nitrogen
}

// New returns a mix with FN2 derived from the oxygen and helium fractions
func New(fO2, fHe float64) (Mix, error) {
	if fO2 < 0 || fO2 > 1 || fHe < 0 || fHe > 1 {
		return Mix{}, plan.CfgErr("gas fractions must lie within [0,1]: fO2=%g, fHe=%g", fO2, fHe)
	}
	fN2 := 1.0 - fO2 - fHe
	if fN2 < -closureTol {
		return Mix{}, plan.CfgErr("gas fractions sum beyond unity: fO2=%g, fHe=%g", fO2, fHe)
	}
	if fN2 < 0 {
		fN2 = 0
	}
	return Mix{FO2: fO2, FHe: fHe, FN2: fN2}, nil
}

// MustNew is like New but panics on invalid fractions; for literals
func MustNew(fO2, fHe float64) Mix {
	m, err := New(fO2, fHe)
	if err != nil {
		panic(err)
	}
	return m
}

// Mod returns the maximum operating depth [m]: the depth at which the
// partial pressure of oxygen reaches maxPpO2 [bar]
func (o Mix) Mod(maxPpO2 float64, freshWater bool) float64 {
	return phys.PressureToDepth(maxPpO2/o.FO2, freshWater)
}

// End returns the equivalent narcotic depth [m] at the given depth,
// with helium assigned a narcotic factor of zero and oxygen and
// nitrogen a factor of one
func (o Mix) End(depth float64, freshWater bool) float64 {
	pNarcotic := phys.DepthToPressure(depth, freshWater) * (o.FO2 + o.FN2)
	return phys.PressureToDepth(pNarcotic, freshWater)
}

// Ead returns the equivalent air depth [m]: the depth at which air
// carries the same nitrogen partial pressure as this mix at depth
func (o Mix) Ead(depth float64, freshWater bool) float64 {
	pN2 := phys.DepthToPressure(depth, freshWater) * o.FN2
	return phys.PressureToDepth(pN2/AirFN2, freshWater)
}
