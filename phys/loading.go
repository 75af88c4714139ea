// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import "math"

// Schreiner computes the inert gas pressure of a tissue compartment
// after exposure to a linearly changing inspired pressure.
//  pBegin   -- inert gas pressure in the compartment before the segment [bar]
//  pInsp    -- inspired inert gas pressure [bar]
//  t        -- segment time [min]
//  halfTime -- compartment half-time for this gas [min]
//  rate     -- rate of change of the inspired pressure [bar/min]
func Schreiner(pBegin, pInsp, t, halfTime, rate float64) float64 {
	k := math.Ln2 / halfTime
	return pInsp + rate*(t-1.0/k) - (pInsp-pBegin-rate/k)*math.Exp(-k*t)
}

// Haldane computes the inert gas pressure of a tissue compartment
// after exposure at constant inspired pressure; equivalent to
// Schreiner with rate = 0
func Haldane(pBegin, pInsp, halfTime, t float64) float64 {
	return pBegin + (pInsp-pBegin)*(1.0-math.Exp(-(math.Ln2/halfTime)*t))
}
