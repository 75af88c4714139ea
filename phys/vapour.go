// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import "math"

// Antoine equation constants for water (valid between 1 and 100 °C)
const (
	antoineA = 8.07131
	antoineB = 1730.63
	antoineC = 233.426
)

// breathTemperature is the temperature of exhaled breath [°C]
const breathTemperature = 35.2

// WaterVapourPressure returns the saturated water vapour pressure
// [bar] at temperature T [°C] via the Antoine equation
func WaterVapourPressure(T float64) float64 {
	mmHg := math.Pow(10.0, antoineA-antoineB/(antoineC+T))
	return MmHgToBar(mmHg)
}

// LungWaterVapourPressure is the water vapour partial pressure in the
// lungs [bar], about 0.0567 bar
var LungWaterVapourPressure = WaterVapourPressure(breathTemperature)
