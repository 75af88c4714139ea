// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package plan defines the dive-plan building blocks shared by the
// decompression models: profile segments, computed schedules, and the
// error taxonomy of the engine
package plan

// Segment is one leg of a dive profile: a depth change or, when
// StartDepth == EndDepth, a flat exposure
type Segment struct {
	StartDepth float64 // [m] (or native pressure units in batch runs)
	EndDepth   float64 // [m]
	Gas        string  // gas label
	Time       float64 // [min]
}

// Flat tells if this segment is a constant-depth exposure
func (o Segment) Flat() bool {
	return o.StartDepth == o.EndDepth
}

// Segments is an ordered dive profile
type Segments []Segment

// Collapse merges adjacent flat segments at the same depth breathing
// the same gas. The result never contains two such neighbours
func (o Segments) Collapse() (res Segments) {
	for _, s := range o {
		if n := len(res); n > 0 {
			last := &res[n-1]
			if last.Flat() && s.Flat() && last.EndDepth == s.StartDepth && last.Gas == s.Gas {
				last.Time += s.Time
				continue
			}
		}
		res = append(res, s)
	}
	return
}

// RunTime returns the total duration of the profile [min]
func (o Segments) RunTime() (t float64) {
	for _, s := range o {
		t += s.Time
	}
	return
}

// Result holds a computed decompression schedule: the full dive plus
// the ascent legs and stops, with adjacent identical flats collapsed
type Result struct {
	Segments Segments
	Warnings []string // non-fatal diagnostics (e.g. clamped start of deco zone)
}

// Builder is the profile-building surface both planners expose
type Builder interface {
	AddBottomGas(label string, fO2, fHe float64) error
	AddDecoGas(label string, fO2, fHe float64) error
	AddFlat(depth float64, gas string, time float64) error
	AddDepthChange(startDepth, endDepth float64, gas string, time float64) error
}
