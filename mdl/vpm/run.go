// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vpm

import (
	"sort"

	"github.com/cpmech/godeco/gas"
	"github.com/cpmech/godeco/plan"
	"github.com/cpmech/gosl/io"
)

// Run processes the dives of the batch configuration in order,
// carrying tissue loadings and adjusted critical radii across surface
// intervals for repetitive series; the crushing history starts afresh
// with each dive. Returns one result per dive
func (o *DiveState) Run() ([]*plan.Result, error) {
	if o.cfg == nil {
		return nil, plan.PlanErr("dive state has no batch configuration: use NewDiveState")
	}
	var results []*plan.Result
	for _, d := range o.cfg.Input {
		o.mixes = o.mixes[:0]
		o.labels = o.labels[:0]
		for gi, g := range d.GasmixSummary {
			m, err := gas.New(g.FractionO2, g.FractionHe)
			if err != nil {
				return nil, err
			}
			o.mixes = append(o.mixes, m)
			o.labels = append(o.labels, io.Sf("mix %d", gi+1))
		}
		o.segments = nil
		o.warnings = nil
		o.runTime = 0
		o.currentDepth = 0

		for _, p := range d.ProfileCodes {
			switch p.ProfileCode {
			case 1:
				if err := o.ascentDescent(p.StartingDepth, p.EndingDepth, p.Rate, p.Gasmix-1, true); err != nil {
					return nil, err
				}
			case 2:
				segTime := p.RunTimeAtEndOfSegment - o.runTime
				if segTime <= 0 {
					return nil, plan.PlanErr("dive %q: run time at end of segment must increase: %g",
						d.Desc, p.RunTimeAtEndOfSegment)
				}
				if err := o.constantDepth(p.Depth, segTime, p.Gasmix-1, true); err != nil {
					return nil, err
				}
			case 99:
				changes := make([]change, len(p.AscentSummary))
				for i, a := range p.AscentSummary {
					changes[i] = change{depth: a.StartingDepth, mix: a.Gasmix - 1, rate: a.Rate, step: a.StepSize}
				}
				sort.Slice(changes, func(i, j int) bool { return changes[i].depth > changes[j].depth })
				if err := o.decompress(o.currentDepth, changes); err != nil {
					return nil, err
				}
			}
		}
		results = append(results, &plan.Result{Segments: o.segments.Collapse(), Warnings: o.warnings})

		if d.RepetitiveCode != 1 {
			break
		}
		if d.SurfaceIntervalTimeMinutes <= 0 {
			return nil, plan.PlanErr("dive %q: surface_interval_time_minutes must be positive for a repetitive series",
				d.Desc)
		}
		o.surfaceInterval(d.SurfaceIntervalTimeMinutes)
		o.vpmRepetitive(d.SurfaceIntervalTimeMinutes)
	}
	return results, nil
}
