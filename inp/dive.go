// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.dive) JSON file:
// the dive list with gas-mix summaries and profile codes, the altitude
// block and the VPM-B settings block
package inp

import (
	"encoding/json"

	"github.com/cpmech/godeco/plan"
	"github.com/cpmech/gosl/io"
)

// toggle values accepted by on/off settings
const (
	On  = "yes"
	Off = "no"
)

// altitude ceilings (Everest) [ft and m]
const (
	maxAltitudeFt = 29029.0
	maxAltitudeM  = 8848.0
)

// GasSummary holds one breathing mix of a dive. The three fractions
// must sum to one
type GasSummary struct {
	FractionO2 float64 `json:"fraction_O2"` // fraction of oxygen
	FractionHe float64 `json:"fraction_He"` // fraction of helium
	FractionN2 float64 `json:"fraction_N2"` // fraction of nitrogen
}

// AscentChange holds one ascent-parameter change of a decompression
// profile: from StartingDepth upward, breathe Gasmix and ascend at
// Rate with stops spaced StepSize apart. Depths and step sizes are in
// the native units (fsw or msw) of the run
type AscentChange struct {
	StartingDepth float64 `json:"starting_depth"` // depth at which this change takes effect
	Gasmix        int     `json:"gasmix"`         // 1-based index into the gas-mix summary
	Rate          float64 `json:"rate"`           // ascent rate (negative, units/min)
	StepSize      float64 `json:"step_size"`      // stop spacing (units)
}

// ProfileCode holds one entry of a dive profile. Code 1 is a depth
// change, code 2 a constant-depth exposure, code 99 starts the
// decompression calculation
type ProfileCode struct {
	ProfileCode           int             `json:"profile_code"`               // 1, 2 or 99
	StartingDepth         float64         `json:"starting_depth"`             // code 1
	EndingDepth           float64         `json:"ending_depth"`               // code 1
	Rate                  float64         `json:"rate"`                       // code 1 (units/min, negative upward)
	Depth                 float64         `json:"depth"`                      // code 2
	RunTimeAtEndOfSegment float64         `json:"run_time_at_end_of_segment"` // code 2 (min)
	Gasmix                int             `json:"gasmix"`                     // codes 1 and 2
	AscentSummary         []*AscentChange `json:"ascent_summary"`             // code 99
}

// Dive holds one dive of a repetitive series
type Dive struct {
	Desc                       string         `json:"desc"`                          // description of dive
	NumGasMixes                int            `json:"num_gas_mixes"`                 // number of entries in the summary
	GasmixSummary              []*GasSummary  `json:"gasmix_summary"`                // breathing mixes
	ProfileCodes               []*ProfileCode `json:"profile_codes"`                 // profile entries
	RepetitiveCode             int            `json:"repetitive_code"`               // 1 => another dive follows
	SurfaceIntervalTimeMinutes float64        `json:"surface_interval_time_minutes"` // before the next dive
}

// Altitude holds the altitude block
type Altitude struct {
	AltitudeOfDive               float64 `json:"altitude_of_dive"`                // ft (fsw) or m (msw)
	DiverAcclimatizedAtAltitude  string  `json:"diver_acclimatized_at_altitude"`  // yes/no
	StartingAcclimatizedAltitude float64 `json:"starting_acclimatized_altitude"`  // where the diver came from
	AscentToAltitudeHours        float64 `json:"ascent_to_altitude_hours"`        // travel time
	HoursAtAltitudeBeforeDive    float64 `json:"hours_at_altitude_before_dive"`   // waiting time
}

// Settings holds the VPM-B settings block
type Settings struct {
	Units                     string  `json:"units"`                        // "fsw" or "msw"
	AltitudeDiveAlgorithm     string  `json:"altitude_dive_algorithm"`      // yes/no
	MinimumDecoStopTime       float64 `json:"minimum_deco_stop_time"`       // min
	CriticalRadiusN2Microns   float64 `json:"critical_radius_n2_microns"`   // within [0.2, 1.35]
	CriticalRadiusHeMicrons   float64 `json:"critical_radius_he_microns"`   // within [0.2, 1.35]
	CriticalVolumeAlgorithm   string  `json:"critical_volume_algorithm"`    // yes/no
	CritVolumeParameterLambda float64 `json:"crit_volume_parameter_lambda"` // fsw·min
	GradientOnsetOfImpermAtm  float64 `json:"gradient_onset_of_imperm_atm"` // atm
	SurfaceTensionGamma       float64 `json:"surface_tension_gamma"`        // N/m
	SkinCompressionGammaC     float64 `json:"skin_compression_gammac"`      // N/m
	RegenerationTimeConstant  float64 `json:"regeneration_time_constant"`   // min
	PressureOtherGasesMmHg    float64 `json:"pressure_other_gases_mmhg"`    // mmHg
}

// Config holds the whole input of a batch run
type Config struct {
	Input    []*Dive   `json:"input"`
	Altitude *Altitude `json:"altitude"`
	Settings *Settings `json:"settings"`
}

// SetDefault sets the nominal VPM-B settings
func (o *Settings) SetDefault() {
	o.Units = "msw"
	o.AltitudeDiveAlgorithm = Off
	o.MinimumDecoStopTime = 1.0
	o.CriticalRadiusN2Microns = 0.55
	o.CriticalRadiusHeMicrons = 0.45
	o.CriticalVolumeAlgorithm = On
	o.CritVolumeParameterLambda = 6500.0
	o.GradientOnsetOfImpermAtm = 8.2
	o.SurfaceTensionGamma = 0.0179
	o.SkinCompressionGammaC = 0.257
	o.RegenerationTimeConstant = 20160.0
	o.PressureOtherGasesMmHg = 102.0
}

// SetDefault sets a sea-level acclimatized diver
func (o *Altitude) SetDefault() {
	o.AltitudeOfDive = 0
	o.DiverAcclimatizedAtAltitude = On
	o.StartingAcclimatizedAltitude = 0
	o.AscentToAltitudeHours = 0
	o.HoursAtAltitudeBeforeDive = 0
}

// Toggle parses a yes/no setting
func Toggle(name, value string) (bool, error) {
	switch value {
	case On:
		return true, nil
	case Off:
		return false, nil
	}
	return false, plan.CfgErr("%s must be %q or %q: %q", name, On, Off, value)
}

// UnitsFactor returns the pressure units per atmosphere: 33 for fsw,
// 10.1325 for msw
func (o *Settings) UnitsFactor() (float64, error) {
	switch o.Units {
	case "fsw":
		return 33.0, nil
	case "msw":
		return 10.1325, nil
	}
	return 0, plan.CfgErr("units must be \"fsw\" or \"msw\": %q", o.Units)
}

// Validate checks the settings block
func (o *Settings) Validate() error {
	if _, err := o.UnitsFactor(); err != nil {
		return err
	}
	if _, err := Toggle("altitude_dive_algorithm", o.AltitudeDiveAlgorithm); err != nil {
		return err
	}
	if _, err := Toggle("critical_volume_algorithm", o.CriticalVolumeAlgorithm); err != nil {
		return err
	}
	for _, r := range []struct {
		name  string
		value float64
	}{
		{"critical_radius_n2_microns", o.CriticalRadiusN2Microns},
		{"critical_radius_he_microns", o.CriticalRadiusHeMicrons},
	} {
		if r.value < 0.2 || r.value > 1.35 {
			return plan.CfgErr("%s must lie within [0.2, 1.35]: %g", r.name, r.value)
		}
	}
	if o.RegenerationTimeConstant <= 0 {
		return plan.CfgErr("regeneration_time_constant must be positive: %g", o.RegenerationTimeConstant)
	}
	if o.MinimumDecoStopTime <= 0 {
		return plan.CfgErr("minimum_deco_stop_time must be positive: %g", o.MinimumDecoStopTime)
	}
	if o.SurfaceTensionGamma <= 0 || o.SkinCompressionGammaC <= o.SurfaceTensionGamma {
		return plan.CfgErr("surface tensions must satisfy 0 < gamma < gammaC: gamma=%g, gammaC=%g",
			o.SurfaceTensionGamma, o.SkinCompressionGammaC)
	}
	return nil
}

// Validate checks the altitude block against the settings
func (o *Altitude) Validate(set *Settings) error {
	acclimatized, err := Toggle("diver_acclimatized_at_altitude", o.DiverAcclimatizedAtAltitude)
	if err != nil {
		return err
	}
	maxAlt := maxAltitudeM
	if set.Units == "fsw" {
		maxAlt = maxAltitudeFt
	}
	if o.AltitudeOfDive < 0 || o.AltitudeOfDive > maxAlt {
		return plan.CfgErr("altitude_of_dive must lie within [0, %g]: %g", maxAlt, o.AltitudeOfDive)
	}
	useAlgorithm, _ := Toggle("altitude_dive_algorithm", set.AltitudeDiveAlgorithm)
	if useAlgorithm && !acclimatized {
		if o.AscentToAltitudeHours <= 0 {
			return plan.CfgErr("ascent_to_altitude_hours must be positive for a non-acclimatized diver: %g",
				o.AscentToAltitudeHours)
		}
		if o.StartingAcclimatizedAltitude >= o.AltitudeOfDive {
			return plan.CfgErr("starting_acclimatized_altitude must be below the dive altitude: %g >= %g",
				o.StartingAcclimatizedAltitude, o.AltitudeOfDive)
		}
		if o.StartingAcclimatizedAltitude < 0 {
			return plan.CfgErr("starting_acclimatized_altitude must be non-negative: %g",
				o.StartingAcclimatizedAltitude)
		}
	}
	return nil
}

// Validate checks one dive record
func (o *Dive) Validate() error {
	if o.NumGasMixes < 1 || o.NumGasMixes != len(o.GasmixSummary) {
		return plan.CfgErr("dive %q: num_gas_mixes (%d) must match the gasmix summary (%d entries)",
			o.Desc, o.NumGasMixes, len(o.GasmixSummary))
	}
	for i, g := range o.GasmixSummary {
		sum := g.FractionO2 + g.FractionHe + g.FractionN2
		if sum < 1.0-1e-6 || sum > 1.0+1e-6 {
			return plan.CfgErr("dive %q: fractions of gasmix %d sum to %g, not 1", o.Desc, i+1, sum)
		}
		if g.FractionO2 < 0 || g.FractionHe < 0 || g.FractionN2 < 0 {
			return plan.CfgErr("dive %q: fractions of gasmix %d must be non-negative", o.Desc, i+1)
		}
	}
	if o.RepetitiveCode != 0 && o.RepetitiveCode != 1 {
		return plan.PlanErr("dive %q: repetitive_code must be 0 or 1: %d", o.Desc, o.RepetitiveCode)
	}
	if len(o.ProfileCodes) == 0 {
		return plan.PlanErr("dive %q has no profile codes", o.Desc)
	}
	for _, p := range o.ProfileCodes {
		switch p.ProfileCode {
		case 1, 2:
			if p.Gasmix < 1 || p.Gasmix > o.NumGasMixes {
				return plan.PlanErr("dive %q: gasmix %d is not within the summary (1..%d)",
					o.Desc, p.Gasmix, o.NumGasMixes)
			}
		case 99:
			if len(p.AscentSummary) == 0 {
				return plan.PlanErr("dive %q: profile code 99 needs at least one ascent change", o.Desc)
			}
			for _, c := range p.AscentSummary {
				if c.Gasmix < 1 || c.Gasmix > o.NumGasMixes {
					return plan.PlanErr("dive %q: ascent gasmix %d is not within the summary (1..%d)",
						o.Desc, c.Gasmix, o.NumGasMixes)
				}
				if c.Rate >= 0 {
					return plan.PlanErr("dive %q: ascent rate must be negative: %g", o.Desc, c.Rate)
				}
				if c.StepSize <= 0 {
					return plan.PlanErr("dive %q: step_size must be positive: %g", o.Desc, c.StepSize)
				}
			}
		default:
			return plan.PlanErr("dive %q: profile_code must be 1, 2 or 99: %d", o.Desc, p.ProfileCode)
		}
	}
	return nil
}

// Validate checks the whole configuration
func (o *Config) Validate() error {
	if o.Settings == nil {
		o.Settings = new(Settings)
		o.Settings.SetDefault()
	}
	if o.Altitude == nil {
		o.Altitude = new(Altitude)
		o.Altitude.SetDefault()
	}
	if err := o.Settings.Validate(); err != nil {
		return err
	}
	if err := o.Altitude.Validate(o.Settings); err != nil {
		return err
	}
	if len(o.Input) == 0 {
		return plan.PlanErr("configuration has no dives")
	}
	for _, d := range o.Input {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// readFileNoPanic wraps io.ReadFile, which panics on a read error in this
// version of gosl, converting the panic back into a returned error
func readFileNoPanic(path string) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = plan.CfgErr("%v", r)
		}
	}()
	b = io.ReadFile(path)
	return
}

// ReadConfig reads and validates a (.dive) JSON configuration file
func ReadConfig(path string) (*Config, error) {
	b, err := readFileNoPanic(path)
	if err != nil {
		return nil, plan.CfgErr("cannot read configuration file %q", path)
	}
	o := new(Config)
	o.Settings = new(Settings)
	o.Settings.SetDefault()
	o.Altitude = new(Altitude)
	o.Altitude.SetDefault()
	if err := json.Unmarshal(b, o); err != nil {
		return nil, plan.CfgErr("cannot unmarshal configuration file %q: %v", path, err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}
