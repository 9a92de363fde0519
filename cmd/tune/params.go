// Package main provides CMA-ES tuning for life-emergence and resource
// accrual parameters.
package main

import (
	"github.com/solhaven/stargarden/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
// Growth rates are locked: they carry a strictly-increasing validation
// constraint that an unconstrained search would trip constantly.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Life emergence
			{Name: "spawn_base_chance", Path: "life.spawn_base_chance", Min: 0.0001, Max: 0.01, Default: 0.0005},
			{Name: "advance_base_chance", Path: "life.advance_base_chance", Min: 0.00005, Max: 0.005, Default: 0.0002},
			{Name: "seed_population", Path: "life.seed_population", Min: 10, Max: 1000, Default: 100},
			// Resource production
			{Name: "dust_rate", Path: "resources.dust_rate", Min: 0.005, Max: 0.1, Default: 0.02},
			{Name: "comet_rate", Path: "resources.comet_rate", Min: 0.01, Max: 0.2, Default: 0.05},
			{Name: "energy_per_mass", Path: "resources.energy_per_mass", Min: 0.00001, Max: 0.001, Default: 0.0001},
			{Name: "cognition_per_capita", Path: "resources.cognition_per_capita", Min: 0.000001, Max: 0.0001, Default: 0.00001},
			{Name: "activity_half_speed", Path: "resources.activity_half_speed", Min: 1.0, Max: 20.0, Default: 5.0},
			// Universe composition
			{Name: "moon_chance", Path: "universe.moon_chance", Min: 0.0, Max: 1.0, Default: 0.4},
			{Name: "noise_scale", Path: "universe.noise_scale", Min: 0.0005, Max: 0.02, Default: 0.004},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	i := 0

	cfg.Life.SpawnBaseChance = clamped[i]
	i++
	cfg.Life.AdvanceBaseChance = clamped[i]
	i++
	cfg.Life.SeedPopulation = clamped[i]
	i++

	cfg.Resources.DustRate = clamped[i]
	i++
	cfg.Resources.CometRate = clamped[i]
	i++
	cfg.Resources.EnergyPerMass = clamped[i]
	i++
	cfg.Resources.CognitionPerCapita = clamped[i]
	i++
	cfg.Resources.ActivityHalfSpeed = clamped[i]
	i++

	cfg.Universe.MoonChance = clamped[i]
	i++
	cfg.Universe.NoiseScale = clamped[i]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Life.SpawnBaseChance,
		cfg.Life.AdvanceBaseChance,
		cfg.Life.SeedPopulation,
		cfg.Resources.DustRate,
		cfg.Resources.CometRate,
		cfg.Resources.EnergyPerMass,
		cfg.Resources.CognitionPerCapita,
		cfg.Resources.ActivityHalfSpeed,
		cfg.Universe.MoonChance,
		cfg.Universe.NoiseScale,
	}
}
