// Package telemetry collects windowed simulation statistics and writes
// them to structured logs and CSV files.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Roster composition at window end
	Dust       int `csv:"dust"`
	Comets     int `csv:"comets"`
	Moons      int `csv:"moons"`
	Planets    int `csv:"planets"`
	Stars      int `csv:"stars"`
	BlackHoles int `csv:"black_holes"`

	// Biosphere state at window end
	LivingPlanets      int     `csv:"living_planets"`
	MicrobialPlanets   int     `csv:"microbial"`
	PlantPlanets       int     `csv:"plant"`
	AnimalPlanets      int     `csv:"animal"`
	IntelligentPlanets int     `csv:"intelligent"`
	TotalPopulation    float64 `csv:"total_population"`

	// Events during window
	LifeSpawns     int `csv:"life_spawns"`
	StageAdvances  int `csv:"stage_advances"`
	BoundaryClamps int `csv:"boundary_clamps"`

	// Economy
	CreditedRawMaterial uint64 `csv:"credited_raw_material"`
	CreditedEnergy      uint64 `csv:"credited_energy"`
	CreditedOrganic     uint64 `csv:"credited_organic"`
	CreditedBiomass     uint64 `csv:"credited_biomass"`
	CreditedCognition   uint64 `csv:"credited_cognition"`

	TotalRawMaterial uint64 `csv:"total_raw_material"`
	TotalEnergy      uint64 `csv:"total_energy"`
	TotalOrganic     uint64 `csv:"total_organic"`
	TotalBiomass     uint64 `csv:"total_biomass"`
	TotalCognition   uint64 `csv:"total_cognition"`

	// Kinematics (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	Activity  float64 `csv:"activity"`
}

// Log emits the window to slog.
func (ws WindowStats) Log() {
	slog.Info("stats window",
		"window_end", ws.WindowEndTick,
		"sim_time", ws.SimTimeSec,
		"planets", ws.Planets,
		"living", ws.LivingPlanets,
		"intelligent", ws.IntelligentPlanets,
		"population", ws.TotalPopulation,
		"life_spawns", ws.LifeSpawns,
		"stage_advances", ws.StageAdvances,
		"boundary_clamps", ws.BoundaryClamps,
		"total_raw_material", ws.TotalRawMaterial,
		"total_energy", ws.TotalEnergy,
		"total_organic", ws.TotalOrganic,
		"total_biomass", ws.TotalBiomass,
		"total_cognition", ws.TotalCognition,
		"speed_mean", ws.SpeedMean,
		"activity", ws.Activity,
	)
}

// SpeedStats computes the distribution of body speeds sampled at the end of
// a window. Returns all zeros for an empty sample.
func SpeedStats(speeds []float64) (mean, std, p50, p90 float64) {
	if len(speeds) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(speeds))
	copy(sorted, speeds)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		std = stat.StdDev(sorted, nil)
	}
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, std, p50, p90
}
