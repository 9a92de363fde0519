package telemetry

import (
	"github.com/solhaven/stargarden/components"
	"github.com/solhaven/stargarden/economy"
)

// RosterCounts is a point-in-time census of the roster, sampled by the
// simulation at window end.
type RosterCounts struct {
	ByKind          [components.NumKinds]int
	LivingPlanets   int
	ByStage         [components.NumStages]int
	TotalPopulation float64
}

// Collector accumulates events within stats windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float64

	windowStartTick int64

	// Event counters for current window
	lifeSpawns     int
	stageAdvances  int
	boundaryClamps int
	credited       [economy.NumKinds]uint64
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordLifeSpawn records life emerging on a planet.
func (c *Collector) RecordLifeSpawn() {
	c.lifeSpawns++
}

// RecordStageAdvance records a biosphere advancing one stage.
func (c *Collector) RecordStageAdvance(components.Stage) {
	c.stageAdvances++
}

// RecordBoundaryClamp records a body clamped to the world boundary.
func (c *Collector) RecordBoundaryClamp() {
	c.boundaryClamps++
}

// RecordCredits records whole units credited to the economy this tick.
func (c *Collector) RecordCredits(credited [economy.NumKinds]uint64) {
	for k, n := range credited {
		c.credited[k] += n
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// roster, speeds, totals and activity are sampled by the caller at window
// end.
func (c *Collector) Flush(currentTick int64, roster RosterCounts, speeds []float64, totals [economy.NumKinds]uint64, activity float64) WindowStats {
	mean, std, p50, p90 := SpeedStats(speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Dust:       roster.ByKind[components.KindDust],
		Comets:     roster.ByKind[components.KindComet],
		Moons:      roster.ByKind[components.KindMoon],
		Planets:    roster.ByKind[components.KindPlanet],
		Stars:      roster.ByKind[components.KindStar],
		BlackHoles: roster.ByKind[components.KindBlackHole],

		LivingPlanets:      roster.LivingPlanets,
		MicrobialPlanets:   roster.ByStage[components.StageMicrobial],
		PlantPlanets:       roster.ByStage[components.StagePlant],
		AnimalPlanets:      roster.ByStage[components.StageAnimal],
		IntelligentPlanets: roster.ByStage[components.StageIntelligent],
		TotalPopulation:    roster.TotalPopulation,

		LifeSpawns:     c.lifeSpawns,
		StageAdvances:  c.stageAdvances,
		BoundaryClamps: c.boundaryClamps,

		CreditedRawMaterial: c.credited[economy.RawMaterial],
		CreditedEnergy:      c.credited[economy.Energy],
		CreditedOrganic:     c.credited[economy.OrganicMatter],
		CreditedBiomass:     c.credited[economy.Biomass],
		CreditedCognition:   c.credited[economy.Cognition],

		TotalRawMaterial: totals[economy.RawMaterial],
		TotalEnergy:      totals[economy.Energy],
		TotalOrganic:     totals[economy.OrganicMatter],
		TotalBiomass:     totals[economy.Biomass],
		TotalCognition:   totals[economy.Cognition],

		SpeedMean: mean,
		SpeedStd:  std,
		SpeedP50:  p50,
		SpeedP90:  p90,
		Activity:  activity,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.lifeSpawns = 0
	c.stageAdvances = 0
	c.boundaryClamps = 0
	c.credited = [economy.NumKinds]uint64{}

	return stats
}
