// Package sim implements the per-tick simulation kernel: spatial index
// rebuild, gravity integration, life evaluation, and resource accrual, in
// that order, synchronously within one tick.
package sim

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	opensimplex "github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/solhaven/stargarden/components"
	"github.com/solhaven/stargarden/config"
	"github.com/solhaven/stargarden/economy"
	"github.com/solhaven/stargarden/systems"
	"github.com/solhaven/stargarden/telemetry"
)

// Inputs is the immutable per-tick snapshot of externally owned values:
// the physics constants from the configuration surface and the
// meta-progression multipliers from research. The kernel reads nothing
// through globals; whoever drives it hands over a fresh snapshot each tick.
type Inputs struct {
	Physics         config.PhysicsConfig
	SpawnMultiplier float64
	EvolutionSpeed  float64
}

// Options configures a new simulation.
type Options struct {
	Seed      int64
	Config    *config.Config
	LogStats  bool
	OutputDir string
}

// Sim owns the body roster and the resource ledger, and advances them one
// tick at a time. It never creates or destroys bodies during a tick; the
// host boundary (AddBody/RemoveBody) is the only membership path.
type Sim struct {
	world *ecs.World
	rng   *rand.Rand

	bodyMapper   *ecs.Map3[components.Position, components.Velocity, components.Body]
	planetMapper *ecs.Map4[components.Position, components.Velocity, components.Body, components.Life]

	bodyFilter *ecs.Filter3[components.Position, components.Velocity, components.Body]
	lifeFilter *ecs.Filter2[components.Body, components.Life]

	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	bodyMap *ecs.Map1[components.Body]
	lifeMap *ecs.Map1[components.Life]

	grid   *systems.SpatialGrid
	rules  systems.LifeRules
	tuning economy.Tuning
	ledger economy.Ledger

	habitat    opensimplex.Noise
	noiseScale float64

	// meanSpeed is the smoothed mean speed of moving bodies, the raw input
	// to the ambient activity factor.
	meanSpeed float64

	tick   int64
	dt     float64 // nominal seconds per tick, for time conversions
	nextID uint32

	// Reusable per-tick buffers
	scratch []ecs.Entity
	intents []moveIntent

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool
}

// New creates a simulation from the given options. The spatial grid is
// sized once from the configured world radius and never re-tuned.
func New(opts Options) (*Sim, error) {
	cfg := opts.Config
	world := ecs.NewWorld()

	s := &Sim{
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),

		bodyMapper: ecs.NewMap3[
			components.Position,
			components.Velocity,
			components.Body,
		](world),
		planetMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Life,
		](world),
		bodyFilter: ecs.NewFilter3[
			components.Position,
			components.Velocity,
			components.Body,
		](world),
		lifeFilter: ecs.NewFilter2[
			components.Body,
			components.Life,
		](world),

		posMap:  ecs.NewMap1[components.Position](world),
		velMap:  ecs.NewMap1[components.Velocity](world),
		bodyMap: ecs.NewMap1[components.Body](world),
		lifeMap: ecs.NewMap1[components.Life](world),

		grid:       systems.NewSpatialGrid(cfg.Physics.BoundaryRadius),
		habitat:    opensimplex.NewNormalized(opts.Seed),
		noiseScale: cfg.Universe.NoiseScale,
		dt:         cfg.Physics.DT,

		rules: systems.LifeRules{
			SpawnBaseChance:   cfg.Life.SpawnBaseChance,
			AdvanceBaseChance: cfg.Life.AdvanceBaseChance,
			SeedPopulation:    cfg.Life.SeedPopulation,
			GrowthRates:       cfg.Derived.GrowthRates,
		},
		tuning: economy.Tuning{
			DustRate:           cfg.Resources.DustRate,
			CometRate:          cfg.Resources.CometRate,
			EnergyPerMass:      cfg.Resources.EnergyPerMass,
			OrganicByStage:     cfg.Derived.OrganicRates,
			BiomassByStage:     cfg.Derived.BiomassRates,
			CognitionPerCapita: cfg.Resources.CognitionPerCapita,
			ActivityHalfSpeed:  cfg.Resources.ActivityHalfSpeed,
			ActivitySmoothing:  cfg.Resources.ActivitySmoothing,
		},

		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.DT),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats:  opts.LogStats,
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	s.output = output

	if err := s.output.WriteConfig(cfg); err != nil {
		slog.Warn("config snapshot write failed", "error", err)
	}

	return s, nil
}

// Tick advances the world by dt seconds. dt must already be clamped and
// speed-scaled by the host; a zero dt is a no-op by construction. The four
// passes run in a fixed order and to completion: no caller observes a
// partially updated roster.
func (s *Sim) Tick(dt float64, in Inputs) {
	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseSpatialGrid)
	s.rebuildGrid()

	s.perf.StartPhase(telemetry.PhaseGravity)
	s.updateGravity(dt, in.Physics)

	s.perf.StartPhase(telemetry.PhaseLife)
	s.updateLife(dt, in)

	s.perf.StartPhase(telemetry.PhaseResources)
	s.updateResources(dt)

	s.tick++

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()
	s.perf.EndTick()
}

// TickCount returns the number of completed ticks.
func (s *Sim) TickCount() int64 {
	return s.tick
}

// BodyCount returns the current roster size.
func (s *Sim) BodyCount() int {
	n := 0
	query := s.bodyFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// ResourceTotal returns the credited whole-unit total for one resource
// kind. This is the only economy-facing read; fractional carries stay
// inside the ledger.
func (s *Sim) ResourceTotal(k economy.Kind) uint64 {
	return s.ledger.Total(k)
}

// ResourceTotals returns all credited totals.
func (s *Sim) ResourceTotals() [economy.NumKinds]uint64 {
	return s.ledger.Totals()
}

// Census returns the current roster composition and biosphere counts.
func (s *Sim) Census() telemetry.RosterCounts {
	rc, _ := s.census()
	return rc
}

// Close flushes and closes telemetry output.
func (s *Sim) Close() error {
	return s.output.Close()
}

// census samples roster composition, biosphere state, and body speeds for
// telemetry.
func (s *Sim) census() (telemetry.RosterCounts, []float64) {
	var rc telemetry.RosterCounts
	speeds := make([]float64, 0, 64)

	query := s.bodyFilter.Query()
	for query.Next() {
		_, vel, body := query.Get()
		rc.ByKind[body.Kind]++
		if !body.Static {
			speeds = append(speeds, r3.Norm(vel.Vec))
		}
	}

	lq := s.lifeFilter.Query()
	for lq.Next() {
		body, life := lq.Get()
		if body.Kind != components.KindPlanet || !life.HasLife {
			continue
		}
		rc.LivingPlanets++
		rc.ByStage[life.Stage]++
		rc.TotalPopulation += life.Population
	}

	return rc, speeds
}

// flushTelemetry emits a stats window when due.
func (s *Sim) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}

	roster, speeds := s.census()
	stats := s.collector.Flush(s.tick, roster, speeds, s.ledger.Totals(), s.activityFactor())

	if s.logStats {
		stats.Log()
	}
	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Warn("telemetry write failed", "error", err)
	}
	if err := s.output.WritePerf(s.perf.Stats(), s.tick); err != nil {
		slog.Warn("perf write failed", "error", err)
	}
}
