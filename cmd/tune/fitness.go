package main

import (
	"math"
	"sync"

	"github.com/solhaven/stargarden/components"
	"github.com/solhaven/stargarden/config"
	"github.com/solhaven/stargarden/sim"
	"github.com/solhaven/stargarden/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int64
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	bestFitness float64
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// sample is one periodic observation of a running simulation.
type sample struct {
	simSeconds    float64
	roster        telemetry.RosterCounts
	creditedUnits uint64 // sum over all resource kinds
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated quality score averaged over seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	qualities := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			samples := fe.runSimulation(x, s)
			qualities[idx] = computeQuality(samples)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, q := range qualities {
		total += q
	}
	avgQuality := total / float64(len(fe.seeds))
	fitness := -avgQuality

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
	}
	fe.lastQuality = avgQuality
	fe.mu.Unlock()

	return fitness
}

// samplesPerRun controls observation granularity. More samples give a
// finer pacing signal but cost nothing extra in sim work.
const samplesPerRun = 40

// runSimulation executes a single headless run and returns periodic samples.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) []sample {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	s, err := sim.New(sim.Options{Seed: seed, Config: cfg})
	if err != nil {
		return nil
	}
	defer s.Close()
	s.SeedUniverse(cfg.Physics, cfg.Universe)

	in := sim.Inputs{
		Physics:         cfg.Physics,
		SpawnMultiplier: cfg.Life.SpawnMultiplier,
		EvolutionSpeed:  cfg.Life.EvolutionSpeed,
	}

	dt := cfg.Physics.DT
	sampleEvery := fe.maxTicks / samplesPerRun
	if sampleEvery < 1 {
		sampleEvery = 1
	}

	samples := make([]sample, 0, samplesPerRun)
	for tick := int64(0); tick < fe.maxTicks; tick++ {
		s.Tick(dt, in)

		if (tick+1)%sampleEvery == 0 {
			var credited uint64
			for _, t := range s.ResourceTotals() {
				credited += t
			}
			samples = append(samples, sample{
				simSeconds:    float64(tick+1) * dt,
				roster:        s.Census(),
				creditedUnits: credited,
			})
		}
	}
	return samples
}

// copyConfig creates a fresh config seeded from the base values the
// tuner does not touch.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg, _ := config.Load("")

	cfg.Physics = fe.baseConfig.Physics
	cfg.Life = fe.baseConfig.Life
	cfg.Resources = fe.baseConfig.Resources
	cfg.Universe = fe.baseConfig.Universe
	cfg.Telemetry = fe.baseConfig.Telemetry
	cfg.Derived = fe.baseConfig.Derived

	return cfg
}

// Quality component weights.
const (
	qualityWeightLiving    = 0.30
	qualityWeightPacing    = 0.25
	qualityWeightDiversity = 0.25
	qualityWeightThrough   = 0.20

	// Targets: half the planets alive by run end, first emergence around
	// a fifth of the way in, and roughly 5 credited units per sim-second.
	targetLivingFraction = 0.5
	targetPacingFraction = 0.2
	targetUnitsPerSec    = 5.0
)

// computeQuality scores a run in [0, 1] from its sample series.
func computeQuality(samples []sample) float64 {
	if len(samples) == 0 {
		return 0
	}

	final := samples[len(samples)-1]

	// 1. Living planet fraction, peaked at the target. A run where every
	// planet lights up immediately scores as badly as a dead one.
	planets := final.roster.ByKind[components.KindPlanet]
	livingScore := 0.0
	if planets > 0 {
		frac := float64(final.roster.LivingPlanets) / float64(planets)
		d := (frac - targetLivingFraction) / 0.25
		livingScore = math.Exp(-d * d)
	}

	// 2. Emergence pacing: when did the first biosphere appear.
	pacingScore := 0.0
	for _, smp := range samples {
		if smp.roster.LivingPlanets > 0 {
			frac := smp.simSeconds / final.simSeconds
			d := (frac - targetPacingFraction) / 0.15
			pacingScore = math.Exp(-d * d)
			break
		}
	}

	// 3. Stage diversity: normalized entropy of the final stage histogram.
	diversityScore := stageEntropy(final.roster.ByStage)

	// 4. Resource throughput over the whole run, log-error against target.
	throughScore := 0.0
	if final.simSeconds > 0 && final.creditedUnits > 0 {
		rate := float64(final.creditedUnits) / final.simSeconds
		logErr := math.Log(rate / targetUnitsPerSec)
		throughScore = math.Exp(-logErr * logErr)
	}

	quality := qualityWeightLiving*livingScore +
		qualityWeightPacing*pacingScore +
		qualityWeightDiversity*diversityScore +
		qualityWeightThrough*throughScore

	return clamp01(quality)
}

// stageEntropy returns the Shannon entropy of the stage histogram,
// normalized so a uniform spread over all stages scores 1.
func stageEntropy(byStage [components.NumStages]int) float64 {
	total := 0
	for _, n := range byStage {
		total += n
	}
	if total == 0 {
		return 0
	}

	var h float64
	for _, n := range byStage {
		if n == 0 {
			continue
		}
		p := float64(n) / float64(total)
		h -= p * math.Log(p)
	}
	return h / math.Log(float64(components.NumStages))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
