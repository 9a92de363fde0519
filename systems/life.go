package systems

import (
	"math/rand"

	"github.com/solhaven/stargarden/components"
)

// LifeRules bundles the tunable probabilities and growth curve of the life
// state machine. Chances are per tick and clamped to [0,1] at the point of
// the trial; growth rates must be monotone increasing by stage (validated
// at config load).
type LifeRules struct {
	SpawnBaseChance   float64
	AdvanceBaseChance float64
	SeedPopulation    float64
	GrowthRates       [components.NumStages]float64 // per second
}

// RollSpawn runs the per-tick Bernoulli spawn trial for a lifeless planet.
// The probability is the base chance scaled by the planet's habitability
// and the external spawn multiplier. A nil entropy source fails closed: no
// spawn, no error.
func (r LifeRules) RollSpawn(rng *rand.Rand, habitability, spawnMultiplier float64) bool {
	if rng == nil {
		return false
	}
	p := clamp01(r.SpawnBaseChance * habitability * spawnMultiplier)
	return rng.Float64() < p
}

// RollAdvance runs the per-tick Bernoulli advancement trial for a living
// planet. On success the returned stage is exactly one step forward; a
// planet at intelligent never advances. The returned stage is never earlier
// than the input stage. A nil entropy source fails closed.
func (r LifeRules) RollAdvance(rng *rand.Rand, stage components.Stage, evolutionSpeed float64) (components.Stage, bool) {
	next, ok := stage.Next()
	if !ok || rng == nil {
		return stage, false
	}
	p := clamp01(r.AdvanceBaseChance * evolutionSpeed)
	if rng.Float64() < p {
		return next, true
	}
	return stage, false
}

// Grow compounds a population by its stage growth rate over dt. With a
// non-negative rate and population the result never shrinks.
func (r LifeRules) Grow(population float64, stage components.Stage, dt float64) float64 {
	if population < 0 {
		population = 0
	}
	return population + population*r.GrowthRates[stage]*dt
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
