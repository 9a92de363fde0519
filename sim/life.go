package sim

import "github.com/solhaven/stargarden/components"

// updateLife runs the life state machine over every planet-class body:
// a spawn trial for lifeless planets, an advancement trial and population
// growth for living ones. Runs after gravity so stage-dependent behavior
// sees this tick's positions.
func (s *Sim) updateLife(dt float64, in Inputs) {
	if dt <= 0 {
		// The trials are per-tick Bernoulli draws, so they are gated along
		// with the dt-scaled deltas to keep a zero-dt tick a full no-op.
		return
	}

	query := s.lifeFilter.Query()
	for query.Next() {
		body, life := query.Get()

		if body.Kind != components.KindPlanet {
			continue
		}

		if !life.HasLife {
			if s.rules.RollSpawn(s.rng, life.Habitability, in.SpawnMultiplier) {
				life.HasLife = true
				life.Stage = components.StageMicrobial
				life.Population = s.rules.SeedPopulation
				s.collector.RecordLifeSpawn()
			}
			continue
		}

		if next, advanced := s.rules.RollAdvance(s.rng, life.Stage, in.EvolutionSpeed); advanced {
			life.Stage = next
			s.collector.RecordStageAdvance(next)
		}

		life.Population = s.rules.Grow(life.Population, life.Stage, dt)
	}
}
