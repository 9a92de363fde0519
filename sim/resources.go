package sim

import (
	"github.com/solhaven/stargarden/components"
	"github.com/solhaven/stargarden/economy"
)

// updateResources converts the current roster and biosphere state into
// per-kind rates and folds them into the ledger. Runs last in the tick so
// rates reflect this tick's life stages.
func (s *Sim) updateResources(dt float64) {
	var rates economy.Rates
	activity := s.activityFactor()

	query := s.bodyFilter.Query()
	for query.Next() {
		entity := query.Entity()
		_, _, body := query.Get()

		var life *components.Life
		if s.lifeMap.HasAll(entity) {
			life = s.lifeMap.Get(entity)
		}
		s.tuning.AddBody(&rates, *body, life, activity)
	}

	credited := s.ledger.Accrue(rates, dt)
	s.collector.RecordCredits(credited)
}
