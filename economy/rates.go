package economy

import (
	"math"

	"github.com/solhaven/stargarden/components"
)

// Tuning holds the per-kind production constants. All values are units per
// second and non-negative.
type Tuning struct {
	DustRate           float64
	CometRate          float64
	EnergyPerMass      float64
	OrganicByStage     [components.NumStages]float64
	BiomassByStage     [components.NumStages]float64
	CognitionPerCapita float64
	ActivityHalfSpeed  float64
	ActivitySmoothing  float64
}

// AddBody folds one body's production into r. activity is the ambient
// activity factor in [0,1); it scales only the cognition contribution.
// The switch is exhaustive over the closed body-kind set.
func (t Tuning) AddBody(r *Rates, body components.Body, life *components.Life, activity float64) {
	switch body.Kind {
	case components.KindDust:
		r[RawMaterial] += t.DustRate
	case components.KindComet:
		r[RawMaterial] += t.CometRate
	case components.KindStar:
		r[Energy] += t.EnergyPerMass * math.Max(body.Mass, 0)
	case components.KindPlanet:
		if life != nil && life.HasLife {
			r[OrganicMatter] += t.OrganicByStage[life.Stage]
			r[Biomass] += t.BiomassByStage[life.Stage]
			if life.Stage == components.StageIntelligent {
				r[Cognition] += t.CognitionPerCapita * math.Max(life.Population, 0) * activity
			}
		}
	case components.KindMoon, components.KindBlackHole:
		// No direct production.
	}
}

// ActivityFactor maps a mean body speed to the ambient activity factor in
// [0,1) using a half-saturation curve: speed == ActivityHalfSpeed gives 0.5.
func (t Tuning) ActivityFactor(meanSpeed float64) float64 {
	if meanSpeed <= 0 || t.ActivityHalfSpeed <= 0 {
		return 0
	}
	return meanSpeed / (meanSpeed + t.ActivityHalfSpeed)
}
