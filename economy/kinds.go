// Package economy converts roster and biosphere state into whole-unit
// resource credits for the game economy.
package economy

// Kind identifies one resource the simulation produces. The set is closed:
// switches over Kind are expected to be exhaustive.
type Kind uint8

const (
	RawMaterial Kind = iota
	Energy
	OrganicMatter
	Biomass
	Cognition
)

// NumKinds is the number of resource kinds.
const NumKinds = int(Cognition) + 1

// String returns the kind name used in logs and telemetry.
func (k Kind) String() string {
	switch k {
	case RawMaterial:
		return "raw_material"
	case Energy:
		return "energy"
	case OrganicMatter:
		return "organic_matter"
	case Biomass:
		return "biomass"
	case Cognition:
		return "cognition"
	default:
		return "unknown"
	}
}

// Rates holds an instantaneous production rate per resource kind, in units
// per second. The pipeline only produces non-negative rates.
type Rates [NumKinds]float64
