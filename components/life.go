package components

// Stage is a planet's biosphere maturity. Stages form a forward-only chain:
// once life exists it can only climb toward intelligent, never regress.
type Stage uint8

const (
	StageMicrobial Stage = iota
	StagePlant
	StageAnimal
	StageIntelligent
)

// NumStages is the number of life stages.
const NumStages = int(StageIntelligent) + 1

// String returns the stage name used in logs and telemetry.
func (s Stage) String() string {
	switch s {
	case StageMicrobial:
		return "microbial"
	case StagePlant:
		return "plant"
	case StageAnimal:
		return "animal"
	case StageIntelligent:
		return "intelligent"
	default:
		return "unknown"
	}
}

// Next returns the stage following s. ok is false for StageIntelligent,
// which has no successor.
func (s Stage) Next() (next Stage, ok bool) {
	if s >= StageIntelligent {
		return s, false
	}
	return s + 1, true
}

// Life tracks the biosphere of a planet-class body. Habitability is fixed
// at creation; Stage only moves forward and Population never shrinks while
// life persists.
type Life struct {
	HasLife      bool
	Stage        Stage
	Population   float64
	Habitability float64 // 0..1, static per planet
}
