package components

// Kind classifies a celestial body. The set is closed: switches over Kind
// are expected to be exhaustive so new kinds fail loudly where they matter.
type Kind uint8

const (
	KindDust Kind = iota
	KindComet
	KindMoon
	KindPlanet
	KindStar
	KindBlackHole
)

// NumKinds is the number of body kinds.
const NumKinds = int(KindBlackHole) + 1

// String returns the kind name used in logs and telemetry.
func (k Kind) String() string {
	switch k {
	case KindDust:
		return "dust"
	case KindComet:
		return "comet"
	case KindMoon:
		return "moon"
	case KindPlanet:
		return "planet"
	case KindStar:
		return "star"
	case KindBlackHole:
		return "black_hole"
	default:
		return "unknown"
	}
}

// Body holds the physical properties of a celestial body.
// Static bodies never move but still act as gravity sources.
type Body struct {
	ID     uint32
	Kind   Kind
	Mass   float64
	Radius float64
	Static bool
}
