package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SearchRadius is the fixed neighbor-query radius for force accumulation,
// tuned for typical body density. It is intentionally not configurable.
const SearchRadius = 500.0

// MinDistance guards the pairwise force term against self-interaction
// artifacts and division blow-up at near-zero separation.
const MinDistance = 1e-3

// PairAccel returns the gravitational acceleration exerted on a body at pos
// by a source of mass srcMass at srcPos. The softening term bounds the
// force as separation approaches zero. Any non-finite intermediate
// collapses to the zero vector so one degenerate pair can never poison a
// tick.
func PairAccel(pos, srcPos r3.Vec, srcMass, g, softeningSq float64) r3.Vec {
	if srcMass <= 0 {
		return r3.Vec{}
	}

	delta := r3.Sub(srcPos, pos)
	dist := r3.Norm(delta)
	if dist < MinDistance {
		return r3.Vec{}
	}

	// a = G*m_src/(d^2 + eps^2); the target's own mass cancels out of F/m.
	mag := g * srcMass / (dist*dist + softeningSq)
	out := r3.Scale(mag/dist, delta)
	if !FiniteVec(out) {
		return r3.Vec{}
	}
	return out
}

// Damp applies velocity damping for one step: v *= (1 - drag*dt). The
// factor is floored at zero so a huge dt stops a body instead of reversing
// it.
func Damp(vel r3.Vec, drag, dt float64) r3.Vec {
	f := 1 - drag*dt
	if f < 0 {
		f = 0
	}
	return r3.Scale(f, vel)
}

// Integrate advances velocity then position over dt. Semi-implicit Euler:
// updating velocity before position keeps bound orbits stable.
func Integrate(pos, vel, accel r3.Vec, dt float64) (r3.Vec, r3.Vec) {
	vel = r3.Add(vel, r3.Scale(dt, accel))
	pos = r3.Add(pos, r3.Scale(dt, vel))
	return pos, vel
}

// Contain clamps a body inside the world sphere. A body past the boundary
// is projected back onto it and loses half its speed: a soft wall rather
// than a reflective bounce, so runaway bodies bleed energy instead of
// ricocheting. Returns true when the body was clamped.
func Contain(pos, vel r3.Vec, boundary float64) (r3.Vec, r3.Vec, bool) {
	if boundary <= 0 {
		return pos, vel, false
	}
	dist := r3.Norm(pos)
	if dist <= boundary {
		return pos, vel, false
	}
	pos = r3.Scale(boundary/dist, pos)
	vel = r3.Scale(0.5, vel)
	return pos, vel, true
}

// Sanitize replaces non-finite vector components with zero. Degenerate body
// state defaults to safe values instead of aborting the tick.
func Sanitize(v r3.Vec) r3.Vec {
	if !finite(v.X) {
		v.X = 0
	}
	if !finite(v.Y) {
		v.Y = 0
	}
	if !finite(v.Z) {
		v.Z = 0
	}
	return v
}

// FiniteVec reports whether all components of v are finite.
func FiniteVec(v r3.Vec) bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
