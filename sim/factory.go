package sim

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/solhaven/stargarden/components"
	"github.com/solhaven/stargarden/config"
)

// BodySpec describes a body the host wants added to the roster.
type BodySpec struct {
	Kind   components.Kind
	Pos    r3.Vec
	Vel    r3.Vec
	Mass   float64
	Radius float64
	Static bool
}

// AddBody inserts a body into the roster and returns its entity handle.
// This is a host-boundary operation: the kernel never calls it during a
// tick. Planet-class bodies carry a Life record from birth, with
// habitability sampled from the noise field at their creation position; no
// life has spawned yet.
func (s *Sim) AddBody(spec BodySpec) ecs.Entity {
	id := s.nextID
	s.nextID++

	pos := components.Position{Vec: spec.Pos}
	vel := components.Velocity{Vec: spec.Vel}
	body := components.Body{
		ID:     id,
		Kind:   spec.Kind,
		Mass:   spec.Mass,
		Radius: spec.Radius,
		Static: spec.Static,
	}

	if spec.Kind == components.KindPlanet {
		life := components.Life{Habitability: s.sampleHabitability(spec.Pos)}
		return s.planetMapper.NewEntity(&pos, &vel, &body, &life)
	}
	return s.bodyMapper.NewEntity(&pos, &vel, &body)
}

// RemoveBody removes a body from the roster. Host boundary only; removing
// an already-dead handle is a no-op.
func (s *Sim) RemoveBody(e ecs.Entity) {
	if !s.world.Alive(e) {
		return
	}
	s.world.RemoveEntity(e)
}

// SeedUniverse populates the starting roster: one static central star, a
// disc of planets on near-circular orbits (some with moons), and a shell
// of dust and comets.
func (s *Sim) SeedUniverse(phys config.PhysicsConfig, uni config.UniverseConfig) {
	s.AddBody(BodySpec{
		Kind:   components.KindStar,
		Mass:   uni.StarMass,
		Radius: uni.StarRadius,
		Static: true,
	})

	for i := 0; i < uni.Planets; i++ {
		orbit := uni.MinOrbit + s.rng.Float64()*(uni.MaxOrbit-uni.MinOrbit)
		pos := s.randomDiscPoint(orbit)
		vel := s.orbitalVelocity(pos, phys.G, uni.StarMass)
		mass := 20 + s.rng.Float64()*80

		s.AddBody(BodySpec{
			Kind:   components.KindPlanet,
			Pos:    pos,
			Vel:    vel,
			Mass:   mass,
			Radius: 2 + s.rng.Float64()*4,
		})

		if s.rng.Float64() < uni.MoonChance {
			offset := s.randomDiscPoint(8 + s.rng.Float64()*6)
			s.AddBody(BodySpec{
				Kind:   components.KindMoon,
				Pos:    r3.Add(pos, offset),
				Vel:    vel,
				Mass:   mass * 0.01,
				Radius: 0.5 + s.rng.Float64(),
			})
		}
	}

	for i := 0; i < uni.DustCount; i++ {
		orbit := uni.MinOrbit*0.8 + s.rng.Float64()*(uni.MaxOrbit*1.1-uni.MinOrbit*0.8)
		pos := s.randomDiscPoint(orbit)
		s.AddBody(BodySpec{
			Kind:   components.KindDust,
			Pos:    pos,
			Vel:    s.orbitalVelocity(pos, phys.G, uni.StarMass),
			Mass:   0.01 + s.rng.Float64()*0.1,
			Radius: 0.1,
		})
	}

	for i := 0; i < uni.CometCount; i++ {
		orbit := uni.MinOrbit + s.rng.Float64()*uni.MaxOrbit
		pos := s.randomDiscPoint(orbit)
		// Comets start on eccentric paths: orbital speed, skewed inward.
		vel := r3.Scale(0.7, s.orbitalVelocity(pos, phys.G, uni.StarMass))
		s.AddBody(BodySpec{
			Kind:   components.KindComet,
			Pos:    pos,
			Vel:    vel,
			Mass:   0.5 + s.rng.Float64()*2,
			Radius: 0.5,
		})
	}
}

// sampleHabitability derives a planet's static habitability from the
// 3-D noise field at its position.
func (s *Sim) sampleHabitability(p r3.Vec) float64 {
	return s.habitat.Eval3(p.X*s.noiseScale, p.Y*s.noiseScale, p.Z*s.noiseScale)
}

// randomDiscPoint returns a point at the given distance from the origin,
// biased toward the ecliptic plane so the system reads as a disc.
func (s *Sim) randomDiscPoint(dist float64) r3.Vec {
	v := r3.Vec{
		X: s.rng.NormFloat64(),
		Y: s.rng.NormFloat64(),
		Z: s.rng.NormFloat64() * 0.2,
	}
	n := r3.Norm(v)
	if n == 0 {
		return r3.Vec{X: dist}
	}
	return r3.Scale(dist/n, v)
}

// orbitalVelocity returns the circular-orbit velocity around a central
// mass at the origin, tangential to the position vector.
func (s *Sim) orbitalVelocity(pos r3.Vec, g, centralMass float64) r3.Vec {
	dist := r3.Norm(pos)
	if dist == 0 || g <= 0 || centralMass <= 0 {
		return r3.Vec{}
	}
	tangent := r3.Cross(r3.Vec{Z: 1}, pos)
	tn := r3.Norm(tangent)
	if tn == 0 {
		tangent = r3.Cross(r3.Vec{X: 1}, pos)
		tn = r3.Norm(tangent)
	}
	speed := math.Sqrt(g * centralMass / dist)
	return r3.Scale(speed/tn, tangent)
}
