package sim

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/solhaven/stargarden/config"
	"github.com/solhaven/stargarden/systems"
)

// moveIntent is one body's accumulated acceleration, applied after the
// accumulation sweep completes.
type moveIntent struct {
	entity ecs.Entity
	accel  r3.Vec
}

// rebuildGrid clears and repopulates the spatial index from the roster.
// Every body is inserted exactly once, static anchors included: they do
// not move but still act as force sources.
func (s *Sim) rebuildGrid() {
	s.grid.Clear()

	query := s.bodyFilter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		s.grid.Insert(query.Entity(), pos.Vec)
	}
}

// updateGravity advances kinematics of every dynamic body by one tick.
// Accelerations are accumulated against tick-start positions for the whole
// roster before any body moves, so pairwise forces stay symmetric; the
// integration then applies damping, semi-implicit Euler, and boundary
// containment per body.
func (s *Sim) updateGravity(dt float64, phys config.PhysicsConfig) {
	if dt <= 0 {
		return
	}

	s.intents = s.intents[:0]

	query := s.bodyFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, vel, body := query.Get()

		if body.Static {
			continue
		}

		// Degenerate state defaults to safe zeros instead of aborting the
		// tick for the rest of the roster.
		pos.Vec = systems.Sanitize(pos.Vec)
		vel.Vec = systems.Sanitize(vel.Vec)

		var accel r3.Vec
		s.scratch = s.grid.QueryNeighborsInto(s.scratch[:0], pos.Vec, systems.SearchRadius)
		for _, other := range s.scratch {
			if other == entity {
				continue
			}
			srcPos := s.posMap.Get(other)
			srcBody := s.bodyMap.Get(other)
			if srcPos == nil || srcBody == nil {
				continue
			}
			accel = r3.Add(accel, systems.PairAccel(
				pos.Vec, srcPos.Vec, srcBody.Mass, phys.G, phys.SofteningSq))
		}

		s.intents = append(s.intents, moveIntent{entity: entity, accel: accel})
	}

	var speedSum float64
	var moving int

	for _, in := range s.intents {
		pos := s.posMap.Get(in.entity)
		vel := s.velMap.Get(in.entity)
		if pos == nil || vel == nil {
			continue
		}

		vel.Vec = systems.Damp(vel.Vec, phys.Drag, dt)
		pos.Vec, vel.Vec = systems.Integrate(pos.Vec, vel.Vec, in.accel, dt)

		var clamped bool
		pos.Vec, vel.Vec, clamped = systems.Contain(pos.Vec, vel.Vec, phys.BoundaryRadius)
		if clamped {
			s.collector.RecordBoundaryClamp()
		}

		if speed := r3.Norm(vel.Vec); speed > 0 && systems.FiniteVec(vel.Vec) {
			speedSum += speed
			moving++
		}
	}

	// Smooth the mean speed of moving bodies toward its instantaneous
	// value; the activity factor is derived from this.
	mean := 0.0
	if moving > 0 {
		mean = speedSum / float64(moving)
	}
	alpha := s.tuning.ActivitySmoothing * dt
	if alpha > 1 {
		alpha = 1
	}
	s.meanSpeed += (mean - s.meanSpeed) * alpha
}

// activityFactor maps the smoothed mean speed into [0,1).
func (s *Sim) activityFactor() float64 {
	return s.tuning.ActivityFactor(s.meanSpeed)
}
