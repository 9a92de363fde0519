// Package components defines ECS components for the simulation.
package components

import "gonum.org/v1/gonum/spatial/r3"

// Position is a body's world position.
type Position struct {
	r3.Vec
}

// Velocity is a body's velocity.
type Velocity struct {
	r3.Vec
}
