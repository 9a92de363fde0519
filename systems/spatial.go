// Package systems provides the spatial index and the pure physics and life
// rules the simulation passes call into.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"
)

// CellKey addresses one cubical cell of the spatial hash. Keys are derived
// from truncated coordinates offset by half the world extent and are
// recomputed every tick, never persisted.
type CellKey struct {
	X, Y, Z int32
}

// SpatialGrid buckets bodies into fixed-size cubical cells for approximate
// neighbor lookup. Buckets are insertion-order lists and duplicates are not
// filtered; callers must insert each body exactly once per tick.
type SpatialGrid struct {
	cellSize   float64
	halfExtent float64
	cells      map[CellKey][]ecs.Entity
	count      int
}

// NewSpatialGrid creates a grid for a spherical world of the given radius.
// Cell size follows a worldSize/2000 heuristic and is fixed for the grid's
// lifetime; it is never re-tuned to the population.
func NewSpatialGrid(worldRadius float64) *SpatialGrid {
	size := worldRadius * 2 / 2000
	if size <= 0 {
		size = 1
	}
	return &SpatialGrid{
		cellSize:   size,
		halfExtent: worldRadius,
		cells:      make(map[CellKey][]ecs.Entity, 256),
	}
}

// CellSize returns the fixed cell edge length.
func (g *SpatialGrid) CellSize() float64 { return g.cellSize }

// Len returns the number of bodies currently inserted.
func (g *SpatialGrid) Len() int { return g.count }

// Clear empties all buckets, keeping their capacity for reuse. Must run
// once at the start of every tick before the rebuild.
func (g *SpatialGrid) Clear() {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	g.count = 0
}

// Insert adds a body to the cell covering pos.
func (g *SpatialGrid) Insert(e ecs.Entity, pos r3.Vec) {
	key := g.keyFor(pos)
	g.cells[key] = append(g.cells[key], e)
	g.count++
}

// QueryNeighborsInto appends every body bucketed in the cube of cells
// covering radius around pos and returns the updated slice. The result is
// a deliberate superset: it contains every body within radius but also
// bodies farther away, and callers re-filter by true distance during force
// accumulation. The grid does no per-cell distance sorting. Reuse dst
// across calls to avoid allocations.
func (g *SpatialGrid) QueryNeighborsInto(dst []ecs.Entity, pos r3.Vec, radius float64) []ecs.Entity {
	if g.count == 0 {
		return dst
	}

	center := g.keyFor(pos)
	reach := int32(math.Ceil(radius / g.cellSize))

	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			for dz := -reach; dz <= reach; dz++ {
				key := CellKey{center.X + dx, center.Y + dy, center.Z + dz}
				if bucket, ok := g.cells[key]; ok {
					dst = append(dst, bucket...)
				}
			}
		}
	}

	return dst
}

// keyFor truncates a position into cell coordinates. The half-extent offset
// keeps keys for in-world positions non-negative.
func (g *SpatialGrid) keyFor(pos r3.Vec) CellKey {
	return CellKey{
		X: int32((pos.X + g.halfExtent) / g.cellSize),
		Y: int32((pos.Y + g.halfExtent) / g.cellSize),
		Z: int32((pos.Z + g.halfExtent) / g.cellSize),
	}
}
