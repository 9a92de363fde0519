package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/solhaven/stargarden/components"
)

func TestSpatialGridEmptyQuery(t *testing.T) {
	g := NewSpatialGrid(100000)

	result := g.QueryNeighborsInto(nil, r3.Vec{}, SearchRadius)
	if len(result) != 0 {
		t.Errorf("empty grid returned %d neighbors, want 0", len(result))
	}
	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0", g.Len())
	}
}

func TestSpatialGridClearReusesBuckets(t *testing.T) {
	world := ecs.NewWorld()
	posMapper := ecs.NewMap1[components.Position](world)
	g := NewSpatialGrid(100000)

	pos := components.Position{Vec: r3.Vec{X: 10, Y: 20, Z: 30}}
	e := posMapper.NewEntity(&pos)

	g.Insert(e, pos.Vec)
	if g.Len() != 1 {
		t.Fatalf("Len() = %d after insert, want 1", g.Len())
	}

	g.Clear()
	if g.Len() != 0 {
		t.Errorf("Len() = %d after clear, want 0", g.Len())
	}
	if got := g.QueryNeighborsInto(nil, pos.Vec, 100); len(got) != 0 {
		t.Errorf("query after clear returned %d neighbors, want 0", len(got))
	}

	// Re-insert into the same cell after clear.
	g.Insert(e, pos.Vec)
	if got := g.QueryNeighborsInto(nil, pos.Vec, 100); len(got) != 1 {
		t.Errorf("query after re-insert returned %d neighbors, want 1", len(got))
	}
}

// TestSpatialGridSupersetContract verifies the query contract: the result
// may include bodies farther than the radius, but must never miss a body
// that is truly within it.
func TestSpatialGridSupersetContract(t *testing.T) {
	const worldRadius = 100000.0
	const bodies = 300
	const queryRadius = SearchRadius

	rng := rand.New(rand.NewSource(7))
	world := ecs.NewWorld()
	posMapper := ecs.NewMap1[components.Position](world)
	g := NewSpatialGrid(worldRadius)

	type placed struct {
		e   ecs.Entity
		pos r3.Vec
	}
	all := make([]placed, 0, bodies)

	for i := 0; i < bodies; i++ {
		// Cluster positions so queries actually have hits.
		p := r3.Vec{
			X: (rng.Float64()*2 - 1) * queryRadius * 4,
			Y: (rng.Float64()*2 - 1) * queryRadius * 4,
			Z: (rng.Float64()*2 - 1) * queryRadius * 4,
		}
		pos := components.Position{Vec: p}
		e := posMapper.NewEntity(&pos)
		g.Insert(e, p)
		all = append(all, placed{e: e, pos: p})
	}

	var scratch []ecs.Entity
	for trial := 0; trial < 20; trial++ {
		origin := all[rng.Intn(len(all))].pos

		scratch = g.QueryNeighborsInto(scratch[:0], origin, queryRadius)
		found := make(map[ecs.Entity]bool, len(scratch))
		for _, e := range scratch {
			found[e] = true
		}

		for _, b := range all {
			if r3.Norm(r3.Sub(b.pos, origin)) <= queryRadius && !found[b.e] {
				t.Fatalf("trial %d: body at %v within radius %v of %v missing from query result",
					trial, b.pos, queryRadius, origin)
			}
		}
	}
}

func TestSpatialGridCellSizeHeuristic(t *testing.T) {
	g := NewSpatialGrid(100000)
	want := 100000.0 * 2 / 2000
	if g.CellSize() != want {
		t.Errorf("CellSize() = %v, want %v", g.CellSize(), want)
	}

	// Degenerate world radius still yields a usable grid.
	g = NewSpatialGrid(0)
	if g.CellSize() <= 0 {
		t.Errorf("CellSize() = %v for zero world, want > 0", g.CellSize())
	}
}
