package telemetry

import (
	"testing"

	"github.com/solhaven/stargarden/components"
	"github.com/solhaven/stargarden/economy"
)

func TestCollectorWindowBoundaries(t *testing.T) {
	c := NewCollector(1.0, 0.1) // 10 ticks per window

	if c.ShouldFlush(9) {
		t.Error("flush requested before window elapsed")
	}
	if !c.ShouldFlush(10) {
		t.Error("flush not requested at window boundary")
	}

	c.Flush(10, RosterCounts{}, nil, [economy.NumKinds]uint64{}, 0)
	if c.ShouldFlush(15) {
		t.Error("flush requested mid-way through second window")
	}
	if !c.ShouldFlush(20) {
		t.Error("flush not requested at second window boundary")
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	// A window shorter than one tick still flushes every tick.
	c := NewCollector(0.001, 1.0)
	if !c.ShouldFlush(1) {
		t.Error("sub-tick window did not flush after one tick")
	}
}

func TestCollectorFlushResetsCounters(t *testing.T) {
	c := NewCollector(1.0, 0.1)

	c.RecordLifeSpawn()
	c.RecordLifeSpawn()
	c.RecordStageAdvance(components.StagePlant)
	c.RecordBoundaryClamp()
	c.RecordCredits([economy.NumKinds]uint64{3, 0, 1, 0, 0})
	c.RecordCredits([economy.NumKinds]uint64{2, 0, 0, 0, 0})

	roster := RosterCounts{
		LivingPlanets:   4,
		TotalPopulation: 1234,
	}
	roster.ByKind[components.KindPlanet] = 6
	roster.ByStage[components.StagePlant] = 2

	totals := [economy.NumKinds]uint64{100, 50, 10, 5, 1}
	stats := c.Flush(10, roster, []float64{2, 4}, totals, 0.3)

	if stats.LifeSpawns != 2 || stats.StageAdvances != 1 || stats.BoundaryClamps != 1 {
		t.Errorf("event counts = %d/%d/%d, want 2/1/1",
			stats.LifeSpawns, stats.StageAdvances, stats.BoundaryClamps)
	}
	if stats.CreditedRawMaterial != 5 || stats.CreditedOrganic != 1 {
		t.Errorf("credited = %d/%d, want 5/1", stats.CreditedRawMaterial, stats.CreditedOrganic)
	}
	if stats.Planets != 6 || stats.LivingPlanets != 4 || stats.PlantPlanets != 2 {
		t.Errorf("roster sample wrong: %+v", stats)
	}
	if stats.TotalRawMaterial != 100 || stats.TotalCognition != 1 {
		t.Errorf("totals wrong: %+v", stats)
	}
	if stats.SpeedMean != 3 {
		t.Errorf("speed mean = %v, want 3", stats.SpeedMean)
	}
	if stats.SimTimeSec != 1.0 {
		t.Errorf("sim time = %v, want 1.0", stats.SimTimeSec)
	}

	// Counters reset after flush.
	next := c.Flush(20, RosterCounts{}, nil, totals, 0)
	if next.LifeSpawns != 0 || next.CreditedRawMaterial != 0 || next.BoundaryClamps != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 10 {
		t.Errorf("window start = %d, want 10", next.WindowStartTick)
	}
}
