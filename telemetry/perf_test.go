package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorPhases(t *testing.T) {
	p := NewPerfCollector(4)

	for i := 0; i < 6; i++ {
		p.StartTick()
		p.StartPhase(PhaseSpatialGrid)
		time.Sleep(time.Millisecond)
		p.StartPhase(PhaseGravity)
		time.Sleep(time.Millisecond)
		p.EndTick()
	}

	stats := p.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("average tick duration not recorded")
	}
	if stats.PhaseAvg[PhaseSpatialGrid] <= 0 || stats.PhaseAvg[PhaseGravity] <= 0 {
		t.Errorf("phase averages missing: %+v", stats.PhaseAvg)
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v > max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("throughput not computed")
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	p := NewPerfCollector(8)
	stats := p.Stats()
	if stats.AvgTickDuration != 0 {
		t.Errorf("empty collector avg = %v, want 0", stats.AvgTickDuration)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("empty collector must return usable maps")
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		PhaseAvg: map[string]time.Duration{
			PhaseGravity: 900 * time.Microsecond,
			PhaseLife:    100 * time.Microsecond,
		},
	}

	row := stats.ToCSV(42)
	if row.WindowEnd != 42 || row.AvgTickUs != 1500 || row.GravityUs != 900 || row.LifeUs != 100 {
		t.Errorf("csv row = %+v", row)
	}
	// Phases never timed flatten to zero.
	if row.SpatialGridUs != 0 || row.ResourcesUs != 0 {
		t.Errorf("untimed phases nonzero: %+v", row)
	}
}
