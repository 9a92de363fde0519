package telemetry

import (
	"math"
	"testing"
)

func TestSpeedStats(t *testing.T) {
	speeds := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mean, std, p50, p90 := SpeedStats(speeds)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	if std <= 0 {
		t.Errorf("std = %v, want > 0", std)
	}
	if p50 < 5 || p50 > 6 {
		t.Errorf("p50 = %v, want ~5.5", p50)
	}
	if p90 < 9 || p90 > 10 {
		t.Errorf("p90 = %v, want ~9-10", p90)
	}
}

func TestSpeedStatsUnsortedInput(t *testing.T) {
	a, _, _, _ := SpeedStats([]float64{9, 1, 5, 3, 7})
	b, _, _, _ := SpeedStats([]float64{1, 3, 5, 7, 9})

	if math.Abs(a-b) > 0.001 {
		t.Errorf("input order changed mean: %v vs %v", a, b)
	}
}

func TestSpeedStatsEmpty(t *testing.T) {
	mean, std, p50, p90 := SpeedStats(nil)
	if mean != 0 || std != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty sample should return all zeros")
	}
}

func TestSpeedStatsSingleValue(t *testing.T) {
	mean, std, p50, _ := SpeedStats([]float64{4.2})
	if mean != 4.2 || p50 != 4.2 {
		t.Errorf("single value: mean=%v p50=%v, want 4.2", mean, p50)
	}
	if std != 0 {
		t.Errorf("single value std = %v, want 0", std)
	}
}
