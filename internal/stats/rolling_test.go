package stats

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRollingMeanCentersOddWindow(t *testing.T) {
	got := RollingMean([]float64{1, 2, 3, 4, 5}, 3)

	if !math.IsNaN(got[0]) || !math.IsNaN(got[4]) {
		t.Fatalf("expected NaN at the edges, got %v", got)
	}
	for i, want := range []float64{2, 3, 4} {
		if !almostEqual(got[i+1], want) {
			t.Errorf("index %d: expected %v, got %v", i+1, want, got[i+1])
		}
	}
}

func TestRollingMeanEvenWindowLeansRight(t *testing.T) {
	// Window 2 at position i covers [i, i+1], so only the last slot is NaN.
	got := RollingMean([]float64{0, 1, 2, 3}, 2)

	for i, want := range []float64{0.5, 1.5, 2.5} {
		if !almostEqual(got[i], want) {
			t.Errorf("index %d: expected %v, got %v", i, want, got[i])
		}
	}
	if !math.IsNaN(got[3]) {
		t.Errorf("expected NaN at final position, got %v", got[3])
	}
}

func TestRollingMeanSkipsNaNMembers(t *testing.T) {
	got := RollingMean([]float64{1, math.NaN(), 3}, 3)

	if !almostEqual(got[1], 2) {
		t.Fatalf("expected NaN member skipped, mean 2, got %v", got[1])
	}
}

func TestRollingMeanAllNaNWindow(t *testing.T) {
	got := RollingMean([]float64{math.NaN(), math.NaN(), math.NaN()}, 3)
	if !math.IsNaN(got[1]) {
		t.Fatalf("expected NaN for window with no usable members, got %v", got[1])
	}
}

func TestRollingMeanWindowLargerThanSeries(t *testing.T) {
	got := RollingMean([]float64{1, 2}, 7)
	for i, v := range got {
		if !math.IsNaN(v) {
			t.Fatalf("index %d: expected NaN when window cannot fit, got %v", i, v)
		}
	}
}

func TestColdFlags(t *testing.T) {
	flags := ColdFlags([]float64{-5, 0, 5, math.NaN()}, 0)

	want := []bool{true, false, false, false}
	for i := range want {
		if flags[i] != want[i] {
			t.Errorf("index %d: expected %v, got %v", i, want[i], flags[i])
		}
	}
}

func TestBounds(t *testing.T) {
	min, max, ok := Bounds([]float64{3, math.NaN(), -7, 12})
	if !ok {
		t.Fatal("expected bounds for non-empty input")
	}
	if min != -7 || max != 12 {
		t.Fatalf("expected [-7, 12], got [%v, %v]", min, max)
	}

	if _, _, ok := Bounds([]float64{math.NaN()}); ok {
		t.Fatal("expected no bounds for all-NaN input")
	}
}
