package stats

import (
	"errors"
	"math"
	"testing"
)

func TestProfileThresholdsRowCountAndOrder(t *testing.T) {
	obs := []float64{1, 2, 3}

	rows, err := ProfileThresholds(obs, -5, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 11 {
		t.Fatalf("expected 11 rows, got %d", len(rows))
	}
	if rows[0].Threshold != 5 || rows[len(rows)-1].Threshold != -5 {
		t.Fatalf("expected thresholds 5..-5, got %d..%d", rows[0].Threshold, rows[len(rows)-1].Threshold)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Threshold >= rows[i-1].Threshold {
			t.Fatalf("thresholds not strictly descending at index %d", i)
		}
	}

	// Single-threshold sweep.
	rows, err = ProfileThresholds(obs, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Threshold != 2 {
		t.Fatalf("expected single row for threshold 2, got %+v", rows)
	}
}

func TestProfileThresholdsReversedRangeIsEmpty(t *testing.T) {
	rows, err := ProfileThresholds([]float64{1, 2, 3}, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty profile for reversed range, got %d rows", len(rows))
	}
}

func TestProfileThresholdsEmptyInput(t *testing.T) {
	if _, err := ProfileThresholds(nil, 0, 10); !errors.Is(err, ErrNoObservations) {
		t.Fatalf("expected ErrNoObservations, got %v", err)
	}

	// All-NaN input counts as empty too.
	allNaN := []float64{math.NaN(), math.NaN()}
	if _, err := ProfileThresholds(allNaN, 0, 10); !errors.Is(err, ErrNoObservations) {
		t.Fatalf("expected ErrNoObservations for all-NaN input, got %v", err)
	}

	// The degenerate-data error takes precedence over an empty sweep.
	if _, err := ProfileThresholds(nil, 10, 0); !errors.Is(err, ErrNoObservations) {
		t.Fatalf("expected ErrNoObservations for empty input with reversed range, got %v", err)
	}
}

func TestProfileThresholdsAllAbove(t *testing.T) {
	rows, err := ProfileThresholds([]float64{10, 20, 30, 40, 50}, 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ThresholdRow{
		{Threshold: 2, CountBelow: 0, ProportionBelow: 0},
		{Threshold: 1, CountBelow: 0, ProportionBelow: 0},
		{Threshold: 0, CountBelow: 0, ProportionBelow: 0},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d: expected %+v, got %+v", i, want[i], rows[i])
		}
	}
}

func TestProfileThresholdsCounts(t *testing.T) {
	rows, err := ProfileThresholds([]float64{5, 15, 25}, 10, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 11 {
		t.Fatalf("expected 11 rows, got %d", len(rows))
	}

	byThreshold := make(map[int]ThresholdRow, len(rows))
	for _, r := range rows {
		byThreshold[r.Threshold] = r
	}

	if got := byThreshold[20].CountBelow; got != 2 {
		t.Errorf("count below 20: expected 2, got %d", got)
	}
	if got := byThreshold[16].CountBelow; got != 2 {
		t.Errorf("count below 16: expected 2, got %d", got)
	}
	if got := byThreshold[15].CountBelow; got != 1 {
		t.Errorf("count below 15: expected 1 (strict comparison), got %d", got)
	}
	if got := byThreshold[10].CountBelow; got != 1 {
		t.Errorf("count below 10: expected 1, got %d", got)
	}
	if got := byThreshold[20].ProportionBelow; got != 2.0/3.0 {
		t.Errorf("proportion below 20: expected exact 2/3, got %v", got)
	}
}

func TestProfileThresholdsStrictlyBelow(t *testing.T) {
	rows, err := ProfileThresholds([]float64{10, 10, 10}, 10, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].CountBelow != 0 {
		t.Fatalf("values equal to the threshold must not count: got %d", rows[0].CountBelow)
	}
}

func TestProfileThresholdsNaNExcluded(t *testing.T) {
	obs := []float64{math.NaN(), 5, math.NaN(), 15}

	rows, err := ProfileThresholds(obs, 10, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := rows[0]
	if r.CountBelow != 1 {
		t.Fatalf("expected NaN never to count as below: got count %d", r.CountBelow)
	}
	// Denominator is the two real observations, not four.
	if r.ProportionBelow != 0.5 {
		t.Fatalf("expected proportion 0.5 over non-NaN total, got %v", r.ProportionBelow)
	}
}

func TestProfileThresholdsMonotoneAndBounded(t *testing.T) {
	obs := []float64{-3.2, -1, 0, 0.5, 2, 2, 7.9, 12}

	rows, err := ProfileThresholds(obs, -10, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Descending thresholds mean counts must be non-increasing down the
	// table, and every row stays within [0, len(obs)] and [0, 1].
	for i, r := range rows {
		if r.CountBelow < 0 || r.CountBelow > len(obs) {
			t.Fatalf("row %d count out of bounds: %d", i, r.CountBelow)
		}
		if r.ProportionBelow < 0 || r.ProportionBelow > 1 {
			t.Fatalf("row %d proportion out of bounds: %v", i, r.ProportionBelow)
		}
		if r.ProportionBelow != float64(r.CountBelow)/float64(len(obs)) {
			t.Fatalf("row %d proportion not exact: %v", i, r.ProportionBelow)
		}
		if i > 0 && r.CountBelow > rows[i-1].CountBelow {
			t.Fatalf("count increased while threshold decreased at row %d", i)
		}
	}
}

func TestProfileThresholdsLeavesInputUntouched(t *testing.T) {
	obs := []float64{9, 1, 5}
	if _, err := ProfileThresholds(obs, 0, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obs[0] != 9 || obs[1] != 1 || obs[2] != 5 {
		t.Fatalf("input slice was reordered: %v", obs)
	}
}
