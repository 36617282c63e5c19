// Package stats holds the numeric derivations behind the dashboard tables
// and plots: the threshold sweep, rolling averages, and cold-day flags.
package stats

import (
	"errors"
	"math"
	"sort"
)

// ErrNoObservations is returned when a profile is requested over zero
// non-missing observations, where the proportion would be 0/0.
var ErrNoObservations = errors.New("no observations to profile")

// ThresholdRow is one line of a threshold profile: how many observations
// fall strictly below Threshold, and which fraction of the total that is.
type ThresholdRow struct {
	Threshold       int     `json:"threshold"`
	CountBelow      int     `json:"countBelow"`
	ProportionBelow float64 `json:"proportionBelow"`
}

// ProfileThresholds computes, for every integer threshold t in [low, high],
// the count and proportion of observations strictly less than t, ordered by
// descending threshold.
//
// NaN observations are treated as absent: they never count as below any
// threshold and are excluded from the denominator as well. If no non-NaN
// observations remain, ErrNoObservations is returned. A reversed range
// (low > high) is not an error; the sweep set is empty and so is the result.
//
// Proportions are returned at full precision; rounding for display is the
// caller's concern.
func ProfileThresholds(observations []float64, low, high int) ([]ThresholdRow, error) {
	sorted := make([]float64, 0, len(observations))
	for _, v := range observations {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return nil, ErrNoObservations
	}
	if low > high {
		return []ThresholdRow{}, nil
	}

	sort.Float64s(sorted)
	total := float64(len(sorted))

	rows := make([]ThresholdRow, 0, high-low+1)
	for t := high; t >= low; t-- {
		// First index with sorted[i] >= t is exactly the count of
		// values strictly below t.
		below := sort.SearchFloat64s(sorted, float64(t))
		rows = append(rows, ThresholdRow{
			Threshold:       t,
			CountBelow:      below,
			ProportionBelow: float64(below) / total,
		})
	}
	return rows, nil
}
