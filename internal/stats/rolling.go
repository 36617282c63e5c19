package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// RollingMean computes a centered moving average over values. The window at
// position i spans [i-(w-1)/2, i+w/2], so even windows lean one slot to the
// right. Positions whose window does not fit entirely inside the series are
// NaN. NaN members inside a fitting window are skipped; a window with no
// usable members is NaN.
func RollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}

	left := (window - 1) / 2
	right := window / 2

	buf := make([]float64, 0, window)
	for i := range values {
		lo, hi := i-left, i+right
		if lo < 0 || hi >= len(values) {
			out[i] = math.NaN()
			continue
		}
		buf = buf[:0]
		for _, v := range values[lo : hi+1] {
			if !math.IsNaN(v) {
				buf = append(buf, v)
			}
		}
		if len(buf) == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = stat.Mean(buf, nil)
	}
	return out
}

// ColdFlags marks each observation strictly below threshold. NaN values are
// never cold.
func ColdFlags(values []float64, threshold float64) []bool {
	flags := make([]bool, len(values))
	for i, v := range values {
		flags[i] = v < threshold
	}
	return flags
}

// Bounds returns the min and max over the non-NaN values, and false when
// there are none. Used for plot y-limits.
func Bounds(values []float64) (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		ok = true
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}
