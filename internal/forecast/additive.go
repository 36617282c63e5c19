// Package forecast extrapolates a daily observation series with a simple
// additive model: a trend component plus yearly Fourier seasonality, fit by
// ordinary least squares, with a Gaussian 95% interval from the residuals.
package forecast

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/frostwatch/frostwatch/internal/weather"
)

// ErrInsufficientHistory is returned when the series is too short to fit a
// yearly seasonal model.
var ErrInsufficientHistory = errors.New("insufficient history to forecast")

// MinHistoryDays is the minimum series length (counting missing days) needed
// before a forecast is attempted; anything shorter cannot pin down a yearly
// cycle.
const MinHistoryDays = 365

const (
	yearlyPeriodDays = 365.25
	yearlyHarmonics  = 3
	intervalZ        = 1.96 // 95% two-sided
)

// Additive is the ordinary-least-squares implementation of
// weather.Forecaster.
type Additive struct{}

func NewAdditive() *Additive {
	return &Additive{}
}

// designRow fills one row of the design matrix for day offset t.
func designRow(dst []float64, t float64, trend weather.Trend) {
	dst[0] = 1
	i := 1
	if trend == weather.TrendLinear {
		dst[1] = t
		i = 2
	}
	for k := 1; k <= yearlyHarmonics; k++ {
		omega := 2 * math.Pi * float64(k) * t / yearlyPeriodDays
		dst[i] = math.Sin(omega)
		dst[i+1] = math.Cos(omega)
		i += 2
	}
}

func featureCount(trend weather.Trend) int {
	n := 1 + 2*yearlyHarmonics
	if trend == weather.TrendLinear {
		n++
	}
	return n
}

// Forecast fits the model to the series and emits one point per day for
// horizonDays days after the last observation. History is not included in
// the output. Missing (NaN) observations are dropped before fitting but
// still count toward the MinHistoryDays guard, matching how the series is
// windowed upstream.
func (a *Additive) Forecast(series weather.Series, horizonDays int, trend weather.Trend) (weather.Forecast, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizonDays)
	}
	if trend != weather.TrendFlat && trend != weather.TrendLinear {
		return nil, fmt.Errorf("unknown trend %q", trend)
	}
	if len(series) < MinHistoryDays {
		return nil, fmt.Errorf("%w: have %d days, need %d", ErrInsufficientHistory, len(series), MinHistoryDays)
	}

	origin := series[0].Date

	var (
		offsets []float64
		ys      []float64
	)
	for _, obs := range series {
		if math.IsNaN(obs.Value) {
			continue
		}
		offsets = append(offsets, obs.Date.Sub(origin).Hours()/24)
		ys = append(ys, obs.Value)
	}

	p := featureCount(trend)
	if len(ys) < p {
		return nil, fmt.Errorf("%w: only %d usable observations", ErrInsufficientHistory, len(ys))
	}

	X := mat.NewDense(len(ys), p, nil)
	row := make([]float64, p)
	for i, t := range offsets {
		designRow(row, t, trend)
		X.SetRow(i, row)
	}
	b := mat.NewVecDense(len(ys), ys)

	var beta mat.VecDense
	if err := beta.SolveVec(X, b); err != nil {
		return nil, fmt.Errorf("fit additive model: %w", err)
	}

	// Residual spread drives the interval width.
	residuals := make([]float64, len(ys))
	for i, t := range offsets {
		designRow(row, t, trend)
		fitted := mat.Dot(mat.NewVecDense(p, row), &beta)
		residuals[i] = ys[i] - fitted
	}
	sigma := stat.StdDev(residuals, nil)
	margin := intervalZ * sigma

	last := series[len(series)-1].Date
	out := make(weather.Forecast, 0, horizonDays)
	for d := 1; d <= horizonDays; d++ {
		date := last.AddDate(0, 0, d)
		t := date.Sub(origin).Hours() / 24
		designRow(row, t, trend)
		value := mat.Dot(mat.NewVecDense(p, row), &beta)
		out = append(out, weather.ForecastPoint{
			Date:  date,
			Value: value,
			Lower: value - margin,
			Upper: value + margin,
		})
	}
	return out, nil
}
