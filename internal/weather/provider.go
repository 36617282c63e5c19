package weather

import (
	"context"
)

// HistoryProvider abstracts an archive weather data source (e.g. the
// Open-Meteo archive API). Implementations return one observation per day in
// the requested range, in date order, with NaN values for missing samples.
type HistoryProvider interface {
	Name() string
	FetchDailyMin(ctx context.Context, coords Coordinates, rng DateRange, units Units) (HistoryResult, error)
}

// Trend selects the trend component of a forecast model.
type Trend string

const (
	TrendFlat   Trend = "flat"
	TrendLinear Trend = "linear"
)

// Forecaster abstracts the extrapolation model: fit the series, emit one
// point per day for horizonDays days past its end. The model behind it is a
// black box to callers.
type Forecaster interface {
	Forecast(series Series, horizonDays int, trend Trend) (Forecast, error)
}

// HistoryCache is the contract the in-memory series cache (and any future
// persistent cache) must satisfy.
type HistoryCache interface {
	Get(key string) (HistoryResult, bool)
	Put(key string, result HistoryResult)
}
