package weather

import (
	"context"
	"log"

	"github.com/frostwatch/frostwatch/internal/cities"
	"github.com/frostwatch/frostwatch/internal/stats"
)

// Rolling average windows offered by the dashboard.
const (
	windowWeek  = 7
	windowMonth = 30
)

// HistoryOptions selects the derived columns included in a HistoryView.
type HistoryOptions struct {
	RollWeek  bool
	RollMonth bool
	ColdBelow *float64 // nil disables cold-day flags
}

// HistoryView is the fully derived history response: the raw series plus
// whatever derived columns were requested and the y-range for plotting.
type HistoryView struct {
	City      string      `json:"city"`
	Resolved  Coordinates `json:"resolved"`
	Series    Series      `json:"series"`
	RollWeek  FloatSeq    `json:"rollWeek,omitempty"`
	RollMonth FloatSeq    `json:"rollMonth,omitempty"`
	Cold      []bool      `json:"cold,omitempty"`
	PlotMin   float64     `json:"plotMin"`
	PlotMax   float64     `json:"plotMax"`
}

// Service orchestrates city resolution, cached archive fetches, and the
// derivations the dashboard endpoints serve.
type Service struct {
	cities     *cities.Index
	provider   HistoryProvider
	cache      HistoryCache
	forecaster Forecaster
}

// NewService creates a new Service. cache may be nil to disable caching.
func NewService(idx *cities.Index, provider HistoryProvider, cache HistoryCache, forecaster Forecaster) *Service {
	return &Service{
		cities:     idx,
		provider:   provider,
		cache:      cache,
		forecaster: forecaster,
	}
}

// Cities returns picker entries matching q.
func (s *Service) Cities(q string) []cities.City {
	return s.cities.Search(q)
}

// fetch resolves the city and returns its archive slice, consulting the
// cache first.
func (s *Service) fetch(ctx context.Context, req HistoryRequest) (HistoryResult, error) {
	city, err := s.cities.Resolve(req.City)
	if err != nil {
		return HistoryResult{}, err
	}
	coords := Coordinates{Lat: city.Lat, Lon: city.Lng}

	key := req.Key(coords)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached, nil
		}
	}

	result, err := s.provider.FetchDailyMin(ctx, coords, req.Range, req.Units)
	if err != nil {
		return HistoryResult{}, err
	}

	if missing := result.Series.Missing(); missing > 0 {
		log.Printf("history for %s has %d missing days of %d", req.City, missing, len(result.Series))
	}

	if s.cache != nil {
		s.cache.Put(key, result)
	}
	return result, nil
}

// History returns the observed series with the requested derived columns.
func (s *Service) History(ctx context.Context, req HistoryRequest, opts HistoryOptions) (HistoryView, error) {
	result, err := s.fetch(ctx, req)
	if err != nil {
		return HistoryView{}, err
	}

	view := HistoryView{
		City:     req.City,
		Resolved: result.Resolved,
		Series:   result.Series,
	}

	values := result.Series.Values()
	if opts.RollWeek {
		view.RollWeek = stats.RollingMean(values, windowWeek)
	}
	if opts.RollMonth {
		view.RollMonth = stats.RollingMean(values, windowMonth)
	}
	if opts.ColdBelow != nil {
		view.Cold = stats.ColdFlags(values, *opts.ColdBelow)
	}

	// Pad the plot range by 10% like the dashboard always has.
	if min, max, ok := stats.Bounds(values); ok {
		view.PlotMin = min * 1.1
		view.PlotMax = max * 1.1
	}

	return view, nil
}

// HistoryProfile sweeps thresholds over the observed series.
func (s *Service) HistoryProfile(ctx context.Context, req HistoryRequest, low, high int) ([]stats.ThresholdRow, error) {
	result, err := s.fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	return stats.ProfileThresholds(result.Series.Values(), low, high)
}

// Forecast fits the additive model to the requested history slice and
// extrapolates years*365 days past its end.
func (s *Service) Forecast(ctx context.Context, req HistoryRequest, years int, trend Trend) (Forecast, error) {
	result, err := s.fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.forecaster.Forecast(result.Series, years*365, trend)
}

// ForecastProfile sweeps thresholds over the forecast's lower confidence
// bounds.
func (s *Service) ForecastProfile(ctx context.Context, req HistoryRequest, years int, trend Trend, low, high int) ([]stats.ThresholdRow, error) {
	fc, err := s.Forecast(ctx, req, years, trend)
	if err != nil {
		return nil, err
	}
	return stats.ProfileThresholds(fc.LowerValues(), low, high)
}
