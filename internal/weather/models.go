package weather

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Units selects the temperature unit the upstream provider reports in.
// Conversion happens at the provider; everything downstream is unit-agnostic.
type Units string

const (
	UnitsCelsius    Units = "celsius"
	UnitsFahrenheit Units = "fahrenheit"
)

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DateRange is an inclusive day range, both endpoints at midnight UTC.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Key returns a canonical string key for indexing this range in caches.
func (r DateRange) Key() string {
	return r.Start.Format("2006-01-02") + ":" + r.End.Format("2006-01-02")
}

// Observation is a single daily measurement. Value is NaN when the source
// reported no sample for that day.
type Observation struct {
	Date  time.Time `json:"date"` // always UTC
	Value float64   `json:"value"`
}

// MarshalJSON renders a missing sample as null; JSON has no NaN.
func (o Observation) MarshalJSON() ([]byte, error) {
	type row struct {
		Date  time.Time `json:"date"`
		Value *float64  `json:"value"`
	}
	r := row{Date: o.Date}
	if !math.IsNaN(o.Value) {
		v := o.Value
		r.Value = &v
	}
	return json.Marshal(r)
}

// Series is a time-ordered sequence of daily observations.
type Series []Observation

// FloatSeq is a float slice that marshals NaN members as null.
type FloatSeq []float64

func (s FloatSeq) MarshalJSON() ([]byte, error) {
	out := make([]*float64, len(s))
	for i := range s {
		if !math.IsNaN(s[i]) {
			v := s[i]
			out[i] = &v
		}
	}
	return json.Marshal(out)
}

// Values returns the measurement values in series order.
func (s Series) Values() []float64 {
	vals := make([]float64, len(s))
	for i, o := range s {
		vals[i] = o.Value
	}
	return vals
}

// Missing reports how many observations carry no sample.
func (s Series) Missing() int {
	n := 0
	for _, o := range s {
		if math.IsNaN(o.Value) {
			n++
		}
	}
	return n
}

// ForecastPoint is one predicted day: the point estimate plus the bounds of
// a 95% confidence interval.
type ForecastPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Lower float64   `json:"lower"`
	Upper float64   `json:"upper"`
}

// Forecast is a sequence of forecast points ordered by Date ascending.
type Forecast []ForecastPoint

// LowerValues returns the lower confidence bounds in forecast order. The
// threshold table for forecasts is computed over these, not the point
// estimates, so a day only counts as cold when the model is confident.
func (f Forecast) LowerValues() []float64 {
	vals := make([]float64, len(f))
	for i, p := range f {
		vals[i] = p.Lower
	}
	return vals
}

// HistoryRequest identifies one slice of archive data.
type HistoryRequest struct {
	City  string
	Range DateRange
	Units Units
}

// Key returns a canonical cache key for this request at the given coordinates.
func (h HistoryRequest) Key(coords Coordinates) string {
	return fmt.Sprintf("%.4f:%.4f:%s:%s", coords.Lat, coords.Lon, h.Range.Key(), h.Units)
}

// HistoryResult is a fetched archive slice together with the coordinates the
// provider actually resolved (Open-Meteo snaps to its grid).
type HistoryResult struct {
	Resolved Coordinates `json:"resolved"`
	Series   Series      `json:"series"`
}
