package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/frostwatch/frostwatch/internal/weather"
	"github.com/sony/gobreaker"
)

const archiveDateLayout = "2006-01-02"

// OpenMeteoArchive implements weather.HistoryProvider against the Open-Meteo
// historical archive API, requesting daily minimum temperatures.
type OpenMeteoArchive struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoArchive(client *http.Client) *OpenMeteoArchive {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo-archive",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteoArchive{
		name:    "openmeteo-archive",
		baseURL: "https://archive-api.open-meteo.com/v1/archive",
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      5,
				InitialInterval: 200 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (p *OpenMeteoArchive) Name() string {
	return p.name
}

// archivePayload mirrors the fields we use of the archive response. Daily
// values arrive as a nullable array; null samples become NaN observations.
type archivePayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Daily     struct {
		Time    []string   `json:"time"`
		TempMin []*float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

func (p *OpenMeteoArchive) FetchDailyMin(ctx context.Context, coords weather.Coordinates, rng weather.DateRange, units weather.Units) (weather.HistoryResult, error) {
	if rng.End.Before(rng.Start) {
		return weather.HistoryResult{}, fmt.Errorf("archive range end %s before start %s",
			rng.End.Format(archiveDateLayout), rng.Start.Format(archiveDateLayout))
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", coords.Lat))
		values.Set("longitude", fmt.Sprintf("%f", coords.Lon))
		values.Set("start_date", rng.Start.Format(archiveDateLayout))
		values.Set("end_date", rng.End.Format(archiveDateLayout))
		values.Set("daily", "temperature_2m_min")
		values.Set("timezone", "UTC")
		values.Set("temperature_unit", string(units))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.HistoryResult{}, err
	}
	defer resp.Body.Close()

	var payload archivePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.HistoryResult{}, err
	}

	if len(payload.Daily.Time) != len(payload.Daily.TempMin) {
		return weather.HistoryResult{}, fmt.Errorf("archive response misaligned: %d dates, %d values",
			len(payload.Daily.Time), len(payload.Daily.TempMin))
	}

	series := make(weather.Series, 0, len(payload.Daily.Time))
	for i, day := range payload.Daily.Time {
		ts, err := time.Parse(archiveDateLayout, day)
		if err != nil {
			return weather.HistoryResult{}, fmt.Errorf("archive response has invalid date %q: %w", day, err)
		}

		value := math.NaN()
		if v := payload.Daily.TempMin[i]; v != nil {
			value = *v
		}

		series = append(series, weather.Observation{
			Date:  ts.UTC(),
			Value: value,
		})
	}

	return weather.HistoryResult{
		Resolved: weather.Coordinates{Lat: payload.Latitude, Lon: payload.Longitude},
		Series:   series,
	}, nil
}
