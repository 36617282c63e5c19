package httpapi

import (
	"errors"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/frostwatch/frostwatch/internal/cities"
	"github.com/frostwatch/frostwatch/internal/forecast"
	"github.com/frostwatch/frostwatch/internal/stats"
	"github.com/frostwatch/frostwatch/internal/weather"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/cities", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"cities": service.Cities(c.Query("q")),
		})
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		view, err := service.History(c.Context(), req.toRequest(), req.toOptions(c))
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(view)
	})

	v1.Get("/weather/history/thresholds", func(c *fiber.Ctx) error {
		var req thresholdQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rows, err := service.HistoryProfile(c.Context(), req.History.toRequest(), req.Low, req.High)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(fiber.Map{"rows": displayRows(rows)})
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		var req forecastQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		fc, err := service.Forecast(c.Context(), req.History.toRequest(), req.Years, weather.Trend(req.Trend))
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(fiber.Map{"forecast": fc})
	})

	v1.Get("/weather/forecast/thresholds", func(c *fiber.Ctx) error {
		var req forecastThresholdQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rows, err := service.ForecastProfile(c.Context(),
			req.Forecast.History.toRequest(),
			req.Forecast.Years, weather.Trend(req.Forecast.Trend),
			req.Low, req.High)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(fiber.Map{"rows": displayRows(rows)})
	})
}

// mapServiceError translates domain errors into HTTP statuses.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, cities.ErrUnknownCity):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, stats.ErrNoObservations),
		errors.Is(err, forecast.ErrInsufficientHistory):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
	}
}

// displayRow is a ThresholdRow with the proportion rounded for display. The
// profiler itself stays full-precision; three decimals is this renderer's
// convention.
type displayRow struct {
	Threshold       int     `json:"threshold"`
	CountBelow      int     `json:"countBelow"`
	ProportionBelow float64 `json:"proportionBelow"`
}

func displayRows(rows []stats.ThresholdRow) []displayRow {
	out := make([]displayRow, len(rows))
	for i, r := range rows {
		out[i] = displayRow{
			Threshold:       r.Threshold,
			CountBelow:      r.CountBelow,
			ProportionBelow: math.Round(r.ProportionBelow*1000) / 1000,
		}
	}
	return out
}

// historyQuery holds the parameters shared by every archive-backed endpoint.
type historyQuery struct {
	City  string `validate:"required"`
	Units string `validate:"required,oneof=celsius fahrenheit"`
	Start time.Time
	End   time.Time
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	h.City = c.Query("city")
	h.Units = c.Query("units", string(weather.UnitsCelsius))

	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		return errors.New("start and end query parameters are required")
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return errors.New("invalid start date; use YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return errors.New("invalid end date; use YYYY-MM-DD")
	}
	if end.Before(start) {
		return errors.New("end date must not be before start date")
	}
	h.Start = start.UTC()
	h.End = end.UTC()

	return validate.Struct(h)
}

func (h historyQuery) toRequest() weather.HistoryRequest {
	return weather.HistoryRequest{
		City:  h.City,
		Range: weather.DateRange{Start: h.Start, End: h.End},
		Units: weather.Units(h.Units),
	}
}

// toOptions reads the optional derived-column switches.
func (h historyQuery) toOptions(c *fiber.Ctx) weather.HistoryOptions {
	opts := weather.HistoryOptions{
		RollWeek:  c.QueryBool("roll_week"),
		RollMonth: c.QueryBool("roll_month"),
	}
	if c.Query("cold_below") != "" {
		threshold := c.QueryFloat("cold_below")
		opts.ColdBelow = &threshold
	}
	return opts
}

// thresholdQuery adds the sweep bounds to a history query.
type thresholdQuery struct {
	History historyQuery
	Low     int
	High    int
}

func (t *thresholdQuery) bind(c *fiber.Ctx) error {
	if err := t.History.bind(c); err != nil {
		return err
	}
	if c.Query("low") == "" || c.Query("high") == "" {
		return errors.New("low and high query parameters are required")
	}
	t.Low = c.QueryInt("low")
	t.High = c.QueryInt("high")
	return nil
}

// forecastQuery adds horizon and trend to a history query.
type forecastQuery struct {
	History historyQuery
	Years   int    `validate:"required,min=1,max=5"`
	Trend   string `validate:"required,oneof=flat linear"`
}

func (f *forecastQuery) bind(c *fiber.Ctx) error {
	if err := f.History.bind(c); err != nil {
		return err
	}
	f.Years = c.QueryInt("years", 1)
	f.Trend = c.Query("trend", string(weather.TrendFlat))
	return validate.Struct(f)
}

// forecastThresholdQuery adds the sweep bounds to a forecast query.
type forecastThresholdQuery struct {
	Forecast forecastQuery
	Low      int
	High     int
}

func (ft *forecastThresholdQuery) bind(c *fiber.Ctx) error {
	if err := ft.Forecast.bind(c); err != nil {
		return err
	}
	if c.Query("low") == "" || c.Query("high") == "" {
		return errors.New("low and high query parameters are required")
	}
	ft.Low = c.QueryInt("low")
	ft.High = c.QueryInt("high")
	return nil
}
