package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/frostwatch/frostwatch/internal/api/http"
	"github.com/frostwatch/frostwatch/internal/cities"
	"github.com/frostwatch/frostwatch/internal/config"
	"github.com/frostwatch/frostwatch/internal/forecast"
	"github.com/frostwatch/frostwatch/internal/scheduler"
	"github.com/frostwatch/frostwatch/internal/store"
	"github.com/frostwatch/frostwatch/internal/weather"
	"github.com/frostwatch/frostwatch/internal/weather/providers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// City lookup table with optional geocoder fallback.
	var fallback cities.Geocoder
	if g := cities.NewGoogleGeocoder(cfg.GeocoderAPIKey); g != nil {
		fallback = g
	}
	index, err := cities.Load(cfg.CitiesFile, fallback)
	if err != nil {
		log.Fatalf("failed to load city table: %v", err)
	}
	log.Printf("loaded %d cities from %s", index.Len(), cfg.CitiesFile)

	// Shared HTTP client for outbound archive calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory series cache with configured retention, swept periodically.
	cache := store.NewSeriesCache(cfg.CacheMaxEntries, cfg.CacheTTL)
	sched := scheduler.New(cache, cfg.PruneInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Archive provider with resilience (backoff + circuit breaker).
	provider := providers.NewOpenMeteoArchive(httpClient)

	// Core service orchestrating lookup, fetch, derivations, forecasting.
	service := weather.NewService(index, provider, cache, forecast.NewAdditive())

	app := fiber.New(fiber.Config{
		AppName:               "frostwatch",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "frostwatch",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
