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

	httpapi "github.com/mpetrenko/museum-weather-dashboard/internal/api/http"
	"github.com/mpetrenko/museum-weather-dashboard/internal/artwork"
	"github.com/mpetrenko/museum-weather-dashboard/internal/artwork/met"
	"github.com/mpetrenko/museum-weather-dashboard/internal/config"
	"github.com/mpetrenko/museum-weather-dashboard/internal/geo"
	"github.com/mpetrenko/museum-weather-dashboard/internal/scheduler"
	"github.com/mpetrenko/museum-weather-dashboard/internal/session"
	"github.com/mpetrenko/museum-weather-dashboard/internal/weather"
	"github.com/mpetrenko/museum-weather-dashboard/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound API calls; per-call contexts apply
	// the tighter endpoint-specific deadlines.
	httpClient := &http.Client{
		Timeout: cfg.WeatherTimeout,
	}

	// Artwork pipeline: MET collection client + search/filter service.
	metClient := met.NewClient(httpClient, met.ClientConfig{
		BaseURL:        cfg.METBaseURL,
		RequestsPerSec: cfg.METRequestsPerSec,
		MaxRetries:     cfg.MaxRetries,
		SearchTimeout:  cfg.SearchTimeout,
		DetailTimeout:  cfg.DetailTimeout,
	})
	artworkSvc := artwork.NewService(metClient, cfg.DefaultArtworkLimit, cfg.MaxArtworkLimit, cfg.ArtworkCacheTTL, cfg.DepartmentCacheTTL)

	// Weather pipeline: Open-Meteo provider + forecast service.
	openMeteo := providers.NewOpenMeteoProvider(httpClient, cfg.OpenMeteoBaseURL, cfg.MaxRetries)
	weatherSvc := weather.NewService(openMeteo, cfg.Cities, cfg.WeatherCacheTTL, cfg.WeatherTimeout)

	// Per-session coordinate state, replacing ambient globals.
	sessions := session.NewStore(cfg.SessionMaxAge)

	// Optional reverse geocoding for map-click labels.
	var labeler geo.Labeler
	if cfg.GeocoderAPIKey != "" {
		labeler = geo.NewReverseGeocoder(cfg.GeocoderAPIKey)
	}

	// Scheduler that pre-warms the forecast cache for the preset cities.
	sched := scheduler.New(cfg.WarmInterval, weatherSvc)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "museum-weather-dashboard",
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
			"service": "museum-weather-dashboard",
		})
	})

	// API routes.
	defaultCity := weather.City{}
	if len(cfg.Cities) > 0 {
		defaultCity = cfg.Cities[0]
	}
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Artworks:    artworkSvc,
		Weather:     weatherSvc,
		Sessions:    sessions,
		Labeler:     labeler,
		DefaultCity: defaultCity,
	})

	// Start server with graceful shutdown
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
