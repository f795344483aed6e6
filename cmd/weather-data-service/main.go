package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/portalhava/weather-data-service/internal/api/http"
	"github.com/portalhava/weather-data-service/internal/config"
	"github.com/portalhava/weather-data-service/internal/history"
	"github.com/portalhava/weather-data-service/internal/hubs"
	"github.com/portalhava/weather-data-service/internal/observability"
	"github.com/portalhava/weather-data-service/internal/scheduler"
	"github.com/portalhava/weather-data-service/internal/store"
	"github.com/portalhava/weather-data-service/internal/weather"
	"github.com/portalhava/weather-data-service/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(log)

	metrics := observability.NewMetrics()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Historical cache backend: redis when configured, memory otherwise.
	var historyCache store.KV = store.NewMemoryKV()
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisKV, err := store.NewRedisKV(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisKV.Close()
		historyCache = redisKV
	}

	service := weather.NewService(weather.ServiceOptions{
		Forecasts:  providers.NewForecastClient(httpClient, ""),
		AirQuality: providers.NewAirQualityClient(httpClient, ""),
		Geocoder:   providers.NewGeocodingClient(httpClient, ""),
		Marine:     providers.NewMarineClient(httpClient, ""),
		Soil:       providers.NewSoilClient(httpClient, ""),
		Snapshots:  store.NewSnapshots[*weather.WeatherModel](),
		Metrics:    metrics,
		Logger:     log,
	})

	historyEngine := history.NewEngine(history.EngineOptions{
		Archive: providers.NewArchiveClient(httpClient, ""),
		Cache:   historyCache,
		TTL:     cfg.HistoryTTL,
		Logger:  log,
		Metrics: metrics,
	})

	resolver := hubs.NewResolver(nil)

	sched := scheduler.New(cfg.Cities, cfg.FetchInterval, service, log, metrics)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-data-service",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
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

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-data-service",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Service:  service,
		History:  historyEngine,
		Resolver: resolver,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()
	log.Info("server started", "port", cfg.Port, "cities", len(cfg.Cities))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}
