package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/portalhava/weather-data-service/internal/weather"
)

// CityConfig is one city the scheduler keeps warm.
type CityConfig struct {
	Name       string
	Coordinate weather.Coordinate
}

type AppConfig struct {
	Port string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// FetchInterval controls how often snapshots are refreshed.
	FetchInterval time.Duration

	// Cities to keep warm snapshots for.
	Cities []CityConfig

	// HistoryTTL is the freshness window of the historical cache.
	HistoryTTL time.Duration

	// RedisURL selects the redis-backed cache; empty keeps it in memory.
	RedisURL string

	LogLevel slog.Level
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.RedisURL = os.Getenv("REDIS_URL")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	interval, err := getenvDuration("FETCH_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	cfg.FetchInterval = interval

	ttl, err := getenvDuration("HISTORY_TTL", "24h")
	if err != nil {
		return nil, err
	}
	cfg.HistoryTTL = ttl

	cities, err := parseCities(getenvDefault("WEATHER_CITIES", "İstanbul:41.0082:28.9784"))
	if err != nil {
		return nil, err
	}
	cfg.Cities = cities

	cfg.LogLevel = parseLogLevel(getenvDefault("LOG_LEVEL", "info"))

	return cfg, nil
}

// parseCities reads a comma-separated "Name:lat:lon" list.
func parseCities(raw string) ([]CityConfig, error) {
	var cities []CityConfig
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid WEATHER_CITIES entry %q, want Name:lat:lon", entry)
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in WEATHER_CITIES entry %q: %w", entry, err)
		}
		lon, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in WEATHER_CITIES entry %q: %w", entry, err)
		}
		cities = append(cities, CityConfig{
			Name:       parts[0],
			Coordinate: weather.Coordinate{Lat: lat, Lon: lon},
		})
	}
	if len(cities) == 0 {
		return nil, fmt.Errorf("WEATHER_CITIES produced no cities")
	}
	return cities, nil
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	raw := getenvDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
