package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/portalhava/weather-data-service/internal/observability"
	"github.com/portalhava/weather-data-service/internal/store"
	"github.com/portalhava/weather-data-service/internal/weather"
)

const (
	// cacheKey holds the single cached history payload. A lookup for a
	// different city overwrites it on the next successful fetch.
	cacheKey = "history:latest"

	// DefaultTTL is how long a cached history payload stays fresh.
	DefaultTTL = 24 * time.Hour

	// trailingWindowLag keeps the window clear of days the archive has not
	// consolidated yet.
	trailingWindowLag = 5

	daysOfYear = 366
)

// sampleOffsets are the years back from now used to build the climatology.
var sampleOffsets = []int{3, 6, 9}

// Carry-forward seeds for leading climatology gaps.
const (
	seedHigh   = 15.0
	seedLow    = 5.0
	seedPrecip = 1.0
)

type cacheEnvelope struct {
	City      string         `json:"city"`
	Timestamp time.Time      `json:"timestamp"`
	Data      HistoricalData `json:"data"`
}

// EngineOptions wires the history engine's collaborators.
type EngineOptions struct {
	Archive ArchiveProvider
	Cache   store.KV
	TTL     time.Duration
	Clock   clockwork.Clock
	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// Engine computes historical averages from archive data, caching the result
// so repeat lookups within the TTL cost no upstream calls.
type Engine struct {
	archive ArchiveProvider
	cache   store.KV
	ttl     time.Duration
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewEngine creates a history engine.
func NewEngine(opts EngineOptions) *Engine {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		archive: opts.Archive,
		cache:   opts.Cache,
		ttl:     ttl,
		clock:   clock,
		logger:  logger,
		metrics: opts.Metrics,
	}
}

// History returns the trailing 12 months plus the multi-year climatology for
// a city. Any archive failure yields an empty payload and a nil error so the
// caller's page still renders.
func (e *Engine) History(ctx context.Context, city string, coord weather.Coordinate) (*HistoricalData, error) {
	if cached := e.lookupCache(ctx, city); cached != nil {
		return cached, nil
	}

	data, err := e.build(ctx, coord)
	if err != nil {
		e.logger.Warn("history fetch failed, returning empty payload", "city", city, "error", err)
		return &HistoricalData{}, nil
	}

	e.storeCache(ctx, city, data)
	return data, nil
}

// lookupCache returns the cached payload when it belongs to the same city and
// is still fresh. Corrupt entries count as misses.
func (e *Engine) lookupCache(ctx context.Context, city string) *HistoricalData {
	if e.cache == nil {
		return nil
	}

	raw, err := e.cache.Get(ctx, cacheKey)
	if errors.Is(err, store.ErrNotFound) {
		e.countCache("miss")
		return nil
	}
	if err != nil {
		e.countCache("miss")
		e.logger.Warn("history cache read failed", "error", err)
		return nil
	}

	var env cacheEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		e.countCache("corrupt")
		e.logger.Warn("history cache entry corrupt, refetching", "error", err)
		return nil
	}

	if env.City != city {
		e.countCache("miss")
		return nil
	}
	if e.clock.Now().Sub(env.Timestamp) >= e.ttl {
		e.countCache("expired")
		return nil
	}

	e.countCache("hit")
	return &env.Data
}

func (e *Engine) storeCache(ctx context.Context, city string, data *HistoricalData) {
	if e.cache == nil {
		return
	}

	env := cacheEnvelope{City: city, Timestamp: e.clock.Now(), Data: *data}
	raw, err := json.Marshal(env)
	if err != nil {
		e.logger.Warn("history cache encode failed", "error", err)
		return
	}
	if err := e.cache.Set(ctx, cacheKey, raw); err != nil {
		e.logger.Warn("history cache write failed", "error", err)
	}
}

// build fetches the trailing window and the sampled years and derives the
// climatology. All fetches must succeed; a single failure aborts the build.
func (e *Engine) build(ctx context.Context, coord weather.Coordinate) (*HistoricalData, error) {
	now := e.clock.Now()

	trailingStart := now.AddDate(-1, 0, 0)
	trailingEnd := now.AddDate(0, 0, -trailingWindowLag)
	trailing, err := e.archive.DailyRange(ctx, coord, trailingStart, trailingEnd)
	if err != nil {
		return nil, fmt.Errorf("trailing window: %w", err)
	}

	samples := make([]*ArchiveResponse, 0, len(sampleOffsets))
	for _, offset := range sampleOffsets {
		year := now.Year() - offset
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		resp, err := e.archive.DailyRange(ctx, coord, start, end)
		if err != nil {
			return nil, fmt.Errorf("sample year %d: %w", year, err)
		}
		samples = append(samples, resp)
	}

	return &HistoricalData{
		Last12Months: dayPoints(trailing),
		Climatology:  climatology(samples),
	}, nil
}

func dayPoints(resp *ArchiveResponse) []HistoricalDayPoint {
	d := resp.Daily
	points := make([]HistoricalDayPoint, 0, len(d.Time))
	for i, date := range d.Time {
		points = append(points, HistoricalDayPoint{
			Date:          date,
			High:          floatAt(d.TemperatureMax, i),
			Low:           floatAt(d.TemperatureMin, i),
			Precipitation: floatAt(d.PrecipitationSum, i),
		})
	}
	return points
}

// climatology averages the sampled years per day of year, then fills gaps by
// carrying the previous day's averages forward.
func climatology(samples []*ArchiveResponse) []ClimatologyPoint {
	type accum struct {
		high, low, precip float64
		n                 int
	}
	byDay := make(map[int]*accum, daysOfYear)

	for _, resp := range samples {
		d := resp.Daily
		for i, raw := range d.Time {
			t, err := time.Parse("2006-01-02", raw)
			if err != nil {
				continue
			}
			day := t.YearDay()
			a := byDay[day]
			if a == nil {
				a = &accum{}
				byDay[day] = a
			}
			a.high += floatAt(d.TemperatureMax, i)
			a.low += floatAt(d.TemperatureMin, i)
			a.precip += floatAt(d.PrecipitationSum, i)
			a.n++
		}
	}

	points := make([]ClimatologyPoint, 0, daysOfYear)
	lastHigh, lastLow, lastPrecip := seedHigh, seedLow, seedPrecip
	for day := 1; day <= daysOfYear; day++ {
		if a, ok := byDay[day]; ok && a.n > 0 {
			n := float64(a.n)
			lastHigh = a.high / n
			lastLow = a.low / n
			lastPrecip = a.precip / n
		}
		points = append(points, ClimatologyPoint{
			DayOfYear:        day,
			AvgHigh:          lastHigh,
			AvgLow:           lastLow,
			AvgPrecipitation: lastPrecip,
		})
	}
	return points
}

func (e *Engine) countCache(result string) {
	if e.metrics == nil {
		return
	}
	e.metrics.HistoryCache.WithLabelValues(result).Inc()
}

func floatAt(vals []float64, i int) float64 {
	if i < 0 || i >= len(vals) {
		return 0
	}
	return vals[i]
}
