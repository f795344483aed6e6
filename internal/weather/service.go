package weather

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/portalhava/weather-data-service/internal/observability"
	"github.com/portalhava/weather-data-service/internal/store"
)

// ServiceOptions wires the service's collaborators. Forecasts and Synthetic
// are required; the rest degrade gracefully when nil.
type ServiceOptions struct {
	Forecasts  ForecastProvider
	Synthetic  ForecastProvider
	AirQuality AirQualityProvider
	Geocoder   GeocodingProvider
	Marine     MarineProvider
	Soil       SoilProvider
	Snapshots  *store.Snapshots[*WeatherModel]
	Metrics    *observability.Metrics
	Logger     *slog.Logger
	Clock      clockwork.Clock
}

// Service orchestrates provider fetches into canonical weather models.
// Every failure degrades to a documented fallback; no call site ever sees a
// forecast error.
type Service struct {
	forecasts  ForecastProvider
	synthetic  ForecastProvider
	airQuality AirQualityProvider
	geocoder   GeocodingProvider
	marine     MarineProvider
	soil       SoilProvider
	snapshots  *store.Snapshots[*WeatherModel]
	metrics    *observability.Metrics
	logger     *slog.Logger
	clock      clockwork.Clock

	// inFlight tracks the newest request token per city so superseded
	// responses are discarded instead of overwriting fresher state.
	mu       sync.Mutex
	inFlight map[string]uuid.UUID
}

// NewService creates a Service from its options.
func NewService(opts ServiceOptions) *Service {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	synthetic := opts.Synthetic
	if synthetic == nil {
		synthetic = NewSyntheticProvider(clock)
	}
	return &Service{
		forecasts:  opts.Forecasts,
		synthetic:  synthetic,
		airQuality: opts.AirQuality,
		geocoder:   opts.Geocoder,
		marine:     opts.Marine,
		soil:       opts.Soil,
		snapshots:  opts.Snapshots,
		metrics:    opts.Metrics,
		logger:     logger,
		clock:      clock,
		inFlight:   make(map[string]uuid.UUID),
	}
}

// Fetch produces a canonical model for a city. When coord is nil the city
// name is geocoded; when the forecast call fails (or no coordinate can be
// resolved) the synthetic provider fills in, so a model is always returned.
func (s *Service) Fetch(ctx context.Context, city string, coord *Coordinate) *WeatherModel {
	if coord == nil {
		coord = s.resolveCoordinate(ctx, city)
	}
	if coord == nil {
		s.logger.Warn("no coordinate for city, serving synthetic data", "city", city)
		return s.syntheticModel(ctx, city, Coordinate{})
	}

	resp, err := s.forecasts.Forecast(ctx, *coord)
	if err != nil {
		s.countProvider("forecast", err)
		s.logger.Warn("forecast fetch failed, serving synthetic data", "city", city, "error", err)
		return s.syntheticModel(ctx, city, *coord)
	}
	s.countProvider("forecast", nil)

	return Normalize(resp, city, s.fetchAQI(ctx, *coord))
}

// Refresh fetches and stores the snapshot for a configured city. If a newer
// refresh for the same city started while this one was in flight, the result
// is discarded silently.
func (s *Service) Refresh(ctx context.Context, city string, coord *Coordinate) {
	token := uuid.New()
	s.mu.Lock()
	s.inFlight[city] = token
	s.mu.Unlock()

	model := s.Fetch(ctx, city, coord)

	s.mu.Lock()
	current := s.inFlight[city]
	s.mu.Unlock()
	if current != token {
		if s.metrics != nil {
			s.metrics.StaleDiscards.Inc()
		}
		s.logger.Debug("discarding superseded refresh", "city", city)
		return
	}

	if s.snapshots != nil {
		s.snapshots.Save(city, model)
	}
}

// Latest returns the stored snapshot for a city, or store.ErrNotFound.
func (s *Service) Latest(city string) (*WeatherModel, error) {
	if s.snapshots == nil {
		return nil, store.ErrNotFound
	}
	return s.snapshots.Latest(city)
}

// Geocode resolves a free-text name. Nil on failure or no match.
func (s *Service) Geocode(ctx context.Context, name string) *Place {
	if s.geocoder == nil {
		return nil
	}
	place, err := s.geocoder.Geocode(ctx, name)
	s.countProvider("geocoding", err)
	if err != nil {
		s.logger.Warn("geocoding failed", "name", name, "error", err)
		return nil
	}
	return place
}

// MarineFor returns coastal conditions for a coordinate, nil on any failure.
func (s *Service) MarineFor(ctx context.Context, coord Coordinate) *MarineData {
	if s.marine == nil {
		return nil
	}
	data, err := s.marine.Marine(ctx, coord)
	s.countProvider("marine", err)
	if err != nil {
		s.logger.Warn("marine fetch failed", "lat", coord.Lat, "lon", coord.Lon, "error", err)
		return nil
	}
	return data
}

// SoilFor returns topsoil conditions for a coordinate, nil on any failure.
func (s *Service) SoilFor(ctx context.Context, coord Coordinate) *SoilData {
	if s.soil == nil {
		return nil
	}
	data, err := s.soil.Soil(ctx, coord)
	s.countProvider("soil", err)
	if err != nil {
		s.logger.Warn("soil fetch failed", "lat", coord.Lat, "lon", coord.Lon, "error", err)
		return nil
	}
	return data
}

func (s *Service) resolveCoordinate(ctx context.Context, city string) *Coordinate {
	place := s.Geocode(ctx, city)
	if place == nil {
		return nil
	}
	coord := place.Coordinate
	return &coord
}

// fetchAQI looks up the air-quality index; a failure substitutes the neutral
// default rather than failing the whole normalization.
func (s *Service) fetchAQI(ctx context.Context, coord Coordinate) float64 {
	if s.airQuality == nil {
		return DefaultAQI
	}
	aqi, err := s.airQuality.AirQuality(ctx, coord)
	s.countProvider("air_quality", err)
	if err != nil {
		s.logger.Warn("air quality fetch failed, using default", "error", err)
		return DefaultAQI
	}
	return aqi
}

func (s *Service) syntheticModel(ctx context.Context, city string, coord Coordinate) *WeatherModel {
	if s.metrics != nil {
		s.metrics.SyntheticFallbacks.Inc()
	}
	resp, _ := s.synthetic.Forecast(ctx, coord)
	return Normalize(resp, city, DefaultAQI)
}

func (s *Service) countProvider(provider string, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	s.metrics.ProviderRequests.WithLabelValues(provider, outcome).Inc()
}
