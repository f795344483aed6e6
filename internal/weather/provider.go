package weather

import "context"

// ForecastProvider abstracts the forecast data source. The live client and
// the synthetic fallback implement the same contract, so callers cannot
// structurally distinguish real from generated data.
type ForecastProvider interface {
	Forecast(ctx context.Context, coord Coordinate) (*ForecastResponse, error)
}

// AirQualityProvider returns the current air-quality index for a coordinate.
type AirQualityProvider interface {
	AirQuality(ctx context.Context, coord Coordinate) (float64, error)
}

// GeocodingProvider resolves a free-text place name to its best match.
// A nil Place with nil error means no match.
type GeocodingProvider interface {
	Geocode(ctx context.Context, name string) (*Place, error)
}

// MarineProvider returns coastal conditions for a coordinate.
type MarineProvider interface {
	Marine(ctx context.Context, coord Coordinate) (*MarineData, error)
}

// SoilProvider returns topsoil conditions for a coordinate.
type SoilProvider interface {
	Soil(ctx context.Context, coord Coordinate) (*SoilData, error)
}
