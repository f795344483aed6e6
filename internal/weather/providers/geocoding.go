package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/portalhava/weather-data-service/internal/weather"
)

const defaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com/v1/search"

// GeocodingClient resolves free-text place names to coordinates using the
// open-meteo geocoding API.
type GeocodingClient struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewGeocodingClient(client *http.Client, baseURL string) *GeocodingClient {
	if baseURL == "" {
		baseURL = defaultGeocodingBaseURL
	}
	return &GeocodingClient{
		name:    "open-meteo-geocoding",
		baseURL: baseURL,
		httpCfg: defaultHTTPConfig(client),
		circuit: newCircuit("open-meteo-geocoding"),
	}
}

func (c *GeocodingClient) Name() string {
	return c.name
}

// Geocode returns the best match for a place name, or nil when the API has
// no result for it.
func (c *GeocodingClient) Geocode(ctx context.Context, name string) (*weather.Place, error) {
	values := url.Values{}
	values.Set("name", name)
	values.Set("count", "1")

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}

	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	if err := fetchJSON(ctx, c.httpCfg, c.circuit, u, &payload); err != nil {
		return nil, fmt.Errorf("geocoding fetch: %w", err)
	}
	if len(payload.Results) == 0 {
		return nil, nil
	}

	best := payload.Results[0]
	return &weather.Place{
		Name:       best.Name,
		Coordinate: weather.Coordinate{Lat: best.Latitude, Lon: best.Longitude},
	}, nil
}
