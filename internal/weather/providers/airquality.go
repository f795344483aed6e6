package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/portalhava/weather-data-service/internal/weather"
)

const defaultAirQualityBaseURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

// AirQualityClient fetches the current european AQI from the open-meteo
// air quality API.
type AirQualityClient struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewAirQualityClient(client *http.Client, baseURL string) *AirQualityClient {
	if baseURL == "" {
		baseURL = defaultAirQualityBaseURL
	}
	return &AirQualityClient{
		name:    "open-meteo-air-quality",
		baseURL: baseURL,
		httpCfg: defaultHTTPConfig(client),
		circuit: newCircuit("open-meteo-air-quality"),
	}
}

func (c *AirQualityClient) Name() string {
	return c.name
}

func (c *AirQualityClient) AirQuality(ctx context.Context, coord weather.Coordinate) (float64, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%.4f", coord.Lat))
	values.Set("longitude", fmt.Sprintf("%.4f", coord.Lon))
	values.Set("current", "european_aqi")

	var payload struct {
		Current struct {
			EuropeanAQI float64 `json:"european_aqi"`
		} `json:"current"`
	}

	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	if err := fetchJSON(ctx, c.httpCfg, c.circuit, u, &payload); err != nil {
		return 0, fmt.Errorf("air quality fetch: %w", err)
	}
	return payload.Current.EuropeanAQI, nil
}
