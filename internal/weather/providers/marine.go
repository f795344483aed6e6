package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/portalhava/weather-data-service/internal/weather"
)

const defaultMarineBaseURL = "https://marine-api.open-meteo.com/v1/marine"

// MarineClient fetches current sea state from the open-meteo marine API.
type MarineClient struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewMarineClient(client *http.Client, baseURL string) *MarineClient {
	if baseURL == "" {
		baseURL = defaultMarineBaseURL
	}
	return &MarineClient{
		name:    "open-meteo-marine",
		baseURL: baseURL,
		httpCfg: defaultHTTPConfig(client),
		circuit: newCircuit("open-meteo-marine"),
	}
}

func (c *MarineClient) Name() string {
	return c.name
}

func (c *MarineClient) Marine(ctx context.Context, coord weather.Coordinate) (*weather.MarineData, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%.4f", coord.Lat))
	values.Set("longitude", fmt.Sprintf("%.4f", coord.Lon))
	values.Set("current", "wave_height,wave_direction,wave_period,sea_surface_temperature")

	var payload struct {
		Current struct {
			WaveHeight     float64 `json:"wave_height"`
			WaveDirection  float64 `json:"wave_direction"`
			WavePeriod     float64 `json:"wave_period"`
			SeaTemperature float64 `json:"sea_surface_temperature"`
		} `json:"current"`
	}

	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	if err := fetchJSON(ctx, c.httpCfg, c.circuit, u, &payload); err != nil {
		return nil, fmt.Errorf("marine fetch: %w", err)
	}

	return &weather.MarineData{
		WaveHeight:     payload.Current.WaveHeight,
		WaveDirection:  payload.Current.WaveDirection,
		WavePeriod:     payload.Current.WavePeriod,
		SeaTemperature: payload.Current.SeaTemperature,
	}, nil
}
