package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/portalhava/weather-data-service/internal/weather"
)

// The forecast API also serves soil variables; only the hourly block carries
// them, so the client requests a single hour and reads the first sample.
const defaultSoilBaseURL = "https://api.open-meteo.com/v1/forecast"

var errNoSoilData = errors.New("no soil data in response")

// SoilClient fetches current topsoil conditions.
type SoilClient struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewSoilClient(client *http.Client, baseURL string) *SoilClient {
	if baseURL == "" {
		baseURL = defaultSoilBaseURL
	}
	return &SoilClient{
		name:    "open-meteo-soil",
		baseURL: baseURL,
		httpCfg: defaultHTTPConfig(client),
		circuit: newCircuit("open-meteo-soil"),
	}
}

func (c *SoilClient) Name() string {
	return c.name
}

func (c *SoilClient) Soil(ctx context.Context, coord weather.Coordinate) (*weather.SoilData, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%.4f", coord.Lat))
	values.Set("longitude", fmt.Sprintf("%.4f", coord.Lon))
	values.Set("hourly", "soil_temperature_0cm,soil_moisture_1_to_3cm")
	values.Set("forecast_hours", "1")

	var payload struct {
		Hourly struct {
			SoilTemperature []float64 `json:"soil_temperature_0cm"`
			SoilMoisture    []float64 `json:"soil_moisture_1_to_3cm"`
		} `json:"hourly"`
	}

	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	if err := fetchJSON(ctx, c.httpCfg, c.circuit, u, &payload); err != nil {
		return nil, fmt.Errorf("soil fetch: %w", err)
	}
	if len(payload.Hourly.SoilTemperature) == 0 || len(payload.Hourly.SoilMoisture) == 0 {
		return nil, errNoSoilData
	}

	return &weather.SoilData{
		Temperature: payload.Hourly.SoilTemperature[0],
		Moisture:    payload.Hourly.SoilMoisture[0],
	}, nil
}
