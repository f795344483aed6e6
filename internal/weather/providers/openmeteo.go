package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/portalhava/weather-data-service/internal/weather"
)

const defaultForecastBaseURL = "https://api.open-meteo.com/v1/forecast"

var (
	forecastCurrentFields = []string{
		"temperature_2m",
		"apparent_temperature",
		"relative_humidity_2m",
		"surface_pressure",
		"wind_speed_10m",
		"wind_direction_10m",
		"uv_index",
		"cloud_cover",
		"precipitation",
		"precipitation_probability",
		"weather_code",
		"is_day",
	}
	forecastHourlyFields = []string{
		"temperature_2m",
		"apparent_temperature",
		"wind_speed_10m",
		"precipitation_probability",
		"weather_code",
		"is_day",
	}
	forecastDailyFields = []string{
		"temperature_2m_max",
		"temperature_2m_min",
		"apparent_temperature_max",
		"uv_index_max",
		"precipitation_probability_max",
		"wind_speed_10m_max",
		"weather_code",
		"sunrise",
		"sunset",
	}
)

// ForecastClient fetches multi-day forecasts from the open-meteo forecast API.
type ForecastClient struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewForecastClient creates a forecast client. An empty baseURL selects the
// public endpoint.
func NewForecastClient(client *http.Client, baseURL string) *ForecastClient {
	if baseURL == "" {
		baseURL = defaultForecastBaseURL
	}
	return &ForecastClient{
		name:    "open-meteo-forecast",
		baseURL: baseURL,
		httpCfg: defaultHTTPConfig(client),
		circuit: newCircuit("open-meteo-forecast"),
	}
}

func (c *ForecastClient) Name() string {
	return c.name
}

// Forecast retrieves the 15-day forecast with a 168-hour hourly buffer.
func (c *ForecastClient) Forecast(ctx context.Context, coord weather.Coordinate) (*weather.ForecastResponse, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%.4f", coord.Lat))
	values.Set("longitude", fmt.Sprintf("%.4f", coord.Lon))
	values.Set("current", strings.Join(forecastCurrentFields, ","))
	values.Set("hourly", strings.Join(forecastHourlyFields, ","))
	values.Set("daily", strings.Join(forecastDailyFields, ","))
	values.Set("forecast_days", "15")
	values.Set("forecast_hours", "168")
	values.Set("timezone", "auto")

	var payload weather.ForecastResponse
	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	if err := fetchJSON(ctx, c.httpCfg, c.circuit, u, &payload); err != nil {
		return nil, fmt.Errorf("forecast fetch: %w", err)
	}
	return &payload, nil
}
