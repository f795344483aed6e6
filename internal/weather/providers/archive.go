package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/portalhava/weather-data-service/internal/history"
	"github.com/portalhava/weather-data-service/internal/weather"
)

const defaultArchiveBaseURL = "https://archive-api.open-meteo.com/v1/archive"

// ArchiveClient fetches observed daily data from the open-meteo archive API.
type ArchiveClient struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewArchiveClient(client *http.Client, baseURL string) *ArchiveClient {
	if baseURL == "" {
		baseURL = defaultArchiveBaseURL
	}
	return &ArchiveClient{
		name:    "open-meteo-archive",
		baseURL: baseURL,
		httpCfg: defaultHTTPConfig(client),
		circuit: newCircuit("open-meteo-archive"),
	}
}

func (c *ArchiveClient) Name() string {
	return c.name
}

func (c *ArchiveClient) DailyRange(ctx context.Context, coord weather.Coordinate, start, end time.Time) (*history.ArchiveResponse, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%.4f", coord.Lat))
	values.Set("longitude", fmt.Sprintf("%.4f", coord.Lon))
	values.Set("start_date", start.Format("2006-01-02"))
	values.Set("end_date", end.Format("2006-01-02"))
	values.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
	values.Set("timezone", "auto")

	var payload history.ArchiveResponse
	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	if err := fetchJSON(ctx, c.httpCfg, c.circuit, u, &payload); err != nil {
		return nil, fmt.Errorf("archive fetch: %w", err)
	}
	return &payload, nil
}
