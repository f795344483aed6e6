package history

import (
	"context"
	"time"

	"github.com/portalhava/weather-data-service/internal/weather"
)

// HistoricalDayPoint is one observed day from the archive.
type HistoricalDayPoint struct {
	Date          string  `json:"date"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Precipitation float64 `json:"precipitation"`
}

// ClimatologyPoint is the multi-year average for one day of the year.
type ClimatologyPoint struct {
	DayOfYear        int     `json:"dayOfYear"`
	AvgHigh          float64 `json:"avgHigh"`
	AvgLow           float64 `json:"avgLow"`
	AvgPrecipitation float64 `json:"avgPrecipitation"`
}

// HistoricalData is the full historical payload for a city.
type HistoricalData struct {
	Last12Months []HistoricalDayPoint `json:"last12Months"`
	Climatology  []ClimatologyPoint   `json:"climatology"`
}

// ArchiveResponse mirrors the archive API's daily block.
type ArchiveResponse struct {
	Daily struct {
		Time             []string  `json:"time"`
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		TemperatureMin   []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// ArchiveProvider fetches observed daily data for a date range.
type ArchiveProvider interface {
	DailyRange(ctx context.Context, coord weather.Coordinate, start, end time.Time) (*ArchiveResponse, error)
}
