package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portalhava/weather-data-service/internal/history"
	"github.com/portalhava/weather-data-service/internal/hubs"
	"github.com/portalhava/weather-data-service/internal/store"
	"github.com/portalhava/weather-data-service/internal/weather"
)

type fakeForecasts struct {
	resp *weather.ForecastResponse
	err  error
}

func (f *fakeForecasts) Forecast(_ context.Context, _ weather.Coordinate) (*weather.ForecastResponse, error) {
	return f.resp, f.err
}

type fakeAQI struct{ value float64 }

func (f *fakeAQI) AirQuality(_ context.Context, _ weather.Coordinate) (float64, error) {
	return f.value, nil
}

type fakeGeocoder struct{ place *weather.Place }

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) (*weather.Place, error) {
	return f.place, nil
}

type fakeMarine struct {
	data *weather.MarineData
	err  error
}

func (f *fakeMarine) Marine(_ context.Context, _ weather.Coordinate) (*weather.MarineData, error) {
	return f.data, f.err
}

type fakeSoil struct {
	data *weather.SoilData
	err  error
}

func (f *fakeSoil) Soil(_ context.Context, _ weather.Coordinate) (*weather.SoilData, error) {
	return f.data, f.err
}

type fakeArchive struct{ err error }

func (f *fakeArchive) DailyRange(_ context.Context, _ weather.Coordinate, start, end time.Time) (*history.ArchiveResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	resp := &history.ArchiveResponse{}
	for d := start; !d.After(end) && len(resp.Daily.Time) < 400; d = d.AddDate(0, 0, 1) {
		resp.Daily.Time = append(resp.Daily.Time, d.Format("2006-01-02"))
		resp.Daily.TemperatureMax = append(resp.Daily.TemperatureMax, 25)
		resp.Daily.TemperatureMin = append(resp.Daily.TemperatureMin, 15)
		resp.Daily.PrecipitationSum = append(resp.Daily.PrecipitationSum, 1)
	}
	return resp, nil
}

func forecastFixture(now time.Time) *weather.ForecastResponse {
	resp := &weather.ForecastResponse{
		Latitude:  41.0082,
		Longitude: 28.9784,
		Timezone:  "UTC",
	}
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		ts := dayStart.Add(time.Duration(i) * time.Hour)
		resp.Hourly.Time = append(resp.Hourly.Time, ts.Format("2006-01-02T15:04"))
		resp.Hourly.Temperature = append(resp.Hourly.Temperature, 22)
		resp.Hourly.FeelsLike = append(resp.Hourly.FeelsLike, 21)
		resp.Hourly.WindSpeed = append(resp.Hourly.WindSpeed, 10)
		resp.Hourly.PrecipProbability = append(resp.Hourly.PrecipProbability, 5)
		resp.Hourly.WeatherCode = append(resp.Hourly.WeatherCode, 1)
		resp.Hourly.IsDay = append(resp.Hourly.IsDay, 1)
	}
	for d := 0; d < 15; d++ {
		date := dayStart.AddDate(0, 0, d)
		resp.Daily.Time = append(resp.Daily.Time, date.Format("2006-01-02"))
		resp.Daily.WeatherCode = append(resp.Daily.WeatherCode, 1)
		resp.Daily.TemperatureMax = append(resp.Daily.TemperatureMax, 26)
		resp.Daily.TemperatureMin = append(resp.Daily.TemperatureMin, 15)
		resp.Daily.FeelsLikeMax = append(resp.Daily.FeelsLikeMax, 25)
		resp.Daily.UVIndexMax = append(resp.Daily.UVIndexMax, 6)
		resp.Daily.PrecipProbability = append(resp.Daily.PrecipProbability, 10)
		resp.Daily.WindSpeedMax = append(resp.Daily.WindSpeedMax, 20)
		resp.Daily.Sunrise = append(resp.Daily.Sunrise, date.Add(6*time.Hour).Format("2006-01-02T15:04"))
		resp.Daily.Sunset = append(resp.Daily.Sunset, date.Add(19*time.Hour).Format("2006-01-02T15:04"))
	}
	resp.Current = weather.CurrentBlock{
		Time:              now.Format("2006-01-02T15:04"),
		Temperature:       22,
		FeelsLike:         21,
		Humidity:          55,
		Pressure:          1013,
		WindSpeed:         10,
		UVIndex:           4,
		PrecipProbability: 5,
		WeatherCode:       1,
		IsDay:             1,
	}
	return resp
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	svc := weather.NewService(weather.ServiceOptions{
		Forecasts:  &fakeForecasts{resp: forecastFixture(now)},
		AirQuality: &fakeAQI{value: 30},
		Geocoder: &fakeGeocoder{place: &weather.Place{
			Name:       "İstanbul",
			Coordinate: weather.Coordinate{Lat: 41.0082, Lon: 28.9784},
		}},
		Marine:    &fakeMarine{data: &weather.MarineData{WaveHeight: 0.7, SeaTemperature: 24}},
		Soil:      &fakeSoil{data: &weather.SoilData{Temperature: 18.5, Moisture: 0.21}},
		Snapshots: store.NewSnapshots[*weather.WeatherModel](),
	})

	engine := history.NewEngine(history.EngineOptions{
		Archive: &fakeArchive{},
		Cache:   store.NewMemoryKV(),
		Clock:   clockwork.NewFakeClockAt(now),
	})

	app := fiber.New()
	RegisterRoutes(app, Deps{
		Service:  svc,
		History:  engine,
		Resolver: hubs.NewResolver(nil),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, target string, out interface{}) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestForecastEndpoint(t *testing.T) {
	app := newTestApp(t)

	var m weather.WeatherModel
	resp := doJSON(t, app, "/api/v1/forecast?city="+url.QueryEscape("İstanbul")+"&lat=41.0082&lon=28.9784", &m)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "İstanbul", m.City)
	assert.Equal(t, weather.ViewNow, m.View)
	assert.NotEmpty(t, m.Hourly)
}

func TestForecastEndpointRequiresPlace(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "/api/v1/forecast", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, "/api/v1/forecast?lat=41.0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestForecastTomorrowEndpoint(t *testing.T) {
	app := newTestApp(t)

	var m weather.WeatherModel
	resp := doJSON(t, app, "/api/v1/forecast/tomorrow?lat=41.0082&lon=28.9784", &m)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, weather.ViewTomorrow, m.View)
	assert.LessOrEqual(t, len(m.Hourly), 24)
}

func TestForecastWeekendEndpoint(t *testing.T) {
	app := newTestApp(t)

	var m weather.WeatherModel
	resp := doJSON(t, app, "/api/v1/forecast/weekend?lat=41.0082&lon=28.9784", &m)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, weather.ViewWeekend, m.View)
	assert.LessOrEqual(t, len(m.Hourly), 48)
}

func TestHistoryEndpoint(t *testing.T) {
	app := newTestApp(t)

	var data history.HistoricalData
	resp := doJSON(t, app, "/api/v1/history?city="+url.QueryEscape("İstanbul"), &data)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, data.Last12Months)
	assert.Len(t, data.Climatology, 366)
}

func TestLifestyleEndpoint(t *testing.T) {
	app := newTestApp(t)

	var payload struct {
		City       string `json:"city"`
		Advisories []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"advisories"`
	}
	resp := doJSON(t, app, "/api/v1/lifestyle?lat=41.0082&lon=28.9784", &payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, payload.Advisories, 9)
}

func TestHubsNearestEndpoint(t *testing.T) {
	app := newTestApp(t)

	var resolved hubs.ResolvedHub
	resp := doJSON(t, app, "/api/v1/hubs/nearest?lat=36.8625&lon=31.0556&capability=marine", &resolved)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "antalya", resolved.ID)
	assert.Greater(t, resolved.DistanceKm, 0.0)

	resp = doJSON(t, app, "/api/v1/hubs/nearest?lat=34.0&lon=25.0&capability=marine", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, "/api/v1/hubs/nearest?lat=36.8&lon=31.0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMarineEndpoint(t *testing.T) {
	app := newTestApp(t)

	var data weather.MarineData
	resp := doJSON(t, app, "/api/v1/marine?lat=36.8969&lon=30.7133", &data)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0.7, data.WaveHeight)

	// Inland point with no marine-capable hub in range.
	resp = doJSON(t, app, "/api/v1/marine?lat=39.9334&lon=32.8597", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMarineEndpointFailSoft(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	svc := weather.NewService(weather.ServiceOptions{
		Forecasts: &fakeForecasts{resp: forecastFixture(now)},
		Marine:    &fakeMarine{err: errors.New("upstream down")},
	})

	app := fiber.New()
	RegisterRoutes(app, Deps{
		Service:  svc,
		Resolver: hubs.NewResolver(nil),
	})

	resp := doJSON(t, app, "/api/v1/marine?lat=36.8969&lon=30.7133", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSoilEndpoint(t *testing.T) {
	app := newTestApp(t)

	var data weather.SoilData
	resp := doJSON(t, app, "/api/v1/soil?lat=39.9334&lon=32.8597", &data)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 18.5, data.Temperature)
	assert.Equal(t, 0.21, data.Moisture)

	// İstanbul's hub has no soil capability and no other hub is in range.
	resp = doJSON(t, app, "/api/v1/soil?lat=41.0082&lon=28.9784", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSoilEndpointFailSoft(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	svc := weather.NewService(weather.ServiceOptions{
		Forecasts: &fakeForecasts{resp: forecastFixture(now)},
		Soil:      &fakeSoil{err: errors.New("upstream down")},
	})

	app := fiber.New()
	RegisterRoutes(app, Deps{
		Service:  svc,
		Resolver: hubs.NewResolver(nil),
	})

	resp := doJSON(t, app, "/api/v1/soil?lat=39.9334&lon=32.8597", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHubsListEndpoint(t *testing.T) {
	app := newTestApp(t)

	var payload struct {
		Hubs []hubs.Hub `json:"hubs"`
	}
	resp := doJSON(t, app, "/api/v1/hubs", &payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, payload.Hubs, 6)

	ids := make([]string, 0, len(payload.Hubs))
	for _, h := range payload.Hubs {
		ids = append(ids, h.ID)
	}
	assert.Contains(t, ids, "istanbul")
	assert.Contains(t, ids, "antalya")
}
