package weather

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portalhava/weather-data-service/internal/observability"
	"github.com/portalhava/weather-data-service/internal/store"
)

type stubForecasts struct {
	mu    sync.Mutex
	resps []*ForecastResponse
	errs  []error
	gates []chan struct{}
	calls int
}

func (s *stubForecasts) Forecast(_ context.Context, _ Coordinate) (*ForecastResponse, error) {
	s.mu.Lock()
	i := s.calls
	s.calls++
	var gate chan struct{}
	if i < len(s.gates) {
		gate = s.gates[i]
	}
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.resps) {
		return s.resps[i], nil
	}
	return nil, errors.New("no scripted response")
}

type stubAQI struct {
	value float64
	err   error
}

func (s *stubAQI) AirQuality(_ context.Context, _ Coordinate) (float64, error) {
	return s.value, s.err
}

type stubGeocoder struct {
	place *Place
	err   error
}

func (s *stubGeocoder) Geocode(_ context.Context, _ string) (*Place, error) {
	return s.place, s.err
}

type stubSoil struct {
	data *SoilData
	err  error
}

func (s *stubSoil) Soil(_ context.Context, _ Coordinate) (*SoilData, error) {
	return s.data, s.err
}

func TestServiceFetchUsesLiveData(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	fp := &stubForecasts{resps: []*ForecastResponse{testResponse(now, 48, 15)}}

	svc := NewService(ServiceOptions{
		Forecasts:  fp,
		AirQuality: &stubAQI{value: 37},
	})

	coord := Coordinate{Lat: 41.0082, Lon: 28.9784}
	m := svc.Fetch(context.Background(), "İstanbul", &coord)

	require.NotNil(t, m)
	assert.Equal(t, "İstanbul", m.City)
	assert.Equal(t, 37.0, m.Current.AQI)
	assert.Equal(t, 23.5, m.Current.Temperature)
}

func TestServiceFetchFallsBackToSynthetic(t *testing.T) {
	fp := &stubForecasts{errs: []error{errors.New("connection refused")}}
	metrics := observability.NewMetricsForTesting()

	svc := NewService(ServiceOptions{
		Forecasts: fp,
		Metrics:   metrics,
	})

	coord := Coordinate{Lat: 41.0082, Lon: 28.9784}
	m := svc.Fetch(context.Background(), "İstanbul", &coord)

	// The fallback must be structurally indistinguishable from live data.
	require.NotNil(t, m)
	assert.NotEmpty(t, m.Hourly)
	assert.NotEmpty(t, m.Daily)
	assert.Equal(t, "Today", m.Daily[0].Label)
	assert.Equal(t, float64(DefaultAQI), m.Current.AQI)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SyntheticFallbacks))
}

func TestServiceFetchAQIFailureUsesDefault(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	fp := &stubForecasts{resps: []*ForecastResponse{testResponse(now, 48, 15)}}

	svc := NewService(ServiceOptions{
		Forecasts:  fp,
		AirQuality: &stubAQI{err: errors.New("timeout")},
	})

	coord := Coordinate{Lat: 41.0082, Lon: 28.9784}
	m := svc.Fetch(context.Background(), "İstanbul", &coord)

	assert.Equal(t, float64(DefaultAQI), m.Current.AQI)
}

func TestServiceFetchGeocodesWhenNoCoordinate(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	fp := &stubForecasts{resps: []*ForecastResponse{testResponse(now, 48, 15)}}
	geo := &stubGeocoder{place: &Place{
		Name:       "İstanbul",
		Coordinate: Coordinate{Lat: 41.0082, Lon: 28.9784},
	}}

	svc := NewService(ServiceOptions{
		Forecasts:  fp,
		AirQuality: &stubAQI{value: 20},
		Geocoder:   geo,
	})

	m := svc.Fetch(context.Background(), "İstanbul", nil)
	require.NotNil(t, m)
	assert.Equal(t, 23.5, m.Current.Temperature)
}

func TestServiceFetchUnresolvableCityServesSynthetic(t *testing.T) {
	svc := NewService(ServiceOptions{
		Forecasts: &stubForecasts{},
		Geocoder:  &stubGeocoder{place: nil},
	})

	m := svc.Fetch(context.Background(), "nowhere", nil)
	require.NotNil(t, m)
	assert.NotEmpty(t, m.Hourly)
}

func TestServiceSoilForFailsSoft(t *testing.T) {
	coord := Coordinate{Lat: 39.9334, Lon: 32.8597}

	svc := NewService(ServiceOptions{
		Forecasts: &stubForecasts{},
		Soil:      &stubSoil{data: &SoilData{Temperature: 17.8, Moisture: 0.28}},
	})
	data := svc.SoilFor(context.Background(), coord)
	require.NotNil(t, data)
	assert.Equal(t, 17.8, data.Temperature)

	svc = NewService(ServiceOptions{
		Forecasts: &stubForecasts{},
		Soil:      &stubSoil{err: errors.New("timeout")},
	})
	assert.Nil(t, svc.SoilFor(context.Background(), coord))

	svc = NewService(ServiceOptions{Forecasts: &stubForecasts{}})
	assert.Nil(t, svc.SoilFor(context.Background(), coord))
}

func TestServiceRefreshStoresSnapshot(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	fp := &stubForecasts{resps: []*ForecastResponse{testResponse(now, 48, 15)}}
	snaps := store.NewSnapshots[*WeatherModel]()

	svc := NewService(ServiceOptions{
		Forecasts:  fp,
		AirQuality: &stubAQI{value: 20},
		Snapshots:  snaps,
	})

	coord := Coordinate{Lat: 41.0082, Lon: 28.9784}
	svc.Refresh(context.Background(), "İstanbul", &coord)

	m, err := svc.Latest("İstanbul")
	require.NoError(t, err)
	assert.Equal(t, "İstanbul", m.City)

	_, err = svc.Latest("Ankara")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestServiceRefreshDiscardsSupersededResult(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	slow := testResponse(now, 48, 15)
	slow.Current.Temperature = 10
	fast := testResponse(now, 48, 15)
	fast.Current.Temperature = 20

	gate := make(chan struct{})
	fp := &stubForecasts{
		resps: []*ForecastResponse{slow, fast},
		gates: []chan struct{}{gate, nil},
	}
	snaps := store.NewSnapshots[*WeatherModel]()
	metrics := observability.NewMetricsForTesting()

	svc := NewService(ServiceOptions{
		Forecasts:  fp,
		AirQuality: &stubAQI{value: 20},
		Snapshots:  snaps,
		Metrics:    metrics,
	})

	coord := Coordinate{Lat: 41.0082, Lon: 28.9784}

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Refresh(context.Background(), "İstanbul", &coord)
	}()

	// Wait for the slow refresh to reach the provider before starting the
	// one that supersedes it.
	require.Eventually(t, func() bool {
		fp.mu.Lock()
		defer fp.mu.Unlock()
		return fp.calls == 1
	}, time.Second, time.Millisecond)

	svc.Refresh(context.Background(), "İstanbul", &coord)

	close(gate)
	<-done

	m, err := svc.Latest("İstanbul")
	require.NoError(t, err)
	assert.Equal(t, 20.0, m.Current.Temperature, "stale result must not overwrite the newer one")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StaleDiscards))
}
