package weather

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticForecastDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)
	coord := Coordinate{Lat: 41.0082, Lon: 28.9784}

	a, err := NewSyntheticProvider(clock).Forecast(context.Background(), coord)
	require.NoError(t, err)
	b, err := NewSyntheticProvider(clock).Forecast(context.Background(), coord)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different responses (-a +b):\n%s", diff)
	}
}

func TestSyntheticForecastVariesByCoordinate(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)
	p := NewSyntheticProvider(clock)

	a, err := p.Forecast(context.Background(), Coordinate{Lat: 41.0082, Lon: 28.9784})
	require.NoError(t, err)
	b, err := p.Forecast(context.Background(), Coordinate{Lat: 36.8969, Lon: 30.7133})
	require.NoError(t, err)

	assert.NotEqual(t, a.Current.Temperature, b.Current.Temperature)
}

func TestSyntheticForecastNormalizesLikeLiveData(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)
	coord := Coordinate{Lat: 41.0082, Lon: 28.9784}

	resp, err := NewSyntheticProvider(clock).Forecast(context.Background(), coord)
	require.NoError(t, err)

	m := Normalize(resp, "İstanbul", DefaultAQI)

	require.NotEmpty(t, m.Hourly)
	assert.Len(t, m.Hourly, HourlyWindow)
	assert.Equal(t, "Today", m.Daily[0].Label)
	assert.Len(t, m.Daily, 15)
	assert.NotEmpty(t, m.Sunrise)
	assert.NotEmpty(t, m.Sunset)
	assert.NotEmpty(t, m.SmartPhrase)

	// The buffer starts at the current hour, not at midnight.
	assert.Equal(t, 14, m.Hourly[0].Time.Hour())

	for i := 1; i < len(m.Hourly); i++ {
		assert.Equal(t, time.Hour, m.Hourly[i].Time.Sub(m.Hourly[i-1].Time), "gap at %d", i)
	}
}
