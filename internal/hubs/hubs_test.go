package hubs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portalhava/weather-data-service/internal/weather"
)

func TestHaversineKnownDistance(t *testing.T) {
	istanbul := weather.Coordinate{Lat: 41.0082, Lon: 28.9784}
	ankara := weather.Coordinate{Lat: 39.9334, Lon: 32.8597}

	d := HaversineKm(istanbul, ankara)
	assert.InDelta(t, 350, d, 10, "İstanbul-Ankara is roughly 350 km")

	assert.Zero(t, HaversineKm(istanbul, istanbul))
	assert.InDelta(t, HaversineKm(istanbul, ankara), HaversineKm(ankara, istanbul), 1e-9)
}

func TestNearestExactHubCoordinate(t *testing.T) {
	r := NewResolver(nil)

	resolved := r.Nearest(weather.Coordinate{Lat: 36.8969, Lon: 30.7133}, CapabilityMarine)
	require.NotNil(t, resolved)
	assert.Equal(t, "antalya", resolved.ID)
	assert.Zero(t, resolved.DistanceKm)
}

func TestNearestCoastalPointResolvesWithinRadius(t *testing.T) {
	r := NewResolver(nil)

	// A point east of Antalya along the coast.
	resolved := r.Nearest(weather.Coordinate{Lat: 36.8625, Lon: 31.0556}, CapabilityMarine)
	require.NotNil(t, resolved)
	assert.Equal(t, "antalya", resolved.ID)
	assert.Greater(t, resolved.DistanceKm, 30.0)
	assert.Less(t, resolved.DistanceKm, 36.0)
}

func TestNearestFiltersByCapability(t *testing.T) {
	r := NewResolver(nil)

	// At the Ankara hub, marine is not served even at distance zero.
	resolved := r.Nearest(weather.Coordinate{Lat: 39.9334, Lon: 32.8597}, CapabilityMarine)
	assert.Nil(t, resolved)

	resolved = r.Nearest(weather.Coordinate{Lat: 39.9334, Lon: 32.8597}, CapabilitySoil)
	require.NotNil(t, resolved)
	assert.Equal(t, "ankara", resolved.ID)
}

func TestNearestRespectsRadiusCutoff(t *testing.T) {
	r := NewResolver(nil)

	// Far out in the Mediterranean, no radius covers the point.
	resolved := r.Nearest(weather.Coordinate{Lat: 34.0, Lon: 25.0}, CapabilityMarine)
	assert.Nil(t, resolved)
}

func TestNearestPicksClosestQualifyingHub(t *testing.T) {
	table := []Hub{
		{
			ID:           "near",
			Coordinate:   weather.Coordinate{Lat: 40.0, Lon: 29.0},
			Capabilities: []Capability{CapabilityMarine},
			RadiusKm:     200,
		},
		{
			ID:           "far",
			Coordinate:   weather.Coordinate{Lat: 41.5, Lon: 29.0},
			Capabilities: []Capability{CapabilityMarine},
			RadiusKm:     200,
		},
	}
	r := NewResolver(table)

	resolved := r.Nearest(weather.Coordinate{Lat: 40.2, Lon: 29.0}, CapabilityMarine)
	require.NotNil(t, resolved)
	assert.Equal(t, "near", resolved.ID)
}

func TestNearestDeterministic(t *testing.T) {
	r := NewResolver(nil)
	coord := weather.Coordinate{Lat: 38.5, Lon: 27.2}

	first := r.Nearest(coord, CapabilityAirQuality)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, r.Nearest(coord, CapabilityAirQuality))
	}
}
