// Package hubs resolves the nearest regional data hub for a coordinate.
package hubs

import (
	"math"

	"github.com/portalhava/weather-data-service/internal/weather"
)

// Capability names a data feed a hub can serve.
type Capability string

const (
	CapabilityMarine     Capability = "marine"
	CapabilitySoil       Capability = "soil"
	CapabilityAirQuality Capability = "air-quality"
	CapabilityTraffic    Capability = "traffic"
)

// Hub is one regional data source. Static configuration, never mutated.
type Hub struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Coordinate   weather.Coordinate `json:"coordinate"`
	Capabilities []Capability       `json:"capabilities"`
	RadiusKm     float64            `json:"radiusKm"`
}

// ResolvedHub is a hub plus the distance at which it was matched.
type ResolvedHub struct {
	Hub
	DistanceKm float64 `json:"distanceKm"`
}

// DefaultHubs is the built-in hub table.
func DefaultHubs() []Hub {
	return []Hub{
		{
			ID:           "istanbul",
			Name:         "İstanbul",
			Coordinate:   weather.Coordinate{Lat: 41.0082, Lon: 28.9784},
			Capabilities: []Capability{CapabilityMarine, CapabilityAirQuality, CapabilityTraffic},
			RadiusKm:     100,
		},
		{
			ID:           "ankara",
			Name:         "Ankara",
			Coordinate:   weather.Coordinate{Lat: 39.9334, Lon: 32.8597},
			Capabilities: []Capability{CapabilitySoil, CapabilityAirQuality, CapabilityTraffic},
			RadiusKm:     120,
		},
		{
			ID:           "izmir",
			Name:         "İzmir",
			Coordinate:   weather.Coordinate{Lat: 38.4237, Lon: 27.1428},
			Capabilities: []Capability{CapabilityMarine, CapabilityAirQuality},
			RadiusKm:     90,
		},
		{
			ID:           "antalya",
			Name:         "Antalya",
			Coordinate:   weather.Coordinate{Lat: 36.8969, Lon: 30.7133},
			Capabilities: []Capability{CapabilityMarine, CapabilitySoil},
			RadiusKm:     80,
		},
		{
			ID:           "trabzon",
			Name:         "Trabzon",
			Coordinate:   weather.Coordinate{Lat: 41.0015, Lon: 39.7178},
			Capabilities: []Capability{CapabilityMarine, CapabilitySoil},
			RadiusKm:     110,
		},
		{
			ID:           "konya",
			Name:         "Konya",
			Coordinate:   weather.Coordinate{Lat: 37.8746, Lon: 32.4932},
			Capabilities: []Capability{CapabilitySoil, CapabilityAirQuality},
			RadiusKm:     130,
		},
	}
}

// Resolver performs nearest-hub lookups over a fixed hub table.
type Resolver struct {
	hubs []Hub
}

// NewResolver creates a resolver. A nil table selects the defaults.
func NewResolver(table []Hub) *Resolver {
	if table == nil {
		table = DefaultHubs()
	}
	return &Resolver{hubs: table}
}

// Hubs returns the resolver's table.
func (r *Resolver) Hubs() []Hub {
	return r.hubs
}

// Nearest returns the closest hub that supports the capability and whose
// service radius covers the coordinate, or nil if none qualify.
func (r *Resolver) Nearest(coord weather.Coordinate, capability Capability) *ResolvedHub {
	var best *ResolvedHub
	for _, hub := range r.hubs {
		if !hub.supports(capability) {
			continue
		}
		dist := HaversineKm(coord, hub.Coordinate)
		if dist > hub.RadiusKm {
			continue
		}
		if best == nil || dist < best.DistanceKm {
			best = &ResolvedHub{Hub: hub, DistanceKm: dist}
		}
	}
	return best
}

func (h Hub) supports(capability Capability) bool {
	for _, c := range h.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// HaversineKm computes the great-circle distance between two points.
func HaversineKm(a, b weather.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
