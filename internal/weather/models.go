package weather

import (
	"time"
)

// IconKey is one of the fixed condition identifiers consumed by display code.
type IconKey string

const (
	IconSunny        IconKey = "sunny"
	IconMoon         IconKey = "moon"
	IconCloudy       IconKey = "cloudy"
	IconCloudyNight  IconKey = "cloudy-night"
	IconOvercast     IconKey = "overcast"
	IconRain         IconKey = "rain"
	IconDrizzle      IconKey = "drizzle"
	IconFreezingRain IconKey = "freezing-rain"
	IconSnow         IconKey = "snow"
	IconSleet        IconKey = "sleet"
	IconHail         IconKey = "hail"
	IconStorm        IconKey = "storm"
	IconFog          IconKey = "fog"
)

// View identifies which time window a WeatherModel represents.
type View string

const (
	ViewNow      View = "now"
	ViewTomorrow View = "tomorrow"
	ViewWeekend  View = "weekend"
)

// Coordinate is a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Current holds the scalar readings at the model's reference time.
type Current struct {
	Temperature       float64 `json:"temperatureC"`
	FeelsLike         float64 `json:"feelsLikeC"`
	Humidity          float64 `json:"humidityPercent"`
	Pressure          float64 `json:"pressureHpa"`
	WindSpeed         float64 `json:"windSpeedKmh"`
	WindDirection     float64 `json:"windDirectionDeg"`
	UVIndex           float64 `json:"uvIndex"`
	AQI               float64 `json:"aqi"`
	CloudCover        float64 `json:"cloudCoverPercent"`
	Precipitation     float64 `json:"precipMm"`
	PrecipProbability float64 `json:"precipProbability"`
	Code              int     `json:"weatherCode"`
	IsDay             bool    `json:"isDay"`
	Icon              IconKey `json:"icon"`
	Condition         string  `json:"condition"`
}

// HourEntry is one hour of the rolling forecast buffer.
// Icon is fixed at normalization time as a pure function of
// (code, day/night, precip probability).
type HourEntry struct {
	Time              time.Time `json:"time"`
	Clock             string    `json:"clock"` // local "15:04"
	Temperature       float64   `json:"temperatureC"`
	FeelsLike         float64   `json:"feelsLikeC"`
	WindSpeed         float64   `json:"windSpeedKmh"`
	PrecipProbability float64   `json:"precipProbability"`
	Icon              IconKey   `json:"icon"`
	IsDay             bool      `json:"isDay"`
}

// DayEntry is one day of the daily forecast.
type DayEntry struct {
	Date              time.Time `json:"date"`
	Label             string    `json:"label"`     // "Today", "Tomorrow", or weekday name
	DateLabel         string    `json:"dateLabel"` // e.g. "26 Apr"
	High              float64   `json:"highC"`
	Low               float64   `json:"lowC"`
	FeelsLikeMax      float64   `json:"feelsLikeMaxC"`
	UVMax             float64   `json:"uvMax"`
	PrecipProbability float64   `json:"precipProbability"` // daily maximum
	WindMax           float64   `json:"windMaxKmh"`
	Icon              IconKey   `json:"icon"`
	Condition         string    `json:"condition"`
}

// WeatherModel is the canonical model produced by normalization.
//
// Invariants: Hourly is ordered non-decreasing by Time and is a contiguous
// run of hours starting at the reference time; Daily[0] is the current
// calendar day. Models are built fresh and never mutated in place; the
// projectors return new values.
type WeatherModel struct {
	City          string      `json:"city"`
	Coordinate    Coordinate  `json:"coordinate"`
	Timezone      string      `json:"timezone"`
	ReferenceTime time.Time   `json:"referenceTime"`
	View          View        `json:"view"`
	Current       Current     `json:"current"`
	High          float64     `json:"highC"` // for the model's view window
	Low           float64     `json:"lowC"`
	Sunrise       string      `json:"sunrise"` // local clock string
	Sunset        string      `json:"sunset"`
	SmartPhrase   string      `json:"smartPhrase"`
	Hourly        []HourEntry `json:"hourly"`
	Daily         []DayEntry  `json:"daily"`
	Marine        *MarineData `json:"marine,omitempty"`
}

// MarineData holds coastal conditions for hub-covered coordinates.
type MarineData struct {
	WaveHeight     float64 `json:"waveHeightM"`
	WaveDirection  float64 `json:"waveDirectionDeg"`
	WavePeriod     float64 `json:"wavePeriodS"`
	SeaTemperature float64 `json:"seaTemperatureC"`
}

// SoilData holds topsoil conditions for hub-covered coordinates.
type SoilData struct {
	Temperature float64 `json:"soilTemperatureC"` // at the surface
	Moisture    float64 `json:"soilMoisture"`     // volumetric, m³/m³
}

// Place is a geocoding best match.
type Place struct {
	Name       string     `json:"name"`
	Coordinate Coordinate `json:"coordinate"`
}

// location resolves the model's IANA timezone, falling back to UTC when the
// zone database does not know it.
func (m *WeatherModel) location() *time.Location {
	loc, err := time.LoadLocation(m.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
