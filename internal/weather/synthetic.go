package weather

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/portalhava/weather-data-service/internal/common"
)

// SyntheticProvider generates a fully populated, internally consistent
// forecast response from seeded values. It implements ForecastProvider so the
// fail-soft fallback path goes through the exact same normalization as live
// data; downstream code cannot tell the two apart structurally.
type SyntheticProvider struct {
	clock clockwork.Clock
}

// NewSyntheticProvider creates the fallback provider. The injected clock
// keeps generated data deterministic under test.
func NewSyntheticProvider(clock clockwork.Clock) *SyntheticProvider {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SyntheticProvider{clock: clock}
}

// Forecast never fails. The same coordinate and calendar day always produce
// the same response.
func (p *SyntheticProvider) Forecast(_ context.Context, coord Coordinate) (*ForecastResponse, error) {
	now := p.clock.Now().UTC().Truncate(time.Hour)
	rng := rand.New(rand.NewSource(syntheticSeed(coord, now)))

	resp := &ForecastResponse{
		Latitude:  coord.Lat,
		Longitude: coord.Lon,
		Timezone:  "UTC",
	}

	dayStart := startOfDay(now)
	baseTemp := 12 + 14*math.Cos((coord.Lat-38)*math.Pi/90) + rng.Float64()*6

	// Hourly buffer: a full 7-day window starting at today's midnight so the
	// normalizer's "first index at or after now" scan behaves as with live data.
	hours := HourlyWindow + now.Hour()
	for i := 0; i < hours; i++ {
		t := dayStart.Add(time.Duration(i) * time.Hour)
		hourOfDay := float64(t.Hour())
		temp := baseTemp + 5*math.Sin((hourOfDay-9)*math.Pi/12) + rng.Float64()*1.5
		prob := syntheticProbability(rng)
		code := syntheticCode(rng, prob)
		isDay := 0
		if hourOfDay >= 6 && hourOfDay < 19 {
			isDay = 1
		}

		resp.Hourly.Time = append(resp.Hourly.Time, t.Format(localTimeLayout))
		resp.Hourly.Temperature = append(resp.Hourly.Temperature, common.Round1(temp))
		resp.Hourly.FeelsLike = append(resp.Hourly.FeelsLike, common.Round1(temp-1.2))
		resp.Hourly.WindSpeed = append(resp.Hourly.WindSpeed, common.Round1(6+rng.Float64()*18))
		resp.Hourly.PrecipProbability = append(resp.Hourly.PrecipProbability, prob)
		resp.Hourly.WeatherCode = append(resp.Hourly.WeatherCode, code)
		resp.Hourly.IsDay = append(resp.Hourly.IsDay, isDay)
	}

	for d := 0; d < 15; d++ {
		date := dayStart.AddDate(0, 0, d)
		high := baseTemp + 4 + rng.Float64()*3
		prob := syntheticProbability(rng)

		resp.Daily.Time = append(resp.Daily.Time, date.Format(localDateLayout))
		resp.Daily.WeatherCode = append(resp.Daily.WeatherCode, syntheticCode(rng, prob))
		resp.Daily.TemperatureMax = append(resp.Daily.TemperatureMax, common.Round1(high))
		resp.Daily.TemperatureMin = append(resp.Daily.TemperatureMin, common.Round1(high-8))
		resp.Daily.FeelsLikeMax = append(resp.Daily.FeelsLikeMax, common.Round1(high-1))
		resp.Daily.UVIndexMax = append(resp.Daily.UVIndexMax, common.Round1(3+rng.Float64()*5))
		resp.Daily.PrecipProbability = append(resp.Daily.PrecipProbability, prob)
		resp.Daily.WindSpeedMax = append(resp.Daily.WindSpeedMax, common.Round1(12+rng.Float64()*20))
		resp.Daily.Sunrise = append(resp.Daily.Sunrise, date.Add(6*time.Hour+12*time.Minute).Format(localTimeLayout))
		resp.Daily.Sunset = append(resp.Daily.Sunset, date.Add(19*time.Hour+4*time.Minute).Format(localTimeLayout))
	}

	// Current block mirrors the hourly entry for "now".
	idx := now.Hour()
	resp.Current = CurrentBlock{
		Time:              now.Format(localTimeLayout),
		Temperature:       resp.Hourly.Temperature[idx],
		FeelsLike:         resp.Hourly.FeelsLike[idx],
		Humidity:          common.Round1(45 + rng.Float64()*30),
		Pressure:          common.Round1(1008 + rng.Float64()*12),
		WindSpeed:         resp.Hourly.WindSpeed[idx],
		WindDirection:     math.Floor(rng.Float64() * 360),
		UVIndex:           resp.Daily.UVIndexMax[0] / 2,
		CloudCover:        common.Round1(rng.Float64() * 80),
		Precipitation:     0,
		PrecipProbability: resp.Hourly.PrecipProbability[idx],
		WeatherCode:       resp.Hourly.WeatherCode[idx],
		IsDay:             resp.Hourly.IsDay[idx],
	}

	return resp, nil
}

func syntheticSeed(coord Coordinate, now time.Time) int64 {
	day := now.Format(localDateLayout)
	var h int64 = 1469598103934665603
	for _, c := range fmt.Sprintf("%.3f|%.3f|%s", coord.Lat, coord.Lon, day) {
		h ^= int64(c)
		h *= 1099511628211
	}
	return h
}

func syntheticProbability(rng *rand.Rand) float64 {
	if rng.Float64() < 0.7 {
		return math.Floor(rng.Float64() * 25)
	}
	return math.Floor(25 + rng.Float64()*60)
}

func syntheticCode(rng *rand.Rand, prob float64) int {
	if prob >= 40 {
		codes := []int{61, 63, 80}
		return codes[rng.Intn(len(codes))]
	}
	codes := []int{0, 1, 1, 2, 2, 3}
	return codes[rng.Intn(len(codes))]
}

