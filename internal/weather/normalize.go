package weather

import (
	"time"

	"github.com/portalhava/weather-data-service/internal/common"
)

const (
	// HourlyWindow is the length of the rolling hourly buffer (7 days).
	HourlyWindow = 168

	// DefaultAQI substitutes for a failed air-quality lookup.
	DefaultAQI = 50

	localTimeLayout = "2006-01-02T15:04"
	localDateLayout = "2006-01-02"
)

// Normalize builds the canonical WeatherModel from one provider response.
// The hourly buffer starts at the first timestamp at or after the provider's
// current time and runs for up to HourlyWindow entries; daily entries map 1:1
// from the provider arrays. aqi comes from the separate air-quality lookup
// (pass DefaultAQI when that lookup failed).
func Normalize(resp *ForecastResponse, city string, aqi float64) *WeatherModel {
	loc := locationFor(resp.Timezone)
	now := parseLocalTime(resp.Current.Time, loc)

	cur := Current{
		Temperature:       common.OrDefault(resp.Current.Temperature, 0),
		FeelsLike:         common.OrDefault(resp.Current.FeelsLike, resp.Current.Temperature),
		Humidity:          common.OrDefault(resp.Current.Humidity, 50),
		Pressure:          common.OrDefault(resp.Current.Pressure, 1013),
		WindSpeed:         common.OrDefault(resp.Current.WindSpeed, 0),
		WindDirection:     common.OrDefault(resp.Current.WindDirection, 0),
		UVIndex:           common.OrDefault(resp.Current.UVIndex, 0),
		AQI:               common.OrDefault(aqi, DefaultAQI),
		CloudCover:        common.OrDefault(resp.Current.CloudCover, 0),
		Precipitation:     common.OrDefault(resp.Current.Precipitation, 0),
		PrecipProbability: common.Clamp(common.OrDefault(resp.Current.PrecipProbability, 0), 0, 100),
		Code:              resp.Current.WeatherCode,
		IsDay:             resp.Current.IsDay == 1,
	}
	cur.Icon = Classify(cur.Code, cur.IsDay, cur.PrecipProbability)
	cur.Condition = ConditionText(cur.Icon)

	m := &WeatherModel{
		City:          city,
		Coordinate:    Coordinate{Lat: resp.Latitude, Lon: resp.Longitude},
		Timezone:      resp.Timezone,
		ReferenceTime: now,
		View:          ViewNow,
		Current:       cur,
		Hourly:        normalizeHourly(&resp.Hourly, now, loc),
		Daily:         normalizeDaily(&resp.Daily, cur.Temperature, loc),
	}

	if len(m.Daily) > 0 {
		today := m.Daily[0]
		m.High = today.High
		m.Low = today.Low
	}
	m.Sunrise = clockString(firstString(resp.Daily.Sunrise), loc)
	m.Sunset = clockString(firstString(resp.Daily.Sunset), loc)
	m.SmartPhrase = SmartPhrase(cur)

	return m
}

// normalizeHourly locates the first hourly index at or after now ("now" is
// always representable: index 0 when no timestamp qualifies) and converts up
// to HourlyWindow entries.
func normalizeHourly(h *HourlyBlock, now time.Time, loc *time.Location) []HourEntry {
	start := 0
	found := false
	for i, ts := range h.Time {
		t := parseLocalTime(ts, loc)
		if !t.Before(now) {
			start = i
			found = true
			break
		}
	}
	if !found {
		start = 0
	}

	out := make([]HourEntry, 0, HourlyWindow)
	for i := start; i < len(h.Time) && len(out) < HourlyWindow; i++ {
		t := parseLocalTime(h.Time[i], loc)
		prob := common.Clamp(floatAt(h.PrecipProbability, i, 0), 0, 100)
		code := intAt(h.WeatherCode, i, codePartlyCloud)
		isDay := intAt(h.IsDay, i, 1) == 1

		out = append(out, HourEntry{
			Time:              t,
			Clock:             t.Format("15:04"),
			Temperature:       floatAt(h.Temperature, i, 0),
			FeelsLike:         floatAt(h.FeelsLike, i, floatAt(h.Temperature, i, 0)),
			WindSpeed:         floatAt(h.WindSpeed, i, 0),
			PrecipProbability: prob,
			Icon:              Classify(code, isDay, prob),
			IsDay:             isDay,
		})
	}
	return out
}

func normalizeDaily(d *DailyBlock, currentTemp float64, loc *time.Location) []DayEntry {
	out := make([]DayEntry, 0, len(d.Time))
	for i, ds := range d.Time {
		date, err := time.ParseInLocation(localDateLayout, ds, loc)
		if err != nil {
			continue
		}

		prob := common.Clamp(floatAt(d.PrecipProbability, i, 0), 0, 100)
		code := intAt(d.WeatherCode, i, codePartlyCloud)
		icon := Classify(code, true, prob)
		high := floatAt(d.TemperatureMax, i, currentTemp)
		// Missing minimum defaults to current minus 5.
		low := floatAt(d.TemperatureMin, i, currentTemp-5)

		out = append(out, DayEntry{
			Date:              date,
			Label:             dayLabel(i, date),
			DateLabel:         date.Format("2 Jan"),
			High:              high,
			Low:               low,
			FeelsLikeMax:      floatAt(d.FeelsLikeMax, i, high),
			UVMax:             floatAt(d.UVIndexMax, i, 0),
			PrecipProbability: prob,
			WindMax:           floatAt(d.WindSpeedMax, i, 0),
			Icon:              icon,
			Condition:         ConditionText(icon),
		})
	}
	return out
}

func dayLabel(index int, date time.Time) string {
	switch index {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return date.Weekday().String()
	}
}

func locationFor(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// parseLocalTime parses the provider's local timestamp format, trying the
// date-only layout as a fallback. Zero time on failure.
func parseLocalTime(s string, loc *time.Location) time.Time {
	if t, err := time.ParseInLocation(localTimeLayout, s, loc); err == nil {
		return t
	}
	if t, err := time.ParseInLocation(localDateLayout, s, loc); err == nil {
		return t
	}
	return time.Time{}
}

func clockString(s string, loc *time.Location) string {
	t := parseLocalTime(s, loc)
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}

// floatAt reads a parallel-array value, substituting def when the array is
// short or the value is not a number.
func floatAt(s []float64, i int, def float64) float64 {
	if i < 0 || i >= len(s) {
		return def
	}
	return common.OrDefault(s[i], def)
}

func intAt(s []int, i int, def int) int {
	if i < 0 || i >= len(s) {
		return def
	}
	return s[i]
}

func firstString(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
