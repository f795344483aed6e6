package weather

import (
	"time"

	"github.com/portalhava/weather-data-service/internal/common"
)

// The projectors derive alternate time-window views from an already
// normalized model. Day boundaries are located with explicit calendar-date
// arithmetic over the hourly buffer's timestamps rather than scanning for
// midnight markers, so gaps in the buffer or DST transitions cannot
// silently shift the window. Every field not explicitly overridden is
// preserved; the source model is never mutated.

// ProjectTomorrow returns a new model describing the next calendar day.
// Scalars come from Daily[1]; the hourly slice covers tomorrow's 24 hours.
// When the buffer holds no entry inside tomorrow's window the slice falls
// back to a fixed offset of 24 entries from the start.
func ProjectTomorrow(m *WeatherModel) *WeatherModel {
	out := cloneModel(m)
	out.View = ViewTomorrow

	loc := m.location()
	dayStart := startOfDay(m.ReferenceTime.In(loc)).AddDate(0, 0, 1)
	out.Hourly = hourlyWindowSlice(m.Hourly, dayStart, 24)
	if len(out.Hourly) == 0 {
		out.Hourly = fixedOffsetSlice(m.Hourly, 24, 24)
	}

	src := dayAt(m.Daily, 1)
	if src == nil {
		return out
	}
	out.High = src.High
	out.Low = src.Low
	out.Current = currentFromDay(m.Current, *src)
	out.SmartPhrase = SmartPhrase(out.Current)
	return out
}

// ProjectWeekend returns a new model aggregating Saturday and Sunday.
// Highs and lows are the rounded mean of the two day entries, precipitation
// probability is their maximum, and icon/condition come from Saturday.
// The hourly slice covers the 48 hours from Saturday's midnight.
func ProjectWeekend(m *WeatherModel) *WeatherModel {
	out := cloneModel(m)
	out.View = ViewWeekend

	loc := m.location()
	ref := m.ReferenceTime.In(loc)
	daysUntilSaturday := (int(time.Saturday) - int(ref.Weekday()) + 7) % 7

	satStart := startOfDay(ref).AddDate(0, 0, daysUntilSaturday)
	out.Hourly = hourlyWindowSlice(m.Hourly, satStart, 48)
	if len(out.Hourly) == 0 {
		out.Hourly = fixedOffsetSlice(m.Hourly, daysUntilSaturday*24, 48)
	}

	sat, sun := weekendDays(m.Daily, satStart, daysUntilSaturday)
	if sat == nil {
		return out
	}

	high := sat.High
	low := sat.Low
	prob := sat.PrecipProbability
	if sun != nil {
		high = common.Round((sat.High + sun.High) / 2)
		low = common.Round((sat.Low + sun.Low) / 2)
		if sun.PrecipProbability > prob {
			prob = sun.PrecipProbability
		}
	}

	agg := *sat
	agg.High = high
	agg.Low = low
	agg.PrecipProbability = prob

	out.High = high
	out.Low = low
	out.Current = currentFromDay(m.Current, agg)
	out.SmartPhrase = SmartPhrase(out.Current)
	return out
}

// weekendDays finds the Saturday and Sunday entries by calendar date,
// falling back to position when no date matches. Matching by label alone
// would skip to the following weekend whenever Saturday is labelled "Today"
// or "Tomorrow".
func weekendDays(daily []DayEntry, satStart time.Time, daysUntilSaturday int) (*DayEntry, *DayEntry) {
	sunStart := satStart.AddDate(0, 0, 1)

	var sat, sun *DayEntry
	for i := range daily {
		d := daily[i].Date
		if sat == nil && sameDay(d, satStart) {
			sat = &daily[i]
		}
		if sun == nil && sameDay(d, sunStart) {
			sun = &daily[i]
		}
	}
	if sat == nil {
		sat = dayAt(daily, daysUntilSaturday)
	}
	if sun == nil {
		sun = dayAt(daily, daysUntilSaturday+1)
	}
	return sat, sun
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// currentFromDay overrides the view-dependent scalar fields of cur with the
// day entry's values, keeping readings that have no daily counterpart.
func currentFromDay(cur Current, day DayEntry) Current {
	cur.Temperature = day.High
	cur.FeelsLike = day.FeelsLikeMax
	cur.UVIndex = day.UVMax
	cur.PrecipProbability = day.PrecipProbability
	cur.WindSpeed = day.WindMax
	cur.Icon = day.Icon
	cur.Condition = day.Condition
	cur.IsDay = true
	return cur
}

// hourlyWindowSlice returns the entries inside [start, start+limit hours),
// capped at limit entries.
func hourlyWindowSlice(hourly []HourEntry, start time.Time, limit int) []HourEntry {
	end := start.Add(time.Duration(limit) * time.Hour)
	out := make([]HourEntry, 0, limit)
	for _, h := range hourly {
		if h.Time.Before(start) || !h.Time.Before(end) {
			continue
		}
		out = append(out, h)
		if len(out) == limit {
			break
		}
	}
	return out
}

// fixedOffsetSlice is the short-buffer fallback: limit entries starting at a
// fixed offset from the front of the buffer.
func fixedOffsetSlice(hourly []HourEntry, offset, limit int) []HourEntry {
	if offset >= len(hourly) {
		return []HourEntry{}
	}
	end := offset + limit
	if end > len(hourly) {
		end = len(hourly)
	}
	out := make([]HourEntry, end-offset)
	copy(out, hourly[offset:end])
	return out
}

func dayAt(daily []DayEntry, i int) *DayEntry {
	if i < 0 || i >= len(daily) {
		return nil
	}
	return &daily[i]
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// cloneModel deep-copies the slices so derived views never alias the source.
func cloneModel(m *WeatherModel) *WeatherModel {
	out := *m
	out.Hourly = make([]HourEntry, len(m.Hourly))
	copy(out.Hourly, m.Hourly)
	out.Daily = make([]DayEntry, len(m.Daily))
	copy(out.Daily, m.Daily)
	if m.Marine != nil {
		marine := *m.Marine
		out.Marine = &marine
	}
	return &out
}
