// Package lifestyle scores current conditions into activity advisories.
package lifestyle

import (
	"math"

	"github.com/portalhava/weather-data-service/internal/weather"
)

// Status is the categorical outcome of one advisory.
type Status string

const (
	StatusGood     Status = "good"
	StatusModerate Status = "moderate"
	StatusBad      Status = "bad"
)

// Advisory is one scored activity.
type Advisory struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status Status `json:"status"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
}

// Inputs are the current readings the rules evaluate. NaN fields are
// replaced with neutral defaults before evaluation.
type Inputs struct {
	Temperature       float64
	WindSpeed         float64
	Humidity          float64
	UVIndex           float64
	AQI               float64
	PrecipProbability float64
}

// Neutral defaults for missing readings.
const (
	defaultTemperature = 20
	defaultWindSpeed   = 10
	defaultHumidity    = 50
	defaultUVIndex     = 3
	defaultAQI         = 40
	defaultPrecipProb  = 10
)

// FromCurrent builds advisory inputs from a current-conditions block.
func FromCurrent(cur weather.Current) Inputs {
	return Inputs{
		Temperature:       cur.Temperature,
		WindSpeed:         cur.WindSpeed,
		Humidity:          cur.Humidity,
		UVIndex:           cur.UVIndex,
		AQI:               cur.AQI,
		PrecipProbability: cur.PrecipProbability,
	}
}

func (in Inputs) withDefaults() Inputs {
	in.Temperature = orDefault(in.Temperature, defaultTemperature)
	in.WindSpeed = orDefault(in.WindSpeed, defaultWindSpeed)
	in.Humidity = orDefault(in.Humidity, defaultHumidity)
	in.UVIndex = orDefault(in.UVIndex, defaultUVIndex)
	in.AQI = orDefault(in.AQI, defaultAQI)
	in.PrecipProbability = orDefault(in.PrecipProbability, defaultPrecipProb)
	return in
}

func orDefault(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// Evaluate scores all nine advisories. The output always has exactly nine
// entries in a fixed order; advisories are independent of one another.
func Evaluate(in Inputs) []Advisory {
	in = in.withDefaults()
	return []Advisory{
		running(in),
		outdoorKids(in),
		allergy(in),
		sensitiveGroups(in),
		barbecue(in),
		fishing(in),
		carWash(in),
		gardening(in),
		cycling(in),
	}
}

// Each advisory applies its tiers worst-first; the first matching tier wins.

func running(in Inputs) Advisory {
	a := Advisory{ID: "running", Name: "Running", Icon: "run"}
	switch {
	case in.AQI > 100 || in.Temperature >= 35 || in.Temperature <= -5 || in.WindSpeed >= 40 || in.PrecipProbability >= 70:
		a.Status, a.Label = StatusBad, "Conditions are unsafe for a run"
	case in.AQI > 50 || in.Temperature >= 30 || in.Temperature <= 0 || in.WindSpeed >= 25 || in.UVIndex >= 8:
		a.Status, a.Label = StatusModerate, "Run early or keep it short"
	default:
		a.Status, a.Label = StatusGood, "Great conditions for a run"
	}
	return a
}

func outdoorKids(in Inputs) Advisory {
	a := Advisory{ID: "outdoor-kids", Name: "Kids Outdoors", Icon: "playground"}
	switch {
	case in.AQI > 100 || in.Temperature >= 36 || in.Temperature <= -3 || in.UVIndex >= 10 || in.PrecipProbability >= 70:
		a.Status, a.Label = StatusBad, "Keep the kids indoors today"
	case in.AQI > 60 || in.Temperature >= 31 || in.Temperature <= 3 || in.UVIndex >= 7 || in.PrecipProbability >= 40:
		a.Status, a.Label = StatusModerate, "Short outdoor play with precautions"
	default:
		a.Status, a.Label = StatusGood, "Perfect for outdoor play"
	}
	return a
}

func allergy(in Inputs) Advisory {
	a := Advisory{ID: "allergy", Name: "Allergy Risk", Icon: "pollen"}
	switch {
	// Dry, warm and windy days spread pollen the widest.
	case in.WindSpeed >= 30 && in.Humidity < 40 && in.Temperature > 15:
		a.Status, a.Label = StatusBad, "High pollen spread, keep windows closed"
	case in.WindSpeed >= 15 && in.Humidity < 55:
		a.Status, a.Label = StatusModerate, "Moderate pollen activity"
	default:
		a.Status, a.Label = StatusGood, "Low allergy risk"
	}
	return a
}

func sensitiveGroups(in Inputs) Advisory {
	a := Advisory{ID: "sensitive-groups", Name: "Sensitive Groups", Icon: "heart"}
	switch {
	case in.AQI > 100 || in.Temperature >= 35 || in.Temperature <= -5:
		a.Status, a.Label = StatusBad, "Sensitive groups should stay indoors"
	case in.AQI > 50 || in.Temperature >= 30 || in.Temperature <= 0 || in.Humidity >= 85:
		a.Status, a.Label = StatusModerate, "Limit prolonged outdoor exertion"
	default:
		a.Status, a.Label = StatusGood, "No special precautions needed"
	}
	return a
}

func barbecue(in Inputs) Advisory {
	a := Advisory{ID: "barbecue", Name: "Barbecue", Icon: "grill"}
	switch {
	case in.PrecipProbability >= 50 || in.WindSpeed >= 35 || in.Temperature <= 5:
		a.Status, a.Label = StatusBad, "Not a day for the grill"
	case in.PrecipProbability >= 25 || in.WindSpeed >= 20 || in.Temperature <= 12:
		a.Status, a.Label = StatusModerate, "Grill with a plan B"
	default:
		a.Status, a.Label = StatusGood, "Fire up the grill"
	}
	return a
}

func fishing(in Inputs) Advisory {
	a := Advisory{ID: "fishing", Name: "Fishing", Icon: "fish"}
	switch {
	case in.WindSpeed >= 30 || in.PrecipProbability >= 70:
		a.Status, a.Label = StatusBad, "Too rough on the water"
	case in.WindSpeed >= 18 || in.PrecipProbability >= 40 || in.Temperature <= 4:
		a.Status, a.Label = StatusModerate, "Fishable but unsettled"
	default:
		a.Status, a.Label = StatusGood, "Calm conditions for fishing"
	}
	return a
}

func carWash(in Inputs) Advisory {
	a := Advisory{ID: "car-wash", Name: "Car Wash", Icon: "car"}
	switch {
	case in.PrecipProbability >= 40:
		a.Status, a.Label = StatusBad, "Rain will undo the wash"
	case in.PrecipProbability >= 20 || in.Temperature <= 0:
		a.Status, a.Label = StatusModerate, "Wash at your own risk"
	default:
		a.Status, a.Label = StatusGood, "Good day to wash the car"
	}
	return a
}

func gardening(in Inputs) Advisory {
	a := Advisory{ID: "gardening", Name: "Gardening", Icon: "sprout"}
	switch {
	case in.Temperature <= 0 || in.WindSpeed >= 40 || in.PrecipProbability >= 80:
		a.Status, a.Label = StatusBad, "Leave the garden for another day"
	case in.Temperature <= 8 || in.UVIndex >= 9 || in.PrecipProbability >= 50:
		a.Status, a.Label = StatusModerate, "Garden in the cooler hours"
	default:
		a.Status, a.Label = StatusGood, "Fine weather for the garden"
	}
	return a
}

func cycling(in Inputs) Advisory {
	a := Advisory{ID: "cycling", Name: "Cycling", Icon: "bike"}
	switch {
	case in.WindSpeed >= 35 || in.PrecipProbability >= 70 || in.Temperature <= -3 || in.AQI > 100:
		a.Status, a.Label = StatusBad, "Skip the ride today"
	case in.WindSpeed >= 22 || in.PrecipProbability >= 40 || in.Temperature <= 3 || in.AQI > 60:
		a.Status, a.Label = StatusModerate, "Ride with care"
	default:
		a.Status, a.Label = StatusGood, "Great day for a ride"
	}
	return a
}
