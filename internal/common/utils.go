package common

import "math"

// OrDefault returns def when v is NaN or infinite, otherwise v.
func OrDefault(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// Round returns v rounded to the nearest integer as a float64.
func Round(v float64) float64 {
	return math.Round(v)
}

// Round1 returns v rounded to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Clamp constrains v to the [lo, hi] interval.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
