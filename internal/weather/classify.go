package weather

// WMO weather interpretation code groups used by the classifier.
// Mapping based on Open-Meteo weather codes.
const (
	codeClear       = 0
	codeMainlyClear = 1
	codePartlyCloud = 2
	codeOvercast    = 3
)

func isStormCode(code int) bool {
	return code == 95 || code == 96 || code == 99
}

// Codes 96 and 99 report thunderstorms with hail.
func isHailCode(code int) bool {
	return code == 96 || code == 99
}

func isSnowCode(code int) bool {
	switch code {
	case 71, 73, 75, 85, 86:
		return true
	}
	return false
}

// Code 77 is snow grains.
func isSleetCode(code int) bool {
	return code == 77
}

func isFreezingCode(code int) bool {
	switch code {
	case 56, 57, 66, 67:
		return true
	}
	return false
}

func isFogCode(code int) bool {
	return code == 45 || code == 48
}

func isClearCode(code int) bool {
	return code == codeClear || code == codeMainlyClear
}

func isDrizzleCode(code int) bool {
	return code == 51 || code == 53 || code == 55
}

func isRainClassCode(code int) bool {
	switch code {
	case 51, 53, 55, 61, 63, 65, 80, 81, 82:
		return true
	}
	return false
}

// Classify maps a provider weather code, day/night flag and precipitation
// probability (0-100) to an icon key. Rules apply in precedence order, first
// match wins:
//
//  1. severe storm codes, with the hail subset refined further
//  2. snow codes, snow grains as sleet
//  3. freezing drizzle/rain
//  4. fog
//  5. probability >= 40 forces rain regardless of code
//  6. probability in [25,40) on a clear code hedges to cloudy
//  7. probability < 25 on a rain code suppresses the rain icon
//  8. base mapping
//  9. unknown codes fall back to cloudy
//
// The function is pure and total: identical inputs always produce identical
// output and no input panics.
func Classify(code int, isDay bool, precipProb float64) IconKey {
	switch {
	case isHailCode(code):
		return IconHail
	case isStormCode(code):
		return IconStorm
	case isSleetCode(code):
		return IconSleet
	case isSnowCode(code):
		return IconSnow
	case isFreezingCode(code):
		return IconFreezingRain
	case isFogCode(code):
		return IconFog
	}

	// Perception correction: a "sunny" code with a 60% rain chance must not
	// render as sunny.
	if precipProb >= 40 {
		return IconRain
	}

	// Ambiguity hedging: a clear code with a non-trivial rain chance renders
	// as cloudy rather than promising sunshine.
	if precipProb >= 25 && isClearCode(code) {
		return cloudyFor(isDay)
	}

	// Low-confidence suppression: don't show a rain icon for a code the model
	// itself doubts.
	if precipProb < 25 && isRainClassCode(code) {
		return cloudyFor(isDay)
	}

	switch {
	case isClearCode(code):
		if isDay {
			return IconSunny
		}
		return IconMoon
	case code == codePartlyCloud:
		return cloudyFor(isDay)
	case code == codeOvercast:
		return IconOvercast
	case isDrizzleCode(code):
		return IconDrizzle
	case isRainClassCode(code):
		return IconRain
	}

	return IconCloudy
}

func cloudyFor(isDay bool) IconKey {
	if isDay {
		return IconCloudy
	}
	return IconCloudyNight
}

// ConditionText returns the display text for an icon key.
func ConditionText(icon IconKey) string {
	switch icon {
	case IconSunny:
		return "Sunny"
	case IconMoon:
		return "Clear"
	case IconCloudy, IconCloudyNight:
		return "Partly Cloudy"
	case IconOvercast:
		return "Overcast"
	case IconRain:
		return "Rainy"
	case IconDrizzle:
		return "Drizzle"
	case IconFreezingRain:
		return "Freezing Rain"
	case IconSnow:
		return "Snowy"
	case IconSleet:
		return "Sleet"
	case IconHail:
		return "Hail"
	case IconStorm:
		return "Thunderstorm"
	case IconFog:
		return "Foggy"
	default:
		return "Partly Cloudy"
	}
}
