package weather

// SmartPhrase derives a one-line advisory from current readings. Rules are
// checked in order, first match wins; the default is a neutral phrase.
func SmartPhrase(cur Current) string {
	switch {
	case isStormCode(cur.Code):
		return "Thunderstorms expected, safest to stay indoors."
	case isSnowCode(cur.Code) || isSleetCode(cur.Code):
		return "Snow is on the way, dress warmly and allow extra travel time."
	case isFreezingCode(cur.Code):
		return "Freezing rain risk, watch for icy roads and pavements."
	case isHeavyRain(cur):
		return "Heavy rain likely, don't forget your umbrella."
	case isFogCode(cur.Code):
		return "Foggy conditions, drive carefully and keep your lights on."
	case cur.UVIndex >= 8:
		return "Very high UV today, wear sunscreen and seek shade at midday."
	case cur.WindSpeed >= 40:
		return "Strong winds expected, secure loose items outdoors."
	case cur.Temperature >= 32:
		return "A hot one, stay hydrated and avoid the midday sun."
	case cur.Temperature <= 0:
		return "Freezing temperatures, bundle up before heading out."
	case cur.PrecipProbability >= 40:
		return "Showers possible later, an umbrella wouldn't hurt."
	default:
		return "No significant weather expected, enjoy your day."
	}
}

func isHeavyRain(cur Current) bool {
	switch cur.Code {
	case 63, 65, 81, 82:
		return true
	}
	return cur.PrecipProbability >= 70
}
