package weather

// ForecastResponse mirrors the forecast provider's JSON payload: a current
// block plus hourly and daily objects of parallel arrays. Field tags match
// the provider schema so clients can decode into it directly.
type ForecastResponse struct {
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Timezone  string       `json:"timezone"`
	Current   CurrentBlock `json:"current"`
	Hourly    HourlyBlock  `json:"hourly"`
	Daily     DailyBlock   `json:"daily"`
}

// CurrentBlock is the provider's current-conditions object.
type CurrentBlock struct {
	Time              string  `json:"time"` // local "2006-01-02T15:04"
	Temperature       float64 `json:"temperature_2m"`
	FeelsLike         float64 `json:"apparent_temperature"`
	Humidity          float64 `json:"relative_humidity_2m"`
	Pressure          float64 `json:"surface_pressure"`
	WindSpeed         float64 `json:"wind_speed_10m"`
	WindDirection     float64 `json:"wind_direction_10m"`
	UVIndex           float64 `json:"uv_index"`
	CloudCover        float64 `json:"cloud_cover"`
	Precipitation     float64 `json:"precipitation"`
	PrecipProbability float64 `json:"precipitation_probability"`
	WeatherCode       int     `json:"weather_code"`
	IsDay             int     `json:"is_day"`
}

// HourlyBlock holds the provider's parallel hourly arrays.
type HourlyBlock struct {
	Time              []string  `json:"time"`
	Temperature       []float64 `json:"temperature_2m"`
	FeelsLike         []float64 `json:"apparent_temperature"`
	WindSpeed         []float64 `json:"wind_speed_10m"`
	PrecipProbability []float64 `json:"precipitation_probability"`
	WeatherCode       []int     `json:"weather_code"`
	IsDay             []int     `json:"is_day"`
}

// DailyBlock holds the provider's parallel daily arrays.
type DailyBlock struct {
	Time              []string  `json:"time"` // "2006-01-02"
	WeatherCode       []int     `json:"weather_code"`
	TemperatureMax    []float64 `json:"temperature_2m_max"`
	TemperatureMin    []float64 `json:"temperature_2m_min"`
	FeelsLikeMax      []float64 `json:"apparent_temperature_max"`
	UVIndexMax        []float64 `json:"uv_index_max"`
	PrecipProbability []float64 `json:"precipitation_probability_max"`
	WindSpeedMax      []float64 `json:"wind_speed_10m_max"`
	Sunrise           []string  `json:"sunrise"`
	Sunset            []string  `json:"sunset"`
}
