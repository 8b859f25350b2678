package weather

import (
	"time"

	"github.com/mpetrenko/museum-weather-dashboard/internal/geo"
)

// CurrentConditions is the normalized real-time weather view for one location.
// Every field is display-ready; the presenter never touches raw provider JSON.
type CurrentConditions struct {
	Time            time.Time `json:"time"`
	TemperatureC    float64   `json:"temperatureC"`
	HumidityPct     float64   `json:"humidityPercent"`
	WindSpeedKmh    float64   `json:"windSpeedKmh"`
	WeatherCode     int       `json:"weatherCode"`
	IsDay           bool      `json:"isDay"`
	Icon            string    `json:"icon"`
	Description     string    `json:"description"`
	PrecipChancePct int       `json:"precipChancePercent"`
}

// DailyForecastEntry is one day of the multi-day forecast.
type DailyForecastEntry struct {
	Date          time.Time `json:"date"`
	DateLabel     string    `json:"dateLabel"` // e.g. "08-31 (Sun)"
	WeatherCode   int       `json:"weatherCode"`
	Icon          string    `json:"icon"`
	Description   string    `json:"description"`
	MaxTempC      float64   `json:"maxTempC"`
	MinTempC      float64   `json:"minTempC"`
	RainMm        float64   `json:"rainMm"`
	SnowMm        float64   `json:"snowMm"`
	SunshineHours float64   `json:"sunshineHours"`
}

// HourlyForecastEntry is one hour of the short-range forecast.
type HourlyForecastEntry struct {
	Time            time.Time `json:"time"`
	TimeLabel       string    `json:"timeLabel"` // e.g. "14:00"
	TemperatureC    float64   `json:"temperatureC"`
	PrecipitationMm float64   `json:"precipitationMm"`
}

// Bundle is everything one dashboard render needs for a location: current
// conditions plus bounded daily (≤7) and hourly (≤24) forecasts. Bundles are
// ephemeral; they are recomputed per request and only ever cached briefly.
type Bundle struct {
	Location geo.Coordinate        `json:"location"`
	Timezone string                `json:"timezone"`
	Current  CurrentConditions     `json:"current"`
	Daily    []DailyForecastEntry  `json:"daily"`
	Hourly   []HourlyForecastEntry `json:"hourly"`
}

// City is a preset dashboard location.
type City struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinate returns the city's position as a labeled coordinate.
func (c City) Coordinate() geo.Coordinate {
	return geo.Coordinate{Latitude: c.Latitude, Longitude: c.Longitude, Label: c.Name}
}
