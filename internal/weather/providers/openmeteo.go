package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mpetrenko/museum-weather-dashboard/internal/geo"
	"github.com/mpetrenko/museum-weather-dashboard/internal/httpx"
	"github.com/mpetrenko/museum-weather-dashboard/internal/weather"
)

// DefaultOpenMeteoBaseURL is the public forecast endpoint. Open-Meteo needs
// no API key.
const DefaultOpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

// Layouts used by Open-Meteo for its local-time ISO strings.
const (
	openMeteoTimeLayout = "2006-01-02T15:04"
	openMeteoDateLayout = "2006-01-02"
)

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
// One Forecast call retrieves current conditions, a 7-day daily forecast and
// the hourly series together.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg httpx.Config
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, baseURL string, maxRetries int) *OpenMeteoProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	if baseURL == "" {
		baseURL = DefaultOpenMeteoBaseURL
	}

	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		httpCfg: httpx.Config{
			Client: client,
			Backoff: httpx.BackoffConfig{
				MaxRetries:      maxRetries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// openMeteoPayload mirrors the forecast response: current is a flat object,
// daily and hourly are parallel arrays keyed by field name.
type openMeteoPayload struct {
	Timezone string `json:"timezone"`
	Current  struct {
		Time               string  `json:"time"`
		Temperature2m      float64 `json:"temperature_2m"`
		RelativeHumidity2m float64 `json:"relative_humidity_2m"`
		WindSpeed10m       float64 `json:"wind_speed_10m"`
		WeatherCode        int     `json:"weather_code"`
		IsDay              int     `json:"is_day"`
	} `json:"current"`
	Daily struct {
		Time             []string  `json:"time"`
		WeatherCode      []int     `json:"weather_code"`
		Temperature2mMax []float64 `json:"temperature_2m_max"`
		Temperature2mMin []float64 `json:"temperature_2m_min"`
		RainSum          []float64 `json:"rain_sum"`
		SnowfallSum      []float64 `json:"snowfall_sum"`
		SunshineDuration []float64 `json:"sunshine_duration"`
	} `json:"daily"`
	Hourly struct {
		Time          []string  `json:"time"`
		Temperature2m []float64 `json:"temperature_2m"`
		Precipitation []float64 `json:"precipitation"`
	} `json:"hourly"`
}

func (p *OpenMeteoProvider) Forecast(ctx context.Context, loc geo.Coordinate) (*weather.Bundle, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%.4f", loc.Latitude))
		values.Set("longitude", fmt.Sprintf("%.4f", loc.Longitude))
		values.Set("current", "temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code,is_day")
		values.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min,rain_sum,snowfall_sum,sunshine_duration")
		values.Set("hourly", "temperature_2m,precipitation")
		values.Set("timezone", "auto")
		values.Set("forecast_days", "7")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpx.Do(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload openMeteoPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}

	return shapeBundle(loc, payload), nil
}

// shapeBundle converts the raw payload into the display-ready bundle,
// defaulting missing optional fields rather than propagating absence.
func shapeBundle(loc geo.Coordinate, payload openMeteoPayload) *weather.Bundle {
	tz := payload.Timezone
	if tz == "" {
		tz = "UTC"
	}

	current := shapeCurrent(payload)

	daily := make([]weather.DailyForecastEntry, 0, 7)
	for i, day := range payload.Daily.Time {
		if i >= 7 {
			break
		}
		date, err := time.Parse(openMeteoDateLayout, day)
		if err != nil {
			continue
		}
		entry := weather.DailyForecastEntry{
			Date:        date,
			DateLabel:   date.Format("01-02 (Mon)"),
			WeatherCode: at(payload.Daily.WeatherCode, i),
			MaxTempC:    atF(payload.Daily.Temperature2mMax, i),
			MinTempC:    atF(payload.Daily.Temperature2mMin, i),
			RainMm:      atF(payload.Daily.RainSum, i),
			SnowMm:      atF(payload.Daily.SnowfallSum, i),
			// sunshine_duration arrives in seconds
			SunshineHours: atF(payload.Daily.SunshineDuration, i) / 3600,
		}
		info := weather.CodeToInfo(entry.WeatherCode)
		entry.Icon, entry.Description = info.Icon, info.Description
		daily = append(daily, entry)
	}

	hourly := make([]weather.HourlyForecastEntry, 0, 24)
	for i, hour := range payload.Hourly.Time {
		if i >= 24 {
			break
		}
		ts, err := time.Parse(openMeteoTimeLayout, hour)
		if err != nil {
			continue
		}
		hourly = append(hourly, weather.HourlyForecastEntry{
			Time:            ts,
			TimeLabel:       ts.Format("15:04"),
			TemperatureC:    atF(payload.Hourly.Temperature2m, i),
			PrecipitationMm: atF(payload.Hourly.Precipitation, i),
		})
	}

	return &weather.Bundle{
		Location: loc,
		Timezone: tz,
		Current:  current,
		Daily:    daily,
		Hourly:   hourly,
	}
}

func shapeCurrent(payload openMeteoPayload) weather.CurrentConditions {
	ts, err := time.Parse(openMeteoTimeLayout, payload.Current.Time)
	if err != nil {
		ts = time.Now().UTC()
	}

	info := weather.CodeToInfo(payload.Current.WeatherCode)

	// Precipitation chance over the next 24h: fraction of hours with more
	// than 0.1mm forecast.
	wet := 0
	hours := len(payload.Hourly.Precipitation)
	if hours > 24 {
		hours = 24
	}
	for i := 0; i < hours; i++ {
		if payload.Hourly.Precipitation[i] > 0.1 {
			wet++
		}
	}
	chance := 0
	if wet > 0 {
		chance = int(float64(wet) / 24 * 100)
	}

	return weather.CurrentConditions{
		Time:            ts,
		TemperatureC:    payload.Current.Temperature2m,
		HumidityPct:     payload.Current.RelativeHumidity2m,
		WindSpeedKmh:    payload.Current.WindSpeed10m,
		WeatherCode:     payload.Current.WeatherCode,
		IsDay:           payload.Current.IsDay == 1,
		Icon:            info.Icon,
		Description:     info.Description,
		PrecipChancePct: chance,
	}
}

// at/atF guard against ragged parallel arrays in the payload.
func at(s []int, i int) int {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func atF(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}
