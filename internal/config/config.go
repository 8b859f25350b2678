package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mpetrenko/museum-weather-dashboard/internal/weather"
)

type AppConfig struct {
	Port string

	// Upstream APIs.
	METBaseURL       string
	OpenMeteoBaseURL string

	// Per-call timeouts. Detail fetches get a tighter bound because a
	// search fans out into many of them.
	SearchTimeout  time.Duration
	DetailTimeout  time.Duration
	WeatherTimeout time.Duration

	// Outbound retry count; 0 means a failed call is simply dropped for
	// that render cycle.
	MaxRetries int

	// Pacing for the per-object MET detail fetch loop.
	METRequestsPerSec int

	// Artwork result bounds.
	DefaultArtworkLimit int
	MaxArtworkLimit     int

	// Cache TTLs.
	ArtworkCacheTTL    time.Duration
	WeatherCacheTTL    time.Duration
	DepartmentCacheTTL time.Duration

	// Session location retention.
	SessionMaxAge time.Duration

	// Forecast cache warm interval for the preset cities.
	WarmInterval time.Duration

	// Optional Google key for reverse-geocoding map clicks into labels.
	GeocoderAPIKey string

	// Preset dashboard cities.
	Cities []weather.City
}

// defaultCities are the dashboard's preset locations.
var defaultCities = []weather.City{
	{Name: "Beijing (China)", Latitude: 39.9042, Longitude: 116.4074},
	{Name: "Shanghai (China)", Latitude: 31.2304, Longitude: 121.4737},
	{Name: "Guangzhou (China)", Latitude: 23.1200, Longitude: 113.2500},
	{Name: "New York (USA)", Latitude: 40.7128, Longitude: -74.0060},
	{Name: "London (UK)", Latitude: 51.5074, Longitude: -0.1278},
	{Name: "Tokyo (Japan)", Latitude: 35.6762, Longitude: 139.6503},
	{Name: "Seoul (Korea)", Latitude: 37.5665, Longitude: 126.9780},
	{Name: "Paris (France)", Latitude: 48.8566, Longitude: 2.3522},
	{Name: "Sydney (Australia)", Latitude: -33.8688, Longitude: 151.2093},
	{Name: "Berlin (Germany)", Latitude: 52.5200, Longitude: 13.4050},
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.METBaseURL = getenvDefault("MET_BASE_URL", "https://collectionapi.metmuseum.org/public/collection/v1")
	cfg.OpenMeteoBaseURL = getenvDefault("OPENMETEO_BASE_URL", "https://api.open-meteo.com/v1/forecast")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	var err error
	if cfg.SearchTimeout, err = getenvDuration("SEARCH_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.DetailTimeout, err = getenvDuration("DETAIL_TIMEOUT", "8s"); err != nil {
		return nil, err
	}
	if cfg.WeatherTimeout, err = getenvDuration("WEATHER_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.ArtworkCacheTTL, err = getenvDuration("ARTWORK_CACHE_TTL", "10m"); err != nil {
		return nil, err
	}
	if cfg.WeatherCacheTTL, err = getenvDuration("WEATHER_CACHE_TTL", "5m"); err != nil {
		return nil, err
	}
	if cfg.DepartmentCacheTTL, err = getenvDuration("DEPARTMENT_CACHE_TTL", "12h"); err != nil {
		return nil, err
	}
	if cfg.SessionMaxAge, err = getenvDuration("SESSION_MAX_AGE", "24h"); err != nil {
		return nil, err
	}
	if cfg.WarmInterval, err = getenvDuration("WARM_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	cfg.MaxRetries = getenvInt("MAX_RETRIES", 0)
	cfg.METRequestsPerSec = getenvInt("MET_REQUESTS_PER_SEC", 4)
	cfg.DefaultArtworkLimit = getenvInt("DEFAULT_ARTWORK_LIMIT", 12)
	cfg.MaxArtworkLimit = getenvInt("MAX_ARTWORK_LIMIT", 50)

	if cfg.DefaultArtworkLimit <= 0 {
		return nil, fmt.Errorf("DEFAULT_ARTWORK_LIMIT must be positive")
	}
	if cfg.MaxArtworkLimit < cfg.DefaultArtworkLimit {
		return nil, fmt.Errorf("MAX_ARTWORK_LIMIT must be >= DEFAULT_ARTWORK_LIMIT")
	}

	cities, err := loadCities()
	if err != nil {
		return nil, err
	}
	cfg.Cities = cities

	return cfg, nil
}

// loadCities parses CITY_PRESETS ("Name|lat|lon;Name|lat|lon;...") and falls
// back to the built-in list when unset.
func loadCities() ([]weather.City, error) {
	raw := os.Getenv("CITY_PRESETS")
	if raw == "" {
		return defaultCities, nil
	}

	var cities []weather.City
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, "|")
		if len(fields) != 3 {
			return nil, fmt.Errorf("invalid CITY_PRESETS entry %q; want Name|lat|lon", part)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in CITY_PRESETS entry %q: %w", part, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in CITY_PRESETS entry %q: %w", part, err)
		}
		cities = append(cities, weather.City{
			Name:      strings.TrimSpace(fields[0]),
			Latitude:  lat,
			Longitude: lon,
		})
	}
	if len(cities) == 0 {
		return defaultCities, nil
	}
	return cities, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
