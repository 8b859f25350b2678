package weather

import (
	"context"

	"github.com/mpetrenko/museum-weather-dashboard/internal/geo"
)

// Provider abstracts a forecast data source (e.g. Open-Meteo).
// A single Forecast call returns current conditions plus the daily and
// hourly series for the location.
type Provider interface {
	Name() string
	Forecast(ctx context.Context, loc geo.Coordinate) (*Bundle, error)
}
