package weather

import (
	"context"
	"log"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/mpetrenko/museum-weather-dashboard/internal/geo"
)

// Service orchestrates forecast fetches: it normalizes coordinates, consults
// a short-lived cache, and falls through to the provider synchronously.
type Service struct {
	provider Provider
	cache    *cache.Cache
	cities   []City
	timeout  time.Duration
}

// NewService creates a new Service. cacheTTL bounds how stale a served
// bundle can be; timeout bounds a single provider call.
func NewService(provider Provider, cities []City, cacheTTL, timeout time.Duration) *Service {
	return &Service{
		provider: provider,
		cache:    cache.New(cacheTTL, 2*cacheTTL),
		cities:   cities,
		timeout:  timeout,
	}
}

// Forecast returns the display-ready bundle for a location. Coordinates are
// silently normalized into valid WGS84 ranges before use.
func (s *Service) Forecast(ctx context.Context, loc geo.Coordinate) (*Bundle, error) {
	loc = geo.Normalize(loc)

	key := "forecast:" + loc.Key()
	if v, ok := s.cache.Get(key); ok {
		cached := *v.(*Bundle)
		cached.Location = loc
		return &cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	bundle, err := s.provider.Forecast(ctx, loc)
	if err != nil {
		return nil, err
	}

	bundle.Location = loc
	s.cache.Set(key, bundle, cache.DefaultExpiration)
	return bundle, nil
}

// Cities returns the preset locations offered by the dashboard selector.
func (s *Service) Cities() []City {
	return s.cities
}

// Warm pre-populates the forecast cache for every preset city so default
// renders are served without an upstream round trip. Failures are logged
// and skipped; the next request simply fetches synchronously.
func (s *Service) Warm(ctx context.Context) {
	for _, city := range s.cities {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.Forecast(ctx, city.Coordinate()); err != nil {
			log.Printf("warm forecast failed for %s: %v", city.Name, err)
		}
	}
}
