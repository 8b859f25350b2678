package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrenko/museum-weather-dashboard/internal/geo"
)

type fakeProvider struct {
	calls  int
	lastAt geo.Coordinate
	err    error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Forecast(ctx context.Context, loc geo.Coordinate) (*Bundle, error) {
	f.calls++
	f.lastAt = loc
	if f.err != nil {
		return nil, f.err
	}
	return &Bundle{Timezone: "UTC", Current: CurrentConditions{TemperatureC: 21}}, nil
}

// Out-of-range coordinates are silently corrected before the provider call.
func TestForecastNormalizesCoordinates(t *testing.T) {
	p := &fakeProvider{}
	svc := NewService(p, nil, time.Minute, time.Second)

	bundle, err := svc.Forecast(context.Background(), geo.Coordinate{Latitude: 95, Longitude: 370})
	require.NoError(t, err)

	assert.Equal(t, 90.0, p.lastAt.Latitude)
	assert.Equal(t, 10.0, p.lastAt.Longitude)
	assert.Equal(t, 90.0, bundle.Location.Latitude)
}

// Repeat requests for the same (rounded) coordinate are served from cache.
func TestForecastCaches(t *testing.T) {
	p := &fakeProvider{}
	svc := NewService(p, nil, time.Minute, time.Second)

	_, err := svc.Forecast(context.Background(), geo.Coordinate{Latitude: 10, Longitude: 20})
	require.NoError(t, err)
	got, err := svc.Forecast(context.Background(), geo.Coordinate{Latitude: 10, Longitude: 20, Label: "B"})
	require.NoError(t, err)

	assert.Equal(t, 1, p.calls)
	// Cached bundles still carry the caller's label.
	assert.Equal(t, "B", got.Location.Label)
}

func TestForecastPropagatesProviderError(t *testing.T) {
	p := &fakeProvider{err: errors.New("no data")}
	svc := NewService(p, nil, time.Minute, time.Second)

	_, err := svc.Forecast(context.Background(), geo.Coordinate{})
	assert.Error(t, err)
}

func TestWarmFillsCache(t *testing.T) {
	p := &fakeProvider{}
	cities := []City{
		{Name: "Paris (France)", Latitude: 48.8566, Longitude: 2.3522},
		{Name: "Berlin (Germany)", Latitude: 52.5200, Longitude: 13.4050},
	}
	svc := NewService(p, cities, time.Minute, time.Second)

	svc.Warm(context.Background())
	assert.Equal(t, 2, p.calls)

	// Subsequent lookups for a preset city hit the warmed cache.
	_, err := svc.Forecast(context.Background(), cities[0].Coordinate())
	require.NoError(t, err)
	assert.Equal(t, 2, p.calls)
}
