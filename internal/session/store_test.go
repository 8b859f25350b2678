package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrenko/museum-weather-dashboard/internal/geo"
)

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(time.Hour)

	_, err := s.Location("abc")
	assert.ErrorIs(t, err, ErrNotFound)

	s.SetLocation("abc", geo.Coordinate{Latitude: 48.8566, Longitude: 2.3522, Label: "Paris"})

	got, err := s.Location("abc")
	require.NoError(t, err)
	assert.Equal(t, "Paris", got.Label)
	assert.Equal(t, 48.8566, got.Latitude)

	// Sessions are independent.
	_, err = s.Location("other")
	assert.ErrorIs(t, err, ErrNotFound)
}

// Stored coordinates are always normalized into valid WGS84 ranges.
func TestStoreNormalizesOnWrite(t *testing.T) {
	s := NewStore(0)

	stored := s.SetLocation("abc", geo.Coordinate{Latitude: -120, Longitude: 200})
	assert.Equal(t, -90.0, stored.Latitude)
	assert.Equal(t, -160.0, stored.Longitude)

	got, err := s.Location("abc")
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestStoreOverwrite(t *testing.T) {
	s := NewStore(time.Hour)

	s.SetLocation("abc", geo.Coordinate{Latitude: 1, Longitude: 2})
	s.SetLocation("abc", geo.Coordinate{Latitude: 3, Longitude: 4, Label: "clicked"})

	got, err := s.Location("abc")
	require.NoError(t, err)
	assert.Equal(t, geo.Coordinate{Latitude: 3, Longitude: 4, Label: "clicked"}, got)
}

func TestStoreExpiry(t *testing.T) {
	s := NewStore(10 * time.Millisecond)

	s.SetLocation("abc", geo.Coordinate{Latitude: 1, Longitude: 2})
	time.Sleep(25 * time.Millisecond)

	_, err := s.Location("abc")
	assert.ErrorIs(t, err, ErrNotFound)
}
