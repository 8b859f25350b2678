package geo

import (
	"fmt"

	"github.com/kelvins/geocoder"
)

// Coordinate is a WGS84 point with an optional human-readable label.
// Latitude and Longitude are expected to be normalized before use.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label,omitempty"`
}

// Key returns a canonical string key for indexing this coordinate in caches.
// Coordinates are rounded to four decimals (~11m), which is well below the
// resolution of any forecast grid.
func (c Coordinate) Key() string {
	return fmt.Sprintf("%.4f:%.4f", c.Latitude, c.Longitude)
}

// ClampLatitude saturates lat into [-90, 90]. In-range values, including the
// poles themselves, pass through unchanged.
func ClampLatitude(lat float64) float64 {
	if lat > 90 {
		return 90
	}
	if lat < -90 {
		return -90
	}
	return lat
}

// WrapLongitude brings lon into [-180, 180] by repeatedly adding or
// subtracting 360. Longitude is cyclic, so out-of-range values are
// equivalent points rather than errors. ±180 are preserved as-is.
func WrapLongitude(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}

// Normalize returns a copy of c with latitude clamped and longitude wrapped.
// Invalid input is silently corrected, never rejected.
func Normalize(c Coordinate) Coordinate {
	c.Latitude = ClampLatitude(c.Latitude)
	c.Longitude = WrapLongitude(c.Longitude)
	return c
}

// Labeler resolves a coordinate to a display label.
type Labeler interface {
	Label(c Coordinate) (string, error)
}

// ReverseGeocoder labels coordinates through the Google geocoding API.
// It is only constructed when an API key is configured; without one the
// service falls back to numeric labels.
type ReverseGeocoder struct{}

// NewReverseGeocoder configures the geocoder package with the given key.
func NewReverseGeocoder(apiKey string) *ReverseGeocoder {
	geocoder.ApiKey = apiKey
	return &ReverseGeocoder{}
}

// Label returns "City, Country" for the coordinate, falling back to the
// full formatted address when the city is not resolvable.
func (g *ReverseGeocoder) Label(c Coordinate) (string, error) {
	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
	})
	if err != nil {
		return "", err
	}
	if len(addresses) == 0 {
		return "", fmt.Errorf("no address found for %s", c.Key())
	}

	addr := addresses[0]
	if addr.City != "" && addr.Country != "" {
		return fmt.Sprintf("%s, %s", addr.City, addr.Country), nil
	}
	return addr.FormatAddress(), nil
}
