package session

import (
	"errors"
	"sync"
	"time"

	"github.com/mpetrenko/museum-weather-dashboard/internal/geo"
)

var (
	// ErrNotFound is returned when a session has no stored location.
	ErrNotFound = errors.New("no location for session")
)

type entry struct {
	location geo.Coordinate
	updated  time.Time
}

// Store is a concurrency-safe in-memory map of session ID to the session's
// current coordinate. It replaces ambient process-wide location state with an
// explicit per-session value that persists between renders until overwritten
// by new user input or a map click.
type Store struct {
	mu sync.RWMutex

	data   map[string]entry
	maxAge time.Duration // optional; <= 0 means entries never expire
}

// NewStore creates a new Store with an optional max entry age.
func NewStore(maxAge time.Duration) *Store {
	return &Store{
		data:   make(map[string]entry),
		maxAge: maxAge,
	}
}

// SetLocation overwrites the session's coordinate. The value is normalized
// into valid WGS84 ranges before storage.
func (s *Store) SetLocation(sessionID string, loc geo.Coordinate) geo.Coordinate {
	loc = geo.Normalize(loc)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()
	s.data[sessionID] = entry{location: loc, updated: time.Now()}
	return loc
}

// Location returns the session's current coordinate.
func (s *Store) Location(sessionID string) (geo.Coordinate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[sessionID]
	if !ok {
		return geo.Coordinate{}, ErrNotFound
	}
	if s.maxAge > 0 && time.Since(e.updated) > s.maxAge {
		return geo.Coordinate{}, ErrNotFound
	}
	return e.location, nil
}

// purgeExpiredLocked drops stale entries. Called opportunistically on writes;
// the caller must hold the write lock.
func (s *Store) purgeExpiredLocked() {
	if s.maxAge <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.maxAge)
	for id, e := range s.data {
		if e.updated.Before(cutoff) {
			delete(s.data, id)
		}
	}
}
