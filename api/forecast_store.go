package api

import (
	"sync"
	"time"

	"solar-forecast-service/models"
)

// ForecastStore holds the latest forecast result per location. Results are
// replaced whole, never mutated; the most recently stored result is also
// tracked so parameter recalculation and savings queries have a subject.
type ForecastStore struct {
	data   map[string]models.ForecastResult // key is location
	latest string                           // location of the last update
	mutex  sync.RWMutex
}

// NewForecastStore creates a new in-memory forecast store
func NewForecastStore() *ForecastStore {
	return &ForecastStore{
		data: make(map[string]models.ForecastResult),
	}
}

// Update stores a forecast result, superseding any previous result for the
// same location.
func (s *ForecastStore) Update(result models.ForecastResult) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[result.Location] = result
	s.latest = result.Location
}

// GetByLocation retrieves the forecast result for a specific location
func (s *ForecastStore) GetByLocation(location string) (models.ForecastResult, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result, exists := s.data[location]
	return result, exists
}

// Latest retrieves the most recently stored forecast result
func (s *ForecastStore) Latest() (models.ForecastResult, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.latest == "" {
		return models.ForecastResult{}, false
	}
	result, exists := s.data[s.latest]
	return result, exists
}

// AllLocations returns a list of all locations with forecast data
func (s *ForecastStore) AllLocations() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	locations := make([]string, 0, len(s.data))
	for loc := range s.data {
		locations = append(locations, loc)
	}
	return locations
}

// PruneOld removes results older than the specified duration and reports how
// many were dropped.
func (s *ForecastStore) PruneOld(maxAge time.Duration) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := time.Now().Add(-maxAge)
	pruned := 0

	for location, result := range s.data {
		if result.Generated.Before(cutoff) {
			delete(s.data, location)
			pruned++
			if s.latest == location {
				s.latest = ""
			}
		}
	}

	return pruned
}
