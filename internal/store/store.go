package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jusunglee/signage-go/internal/models"
)

// Status is the load state of the active timetable
type Status string

const (
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusError   Status = "error"
)

// Snapshot is a consistent view of the store
type Snapshot struct {
	Trips      []models.Trip      `json:"trips"`
	Status     Status             `json:"status"`
	Error      string             `json:"error,omitempty"`
	Date       string             `json:"date"`
	Service    models.ServiceType `json:"service"`
	File       string             `json:"file"`
	LastUpdate time.Time          `json:"last_update"`
}

// Store manages the in-memory trip set of the active service date
type Store struct {
	mu         sync.RWMutex
	trips      []models.Trip
	byPlatform map[string][]models.Trip
	platforms  []string
	status     Status
	errMsg     string
	date       string
	service    models.ServiceType
	file       string
	lastUpdate time.Time
}

// NewStore creates a new store instance
func NewStore() *Store {
	return &Store{
		trips:      []models.Trip{},
		byPlatform: make(map[string][]models.Trip),
		status:     StatusLoading,
	}
}

// SetLoading marks a refresh for the given date as started. The previous
// trips stay readable until they are replaced.
func (s *Store) SetLoading(date string, service models.ServiceType, file string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusLoading
	s.errMsg = ""
	s.date = date
	s.service = service
	s.file = file
}

// ReplaceTrips swaps in a new trip set. trips must be sorted by minute.
func (s *Store) ReplaceTrips(trips []models.Trip) {
	byPlatform := make(map[string][]models.Trip)
	for _, trip := range trips {
		if trip.Platform == "" {
			continue
		}
		byPlatform[trip.Platform] = append(byPlatform[trip.Platform], trip)
	}

	platforms := make([]string, 0, len(byPlatform))
	for platform := range byPlatform {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.trips = trips
	s.byPlatform = byPlatform
	s.platforms = platforms
	s.status = StatusLoaded
	s.errMsg = ""
	s.lastUpdate = time.Now()
}

// SetError clears the trip set and records the failure message
func (s *Store) SetError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trips = []models.Trip{}
	s.byPlatform = make(map[string][]models.Trip)
	s.platforms = nil
	s.status = StatusError
	s.errMsg = message
	s.lastUpdate = time.Now()
}

// Trips returns the current trip set. The slice is never modified in place.
func (s *Store) Trips() []models.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trips
}

// Snapshot returns a copy of the store state
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trips := make([]models.Trip, len(s.trips))
	copy(trips, s.trips)

	return Snapshot{
		Trips:      trips,
		Status:     s.status,
		Error:      s.errMsg,
		Date:       s.date,
		Service:    s.service,
		File:       s.file,
		LastUpdate: s.lastUpdate,
	}
}

// GetTripsByPlatform returns the trips leaving from a platform in minute order
func (s *Store) GetTripsByPlatform(platform string) ([]models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trips, ok := s.byPlatform[platform]
	if !ok {
		return nil, fmt.Errorf("platform %s not found", platform)
	}

	result := make([]models.Trip, len(trips))
	copy(result, trips)
	return result, nil
}

// GetPlatforms returns all platforms with at least one trip
func (s *Store) GetPlatforms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]string, len(s.platforms))
	copy(result, s.platforms)
	return result
}

// GetLastUpdate returns the last update time
func (s *Store) GetLastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}
