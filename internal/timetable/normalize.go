package timetable

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jusunglee/signage-go/internal/models"
)

// Source file columns
const (
	FieldDepartureTime = "hiroshima_departure_time"
	FieldRouteID       = "route_id"
	FieldTripID        = "trip_id"
	FieldPlatformCode  = "platform_code"
	FieldRouteName     = "route_name"
	FieldTripHeadsign  = "trip_headsign"
	FieldStopsKami     = "stops_kamiyacho_after_hiroshima"
	FieldStopsHachi    = "stops_hatchobori_after_hiroshima"
)

// Fallback display values for rows without a route name or headsign
const (
	UnknownRoute    = "系統名未定"
	UnknownHeadsign = "行先未定"
)

// IdentityStrategy supplies a trip id when the row carries no trip_id
type IdentityStrategy interface {
	TripID(record Record, departure string) string
}

// RandomIdentity issues a fresh UUID per row
type RandomIdentity struct{}

func (RandomIdentity) TripID(Record, string) string {
	return uuid.NewString()
}

// CompositeIdentity derives the id from route, trip-or-time and platform,
// so repeated refreshes of the same file produce the same ids
type CompositeIdentity struct{}

func (CompositeIdentity) TripID(record Record, departure string) string {
	return fmt.Sprintf("%s-%s-%s",
		orDefault(record.Get(FieldRouteID), "route"),
		orDefault(record.Get(FieldTripID), departure),
		orDefault(record.Get(FieldPlatformCode), "platform"),
	)
}

// IdentityByName maps a configuration value to a strategy
func IdentityByName(name string) (IdentityStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "composite":
		return CompositeIdentity{}, nil
	case "random", "uuid":
		return RandomIdentity{}, nil
	}
	return nil, fmt.Errorf("unknown identity strategy %q", name)
}

// Normalizer turns raw records into trips
type Normalizer struct {
	Identity IdentityStrategy
}

// NewNormalizer creates a normalizer, defaulting to composite identities
func NewNormalizer(identity IdentityStrategy) *Normalizer {
	if identity == nil {
		identity = CompositeIdentity{}
	}
	return &Normalizer{Identity: identity}
}

// NormalizeRow converts one record. ok is false when the departure time is missing,
// which omits the row rather than failing the batch.
func (n *Normalizer) NormalizeRow(record Record) (models.Trip, bool) {
	if record == nil || record.Get(FieldDepartureTime) == "" {
		return models.Trip{}, false
	}

	departure := strings.TrimSpace(record.Get(FieldDepartureTime))
	id := record.Get(FieldTripID)
	if id == "" {
		id = n.Identity.TripID(record, departure)
	}

	return models.Trip{
		ID:         id,
		RouteID:    record.Get(FieldRouteID),
		Route:      orDefault(record.Get(FieldRouteName), UnknownRoute),
		Headsign:   orDefault(record.Get(FieldTripHeadsign), UnknownHeadsign),
		Platform:   strings.TrimSpace(record.Get(FieldPlatformCode)),
		Time:       departure,
		Minutes:    ParseClock(departure),
		StopsKami:  record.Get(FieldStopsKami) == "1",
		StopsHachi: record.Get(FieldStopsHachi) == "1",
	}, true
}

// NormalizeRecords converts all usable records, keeps ids unique within the batch
// and returns the trips sorted by minute of day
func (n *Normalizer) NormalizeRecords(records []Record) []models.Trip {
	trips := make([]models.Trip, 0, len(records))
	for _, record := range records {
		if trip, ok := n.NormalizeRow(record); ok {
			trips = append(trips, trip)
		}
	}

	disambiguateIDs(trips)
	SortByMinutes(trips)
	return trips
}

// Normalize parses raw timetable text into sorted trips
func (n *Normalizer) Normalize(text string) []models.Trip {
	return n.NormalizeRecords(ParseRecords(text))
}

// SortByMinutes orders trips by departure minute, keeping file order for ties
func SortByMinutes(trips []models.Trip) {
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].Minutes < trips[j].Minutes
	})
}

// disambiguateIDs suffixes repeated ids with #2, #3, ... in file order
func disambiguateIDs(trips []models.Trip) {
	seen := make(map[string]int, len(trips))
	for i := range trips {
		id := trips[i].ID
		seen[id]++
		if n := seen[id]; n > 1 {
			trips[i].ID = fmt.Sprintf("%s#%d", id, n)
		}
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
