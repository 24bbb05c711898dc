package signage

import (
	"github.com/jusunglee/signage-go/internal/models"
	"github.com/jusunglee/signage-go/internal/placement"
	"github.com/jusunglee/signage-go/internal/query"
	"github.com/jusunglee/signage-go/internal/stops"
	"github.com/jusunglee/signage-go/internal/timetable"
)

// Normalize parses timetable text into trips sorted by departure minute,
// using composite trip ids for rows without a trip_id
func Normalize(text string) []models.Trip {
	return timetable.NewNormalizer(nil).Normalize(text)
}

// UpcomingTrips returns up to count departures ordered by distance from reference
func UpcomingTrips(trips []models.Trip, reference, count int) []models.Departure {
	return query.UpcomingTrips(trips, reference, count)
}

// NextGroup returns the imminent departures serving direction
func NextGroup(trips []models.Trip, direction models.Direction, reference int) []models.Departure {
	return query.NextGroup(trips, direction, reference)
}

// PlaceCallouts lays out callouts for the two direction groups on the
// built-in stop geometry
func PlaceCallouts(kami, hachi []models.Departure) models.HighlightResult {
	return placement.PlaceCallouts(defaultStops, kami, hachi)
}

// MinutesUntil is the wraparound distance from reference to target
func MinutesUntil(target, reference int) int {
	return timetable.MinutesUntil(target, reference)
}

// TimeStringToMinutes converts "HH:MM" to minutes since midnight
func TimeStringToMinutes(value string) int {
	return timetable.TimeStringToMinutes(value)
}

var defaultStops = stops.MustDefault()
