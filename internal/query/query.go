package query

import (
	"strings"

	"github.com/jusunglee/signage-go/internal/models"
	"github.com/jusunglee/signage-go/internal/timetable"
	"golang.org/x/exp/slices"
)

// GroupWindow is the width in minutes of the imminent cluster returned by NextGroup
const GroupWindow = 3

// SoonThreshold marks departures leaving within this many minutes
const SoonThreshold = 3

// UpcomingTrips returns up to count departures with a platform, ordered by
// wraparound distance from reference. trips must already be sorted by minute so
// that equal distances keep minute order.
func UpcomingTrips(trips []models.Trip, reference, count int) []models.Departure {
	if count <= 0 {
		return []models.Departure{}
	}

	departures := make([]models.Departure, 0, len(trips))
	for _, trip := range trips {
		if trip.Platform == "" {
			continue
		}
		departures = append(departures, newDeparture(trip, reference))
	}

	slices.SortStableFunc(departures, func(a, b models.Departure) int {
		return a.ETA - b.ETA
	})

	if len(departures) > count {
		departures = departures[:count]
	}
	return departures
}

// NextGroup returns the departures serving the direction whose distance lies
// within GroupWindow minutes of the soonest one, ordered by distance then minute
func NextGroup(trips []models.Trip, direction models.Direction, reference int) []models.Departure {
	var candidates []models.Departure
	for _, trip := range trips {
		if !trip.Serves(direction) || trip.Platform == "" {
			continue
		}
		candidates = append(candidates, newDeparture(trip, reference))
	}
	if len(candidates) == 0 {
		return []models.Departure{}
	}

	best := candidates[0].ETA
	for _, d := range candidates[1:] {
		if d.ETA < best {
			best = d.ETA
		}
	}

	group := make([]models.Departure, 0, len(candidates))
	for _, d := range candidates {
		if d.ETA >= best && d.ETA <= best+GroupWindow {
			group = append(group, d)
		}
	}

	slices.SortStableFunc(group, func(a, b models.Departure) int {
		if a.ETA != b.ETA {
			return a.ETA - b.ETA
		}
		return a.Minutes - b.Minutes
	})
	return group
}

// DedupeByPlatform keeps the first departure per platform, dropping those without one
func DedupeByPlatform(departures []models.Departure) []models.Departure {
	seen := make(map[string]bool, len(departures))
	result := make([]models.Departure, 0, len(departures))
	for _, d := range departures {
		if d.Platform == "" || seen[d.Platform] {
			continue
		}
		seen[d.Platform] = true
		result = append(result, d)
	}
	return result
}

// Platforms lists the platforms of departures in order
func Platforms(departures []models.Departure) []string {
	platforms := make([]string, 0, len(departures))
	for _, d := range departures {
		platforms = append(platforms, d.Platform)
	}
	return platforms
}

// ExtractLineCode returns the route name part before a ':' or full-width '：'
func ExtractLineCode(routeName string) string {
	if routeName == "" {
		return ""
	}

	sep := ""
	switch {
	case strings.Contains(routeName, ":"):
		sep = ":"
	case strings.Contains(routeName, "："):
		sep = "："
	default:
		return routeName
	}

	code := strings.TrimSpace(strings.SplitN(routeName, sep, 2)[0])
	if code == "" {
		return routeName
	}
	return code
}

// LineTitle formats "<code>: <headsign>", or only the headsign when the route has no code
func LineTitle(routeName, headsign string) string {
	if headsign == "" {
		headsign = timetable.UnknownHeadsign
	}
	code := ExtractLineCode(routeName)
	if code == "" || code == routeName {
		return headsign
	}
	return code + ": " + headsign
}

func newDeparture(trip models.Trip, reference int) models.Departure {
	eta := timetable.MinutesUntil(trip.Minutes, reference)
	return models.Departure{
		Trip:  trip,
		ETA:   eta,
		Soon:  eta <= SoonThreshold,
		Title: LineTitle(trip.Route, trip.Headsign),
	}
}
