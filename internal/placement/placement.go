package placement

import (
	"fmt"
	"math"

	"github.com/jusunglee/signage-go/internal/models"
	"github.com/jusunglee/signage-go/internal/query"
)

const (
	// CalloutDistance is the radial distance of a callout from its stop
	CalloutDistance = 8.0
	// PerpSpacing is the perpendicular distance between neighbouring slots
	PerpSpacing = 2.4

	minCoord = 3.0
	maxCoord = 97.0
)

// MapCenter is the point callouts are pushed away from
var MapCenter = models.Point{X: 50, Y: 50}

// SlotSequence is the order perpendicular slots are handed out at a stop
var SlotSequence = []int{0, 1, -1, 2, -2, 3, -3}

// StopLookup resolves a platform to its stop geometry
type StopLookup interface {
	Lookup(id string) (models.Stop, bool)
}

// Style holds the per-direction rendering tags and offsets
type Style struct {
	Direction   models.Direction
	Label       string
	Class       string
	LineClass   string
	PerpBias    float64
	RadiusScale float64
}

var (
	KamiStyle = Style{
		Direction:   models.DirectionKami,
		Label:       "紙",
		Class:       "callout--kami",
		LineClass:   "callout-line callout-line--kami",
		PerpBias:    -1.2,
		RadiusScale: 0.92,
	}
	HachiStyle = Style{
		Direction:   models.DirectionHachi,
		Label:       "八",
		Class:       "callout--hachi",
		LineClass:   "callout-line callout-line--hachi",
		PerpBias:    1.2,
		RadiusScale: 1.08,
	}
)

// StyleFor returns the style of a direction
func StyleFor(d models.Direction) Style {
	if d == models.DirectionHachi {
		return HachiStyle
	}
	return KamiStyle
}

// Group is one highlighted direction with the departures to mark
type Group struct {
	Style      Style
	Departures []models.Departure
}

// SlotAllocator tracks slot usage per stop for a single placement pass
type SlotAllocator struct {
	used map[string]int
}

// NewSlotAllocator returns an allocator with no slots taken
func NewSlotAllocator() *SlotAllocator {
	return &SlotAllocator{used: make(map[string]int)}
}

// Next returns the slot for the stop and how many slots it had already used.
// Once SlotSequence is exhausted the slot is 0.
func (a *SlotAllocator) Next(stopID string) (slot, ordinal int) {
	ordinal = a.used[stopID]
	a.used[stopID] = ordinal + 1
	if ordinal < len(SlotSequence) {
		return SlotSequence[ordinal], ordinal
	}
	return 0, ordinal
}

// Used returns the number of slots handed out for the stop
func (a *SlotAllocator) Used(stopID string) int {
	return a.used[stopID]
}

// CalloutPosition pushes a callout outward from the map center, shifts it
// sideways by its slot and clamps it onto the canvas
func CalloutPosition(stop models.Stop, slot int, style Style) models.Point {
	center := stop.Center()

	dx := center.X - MapCenter.X
	dy := center.Y - MapCenter.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		dx, dy, length = 0, -1, 1
	}
	dx /= length
	dy /= length

	x := center.X + dx*CalloutDistance*style.RadiusScale
	y := center.Y + dy*CalloutDistance*style.RadiusScale

	offset := float64(slot) + style.PerpBias
	x += -dy * PerpSpacing * offset
	y += dx * PerpSpacing * offset

	return models.Point{X: clamp(x), Y: clamp(y)}
}

// Place lays out callouts for the groups in order, sharing slots between them
func Place(lookup StopLookup, groups ...Group) models.HighlightResult {
	result := models.NewHighlightResult()
	slots := NewSlotAllocator()

	for _, group := range groups {
		for _, dep := range query.DedupeByPlatform(group.Departures) {
			stop, ok := lookup.Lookup(dep.Platform)
			if !ok {
				continue
			}

			slot, ordinal := slots.Next(stop.ID)
			pos := CalloutPosition(stop, slot, group.Style)
			center := stop.Center()
			id := fmt.Sprintf("%s-%s-%d", group.Style.Direction, stop.ID, ordinal)

			result.Callouts = append(result.Callouts, models.Callout{
				ID:        "callout-" + id,
				Direction: group.Style.Direction,
				Label:     group.Style.Label,
				Class:     group.Style.Class,
				StopID:    stop.ID,
				X:         pos.X,
				Y:         pos.Y,
			})
			result.Lines = append(result.Lines, models.Line{
				ID:    "line-" + id,
				Class: group.Style.LineClass,
				X1:    pos.X,
				Y1:    pos.Y,
				X2:    center.X,
				Y2:    center.Y,
			})

			marker := result.ActiveMarkers[stop.ID]
			marker.Set(group.Style.Direction)
			result.ActiveMarkers[stop.ID] = marker
		}
	}

	return result
}

// PlaceCallouts places the kami group before the hachi group
func PlaceCallouts(lookup StopLookup, kami, hachi []models.Departure) models.HighlightResult {
	return Place(lookup,
		Group{Style: KamiStyle, Departures: kami},
		Group{Style: HachiStyle, Departures: hachi},
	)
}

func clamp(v float64) float64 {
	return math.Min(maxCoord, math.Max(minCoord, v))
}
