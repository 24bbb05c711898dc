package display

import (
	"time"

	"github.com/jusunglee/signage-go/internal/models"
	"github.com/jusunglee/signage-go/internal/placement"
	"github.com/jusunglee/signage-go/internal/query"
	"github.com/jusunglee/signage-go/internal/store"
	"github.com/jusunglee/signage-go/internal/timetable"
)

// DefaultCount is the length of the upcoming list
const DefaultCount = 10

// Timeline messages
const (
	MessageLoading = "データを読み込んでいます…"
	MessageEmpty   = "表示できる便がありません。"
)

// EmptyTime is shown on a next card with no departure
const EmptyTime = "--:--"

// NextCard summarises the imminent departures passing one waypoint
type NextCard struct {
	Direction  models.Direction   `json:"direction"`
	Label      string             `json:"label"`
	Badge      string             `json:"badge"`
	First      string             `json:"first"`
	Platforms  []string           `json:"platforms"`
	Departures []models.Departure `json:"departures"`
}

// Board is everything the renderer needs for one frame
type Board struct {
	DisplayTime  string                 `json:"display_time"`
	DisplayDate  string                 `json:"display_date"`
	Mode         string                 `json:"mode"`
	Live         bool                   `json:"live"`
	Service      models.ServiceType     `json:"service"`
	ServiceLabel string                 `json:"service_label"`
	File         string                 `json:"file"`
	InfoLine     string                 `json:"info_line"`
	Status       store.Status           `json:"status"`
	Error        string                 `json:"error,omitempty"`
	Message      string                 `json:"message,omitempty"`
	Upcoming     []models.Departure     `json:"upcoming"`
	Kami         NextCard               `json:"kami"`
	Hachi        NextCard               `json:"hachi"`
	Highlight    models.HighlightResult `json:"highlight"`
}

var cardLabels = map[models.Direction]string{
	models.DirectionKami:  "紙屋町通過",
	models.DirectionHachi: "八丁堀通過",
}

// Composer derives boards from the reference state and the trip set
type Composer struct {
	Stops placement.StopLookup
	Files timetable.TimetableFiles
	Count int
}

// Compose builds the board for state over the trips in snap
func (c *Composer) Compose(state State, snap store.Snapshot, now time.Time) Board {
	count := c.Count
	if count <= 0 {
		count = DefaultCount
	}

	reference := state.ReferenceMinutes()
	service := timetable.ServiceTypeForDate(state.ReferenceDate, now)
	file := c.Files.For(service)

	kami := query.NextGroup(snap.Trips, models.DirectionKami, reference)
	hachi := query.NextGroup(snap.Trips, models.DirectionHachi, reference)

	board := Board{
		DisplayTime:  state.DisplayTime(),
		DisplayDate:  state.ReferenceDate,
		Mode:         state.Mode(),
		Live:         state.Live,
		Service:      service,
		ServiceLabel: service.Label(),
		File:         file,
		InfoLine:     service.Label() + " / " + file + " / MODE: " + state.Mode(),
		Status:       snap.Status,
		Error:        snap.Error,
		Upcoming:     []models.Departure{},
		Kami:         newNextCard(models.DirectionKami, kami),
		Hachi:        newNextCard(models.DirectionHachi, hachi),
		Highlight:    placement.PlaceCallouts(c.Stops, kami, hachi),
	}

	switch snap.Status {
	case store.StatusLoading:
		board.Message = MessageLoading
	case store.StatusLoaded:
		board.Upcoming = query.UpcomingTrips(snap.Trips, reference, count)
		if len(board.Upcoming) == 0 {
			board.Message = MessageEmpty
		}
	}

	return board
}

func newNextCard(direction models.Direction, group []models.Departure) NextCard {
	style := placement.StyleFor(direction)
	card := NextCard{
		Direction:  direction,
		Label:      cardLabels[direction],
		Badge:      style.Label,
		First:      EmptyTime,
		Platforms:  query.Platforms(query.DedupeByPlatform(group)),
		Departures: group,
	}
	if len(group) > 0 {
		card.First = group[0].ShortTime()
	}
	return card
}
