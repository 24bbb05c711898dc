package signage

import (
	"time"

	"github.com/jusunglee/signage-go/internal/display"
	"github.com/jusunglee/signage-go/internal/feed"
	"github.com/jusunglee/signage-go/internal/models"
	"github.com/jusunglee/signage-go/internal/store"
	"github.com/jusunglee/signage-go/internal/timetable"
)

// Client defines the interface for driving a signage board
// Abstracts the in-process engine so handlers can be tested against a mock
type Client interface {
	GetBoard() (display.Board, error)
	GetUpcoming(count int) ([]models.Departure, error)
	GetNextGroup(direction models.Direction) ([]models.Departure, error)
	GetHighlight() (models.HighlightResult, error)

	GetStops() ([]models.Stop, error)
	GetPlatforms() ([]string, error)
	GetTripsByPlatform(platform string) ([]models.Trip, error)

	GetStatus() (Status, error)
	GetState() display.State

	EditTime(value string) display.State
	EditDate(value string) display.State
	ApplyClock(timeValue, dateValue string) display.State
	ResetToNow() display.State
	ToggleLive() display.State
	Refresh()

	GetGTFSRealtime() ([]byte, error)

	GetLastUpdate() time.Time
}

// Status describes the active timetable
type Status struct {
	Status     store.Status       `json:"status"`
	Error      string             `json:"error,omitempty"`
	Date       string             `json:"date"`
	Service    models.ServiceType `json:"service"`
	File       string             `json:"file"`
	Trips      int                `json:"trips"`
	LastUpdate time.Time          `json:"last_update"`
}

// Recorder receives refresh and board metrics
type Recorder interface {
	feed.Recorder
	display.Recorder
}

// Config holds configuration for the signage client
type Config struct {
	// Source is a base URL or a local directory holding the timetable files
	Source        string
	Files         timetable.TimetableFiles
	StopsFile     string
	DisplayCount  int
	ClockInterval time.Duration
	FetchTimeout  time.Duration
	TripIdentity  string
	Location      *time.Location

	// Optional collaborators
	Fetcher   feed.Fetcher
	Publisher display.Publisher
	Metrics   Recorder
	Now       func() time.Time
}

// DefaultConfig returns default configuration
// One-second clock ticks keep live mode in step with the wall clock
func DefaultConfig() Config {
	return Config{
		Source:        "data",
		Files:         timetable.DefaultTimetableFiles(),
		DisplayCount:  display.DefaultCount,
		ClockInterval: time.Second,
		FetchTimeout:  30 * time.Second,
		TripIdentity:  "composite",
		Location:      time.Local,
	}
}
