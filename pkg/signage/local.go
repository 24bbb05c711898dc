package signage

import (
	"context"
	"fmt"
	"time"

	"github.com/jusunglee/signage-go/internal/display"
	"github.com/jusunglee/signage-go/internal/feed"
	"github.com/jusunglee/signage-go/internal/gtfsrt"
	"github.com/jusunglee/signage-go/internal/models"
	"github.com/jusunglee/signage-go/internal/query"
	"github.com/jusunglee/signage-go/internal/stops"
	"github.com/jusunglee/signage-go/internal/store"
	"github.com/jusunglee/signage-go/internal/timetable"
)

// LocalClient implements the Client interface in process
// Owns the trip store, the timetable refresh manager and the clock driver
type LocalClient struct {
	config      Config
	registry    *stops.Registry
	store       *store.Store
	feedManager *feed.Manager
	driver      *display.Driver
	cancel      context.CancelFunc
}

// NewLocal creates a new local signage client
// Starts the clock driver, which loads the timetable for today
func NewLocal(config Config) (*LocalClient, error) {
	c, err := newLocal(config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.driver.Start(ctx)

	return c, nil
}

func newLocal(config Config) (*LocalClient, error) {
	defaults := DefaultConfig()
	if config.Files.Weekday == "" || config.Files.Weekend == "" {
		config.Files = defaults.Files
	}
	if config.DisplayCount <= 0 {
		config.DisplayCount = defaults.DisplayCount
	}
	if config.ClockInterval <= 0 {
		config.ClockInterval = defaults.ClockInterval
	}
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = defaults.FetchTimeout
	}
	if config.Location == nil {
		config.Location = defaults.Location
	}
	if config.Now == nil {
		loc := config.Location
		config.Now = func() time.Time { return time.Now().In(loc) }
	}

	registry, err := stops.Load(config.StopsFile)
	if err != nil {
		return nil, fmt.Errorf("load stops: %w", err)
	}

	identity, err := timetable.IdentityByName(config.TripIdentity)
	if err != nil {
		return nil, err
	}

	fetcher := config.Fetcher
	if fetcher == nil {
		fetcher = feed.NewFetcher(config.Source, config.FetchTimeout)
	}

	s := store.NewStore()
	fm := feed.NewManager(fetcher, s, config.Files, timetable.NewNormalizer(identity))

	composer := &display.Composer{
		Stops: registry,
		Files: config.Files,
		Count: config.DisplayCount,
	}
	driver := display.NewDriverWithClock(composer, s, fm, config.ClockInterval, config.Now)

	if config.Metrics != nil {
		fm.SetRecorder(config.Metrics)
		driver.SetRecorder(config.Metrics)
	}
	if config.Publisher != nil {
		driver.SetPublisher(config.Publisher)
	}

	return &LocalClient{
		config:      config,
		registry:    registry,
		store:       s,
		feedManager: fm,
		driver:      driver,
	}, nil
}

// Close gracefully shuts down the local client
// Must be called to stop background goroutines and prevent leaks
func (c *LocalClient) Close() {
	c.driver.Stop()
	c.feedManager.Stop()
	if c.cancel != nil {
		c.cancel()
	}
}

// Load refreshes the timetable for the reference date and waits for it
func (c *LocalClient) Load(ctx context.Context) error {
	return c.feedManager.Refresh(ctx, c.driver.State().ReferenceDate)
}

func (c *LocalClient) GetBoard() (display.Board, error) {
	return c.driver.Board(), nil
}

func (c *LocalClient) GetUpcoming(count int) ([]models.Departure, error) {
	if count <= 0 {
		count = c.config.DisplayCount
	}
	state := c.driver.State()
	return query.UpcomingTrips(c.store.Trips(), state.ReferenceMinutes(), count), nil
}

func (c *LocalClient) GetNextGroup(direction models.Direction) ([]models.Departure, error) {
	state := c.driver.State()
	return query.NextGroup(c.store.Trips(), direction, state.ReferenceMinutes()), nil
}

func (c *LocalClient) GetHighlight() (models.HighlightResult, error) {
	return c.driver.Board().Highlight, nil
}

func (c *LocalClient) GetStops() ([]models.Stop, error) {
	return c.registry.Stops(), nil
}

func (c *LocalClient) GetPlatforms() ([]string, error) {
	return c.store.GetPlatforms(), nil
}

func (c *LocalClient) GetTripsByPlatform(platform string) ([]models.Trip, error) {
	return c.store.GetTripsByPlatform(platform)
}

func (c *LocalClient) GetStatus() (Status, error) {
	snap := c.store.Snapshot()
	return Status{
		Status:     snap.Status,
		Error:      snap.Error,
		Date:       snap.Date,
		Service:    snap.Service,
		File:       snap.File,
		Trips:      len(snap.Trips),
		LastUpdate: snap.LastUpdate,
	}, nil
}

func (c *LocalClient) GetState() display.State {
	return c.driver.State()
}

func (c *LocalClient) EditTime(value string) display.State {
	return c.driver.Apply(func(s display.State, _ time.Time) display.State {
		return s.EditTime(value)
	})
}

func (c *LocalClient) EditDate(value string) display.State {
	return c.driver.Apply(func(s display.State, now time.Time) display.State {
		return s.EditDate(value, now)
	})
}

func (c *LocalClient) ApplyClock(timeValue, dateValue string) display.State {
	return c.driver.Apply(func(s display.State, now time.Time) display.State {
		return s.SetEditor(timeValue, dateValue).Apply(now)
	})
}

func (c *LocalClient) ResetToNow() display.State {
	return c.driver.Apply(display.State.ResetToNow)
}

func (c *LocalClient) ToggleLive() display.State {
	return c.driver.Apply(display.State.ToggleLive)
}

func (c *LocalClient) Refresh() {
	c.driver.Refresh()
}

// GetGTFSRealtime encodes the upcoming departures as a GTFS-realtime feed
func (c *LocalClient) GetGTFSRealtime() ([]byte, error) {
	state := c.driver.State()
	departures := query.UpcomingTrips(c.store.Trips(), state.ReferenceMinutes(), c.config.DisplayCount)
	return gtfsrt.Encode(departures, state.ReferenceAt(c.config.Now()))
}

func (c *LocalClient) GetLastUpdate() time.Time {
	return c.store.GetLastUpdate()
}
