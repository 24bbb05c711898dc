package display

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/jusunglee/signage-go/internal/store"
	"github.com/rs/zerolog/log"
)

// Publisher receives every board that differs from the previous one
type Publisher interface {
	PublishBoard(board Board) error
}

// Refresher loads the timetable of a service date
type Refresher interface {
	SetDate(ctx context.Context, date string) bool
	Go(ctx context.Context, date string)
}

// Snapshotter exposes the current trip set
type Snapshotter interface {
	Snapshot() store.Snapshot
}

// Recorder receives board metrics
type Recorder interface {
	SetLive(live bool)
	SetCallouts(n int)
	ObservePublish(err error)
}

type nopRecorder struct{}

func (nopRecorder) SetLive(bool)         {}
func (nopRecorder) SetCallouts(int)      {}
func (nopRecorder) ObservePublish(error) {}

// Transition is a state change applied at now
type Transition func(s State, now time.Time) State

// Driver owns the reference state. It ticks the live clock, asks for a
// refresh when the reference date changes and publishes changed boards.
type Driver struct {
	composer  *Composer
	store     Snapshotter
	refresher Refresher
	publisher Publisher
	recorder  Recorder
	interval  time.Duration
	now       func() time.Time

	mu    sync.RWMutex
	ctx   context.Context
	state State
	last  *Board

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewDriver creates a driver in live mode on the system clock
func NewDriver(composer *Composer, snapshots Snapshotter, refresher Refresher, interval time.Duration) *Driver {
	return NewDriverWithClock(composer, snapshots, refresher, interval, time.Now)
}

// NewDriverWithClock creates a driver in live mode that reads the time from now
func NewDriverWithClock(composer *Composer, snapshots Snapshotter, refresher Refresher, interval time.Duration, now func() time.Time) *Driver {
	return &Driver{
		composer:  composer,
		store:     snapshots,
		refresher: refresher,
		recorder:  nopRecorder{},
		interval:  interval,
		now:       now,
		ctx:       context.Background(),
		state:     NewState(now()),
		stopCh:    make(chan struct{}),
	}
}

// SetPublisher installs a board publisher
func (d *Driver) SetPublisher(p Publisher) {
	d.publisher = p
}

// SetRecorder installs a metrics recorder
func (d *Driver) SetRecorder(r Recorder) {
	if r == nil {
		r = nopRecorder{}
	}
	d.recorder = r
}

// Start loads the timetable for the current date and begins the clock loop
func (d *Driver) Start(ctx context.Context) {
	d.mu.Lock()
	d.ctx = ctx
	date := d.state.ReferenceDate
	d.mu.Unlock()

	d.refresher.SetDate(ctx, date)

	d.wg.Add(1)
	go d.clockLoop()
}

// Stop stops the clock loop
func (d *Driver) Stop() {
	close(d.stopCh)
	d.wg.Wait()
}

func (d *Driver) clockLoop() {
	defer d.wg.Done()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.Apply(State.Tick)
		case <-d.stopCh:
			return
		}
	}
}

// Apply runs a transition and returns the new state
func (d *Driver) Apply(t Transition) State {
	d.mu.Lock()
	prev := d.state
	d.state = t(prev, d.now())
	next := d.state
	ctx := d.ctx
	d.mu.Unlock()

	if next.ReferenceDate != prev.ReferenceDate {
		if d.refresher.SetDate(ctx, next.ReferenceDate) {
			log.Info().Str("from", prev.ReferenceDate).Str("to", next.ReferenceDate).Msg("Reference date changed")
		}
	}
	if next.Live != prev.Live {
		log.Info().Str("mode", next.Mode()).Msg("Display mode changed")
	}
	d.recorder.SetLive(next.Live)

	d.Publish()
	return next
}

// Refresh forces a reload of the timetable for the reference date
func (d *Driver) Refresh() {
	d.mu.RLock()
	ctx := d.ctx
	date := d.state.ReferenceDate
	d.mu.RUnlock()

	d.refresher.Go(ctx, date)
}

// State returns the current reference state
func (d *Driver) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Board composes the board for the current state
func (d *Driver) Board() Board {
	state := d.State()
	return d.composer.Compose(state, d.store.Snapshot(), d.now())
}

// Publish sends the current board when it differs from the last one sent
func (d *Driver) Publish() {
	board := d.Board()
	d.recorder.SetCallouts(len(board.Highlight.Callouts))

	if d.publisher == nil {
		return
	}

	d.mu.Lock()
	if d.last != nil && reflect.DeepEqual(*d.last, board) {
		d.mu.Unlock()
		return
	}
	d.last = &board
	d.mu.Unlock()

	err := d.publisher.PublishBoard(board)
	d.recorder.ObservePublish(err)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to publish board")
	}
}
