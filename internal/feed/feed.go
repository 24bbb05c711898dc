package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jusunglee/signage-go/internal/models"
	"github.com/jusunglee/signage-go/internal/store"
	"github.com/jusunglee/signage-go/internal/timetable"
	"github.com/rs/zerolog/log"
)

// ErrSuperseded is returned when a newer refresh started before this one finished
var ErrSuperseded = errors.New("refresh superseded")

const (
	ResultLoaded     = "loaded"
	ResultError      = "error"
	ResultSuperseded = "superseded"
)

// Recorder receives refresh outcomes
type Recorder interface {
	ObserveRefresh(result string, duration time.Duration)
	SetTripCount(n int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRefresh(string, time.Duration) {}
func (nopRecorder) SetTripCount(int)                     {}

// FailureMessage is the status text shown when a timetable cannot be loaded
func FailureMessage(err error) string {
	return "時刻表の読み込みに失敗しました: " + err.Error()
}

// Manager loads the timetable of the active service date into the store.
// Only the most recently started refresh may write its result.
type Manager struct {
	fetcher    Fetcher
	store      *store.Store
	files      timetable.TimetableFiles
	normalizer *timetable.Normalizer
	recorder   Recorder
	now        func() time.Time

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	date       string
	wg         sync.WaitGroup
}

// NewManager creates a new feed manager
func NewManager(fetcher Fetcher, store *store.Store, files timetable.TimetableFiles, normalizer *timetable.Normalizer) *Manager {
	if normalizer == nil {
		normalizer = timetable.NewNormalizer(nil)
	}
	return &Manager{
		fetcher:    fetcher,
		store:      store,
		files:      files,
		normalizer: normalizer,
		recorder:   nopRecorder{},
		now:        time.Now,
	}
}

// SetRecorder installs a metrics recorder
func (m *Manager) SetRecorder(r Recorder) {
	if r == nil {
		r = nopRecorder{}
	}
	m.recorder = r
}

// Refresh loads the timetable for date and blocks until it is stored, fails,
// or is superseded by a later refresh
func (m *Manager) Refresh(ctx context.Context, date string) error {
	return m.begin(ctx, date).run()
}

type refresh struct {
	m       *Manager
	ctx     context.Context
	cancel  context.CancelFunc
	gen     uint64
	date    string
	service models.ServiceType
	file    string
}

// begin claims a new generation and cancels the refresh it replaces
func (m *Manager) begin(ctx context.Context, date string) *refresh {
	service := timetable.ServiceTypeForDate(date, m.now())
	file := m.files.For(service)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.date = date
	m.store.SetLoading(date, service, file)

	return &refresh{
		m:       m,
		ctx:     ctx,
		cancel:  cancel,
		gen:     m.generation,
		date:    date,
		service: service,
		file:    file,
	}
}

func (r *refresh) run() error {
	defer r.cancel()
	m := r.m

	start := time.Now()
	text, err := m.fetcher.Fetch(r.ctx, r.file)

	var trips []models.Trip
	if err == nil {
		trips = m.normalizer.Normalize(text)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if r.gen != m.generation {
		m.recorder.ObserveRefresh(ResultSuperseded, time.Since(start))
		log.Debug().Str("date", r.date).Str("file", r.file).Msg("Discarding superseded timetable")
		return ErrSuperseded
	}

	if err != nil {
		m.store.SetError(FailureMessage(err))
		m.recorder.ObserveRefresh(ResultError, time.Since(start))
		m.recorder.SetTripCount(0)
		log.Error().Err(err).Str("date", r.date).Str("file", r.file).Msg("Timetable fetch failed")
		return fmt.Errorf("fetch %s: %w", r.file, err)
	}

	m.store.ReplaceTrips(trips)
	m.recorder.ObserveRefresh(ResultLoaded, time.Since(start))
	m.recorder.SetTripCount(len(trips))
	log.Info().
		Str("date", r.date).
		Str("service", string(r.service)).
		Str("file", r.file).
		Int("trips", len(trips)).
		Msg("Timetable loaded")
	return nil
}

// SetDate starts a background refresh when date differs from the date of
// the latest refresh
func (m *Manager) SetDate(ctx context.Context, date string) bool {
	if m.Date() == date {
		return false
	}
	m.Go(ctx, date)
	return true
}

// Go starts a background refresh for date
func (m *Manager) Go(ctx context.Context, date string) {
	r := m.begin(ctx, date)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := r.run(); err != nil && !errors.Is(err, ErrSuperseded) {
			log.Warn().Err(err).Str("date", date).Msg("Background refresh failed")
		}
	}()
}

// Date returns the date of the latest refresh
func (m *Manager) Date() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.date
}

// Stop cancels any pending refresh and waits for background refreshes
func (m *Manager) Stop() {
	m.mu.Lock()
	m.generation++
	if m.cancel != nil {
		m.cancel()
	}
	m.mu.Unlock()
	m.wg.Wait()
}
