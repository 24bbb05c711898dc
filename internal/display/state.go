package display

import (
	"time"

	"github.com/jusunglee/signage-go/internal/timetable"
)

const (
	ModeLive   = "LIVE"
	ModeManual = "MANUAL"
)

// State is the reference clock of the board. In live mode the reference
// follows the wall clock; in manual mode it holds the operator's values.
// Transitions return a new State and never modify the receiver.
type State struct {
	Live          bool   `json:"live"`
	LiveClock     string `json:"live_clock"`
	EditorTime    string `json:"editor_time"`
	EditorDate    string `json:"editor_date"`
	ReferenceTime string `json:"reference_time"`
	ReferenceDate string `json:"reference_date"`
}

// NewState starts in live mode at now
func NewState(now time.Time) State {
	return State{Live: true}.syncTo(now)
}

func (s State) syncTo(now time.Time) State {
	clock := timetable.ClockString(now)
	date := timetable.DateString(now)

	s.LiveClock = clock
	s.EditorTime = clock
	s.ReferenceTime = clock
	s.EditorDate = date
	s.ReferenceDate = date
	return s
}

// Tick advances the live clock, moving the reference along in live mode
func (s State) Tick(now time.Time) State {
	if s.Live {
		return s.syncTo(now)
	}
	s.LiveClock = timetable.ClockString(now)
	return s
}

// EditTime sets the reference time directly and leaves live mode.
// An empty value means midnight.
func (s State) EditTime(value string) State {
	s.EditorTime = value
	s.ReferenceTime = orMidnight(value)
	s.Live = false
	return s
}

// EditDate sets the reference date directly and leaves live mode.
// An empty value means today.
func (s State) EditDate(value string, now time.Time) State {
	s.EditorDate = value
	s.ReferenceDate = orToday(value, now)
	s.Live = false
	return s
}

// SetEditor changes the pending editor values without applying them
func (s State) SetEditor(timeValue, dateValue string) State {
	s.EditorTime = timeValue
	s.EditorDate = dateValue
	return s
}

// Apply copies the editor values into the reference and leaves live mode
func (s State) Apply(now time.Time) State {
	s.ReferenceTime = orMidnight(s.EditorTime)
	s.ReferenceDate = orToday(s.EditorDate, now)
	s.Live = false
	return s
}

// ResetToNow returns to live mode at now
func (s State) ResetToNow(now time.Time) State {
	s.Live = true
	return s.syncTo(now)
}

// ToggleLive flips the mode. Entering live mode re-syncs to now.
func (s State) ToggleLive(now time.Time) State {
	if s.Live {
		s.Live = false
		return s
	}
	return s.ResetToNow(now)
}

// Mode returns LIVE or MANUAL
func (s State) Mode() string {
	if s.Live {
		return ModeLive
	}
	return ModeManual
}

// DisplayTime is the clock shown on the board
func (s State) DisplayTime() string {
	if s.Live {
		return s.LiveClock
	}
	return s.ReferenceTime
}

// ReferenceMinutes returns the reference time as minutes since midnight
func (s State) ReferenceMinutes() int {
	return timetable.TimeStringToMinutes(s.ReferenceTime)
}

// ReferenceAt returns the reference as a wall-clock time in now's location.
// Unparseable dates fall back to the date of now.
func (s State) ReferenceAt(now time.Time) time.Time {
	date, err := time.ParseInLocation(timetable.DateLayout, s.ReferenceDate, now.Location())
	if err != nil {
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	return date.Add(time.Duration(s.ReferenceMinutes()) * time.Minute)
}

func orMidnight(value string) string {
	if value == "" {
		return "00:00"
	}
	return value
}

func orToday(value string, now time.Time) string {
	if value == "" {
		return timetable.DateString(now)
	}
	return value
}
